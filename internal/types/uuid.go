package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex inv_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortID returns a short lowercase identifier suitable for
// slug disambiguation suffixes, e.g. `x4qz9a`. It never returns an empty
// string: slugs built as `name-suffix` must not end in a bare hyphen.
func GenerateShortID() string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return fallbackShortID()
	}
	id = strings.ReplaceAll(id, "-", "")
	id = strings.ReplaceAll(id, "_", "")

	if len(id) > 6 {
		id = id[:6]
	}
	if id == "" {
		return fallbackShortID()
	}

	return strings.ToLower(id)
}

// fallbackShortID derives a suffix from a fresh ulid when the shortid
// generator fails.
func fallbackShortID() string {
	id := strings.ToLower(GenerateUUID())
	return id[len(id)-6:]
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_TENANT        = "tenant"
	UUID_PREFIX_MEMBERSHIP    = "member"
	UUID_PREFIX_SETTINGS      = "settings"
	UUID_PREFIX_CUSTOMER      = "cust"
	UUID_PREFIX_PRODUCT       = "prod"
	UUID_PREFIX_DOCUMENT      = "doc"
	UUID_PREFIX_DOCUMENT_ITEM = "doc_line"
	UUID_PREFIX_WEBHOOK_EVENT = "webhook"
)
