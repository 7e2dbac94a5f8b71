package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateShortIDNeverEmpty(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := GenerateShortID()
		assert.NotEmpty(t, id)
		assert.LessOrEqual(t, len(id), 6)
		assert.Equal(t, strings.ToLower(id), id)
	}
}

func TestFallbackShortID(t *testing.T) {
	id := fallbackShortID()
	assert.Len(t, id, 6)
	assert.Equal(t, strings.ToLower(id), id)
	for _, r := range id {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		assert.True(t, ok, "unexpected rune %q in suffix", r)
	}
}

func TestGenerateUUIDWithPrefix(t *testing.T) {
	id := GenerateUUIDWithPrefix(UUID_PREFIX_TENANT)
	assert.True(t, strings.HasPrefix(id, "tenant_"))

	bare := GenerateUUIDWithPrefix("")
	assert.NotContains(t, bare, "_")
}
