package tenant

import (
	"context"
	"strings"

	"github.com/fakturo/fakturo/internal/types"
)

// Tenant represents an isolated organization within the system. Every
// document, customer and membership is scoped to exactly one tenant.
type Tenant struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Slug     string `db:"slug" json:"slug"`
	IsActive bool   `db:"is_active" json:"is_active"`
	Email    string `db:"email" json:"email"`
	Phone    string `db:"phone" json:"phone"`
	Address  string `db:"address" json:"address"`
	types.BaseModel
}

// New creates a tenant with a generated id and a slug derived from the name
// plus a short disambiguating suffix, so slug uniqueness needs no global lock.
func New(ctx context.Context, name, email string) *Tenant {
	id := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT)
	t := &Tenant{
		ID:        id,
		Name:      name,
		Slug:      Slugify(name) + "-" + types.GenerateShortID(),
		IsActive:  true,
		Email:     email,
		BaseModel: types.NewBaseModel(ctx, id),
	}
	return t
}

// Slugify lowercases the name and collapses anything outside [a-z0-9] into
// single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "tenant"
	}
	return slug
}
