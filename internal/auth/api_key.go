package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/fakturo/fakturo/internal/config"
)

// ValidateAPIKey checks a raw API key against the configured key set and
// returns the tenant and user it is bound to.
func ValidateAPIKey(cfg *config.Configuration, apiKey string) (tenantID, userID string, valid bool) {
	hash := sha256.Sum256([]byte(apiKey))
	hashed := hex.EncodeToString(hash[:])

	details, ok := cfg.Auth.APIKey.Keys[hashed]
	if !ok || !details.IsActive {
		return "", "", false
	}

	return details.TenantID, details.UserID, true
}
