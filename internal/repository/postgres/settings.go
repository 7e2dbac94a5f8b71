package postgres

import (
	"context"
	"time"

	"github.com/fakturo/fakturo/internal/cache"
	"github.com/fakturo/fakturo/internal/domain/settings"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/postgres"
)

type settingsRepository struct {
	client postgres.IClient
	logger *logger.Logger
	cache  cache.Cache
}

func NewSettingsRepository(client postgres.IClient, log *logger.Logger, c cache.Cache) settings.Repository {
	return &settingsRepository{
		client: client,
		logger: log,
		cache:  c,
	}
}

func (r *settingsRepository) Create(ctx context.Context, s *settings.Settings) error {
	query := `
		INSERT INTO settings (id, default_tax_rate, payment_term_days,
			invoice_pattern, offer_pattern,
			tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :default_tax_rate, :payment_term_days,
			:invoice_pattern, :offer_pattern,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, s); err != nil {
		// settings_tenant_id_key keeps the seed a one-time operation
		if isUniqueViolation(err, "") {
			return ierr.WithError(err).
				WithHint("Settings already exist for this tenant").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create settings").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *settingsRepository) GetByTenant(ctx context.Context, tenantID string) (*settings.Settings, error) {
	key := cache.Key(cache.PrefixSettings, tenantID)
	if cached, ok := r.cache.Get(ctx, key); ok {
		if s, ok := cached.(*settings.Settings); ok {
			// Hand out a copy: callers mutate the result before Update,
			// and the cache entry must keep reflecting the committed row.
			copied := *s
			return &copied, nil
		}
	}

	var s settings.Settings
	query := `SELECT * FROM settings WHERE tenant_id = $1 AND status != 'deleted'`
	if err := r.client.Querier(ctx).GetContext(ctx, &s, query, tenantID); err != nil {
		if isNoRows(err) {
			return nil, notFound("Settings", tenantID)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch settings").
			Mark(ierr.ErrDatabase)
	}

	cached := s
	r.cache.Set(ctx, key, &cached, 5*time.Minute)
	return &s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *settings.Settings) error {
	s.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE settings
		SET default_tax_rate = :default_tax_rate,
			payment_term_days = :payment_term_days,
			invoice_pattern = :invoice_pattern,
			offer_pattern = :offer_pattern,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id AND status != 'deleted'`

	result, err := r.client.Querier(ctx).NamedExecContext(ctx, query, s)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update settings").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return notFound("Settings", s.ID)
	}

	r.cache.Delete(ctx, cache.Key(cache.PrefixSettings, s.TenantID))
	return nil
}
