package postgres

import (
	"context"
	"time"

	"github.com/fakturo/fakturo/internal/cache"
	"github.com/fakturo/fakturo/internal/domain/tenant"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/postgres"
)

type tenantRepository struct {
	client postgres.IClient
	logger *logger.Logger
	cache  cache.Cache
}

func NewTenantRepository(client postgres.IClient, log *logger.Logger, c cache.Cache) tenant.Repository {
	return &tenantRepository{
		client: client,
		logger: log,
		cache:  c,
	}
}

func (r *tenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, slug, is_active, email, phone, address,
			tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :name, :slug, :is_active, :email, :phone, :address,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, t); err != nil {
		if isUniqueViolation(err, "") {
			return ierr.WithError(err).
				WithHint("A tenant with this slug already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create tenant").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	key := cache.Key(cache.PrefixTenant, id)
	if cached, ok := r.cache.Get(ctx, key); ok {
		if t, ok := cached.(*tenant.Tenant); ok {
			// Hand out a copy: callers mutate the result before Update,
			// and the cache entry must keep reflecting the committed row.
			copied := *t
			return &copied, nil
		}
	}

	var t tenant.Tenant
	query := `SELECT * FROM tenants WHERE id = $1 AND status != 'deleted'`
	if err := r.client.Querier(ctx).GetContext(ctx, &t, query, id); err != nil {
		if isNoRows(err) {
			return nil, notFound("Tenant", id)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch tenant").
			Mark(ierr.ErrDatabase)
	}

	cached := t
	r.cache.Set(ctx, key, &cached, 5*time.Minute)
	return &t, nil
}

func (r *tenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	t.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tenants
		SET name = :name, slug = :slug, is_active = :is_active, email = :email,
			phone = :phone, address = :address, updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND status != 'deleted'`

	result, err := r.client.Querier(ctx).NamedExecContext(ctx, query, t)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update tenant").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return notFound("Tenant", t.ID)
	}

	r.cache.Delete(ctx, cache.Key(cache.PrefixTenant, t.ID))
	return nil
}
