package postgres

import (
	"context"
	"time"

	"github.com/fakturo/fakturo/internal/domain/product"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/postgres"
)

type productRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewProductRepository(client postgres.IClient, log *logger.Logger) product.Repository {
	return &productRepository{
		client: client,
		logger: log,
	}
}

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (id, name, description, unit_price, tax_rate,
			tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :name, :description, :unit_price, :tax_rate,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create product").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *productRepository) Get(ctx context.Context, tenantID, id string) (*product.Product, error) {
	var p product.Product
	query := `SELECT * FROM products WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`
	if err := r.client.Querier(ctx).GetContext(ctx, &p, query, id, tenantID); err != nil {
		if isNoRows(err) {
			return nil, notFound("Product", id)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch product").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, tenantID string) ([]*product.Product, error) {
	var products []*product.Product
	query := `
		SELECT * FROM products
		WHERE tenant_id = $1 AND status != 'deleted'
		ORDER BY name`
	if err := r.client.Querier(ctx).SelectContext(ctx, &products, query, tenantID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list products").
			Mark(ierr.ErrDatabase)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name = :name, description = :description, unit_price = :unit_price,
			tax_rate = :tax_rate, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id AND status != 'deleted'`

	result, err := r.client.Querier(ctx).NamedExecContext(ctx, query, p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update product").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return notFound("Product", p.ID)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, tenantID, id string) error {
	query := `UPDATE products SET status = 'deleted', updated_at = $3 WHERE id = $1 AND tenant_id = $2`
	result, err := r.client.Querier(ctx).ExecContext(ctx, query, id, tenantID, time.Now().UTC())
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete product").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return notFound("Product", id)
	}
	return nil
}
