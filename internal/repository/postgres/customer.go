package postgres

import (
	"context"
	"time"

	"github.com/fakturo/fakturo/internal/domain/customer"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/postgres"
)

type customerRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewCustomerRepository(client postgres.IClient, log *logger.Logger) customer.Repository {
	return &customerRepository{
		client: client,
		logger: log,
	}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, address,
			tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :name, :email, :phone, :address,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, c); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create customer").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, tenantID, id string) (*customer.Customer, error) {
	var c customer.Customer
	query := `SELECT * FROM customers WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`
	if err := r.client.Querier(ctx).GetContext(ctx, &c, query, id, tenantID); err != nil {
		if isNoRows(err) {
			return nil, notFound("Customer", id)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch customer").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, tenantID string) ([]*customer.Customer, error) {
	var customers []*customer.Customer
	query := `
		SELECT * FROM customers
		WHERE tenant_id = $1 AND status != 'deleted'
		ORDER BY name`
	if err := r.client.Querier(ctx).SelectContext(ctx, &customers, query, tenantID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list customers").
			Mark(ierr.ErrDatabase)
	}
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	c.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE customers
		SET name = :name, email = :email, phone = :phone, address = :address,
			updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id AND status != 'deleted'`

	result, err := r.client.Querier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update customer").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return notFound("Customer", c.ID)
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, tenantID, id string) error {
	query := `UPDATE customers SET status = 'deleted', updated_at = $3 WHERE id = $1 AND tenant_id = $2`
	result, err := r.client.Querier(ctx).ExecContext(ctx, query, id, tenantID, time.Now().UTC())
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete customer").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return notFound("Customer", id)
	}
	return nil
}
