package postgres

import (
	"context"

	"github.com/fakturo/fakturo/internal/domain/membership"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/postgres"
)

type membershipRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewMembershipRepository(client postgres.IClient, log *logger.Logger) membership.Repository {
	return &membershipRepository{
		client: client,
		logger: log,
	}
}

func (r *membershipRepository) Create(ctx context.Context, m *membership.Membership) error {
	query := `
		INSERT INTO memberships (id, user_id, email, role, is_owner,
			tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :user_id, :email, :role, :is_owner,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, m); err != nil {
		// memberships_user_id_key enforces at most one membership per principal
		if isUniqueViolation(err, "") {
			return ierr.WithError(err).
				WithHint("This principal already belongs to a tenant").
				WithReportableDetails(map[string]any{
					"user_id": m.UserID,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create membership").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *membershipRepository) GetByUserID(ctx context.Context, userID string) (*membership.Membership, error) {
	var m membership.Membership
	query := `SELECT * FROM memberships WHERE user_id = $1 AND status != 'deleted'`
	if err := r.client.Querier(ctx).GetContext(ctx, &m, query, userID); err != nil {
		if isNoRows(err) {
			return nil, notFound("Membership", userID)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch membership").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *membershipRepository) ListByTenant(ctx context.Context, tenantID string) ([]*membership.Membership, error) {
	var memberships []*membership.Membership
	query := `
		SELECT * FROM memberships
		WHERE tenant_id = $1 AND status != 'deleted'
		ORDER BY created_at`
	if err := r.client.Querier(ctx).SelectContext(ctx, &memberships, query, tenantID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list memberships").
			Mark(ierr.ErrDatabase)
	}
	return memberships, nil
}
