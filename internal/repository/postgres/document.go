package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/fakturo/fakturo/internal/domain/document"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/postgres"
	"github.com/fakturo/fakturo/internal/types"
)

type documentRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewDocumentRepository(client postgres.IClient, log *logger.Logger) document.Repository {
	return &documentRepository{
		client: client,
		logger: log,
	}
}

const documentInsert = `
	INSERT INTO documents (id, kind, number, sequence_no, customer_id, doc_status,
		issue_date, due_date, subtotal, tax_total, total, notes, times_sent, sent_at,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES (:id, :kind, :number, :sequence_no, :customer_id, :doc_status,
		:issue_date, :due_date, :subtotal, :tax_total, :total, :notes, :times_sent, :sent_at,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

const documentItemInsert = `
	INSERT INTO document_items (id, document_id, description, quantity, unit_price, tax_rate,
		tenant_id, status, created_at, updated_at, created_by, updated_by)
	VALUES (:id, :document_id, :description, :quantity, :unit_price, :tax_rate,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

func (r *documentRepository) CreateWithItems(ctx context.Context, doc *document.Document) error {
	q := r.client.Querier(ctx)

	if _, err := q.NamedExecContext(ctx, documentInsert, doc); err != nil {
		// documents_tenant_kind_sequence_key: another writer raced this
		// allocation to the same number. The write must fail, never
		// silently keep a duplicate number.
		if isUniqueViolation(err, "") {
			return ierr.WithError(err).
				WithHint("Document number was taken by a concurrent writer").
				WithReportableDetails(map[string]any{
					"number": doc.Number,
					"kind":   doc.Kind,
				}).
				Mark(ierr.ErrSequenceConflict)
		}
		return ierr.WithError(err).
			WithHint("Failed to create document").
			Mark(ierr.ErrDatabase)
	}

	for _, item := range doc.Items {
		if _, err := q.NamedExecContext(ctx, documentItemInsert, item); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create document line item").
				Mark(ierr.ErrDatabase)
		}
	}

	return nil
}

func (r *documentRepository) Get(ctx context.Context, tenantID, id string) (*document.Document, error) {
	var doc document.Document
	query := `SELECT * FROM documents WHERE id = $1 AND tenant_id = $2 AND status != 'deleted'`
	if err := r.client.Querier(ctx).GetContext(ctx, &doc, query, id, tenantID); err != nil {
		if isNoRows(err) {
			return nil, notFound("Document", id)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch document").
			Mark(ierr.ErrDatabase)
	}

	items, err := r.listItems(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	doc.Items = items

	return &doc, nil
}

func (r *documentRepository) listItems(ctx context.Context, tenantID, documentID string) ([]*document.DocumentItem, error) {
	var items []*document.DocumentItem
	query := `
		SELECT * FROM document_items
		WHERE document_id = $1 AND tenant_id = $2 AND status != 'deleted'
		ORDER BY created_at, id`
	if err := r.client.Querier(ctx).SelectContext(ctx, &items, query, documentID, tenantID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch document line items").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *documentRepository) List(ctx context.Context, tenantID string, filter document.ListFilter) ([]*document.Document, error) {
	query := `SELECT * FROM documents WHERE tenant_id = $1 AND status != 'deleted'`
	args := []interface{}{tenantID}

	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		query += ` AND kind = $` + strconv.Itoa(len(args))
	}
	if filter.DocStatus != nil {
		args = append(args, *filter.DocStatus)
		query += ` AND doc_status = $` + strconv.Itoa(len(args))
	}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		query += ` AND customer_id = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY sequence_no DESC`

	var docs []*document.Document
	if err := r.client.Querier(ctx).SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list documents").
			Mark(ierr.ErrDatabase)
	}
	return docs, nil
}

func (r *documentRepository) Update(ctx context.Context, doc *document.Document) error {
	doc.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE documents
		SET customer_id = :customer_id, doc_status = :doc_status,
			issue_date = :issue_date, due_date = :due_date,
			subtotal = :subtotal, tax_total = :tax_total, total = :total,
			notes = :notes, times_sent = :times_sent, sent_at = :sent_at,
			updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id AND status != 'deleted'`

	result, err := r.client.Querier(ctx).NamedExecContext(ctx, query, doc)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update document").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return notFound("Document", doc.ID)
	}
	return nil
}

func (r *documentRepository) ReplaceItems(ctx context.Context, doc *document.Document) error {
	q := r.client.Querier(ctx)

	if _, err := q.ExecContext(ctx,
		`DELETE FROM document_items WHERE document_id = $1 AND tenant_id = $2`,
		doc.ID, doc.TenantID); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to replace document line items").
			Mark(ierr.ErrDatabase)
	}

	for _, item := range doc.Items {
		if _, err := q.NamedExecContext(ctx, documentItemInsert, item); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to replace document line items").
				Mark(ierr.ErrDatabase)
		}
	}

	return r.Update(ctx, doc)
}

func (r *documentRepository) Delete(ctx context.Context, tenantID, id string) error {
	now := time.Now().UTC()
	q := r.client.Querier(ctx)

	result, err := q.ExecContext(ctx,
		`UPDATE documents SET status = 'deleted', updated_at = $3 WHERE id = $1 AND tenant_id = $2`,
		id, tenantID, now)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete document").
			Mark(ierr.ErrDatabase)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return notFound("Document", id)
	}

	// items are owned exclusively by the document and go with it
	if _, err := q.ExecContext(ctx,
		`UPDATE document_items SET status = 'deleted', updated_at = $3 WHERE document_id = $1 AND tenant_id = $2`,
		id, tenantID, now); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete document line items").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *documentRepository) GetMaxSequence(ctx context.Context, tenantID string, kind types.DocumentKind) (int64, error) {
	var max int64
	query := `
		SELECT COALESCE(MAX(sequence_no), 0)
		FROM documents
		WHERE tenant_id = $1 AND kind = $2`
	if err := r.client.Querier(ctx).GetContext(ctx, &max, query, tenantID, kind); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to derive sequence counter").
			Mark(ierr.ErrDatabase)
	}
	return max, nil
}

