package service

import (
	"context"
	"time"

	"github.com/fakturo/fakturo/internal/api/dto"
	"github.com/fakturo/fakturo/internal/domain/document"
	"github.com/fakturo/fakturo/internal/types"
)

// Duplicate creates an independent draft copy of a document. The copy gets a
// fresh id and a freshly allocated number, its lifecycle state is reset, its
// items are deep copies, and a provenance note pointing at the source number
// is prepended to the notes. The source document is never written.
func (s *documentService) Duplicate(ctx context.Context, tenantID, id string) (*dto.DocumentResponse, error) {
	src, err := s.DocumentRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	cfg, err := s.SettingsRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dup := &document.Document{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT),
		Kind:       src.Kind,
		CustomerID: src.CustomerID,
		DocStatus:  types.DocumentStatusDraft,
		IssueDate:  now,
		DueDate:    now.AddDate(0, 0, cfg.PaymentTermDays),
		Notes:      document.PrependProvenance(src.Notes, src.Number, now),
		BaseModel:  types.NewBaseModel(ctx, tenantID),
	}

	for _, srcItem := range src.Items {
		item := document.NewItem(ctx, tenantID, dup.ID)
		item.Description = srcItem.Description
		item.Quantity = srcItem.Quantity
		item.UnitPrice = srcItem.UnitPrice
		item.TaxRate = srcItem.TaxRate
		dup.Items = append(dup.Items, item)
	}

	dup.ComputeTotals()

	if err := s.createWithNumber(ctx, tenantID, dup, now); err != nil {
		return nil, err
	}

	s.Logger.Infow("duplicated document",
		"tenant_id", tenantID,
		"source_id", src.ID,
		"source_number", src.Number,
		"duplicate_id", dup.ID,
		"duplicate_number", dup.Number,
	)
	s.publishDocumentEvent(ctx, types.WebhookEventDocumentDuplicated, dup)

	return dto.NewDocumentResponse(dup, now), nil
}
