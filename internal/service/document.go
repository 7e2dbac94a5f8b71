package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fakturo/fakturo/internal/api/dto"
	"github.com/fakturo/fakturo/internal/domain/document"
	"github.com/fakturo/fakturo/internal/email"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/types"
	"github.com/fakturo/fakturo/internal/webhook"
)

type DocumentService interface {
	CreateDocument(ctx context.Context, tenantID string, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	GetDocument(ctx context.Context, tenantID, id string) (*dto.DocumentResponse, error)
	ListDocuments(ctx context.Context, tenantID string, req dto.ListDocumentsRequest) ([]*dto.DocumentResponse, error)
	UpdateDocument(ctx context.Context, tenantID, id string, req dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, tenantID, id string) error

	// SendByEmail delivers the rendered document and only then marks it
	// sent: a failed delivery leaves the status untouched.
	SendByEmail(ctx context.Context, tenantID, id, recipient string) (*dto.DocumentResponse, error)

	// DownloadPDF marks a draft sent before rendering, on the premise that
	// a downloaded document has left the house. A failed render rolls the
	// status back.
	DownloadPDF(ctx context.Context, tenantID, id string) ([]byte, *dto.DocumentResponse, error)

	MarkPaid(ctx context.Context, tenantID, id string) (*dto.DocumentResponse, error)
	AcceptOffer(ctx context.Context, tenantID, id string) (*dto.DocumentResponse, error)
	RejectOffer(ctx context.Context, tenantID, id string) (*dto.DocumentResponse, error)

	// OverrideStatus is the administrative escape hatch: it may set any
	// stored status legal for the kind, bypassing the lifecycle edges.
	OverrideStatus(ctx context.Context, tenantID, id string, req dto.OverrideStatusRequest) (*dto.DocumentResponse, error)

	// ClearDuplicateMarker removes the provenance line from a duplicate's
	// notes, leaving any user notes behind it intact.
	ClearDuplicateMarker(ctx context.Context, tenantID, id string) (*dto.DocumentResponse, error)

	Duplicate(ctx context.Context, tenantID, id string) (*dto.DocumentResponse, error)
}

type documentService struct {
	ServiceParams
	numbering NumberingService
}

func NewDocumentService(params ServiceParams) DocumentService {
	return &documentService{
		ServiceParams: params,
		numbering:     NewNumberingService(params),
	}
}

func (s *documentService) CreateDocument(ctx context.Context, tenantID string, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.CustomerRepo.Get(ctx, tenantID, req.CustomerID); err != nil {
		return nil, err
	}

	cfg, err := s.SettingsRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}
	dueDate := issueDate.AddDate(0, 0, cfg.PaymentTermDays)
	if req.DueDate != nil {
		dueDate = req.DueDate.UTC()
	}

	doc := &document.Document{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT),
		Kind:       req.Kind,
		CustomerID: req.CustomerID,
		DocStatus:  types.DocumentStatusDraft,
		IssueDate:  issueDate,
		DueDate:    dueDate,
		Notes:      req.Notes,
		BaseModel:  types.NewBaseModel(ctx, tenantID),
	}

	for _, itemReq := range req.Items {
		item := document.NewItem(ctx, tenantID, doc.ID)
		item.Description = itemReq.Description
		item.Quantity = itemReq.Quantity
		item.UnitPrice = itemReq.UnitPrice
		if itemReq.TaxRate != nil {
			item.TaxRate = *itemReq.TaxRate
		} else {
			item.TaxRate = cfg.DefaultTaxRate
		}
		doc.Items = append(doc.Items, item)
	}

	doc.ComputeTotals()

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	if err := s.createWithNumber(ctx, tenantID, doc, now); err != nil {
		return nil, err
	}

	s.Logger.Infow("created document",
		"tenant_id", tenantID,
		"document_id", doc.ID,
		"kind", doc.Kind,
		"number", doc.Number,
	)

	return dto.NewDocumentResponse(doc, now), nil
}

// createWithNumber allocates a number and persists the document, retrying
// the allocation exactly once when a concurrent writer wins the number. A
// second conflict surfaces to the caller.
func (s *documentService) createWithNumber(ctx context.Context, tenantID string, doc *document.Document, at time.Time) error {
	number, seq, err := s.numbering.NextNumber(ctx, tenantID, doc.Kind, at)
	if err != nil {
		return err
	}
	doc.Number = number
	doc.SequenceNo = seq

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		return s.DocumentRepo.CreateWithItems(ctx, doc)
	})
	if err == nil {
		return nil
	}
	if !ierr.IsSequenceConflict(err) {
		return err
	}

	s.Logger.Warnw("sequence conflict on document create, retrying once",
		"tenant_id", tenantID,
		"kind", doc.Kind,
		"number", doc.Number,
	)

	number, seq, err = s.numbering.NextNumber(ctx, tenantID, doc.Kind, at)
	if err != nil {
		return err
	}
	doc.Number = number
	doc.SequenceNo = seq

	return s.DB.WithTx(ctx, func(ctx context.Context) error {
		return s.DocumentRepo.CreateWithItems(ctx, doc)
	})
}

func (s *documentService) GetDocument(ctx context.Context, tenantID, id string) (*dto.DocumentResponse, error) {
	doc, err := s.DocumentRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return dto.NewDocumentResponse(doc, time.Now().UTC()), nil
}

func (s *documentService) ListDocuments(ctx context.Context, tenantID string, req dto.ListDocumentsRequest) ([]*dto.DocumentResponse, error) {
	if req.Kind != nil {
		if err := req.Kind.Validate(); err != nil {
			return nil, err
		}
	}

	docs, err := s.DocumentRepo.List(ctx, tenantID, document.ListFilter{
		Kind:       req.Kind,
		DocStatus:  req.DocStatus,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	responses := make([]*dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		// The overdue filter is evaluated against the clock, not against
		// stored state, so it never goes stale.
		if req.Overdue != nil && doc.IsOverdue(now) != *req.Overdue {
			continue
		}
		responses = append(responses, dto.NewDocumentResponse(doc, now))
	}
	return responses, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, tenantID, id string, req dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := s.DocumentRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if doc.DocStatus != types.DocumentStatusDraft {
		return nil, ierr.NewError("document is not editable").
			WithHintf("Only draft documents can be edited, this one is %s", doc.DocStatus).
			Mark(ierr.ErrInvalidOperation)
	}

	if req.CustomerID != nil {
		if _, err := s.CustomerRepo.Get(ctx, tenantID, *req.CustomerID); err != nil {
			return nil, err
		}
		doc.CustomerID = *req.CustomerID
	}
	if req.IssueDate != nil {
		doc.IssueDate = req.IssueDate.UTC()
	}
	if req.DueDate != nil {
		doc.DueDate = req.DueDate.UTC()
	}
	if req.Notes != nil {
		doc.Notes = *req.Notes
	}

	if req.Items != nil {
		cfg, err := s.SettingsRepo.GetByTenant(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		items := make([]*document.DocumentItem, 0, len(req.Items))
		for _, itemReq := range req.Items {
			item := document.NewItem(ctx, tenantID, doc.ID)
			item.Description = itemReq.Description
			item.Quantity = itemReq.Quantity
			item.UnitPrice = itemReq.UnitPrice
			if itemReq.TaxRate != nil {
				item.TaxRate = *itemReq.TaxRate
			} else {
				item.TaxRate = cfg.DefaultTaxRate
			}
			items = append(items, item)
		}
		doc.Items = items
		doc.ComputeTotals()
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if req.Items != nil {
			return s.DocumentRepo.ReplaceItems(ctx, doc)
		}
		return s.DocumentRepo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	return dto.NewDocumentResponse(doc, time.Now().UTC()), nil
}

func (s *documentService) DeleteDocument(ctx context.Context, tenantID, id string) error {
	doc, err := s.DocumentRepo.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if doc.DocStatus != types.DocumentStatusDraft {
		return ierr.NewError("document is not deletable").
			WithHintf("Only draft documents can be deleted, this one is %s", doc.DocStatus).
			Mark(ierr.ErrInvalidOperation)
	}
	return s.DocumentRepo.Delete(ctx, tenantID, id)
}

func (s *documentService) SendByEmail(ctx context.Context, tenantID, id, recipient string) (*dto.DocumentResponse, error) {
	doc, err := s.DocumentRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if recipient == "" {
		c, err := s.CustomerRepo.Get(ctx, tenantID, doc.CustomerID)
		if err != nil {
			return nil, err
		}
		if c.Email == "" {
			return nil, ierr.NewError("no recipient").
				WithHint("The customer has no email address and none was provided").
				Mark(ierr.ErrValidation)
		}
		recipient = c.Email
	}

	pdfBytes, err := s.PDFGenerator.RenderDocumentPDF(ctx, doc)
	if err != nil {
		return nil, err
	}

	// Delivery confirms before the status moves: an undeliverable email
	// must not leave the document marked sent.
	msg := &email.Message{
		To:         recipient,
		Subject:    fmt.Sprintf("%s %s", subjectFor(doc.Kind), doc.Number),
		Body:       fmt.Sprintf("Please find %s %s attached.", doc.Kind, doc.Number),
		Attachment: pdfBytes,
		AttachName: doc.Number + ".pdf",
	}
	if err := s.EmailSender.Send(ctx, msg); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	firstSend := doc.DocStatus == types.DocumentStatusDraft
	if firstSend {
		doc.DocStatus = types.DocumentStatusSent
		doc.SentAt = &now
	}
	doc.TimesSent++

	if err := s.DocumentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	if firstSend {
		s.publishDocumentEvent(ctx, sentEventFor(doc.Kind), doc)
	}

	s.Logger.Infow("sent document by email",
		"tenant_id", tenantID,
		"document_id", doc.ID,
		"number", doc.Number,
		"times_sent", doc.TimesSent,
	)

	return dto.NewDocumentResponse(doc, now), nil
}

func (s *documentService) DownloadPDF(ctx context.Context, tenantID, id string) ([]byte, *dto.DocumentResponse, error) {
	doc, err := s.DocumentRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	firstSend := doc.DocStatus == types.DocumentStatusDraft
	if firstSend {
		// Optimistic: the status moves before the bytes are produced, so
		// a crash between render and response errs on the side of "this
		// document reached the customer".
		doc.DocStatus = types.DocumentStatusSent
		doc.SentAt = &now
		if err := s.DocumentRepo.Update(ctx, doc); err != nil {
			return nil, nil, err
		}
	}

	pdfBytes, err := s.PDFGenerator.RenderDocumentPDF(ctx, doc)
	if err != nil {
		if firstSend {
			doc.DocStatus = types.DocumentStatusDraft
			doc.SentAt = nil
			if revertErr := s.DocumentRepo.Update(ctx, doc); revertErr != nil {
				s.Logger.Errorw("failed to revert optimistic sent marking",
					"tenant_id", tenantID,
					"document_id", doc.ID,
					"error", revertErr,
				)
			}
		}
		return nil, nil, err
	}

	if firstSend {
		s.publishDocumentEvent(ctx, sentEventFor(doc.Kind), doc)
	}

	return pdfBytes, dto.NewDocumentResponse(doc, now), nil
}

func (s *documentService) MarkPaid(ctx context.Context, tenantID, id string) (*dto.DocumentResponse, error) {
	return s.transition(ctx, tenantID, id, types.DocumentKindInvoice, types.DocumentStatusPaid, types.WebhookEventInvoicePaid)
}

func (s *documentService) AcceptOffer(ctx context.Context, tenantID, id string) (*dto.DocumentResponse, error) {
	return s.transition(ctx, tenantID, id, types.DocumentKindOffer, types.DocumentStatusAccepted, types.WebhookEventOfferAccepted)
}

func (s *documentService) RejectOffer(ctx context.Context, tenantID, id string) (*dto.DocumentResponse, error) {
	return s.transition(ctx, tenantID, id, types.DocumentKindOffer, types.DocumentStatusRejected, types.WebhookEventOfferRejected)
}

// transition applies a natural lifecycle edge for the expected kind.
func (s *documentService) transition(ctx context.Context, tenantID, id string, kind types.DocumentKind, to types.DocumentStatus, eventName string) (*dto.DocumentResponse, error) {
	doc, err := s.DocumentRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if doc.Kind != kind {
		return nil, ierr.NewError("wrong document kind").
			WithHintf("This operation applies to %s documents only", kind).
			Mark(ierr.ErrInvalidOperation)
	}
	if !doc.Kind.CanTransition(doc.DocStatus, to) {
		return nil, ierr.NewError("illegal status transition").
			WithHintf("A %s document cannot move from %s to %s", doc.Kind, doc.DocStatus, to).
			WithReportableDetails(map[string]any{
				"from": doc.DocStatus,
				"to":   to,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	doc.DocStatus = to
	if err := s.DocumentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.publishDocumentEvent(ctx, eventName, doc)

	return dto.NewDocumentResponse(doc, time.Now().UTC()), nil
}

func (s *documentService) OverrideStatus(ctx context.Context, tenantID, id string, req dto.OverrideStatusRequest) (*dto.DocumentResponse, error) {
	doc, err := s.DocumentRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := req.DocStatus.ValidateFor(doc.Kind); err != nil {
		return nil, err
	}

	from := doc.DocStatus
	doc.DocStatus = req.DocStatus
	if err := s.DocumentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.Logger.Infow("status override applied",
		"tenant_id", tenantID,
		"document_id", doc.ID,
		"number", doc.Number,
		"from", from,
		"to", doc.DocStatus,
		"actor", types.GetUserID(ctx),
	)
	s.publishDocumentEvent(ctx, types.WebhookEventStatusOverridden, doc)

	return dto.NewDocumentResponse(doc, time.Now().UTC()), nil
}

func (s *documentService) ClearDuplicateMarker(ctx context.Context, tenantID, id string) (*dto.DocumentResponse, error) {
	doc, err := s.DocumentRepo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if !document.HasProvenance(doc.Notes) {
		return nil, ierr.NewError("no duplicate marker").
			WithHint("This document carries no provenance note").
			Mark(ierr.ErrInvalidOperation)
	}

	doc.Notes = document.StripProvenance(doc.Notes)
	if err := s.DocumentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	return dto.NewDocumentResponse(doc, time.Now().UTC()), nil
}

func (s *documentService) publishDocumentEvent(ctx context.Context, eventName string, doc *document.Document) {
	event, err := webhook.NewEvent(eventName, doc.TenantID, map[string]any{
		"document_id": doc.ID,
		"kind":        doc.Kind,
		"number":      doc.Number,
		"doc_status":  doc.DocStatus,
	})
	if err != nil {
		s.Logger.Errorw("failed to build webhook event", "event_name", eventName, "error", err)
		return
	}
	if err := s.WebhookPublisher.Publish(ctx, event); err != nil {
		s.Logger.Errorw("failed to publish webhook event",
			"event_name", eventName,
			"document_id", doc.ID,
			"error", err,
		)
	}
}

func subjectFor(kind types.DocumentKind) string {
	if kind == types.DocumentKindOffer {
		return "Offer"
	}
	return "Invoice"
}

func sentEventFor(kind types.DocumentKind) string {
	if kind == types.DocumentKindOffer {
		return types.WebhookEventOfferSent
	}
	return types.WebhookEventInvoiceSent
}
