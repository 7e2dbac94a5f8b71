package service

import (
	"testing"
	"time"

	"github.com/fakturo/fakturo/internal/api/dto"
	"github.com/fakturo/fakturo/internal/domain/customer"
	"github.com/fakturo/fakturo/internal/domain/settings"
	"github.com/fakturo/fakturo/internal/domain/tenant"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/testutil"
	"github.com/fakturo/fakturo/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DocumentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service    DocumentService
	tenantID   string
	customerID string
}

func TestDocumentService(t *testing.T) {
	suite.Run(t, new(DocumentServiceSuite))
}

func (s *DocumentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewDocumentService(ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		DB:               s.GetDB(),
		TenantRepo:       stores.TenantRepo,
		MembershipRepo:   stores.MembershipRepo,
		SettingsRepo:     stores.SettingsRepo,
		CustomerRepo:     stores.CustomerRepo,
		DocumentRepo:     stores.DocumentRepo,
		AuthProvider:     s.GetAuthProvider(),
		PDFGenerator:     s.GetPDFGenerator(),
		EmailSender:      s.GetEmailSender(),
		WebhookPublisher: s.GetWebhookPublisher(),
	})

	t := tenant.New(s.GetContext(), "Billing Co", "owner@billing.test")
	s.Require().NoError(stores.TenantRepo.Create(s.GetContext(), t))
	s.Require().NoError(stores.SettingsRepo.Create(s.GetContext(), settings.NewDefault(s.GetContext(), t.ID)))
	s.tenantID = t.ID

	c := &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      "Example Customer",
		Email:     "billing@example-customer.test",
		BaseModel: types.NewBaseModel(s.GetContext(), t.ID),
	}
	s.Require().NoError(stores.CustomerRepo.Create(s.GetContext(), c))
	s.customerID = c.ID
}

func (s *DocumentServiceSuite) createInvoice() *dto.DocumentResponse {
	taxRate := decimal.NewFromInt(7)
	resp, err := s.service.CreateDocument(s.GetContext(), s.tenantID, dto.CreateDocumentRequest{
		Kind:       types.DocumentKindInvoice,
		CustomerID: s.customerID,
		Items: []dto.CreateDocumentItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(100)},
			{Description: "Travel", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(250), TaxRate: &taxRate},
		},
	})
	s.Require().NoError(err)
	return resp
}

func (s *DocumentServiceSuite) createOffer() *dto.DocumentResponse {
	resp, err := s.service.CreateDocument(s.GetContext(), s.tenantID, dto.CreateDocumentRequest{
		Kind:       types.DocumentKindOffer,
		CustomerID: s.customerID,
		Items: []dto.CreateDocumentItemRequest{
			{Description: "Project estimate", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5000)},
		},
	})
	s.Require().NoError(err)
	return resp
}

func (s *DocumentServiceSuite) TestCreateDocumentAppliesDefaults() {
	resp := s.createInvoice()

	s.Equal(types.DocumentStatusDraft, resp.DocStatus)
	s.NotEmpty(resp.ID)
	s.NotEmpty(resp.Number)
	s.False(resp.IsOverdue)
	s.False(resp.IsDuplicate)
	s.Equal(0, resp.TimesSent)
	s.Nil(resp.SentAt)

	// Due date defaults to issue date plus the tenant's payment term.
	s.Equal(resp.IssueDate.AddDate(0, 0, 14), resp.DueDate)

	// First item falls back to the tenant default tax rate, the second
	// keeps its explicit one.
	s.True(resp.Items[0].TaxRate.Equal(decimal.NewFromInt(19)))
	s.True(resp.Items[1].TaxRate.Equal(decimal.NewFromInt(7)))

	// 10*100 + 1*250 = 1250; tax 1000*0.19 + 250*0.07 = 207.50
	s.True(resp.Subtotal.Equal(decimal.NewFromInt(1250)))
	s.True(resp.TaxTotal.Equal(decimal.RequireFromString("207.5")))
	s.True(resp.Total.Equal(decimal.RequireFromString("1457.5")))
}

func (s *DocumentServiceSuite) TestCreateDocumentRejectsUnknownCustomer() {
	_, err := s.service.CreateDocument(s.GetContext(), s.tenantID, dto.CreateDocumentRequest{
		Kind:       types.DocumentKindInvoice,
		CustomerID: "cust_missing",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *DocumentServiceSuite) TestCreateDocumentRetriesOnceOnSequenceConflict() {
	store := s.GetStores().DocumentRepo.(*testutil.InMemoryDocumentStore)
	store.ConflictsToInject = 1

	resp := s.createInvoice()
	s.Equal(types.DocumentStatusDraft, resp.DocStatus)
	s.NotEmpty(resp.Number)
}

func (s *DocumentServiceSuite) TestCreateDocumentGivesUpAfterSecondConflict() {
	store := s.GetStores().DocumentRepo.(*testutil.InMemoryDocumentStore)
	store.ConflictsToInject = 2

	_, err := s.service.CreateDocument(s.GetContext(), s.tenantID, dto.CreateDocumentRequest{
		Kind:       types.DocumentKindInvoice,
		CustomerID: s.customerID,
	})
	s.Error(err)
	s.True(ierr.IsSequenceConflict(err))
}

func (s *DocumentServiceSuite) TestUpdateDraftOnly() {
	invoice := s.createInvoice()

	notes := "Payment on account 123"
	resp, err := s.service.UpdateDocument(s.GetContext(), s.tenantID, invoice.ID, dto.UpdateDocumentRequest{
		Notes: &notes,
	})
	s.NoError(err)
	s.Equal(notes, resp.Notes)

	// Past draft, edits are refused.
	_, err = s.service.SendByEmail(s.GetContext(), s.tenantID, invoice.ID, "")
	s.Require().NoError(err)
	_, err = s.service.UpdateDocument(s.GetContext(), s.tenantID, invoice.ID, dto.UpdateDocumentRequest{
		Notes: &notes,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *DocumentServiceSuite) TestUpdateReplacesItemsAndRecomputesTotals() {
	invoice := s.createInvoice()

	resp, err := s.service.UpdateDocument(s.GetContext(), s.tenantID, invoice.ID, dto.UpdateDocumentRequest{
		Items: []dto.CreateDocumentItemRequest{
			{Description: "Flat fee", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	})
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.True(resp.Subtotal.Equal(decimal.NewFromInt(100)))
	s.True(resp.Total.Equal(decimal.NewFromInt(119)))

	// The replacement is persisted, not just rendered.
	got, err := s.service.GetDocument(s.GetContext(), s.tenantID, invoice.ID)
	s.NoError(err)
	s.Len(got.Items, 1)
	s.Equal("Flat fee", got.Items[0].Description)
}

func (s *DocumentServiceSuite) TestSendByEmailMarksSentOnce() {
	invoice := s.createInvoice()

	resp, err := s.service.SendByEmail(s.GetContext(), s.tenantID, invoice.ID, "")
	s.NoError(err)
	s.Equal(types.DocumentStatusSent, resp.DocStatus)
	s.Equal(1, resp.TimesSent)
	s.NotNil(resp.SentAt)
	firstSentAt := *resp.SentAt

	// Recipient defaults to the customer's email.
	s.Require().Len(s.GetEmailSender().Sent, 1)
	s.Equal("billing@example-customer.test", s.GetEmailSender().Sent[0].To)

	// Resending increments the counter but neither moves SentAt nor
	// re-fires the sent webhook.
	resp, err = s.service.SendByEmail(s.GetContext(), s.tenantID, invoice.ID, "other@example.test")
	s.NoError(err)
	s.Equal(types.DocumentStatusSent, resp.DocStatus)
	s.Equal(2, resp.TimesSent)
	s.Equal(firstSentAt, *resp.SentAt)
	s.Equal([]string{types.WebhookEventInvoiceSent}, s.GetWebhookPublisher().EventNames())
}

func (s *DocumentServiceSuite) TestSendByEmailFailureLeavesDraft() {
	invoice := s.createInvoice()
	s.GetEmailSender().FailNext = true

	_, err := s.service.SendByEmail(s.GetContext(), s.tenantID, invoice.ID, "")
	s.Error(err)
	s.True(ierr.IsRemoteUnavailable(err))

	got, err := s.service.GetDocument(s.GetContext(), s.tenantID, invoice.ID)
	s.NoError(err)
	s.Equal(types.DocumentStatusDraft, got.DocStatus)
	s.Equal(0, got.TimesSent)
	s.Empty(s.GetWebhookPublisher().EventNames())
}

func (s *DocumentServiceSuite) TestDownloadMarksSentOptimistically() {
	invoice := s.createInvoice()

	pdfBytes, resp, err := s.service.DownloadPDF(s.GetContext(), s.tenantID, invoice.ID)
	s.NoError(err)
	s.NotEmpty(pdfBytes)
	s.Equal(types.DocumentStatusSent, resp.DocStatus)
	s.NotNil(resp.SentAt)
	s.Equal([]string{types.WebhookEventInvoiceSent}, s.GetWebhookPublisher().EventNames())

	// A later download of an already sent document changes nothing.
	_, resp, err = s.service.DownloadPDF(s.GetContext(), s.tenantID, invoice.ID)
	s.NoError(err)
	s.Equal(types.DocumentStatusSent, resp.DocStatus)
	s.Equal([]string{types.WebhookEventInvoiceSent}, s.GetWebhookPublisher().EventNames())
}

func (s *DocumentServiceSuite) TestDownloadRenderFailureRevertsToDraft() {
	invoice := s.createInvoice()
	s.GetPDFGenerator().FailNext = true

	_, _, err := s.service.DownloadPDF(s.GetContext(), s.tenantID, invoice.ID)
	s.Error(err)

	got, err := s.service.GetDocument(s.GetContext(), s.tenantID, invoice.ID)
	s.NoError(err)
	s.Equal(types.DocumentStatusDraft, got.DocStatus)
	s.Nil(got.SentAt)
	s.Empty(s.GetWebhookPublisher().EventNames())
}

func (s *DocumentServiceSuite) TestMarkPaidFollowsLifecycle() {
	invoice := s.createInvoice()

	// draft -> paid is not a natural edge.
	_, err := s.service.MarkPaid(s.GetContext(), s.tenantID, invoice.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	_, err = s.service.SendByEmail(s.GetContext(), s.tenantID, invoice.ID, "")
	s.Require().NoError(err)

	resp, err := s.service.MarkPaid(s.GetContext(), s.tenantID, invoice.ID)
	s.NoError(err)
	s.Equal(types.DocumentStatusPaid, resp.DocStatus)
	s.Contains(s.GetWebhookPublisher().EventNames(), types.WebhookEventInvoicePaid)

	// paid is terminal on the natural lifecycle.
	_, err = s.service.MarkPaid(s.GetContext(), s.tenantID, invoice.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *DocumentServiceSuite) TestOfferAcceptReject() {
	offer := s.createOffer()
	_, err := s.service.SendByEmail(s.GetContext(), s.tenantID, offer.ID, "")
	s.Require().NoError(err)

	resp, err := s.service.AcceptOffer(s.GetContext(), s.tenantID, offer.ID)
	s.NoError(err)
	s.Equal(types.DocumentStatusAccepted, resp.DocStatus)

	// Accepted offers cannot also be rejected.
	_, err = s.service.RejectOffer(s.GetContext(), s.tenantID, offer.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	// Lifecycle operations check the kind.
	_, err = s.service.MarkPaid(s.GetContext(), s.tenantID, offer.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *DocumentServiceSuite) TestOverrideStatusBypassesLifecycle() {
	invoice := s.createInvoice()
	_, err := s.service.SendByEmail(s.GetContext(), s.tenantID, invoice.ID, "")
	s.Require().NoError(err)
	_, err = s.service.MarkPaid(s.GetContext(), s.tenantID, invoice.ID)
	s.Require().NoError(err)

	// paid -> draft is impossible naturally, the override allows it.
	resp, err := s.service.OverrideStatus(s.GetContext(), s.tenantID, invoice.ID, dto.OverrideStatusRequest{
		DocStatus: types.DocumentStatusDraft,
	})
	s.NoError(err)
	s.Equal(types.DocumentStatusDraft, resp.DocStatus)
	s.Contains(s.GetWebhookPublisher().EventNames(), types.WebhookEventStatusOverridden)

	// But the target must be a legal stored status for the kind.
	_, err = s.service.OverrideStatus(s.GetContext(), s.tenantID, invoice.ID, dto.OverrideStatusRequest{
		DocStatus: types.DocumentStatusAccepted,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *DocumentServiceSuite) TestOverdueIsDerivedNotStored() {
	invoice := s.createInvoice()
	_, err := s.service.SendByEmail(s.GetContext(), s.tenantID, invoice.ID, "")
	s.Require().NoError(err)

	// Push the due date into the past directly in the store; the stored
	// status stays sent.
	store := s.GetStores().DocumentRepo.(*testutil.InMemoryDocumentStore)
	doc, err := store.Get(s.GetContext(), s.tenantID, invoice.ID)
	s.Require().NoError(err)
	doc.DueDate = time.Now().UTC().AddDate(0, 0, -3)
	s.Require().NoError(store.Update(s.GetContext(), doc))

	got, err := s.service.GetDocument(s.GetContext(), s.tenantID, invoice.ID)
	s.NoError(err)
	s.Equal(types.DocumentStatusSent, got.DocStatus)
	s.True(got.IsOverdue)

	// Paying clears the derived overdue state immediately.
	paid, err := s.service.MarkPaid(s.GetContext(), s.tenantID, invoice.ID)
	s.NoError(err)
	s.False(paid.IsOverdue)
}

func (s *DocumentServiceSuite) TestListOverdueFilter() {
	overdueInvoice := s.createInvoice()
	_, err := s.service.SendByEmail(s.GetContext(), s.tenantID, overdueInvoice.ID, "")
	s.Require().NoError(err)

	store := s.GetStores().DocumentRepo.(*testutil.InMemoryDocumentStore)
	doc, err := store.Get(s.GetContext(), s.tenantID, overdueInvoice.ID)
	s.Require().NoError(err)
	doc.DueDate = time.Now().UTC().AddDate(0, 0, -1)
	s.Require().NoError(store.Update(s.GetContext(), doc))

	currentInvoice := s.createInvoice()
	_, err = s.service.SendByEmail(s.GetContext(), s.tenantID, currentInvoice.ID, "")
	s.Require().NoError(err)

	draftInvoice := s.createInvoice()

	overdue := true
	list, err := s.service.ListDocuments(s.GetContext(), s.tenantID, dto.ListDocumentsRequest{Overdue: &overdue})
	s.NoError(err)
	s.Require().Len(list, 1)
	s.Equal(overdueInvoice.ID, list[0].ID)

	notOverdue := false
	list, err = s.service.ListDocuments(s.GetContext(), s.tenantID, dto.ListDocumentsRequest{Overdue: &notOverdue})
	s.NoError(err)
	s.Len(list, 2)

	// The stored-status filter still works alongside.
	draft := types.DocumentStatusDraft
	list, err = s.service.ListDocuments(s.GetContext(), s.tenantID, dto.ListDocumentsRequest{DocStatus: &draft})
	s.NoError(err)
	s.Require().Len(list, 1)
	s.Equal(draftInvoice.ID, list[0].ID)
}

func (s *DocumentServiceSuite) TestTenantIsolationOnReads() {
	invoice := s.createInvoice()

	other := tenant.New(s.GetContext(), "Other Co", "other@other.test")
	s.Require().NoError(s.GetStores().TenantRepo.Create(s.GetContext(), other))

	_, err := s.service.GetDocument(s.GetContext(), other.ID, invoice.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	list, err := s.service.ListDocuments(s.GetContext(), other.ID, dto.ListDocumentsRequest{})
	s.NoError(err)
	s.Empty(list)
}

func (s *DocumentServiceSuite) TestDeleteDraftOnly() {
	invoice := s.createInvoice()
	s.NoError(s.service.DeleteDocument(s.GetContext(), s.tenantID, invoice.ID))

	sent := s.createInvoice()
	_, err := s.service.SendByEmail(s.GetContext(), s.tenantID, sent.ID, "")
	s.Require().NoError(err)
	err = s.service.DeleteDocument(s.GetContext(), s.tenantID, sent.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}
