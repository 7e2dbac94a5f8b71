package service

import (
	"strings"
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

type DuplicateSuite struct {
	testutil.BaseServiceTestSuite
	service    DocumentService
	tenantID   string
	customerID string
}

func TestDuplicate(t *testing.T) {
	suite.Run(t, new(DuplicateSuite))
}

func (s *DuplicateSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewDocumentService(ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		DB:               s.GetDB(),
		TenantRepo:       stores.TenantRepo,
		SettingsRepo:     stores.SettingsRepo,
		CustomerRepo:     stores.CustomerRepo,
		DocumentRepo:     stores.DocumentRepo,
		PDFGenerator:     s.GetPDFGenerator(),
		EmailSender:      s.GetEmailSender(),
		WebhookPublisher: s.GetWebhookPublisher(),
	})

	t := tenant.New(s.GetContext(), "Copy Co", "owner@copy.test")
	s.Require().NoError(stores.TenantRepo.Create(s.GetContext(), t))
	s.Require().NoError(stores.SettingsRepo.Create(s.GetContext(), settings.NewDefault(s.GetContext(), t.ID)))
	s.tenantID = t.ID

	c := &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      "Duplicated Customer",
		Email:     "dup@customer.test",
		BaseModel: types.NewBaseModel(s.GetContext(), t.ID),
	}
	s.Require().NoError(stores.CustomerRepo.Create(s.GetContext(), c))
	s.customerID = c.ID
}

func (s *DuplicateSuite) createSource(notes string) *dto.DocumentResponse {
	resp, err := s.service.CreateDocument(s.GetContext(), s.tenantID, dto.CreateDocumentRequest{
		Kind:       types.DocumentKindInvoice,
		CustomerID: s.customerID,
		Notes:      notes,
		Items: []dto.CreateDocumentItemRequest{
			{Description: "Hosting", Quantity: decimal.NewFromInt(12), UnitPrice: decimal.NewFromInt(30)},
			{Description: "Support", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.RequireFromString("99.90")},
		},
	})
	s.Require().NoError(err)
	return resp
}

func (s *DuplicateSuite) TestDuplicatePostconditions() {
	src := s.createSource("Net 14 days")
	_, err := s.service.SendByEmail(s.GetContext(), s.tenantID, src.ID, "")
	s.Require().NoError(err)
	srcBefore, err := s.service.GetDocument(s.GetContext(), s.tenantID, src.ID)
	s.Require().NoError(err)

	dup, err := s.service.Duplicate(s.GetContext(), s.tenantID, src.ID)
	s.NoError(err)

	// Fresh identity and number.
	s.NotEqual(src.ID, dup.ID)
	s.NotEqual(src.Number, dup.Number)

	// Lifecycle reset regardless of the source's state.
	s.Equal(types.DocumentStatusDraft, dup.DocStatus)
	s.Equal(0, dup.TimesSent)
	s.Nil(dup.SentAt)
	s.True(dup.IsDuplicate)

	// Items are deep copies: same content, fresh identities.
	s.Require().Len(dup.Items, len(srcBefore.Items))
	for i := range dup.Items {
		s.NotEqual(srcBefore.Items[i].ID, dup.Items[i].ID)
		s.Equal(srcBefore.Items[i].Description, dup.Items[i].Description)
		s.True(srcBefore.Items[i].Quantity.Equal(dup.Items[i].Quantity))
		s.True(srcBefore.Items[i].UnitPrice.Equal(dup.Items[i].UnitPrice))
		s.True(srcBefore.Items[i].TaxRate.Equal(dup.Items[i].TaxRate))
	}
	s.True(srcBefore.Total.Equal(dup.Total))

	// Provenance line first, original notes preserved behind it.
	lines := strings.SplitN(dup.Notes, "\n", 2)
	s.Equal("Duplicated from "+src.Number+" on "+time.Now().UTC().Format("2006-01-02"), lines[0])
	s.Require().Len(lines, 2)
	s.Equal("Net 14 days", lines[1])

	s.Contains(s.GetWebhookPublisher().EventNames(), types.WebhookEventDocumentDuplicated)
}

func (s *DuplicateSuite) TestDuplicateNeverMutatesSource() {
	src := s.createSource("original notes")
	before, err := s.service.GetDocument(s.GetContext(), s.tenantID, src.ID)
	s.Require().NoError(err)

	_, err = s.service.Duplicate(s.GetContext(), s.tenantID, src.ID)
	s.Require().NoError(err)

	after, err := s.service.GetDocument(s.GetContext(), s.tenantID, src.ID)
	s.Require().NoError(err)
	s.Equal(before.Number, after.Number)
	s.Equal(before.DocStatus, after.DocStatus)
	s.Equal(before.Notes, after.Notes)
	s.Equal(before.UpdatedAt, after.UpdatedAt)
	s.Require().Len(after.Items, len(before.Items))
	for i := range after.Items {
		s.Equal(before.Items[i].ID, after.Items[i].ID)
	}
}

func (s *DuplicateSuite) TestDuplicateMarkerDecaysPastDraft() {
	src := s.createSource("")
	dup, err := s.service.Duplicate(s.GetContext(), s.tenantID, src.ID)
	s.Require().NoError(err)
	s.True(dup.IsDuplicate)

	sent, err := s.service.SendByEmail(s.GetContext(), s.tenantID, dup.ID, "")
	s.NoError(err)
	s.False(sent.IsDuplicate)

	// The notes still carry the line, only the predicate decays.
	s.True(strings.HasPrefix(sent.Notes, "Duplicated from "))
}

func (s *DuplicateSuite) TestClearDuplicateMarkerKeepsUserNotes() {
	src := s.createSource("keep me")
	dup, err := s.service.Duplicate(s.GetContext(), s.tenantID, src.ID)
	s.Require().NoError(err)

	cleared, err := s.service.ClearDuplicateMarker(s.GetContext(), s.tenantID, dup.ID)
	s.NoError(err)
	s.Equal("keep me", cleared.Notes)
	s.False(cleared.IsDuplicate)

	// Clearing twice fails: there is nothing left to clear.
	_, err = s.service.ClearDuplicateMarker(s.GetContext(), s.tenantID, dup.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *DuplicateSuite) TestDuplicateOfDuplicatePointsAtDirectSource() {
	src := s.createSource("")
	first, err := s.service.Duplicate(s.GetContext(), s.tenantID, src.ID)
	s.Require().NoError(err)

	second, err := s.service.Duplicate(s.GetContext(), s.tenantID, first.ID)
	s.NoError(err)
	s.True(strings.HasPrefix(second.Notes, "Duplicated from "+first.Number))
}

func (s *DuplicateSuite) TestDuplicateRetriesOnceOnSequenceConflict() {
	src := s.createSource("")

	store := s.GetStores().DocumentRepo.(*testutil.InMemoryDocumentStore)
	store.ConflictsToInject = 1

	dup, err := s.service.Duplicate(s.GetContext(), s.tenantID, src.ID)
	s.NoError(err)
	s.NotEmpty(dup.Number)

	store.ConflictsToInject = 2
	_, err = s.service.Duplicate(s.GetContext(), s.tenantID, src.ID)
	s.Error(err)
	s.True(ierr.IsSequenceConflict(err))
}

func (s *DuplicateSuite) TestDuplicateDueDateUsesCurrentTerms() {
	src := s.createSource("")

	cfg, err := s.GetStores().SettingsRepo.GetByTenant(s.GetContext(), s.tenantID)
	s.Require().NoError(err)
	cfg.PaymentTermDays = 30
	s.Require().NoError(s.GetStores().SettingsRepo.Update(s.GetContext(), cfg))

	dup, err := s.service.Duplicate(s.GetContext(), s.tenantID, src.ID)
	s.NoError(err)
	s.Equal(dup.IssueDate.AddDate(0, 0, 30), dup.DueDate)
}
