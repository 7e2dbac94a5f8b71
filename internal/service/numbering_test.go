package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/fakturo/fakturo/internal/domain/document"
	"github.com/fakturo/fakturo/internal/domain/settings"
	"github.com/fakturo/fakturo/internal/domain/tenant"
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/testutil"
	"github.com/fakturo/fakturo/internal/types"
	"github.com/stretchr/testify/suite"
)

type NumberingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service NumberingService
}

func TestNumberingService(t *testing.T) {
	suite.Run(t, new(NumberingServiceSuite))
}

func (s *NumberingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewNumberingService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		TenantRepo:   stores.TenantRepo,
		SettingsRepo: stores.SettingsRepo,
		DocumentRepo: stores.DocumentRepo,
	})
}

// seedTenant provisions a tenant with default settings and returns its id.
func (s *NumberingServiceSuite) seedTenant() string {
	t := tenant.New(s.GetContext(), "Numbering Co", "owner@numbering.test")
	s.Require().NoError(s.GetStores().TenantRepo.Create(s.GetContext(), t))
	s.Require().NoError(s.GetStores().SettingsRepo.Create(s.GetContext(), settings.NewDefault(s.GetContext(), t.ID)))
	return t.ID
}

// persist stores a placeholder document so the sequence advances.
func (s *NumberingServiceSuite) persist(tenantID string, kind types.DocumentKind, number string, seq int64) {
	doc := &document.Document{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT),
		Kind:       kind,
		Number:     number,
		SequenceNo: seq,
		CustomerID: "cust_placeholder",
		DocStatus:  types.DocumentStatusDraft,
		BaseModel:  types.NewBaseModel(s.GetContext(), tenantID),
	}
	s.Require().NoError(s.GetStores().DocumentRepo.CreateWithItems(s.GetContext(), doc))
}

func (s *NumberingServiceSuite) TestSequentialAllocation() {
	tenantID := s.seedTenant()
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for i := int64(1); i <= 5; i++ {
		number, seq, err := s.service.NextNumber(s.GetContext(), tenantID, types.DocumentKindInvoice, at)
		s.NoError(err)
		s.Equal(i, seq)
		s.Equal(fmt.Sprintf("F-2025-03-%03d", i), number)
		s.persist(tenantID, types.DocumentKindInvoice, number, seq)
	}
}

func (s *NumberingServiceSuite) TestCounterSurvivesMonthRollover() {
	tenantID := s.seedTenant()

	march := time.Date(2025, 3, 28, 9, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 8; i++ {
		number, seq, err := s.service.NextNumber(s.GetContext(), tenantID, types.DocumentKindInvoice, march)
		s.NoError(err)
		s.persist(tenantID, types.DocumentKindInvoice, number, seq)
	}

	// The month token changes but the counter keeps going: after
	// F-2025-03-008 the next allocation in April is F-2025-04-009.
	april := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	number, seq, err := s.service.NextNumber(s.GetContext(), tenantID, types.DocumentKindInvoice, april)
	s.NoError(err)
	s.Equal(int64(9), seq)
	s.Equal("F-2025-04-009", number)
}

func (s *NumberingServiceSuite) TestTenantsAllocateIndependently() {
	tenantA := s.seedTenant()
	tenantB := s.seedTenant()
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := int64(1); i <= 3; i++ {
		number, seq, err := s.service.NextNumber(s.GetContext(), tenantA, types.DocumentKindInvoice, at)
		s.NoError(err)
		s.Equal(i, seq)
		s.persist(tenantA, types.DocumentKindInvoice, number, seq)
	}

	number, seq, err := s.service.NextNumber(s.GetContext(), tenantB, types.DocumentKindInvoice, at)
	s.NoError(err)
	s.Equal(int64(1), seq)
	s.Equal("F-2025-06-001", number)
}

func (s *NumberingServiceSuite) TestKindsAllocateIndependently() {
	tenantID := s.seedTenant()
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	number, seq, err := s.service.NextNumber(s.GetContext(), tenantID, types.DocumentKindInvoice, at)
	s.NoError(err)
	s.Equal(int64(1), seq)
	s.Equal("F-2025-06-001", number)
	s.persist(tenantID, types.DocumentKindInvoice, number, seq)

	number, seq, err = s.service.NextNumber(s.GetContext(), tenantID, types.DocumentKindOffer, at)
	s.NoError(err)
	s.Equal(int64(1), seq)
	s.Equal("A-2025-06-001", number)
}

func (s *NumberingServiceSuite) TestCustomPattern() {
	tenantID := s.seedTenant()
	cfg, err := s.GetStores().SettingsRepo.GetByTenant(s.GetContext(), tenantID)
	s.Require().NoError(err)
	cfg.InvoicePattern = "INV/{YYYY}/{#####}"
	s.Require().NoError(s.GetStores().SettingsRepo.Update(s.GetContext(), cfg))

	number, _, err := s.service.NextNumber(s.GetContext(), tenantID, types.DocumentKindInvoice, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.Equal("INV/2025/00001", number)
}

func (s *NumberingServiceSuite) TestPatternWithoutCounterFails() {
	tenantID := s.seedTenant()
	cfg, err := s.GetStores().SettingsRepo.GetByTenant(s.GetContext(), tenantID)
	s.Require().NoError(err)
	cfg.InvoicePattern = "F-{YYYY}-{MM}"
	s.Require().NoError(s.GetStores().SettingsRepo.Update(s.GetContext(), cfg))

	_, _, err = s.service.NextNumber(s.GetContext(), tenantID, types.DocumentKindInvoice, time.Now().UTC())
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *NumberingServiceSuite) TestMissingSettingsFails() {
	_, _, err := s.service.NextNumber(s.GetContext(), "tenant_unseeded", types.DocumentKindInvoice, time.Now().UTC())
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
