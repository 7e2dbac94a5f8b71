package testutil

import (
	"context"
	"time"

	"github.com/fakturo/fakturo/internal/config"
	"github.com/fakturo/fakturo/internal/domain/customer"
	"github.com/fakturo/fakturo/internal/domain/document"
	"github.com/fakturo/fakturo/internal/domain/membership"
	"github.com/fakturo/fakturo/internal/domain/product"
	"github.com/fakturo/fakturo/internal/domain/settings"
	"github.com/fakturo/fakturo/internal/domain/tenant"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/postgres"
	"github.com/fakturo/fakturo/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	TenantRepo     tenant.Repository
	MembershipRepo membership.Repository
	SettingsRepo   settings.Repository
	CustomerRepo   customer.Repository
	ProductRepo    product.Repository
	DocumentRepo   document.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx              context.Context
	stores           Stores
	db               postgres.IClient
	logger           *logger.Logger
	config           *config.Configuration
	now              time.Time
	authProvider     *MockAuthProvider
	pdfGenerator     *MockPDFGenerator
	emailSender      *MockEmailSender
	webhookPublisher *InMemoryWebhookPublisher
}

// SetupSuite initializes shared resources
func (s *BaseServiceTestSuite) SetupSuite() {
	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger(s.config)
	s.Require().NoError(err)
}

// SetupTest prepares fresh state for each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = types.SetUserID(context.Background(), types.DefaultUserID)
	s.now = time.Now().UTC()

	s.stores = Stores{
		TenantRepo:     NewInMemoryTenantStore(),
		MembershipRepo: NewInMemoryMembershipStore(),
		SettingsRepo:   NewInMemorySettingsStore(),
		CustomerRepo:   NewInMemoryCustomerStore(),
		ProductRepo:    NewInMemoryProductStore(),
		DocumentRepo:   NewInMemoryDocumentStore(),
	}
	s.db = NewMockPostgresClient()
	s.authProvider = NewMockAuthProvider()
	s.pdfGenerator = NewMockPDFGenerator()
	s.emailSender = NewMockEmailSender()
	s.webhookPublisher = NewInMemoryWebhookPublisher()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

func (s *BaseServiceTestSuite) GetAuthProvider() *MockAuthProvider {
	return s.authProvider
}

func (s *BaseServiceTestSuite) GetPDFGenerator() *MockPDFGenerator {
	return s.pdfGenerator
}

func (s *BaseServiceTestSuite) GetEmailSender() *MockEmailSender {
	return s.emailSender
}

func (s *BaseServiceTestSuite) GetWebhookPublisher() *InMemoryWebhookPublisher {
	return s.webhookPublisher
}
