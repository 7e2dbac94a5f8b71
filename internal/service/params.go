package service

import (
	"github.com/fakturo/fakturo/internal/auth"
	"github.com/fakturo/fakturo/internal/config"
	"github.com/fakturo/fakturo/internal/domain/customer"
	"github.com/fakturo/fakturo/internal/domain/document"
	"github.com/fakturo/fakturo/internal/domain/membership"
	"github.com/fakturo/fakturo/internal/domain/product"
	"github.com/fakturo/fakturo/internal/domain/settings"
	"github.com/fakturo/fakturo/internal/domain/tenant"
	"github.com/fakturo/fakturo/internal/email"
	"github.com/fakturo/fakturo/internal/httpclient"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/pdf"
	"github.com/fakturo/fakturo/internal/postgres"
	"github.com/fakturo/fakturo/internal/webhook"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	TenantRepo     tenant.Repository
	MembershipRepo membership.Repository
	SettingsRepo   settings.Repository
	CustomerRepo   customer.Repository
	ProductRepo    product.Repository
	DocumentRepo   document.Repository

	// Collaborators
	AuthProvider     auth.Provider
	PDFGenerator     pdf.Generator
	EmailSender      email.Sender
	WebhookPublisher webhook.Publisher

	// http client
	Client httpclient.Client
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	tenantRepo tenant.Repository,
	membershipRepo membership.Repository,
	settingsRepo settings.Repository,
	customerRepo customer.Repository,
	productRepo product.Repository,
	documentRepo document.Repository,
	authProvider auth.Provider,
	pdfGenerator pdf.Generator,
	emailSender email.Sender,
	webhookPublisher webhook.Publisher,
	client httpclient.Client,
) ServiceParams {
	return ServiceParams{
		Logger:           logger,
		Config:           config,
		DB:               db,
		TenantRepo:       tenantRepo,
		MembershipRepo:   membershipRepo,
		SettingsRepo:     settingsRepo,
		CustomerRepo:     customerRepo,
		ProductRepo:      productRepo,
		DocumentRepo:     documentRepo,
		AuthProvider:     authProvider,
		PDFGenerator:     pdfGenerator,
		EmailSender:      emailSender,
		WebhookPublisher: webhookPublisher,
		Client:           client,
	}
}
