package main

import (
	"context"
	"time"

	"github.com/fakturo/fakturo/internal/api"
	v1 "github.com/fakturo/fakturo/internal/api/v1"
	"github.com/fakturo/fakturo/internal/auth"
	"github.com/fakturo/fakturo/internal/cache"
	"github.com/fakturo/fakturo/internal/config"
	"github.com/fakturo/fakturo/internal/email"
	"github.com/fakturo/fakturo/internal/httpclient"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/pdf"
	"github.com/fakturo/fakturo/internal/postgres"
	repo "github.com/fakturo/fakturo/internal/repository/postgres"
	"github.com/fakturo/fakturo/internal/service"
	"github.com/fakturo/fakturo/internal/types"
	"github.com/fakturo/fakturo/internal/webhook"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			newCache,
			postgres.NewClient,
			httpclient.NewDefaultClient,
			auth.NewProvider,
			pdf.NewGenerator,
			email.NewSender,
			webhook.NewPublisher,
		),
	)

	// Repositories
	opts = append(opts,
		fx.Provide(
			repo.NewTenantRepository,
			repo.NewMembershipRepository,
			repo.NewSettingsRepository,
			repo.NewCustomerRepository,
			repo.NewProductRepository,
			repo.NewDocumentRepository,
		),
	)

	// Services
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewAuthService,
			service.NewTenantService,
			service.NewSettingsService,
			service.NewCustomerService,
			service.NewProductService,
			service.NewDocumentService,
		),
	)

	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	fx.New(opts...).Run()
}

func newCache() cache.Cache {
	return cache.NewInMemoryCache()
}

func provideHandlers(
	log *logger.Logger,
	authService service.AuthService,
	tenantService service.TenantService,
	settingsService service.SettingsService,
	customerService service.CustomerService,
	productService service.ProductService,
	documentService service.DocumentService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(log),
		Auth:     v1.NewAuthHandler(authService, log),
		Tenant:   v1.NewTenantHandler(tenantService, log),
		Settings: v1.NewSettingsHandler(settingsService, log),
		Customer: v1.NewCustomerHandler(customerService, log),
		Product:  v1.NewProductHandler(productService, log),
		Document: v1.NewDocumentHandler(documentService, log),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers, cfg, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db postgres.IClient,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow("starting server", "address", cfg.Server.Address)
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalw("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return db.Close()
		},
	})
}
