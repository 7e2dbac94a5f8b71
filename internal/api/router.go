package api

import (
	v1 "github.com/fakturo/fakturo/internal/api/v1"
	"github.com/fakturo/fakturo/internal/config"
	"github.com/fakturo/fakturo/internal/logger"
	"github.com/fakturo/fakturo/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Auth     *v1.AuthHandler
	Tenant   *v1.TenantHandler
	Settings *v1.SettingsHandler
	Customer *v1.CustomerHandler
	Product  *v1.ProductHandler
	Document *v1.DocumentHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Public := router.Group("/v1")
	{
		auth := v1Public.Group("/auth")
		auth.POST("/signup", handlers.Auth.SignUp)
		auth.POST("/login", handlers.Auth.Login)
	}

	v1Private := router.Group("/v1")
	v1Private.Use(middleware.AuthenticateMiddleware(cfg, log))
	registerV1Routes(v1Private, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	router.GET("/tenant", handlers.Tenant.GetTenant)
	router.PUT("/tenant", handlers.Tenant.UpdateTenant)
	router.GET("/tenant/members", handlers.Tenant.ListMembers)

	router.GET("/settings", handlers.Settings.GetSettings)
	router.PUT("/settings", handlers.Settings.UpdateSettings)

	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.ListCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.PUT("/:id", handlers.Customer.UpdateCustomer)
		customers.DELETE("/:id", handlers.Customer.DeleteCustomer)
	}

	products := router.Group("/products")
	{
		products.POST("", handlers.Product.CreateProduct)
		products.GET("", handlers.Product.ListProducts)
		products.GET("/:id", handlers.Product.GetProduct)
		products.PUT("/:id", handlers.Product.UpdateProduct)
		products.DELETE("/:id", handlers.Product.DeleteProduct)
		products.POST("/:id/duplicate", handlers.Product.DuplicateProduct)
	}

	documents := router.Group("/documents")
	{
		documents.POST("", handlers.Document.CreateDocument)
		documents.GET("", handlers.Document.ListDocuments)
		documents.GET("/:id", handlers.Document.GetDocument)
		documents.PUT("/:id", handlers.Document.UpdateDocument)
		documents.DELETE("/:id", handlers.Document.DeleteDocument)

		documents.POST("/:id/send", handlers.Document.SendDocument)
		documents.GET("/:id/pdf", handlers.Document.DownloadDocument)
		documents.POST("/:id/pay", handlers.Document.MarkPaid)
		documents.POST("/:id/accept", handlers.Document.AcceptOffer)
		documents.POST("/:id/reject", handlers.Document.RejectOffer)
		documents.POST("/:id/duplicate", handlers.Document.DuplicateDocument)
		documents.PUT("/:id/status", handlers.Document.OverrideStatus)
		documents.DELETE("/:id/duplicate-marker", handlers.Document.ClearDuplicateMarker)
	}
}
