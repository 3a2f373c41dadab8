// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/garrybad/icon-kreatif-cms/internal/config"
	"github.com/garrybad/icon-kreatif-cms/internal/handlers"
	"github.com/garrybad/icon-kreatif-cms/internal/middleware"
	"github.com/garrybad/icon-kreatif-cms/internal/repository"
	"github.com/garrybad/icon-kreatif-cms/internal/services"
)

// Setup wires stores, services and handlers and returns the HTTP engine.
func Setup(db *gorm.DB, cfg *config.Config, log *logrus.Logger) (*gin.Engine, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	products := repository.NewGormProductStore(db)
	categories := repository.NewGormCategoryStore(db)
	business := repository.NewGormBusinessStore(db)

	catalogService := services.NewCatalogService(products, categories, cfg.Catalog)
	businessService := services.NewBusinessService(business)

	authService, err := services.NewAuthService(cfg)
	if err != nil {
		return nil, err
	}

	backend, err := imageBackend(cfg)
	if err != nil {
		return nil, err
	}
	previews := services.NewPreviewRegistry()

	productHandler := handlers.NewProductHandler(catalogService, backend, previews, cfg.Catalog.MaxImageSize)
	categoryHandler := handlers.NewCategoryHandler(catalogService)
	businessHandler := handlers.NewBusinessHandler(businessService)
	authHandler := handlers.NewAuthHandler(authService)
	publicHandler := handlers.NewPublicHandler(catalogService, businessService)
	previewHandler := handlers.NewPreviewHandler(previews)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	// The storefront is consumed from arbitrary origins.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Use(middleware.LoginRateLimit())
	{
		auth.POST("/login", authHandler.Login)
	}

	public := v1.Group("")
	public.Use(middleware.GeneralRateLimit())
	{
		public.GET("/products", publicHandler.ListProducts)
		public.GET("/products/:slug", publicHandler.GetProduct)
		public.GET("/categories", publicHandler.ListCategories)
		public.GET("/business-details", publicHandler.BusinessDetails)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthRequired())
	{
		admin.GET("/products", productHandler.List)
		admin.GET("/products/category-options", productHandler.CategoryOptions)
		admin.GET("/products/slug-check", productHandler.CheckSlug)
		admin.GET("/products/:id", productHandler.Get)
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)

		admin.GET("/categories", categoryHandler.List)
		admin.POST("/categories", categoryHandler.Create)
		admin.PUT("/categories/:id", categoryHandler.Rename)
		admin.DELETE("/categories/:id", categoryHandler.Delete)

		admin.GET("/business-details", businessHandler.Get)
		admin.PUT("/business-details", businessHandler.Save)

		admin.GET("/previews/:token", previewHandler.Get)
	}

	return r, nil
}

// imageBackend picks the encoding strategy from config: inline data URIs for
// small deployments, S3 uploads otherwise.
func imageBackend(cfg *config.Config) (services.ImageBackend, error) {
	switch cfg.Catalog.ImageStorage {
	case config.ImageStorageS3:
		storage, err := services.NewStorageService(cfg)
		if err != nil {
			return nil, err
		}
		return services.NewUploadBackend(storage), nil
	default:
		return services.NewInlineBackend(), nil
	}
}
