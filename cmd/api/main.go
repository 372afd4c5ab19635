package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"proptoken/internal/config"
	"proptoken/internal/database"
	"proptoken/internal/handlers"
	"proptoken/internal/logger"
	"proptoken/internal/metrics"
	"proptoken/internal/middleware"
	"proptoken/internal/services"
	"proptoken/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "proptoken/internal/docs" // Import swagger docs
)

// @title           PropToken API
// @version         1.0
// @description     PropToken is a fractional real-estate investment platform: a tokenized property catalog, identity verification, token allocation, and ROI analytics.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	propertyService := services.NewPropertyService(db, rng)
	kycService := services.NewKYCService(db, services.RandomPassGate(appConfig.KYCPassRate, rng))
	investmentService := services.NewInvestmentService(db, appConfig.MinimumTicket, appConfig.FeeRate)
	marketDataService := services.NewMarketDataService(rng)
	analyticsService := services.NewAnalyticsService(marketDataService, appConfig.AnalyticsWorkers, appConfig.StageTimeout)
	auditService := services.NewAuditService(db)

	// Seed the demo catalog on first boot
	if seeded, err := propertyService.SeedDemoCatalog(); err != nil {
		return fmt.Errorf("failed to seed demo catalog: %w", err)
	} else if seeded > 0 {
		log.Infof("Seeded demo catalog with %d properties", seeded)
	}

	// Initialize handlers
	kycHandler := handlers.NewKYCHandler(kycService, auditService)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, kycService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(metrics.Middleware())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics endpoint
	router.GET("/metrics", metrics.Handler())

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	kyc := v1.Group("/kyc")
	kyc.POST("/verify", kycHandler.VerifyKYC)

	properties := v1.Group("/properties")
	properties.POST("", propertyHandler.RegisterProperty)
	properties.GET("", propertyHandler.ListProperties)
	properties.GET("/:code", propertyHandler.GetProperty)

	analytics := v1.Group("/analytics")
	analytics.POST("/report", analyticsHandler.RunReport)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Verification status
	protected.GET("/kyc/status", kycHandler.GetStatus)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.ListInvestments)
	investments.GET("/:id/invoice", investmentHandler.GetInvoice)

	// Portfolio
	protected.GET("/portfolio", investmentHandler.GetPortfolio)

	log.Infof("Starting PropToken backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
