package integration

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"proptoken/internal/handlers"
	"proptoken/internal/logger"
	"proptoken/internal/middleware"
	"proptoken/internal/models"
	"proptoken/internal/services"
	"proptoken/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Property{},
		&models.KYCRecord{},
		&models.Investment{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
// The document review gate always passes, so verification outcomes depend only
// on the submission itself.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	return setupAppWithGate(t, func() bool { return true })
}

// setupAppWithGate is setupApp with a caller-chosen document review gate.
func setupAppWithGate(t *testing.T, gate func() bool) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	rng := rand.New(rand.NewSource(42))

	// Services
	propertyService := services.NewPropertyService(db, rng)
	kycService := services.NewKYCService(db, gate)
	investmentService := services.NewInvestmentService(db, 100000, 0.02)
	marketDataService := services.NewMarketDataService(rand.New(rand.NewSource(42)))
	analyticsService := services.NewAnalyticsService(marketDataService, 3, 30*time.Second)
	auditService := services.NewAuditService(db)

	// Handlers
	kycHandler := handlers.NewKYCHandler(kycService, auditService)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, kycService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

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

	protected.GET("/kyc/status", kycHandler.GetStatus)

	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.ListInvestments)
	investments.GET("/:id/invoice", investmentHandler.GetInvoice)

	protected.GET("/portfolio", investmentHandler.GetPortfolio)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// kycSubmission builds a complete verification payload for the given identity.
func kycSubmission(name, email string) string {
	return fmt.Sprintf(`{
		"full_name": %q,
		"email": %q,
		"phone": "+92-300-1234567",
		"address": "House 12, F-8, Islamabad",
		"date_of_birth": "1988-06-15",
		"national_id": "61101-1234567-1",
		"id_document": "cnic.png",
		"address_proof": "utility_bill.png"
	}`, name, email)
}

// verifyInvestor runs a complete verification and returns the session token
// and the verification record ID.
func (app *testApp) verifyInvestor(t *testing.T, name, email string) (token, recordID string) {
	t.Helper()
	rec := app.request("POST", "/api/v1/kyc/verify", kycSubmission(name, email), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("verification failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if verified, _ := result["verified"].(bool); !verified {
		t.Fatalf("expected verified outcome, got %s", rec.Body.String())
	}
	return result["token"].(string), result["record_id"].(string)
}

// registerProperty creates a listing and returns its code.
func (app *testApp) registerProperty(t *testing.T, name string, price, supply int64, roi float64) string {
	t.Helper()
	body := fmt.Sprintf(`{
		"name": %q,
		"location": "Lahore",
		"price": %d,
		"roi": %g,
		"tokens_supply": %d,
		"property_type": "Residential"
	}`, name, price, roi, supply)
	rec := app.request("POST", "/api/v1/properties", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("property registration failed: %d %s", rec.Code, rec.Body.String())
	}
	property := parseJSON(t, rec)["property"].(map[string]interface{})
	return property["code"].(string)
}
