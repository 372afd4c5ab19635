package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"proptoken/internal/models"
	"proptoken/internal/services"
	"proptoken/internal/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Register()
	os.Exit(m.Run())
}

// injectKYCID simulates an authenticated session in handler tests.
func injectKYCID(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("kycID", id)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --- mock kyc service ---

type mockKYCService struct {
	verifyFn        func(sub services.KYCSubmission) (*models.KYCRecord, error)
	getRecordByIDFn func(id string) (*models.KYCRecord, error)
}

func (m *mockKYCService) Verify(sub services.KYCSubmission) (*models.KYCRecord, error) {
	if m.verifyFn != nil {
		return m.verifyFn(sub)
	}
	return &models.KYCRecord{}, nil
}

func (m *mockKYCService) GetRecordByID(id string) (*models.KYCRecord, error) {
	if m.getRecordByIDFn != nil {
		return m.getRecordByIDFn(id)
	}
	return &models.KYCRecord{}, nil
}

var _ services.KYCServicer = (*mockKYCService)(nil)

// --- mock audit service ---

type mockAuditService struct{}

func (m *mockAuditService) Log(kycRecordID, action, entityType, entityID, ipAddress string, details map[string]interface{}) {
}

var _ services.AuditServicer = (*mockAuditService)(nil)

func setupKYCRouter(handler *KYCHandler, kycID string) *gin.Engine {
	r := gin.New()
	r.POST("/kyc/verify", handler.VerifyKYC)
	r.GET("/kyc/status", injectKYCID(kycID), handler.GetStatus)
	return r
}

const validSubmission = `{
	"full_name": "Ayesha Khan",
	"email": "ayesha@example.com",
	"phone": "+92-300-1234567",
	"address": "House 12, F-8, Islamabad",
	"date_of_birth": "1988-06-15",
	"national_id": "61101-1234567-1",
	"id_document": "cnic.png",
	"address_proof": "utility_bill.png"
}`

func TestVerifyKYCHandler(t *testing.T) {
	t.Run("verified_issues_token", func(t *testing.T) {
		svc := &mockKYCService{
			verifyFn: func(sub services.KYCSubmission) (*models.KYCRecord, error) {
				record := &models.KYCRecord{Verified: true, FullName: sub.FullName, Email: sub.Email}
				record.ID = "4f5a8a44-0000-7000-8000-000000000001"
				return record, nil
			},
		}
		r := setupKYCRouter(NewKYCHandler(svc, &mockAuditService{}), "")

		w := doRequest(r, http.MethodPost, "/kyc/verify", validSubmission)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp VerificationResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if !resp.Verified {
			t.Error("expected verified outcome")
		}
		if resp.Token == "" {
			t.Error("expected a session token")
		}
	})

	t.Run("rejected_has_no_token", func(t *testing.T) {
		svc := &mockKYCService{
			verifyFn: func(sub services.KYCSubmission) (*models.KYCRecord, error) {
				record := &models.KYCRecord{
					Verified:        false,
					RejectionReason: "Document quality insufficient or information mismatch",
				}
				record.ID = "4f5a8a44-0000-7000-8000-000000000002"
				return record, nil
			},
		}
		r := setupKYCRouter(NewKYCHandler(svc, &mockAuditService{}), "")

		w := doRequest(r, http.MethodPost, "/kyc/verify", validSubmission)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var resp VerificationResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if resp.Verified || resp.Token != "" {
			t.Errorf("rejected outcome should carry no token: %+v", resp)
		}
		if resp.RejectionReason == "" {
			t.Error("expected a rejection reason")
		}
	})

	t.Run("missing_required_field", func(t *testing.T) {
		r := setupKYCRouter(NewKYCHandler(&mockKYCService{}, &mockAuditService{}), "")

		w := doRequest(r, http.MethodPost, "/kyc/verify", `{"full_name": "Ayesha Khan"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid_email", func(t *testing.T) {
		r := setupKYCRouter(NewKYCHandler(&mockKYCService{}, &mockAuditService{}), "")

		body := strings.Replace(validSubmission, "ayesha@example.com", "not-an-email", 1)
		w := doRequest(r, http.MethodPost, "/kyc/verify", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestGetStatusHandler(t *testing.T) {
	t.Run("returns_record", func(t *testing.T) {
		svc := &mockKYCService{
			getRecordByIDFn: func(id string) (*models.KYCRecord, error) {
				record := &models.KYCRecord{Verified: true, FullName: "Ayesha Khan"}
				record.ID = id
				return record, nil
			},
		}
		r := setupKYCRouter(NewKYCHandler(svc, &mockAuditService{}), "some-kyc-id")

		w := doRequest(r, http.MethodGet, "/kyc/status", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Ayesha Khan") {
			t.Error("expected the record in the response")
		}
	})
}
