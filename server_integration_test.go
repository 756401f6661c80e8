package main

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"regfee/pkg/receiptocr"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func setupTestServer(t *testing.T) http.Handler {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	tmp := t.TempDir()
	_ = os.Setenv("UPLOAD_BASE", tmp)
	jwtSecret = []byte("test-secret")
	orch = receiptocr.NewOrchestrator(receiptocr.NewTesseractEngine(), nil)
	gin.SetMode(gin.TestMode)
	initDB()
	r := gin.Default()
	setupRoutes(r)
	return r
}

func itoa(v int) string { return strconv.Itoa(v) }

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)

	// 1. Register staff user
	regBody, _ := json.Marshal(map[string]string{"username": "staff1", "password": "pass123"})
	resp := performRequest(r, http.MethodPost, "/register", bytes.NewBuffer(regBody), "", "application/json")
	if resp.Code != 200 && resp.Code != 409 {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 2. Login
	loginBody, _ := json.Marshal(map[string]string{"username": "staff1", "password": "pass123"})
	resp = performRequest(r, http.MethodPost, "/login", bytes.NewBuffer(loginBody), "", "application/json")
	if resp.Code != 200 {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var loginResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &loginResp)
	token, _ := loginResp["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %+v", loginResp)
	}

	// 3. Create a registration
	createBody, _ := json.Marshal(map[string]string{
		"attendee_name": "Test Attendee",
		"email":         "attendee@example.com",
		"fee_due":       "1500.00",
	})
	resp = performRequest(r, http.MethodPost, "/registrations", bytes.NewBuffer(createBody), token, "application/json")
	if resp.Code != 200 && resp.Code != 409 {
		t.Fatalf("create registration failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 4. List registrations, grab an id
	resp = performRequest(r, http.MethodGet, "/registrations", nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("list registrations failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var regs []map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &regs)
	if len(regs) == 0 {
		t.Fatalf("expected at least one registration")
	}
	regID := int(regs[0]["ID"].(float64))

	// 5. Upload a proof image. The bytes are not a decodable image, so the
	// pipeline degrades to an empty suggestion with should_manual set.
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	_ = mw.WriteField("registration_id", itoa(regID))
	w, _ := mw.CreateFormFile("file", "proof.jpg")
	_, _ = w.Write([]byte("NOT A REAL IMAGE"))
	_ = mw.Close()
	resp = performRequest(r, http.MethodPost, "/uploads", buf, token, mw.FormDataContentType())
	if resp.Code != 200 {
		t.Fatalf("upload failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var upResp struct {
		PaymentID  uint                  `json:"payment_id"`
		UploadID   uint                  `json:"upload_id"`
		Suggestion receiptocr.Suggestion `json:"suggestion"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &upResp)
	if upResp.PaymentID == 0 {
		t.Fatalf("upload did not create a payment: %s", resp.Body.String())
	}
	if !upResp.Suggestion.ShouldManual {
		t.Fatalf("undecodable image should flag manual review: %+v", upResp.Suggestion)
	}

	// 6. Verify the payment manually
	verifyBody, _ := json.Marshal(map[string]any{
		"status": "verified",
		"amount": "1500.00",
		"ref":    "MANUAL123",
	})
	resp = performRequest(r, http.MethodPost, "/payments/"+itoa(int(upResp.PaymentID))+"/verify", bytes.NewBuffer(verifyBody), token, "application/json")
	if resp.Code != 200 {
		t.Fatalf("verify payment failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 7. List payments and the verified summary
	resp = performRequest(r, http.MethodGet, "/payments?status=verified", nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("list payments failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/payments/summary", nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("payments summary failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 8. List uploads
	resp = performRequest(r, http.MethodGet, "/uploads", nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("list uploads failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 9. Unauthorized access to protected endpoint should be 401
	unauth := performRequest(r, http.MethodGet, "/payments", nil, "", "")
	if unauth.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthorized list payments got %d", unauth.Code)
	}
}

func TestMigrateCommand(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	initDB()
}
