package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vendstack/vendor-api/internal/config"
	"github.com/vendstack/vendor-api/internal/domain"
	"github.com/vendstack/vendor-api/internal/http/middleware"
	"github.com/vendstack/vendor-api/internal/store"
)

const testSecret = "router-test-secret"

func testConfig() config.Config {
	return config.Config{
		JWTSecret: testSecret,
		RateRPS:   1000,
		RateBurst: 1000,
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		},
	}
}

func newTestRouter(t *testing.T, st *store.Memory) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, st, testConfig())
	return r
}

func token(t *testing.T, userID int, orgID *int) string {
	t.Helper()
	claims := middleware.Claims{
		User: middleware.TokenUser{ID: userID, OrgID: orgID, Role: "user"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

type wireEnvelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, r *gin.Engine, method, path, body, bearer string) (*httptest.ResponseRecorder, wireEnvelope) {
	t.Helper()
	var rd *bytes.Buffer
	if body != "" {
		rd = bytes.NewBufferString(body)
	} else {
		rd = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var e wireEnvelope
	_ = json.Unmarshal(w.Body.Bytes(), &e)
	return w, e
}

func TestRootDescriptor(t *testing.T) {
	r := newTestRouter(t, store.NewMemorySeeded())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body struct {
		Message       string `json:"message"`
		Version       string `json:"version"`
		Documentation string `json:"documentation"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Message != "Vendor Management API" || body.Version != "1.0.0" || body.Documentation != "/api/docs" {
		t.Fatalf("descriptor = %+v", body)
	}
}

func TestHealthMetricsAndFallbacks(t *testing.T) {
	r := newTestRouter(t, store.NewMemorySeeded())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	w, e := do(t, r, http.MethodGet, "/nope", "", "")
	if w.Code != http.StatusNotFound || e.Success || e.Message == "" {
		t.Fatalf("NoRoute: code=%d envelope=%+v", w.Code, e)
	}

	w, e = do(t, r, http.MethodPost, "/health", "", "")
	if w.Code != http.StatusMethodNotAllowed || e.Success {
		t.Fatalf("NoMethod: code=%d envelope=%+v", w.Code, e)
	}
}

func TestVendorCRUD_EndToEnd(t *testing.T) {
	r := newTestRouter(t, store.NewMemorySeeded())
	orgID := 2
	owner := token(t, 7, &orgID)
	stranger := token(t, 8, nil)

	// Anonymous list sees the four seed vendors.
	w, e := do(t, r, http.MethodGet, "/api/vendors", "", "")
	if w.Code != http.StatusOK || e.Count == nil || *e.Count != 4 {
		t.Fatalf("seed list: code=%d envelope=%+v", w.Code, e)
	}

	// Create as the owner: owner references come from the token.
	w, e = do(t, r, http.MethodPost, "/api/vendors",
		`{"name":"Acme","category":"Tools"}`, owner)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: code=%d body=%s", w.Code, w.Body.String())
	}
	var created domain.Vendor
	if err := json.Unmarshal(e.Data, &created); err != nil {
		t.Fatalf("create data: %v", err)
	}
	if created.UserID == nil || *created.UserID != 7 || created.OrgID == nil || *created.OrgID != 2 {
		t.Fatalf("owner refs not stamped: %+v", created)
	}

	// Owner-scoped list contains exactly the new record; seed vendors have
	// no owner and are filtered out.
	w, e = do(t, r, http.MethodGet, "/api/vendors", "", owner)
	if w.Code != http.StatusOK || e.Count == nil || *e.Count != 1 {
		t.Fatalf("scoped list: code=%d envelope=%+v", w.Code, e)
	}

	// Anonymous list now holds five records, newest first.
	w, e = do(t, r, http.MethodGet, "/api/vendors", "", "")
	if *e.Count != 5 {
		t.Fatalf("unscoped list count=%d", *e.Count)
	}
	var all []domain.Vendor
	if err := json.Unmarshal(e.Data, &all); err != nil {
		t.Fatalf("list data: %v", err)
	}
	if all[0].ID != created.ID {
		t.Fatalf("newest record should lead the list, got id %d", all[0].ID)
	}

	path := "/api/vendors/" + strconv.Itoa(created.ID)

	// A different tenant cannot read, update, or delete it.
	if w, _ = do(t, r, http.MethodGet, path, "", stranger); w.Code != http.StatusNotFound {
		t.Fatalf("stranger get: %d", w.Code)
	}
	if w, _ = do(t, r, http.MethodPut, path, `{"name":"hijack"}`, stranger); w.Code != http.StatusNotFound {
		t.Fatalf("stranger update: %d", w.Code)
	}
	if w, _ = do(t, r, http.MethodDelete, path, "", stranger); w.Code != http.StatusNotFound {
		t.Fatalf("stranger delete: %d", w.Code)
	}

	// The owner updates a single field; the rest is preserved.
	w, e = do(t, r, http.MethodPut, path, `{"category":"Hardware"}`, owner)
	if w.Code != http.StatusOK {
		t.Fatalf("update: code=%d body=%s", w.Code, w.Body.String())
	}
	var updated domain.Vendor
	if err := json.Unmarshal(e.Data, &updated); err != nil {
		t.Fatalf("update data: %v", err)
	}
	if updated.Category != "Hardware" || updated.Name != "Acme" || updated.ID != created.ID {
		t.Fatalf("update result: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed on update")
	}

	// Delete as the owner, then the id is gone for everyone.
	w, e = do(t, r, http.MethodDelete, path, "", owner)
	if w.Code != http.StatusOK || !e.Success || e.Message != "Vendor deleted successfully" {
		t.Fatalf("delete: code=%d envelope=%+v", w.Code, e)
	}
	if string(e.Data) != "{}" {
		t.Fatalf("delete data = %s, want {}", e.Data)
	}
	if w, _ = do(t, r, http.MethodGet, path, "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %d", w.Code)
	}
	if w, _ = do(t, r, http.MethodDelete, path, "", owner); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: %d", w.Code)
	}
}

func TestInvalidTokenBehavesLikeNoToken(t *testing.T) {
	r := newTestRouter(t, store.NewMemorySeeded())

	w, e := do(t, r, http.MethodGet, "/api/vendors", "", "totally-bogus")
	if w.Code != http.StatusOK {
		t.Fatalf("invalid token must not reject: %d", w.Code)
	}
	if e.Count == nil || *e.Count != 4 {
		t.Fatalf("invalid token should behave anonymously: %+v", e)
	}
}

// Authenticated callers are limited per user, not per source address. With a
// burst of one, a second user calling from the same client IP still gets a
// fresh bucket, while the first user's immediate retry is throttled. This
// only works because the annotator runs before the limiter in the chain.
func TestRateLimiter_KeysOnAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.RateRPS = 0.001
	cfg.RateBurst = 1

	r := gin.New()
	RegisterRoutes(r, store.NewMemorySeeded(), cfg)

	first := token(t, 101, nil)
	second := token(t, 202, nil)

	// httptest requests all share one remote address.
	if w, _ := do(t, r, http.MethodGet, "/api/vendors", "", first); w.Code != http.StatusOK {
		t.Fatalf("first user initial request: %d", w.Code)
	}
	if w, _ := do(t, r, http.MethodGet, "/api/vendors", "", second); w.Code != http.StatusOK {
		t.Fatalf("second user must not share the first user's bucket: %d", w.Code)
	}

	w, e := do(t, r, http.MethodGet, "/api/vendors", "", first)
	if w.Code != http.StatusTooManyRequests || e.Success {
		t.Fatalf("first user retry: code=%d envelope=%+v", w.Code, e)
	}
	if e.Message != "Too many requests, please try again later" {
		t.Fatalf("throttle message = %q", e.Message)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("throttled response missing Retry-After")
	}
}

func TestCreateValidationThroughRouter(t *testing.T) {
	st := store.NewMemorySeeded()
	r := newTestRouter(t, st)

	w, e := do(t, r, http.MethodPost, "/api/vendors", `{"name":"NoCategory"}`, "")
	if w.Code != http.StatusBadRequest || e.Success {
		t.Fatalf("code=%d envelope=%+v", w.Code, e)
	}
	// No record was added.
	if got := len(st.List()); got != 4 {
		t.Fatalf("store count changed on rejected create: %d", got)
	}
}

