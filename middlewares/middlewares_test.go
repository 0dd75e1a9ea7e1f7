package middlewares

import (
	"HospitalAdmin/forms"
	"HospitalAdmin/repositories"
	"HospitalAdmin/services"
	"HospitalAdmin/session"
	"HospitalAdmin/workflow"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

func guarded(t *testing.T) (*gin.Engine, *session.Manager) {
	t.Helper()
	manager, err := session.NewManager(testKey)
	require.NoError(t, err)

	r := gin.New()
	r.Use(SessionResolver(manager))
	r.GET(AuthPath, RedirectIfAuthenticated("/"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"screen": "auth"})
	})
	protected := r.Group("/", RequireSession())
	protected.GET("/patients", func(c *gin.Context) {
		s, _ := session.FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user": s.UserID})
	})
	return r, manager
}

func TestRequireSessionRedirectsNavigation(t *testing.T) {
	r, _ := guarded(t)

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, AuthPath, w.Header().Get("Location"))
}

func TestRequireSessionRejectsAPICall(t *testing.T) {
	r, _ := guarded(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/patients", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "UNAUTHENTICATED", body.Code)
	assert.Equal(t, map[string]interface{}{"redirect": AuthPath}, body.Details)
}

func TestRequireSessionAdmitsValidToken(t *testing.T) {
	r, manager := guarded(t)
	token, err := manager.Issue("user-1", "admin@hospital.test", "admin", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"user-1"}`, w.Body.String())
}

func TestInvalidTokenIsTreatedAsAnonymous(t *testing.T) {
	r, _ := guarded(t)

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.Header.Set("Authorization", "Bearer v2.local.garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthScreenRedirectsSignedInUsers(t *testing.T) {
	r, manager := guarded(t)
	token, err := manager.Issue("user-1", "admin@hospital.test", "admin", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, AuthPath, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, AuthPath, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"screen":"auth"}`, w.Body.String())
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{forms.FieldErrors{"name": "Ward name is required"}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{fmt.Errorf("%w: unexpected end of JSON input", forms.ErrMalformedBody), http.StatusBadRequest, "MALFORMED_BODY"},
		{fmt.Errorf("get ward: %w", repositories.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{&services.RuleError{Message: "Cannot delete ward with assigned beds", Err: repositories.ErrHasDependents}, http.StatusConflict, "HAS_DEPENDENTS"},
		{repositories.ErrBedUnavailable, http.StatusConflict, "BED_UNAVAILABLE"},
		{workflow.ErrDialogBusy, http.StatusConflict, "DIALOG_STATE"},
		{services.ErrNotImplemented, http.StatusNotImplemented, "NOT_IMPLEMENTED"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		status, code, _ := Classify(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}

func TestHttpErrorEnvelope(t *testing.T) {
	r := gin.New()
	r.DELETE("/wards/:id", func(c *gin.Context) {
		HttpError(c, "Failed to delete ward", &services.RuleError{
			Message: "Cannot delete ward with assigned beds",
			Err:     repositories.ErrHasDependents,
		})
	})
	r.POST("/wards", func(c *gin.Context) {
		HttpError(c, "Failed to create ward", forms.FieldErrors{"name": "Ward name is required"})
	})
	r.GET("/wards", func(c *gin.Context) {
		HttpError(c, "Failed to fetch wards", errors.New("dial tcp: refused"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/wards/1", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Cannot delete ward with assigned beds","code":"HAS_DEPENDENTS"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/wards", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"Please correct the highlighted fields","code":"VALIDATION_ERROR","details":{"name":"Ward name is required"}}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wards", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch wards","code":"INTERNAL_ERROR"}`, w.Body.String())
}

func TestRateLimiterPerClient(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiterMiddleware(RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 1}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))
}

func TestCorsPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CorsMiddleware(NewCorsConfig([]string{"http://localhost:3000"})))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
