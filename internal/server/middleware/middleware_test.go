package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/service/auth"
)

type fakeParser map[string]auth.Principal

func (f fakeParser) ParseToken(token string) (auth.Principal, error) {
	p, ok := f[token]
	if !ok {
		return auth.Principal{}, errors.New("bad token")
	}
	return p, nil
}

func newEngine(t *testing.T, roles ...models.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	parser := fakeParser{
		"admin-token":  {UserID: 1, Username: "admin", Roles: []models.Role{models.RoleAdmin}},
		"seller-token": {UserID: 2, Username: "vendedor", Roles: []models.Role{models.RoleSeller}},
	}

	r := gin.New()
	r.GET("/private", Authenticate(parser, nil), RequireRoles(roles...), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.String(http.StatusOK, p.Username)
	})
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	r := newEngine(t, models.RoleAdmin, models.RoleSeller)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"no header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic admin-token", http.StatusUnauthorized, ""},
		{"unknown token", "Bearer forged", http.StatusUnauthorized, ""},
		{"admin", "Bearer admin-token", http.StatusOK, "admin"},
		{"lower-case scheme", "bearer seller-token", http.StatusOK, "vendedor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.header)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	r := newEngine(t, models.RoleAdmin)

	assert.Equal(t, http.StatusOK, do(r, "Bearer admin-token").Code)

	w := do(r, "Bearer seller-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"access denied"}`, w.Body.String())
}

func TestRequestIDAndLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestID(), ZapLogger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)

	entries := logs.FilterMessage("request completed").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, id, fields["request_id"])
		assert.Equal(t, int64(http.StatusNoContent), fields["status"])
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
