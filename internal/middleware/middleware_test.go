package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tgcatalog/models"
	"tgcatalog/pkg/storage"
)

type fakeUsers map[string]*models.User

func (f fakeUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := f[username]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func newRouter(users UserLookup, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{AuthRequired("secret", users, nil)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleRequired(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": Role(c)})
	})
	r.GET("/private", handlers...)
	return r
}

func do(r http.Handler, token, username string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if username != "" {
		req.Header.Set(UsernameHeader, username)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	users := fakeUsers{"ivan": {Username: "ivan"}}
	r := newRouter(users)

	assert.Equal(t, http.StatusUnauthorized, do(r, "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "wrong", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "secret", "ghost").Code)

	w := do(r, "secret", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"guest"}`, w.Body.String())

	w = do(r, "secret", "ivan")
	assert.JSONEq(t, `{"role":"user"}`, w.Body.String())
}

func TestAuthRequiredEmptyTokenClosesRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", AuthRequired("", nil, nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, do(r, "", "").Code)
}

type failingUsers struct{}

func (failingUsers) GetUserByUsername(context.Context, string) (*models.User, error) {
	return nil, errors.New("connection refused")
}

func TestAuthRequiredLogsLookupError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.GET("/private", AuthRequired("secret", failingUsers{}, zap.New(core)), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, "secret", "ivan")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "ivan", entries[0].ContextMap()["username"])
	}
}

func TestRoleRequired(t *testing.T) {
	users := fakeUsers{
		"ivan":    {Username: "ivan"},
		"partner": {Username: "partner", PartnerStatus: models.PartnerActive},
		"pending": {Username: "pending", PartnerStatus: models.PartnerPending},
		"admin":   {Username: "admin", IsSuperuser: true},
	}
	r := newRouter(users, models.RolePartner)

	assert.Equal(t, http.StatusForbidden, do(r, "secret", "").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "secret", "ivan").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "secret", "pending").Code)
	assert.Equal(t, http.StatusOK, do(r, "secret", "partner").Code)
	assert.Equal(t, http.StatusOK, do(r, "secret", "admin").Code)

	w := do(r, "secret", "ivan")
	assert.JSONEq(t, `{"error":"Доступ запрещён"}`, w.Body.String())
}

func TestRequestIDAndAccessLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	known := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, known)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, known, w.Header().Get(RequestIDHeader))

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "/ping", entries[0].ContextMap()["path"])
		assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	}
}
