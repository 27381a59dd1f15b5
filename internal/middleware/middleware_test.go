package middleware

import (
	"connectingbr/internal/domain"
	"connectingbr/internal/utils"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

type stubUsers map[uint]*domain.User

func (s stubUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	if id == 500 {
		return nil, domain.NewStorageError("user.find", errors.New("db down"))
	}
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func newRouter(users stubUsers, roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{JWTAuthMiddleware(secret, users)}
	if len(roles) > 0 {
		chain = append(chain, RequireRole(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": c.MustGet(UserIDKey), "email": user.Email})
	})
	r.GET("/me", chain...)
	return r
}

func request(t *testing.T, r http.Handler, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, userID uint) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, "someone@example.com", secret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestJWTAuthMiddleware(t *testing.T) {
	users := stubUsers{1: {ID: 1, Email: "client@example.com", Role: domain.RoleClient}}
	r := newRouter(users)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", bearer(t, 1), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"deleted user", bearer(t, 2), http.StatusUnauthorized},
		{"lookup failure", bearer(t, 500), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, r, tt.header)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	w := request(t, r, bearer(t, 1))
	assert.JSONEq(t, `{"id":1,"email":"client@example.com"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	users := stubUsers{
		1: {ID: 1, Role: domain.RoleClient},
		2: {ID: 2, Role: domain.RoleAdmin},
		3: {ID: 3, Role: domain.RoleProfessional},
	}
	r := newRouter(users, domain.RoleAdmin, domain.RoleProfessional)

	assert.Equal(t, http.StatusForbidden, request(t, r, bearer(t, 1)).Code)
	assert.Equal(t, http.StatusOK, request(t, r, bearer(t, 2)).Code)
	assert.Equal(t, http.StatusOK, request(t, r, bearer(t, 3)).Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:4200"}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:4200", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
