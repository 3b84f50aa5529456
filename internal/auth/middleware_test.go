package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fitadmin/internal/config"
)

func routerWithMiddleware(m *Middleware) *gin.Engine {
	router := gin.New()
	router.Use(m.Handler())
	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"auth_type": GetAuthType(c), "email": GetAdminEmail(c)})
	}
	router.GET("/health", ok)
	router.POST("/api/admin/login", ok)
	router.GET("/api/programs", ok)
	router.POST("/api/import", ok)
	return router
}

func TestMiddleware_NoAuthMode(t *testing.T) {
	router := routerWithMiddleware(NewMiddleware(nil, config.Auth{Mode: config.AuthModeNone}))

	for _, path := range []string{"/health", "/api/programs"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rr.Code)
		}
	}
}

func TestMiddleware_LocalMode(t *testing.T) {
	router := routerWithMiddleware(NewMiddleware(nil, config.Auth{Mode: config.AuthModeLocal}))

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodPost, "/api/admin/login", http.StatusOK},
		{http.MethodGet, "/api/programs", http.StatusUnauthorized},
		{http.MethodPost, "/api/import", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
			if tt.want == http.StatusUnauthorized && rr.Header().Get("Content-Type") != "application/json; charset=utf-8" {
				t.Errorf("401 should be JSON, got %q", rr.Header().Get("Content-Type"))
			}
		})
	}
}

func TestMiddleware_IsPublicPath(t *testing.T) {
	m := NewMiddleware(nil, config.Auth{Mode: config.AuthModeLocal})

	public := []string{"/health", "/ping", "/api/admin/login", "/api/admin/logout", "/"}
	for _, p := range public {
		if !m.IsPublicPath(p) {
			t.Errorf("%s should be public", p)
		}
	}
	private := []string{"/api/programs", "/api/export", "/api/admin/session", "/api/audit"}
	for _, p := range private {
		if m.IsPublicPath(p) {
			t.Errorf("%s should require a session", p)
		}
	}
}
