package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

var testCSRFSecret = []byte("test-secret-key-32-bytes-long!!!")

func csrfRouter(reached *bool) *gin.Engine {
	router := gin.New()
	router.Use(CSRFMiddleware(testCSRFSecret, false))
	handler := func(c *gin.Context) {
		*reached = true
		c.JSON(http.StatusOK, gin.H{"token": GetCSRFToken(c)})
	}
	router.GET("/api/programs", handler)
	router.POST("/api/programs", handler)
	router.POST("/api/admin/login", handler)
	return router
}

func TestCSRFMiddleware_SkipsRequestsWithoutSession(t *testing.T) {
	var reached bool
	router := csrfRouter(&reached)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/programs", nil))
	if rr.Code != http.StatusOK || !reached {
		t.Errorf("status = %d, reached = %v; want pass-through", rr.Code, reached)
	}
}

func TestCSRFMiddleware_BlocksSessionPOSTWithoutToken(t *testing.T) {
	var reached bool
	router := csrfRouter(&reached)

	req := httptest.NewRequest(http.MethodPost, "/api/programs", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rr.Code)
	}
	if reached {
		t.Error("handler ran after CSRF failure")
	}
}

func TestCSRFMiddleware_AllowsSafeMethodsAndExposesToken(t *testing.T) {
	var reached bool
	router := csrfRouter(&reached)

	req := httptest.NewRequest(http.MethodGet, "/api/programs", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || !reached {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if rr.Header().Get(CSRFTokenHeader) == "" {
		t.Error("response should carry the CSRF token header")
	}
}

func TestCSRFMiddleware_LoginIsExempt(t *testing.T) {
	var reached bool
	router := csrfRouter(&reached)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || !reached {
		t.Errorf("status = %d, want 200 for login with a stale session", rr.Code)
	}
}
