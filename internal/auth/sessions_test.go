package auth

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fitadmin/internal/config"
	"github.com/mrlokans/fitadmin/internal/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupSessionManager(t *testing.T) *SessionManager {
	t.Helper()

	db, err := database.NewQuietDatabase(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("failed to get SQL DB: %v", err)
	}

	sm, err := NewSessionManager(sqlDB, config.Auth{
		Mode:            config.AuthModeLocal,
		SessionLifetime: time.Hour,
	})
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func TestSessionManager_Defaults(t *testing.T) {
	sm := setupSessionManager(t)

	if sm.Cookie.Name != SessionCookieName {
		t.Errorf("cookie name = %q", sm.Cookie.Name)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("cookie should be HttpOnly")
	}
	if sm.Cookie.SameSite != http.SameSiteStrictMode {
		t.Error("cookie should be SameSite=Strict")
	}
	if sm.Lifetime != time.Hour {
		t.Errorf("lifetime = %v, want 1h", sm.Lifetime)
	}
}

func TestSessionManager_CreateAndDestroy(t *testing.T) {
	sm := setupSessionManager(t)

	router := gin.New()
	router.Use(sm.SessionLoadSave())
	router.POST("/login", func(c *gin.Context) {
		if err := sm.CreateSession(c.Request, "coach@example.com"); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, sm.Email(c.Request))
	})
	router.POST("/logout", func(c *gin.Context) {
		_ = sm.DestroySession(c.Request)
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
	cookie := sessionCookie(rr)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("login did not set a session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Body.String() != "coach@example.com" {
		t.Fatalf("whoami = %q", rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if expired := sessionCookie(rr); expired == nil || expired.MaxAge >= 0 {
		t.Error("logout should expire the session cookie")
	}

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Body.String() != "" {
		t.Errorf("destroyed session still resolves to %q", rr.Body.String())
	}
}

func TestSessionManager_NoSession(t *testing.T) {
	sm := setupSessionManager(t)

	router := gin.New()
	router.Use(sm.SessionLoadSave())
	router.GET("/", func(c *gin.Context) {
		if sm.IsAuthenticated(c.Request) {
			t.Error("request without cookie is authenticated")
		}
		c.Status(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if sessionCookie(rr) != nil {
		t.Error("untouched session should not set a cookie")
	}
}
