package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fitadmin/internal/config"
)

// Context keys for admin data
const (
	ContextKeyAdminEmail = "auth_admin_email"
	ContextKeyAuthType   = "auth_type" // "session" or "none"
)

type AuthType string

const (
	AuthTypeNone    AuthType = "none"
	AuthTypeSession AuthType = "session"
)

// Middleware rejects unauthenticated requests when AUTH_MODE=local.
type Middleware struct {
	sessionManager *SessionManager
	config         config.Auth
	publicPaths    map[string]bool
}

func NewMiddleware(sessionManager *SessionManager, cfg config.Auth) *Middleware {
	return &Middleware{
		sessionManager: sessionManager,
		config:         cfg,
		publicPaths: map[string]bool{
			"/health":           true,
			"/ping":             true,
			"/api/admin/login":  true,
			"/api/admin/logout": true,
		},
	}
}

// Handler returns the gin middleware for the configured mode.
func (m *Middleware) Handler() gin.HandlerFunc {
	if m.config.Mode != config.AuthModeLocal {
		return func(c *gin.Context) {
			c.Set(ContextKeyAuthType, AuthTypeNone)
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if m.IsPublicPath(c.Request.URL.Path) {
			c.Set(ContextKeyAuthType, AuthTypeNone)
			c.Next()
			return
		}

		if m.sessionManager != nil {
			if email := m.sessionManager.Email(c.Request); email != "" {
				c.Set(ContextKeyAdminEmail, email)
				c.Set(ContextKeyAuthType, AuthTypeSession)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "authentication required",
		})
	}
}

// IsPublicPath reports whether path is reachable without a session.
func (m *Middleware) IsPublicPath(path string) bool {
	return m.publicPaths[path] || !strings.HasPrefix(path, "/api/")
}

// GetAdminEmail returns the signed-in admin, or "" when auth is disabled.
func GetAdminEmail(c *gin.Context) string {
	return c.GetString(ContextKeyAdminEmail)
}

// GetAuthType retrieves the authentication method used.
func GetAuthType(c *gin.Context) AuthType {
	if t, exists := c.Get(ContextKeyAuthType); exists {
		if authType, ok := t.(AuthType); ok {
			return authType
		}
	}
	return AuthTypeNone
}
