package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// LoginRecorder receives login and logout outcomes for the audit trail.
type LoginRecorder interface {
	LogAuth(action, ipAddress, userAgent string, success bool)
}

// AuthController serves the admin login and logout endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	limiter        *LoginLimiter
	recorder       LoginRecorder
}

func NewAuthController(service *Service, sessionManager *SessionManager, recorder LoginRecorder) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		limiter:        NewLoginLimiter(5, 15*time.Minute, 30*time.Minute),
		recorder:       recorder,
	}
}

func (ac *AuthController) RegisterRoutes(router gin.IRouter) {
	router.POST("/api/admin/login", ac.Login)
	router.POST("/api/admin/logout", ac.Logout)
	router.GET("/api/admin/session", ac.Session)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/admin/login {email, password}.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email and password are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	clientIP := c.ClientIP()

	if allowed, retryAfter := ac.limiter.Allow(clientIP, email); !allowed {
		c.Header("Retry-After", retryAfter.Round(time.Second).String())
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "too many login attempts, try again later"})
		return
	}

	if err := ac.service.Authenticate(email, req.Password); err != nil {
		ac.limiter.RecordFailure(clientIP, email)
		ac.record("login", c, false)
		if !errors.Is(err, ErrInvalidCredentials) {
			log.Printf("Auth: login failed: %v", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": ErrInvalidCredentials.Error()})
		return
	}
	ac.limiter.RecordSuccess(clientIP, email)

	if err := ac.sessionManager.CreateSession(c.Request, ac.service.AdminEmail()); err != nil {
		log.Printf("Auth: failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create session"})
		return
	}

	ac.record("login", c, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "email": ac.service.AdminEmail()})
}

// Logout destroys the current session. Without a session it is a no-op.
func (ac *AuthController) Logout(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		if err := ac.sessionManager.DestroySession(c.Request); err != nil {
			log.Printf("Auth: failed to destroy session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to end session"})
			return
		}
		ac.record("logout", c, true)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session reports the signed-in admin and hands out the CSRF token.
func (ac *AuthController) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"email":     ac.sessionManager.Email(c.Request),
		"loginAt":   ac.sessionManager.LoginAt(c.Request),
		"csrfToken": GetCSRFToken(c),
	})
}

func (ac *AuthController) record(action string, c *gin.Context, success bool) {
	if ac.recorder == nil {
		return
	}
	ac.recorder.LogAuth(action, c.ClientIP(), c.Request.UserAgent(), success)
}
