package auth

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// CSRFTokenHeader carries the token in both directions: responses expose it
// and unsafe requests must send it back.
const CSRFTokenHeader = "X-CSRF-Token"

// CSRFMiddleware protects unsafe methods of session-authenticated requests.
// Login and requests without a session cookie pass through; the auth middleware
// rejects them unless the route is public.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.Path("/"),
		csrf.RequestHeader(CSRFTokenHeader),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/api/admin/login" {
			c.Next()
			return
		}
		if _, err := c.Request.Cookie(SessionCookieName); err != nil {
			c.Next()
			return
		}

		passed := false
		handler := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			token := csrf.Token(r)
			c.Set("csrf_token", token)
			c.Header(CSRFTokenHeader, token)
			c.Request = r
			c.Next()
		}))
		handler.ServeHTTP(c.Writer, c.Request)

		// The error handler already answered; keep gin from running the route.
		if !passed {
			c.Abort()
		}
	}
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	details := ""
	if reason := csrf.FailureReason(r); reason != nil {
		details = reason.Error()
	}
	body, _ := json.Marshal(gin.H{"success": false, "error": "CSRF token invalid or missing", "details": details})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write(body)
}

// GetCSRFToken retrieves the CSRF token from the Gin context.
func GetCSRFToken(c *gin.Context) string {
	return c.GetString("csrf_token")
}
