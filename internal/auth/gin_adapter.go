package auth

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
)

// cookieWriter commits the session and sets its cookie right before the
// response headers go out; gin handlers may write at any point.
type cookieWriter struct {
	gin.ResponseWriter
	sm      *SessionManager
	request *http.Request
	done    bool
}

func (w *cookieWriter) flushCookie() {
	if w.done {
		return
	}
	w.done = true

	ctx := w.request.Context()
	switch w.sm.Status(ctx) {
	case scs.Modified:
		token, expiry, err := w.sm.Commit(ctx)
		if err != nil {
			return
		}
		w.sm.WriteSessionCookie(ctx, w.ResponseWriter, token, expiry)
	case scs.Destroyed:
		w.sm.WriteSessionCookie(ctx, w.ResponseWriter, "", time.Time{})
	}
}

func (w *cookieWriter) WriteHeader(code int) {
	w.flushCookie()
	w.ResponseWriter.WriteHeader(code)
}

func (w *cookieWriter) WriteHeaderNow() {
	w.flushCookie()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *cookieWriter) Write(b []byte) (int, error) {
	w.flushCookie()
	return w.ResponseWriter.Write(b)
}

func (w *cookieWriter) WriteString(s string) (int, error) {
	w.flushCookie()
	return w.ResponseWriter.WriteString(s)
}

// SessionLoadSave loads the session into the request context and saves it
// when the handler writes its response. Register it before any middleware
// that reads the session.
func (sm *SessionManager) SessionLoadSave() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if cookie, err := c.Request.Cookie(sm.Cookie.Name); err == nil {
			token = cookie.Value
		}

		ctx, err := sm.Load(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
			return
		}
		c.Request = c.Request.WithContext(ctx)

		w := &cookieWriter{ResponseWriter: c.Writer, sm: sm, request: c.Request}
		c.Writer = w

		c.Next()

		w.flushCookie()
	}
}
