package auth

import (
	"database/sql"
	"encoding/gob"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/fitadmin/internal/config"
)

// Session data keys
const (
	SessionKeyEmail   = "admin_email"
	SessionKeyLoginAt = "login_at"
)

// SessionCookieName is the cookie carrying the admin session token.
const SessionCookieName = "fitadmin_session"

func init() {
	gob.Register(time.Time{})
}

// SessionManager wraps scs.SessionManager with admin session helpers.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager stores sessions in the sqlite database behind sqlDB.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = cfg.SessionLifetime
	if sm.Lifetime <= 0 {
		sm.Lifetime = 7 * 24 * time.Hour
	}

	sm.Cookie.Name = SessionCookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession marks the request's session as signed in.
func (sm *SessionManager) CreateSession(r *http.Request, email string) error {
	// New token on every login against session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}
	sm.Put(r.Context(), SessionKeyEmail, email)
	sm.Put(r.Context(), SessionKeyLoginAt, time.Now())
	return nil
}

func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// Email returns the signed-in admin, or "" when there is no session.
func (sm *SessionManager) Email(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyEmail)
}

func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.Email(r) != ""
}

// LoginAt returns when the current session signed in.
func (sm *SessionManager) LoginAt(r *http.Request) time.Time {
	at, _ := sm.Get(r.Context(), SessionKeyLoginAt).(time.Time)
	return at
}
