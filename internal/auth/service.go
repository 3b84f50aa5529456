package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/mrlokans/fitadmin/internal/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotConfigured      = errors.New("ADMIN_EMAIL and ADMIN_PASSWORD_HASH are required when AUTH_MODE=local")
	ErrUnknownMode        = errors.New("unknown auth mode")
)

// Service checks admin credentials against the configured account.
type Service struct {
	config config.Auth
}

func NewService(cfg config.Auth) *Service {
	return &Service{config: cfg}
}

// Validate reports configuration problems that would lock the admin out.
func (s *Service) Validate() error {
	switch s.config.Mode {
	case config.AuthModeNone:
		return nil
	case config.AuthModeLocal:
		if strings.TrimSpace(s.config.AdminEmail) == "" || s.config.AdminPasswordHash == "" {
			return ErrNotConfigured
		}
		return nil
	default:
		return ErrUnknownMode
	}
}

// Authenticate returns ErrInvalidCredentials for a wrong email or password.
// Email comparison ignores case and surrounding whitespace.
func (s *Service) Authenticate(email, password string) error {
	if !s.IsAuthEnabled() {
		return ErrNotConfigured
	}

	want := strings.ToLower(strings.TrimSpace(s.config.AdminEmail))
	got := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1

	// Always run bcrypt so a wrong email costs the same as a wrong password.
	passwordErr := CheckPassword(password, s.config.AdminPasswordHash)

	if !emailOK || passwordErr != nil {
		if passwordErr != nil && !errors.Is(passwordErr, ErrInvalidPassword) {
			return passwordErr
		}
		return ErrInvalidCredentials
	}
	return nil
}

// IsAuthEnabled returns true if the admin gate is active.
func (s *Service) IsAuthEnabled() bool {
	return s.config.Mode == config.AuthModeLocal
}

// AdminEmail returns the configured admin account.
func (s *Service) AdminEmail() string {
	return s.config.AdminEmail
}
