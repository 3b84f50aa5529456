// Package auth gates the administrative API behind a single admin account.
//
// Two modes are supported:
//   - "none": no authentication, every route is open (default)
//   - "local": the admin signs in with ADMIN_EMAIL and a password matching
//     ADMIN_PASSWORD_HASH; the session is kept in a cookie backed by the
//     sqlite sessions table
//
// # Configuration
//
//	AUTH_MODE=local
//	ADMIN_EMAIL=coach@example.com
//	ADMIN_PASSWORD_HASH=$2a$12$...   # fitadmin hash-password -password ...
//	AUTH_SESSION_SECRET=<32 bytes>     # CSRF key, generated if empty
//	AUTH_SESSION_LIFETIME=168h
//	AUTH_SECURE_COOKIES=true
//
// # Usage
//
//	service := auth.NewService(cfg.Auth)
//	sessions, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	router.Use(sessions.SessionLoadSave())
//	router.Use(auth.NewMiddleware(sessions, cfg.Auth).Handler())
//
// Every /api route except /api/admin/login answers 401 without a session.
// /health stays public.
package auth
