package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // No authentication required (default)
	AuthModeLocal AuthMode = "local" // Single admin account with sessions
)

type (
	Config struct {
		HTTP
		Global
		Database
		Import
		Audit
		Auth
		Tasks
		Backup
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Import struct {
		MaxReportedErrors int
		StrictRows        bool // Report short catalog rows instead of dropping them
	}
	Audit struct {
		Dir           string
		RetentionDays int // Days to keep audit events (default: 30)
	}
	Auth struct {
		Mode              AuthMode
		AdminEmail        string
		AdminPasswordHash string
		SessionSecret     string
		SessionLifetime   time.Duration
		SecureCookies     bool // Set to false for local dev without HTTPS
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Backup struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
		Dir      string
		Format   string // json, csv or xlsx
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("import_max_reported_errors", DefaultMaxReportedErrors)
	v.SetDefault("import_strict_rows", false)
	v.SetDefault("audit_dir", "./audit")
	v.SetDefault("audit_retention_days", 30)

	// Auth defaults
	v.SetDefault("auth_mode", "none")
	v.SetDefault("admin_email", "")
	v.SetDefault("admin_password_hash", "")
	v.SetDefault("auth_session_secret", "")      // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "168h") // 7 days
	v.SetDefault("auth_secure_cookies", true)    // HTTPS-only cookies

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Backup defaults
	v.SetDefault("backup_enabled", false)
	v.SetDefault("backup_schedule", "0 3 * * *")
	v.SetDefault("backup_dir", "./backups")
	v.SetDefault("backup_format", "json")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Import: Import{
			MaxReportedErrors: v.GetInt("IMPORT_MAX_REPORTED_ERRORS"),
			StrictRows:        v.GetBool("IMPORT_STRICT_ROWS"),
		},
		Audit: Audit{
			Dir:           v.GetString("AUDIT_DIR"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Auth: Auth{
			Mode:              AuthMode(v.GetString("AUTH_MODE")),
			AdminEmail:        v.GetString("ADMIN_EMAIL"),
			AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
			SessionSecret:     v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime:   v.GetDuration("AUTH_SESSION_LIFETIME"),
			SecureCookies:     v.GetBool("AUTH_SECURE_COOKIES"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Backup: Backup{
			Enabled:  v.GetBool("BACKUP_ENABLED"),
			Schedule: v.GetString("BACKUP_SCHEDULE"),
			Dir:      v.GetString("BACKUP_DIR"),
			Format:   v.GetString("BACKUP_FORMAT"),
		},
	}
}
