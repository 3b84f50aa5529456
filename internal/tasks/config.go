package tasks

import (
	"time"

	"github.com/mrlokans/fitadmin/internal/config"
)

// Config holds configuration for the task queue system.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 1
	Workers int

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often finished tasks are purged. Default: 1h
	CleanupInterval time.Duration

	// BackupDir receives export_backup files. Default: ./backups
	BackupDir string

	// AuditRetentionDays is used by cleanup_audit_events when the task
	// carries no retention of its own. Default: 30
	AuditRetentionDays int
}

func DefaultConfig() Config {
	return Config{
		Workers:            1,
		ReleaseAfter:       15 * time.Minute,
		CleanupInterval:    time.Hour,
		BackupDir:          "./backups",
		AuditRetentionDays: 30,
	}
}

// NewConfig builds the queue configuration from application settings,
// falling back to defaults for unset values.
func NewConfig(cfg *config.Config) Config {
	c := DefaultConfig()
	if cfg.Tasks.Workers > 0 {
		c.Workers = cfg.Tasks.Workers
	}
	if cfg.Tasks.ReleaseAfter > 0 {
		c.ReleaseAfter = cfg.Tasks.ReleaseAfter
	}
	if cfg.Tasks.CleanupInterval > 0 {
		c.CleanupInterval = cfg.Tasks.CleanupInterval
	}
	if cfg.Backup.Dir != "" {
		c.BackupDir = cfg.Backup.Dir
	}
	if cfg.Audit.RetentionDays > 0 {
		c.AuditRetentionDays = cfg.Audit.RetentionDays
	}
	return c
}
