package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

const CleanupAuditEventsQueue = "cleanup_audit_events"

// AuditEventCleaner deletes audit events older than a retention window.
type AuditEventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// CleanupAuditEventsTask removes audit events past their retention.
// Zero RetentionDays uses the queue default.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        CleanupAuditEventsQueue,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func CleanupAuditEventsProcessor(cleaner AuditEventCleaner, defaultRetentionDays int) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return fmt.Errorf("audit event cleaner not configured")
		}

		days := task.RetentionDays
		if days <= 0 {
			days = defaultRetentionDays
		}
		if days <= 0 {
			days = 30
		}

		deleted, err := cleaner.DeleteOldEvents(time.Duration(days) * 24 * time.Hour)
		if err != nil {
			return fmt.Errorf("cleanup audit events: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d audit events older than %d days", deleted, days)
		return nil
	}
}

func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner, defaultRetentionDays int) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner, defaultRetentionDays))
}
