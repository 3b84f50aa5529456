package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/mrlokans/fitadmin/internal/database/audit"
	"github.com/mrlokans/fitadmin/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// ImportRecord describes a finished import for the audit trail.
type ImportRecord struct {
	Action      string // e.g. "json_import", "bodybuilding_catalog_import"
	Description string
	SnapshotID  string
	Metadata    map[string]any
	RowErrors   int
	Err         error
	IPAddress   string
	UserAgent   string
}

// LogImport records an import event. Imports with row errors are stored as partial.
func (s *Service) LogImport(rec ImportRecord) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      rec.Action,
		Description: truncate(rec.Description, 500),
		EntityType:  "program",
		SnapshotID:  rec.SnapshotID,
		IPAddress:   rec.IPAddress,
		UserAgent:   truncate(rec.UserAgent, 500),
		Status:      entities.AuditStatusSuccess,
	}

	if rec.Metadata != nil {
		if mdBytes, e := json.Marshal(rec.Metadata); e == nil {
			event.Metadata = string(mdBytes)
		}
	}

	switch {
	case rec.Err != nil:
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(rec.Err.Error(), 500)
	case rec.RowErrors > 0:
		event.Status = entities.AuditStatusPartial
	}

	s.LogAsync(event)
}

// LogExport records an export event.
func (s *Service) LogExport(action, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventExport,
		Action:      action,
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogBackup records a background backup run.
func (s *Service) LogBackup(description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventBackup,
		Action:      "export_backup",
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogProgramChange records a create, update or delete of a program.
func (s *Service) LogProgramChange(action string, programID uint, programName string) {
	eventType := entities.AuditEventProgram
	if action == "program_delete" {
		eventType = entities.AuditEventDelete
	}

	event := &entities.AuditEvent{
		EventType:   eventType,
		Action:      action,
		Description: "Program: " + programName,
		EntityType:  "program",
		EntityID:    &programID,
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(event)
}

// LogAuth records an authentication event.
func (s *Service) LogAuth(action string, ipAddr, userAgent string, success bool) {
	event := &entities.AuditEvent{
		EventType: entities.AuditEventAuth,
		Action:    action,
		IPAddress: ipAddr,
		UserAgent: truncate(userAgent, 500),
		Status:    entities.AuditStatusSuccess,
	}

	if !success {
		event.Status = entities.AuditStatusFailed
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events, optionally filtered by type.
func (s *Service) GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(eventType, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
