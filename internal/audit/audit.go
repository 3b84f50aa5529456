package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Auditor snapshots raw import payloads to disk so a failed import can be
// inspected or replayed later.
type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// Enabled reports whether snapshots are written at all.
func (a *Auditor) Enabled() bool {
	return a != nil && a.AuditDir != ""
}

// SaveJSON saves the provided data as JSON to a file with a UUID4 filename
// and returns the snapshot ID (the UUID).
func (a *Auditor) SaveJSON(data any) (string, error) {
	if !a.Enabled() {
		return "", nil
	}

	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	snapshotID := uuid.New().String()
	path := filepath.Join(a.AuditDir, snapshotID+".json")

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	log.Printf("Saved audit snapshot: %s", path)
	return snapshotID, nil
}

// LoadJSON reads a snapshot back into v.
func (a *Auditor) LoadJSON(snapshotID string, v any) error {
	if _, err := uuid.Parse(snapshotID); err != nil {
		return fmt.Errorf("invalid snapshot id %q: %w", snapshotID, err)
	}

	data, err := os.ReadFile(filepath.Join(a.AuditDir, snapshotID+".json"))
	if err != nil {
		return fmt.Errorf("failed to read audit file: %w", err)
	}

	return json.Unmarshal(data, v)
}

func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
