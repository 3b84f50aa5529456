package tasks

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/fitadmin/internal/exporters"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

const ExportBackupQueue = "export_backup"

// BackupExporter renders the stored hierarchy.
type BackupExporter interface {
	Export(format interchange.Format, entityType interchange.EntityType) (exporters.ExportResult, error)
}

// BackupRecorder receives backup outcomes for the audit trail.
type BackupRecorder interface {
	LogBackup(description string, err error)
}

var _ BackupExporter = (*exporters.Serializer)(nil)

// ExportBackupTask writes a full export to the backup directory.
type ExportBackupTask struct {
	Format string `json:"format"`
}

func (t ExportBackupTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        ExportBackupQueue,
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// WriteBackup exports everything in the given format into dir and returns the file path.
func WriteBackup(exporter BackupExporter, dir string, format interchange.Format) (string, error) {
	result, err := exporter.Export(format, interchange.TypeAll)
	if err != nil {
		return "", fmt.Errorf("failed to export: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path := filepath.Join(dir, result.Filename)
	if err := os.WriteFile(path, result.Body, 0o600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	log.Printf("[TASK] Backup written to %s (%d programs, %d workouts, %d exercises)",
		path, result.Programs, result.Workouts, result.Exercises)
	return path, nil
}

func ExportBackupProcessor(exporter BackupExporter, recorder BackupRecorder, dir string) backlite.QueueProcessor[ExportBackupTask] {
	return func(ctx context.Context, task ExportBackupTask) error {
		if exporter == nil {
			return fmt.Errorf("backup exporter not configured")
		}

		format, err := interchange.ParseFormat(task.Format)
		if err != nil {
			return err
		}

		path, err := WriteBackup(exporter, dir, format)
		if recorder != nil {
			desc := fmt.Sprintf("Scheduled %s backup", format)
			if err == nil {
				desc += " " + filepath.Base(path)
			}
			recorder.LogBackup(desc, err)
		}
		return err
	}
}

func NewExportBackupQueue(exporter BackupExporter, recorder BackupRecorder, dir string) backlite.Queue {
	return backlite.NewQueue(ExportBackupProcessor(exporter, recorder, dir))
}
