package tasks

import (
	"errors"
	"fmt"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/fitadmin/internal/interchange"
)

var ErrUnknownTaskType = errors.New("unknown task type")

// TaskType describes a task that can be triggered on demand.
type TaskType struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// TaskTypes lists the queues the server registers.
func TaskTypes() []TaskType {
	return []TaskType{
		{
			Type:        ExportBackupQueue,
			Description: "Write a full export of programs, workouts and exercises to the backup directory",
			Queue:       ExportBackupQueue,
		},
		{
			Type:        CleanupAuditEventsQueue,
			Description: "Delete audit events older than the retention period",
			Queue:       CleanupAuditEventsQueue,
		},
	}
}

// TaskParams are the optional knobs accepted when running a task by name.
type TaskParams struct {
	Format        string `json:"format,omitempty" form:"format"`
	RetentionDays int    `json:"retention_days,omitempty" form:"retention_days"`
}

// NewTask builds a task of the named type, validating its parameters.
func NewTask(taskType string, params TaskParams) (backlite.Task, error) {
	switch taskType {
	case ExportBackupQueue:
		if _, err := interchange.ParseFormat(params.Format); err != nil {
			return nil, err
		}
		return ExportBackupTask{Format: params.Format}, nil
	case CleanupAuditEventsQueue:
		if params.RetentionDays < 0 {
			return nil, fmt.Errorf("retention_days must not be negative")
		}
		return CleanupAuditEventsTask{RetentionDays: params.RetentionDays}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTaskType, taskType)
	}
}
