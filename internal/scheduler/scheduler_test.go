package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/fitadmin/internal/config"
	"github.com/mrlokans/fitadmin/internal/tasks"
)

type fakeQueue struct {
	mu    sync.Mutex
	tasks []backlite.Task
	err   error
}

func (f *fakeQueue) Enqueue(task backlite.Task) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.tasks = append(f.tasks, task)
	return "task-1", nil
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		valid    bool
	}{
		{"0 3 * * *", true},
		{"*/15 * * * *", true},
		{"0 3 * * 1-5", true},
		{"0 0 3 * * *", false},
		{"daily", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateSchedule(tt.schedule)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNextRun(t *testing.T) {
	from := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	next, err := NextRun("0 3 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 2, 3, 0, 0, 0, time.UTC), next)
}

func TestScheduler_StartRegistersJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	enabled := NewScheduler(&fakeQueue{}, config.Backup{Enabled: true, Schedule: "0 3 * * *", Format: "json"})
	require.NoError(t, enabled.Start(ctx))
	defer enabled.Stop()
	assert.True(t, enabled.IsRunning())
	assert.Equal(t, 2, enabled.Jobs())

	disabled := NewScheduler(&fakeQueue{}, config.Backup{Enabled: false})
	require.NoError(t, disabled.Start(ctx))
	defer disabled.Stop()
	assert.Equal(t, 1, disabled.Jobs(), "audit cleanup runs even without backups")
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := NewScheduler(&fakeQueue{}, config.Backup{Enabled: true, Schedule: "every night"})
	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestScheduler_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(&fakeQueue{}, config.Backup{})
	require.NoError(t, s.Start(ctx))

	cancel()
	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestScheduler_Jobs(t *testing.T) {
	queue := &fakeQueue{}
	s := NewScheduler(queue, config.Backup{Enabled: true, Schedule: "0 3 * * *", Format: "csv"})

	s.enqueueBackup()
	s.enqueueAuditCleanup()

	require.Len(t, queue.tasks, 2)
	assert.Equal(t, tasks.ExportBackupTask{Format: "csv"}, queue.tasks[0])
	assert.Equal(t, tasks.CleanupAuditEventsTask{}, queue.tasks[1])

	queue.err = errors.New("queue closed")
	s.enqueueBackup()
	assert.Len(t, queue.tasks, 2)
}
