package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/fitadmin/internal/config"
	"github.com/mrlokans/fitadmin/internal/tasks"
)

// AuditCleanupSchedule runs audit retention once a day.
const AuditCleanupSchedule = "30 4 * * *"

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Enqueuer hands tasks to the background queue.
type Enqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

var _ Enqueuer = (*tasks.Client)(nil)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// NextRun returns the next activation of schedule after from.
func NextRun(schedule string, from time.Time) (time.Time, error) {
	sched, err := parser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from), nil
}

// Scheduler enqueues export_backup on BACKUP_SCHEDULE and
// cleanup_audit_events daily. Jobs only enqueue; the task queue runs them.
type Scheduler struct {
	queue  Enqueuer
	backup config.Backup

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

func NewScheduler(queue Enqueuer, backup config.Backup) *Scheduler {
	return &Scheduler{
		queue:  queue,
		backup: backup,
		cron:   cron.New(cron.WithParser(parser)),
	}
}

// Start registers the jobs and starts the cron loop. It stops when ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.backup.Enabled {
		if err := ValidateSchedule(s.backup.Schedule); err != nil {
			return err
		}
		if _, err := s.cron.AddFunc(s.backup.Schedule, s.enqueueBackup); err != nil {
			return fmt.Errorf("failed to schedule backup job: %w", err)
		}
		next, _ := NextRun(s.backup.Schedule, time.Now())
		log.Printf("Scheduler: %s backups on '%s', next run %v", s.backup.Format, s.backup.Schedule, next.Format(time.RFC3339))
	} else {
		log.Printf("Scheduler: backups disabled")
	}

	if _, err := s.cron.AddFunc(AuditCleanupSchedule, s.enqueueAuditCleanup); err != nil {
		return fmt.Errorf("failed to schedule audit cleanup job: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop waits for in-flight jobs and stops the cron loop.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.isRunning = false
	log.Printf("Scheduler: stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// Jobs returns the number of registered cron entries.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) enqueueBackup() {
	s.enqueue(tasks.ExportBackupTask{Format: s.backup.Format})
}

func (s *Scheduler) enqueueAuditCleanup() {
	s.enqueue(tasks.CleanupAuditEventsTask{})
}

func (s *Scheduler) enqueue(task backlite.Task) {
	id, err := s.queue.Enqueue(task)
	if err != nil {
		log.Printf("Scheduler: %v", err)
		return
	}
	log.Printf("Scheduler: enqueued %s task %s", task.Config().Name, id)
}
