package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Client wraps backlite with a dedicated sqlite database next to the main one.
type Client struct {
	client *backlite.Client
	db     *sql.DB
	config Config

	mu      sync.RWMutex
	started bool
}

// TasksDBPath returns the queue database path for a main database path:
// ./fitadmin.db becomes ./fitadmin-tasks.db.
func TasksDBPath(mainDBPath string) string {
	ext := filepath.Ext(mainDBPath)
	return strings.TrimSuffix(mainDBPath, ext) + "-tasks" + ext
}

func NewClient(mainDBPath string, cfg Config) (*Client, error) {
	db, err := sql.Open("sqlite3", TasksDBPath(mainDBPath)+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Workers + 5)
	db.SetMaxIdleConns(cfg.Workers + 2)
	db.SetConnMaxLifetime(time.Hour)

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          &stdLogger{},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create backlite client: %w", err)
	}

	if err := client.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install backlite schema: %w", err)
	}

	return &Client{client: client, db: db, config: cfg}, nil
}

// Register adds queues; call before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.client.Register(q)
	}
}

// Start begins processing tasks without blocking. Calling it twice is a no-op.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	log.Printf("[TASK] Queue started with %d workers", c.config.Workers)
	c.client.Start(ctx)
}

// Stop waits for running tasks until ctx expires. Returns true if all
// workers finished in time.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.RLock()
	started := c.started
	c.mu.RUnlock()
	if !started {
		return true
	}

	log.Println("[TASK] Stopping queue...")
	ok := c.client.Stop(ctx)
	if ok {
		log.Println("[TASK] Queue stopped gracefully")
	} else {
		log.Println("[TASK] Queue stopped with timeout, some tasks may not have completed")
	}
	return ok
}

// Close releases the database. Call after Stop.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.client.Add(tasks...)
}

// Enqueue saves a single task and returns its id.
func (c *Client) Enqueue(task backlite.Task) (string, error) {
	ids, err := c.client.Add(task).Save()
	if err != nil {
		return "", fmt.Errorf("failed to enqueue %s: %w", task.Config().Name, err)
	}
	return ids[0], nil
}

func (c *Client) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return c.client.Status(ctx, taskID)
}

// stdLogger implements backlite.Logger on the standard logger.
type stdLogger struct{}

func (l *stdLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (l *stdLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
