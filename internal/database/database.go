package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/fitadmin/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the sqlite database at dbPath and migrates the schema.
func NewDatabase(dbPath string) (*Database, error) {
	return open(dbPath, logger.Warn)
}

// NewQuietDatabase is NewDatabase without statement logging, for CLI runs and tests.
func NewQuietDatabase(dbPath string) (*Database, error) {
	return open(dbPath, logger.Silent)
}

func open(dbPath string, level logger.LogLevel) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(withForeignKeys(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Program{},
		&entities.Workout{},
		&entities.Exercise{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

// withForeignKeys enables sqlite foreign key enforcement so program and
// workout deletes cascade.
func withForeignKeys(dbPath string) string {
	if strings.Contains(dbPath, "_foreign_keys") {
		return dbPath
	}
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_foreign_keys=on"
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks connectivity of the underlying connection pool.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
