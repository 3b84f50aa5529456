package config

// Default paths and limits
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./fitadmin.db"

	// DefaultMaxReportedErrors caps the row errors returned in an import response
	DefaultMaxReportedErrors = 20
)
