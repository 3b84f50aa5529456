// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── programs/        # Program, workout and exercise hierarchy
//	└── audit/           # Audit event log
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./fitadmin.db")
//
//	programsRepo := programs.NewRepository(db.DB)
//	auditRepo := audit.NewRepository(db.DB)
//
// # Interface Implementations
//
//   - programs.Repository: implements importers.Store, exporters.HierarchyReader
//     and http.Counter
//   - audit.Repository: backs audit.Service
package database
