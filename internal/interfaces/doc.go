// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - Store: Hierarchy writes used by imports (internal/importers/orchestrator.go)
//   - ExerciseLookup: Duplicate checks by exercise name (internal/importers/dedup.go)
//   - HierarchyReader: Ordered reads used by exports (internal/exporters/serializer.go)
//   - Counter: Row counts for /health (internal/http/health.go)
//
// All four are implemented by programs.Repository.
//
// ## Import Interfaces
//
//   - Decoder: Turns a payload into a Batch of positioned rows (internal/importers/batch.go)
//
// Implementations: DocumentDecoder (json), SectionedDecoder (csv) and
// SpreadsheetDecoder (xlsx).
//
// ## Background Work Interfaces
//
//   - BackupExporter, BackupRecorder: export_backup task (internal/tasks/export_backup.go)
//   - AuditEventCleaner: cleanup_audit_events task (internal/tasks/cleanup_audit.go)
//   - Enqueuer: Cron jobs handing tasks to the queue (internal/scheduler/scheduler.go)
//   - TaskQueue: Task endpoints (internal/http/tasks.go)
//
// ## Audit Interfaces
//
//   - LoginRecorder: Login and logout events (internal/auth/handlers.go)
//
// # Adding a New Import Format
//
//  1. Add the format to interchange.ParseFormat
//  2. Implement importers.Decoder for it
//  3. Return it from importers.NewRequestDecoder and importers.NewFileDecoder
//  4. Add a renderer in internal/exporters/render.go so the format round-trips
//  5. Add a compile-time check to checks.go
//
// # Compile-Time Checks
//
// See checks.go for interface satisfaction checks.
package interfaces
