package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/fitadmin/internal/audit"
	"github.com/mrlokans/fitadmin/internal/auth"
	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/exporters"
	"github.com/mrlokans/fitadmin/internal/http"
	"github.com/mrlokans/fitadmin/internal/importers"
	"github.com/mrlokans/fitadmin/internal/scheduler"
	"github.com/mrlokans/fitadmin/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Import write side
var _ importers.Store = (*programs.Repository)(nil)
var _ importers.ExerciseLookup = (*programs.Repository)(nil)

// Export read side
var _ exporters.HierarchyReader = (*programs.Repository)(nil)

// Health statistics
var _ http.Counter = (*programs.Repository)(nil)

// =============================================================================
// Import Decoders
// =============================================================================

var _ importers.Decoder = (*importers.DocumentDecoder)(nil)
var _ importers.Decoder = (*importers.SectionedDecoder)(nil)
var _ importers.Decoder = (*importers.SpreadsheetDecoder)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.BackupExporter = (*exporters.Serializer)(nil)
var _ tasks.BackupRecorder = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ auth.LoginRecorder = (*audit.Service)(nil)
