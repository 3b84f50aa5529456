package http

import (
	"github.com/mrlokans/fitadmin/internal/audit"
	"github.com/mrlokans/fitadmin/internal/auth"
	"github.com/mrlokans/fitadmin/internal/config"
	"github.com/mrlokans/fitadmin/internal/database"
	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/exporters"
	"github.com/mrlokans/fitadmin/internal/importers"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database        *database.Database
	Programs        *programs.Repository
	Orchestrator    *importers.Orchestrator
	CatalogImporter *importers.CatalogImporter
	Serializer      *exporters.Serializer

	// Audit trail
	Auditor      *audit.Auditor
	AuditService *audit.Service

	// Task queue client (optional)
	TaskClient TaskQueue

	// Authentication (SessionManager is nil when auth is disabled)
	AuthConfig     config.Auth
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	CSRFSecret     []byte

	// Application info
	Version string
}
