package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fitadmin/internal/audit"
	"github.com/mrlokans/fitadmin/internal/importers"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

// ImportRequest is the body of POST /api/import.
type ImportRequest struct {
	Data   json.RawMessage `json:"data"`
	Format string          `json:"format"`
	Type   string          `json:"type"`
}

type ImportResponse struct {
	Success     bool             `json:"success"`
	Imported    importers.Counts `json:"imported"`
	Skipped     int              `json:"skipped"`
	Errors      []string         `json:"errors,omitempty"`
	TotalErrors int              `json:"totalErrors,omitempty"`
	Message     string           `json:"message"`
}

// ImportController serves whole-hierarchy imports.
type ImportController struct {
	orchestrator *importers.Orchestrator
	auditor      *audit.Auditor
	auditService *audit.Service
}

func NewImportController(orchestrator *importers.Orchestrator, auditor *audit.Auditor, auditService *audit.Service) *ImportController {
	return &ImportController{
		orchestrator: orchestrator,
		auditor:      auditor,
		auditService: auditService,
	}
}

// Import handles POST /api/import {data, format, type}.
// Structural problems answer 400; row failures are listed in a 200 response.
func (ic *ImportController) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	format, err := interchange.ParseFormat(req.Format)
	if err != nil {
		respondBadRequest(c, "Unsupported format", err.Error())
		return
	}
	entityType, err := interchange.ParseEntityType(req.Type)
	if err != nil {
		respondBadRequest(c, "Unsupported type", err.Error())
		return
	}
	if len(req.Data) == 0 {
		respondBadRequest(c, "Import failed", "data is required")
		return
	}

	snapshotID := snapshot(ic.auditor, req)
	record := audit.ImportRecord{
		Action:     string(format) + "_import",
		SnapshotID: snapshotID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}

	dec, err := importers.NewRequestDecoder(format, req.Data)
	var result importers.Result
	if err == nil {
		result, err = ic.orchestrator.Import(dec, entityType)
	}
	if err != nil {
		record.Description = fmt.Sprintf("%s import (%s) rejected", format, entityType)
		record.Err = err
		ic.logImport(record)

		if isStructuralError(err) {
			respondBadRequest(c, "Import failed", err.Error())
		} else {
			respondInternalError(c, err, "Import failed")
		}
		return
	}

	record.Description = fmt.Sprintf("%s import (%s): %s", format, entityType, result.Message())
	record.RowErrors = result.TotalErrors
	record.Metadata = map[string]any{
		"type":      entityType,
		"programs":  result.Imported.Programs,
		"workouts":  result.Imported.Workouts,
		"exercises": result.Imported.Exercises,
		"skipped":   result.Skipped,
		"errors":    result.TotalErrors,
	}
	ic.logImport(record)

	c.JSON(http.StatusOK, ImportResponse{
		Success:     true,
		Imported:    result.Imported,
		Skipped:     result.Skipped,
		Errors:      result.Errors,
		TotalErrors: result.TotalErrors,
		Message:     result.Message(),
	})
}

func (ic *ImportController) logImport(rec audit.ImportRecord) {
	if ic.auditService != nil {
		ic.auditService.LogImport(rec)
	}
}

// snapshot stores the raw request under the audit directory and returns its id.
func snapshot(auditor *audit.Auditor, payload any) string {
	if !auditor.Enabled() {
		return ""
	}
	id, err := auditor.SaveJSON(payload)
	if err != nil {
		log.Printf("Import: failed to save audit snapshot: %v", err)
		return ""
	}
	return id
}
