package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fitadmin/internal/audit"
	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/entities"
	"github.com/mrlokans/fitadmin/internal/exporters"
	"github.com/mrlokans/fitadmin/internal/importers"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

// ProgramsController serves program administration and single-program transfer.
type ProgramsController struct {
	repo         *programs.Repository
	orchestrator *importers.Orchestrator
	serializer   *exporters.Serializer
	auditor      *audit.Auditor
	auditService *audit.Service
}

func NewProgramsController(repo *programs.Repository, orchestrator *importers.Orchestrator, serializer *exporters.Serializer, auditor *audit.Auditor, auditService *audit.Service) *ProgramsController {
	return &ProgramsController{
		repo:         repo,
		orchestrator: orchestrator,
		serializer:   serializer,
		auditor:      auditor,
		auditService: auditService,
	}
}

type CreateProgramRequest struct {
	Name      string `json:"name"`
	IsPrimary bool   `json:"isPrimary"`
}

type UpdateProgramRequest struct {
	Name       *string `json:"name"`
	IsPrimary  *bool   `json:"isPrimary"`
	OrderIndex *int    `json:"orderIndex"`
}

// List handles GET /api/programs.
func (pc *ProgramsController) List(c *gin.Context) {
	list, err := pc.repo.ListPrograms()
	if err != nil {
		respondInternalError(c, err, "Failed to list programs")
		return
	}
	if list == nil {
		list = []entities.Program{}
	}
	c.JSON(http.StatusOK, list)
}

// Create handles POST /api/programs {name, isPrimary}.
func (pc *ProgramsController) Create(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondBadRequest(c, "Program name is required", "")
		return
	}

	program := &entities.Program{Name: name, IsPrimary: req.IsPrimary}
	if err := pc.repo.CreateProgram(program); err != nil {
		respondInternalError(c, err, "Failed to create program")
		return
	}

	pc.logChange("program_create", program)
	c.JSON(http.StatusCreated, program)
}

// Update handles PUT /api/programs/:id {name?, isPrimary?, orderIndex?}.
func (pc *ProgramsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			respondBadRequest(c, "Program name is required", "")
			return
		}
		req.Name = &trimmed
	}

	program, err := pc.repo.UpdateProgram(id, programs.ProgramUpdate{
		Name:       req.Name,
		IsPrimary:  req.IsPrimary,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		respondStoreError(c, err, "Failed to update program")
		return
	}

	pc.logChange("program_update", program)
	c.JSON(http.StatusOK, program)
}

// Delete handles DELETE /api/programs/:id. Workouts and exercises go with it.
func (pc *ProgramsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	program, err := pc.repo.DeleteProgram(id)
	if err != nil {
		respondStoreError(c, err, "Failed to delete program")
		return
	}

	pc.logChange("program_delete", program)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Program %q deleted", program.Name),
	})
}

// Export handles GET /api/programs/export?programId=N.
func (pc *ProgramsController) Export(c *gin.Context) {
	id, ok := parseQueryID(c, "programId")
	if !ok {
		return
	}

	transfer, err := pc.serializer.ExportProgram(id)
	if pc.auditService != nil {
		pc.auditService.LogExport("program_export", fmt.Sprintf("Program %d exported", id), err)
	}
	if err != nil {
		respondStoreError(c, err, "Failed to export program")
		return
	}
	c.JSON(http.StatusOK, transfer)
}

// ImportProgramRequest carries a program transfer document, either inline
// or as a JSON string.
type ImportProgramRequest struct {
	ProgramData json.RawMessage `json:"programData"`
}

// Import handles POST /api/programs/import {programData}.
func (pc *ProgramsController) Import(c *gin.Context) {
	var req ImportProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	transfer, err := decodeProgramTransfer(req.ProgramData)
	if err != nil {
		respondBadRequest(c, "Invalid program data", err.Error())
		return
	}

	record := audit.ImportRecord{
		Action:     "program_import",
		SnapshotID: snapshot(pc.auditor, req),
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}

	program, result, err := pc.orchestrator.ImportProgram(transfer)
	if err != nil {
		record.Description = "Program import rejected"
		record.Err = err
		pc.logImport(record)

		if isStructuralError(err) {
			respondBadRequest(c, "Import failed", err.Error())
		} else {
			respondInternalError(c, err, "Import failed")
		}
		return
	}

	record.Description = fmt.Sprintf("Program %q imported: %s", program.Name, result.Message())
	record.RowErrors = result.TotalErrors
	pc.logImport(record)

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"program":  program,
		"imported": result.Imported,
		"errors":   result.Errors,
		"message":  result.Message(),
	})
}

func decodeProgramTransfer(raw json.RawMessage) (interchange.ProgramTransfer, error) {
	var transfer interchange.ProgramTransfer
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return transfer, fmt.Errorf("programData is required")
	}

	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return transfer, err
		}
		raw = json.RawMessage(text)
	}

	if err := json.Unmarshal(raw, &transfer); err != nil {
		return transfer, fmt.Errorf("programData is not a program document: %w", err)
	}
	return transfer, nil
}

func (pc *ProgramsController) logChange(action string, program *entities.Program) {
	if pc.auditService != nil {
		pc.auditService.LogProgramChange(action, program.ID, program.Name)
	}
}

func (pc *ProgramsController) logImport(rec audit.ImportRecord) {
	if pc.auditService != nil {
		pc.auditService.LogImport(rec)
	}
}
