package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fitadmin/internal/audit"
	"github.com/mrlokans/fitadmin/internal/importers"
)

// CatalogRequest is the body of the catalog import endpoints.
type CatalogRequest struct {
	CSVData   string `json:"csvData"`
	ProgramID *uint  `json:"programId"`
}

type CatalogResponse struct {
	Success     bool     `json:"success"`
	Imported    int      `json:"imported"`
	Skipped     int      `json:"skipped"`
	Errors      []string `json:"errors,omitempty"`
	TotalErrors int      `json:"totalErrors,omitempty"`
	Message     string   `json:"message"`
}

// CatalogController imports third-party exercise catalogs.
type CatalogController struct {
	importer     *importers.CatalogImporter
	auditor      *audit.Auditor
	auditService *audit.Service
}

func NewCatalogController(importer *importers.CatalogImporter, auditor *audit.Auditor, auditService *audit.Service) *CatalogController {
	return &CatalogController{
		importer:     importer,
		auditor:      auditor,
		auditService: auditService,
	}
}

// ImportBodybuilding handles POST /api/import-bodybuilding.
func (cc *CatalogController) ImportBodybuilding(c *gin.Context) {
	cc.importLayout(c, importers.LayoutBodybuilding)
}

// ImportFitnessProgramer handles POST /api/import-fitnessprogramer.
func (cc *CatalogController) ImportFitnessProgramer(c *gin.Context) {
	cc.importLayout(c, importers.LayoutFitnessProgramer)
}

func (cc *CatalogController) importLayout(c *gin.Context, layout importers.Layout) {
	var req CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	record := audit.ImportRecord{
		Action:     layout.Name + "_catalog_import",
		SnapshotID: snapshot(cc.auditor, req),
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}
	if req.ProgramID != nil {
		record.Metadata = map[string]any{"programId": *req.ProgramID}
	}

	result, err := cc.importer.Import(layout, req.CSVData, req.ProgramID)
	if err != nil {
		record.Description = fmt.Sprintf("%s catalog import rejected", layout.Name)
		record.Err = err
		cc.logImport(record)

		if isStructuralError(err) {
			respondBadRequest(c, "Import failed", err.Error())
		} else {
			respondInternalError(c, err, "Import failed")
		}
		return
	}

	record.Description = fmt.Sprintf("%s catalog: %s", layout.Name, result.Message())
	record.RowErrors = result.TotalErrors
	if record.Metadata == nil {
		record.Metadata = map[string]any{}
	}
	record.Metadata["imported"] = result.Imported
	record.Metadata["skipped"] = result.Skipped
	cc.logImport(record)

	c.JSON(http.StatusOK, CatalogResponse{
		Success:     true,
		Imported:    result.Imported,
		Skipped:     result.Skipped,
		Errors:      result.Errors,
		TotalErrors: result.TotalErrors,
		Message:     result.Message(),
	})
}

func (cc *CatalogController) logImport(rec audit.ImportRecord) {
	if cc.auditService != nil {
		cc.auditService.LogImport(rec)
	}
}
