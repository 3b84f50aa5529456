package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fitadmin/internal/audit"
	"github.com/mrlokans/fitadmin/internal/exporters"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

type ExportController struct {
	serializer   *exporters.Serializer
	auditService *audit.Service
}

func NewExportController(serializer *exporters.Serializer, auditService *audit.Service) *ExportController {
	return &ExportController{serializer: serializer, auditService: auditService}
}

// Export handles GET /api/export?format=json|csv|xlsx&type=all|programs|workouts|exercises.
func (ec *ExportController) Export(c *gin.Context) {
	format, err := interchange.ParseFormat(c.Query("format"))
	if err != nil {
		respondBadRequest(c, "Unsupported format", err.Error())
		return
	}
	entityType, err := interchange.ParseEntityType(c.Query("type"))
	if err != nil {
		respondBadRequest(c, "Unsupported type", err.Error())
		return
	}

	result, err := ec.serializer.Export(format, entityType)
	if ec.auditService != nil {
		desc := fmt.Sprintf("%s export (%s)", format, entityType)
		if err == nil {
			desc = fmt.Sprintf("%s export (%s): %d programs, %d workouts, %d exercises",
				format, entityType, result.Programs, result.Workouts, result.Exercises)
		}
		ec.auditService.LogExport(string(format)+"_export", desc, err)
	}
	if err != nil {
		respondInternalError(c, err, "Export failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Body)
}
