package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fitadmin/internal/audit"
	"github.com/mrlokans/fitadmin/internal/entities"
)

const maxAuditPageSize = 200

type AuditController struct {
	auditService *audit.Service
}

func NewAuditController(auditService *audit.Service) *AuditController {
	return &AuditController{auditService: auditService}
}

// GetAuditEvents handles GET /api/audit?limit&offset&type, newest first.
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	if limit == 0 || limit > maxAuditPageSize {
		limit = 50
	}
	offset := queryInt(c, "offset", 0)

	eventType := entities.AuditEventType(c.Query("type"))
	if eventType != "" && !isKnownEventType(eventType) {
		respondBadRequest(c, "Unknown event type", string(eventType))
		return
	}

	events, total, err := ac.auditService.GetEvents(eventType, limit, offset)
	if err != nil {
		respondInternalError(c, err, "Failed to load audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}

func isKnownEventType(t entities.AuditEventType) bool {
	switch t {
	case entities.AuditEventImport, entities.AuditEventExport, entities.AuditEventDelete,
		entities.AuditEventBackup, entities.AuditEventAuth, entities.AuditEventProgram:
		return true
	}
	return false
}
