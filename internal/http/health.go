package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fitadmin/internal/database"
)

// Counter reports stored row counts for the health payload.
type Counter interface {
	Counts() (programs, workouts, exercises int64, err error)
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
	Stats   map[string]int64  `json:"stats,omitempty"`
}

type HealthController struct {
	db      *database.Database
	counter Counter
	version string
}

func NewHealthController(db *database.Database, counter Counter, version string) *HealthController {
	return &HealthController{
		db:      db,
		counter: counter,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	if status == "healthy" && h.counter != nil {
		if p, w, e, err := h.counter.Counts(); err == nil {
			health.Stats = map[string]int64{"programs": p, "workouts": w, "exercises": e}
		}
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
