package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/importers"
)

// --- Response Types ---

// ErrorResponse is the error shape of every API endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message, details string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Details: details})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs err and answers 500 with a short description.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: context, Details: err.Error()})
}

// respondStoreError maps lookup failures to 404 and everything else to 500.
func respondStoreError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, programs.ErrProgramNotFound):
		respondNotFound(c, "program")
	case errors.Is(err, programs.ErrWorkoutNotFound):
		respondNotFound(c, "workout")
	default:
		respondInternalError(c, err, context)
	}
}

// isStructuralError reports errors caused by the request payload itself.
func isStructuralError(err error) bool {
	return errors.Is(err, importers.ErrMalformedPayload) ||
		errors.Is(err, importers.ErrUnsupportedFormat) ||
		errors.Is(err, importers.ErrUnsupportedType) ||
		errors.Is(err, importers.ErrUnknownProgram)
}

// --- Parameter Parsing ---

// parseIDParam extracts an unsigned id from the URL path or answers 400.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName, "")
		return 0, false
	}
	return uint(id), true
}

// parseQueryID extracts a required unsigned id from the query string or answers 400.
func parseQueryID(c *gin.Context, paramName string) (uint, bool) {
	raw := c.Query(paramName)
	if raw == "" {
		respondBadRequest(c, paramName+" is required", "")
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName, "")
		return 0, false
	}
	return uint(id), true
}

// queryInt reads a non-negative integer query parameter with a default.
func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
