package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/importers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		value  string
		wantID uint
		wantOK bool
	}{
		{"123", 123, true},
		{"abc", 0, false},
		{"-1", 0, false},
		{"0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tt.value}}

			id, ok := parseIDParam(c, "id")

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), "invalid id")
			}
		})
	}
}

func TestParseQueryID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?programId=456", nil)

	id, ok := parseQueryID(c, "programId")
	assert.True(t, ok)
	assert.Equal(t, uint(456), id)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	_, ok = parseQueryID(c, "programId")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "programId is required")
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestQueryInt(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?limit=10&offset=-5&page=x", nil)

	assert.Equal(t, 10, queryInt(c, "limit", 50))
	assert.Equal(t, 0, queryInt(c, "offset", 0))
	assert.Equal(t, 1, queryInt(c, "page", 1))
	assert.Equal(t, 7, queryInt(c, "missing", 7))
}

func TestRespondStoreError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: 3", programs.ErrProgramNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: 3", programs.ErrWorkoutNotFound), http.StatusNotFound},
		{fmt.Errorf("disk I/O error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondStoreError(c, tt.err, "failed")
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
	}
}

func TestIsStructuralError(t *testing.T) {
	assert.True(t, isStructuralError(fmt.Errorf("%w: bad json", importers.ErrMalformedPayload)))
	assert.True(t, isStructuralError(fmt.Errorf("%w: pdf", importers.ErrUnsupportedFormat)))
	assert.True(t, isStructuralError(fmt.Errorf("%w: 9", importers.ErrUnknownProgram)))
	assert.False(t, isStructuralError(fmt.Errorf("database is locked")))
}
