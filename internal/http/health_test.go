package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/fitadmin/internal/database"
	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/entities"
)

func setupHealthTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewQuietDatabase(filepath.Join(t.TempDir(), "health.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func getHealth(t *testing.T, controller *HealthController) (int, HealthResponse) {
	t.Helper()
	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy with stats when database is connected", func(t *testing.T) {
		db := setupHealthTestDB(t)
		repo := programs.NewRepository(db.DB)
		require.NoError(t, repo.CreateProgram(&entities.Program{Name: "Strength"}))

		code, response := getHealth(t, NewHealthController(db, repo, "1.0.0"))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, int64(1), response.Stats["programs"])
		assert.Contains(t, response.Time, "T")
	})

	t.Run("reports a missing database", func(t *testing.T) {
		code, response := getHealth(t, NewHealthController(nil, nil, "1.0.0"))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "not configured", response.Checks["database"])
		assert.Empty(t, response.Stats)
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db := setupHealthTestDB(t)
		require.NoError(t, db.Close())

		code, response := getHealth(t, NewHealthController(db, programs.NewRepository(db.DB), ""))

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
		assert.Empty(t, response.Stats)
	})
}
