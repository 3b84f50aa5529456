package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/fitadmin/internal/entities"
)

func TestAuditEvents(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, env.auditService.Log(&entities.AuditEvent{
			EventType: entities.AuditEventImport,
			Action:    "json_import",
			Status:    entities.AuditStatusSuccess,
		}))
	}
	require.NoError(t, env.auditService.Log(&entities.AuditEvent{
		EventType: entities.AuditEventExport,
		Action:    "csv_export",
		Status:    entities.AuditStatusSuccess,
	}))

	t.Run("paginates", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/audit?limit=2&offset=0", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decodeBody[struct {
			Data    []entities.AuditEvent `json:"data"`
			Total   int64                 `json:"total"`
			HasMore bool                  `json:"hasMore"`
		}](t, w)
		assert.Len(t, resp.Data, 2)
		assert.Equal(t, int64(4), resp.Total)
		assert.True(t, resp.HasMore)
	})

	t.Run("filters by type", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/audit?type=export", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeBody[struct {
			Data    []entities.AuditEvent `json:"data"`
			Total   int64                 `json:"total"`
			HasMore bool                  `json:"hasMore"`
		}](t, w)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "csv_export", resp.Data[0].Action)
		assert.False(t, resp.HasMore)
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/audit?type=books", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuditEvents_ImportIsRecorded(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/import", `{"format":"json","data":`+sampleDocument+`}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Eventually(t, func() bool {
		events, _, err := env.auditService.GetEvents(entities.AuditEventImport, 10, 0)
		return err == nil && len(events) == 1 && events[0].Status == entities.AuditStatusPartial
	}, 2*time.Second, 20*time.Millisecond)
}
