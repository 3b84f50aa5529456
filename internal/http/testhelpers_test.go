package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/fitadmin/internal/audit"
	"github.com/mrlokans/fitadmin/internal/database"
	dbaudit "github.com/mrlokans/fitadmin/internal/database/audit"
	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/exporters"
	"github.com/mrlokans/fitadmin/internal/importers"
)

type testEnv struct {
	db           *database.Database
	repo         *programs.Repository
	auditService *audit.Service
	router       *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.NewQuietDatabase(filepath.Join(t.TempDir(), "http_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := programs.NewRepository(db.DB)
	auditService := audit.NewService(dbaudit.NewRepository(db.DB))

	router := NewRouter(RouterConfig{
		Database:        db,
		Programs:        repo,
		Orchestrator:    importers.NewOrchestrator(repo, importers.DefaultOptions()),
		CatalogImporter: importers.NewCatalogImporter(repo, importers.CatalogOptions{MaxReportedErrors: 20}),
		Serializer:      exporters.NewSerializer(repo),
		Auditor:         audit.NewAuditor(filepath.Join(t.TempDir(), "audit")),
		AuditService:    auditService,
		Version:         "test",
	})

	return &testEnv{db: db, repo: repo, auditService: auditService, router: router}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (e *testEnv) counts(t *testing.T) (int64, int64, int64) {
	t.Helper()
	p, w, x, err := e.repo.Counts()
	require.NoError(t, err)
	return p, w, x
}
