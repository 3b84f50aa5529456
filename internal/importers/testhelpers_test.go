package importers

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/fitadmin/internal/database"
	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/entities"
)

func setupTestStore(t *testing.T) (*programs.Repository, *gorm.DB) {
	t.Helper()
	db, err := database.NewQuietDatabase(filepath.Join(t.TempDir(), "importers_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return programs.NewRepository(db.DB), db.DB
}

// flakyStore fails inserts of exercises whose name contains failOn.
type flakyStore struct {
	*programs.Repository
	failOn string
}

func (s *flakyStore) CreateExercise(e *entities.Exercise) error {
	if s.failOn != "" && strings.Contains(e.Name, s.failOn) {
		return errors.New("disk I/O error")
	}
	return s.Repository.CreateExercise(e)
}

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
