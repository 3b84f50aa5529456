package importers

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/fitadmin/internal/entities"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

func importJSON(t *testing.T, orch *Orchestrator, payload string, entityType interchange.EntityType) Result {
	t.Helper()
	result, err := orch.Import(NewDocumentDecoder(json.RawMessage(payload)), entityType)
	require.NoError(t, err)
	return result
}

func TestOrchestrator_BasicScenario(t *testing.T) {
	repo, db := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	result := importJSON(t, orch, `{
		"programs": [{"name": "Beginner"}],
		"workouts": [{"program_id": 1, "name": "Day 1"}],
		"exercises": [{"workout_id": 1, "name": "Squat", "sets": 3, "reps": 10}]
	}`, interchange.TypeAll)

	assert.Equal(t, Counts{Programs: 1, Workouts: 1, Exercises: 1}, result.Imported)
	assert.Empty(t, result.Errors)
	assert.Zero(t, result.TotalErrors)

	var program entities.Program
	require.NoError(t, db.Preload("Workouts.Exercises").First(&program).Error)
	assert.Equal(t, "Beginner", program.Name)
	require.Len(t, program.Workouts, 1)
	assert.Equal(t, "Day 1", program.Workouts[0].Name)
	require.Len(t, program.Workouts[0].Exercises, 1)

	squat := program.Workouts[0].Exercises[0]
	assert.Equal(t, "Squat", squat.Name)
	require.NotNil(t, squat.ProgramID)
	assert.Equal(t, program.ID, *squat.ProgramID, "exercise inherits the workout's program")
}

func TestOrchestrator_PositionalReferencesRemap(t *testing.T) {
	repo, db := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	// Occupy low ids so local positions differ from store ids.
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.CreateProgram(&entities.Program{Name: fmt.Sprintf("Existing %d", i)}))
	}

	const n = 3
	var programs, workouts []string
	for i := 1; i <= n; i++ {
		programs = append(programs, fmt.Sprintf(`{"name": "P%d"}`, i))
	}
	for i := 1; i <= n+2; i++ {
		workouts = append(workouts, fmt.Sprintf(`{"program_id": %d, "name": "W%d"}`, i, i))
	}
	payload := fmt.Sprintf(`{"programs": [%s], "workouts": [%s]}`, strings.Join(programs, ","), strings.Join(workouts, ","))

	result := importJSON(t, orch, payload, interchange.TypeAll)
	assert.Equal(t, n, result.Imported.Programs)
	assert.Equal(t, n, result.Imported.Workouts)
	assert.Equal(t, 2, result.TotalErrors)
	assert.Contains(t, result.Errors[0], "Workout row 4")

	var stored []entities.Workout
	require.NoError(t, db.Order("id").Find(&stored).Error)
	require.Len(t, stored, n)
	for i, w := range stored {
		var p entities.Program
		require.NoError(t, db.First(&p, w.ProgramID).Error)
		assert.Equal(t, fmt.Sprintf("P%d", i+1), p.Name)
	}
}

func TestOrchestrator_PartialFailureContainment(t *testing.T) {
	repo, db := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	result := importJSON(t, orch, `{"exercises": [
		{"name": "Push-up", "sets": 3, "reps": 12},
		{"name": "Plank", "sets": 3, "reps": 1},
		{"name": "   ", "sets": 3, "reps": 10},
		{"name": "Lunge", "sets": 3, "reps": 8},
		{"name": "Burpee", "sets": 3, "reps": 15}
	]}`, interchange.TypeAll)

	assert.Equal(t, 4, result.Imported.Exercises)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Exercise row 3: name is required", result.Errors[0])
	assert.Zero(t, result.Skipped)
	assert.Equal(t, int64(4), countRows(t, db, &entities.Exercise{}))
}

func TestOrchestrator_StoreFailureDoesNotAbortBatch(t *testing.T) {
	repo, db := setupTestStore(t)
	orch := NewOrchestrator(&flakyStore{Repository: repo, failOn: "Broken"}, DefaultOptions())

	result := importJSON(t, orch, `{"exercises": [
		{"name": "A1"}, {"name": "Broken one"}, {"name": "A3"}
	]}`, interchange.TypeExercises)

	assert.Equal(t, 2, result.Imported.Exercises)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Exercise row 2")
	assert.Contains(t, result.Errors[0], "disk I/O error")
	assert.Equal(t, int64(2), countRows(t, db, &entities.Exercise{}))
}

func TestOrchestrator_FailedParentRejectsChildren(t *testing.T) {
	repo, db := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	result := importJSON(t, orch, `{
		"programs": [{"name": "Good"}, {"name": ""}],
		"workouts": [{"program_id": 2, "name": "Orphan"}, {"program_id": 1, "name": "Kept"}],
		"exercises": [{"workout_id": 1, "name": "Lost"}, {"workout_id": 2, "name": "Saved"}]
	}`, interchange.TypeAll)

	assert.Equal(t, Counts{Programs: 1, Workouts: 1, Exercises: 1}, result.Imported)
	assert.Equal(t, []string{
		"Program row 2: name is required",
		"Workout row 1: program 2 was not imported",
		"Exercise row 1: workout 1 was not imported",
	}, result.Errors)
	assert.Equal(t, int64(1), countRows(t, db, &entities.Workout{}))
}

func TestOrchestrator_FallbackToStoreIDs(t *testing.T) {
	repo, _ := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	existing := &entities.Program{Name: "Existing"}
	require.NoError(t, repo.CreateProgram(existing))

	// No programs in the payload: references are store ids.
	result := importJSON(t, orch, fmt.Sprintf(`{
		"workouts": [{"program_id": %d, "name": "Extra day"}, {"program_id": 999, "name": "Nowhere"}]
	}`, existing.ID), interchange.TypeWorkouts)

	assert.Equal(t, 1, result.Imported.Workouts)
	assert.Equal(t, []string{"Workout row 2: program 999 does not exist"}, result.Errors)
}

func TestOrchestrator_WorkoutRequiresProgram(t *testing.T) {
	repo, _ := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	result := importJSON(t, orch, `{"workouts": [{"name": "Floating"}]}`, interchange.TypeAll)
	assert.Equal(t, []string{"Workout row 1: program_id is required"}, result.Errors)
}

func TestOrchestrator_ProgramWorkoutMismatch(t *testing.T) {
	repo, _ := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	result := importJSON(t, orch, `{
		"programs": [{"name": "A"}, {"name": "B"}],
		"workouts": [{"program_id": 1, "name": "A day"}],
		"exercises": [{"program_id": 2, "workout_id": 1, "name": "Confused"}]
	}`, interchange.TypeAll)

	assert.Zero(t, result.Imported.Exercises)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "does not own workout 1")
}

func TestOrchestrator_TypeFilter(t *testing.T) {
	repo, db := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	payload := `{
		"programs": [{"name": "P"}],
		"exercises": [{"name": "Pool exercise"}]
	}`

	result := importJSON(t, orch, payload, interchange.TypePrograms)
	assert.Equal(t, Counts{Programs: 1}, result.Imported)
	assert.Equal(t, int64(0), countRows(t, db, &entities.Exercise{}))

	result = importJSON(t, orch, payload, interchange.TypeExercises)
	assert.Equal(t, Counts{Exercises: 1}, result.Imported)
	assert.Equal(t, int64(1), countRows(t, db, &entities.Program{}))
}

func TestOrchestrator_DedupWithinTarget(t *testing.T) {
	repo, db := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	// Workouts created by the run keep repeated exercises, pool rows do not.
	result := importJSON(t, orch, `{
		"programs": [{"name": "P"}],
		"workouts": [{"program_id": 1, "name": "Day 1"}, {"program_id": 1, "name": "Day 2"}],
		"exercises": [
			{"workout_id": 1, "name": "Squat"},
			{"workout_id": 2, "name": "Squat"},
			{"workout_id": 2, "name": "squat"},
			{"name": "Pool Row"},
			{"name": "pool row"}
		]
	}`, interchange.TypeAll)
	assert.Equal(t, 4, result.Imported.Exercises)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)

	// Rows aimed at an existing workout are checked against what it holds.
	var day2 entities.Workout
	require.NoError(t, db.Where("name = ?", "Day 2").First(&day2).Error)
	result = importJSON(t, orch, fmt.Sprintf(`{"exercises": [
		{"workout_id": %d, "name": "SQUAT"},
		{"workout_id": %d, "name": "Lunge"}
	]}`, day2.ID, day2.ID), interchange.TypeExercises)
	assert.Equal(t, 1, result.Imported.Exercises)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)
}

func TestOrchestrator_RepeatedExerciseInNewProgram(t *testing.T) {
	repo, db := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	result := importJSON(t, orch, `{
		"programs": [{"id": 10, "name": "Circuit"}],
		"exercises": [
			{"program_id": 10, "name": "Burpee"},
			{"program_id": 10, "name": "Sprint"},
			{"program_id": 10, "name": "Burpee"}
		]
	}`, interchange.TypeAll)
	assert.Equal(t, 3, result.Imported.Exercises)
	assert.Zero(t, result.Skipped)

	var count int64
	require.NoError(t, db.Model(&entities.Exercise{}).Where("name = ?", "Burpee").Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestOrchestrator_ExplicitIDOverridesPosition(t *testing.T) {
	repo, db := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	result := importJSON(t, orch, `{
		"programs": [{"name": "A"}, {"id": 1, "name": "B"}],
		"workouts": [{"program_id": 1, "name": "for-B-by-id"}]
	}`, interchange.TypeAll)
	assert.Equal(t, 2, result.Imported.Programs)
	assert.Equal(t, 1, result.Imported.Workouts)
	assert.Empty(t, result.Errors)

	var b entities.Program
	require.NoError(t, db.Where("name = ?", "B").First(&b).Error)
	var w entities.Workout
	require.NoError(t, db.Where("name = ?", "for-B-by-id").First(&w).Error)
	assert.Equal(t, b.ID, w.ProgramID)
}

func TestOrchestrator_DuplicateExplicitID(t *testing.T) {
	repo, db := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	result := importJSON(t, orch, `{
		"programs": [{"id": 3, "name": "First"}, {"id": 3, "name": "Second"}],
		"workouts": [{"id": 1, "program_id": 3, "name": "W"}, {"id": 1, "program_id": 3, "name": "W again"}]
	}`, interchange.TypeAll)
	assert.Equal(t, 1, result.Imported.Programs)
	assert.Equal(t, 1, result.Imported.Workouts)
	assert.Equal(t, []string{
		"Program row 2: local id 3 already used by row 1",
		"Workout row 2: local id 1 already used by row 1",
	}, result.Errors)

	var first entities.Program
	require.NoError(t, db.Where("name = ?", "First").First(&first).Error)
	var w entities.Workout
	require.NoError(t, db.Where("name = ?", "W").First(&w).Error)
	assert.Equal(t, first.ID, w.ProgramID)
}

func TestOrchestrator_DefaultsAndValidation(t *testing.T) {
	repo, db := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	result := importJSON(t, orch, `{"exercises": [
		{"name": "Defaults"},
		{"name": "Negative", "sets": -1, "reps": 5}
	]}`, interchange.TypeAll)

	assert.Equal(t, 1, result.Imported.Exercises)
	assert.Equal(t, []string{"Exercise row 2: sets and reps must be positive"}, result.Errors)

	var e entities.Exercise
	require.NoError(t, db.Where("name = ?", "Defaults").First(&e).Error)
	assert.Equal(t, DefaultSets, e.Sets)
	assert.Equal(t, DefaultReps, e.Reps)
	assert.True(t, e.IsPool())
}

func TestOrchestrator_ErrorCap(t *testing.T) {
	repo, _ := setupTestStore(t)
	orch := NewOrchestrator(repo, Options{MaxReportedErrors: 3})

	var rows []string
	for i := 0; i < 8; i++ {
		rows = append(rows, `{"name": ""}`)
	}
	result := importJSON(t, orch, `{"programs": [`+strings.Join(rows, ",")+`]}`, interchange.TypeAll)

	assert.Len(t, result.Errors, 3)
	assert.Equal(t, 8, result.TotalErrors)
}

func TestOrchestrator_SectionedCSV(t *testing.T) {
	repo, db := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	text := `PROGRAMS
id,name,is_primary,created_at
7,"Strength",true,2024-01-01T00:00:00Z
8,"Mobility",false,

WORKOUTS
id,program_id,name,day_number,order_index,created_at
70,7,"Upper",1,0,
71,8,"Hips",1,0,
72,8,"Bad day",x,0,

EXERCISES
id,program_id,workout_id,name,sets,reps,duration,description,order_index,image_url,muscle_group
700,7,70,"Bench, flat",4,6,"","Keep ""elbows"" tucked",0,"",Chest
701,8,71,"Hip circle",2,10,"30s","",0,"",
702,,,"Pool stretch",1,1,"","",0,"",
`
	result, err := orch.Import(NewSectionedDecoder(text), interchange.TypeAll)
	require.NoError(t, err)

	assert.Equal(t, Counts{Programs: 2, Workouts: 2, Exercises: 3}, result.Imported)
	assert.Equal(t, []string{`Workout row 3: invalid day_number "x"`}, result.Errors)

	var bench entities.Exercise
	require.NoError(t, db.Where("name = ?", "Bench, flat").First(&bench).Error)
	assert.Equal(t, `Keep "elbows" tucked`, bench.Description)
	assert.Equal(t, "Chest", bench.MuscleGroup)

	var strength entities.Program
	require.NoError(t, db.First(&strength, *bench.ProgramID).Error)
	assert.Equal(t, "Strength", strength.Name)
	assert.True(t, strength.IsPrimary)
}

func TestOrchestrator_StructuralError(t *testing.T) {
	repo, db := setupTestStore(t)
	orch := NewOrchestrator(repo, DefaultOptions())

	_, err := orch.Import(NewDocumentDecoder(json.RawMessage(`{"programs": [`)), interchange.TypeAll)
	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.Equal(t, int64(0), countRows(t, db, &entities.Program{}))
}

func TestResult_Message(t *testing.T) {
	r := Result{Imported: Counts{Programs: 1, Workouts: 2, Exercises: 3}, Skipped: 1, TotalErrors: 2}
	assert.Equal(t, "Imported 1 programs, 2 workouts, 3 exercises (1 duplicates skipped), 2 rows failed", r.Message())
}
