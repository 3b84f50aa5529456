package interchange

import (
	"time"

	"github.com/mrlokans/fitadmin/internal/entities"
)

// Document is the structured whole-hierarchy shape.
type Document struct {
	Programs  []ProgramRecord  `json:"programs"`
	Workouts  []WorkoutRecord  `json:"workouts"`
	Exercises []ExerciseRecord `json:"exercises"`
}

type ProgramRecord struct {
	ID         *uint  `json:"id,omitempty"`
	Name       string `json:"name"`
	IsPrimary  bool   `json:"is_primary"`
	OrderIndex *int   `json:"order_index,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type WorkoutRecord struct {
	ID         *uint  `json:"id,omitempty"`
	ProgramID  *uint  `json:"program_id"`
	Name       string `json:"name"`
	DayNumber  *int   `json:"day_number,omitempty"`
	OrderIndex *int   `json:"order_index,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type ExerciseRecord struct {
	ID          *uint  `json:"id,omitempty"`
	ProgramID   *uint  `json:"program_id,omitempty"`
	WorkoutID   *uint  `json:"workout_id,omitempty"`
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
	OrderIndex  *int   `json:"order_index,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	MuscleGroup string `json:"muscle_group,omitempty"`
}

// Section tokens of the sectioned delimited format and spreadsheet sheet names.
const (
	SectionPrograms  = "PROGRAMS"
	SectionWorkouts  = "WORKOUTS"
	SectionExercises = "EXERCISES"
)

// Column order per section. Importers address fields by these positions.
var (
	ProgramColumns  = []string{"id", "name", "is_primary", "created_at"}
	WorkoutColumns  = []string{"id", "program_id", "name", "day_number", "order_index", "created_at"}
	ExerciseColumns = []string{"id", "program_id", "workout_id", "name", "sets", "reps", "duration", "description", "order_index", "image_url", "muscle_group"}
)

// TimeLayout is used for created_at values on export.
const TimeLayout = "2006-01-02T15:04:05Z07:00"

func FromProgram(p entities.Program) ProgramRecord {
	id := p.ID
	order := p.OrderIndex
	return ProgramRecord{
		ID:         &id,
		Name:       p.Name,
		IsPrimary:  p.IsPrimary,
		OrderIndex: &order,
		CreatedAt:  formatTime(p.CreatedAt),
	}
}

func FromWorkout(w entities.Workout) WorkoutRecord {
	id := w.ID
	programID := w.ProgramID
	order := w.OrderIndex
	return WorkoutRecord{
		ID:         &id,
		ProgramID:  &programID,
		Name:       w.Name,
		DayNumber:  w.DayNumber,
		OrderIndex: &order,
		CreatedAt:  formatTime(w.CreatedAt),
	}
}

func FromExercise(e entities.Exercise) ExerciseRecord {
	id := e.ID
	order := e.OrderIndex
	return ExerciseRecord{
		ID:          &id,
		ProgramID:   e.ProgramID,
		WorkoutID:   e.WorkoutID,
		Name:        e.Name,
		Sets:        e.Sets,
		Reps:        e.Reps,
		Duration:    e.Duration,
		Description: e.Description,
		OrderIndex:  &order,
		ImageURL:    e.ImageURL,
		MuscleGroup: e.MuscleGroup,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}
