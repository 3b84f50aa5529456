package exporters

import (
	"fmt"
	"time"

	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/entities"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

// HierarchyReader is the read side of the store used by exports.
type HierarchyReader interface {
	ListProgramsForExport() ([]entities.Program, error)
	ListWorkouts() ([]entities.Workout, error)
	ListExercises() ([]entities.Exercise, error)
	GetProgramWithDays(id uint) (*entities.Program, error)
}

var _ HierarchyReader = (*programs.Repository)(nil)

// ExportResult is a rendered export ready to be written or served.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
	Programs    int
	Workouts    int
	Exercises   int
}

type Serializer struct {
	reader HierarchyReader
	now    func() time.Time
}

func NewSerializer(reader HierarchyReader) *Serializer {
	return &Serializer{reader: reader, now: time.Now}
}

// Snapshot reads the hierarchy in traversal order: each program, its workouts
// with their exercises, then the program's own exercises; pool exercises come last.
// Entity types not selected by entityType are left nil.
func (s *Serializer) Snapshot(entityType interchange.EntityType) (interchange.Document, error) {
	programList, err := s.reader.ListProgramsForExport()
	if err != nil {
		return interchange.Document{}, fmt.Errorf("failed to list programs: %w", err)
	}
	workouts, err := s.reader.ListWorkouts()
	if err != nil {
		return interchange.Document{}, fmt.Errorf("failed to list workouts: %w", err)
	}
	exercises, err := s.reader.ListExercises()
	if err != nil {
		return interchange.Document{}, fmt.Errorf("failed to list exercises: %w", err)
	}

	workoutsByProgram := make(map[uint][]entities.Workout)
	for _, w := range workouts {
		workoutsByProgram[w.ProgramID] = append(workoutsByProgram[w.ProgramID], w)
	}

	byWorkout := make(map[uint][]entities.Exercise)
	byProgram := make(map[uint][]entities.Exercise)
	var pool []entities.Exercise
	for _, e := range exercises {
		switch {
		case e.WorkoutID != nil:
			byWorkout[*e.WorkoutID] = append(byWorkout[*e.WorkoutID], e)
		case e.ProgramID != nil:
			byProgram[*e.ProgramID] = append(byProgram[*e.ProgramID], e)
		default:
			pool = append(pool, e)
		}
	}

	doc := interchange.Document{
		Programs:  []interchange.ProgramRecord{},
		Workouts:  []interchange.WorkoutRecord{},
		Exercises: []interchange.ExerciseRecord{},
	}
	for _, p := range programList {
		doc.Programs = append(doc.Programs, interchange.FromProgram(p))
		for _, w := range workoutsByProgram[p.ID] {
			doc.Workouts = append(doc.Workouts, interchange.FromWorkout(w))
			for _, e := range byWorkout[w.ID] {
				doc.Exercises = append(doc.Exercises, interchange.FromExercise(e))
			}
		}
		for _, e := range byProgram[p.ID] {
			doc.Exercises = append(doc.Exercises, interchange.FromExercise(e))
		}
	}
	for _, e := range pool {
		doc.Exercises = append(doc.Exercises, interchange.FromExercise(e))
	}

	if !entityType.Includes(interchange.TypePrograms) {
		doc.Programs = nil
	}
	if !entityType.Includes(interchange.TypeWorkouts) {
		doc.Workouts = nil
	}
	if !entityType.Includes(interchange.TypeExercises) {
		doc.Exercises = nil
	}
	return doc, nil
}

// Export renders the selected part of the hierarchy in the given format.
func (s *Serializer) Export(format interchange.Format, entityType interchange.EntityType) (ExportResult, error) {
	doc, err := s.Snapshot(entityType)
	if err != nil {
		return ExportResult{}, err
	}

	var body []byte
	switch format {
	case interchange.FormatJSON:
		body, err = RenderJSON(doc)
	case interchange.FormatCSV:
		body = []byte(RenderCSV(doc))
	case interchange.FormatXLSX:
		body, err = RenderXLSX(doc)
	default:
		return ExportResult{}, fmt.Errorf("%w: %q", interchange.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to render %s export: %w", format, err)
	}

	return ExportResult{
		Filename:    Filename(format, s.now()),
		ContentType: ContentType(format),
		Body:        body,
		Programs:    len(doc.Programs),
		Workouts:    len(doc.Workouts),
		Exercises:   len(doc.Exercises),
	}, nil
}

// ExportProgram returns one program with its days and their exercises.
func (s *Serializer) ExportProgram(id uint) (interchange.ProgramTransfer, error) {
	program, err := s.reader.GetProgramWithDays(id)
	if err != nil {
		return interchange.ProgramTransfer{}, err
	}
	return interchange.TransferFromProgram(*program), nil
}

// Filename stamps the export time in unix milliseconds.
func Filename(format interchange.Format, at time.Time) string {
	return fmt.Sprintf("fitness-data-%d.%s", at.UnixMilli(), format)
}

func ContentType(format interchange.Format) string {
	switch format {
	case interchange.FormatCSV:
		return "text/csv; charset=utf-8"
	case interchange.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json; charset=utf-8"
	}
}
