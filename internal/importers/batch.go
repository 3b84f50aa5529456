package importers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mrlokans/fitadmin/internal/interchange"
)

// Row is one input record with its 1-based position in its collection.
// Problem is set when the row could not be converted from its external form;
// such rows still occupy their position so positional references stay stable.
type Row[T any] struct {
	Position int
	Record   T
	Problem  string
}

// Batch is a decoded payload, ready for the orchestrator.
type Batch struct {
	Programs  []Row[interchange.ProgramRecord]
	Workouts  []Row[interchange.WorkoutRecord]
	Exercises []Row[interchange.ExerciseRecord]
}

// Decoder turns one external serialization into a Batch.
//
// Implementations:
//   - DocumentDecoder (document.go) - structured json document
//   - SectionedDecoder (sectioned.go) - sectioned delimited text
//   - SpreadsheetDecoder (spreadsheet.go) - xlsx workbook, one sheet per section
//
// Decode returns an error only for structural problems; per-row conversion
// problems are attached to the rows.
type Decoder interface {
	Decode() (Batch, error)
}

// batchFromSections converts section rows (sectioned text or spreadsheet sheets)
// positionally using the interchange column order.
func batchFromSections(sections map[string][][]string) Batch {
	var batch Batch
	for i, fields := range sections[interchange.SectionPrograms] {
		batch.Programs = append(batch.Programs, programFromFields(fields, i+1))
	}
	for i, fields := range sections[interchange.SectionWorkouts] {
		batch.Workouts = append(batch.Workouts, workoutFromFields(fields, i+1))
	}
	for i, fields := range sections[interchange.SectionExercises] {
		batch.Exercises = append(batch.Exercises, exerciseFromFields(fields, i+1))
	}
	return batch
}

// fieldParser reads positional fields and remembers the first conversion problem.
type fieldParser struct {
	fields  []string
	problem string
}

func (p *fieldParser) str(i int) string {
	if i < len(p.fields) {
		return p.fields[i]
	}
	return ""
}

func (p *fieldParser) fail(column, value string) {
	if p.problem == "" {
		p.problem = fmt.Sprintf("invalid %s %q", column, value)
	}
}

func (p *fieldParser) optUint(i int, column string) *uint {
	raw := strings.TrimSpace(p.str(i))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		p.fail(column, raw)
		return nil
	}
	u := uint(v)
	return &u
}

func (p *fieldParser) optInt(i int, column string) *int {
	raw := strings.TrimSpace(p.str(i))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(column, raw)
		return nil
	}
	return &v
}

func (p *fieldParser) integer(i int, column string) int {
	if v := p.optInt(i, column); v != nil {
		return *v
	}
	return 0
}

func (p *fieldParser) flag(i int, column string) bool {
	raw := strings.TrimSpace(p.str(i))
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(column, raw)
		return false
	}
	return v
}

func programFromFields(fields []string, position int) Row[interchange.ProgramRecord] {
	p := &fieldParser{fields: fields}
	rec := interchange.ProgramRecord{
		ID:        p.optUint(0, "id"),
		Name:      p.str(1),
		IsPrimary: p.flag(2, "is_primary"),
		CreatedAt: p.str(3),
	}
	return Row[interchange.ProgramRecord]{Position: position, Record: rec, Problem: p.problem}
}

func workoutFromFields(fields []string, position int) Row[interchange.WorkoutRecord] {
	p := &fieldParser{fields: fields}
	rec := interchange.WorkoutRecord{
		ID:         p.optUint(0, "id"),
		ProgramID:  p.optUint(1, "program_id"),
		Name:       p.str(2),
		DayNumber:  p.optInt(3, "day_number"),
		OrderIndex: p.optInt(4, "order_index"),
		CreatedAt:  p.str(5),
	}
	return Row[interchange.WorkoutRecord]{Position: position, Record: rec, Problem: p.problem}
}

func exerciseFromFields(fields []string, position int) Row[interchange.ExerciseRecord] {
	p := &fieldParser{fields: fields}
	rec := interchange.ExerciseRecord{
		ID:          p.optUint(0, "id"),
		ProgramID:   p.optUint(1, "program_id"),
		WorkoutID:   p.optUint(2, "workout_id"),
		Name:        p.str(3),
		Sets:        p.integer(4, "sets"),
		Reps:        p.integer(5, "reps"),
		Duration:    p.str(6),
		Description: p.str(7),
		OrderIndex:  p.optInt(8, "order_index"),
		ImageURL:    p.str(9),
		MuscleGroup: p.str(10),
	}
	return Row[interchange.ExerciseRecord]{Position: position, Record: rec, Problem: p.problem}
}
