package importers

import (
	"fmt"
	"strings"

	"github.com/mrlokans/fitadmin/internal/entities"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

// ImportProgram creates a new, non-primary program from a nested transfer
// document. The program itself must be created; failures below it are row
// errors. Exercises are copied as-is without duplicate checks.
func (o *Orchestrator) ImportProgram(t interchange.ProgramTransfer) (*entities.Program, Result, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return nil, Result{}, fmt.Errorf("%w: program name is required", ErrMalformedPayload)
	}

	program := &entities.Program{Name: name, OrderIndex: t.OrderIndex}
	if err := o.store.CreateProgram(program); err != nil {
		return nil, Result{}, fmt.Errorf("failed to create program: %w", err)
	}

	var result Result
	result.Imported.Programs = 1
	errs := newErrorLog(o.opts.MaxReportedErrors)

	for i, day := range t.Days {
		dayPos := i + 1
		dayName := strings.TrimSpace(day.DayName)
		if dayName == "" {
			dayName = fmt.Sprintf("Day %d", intOr(day.DayNumber, dayPos))
		}

		workout := &entities.Workout{
			ProgramID:  program.ID,
			Name:       dayName,
			DayNumber:  day.DayNumber,
			OrderIndex: day.OrderIndex,
		}
		if err := o.store.CreateWorkout(workout); err != nil {
			errs.add(rowErrorf("Day", dayPos, "failed to insert %q: %v", dayName, err))
			continue
		}
		result.Imported.Workouts++

		entity := fmt.Sprintf("Day %d exercise", dayPos)
		for j, ex := range day.Exercises {
			exName := strings.TrimSpace(ex.Name)
			if exName == "" {
				errs.add(rowErrorf(entity, j+1, "name is required"))
				continue
			}

			exercise := &entities.Exercise{
				ProgramID:   &program.ID,
				WorkoutID:   &workout.ID,
				Name:        exName,
				Sets:        positiveOr(ex.Sets, DefaultSets),
				Reps:        positiveOr(ex.Reps, DefaultReps),
				Duration:    ex.Duration,
				Description: ex.Description,
				ImageURL:    ex.ImageURL,
				MuscleGroup: ex.MuscleGroup,
				OrderIndex:  ex.OrderIndex,
			}
			if err := o.store.CreateExercise(exercise); err != nil {
				errs.add(rowErrorf(entity, j+1, "failed to insert %q: %v", exName, err))
				continue
			}
			result.Imported.Exercises++
		}
	}

	result.Errors = errs.messages
	result.TotalErrors = errs.total
	return program, result, nil
}
