package importers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mrlokans/fitadmin/internal/config"
	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/entities"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

const (
	DefaultSets = 3
	DefaultReps = 10
)

// Store is the write side of the hierarchy used by imports.
type Store interface {
	ExerciseLookup
	CreateProgram(program *entities.Program) error
	ProgramExists(id uint) (bool, error)
	CreateWorkout(workout *entities.Workout) error
	GetWorkout(id uint) (*entities.Workout, error)
	CreateExercise(exercise *entities.Exercise) error
}

var _ Store = (*programs.Repository)(nil)

type Options struct {
	// MaxReportedErrors caps Result.Errors; every error is still counted.
	MaxReportedErrors int
}

func DefaultOptions() Options {
	return Options{MaxReportedErrors: config.DefaultMaxReportedErrors}
}

type Counts struct {
	Programs  int `json:"programs"`
	Workouts  int `json:"workouts"`
	Exercises int `json:"exercises"`
}

// Result summarizes an import run. Rows that failed appear only in Errors.
type Result struct {
	Imported    Counts   `json:"imported"`
	Skipped     int      `json:"skipped"`
	Errors      []string `json:"errors,omitempty"`
	TotalErrors int      `json:"totalErrors"`
}

func (r Result) Message() string {
	msg := fmt.Sprintf("Imported %d programs, %d workouts, %d exercises", r.Imported.Programs, r.Imported.Workouts, r.Imported.Exercises)
	if r.Skipped > 0 {
		msg += fmt.Sprintf(" (%d duplicates skipped)", r.Skipped)
	}
	if r.TotalErrors > 0 {
		msg += fmt.Sprintf(", %d rows failed", r.TotalErrors)
	}
	return msg
}

// Orchestrator runs whole-hierarchy imports: programs, then workouts, then
// exercises, rewriting parent references through a per-run ReconciliationMap.
type Orchestrator struct {
	store Store
	dedup *DedupFilter
	opts  Options
}

func NewOrchestrator(store Store, opts Options) *Orchestrator {
	return &Orchestrator{
		store: store,
		dedup: NewDedupFilter(store, DedupTarget),
		opts:  opts,
	}
}

// Import decodes the payload and imports the requested entity types.
// Only structural errors are returned; row failures are reported in the Result.
func (o *Orchestrator) Import(dec Decoder, entityType interchange.EntityType) (Result, error) {
	batch, err := dec.Decode()
	if err != nil {
		return Result{}, err
	}
	return o.ImportBatch(batch, entityType), nil
}

func (o *Orchestrator) ImportBatch(batch Batch, entityType interchange.EntityType) Result {
	run := &importRun{
		store: o.store,
		dedup: o.dedup,
		ids:   NewReconciliationMap(),
		errs:  newErrorLog(o.opts.MaxReportedErrors),
	}

	if entityType.Includes(interchange.TypePrograms) {
		run.importPrograms(batch.Programs)
	}
	if entityType.Includes(interchange.TypeWorkouts) {
		run.importWorkouts(batch.Workouts)
	}
	if entityType.Includes(interchange.TypeExercises) {
		run.importExercises(batch.Exercises)
	}

	run.result.Errors = run.errs.messages
	run.result.TotalErrors = run.errs.total
	log.Printf("Import: %s", run.result.Message())
	return run.result
}

type importRun struct {
	store  Store
	dedup  *DedupFilter
	ids    *ReconciliationMap
	errs   *errorLog
	result Result
}

func (r *importRun) importPrograms(rows []Row[interchange.ProgramRecord]) {
	keys := assignLocalIDs(rows, func(p interchange.ProgramRecord) *uint { return p.ID })
	r.ids.DeclarePrograms(keys.ids, keys.positional)

	for _, row := range rows {
		if row.Problem != "" {
			r.errs.add(rowErrorf("Program", row.Position, "%s", row.Problem))
			continue
		}
		key := keys.key(row.Position)
		if key.conflict != "" {
			r.errs.add(rowErrorf("Program", row.Position, "%s", key.conflict))
			continue
		}
		rec := row.Record

		name := strings.TrimSpace(rec.Name)
		if name == "" {
			r.errs.add(rowErrorf("Program", row.Position, "name is required"))
			continue
		}

		program := &entities.Program{
			Name:       name,
			IsPrimary:  rec.IsPrimary,
			OrderIndex: intOr(rec.OrderIndex, 0),
		}
		if err := r.store.CreateProgram(program); err != nil {
			r.errs.add(rowErrorf("Program", row.Position, "failed to insert %q: %v", name, err))
			continue
		}

		if key.owned {
			r.ids.RecordProgram(key.id, program.ID)
		}
		r.result.Imported.Programs++
	}
}

func (r *importRun) importWorkouts(rows []Row[interchange.WorkoutRecord]) {
	keys := assignLocalIDs(rows, func(w interchange.WorkoutRecord) *uint { return w.ID })
	r.ids.DeclareWorkouts(keys.ids, keys.positional)

	for _, row := range rows {
		if row.Problem != "" {
			r.errs.add(rowErrorf("Workout", row.Position, "%s", row.Problem))
			continue
		}
		key := keys.key(row.Position)
		if key.conflict != "" {
			r.errs.add(rowErrorf("Workout", row.Position, "%s", key.conflict))
			continue
		}
		rec := row.Record

		name := strings.TrimSpace(rec.Name)
		if name == "" {
			r.errs.add(rowErrorf("Workout", row.Position, "name is required"))
			continue
		}
		if rec.ProgramID == nil {
			r.errs.add(rowErrorf("Workout", row.Position, "program_id is required"))
			continue
		}

		programID, _, msg := r.resolveProgram(*rec.ProgramID)
		if msg != "" {
			r.errs.add(rowErrorf("Workout", row.Position, "%s", msg))
			continue
		}

		workout := &entities.Workout{
			ProgramID:  programID,
			Name:       name,
			DayNumber:  rec.DayNumber,
			OrderIndex: intOr(rec.OrderIndex, 0),
		}
		if err := r.store.CreateWorkout(workout); err != nil {
			r.errs.add(rowErrorf("Workout", row.Position, "failed to insert %q: %v", name, err))
			continue
		}

		if key.owned {
			r.ids.RecordWorkout(key.id, workout.ID)
		}
		r.result.Imported.Workouts++
	}
}

func (r *importRun) importExercises(rows []Row[interchange.ExerciseRecord]) {
	for _, row := range rows {
		if row.Problem != "" {
			r.errs.add(rowErrorf("Exercise", row.Position, "%s", row.Problem))
			continue
		}
		rec := row.Record

		name := strings.TrimSpace(rec.Name)
		if name == "" {
			r.errs.add(rowErrorf("Exercise", row.Position, "name is required"))
			continue
		}
		if rec.Sets < 0 || rec.Reps < 0 {
			r.errs.add(rowErrorf("Exercise", row.Position, "sets and reps must be positive"))
			continue
		}

		parents, msg := r.resolveExerciseParents(rec)
		if msg != "" {
			r.errs.add(rowErrorf("Exercise", row.Position, "%s", msg))
			continue
		}
		programID, workoutID := parents.programID, parents.workoutID

		// A parent created by this run holds only rows of this run.
		if !parents.createdInRun {
			exists, err := r.dedup.Exists(name, programID, workoutID)
			if err != nil {
				r.errs.add(rowErrorf("Exercise", row.Position, "failed to check for duplicates: %v", err))
				continue
			}
			if exists {
				r.result.Skipped++
				continue
			}
		}

		exercise := &entities.Exercise{
			ProgramID:   programID,
			WorkoutID:   workoutID,
			Name:        name,
			Sets:        positiveOr(rec.Sets, DefaultSets),
			Reps:        positiveOr(rec.Reps, DefaultReps),
			Duration:    strings.TrimSpace(rec.Duration),
			Description: rec.Description,
			ImageURL:    strings.TrimSpace(rec.ImageURL),
			MuscleGroup: strings.TrimSpace(rec.MuscleGroup),
			OrderIndex:  intOr(rec.OrderIndex, 0),
		}
		if err := r.store.CreateExercise(exercise); err != nil {
			r.errs.add(rowErrorf("Exercise", row.Position, "failed to insert %q: %v", name, err))
			continue
		}

		r.result.Imported.Exercises++
	}
}

// resolveProgram maps a program reference to an existing store id or returns
// a rejection message.
func (r *importRun) resolveProgram(ref uint) (uint, Resolution, string) {
	id, res := r.ids.ProgramRef(ref)
	switch res {
	case RejectedFailed:
		return 0, res, fmt.Sprintf("program %d was not imported", ref)
	case RejectedUnknown:
		return 0, res, fmt.Sprintf("program %d is not present in this import", ref)
	}

	exists, err := r.store.ProgramExists(id)
	if err != nil {
		return 0, res, fmt.Sprintf("failed to look up program %d: %v", ref, err)
	}
	if !exists {
		return 0, res, fmt.Sprintf("program %d does not exist", ref)
	}
	return id, res, ""
}

func (r *importRun) resolveWorkout(ref uint) (*entities.Workout, Resolution, string) {
	id, res := r.ids.WorkoutRef(ref)
	switch res {
	case RejectedFailed:
		return nil, res, fmt.Sprintf("workout %d was not imported", ref)
	case RejectedUnknown:
		return nil, res, fmt.Sprintf("workout %d is not present in this import", ref)
	}

	workout, err := r.store.GetWorkout(id)
	if errors.Is(err, programs.ErrWorkoutNotFound) {
		return nil, res, fmt.Sprintf("workout %d does not exist", ref)
	}
	if err != nil {
		return nil, res, fmt.Sprintf("failed to look up workout %d: %v", ref, err)
	}
	return workout, res, ""
}

// exerciseParents is where an exercise row goes. createdInRun is true when
// the innermost parent was inserted earlier in the same run.
type exerciseParents struct {
	programID    *uint
	workoutID    *uint
	createdInRun bool
}

// resolveExerciseParents returns the store program and workout ids for an
// exercise. An exercise under a workout inherits the workout's program.
func (r *importRun) resolveExerciseParents(rec interchange.ExerciseRecord) (exerciseParents, string) {
	var parents exerciseParents
	if rec.ProgramID != nil {
		id, res, msg := r.resolveProgram(*rec.ProgramID)
		if msg != "" {
			return exerciseParents{}, msg
		}
		parents.programID = &id
		parents.createdInRun = res == ResolvedMapped
	}

	if rec.WorkoutID == nil {
		return parents, ""
	}

	workout, res, msg := r.resolveWorkout(*rec.WorkoutID)
	if msg != "" {
		return exerciseParents{}, msg
	}
	if parents.programID != nil && *parents.programID != workout.ProgramID {
		return exerciseParents{}, fmt.Sprintf("program %d does not own workout %d", *rec.ProgramID, *rec.WorkoutID)
	}

	workoutID := workout.ID
	inherited := workout.ProgramID
	return exerciseParents{
		programID:    &inherited,
		workoutID:    &workoutID,
		createdInRun: res == ResolvedMapped,
	}, ""
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func positiveOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
