package importers

import "strings"

// ExerciseLookup checks for an existing exercise by case-insensitive name.
// Nil programID and workoutID search the whole exercise table.
type ExerciseLookup interface {
	ExerciseExists(name string, programID, workoutID *uint) (bool, error)
}

type DedupScope int

const (
	// DedupGlobal matches against every exercise in the store.
	DedupGlobal DedupScope = iota
	// DedupTarget matches within the workout (or program) the row is inserted into;
	// pool exercises are matched globally.
	DedupTarget
)

// DedupFilter decides whether an exercise row would duplicate stored content.
// It does one lookup per candidate row.
type DedupFilter struct {
	lookup ExerciseLookup
	scope  DedupScope
}

func NewDedupFilter(lookup ExerciseLookup, scope DedupScope) *DedupFilter {
	return &DedupFilter{lookup: lookup, scope: scope}
}

func (f *DedupFilter) Exists(name string, programID, workoutID *uint) (bool, error) {
	name = strings.TrimSpace(name)
	if f.scope == DedupGlobal {
		return f.lookup.ExerciseExists(name, nil, nil)
	}
	return f.lookup.ExerciseExists(name, programID, workoutID)
}
