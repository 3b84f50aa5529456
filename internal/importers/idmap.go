package importers

import "fmt"

// Resolution tells how a parent reference was resolved.
type Resolution int

const (
	// ResolvedMapped: the reference is a local id created earlier in this run.
	ResolvedMapped Resolution = iota
	// ResolvedFallback: the reference is taken to be a store id already.
	ResolvedFallback
	// RejectedFailed: the reference names a row of this payload that was not imported.
	RejectedFailed
	// RejectedUnknown: the payload addresses parents by position and has no such row.
	RejectedUnknown
)

func (r Resolution) Rejected() bool {
	return r == RejectedFailed || r == RejectedUnknown
}

// idLayer maps source-local ids of one entity type to store ids.
type idLayer struct {
	declared   map[uint]bool
	resolved   map[uint]uint
	positional bool
}

func newIDLayer() idLayer {
	return idLayer{declared: map[uint]bool{}, resolved: map[uint]uint{}}
}

func (l *idLayer) declare(localIDs []uint, positional bool) {
	for _, id := range localIDs {
		l.declared[id] = true
	}
	l.positional = l.positional || positional
}

// record keeps the first mapping for a local id. assignLocalIDs hands each
// local id to at most one row, so a second mapping never happens in a run.
func (l *idLayer) record(localID, storeID uint) {
	if _, ok := l.resolved[localID]; !ok {
		l.resolved[localID] = storeID
	}
}

// resolve applies local-map-first then raw-id fallback. Fallback is refused
// for references into rows of this payload that failed, and for any unknown
// reference when the layer is addressed positionally.
func (l *idLayer) resolve(ref uint) (uint, Resolution) {
	if id, ok := l.resolved[ref]; ok {
		return id, ResolvedMapped
	}
	if l.declared[ref] {
		return 0, RejectedFailed
	}
	if l.positional {
		return 0, RejectedUnknown
	}
	return ref, ResolvedFallback
}

// ReconciliationMap rewrites local program and workout ids of one import run
// into store ids. It is created per run and never shared.
type ReconciliationMap struct {
	programs idLayer
	workouts idLayer
}

func NewReconciliationMap() *ReconciliationMap {
	return &ReconciliationMap{programs: newIDLayer(), workouts: newIDLayer()}
}

// DeclarePrograms registers the local ids present in the payload before any
// insert. positional is true when at least one program has no explicit id.
func (m *ReconciliationMap) DeclarePrograms(localIDs []uint, positional bool) {
	m.programs.declare(localIDs, positional)
}

func (m *ReconciliationMap) DeclareWorkouts(localIDs []uint, positional bool) {
	m.workouts.declare(localIDs, positional)
}

func (m *ReconciliationMap) RecordProgram(localID, storeID uint) {
	m.programs.record(localID, storeID)
}

func (m *ReconciliationMap) RecordWorkout(localID, storeID uint) {
	m.workouts.record(localID, storeID)
}

func (m *ReconciliationMap) ProgramRef(ref uint) (uint, Resolution) {
	return m.programs.resolve(ref)
}

func (m *ReconciliationMap) WorkoutRef(ref uint) (uint, Resolution) {
	return m.workouts.resolve(ref)
}

// localKey is the local id a row is addressed by within its section.
type localKey struct {
	id uint
	// owned is false when another row claims the same id explicitly.
	owned    bool
	conflict string
}

// localKeys holds the local id assignment of one section.
type localKeys struct {
	ids        []uint
	positional bool
	byPosition map[int]localKey
}

func (k localKeys) key(position int) localKey {
	return k.byPosition[position]
}

// assignLocalIDs gives every row of a section its local id. Explicit ids
// take precedence over positional ones: a row without an id whose position
// equals another row's explicit id keeps no local id and cannot be
// referenced. A repeated explicit id is a conflict on every row after the
// first one.
func assignLocalIDs[T any](rows []Row[T], id func(T) *uint) localKeys {
	keys := localKeys{byPosition: make(map[int]localKey, len(rows))}
	owners := make(map[uint]int, len(rows))

	for _, row := range rows {
		explicit := id(row.Record)
		if explicit == nil {
			continue
		}
		if first, taken := owners[*explicit]; taken {
			keys.byPosition[row.Position] = localKey{
				id:       *explicit,
				conflict: fmt.Sprintf("local id %d already used by row %d", *explicit, first),
			}
			continue
		}
		owners[*explicit] = row.Position
		keys.byPosition[row.Position] = localKey{id: *explicit, owned: true}
		keys.ids = append(keys.ids, *explicit)
	}

	for _, row := range rows {
		if id(row.Record) != nil {
			continue
		}
		keys.positional = true
		pos := uint(row.Position)
		if _, taken := owners[pos]; taken {
			keys.byPosition[row.Position] = localKey{id: pos}
			continue
		}
		owners[pos] = row.Position
		keys.byPosition[row.Position] = localKey{id: pos, owned: true}
		keys.ids = append(keys.ids, pos)
	}
	return keys
}
