package interchange

import "github.com/mrlokans/fitadmin/internal/entities"

// ProgramTransfer is the nested single-program shape used to copy one program
// between installations: the program with its days, each carrying its exercises.
type ProgramTransfer struct {
	ID         *uint         `json:"id,omitempty"`
	Name       string        `json:"name"`
	IsPrimary  bool          `json:"isPrimary"`
	OrderIndex int           `json:"orderIndex"`
	CreatedAt  string        `json:"createdAt,omitempty"`
	Days       []DayTransfer `json:"days"`
}

type DayTransfer struct {
	ID         *uint              `json:"id,omitempty"`
	DayNumber  *int               `json:"dayNumber,omitempty"`
	DayName    string             `json:"dayName"`
	OrderIndex int                `json:"orderIndex"`
	Exercises  []ExerciseTransfer `json:"exercises"`
}

type ExerciseTransfer struct {
	ID          *uint  `json:"id,omitempty"`
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	MuscleGroup string `json:"muscleGroup,omitempty"`
	OrderIndex  int    `json:"orderIndex"`
}

// TransferFromProgram expects p.Workouts and their Exercises to be loaded.
func TransferFromProgram(p entities.Program) ProgramTransfer {
	id := p.ID
	t := ProgramTransfer{
		ID:         &id,
		Name:       p.Name,
		IsPrimary:  p.IsPrimary,
		OrderIndex: p.OrderIndex,
		CreatedAt:  formatTime(p.CreatedAt),
		Days:       make([]DayTransfer, 0, len(p.Workouts)),
	}

	for _, w := range p.Workouts {
		wid := w.ID
		day := DayTransfer{
			ID:         &wid,
			DayNumber:  w.DayNumber,
			DayName:    w.Name,
			OrderIndex: w.OrderIndex,
			Exercises:  make([]ExerciseTransfer, 0, len(w.Exercises)),
		}
		for _, e := range w.Exercises {
			eid := e.ID
			day.Exercises = append(day.Exercises, ExerciseTransfer{
				ID:          &eid,
				Name:        e.Name,
				Sets:        e.Sets,
				Reps:        e.Reps,
				Duration:    e.Duration,
				Description: e.Description,
				ImageURL:    e.ImageURL,
				MuscleGroup: e.MuscleGroup,
				OrderIndex:  e.OrderIndex,
			})
		}
		t.Days = append(t.Days, day)
	}

	return t
}
