package entities

import "time"

type Program struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	IsPrimary  bool       `gorm:"index;default:false" json:"isPrimary"`
	OrderIndex int        `gorm:"default:0" json:"orderIndex"`
	Workouts   []Workout  `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE" json:"workouts,omitempty"`
	Exercises  []Exercise `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE" json:"exercises,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Workout is a single day of a program.
type Workout struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ProgramID  uint       `gorm:"index;not null" json:"programId"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	DayNumber  *int       `json:"dayNumber,omitempty"`
	OrderIndex int        `gorm:"default:0" json:"orderIndex"`
	Exercises  []Exercise `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"exercises,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Exercise belongs to a workout, directly to a program, or to neither (pool exercise).
type Exercise struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProgramID   *uint     `gorm:"index" json:"programId,omitempty"`
	WorkoutID   *uint     `gorm:"index" json:"workoutId,omitempty"`
	Name        string    `gorm:"index;size:255;not null" json:"name"`
	Sets        int       `json:"sets"`
	Reps        int       `json:"reps"`
	Duration    string    `gorm:"size:100" json:"duration,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string    `gorm:"size:1024" json:"imageUrl,omitempty"`
	MuscleGroup string    `gorm:"size:100" json:"muscleGroup,omitempty"`
	OrderIndex  int       `gorm:"default:0" json:"orderIndex"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsPool reports whether the exercise is not bound to any program or workout.
func (e Exercise) IsPool() bool {
	return e.ProgramID == nil && e.WorkoutID == nil
}
