// Package programs provides database operations for the program, workout and
// exercise hierarchy.
//
// # Usage
//
//	repo := programs.NewRepository(db)
//	err := repo.CreateProgram(&entities.Program{Name: "Beginner", IsPrimary: true})
package programs

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/fitadmin/internal/entities"
)

var (
	ErrProgramNotFound = errors.New("program not found")
	ErrWorkoutNotFound = errors.New("workout not found")
)

// Repository handles all hierarchy database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new programs repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateProgram inserts a program. A primary program demotes every other
// program in the same transaction.
func (r *Repository) CreateProgram(program *entities.Program) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if program.IsPrimary {
			if err := clearPrimary(tx, 0); err != nil {
				return err
			}
		}
		return tx.Omit("Workouts", "Exercises").Create(program).Error
	})
}

// ProgramUpdate carries the mutable program fields. Nil fields are left unchanged.
type ProgramUpdate struct {
	Name       *string
	IsPrimary  *bool
	OrderIndex *int
}

func (r *Repository) UpdateProgram(id uint, upd ProgramUpdate) (*entities.Program, error) {
	var program entities.Program
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&program, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrProgramNotFound, id)
			}
			return err
		}

		updates := map[string]any{}
		if upd.Name != nil {
			updates["name"] = *upd.Name
		}
		if upd.OrderIndex != nil {
			updates["order_index"] = *upd.OrderIndex
		}
		if upd.IsPrimary != nil {
			if *upd.IsPrimary {
				if err := clearPrimary(tx, id); err != nil {
					return err
				}
			}
			updates["is_primary"] = *upd.IsPrimary
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&program).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&program, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func clearPrimary(tx *gorm.DB, exceptID uint) error {
	query := tx.Model(&entities.Program{}).Where("is_primary = ?", true)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Update("is_primary", false).Error; err != nil {
		return fmt.Errorf("failed to clear primary program: %w", err)
	}
	return nil
}

// DeleteProgram removes a program with its workouts and exercises.
func (r *Repository) DeleteProgram(id uint) (*entities.Program, error) {
	var program entities.Program
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&program, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrProgramNotFound, id)
			}
			return err
		}

		workoutIDs := tx.Model(&entities.Workout{}).Select("id").Where("program_id = ?", id)
		if err := tx.Where("program_id = ? OR workout_id IN (?)", id, workoutIDs).Delete(&entities.Exercise{}).Error; err != nil {
			return err
		}
		if err := tx.Where("program_id = ?", id).Delete(&entities.Workout{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Program{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *Repository) GetProgram(id uint) (*entities.Program, error) {
	var program entities.Program
	if err := r.db.First(&program, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrProgramNotFound, id)
		}
		return nil, err
	}
	return &program, nil
}

// GetProgramWithDays loads a program with its workouts and their exercises in display order.
func (r *Repository) GetProgramWithDays(id uint) (*entities.Program, error) {
	var program entities.Program
	err := r.db.
		Preload("Workouts", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC").Order("id ASC")
		}).
		Preload("Workouts.Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC").Order("id ASC")
		}).
		First(&program, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrProgramNotFound, id)
		}
		return nil, err
	}
	return &program, nil
}

func (r *Repository) ProgramExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Program{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListPrograms returns programs in admin display order.
func (r *Repository) ListPrograms() ([]entities.Program, error) {
	var programs []entities.Program
	err := r.db.
		Order("order_index ASC").
		Order("is_primary DESC").
		Order("created_at DESC").
		Find(&programs).Error
	return programs, err
}

// ListProgramsForExport returns programs in a stable order that survives a round trip.
func (r *Repository) ListProgramsForExport() ([]entities.Program, error) {
	var programs []entities.Program
	err := r.db.
		Order("order_index ASC").
		Order("is_primary DESC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&programs).Error
	return programs, err
}

func (r *Repository) CreateWorkout(workout *entities.Workout) error {
	return r.db.Omit("Exercises").Create(workout).Error
}

func (r *Repository) GetWorkout(id uint) (*entities.Workout, error) {
	var workout entities.Workout
	if err := r.db.First(&workout, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrWorkoutNotFound, id)
		}
		return nil, err
	}
	return &workout, nil
}

func (r *Repository) ListWorkouts() ([]entities.Workout, error) {
	var workouts []entities.Workout
	err := r.db.Order("order_index ASC").Order("id ASC").Find(&workouts).Error
	return workouts, err
}

func (r *Repository) CreateExercise(exercise *entities.Exercise) error {
	return r.db.Create(exercise).Error
}

func (r *Repository) ListExercises() ([]entities.Exercise, error) {
	var exercises []entities.Exercise
	err := r.db.Order("order_index ASC").Order("id ASC").Find(&exercises).Error
	return exercises, err
}

// ExerciseExists reports whether an exercise with the given name exists
// (case-insensitive) within a scope: the workout when workoutID is set, else
// the program's own exercises when programID is set, else the whole table.
func (r *Repository) ExerciseExists(name string, programID, workoutID *uint) (bool, error) {
	query := r.db.Model(&entities.Exercise{}).Where("LOWER(name) = LOWER(?)", name)
	switch {
	case workoutID != nil:
		query = query.Where("workout_id = ?", *workoutID)
	case programID != nil:
		query = query.Where("program_id = ? AND workout_id IS NULL", *programID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Counts returns the number of rows per entity.
func (r *Repository) Counts() (programs, workouts, exercises int64, err error) {
	if err = r.db.Model(&entities.Program{}).Count(&programs).Error; err != nil {
		return
	}
	if err = r.db.Model(&entities.Workout{}).Count(&workouts).Error; err != nil {
		return
	}
	err = r.db.Model(&entities.Exercise{}).Count(&exercises).Error
	return
}
