package exporters

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"github.com/mrlokans/fitadmin/internal/delimited"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

// documentView omits entity types that were not exported while keeping
// selected but empty ones as [].
type documentView struct {
	Programs  *[]interchange.ProgramRecord  `json:"programs,omitempty"`
	Workouts  *[]interchange.WorkoutRecord  `json:"workouts,omitempty"`
	Exercises *[]interchange.ExerciseRecord `json:"exercises,omitempty"`
}

func RenderJSON(doc interchange.Document) ([]byte, error) {
	var view documentView
	if doc.Programs != nil {
		view.Programs = &doc.Programs
	}
	if doc.Workouts != nil {
		view.Workouts = &doc.Workouts
	}
	if doc.Exercises != nil {
		view.Exercises = &doc.Exercises
	}
	return json.MarshalIndent(view, "", "  ")
}

func programCells(p interchange.ProgramRecord) []string {
	return []string{delimited.OptUint(p.ID), delimited.Quote(p.Name), delimited.Bool(p.IsPrimary), delimited.Quote(p.CreatedAt)}
}

func workoutCells(w interchange.WorkoutRecord) []string {
	return []string{
		delimited.OptUint(w.ID),
		delimited.OptUint(w.ProgramID),
		delimited.Quote(w.Name),
		delimited.OptInt(w.DayNumber),
		delimited.OptInt(w.OrderIndex),
		delimited.Quote(w.CreatedAt),
	}
}

func exerciseCells(e interchange.ExerciseRecord) []string {
	return []string{
		delimited.OptUint(e.ID),
		delimited.OptUint(e.ProgramID),
		delimited.OptUint(e.WorkoutID),
		delimited.Quote(e.Name),
		delimited.Int(e.Sets),
		delimited.Int(e.Reps),
		delimited.Quote(e.Duration),
		delimited.Quote(e.Description),
		delimited.OptInt(e.OrderIndex),
		delimited.Quote(e.ImageURL),
		delimited.Quote(e.MuscleGroup),
	}
}

// RenderCSV writes one section per exported entity type. String values are
// always quoted so the tokenizer reads them back unchanged.
func RenderCSV(doc interchange.Document) string {
	var w delimited.Writer

	if doc.Programs != nil {
		w.Section(interchange.SectionPrograms, interchange.ProgramColumns)
		for _, p := range doc.Programs {
			w.Row(programCells(p)...)
		}
	}
	if doc.Workouts != nil {
		w.Section(interchange.SectionWorkouts, interchange.WorkoutColumns)
		for _, wk := range doc.Workouts {
			w.Row(workoutCells(wk)...)
		}
	}
	if doc.Exercises != nil {
		w.Section(interchange.SectionExercises, interchange.ExerciseColumns)
		for _, e := range doc.Exercises {
			w.Row(exerciseCells(e)...)
		}
	}

	return w.String()
}

func optUintCell(v *uint) any {
	if v == nil {
		return ""
	}
	return *v
}

func optIntCell(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

// RenderXLSX writes one sheet per exported entity type with the same header
// row and column order as the csv sections.
func RenderXLSX(doc interchange.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Export: failed to close workbook: %v", err)
		}
	}()

	var sheets []sheetData
	if doc.Programs != nil {
		rows := make([][]any, 0, len(doc.Programs))
		for _, p := range doc.Programs {
			rows = append(rows, []any{optUintCell(p.ID), p.Name, p.IsPrimary, p.CreatedAt})
		}
		sheets = append(sheets, sheetData{interchange.SectionPrograms, interchange.ProgramColumns, rows})
	}
	if doc.Workouts != nil {
		rows := make([][]any, 0, len(doc.Workouts))
		for _, w := range doc.Workouts {
			rows = append(rows, []any{optUintCell(w.ID), optUintCell(w.ProgramID), w.Name, optIntCell(w.DayNumber), optIntCell(w.OrderIndex), w.CreatedAt})
		}
		sheets = append(sheets, sheetData{interchange.SectionWorkouts, interchange.WorkoutColumns, rows})
	}
	if doc.Exercises != nil {
		rows := make([][]any, 0, len(doc.Exercises))
		for _, e := range doc.Exercises {
			rows = append(rows, []any{
				optUintCell(e.ID), optUintCell(e.ProgramID), optUintCell(e.WorkoutID), e.Name, e.Sets, e.Reps,
				e.Duration, e.Description, optIntCell(e.OrderIndex), e.ImageURL, e.MuscleGroup,
			})
		}
		sheets = append(sheets, sheetData{interchange.SectionExercises, interchange.ExerciseColumns, rows})
	}

	for _, sheet := range sheets {
		if err := writeSheet(f, sheet); err != nil {
			return nil, err
		}
	}

	// A workbook needs at least one sheet; keep the default one only when nothing was exported.
	if len(sheets) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetData struct {
	name    string
	columns []string
	rows    [][]any
}

func writeSheet(f *excelize.File, sheet sheetData) error {
	if _, err := f.NewSheet(sheet.name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
	}

	header := make([]any, len(sheet.columns))
	for i, c := range sheet.columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet.name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet.name, err)
	}

	for i, row := range sheet.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet.name, i+1, err)
		}
	}
	return nil
}
