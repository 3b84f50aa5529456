package importers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mrlokans/fitadmin/internal/delimited"
	"github.com/mrlokans/fitadmin/internal/entities"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

// Extractor converts one catalog row into an exercise record. It is pure:
// no store access. A rejected row is reported as a RowError.
type Extractor func(fields []string, position int) (interchange.ExerciseRecord, error)

// Layout describes the fixed column layout of a third-party exercise catalog.
type Layout struct {
	Name      string
	MinFields int
	Extract   Extractor
}

var (
	// LayoutBodybuilding: name, description url, image, secondary image,
	// muscle group details, muscle group, equipment details, equipment,
	// rating, description.
	LayoutBodybuilding = Layout{Name: "bodybuilding", MinFields: 10, Extract: extractBodybuilding}

	// LayoutFitnessProgramer: name, animated image url, overview, muscle group, source url.
	LayoutFitnessProgramer = Layout{Name: "fitnessprogramer", MinFields: 3, Extract: extractFitnessProgramer}
)

func LayoutByName(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LayoutBodybuilding.Name:
		return LayoutBodybuilding, nil
	case LayoutFitnessProgramer.Name:
		return LayoutFitnessProgramer, nil
	default:
		return Layout{}, fmt.Errorf("%w: catalog layout %q", ErrUnsupportedFormat, name)
	}
}

// cleanName trims and collapses internal whitespace runs.
func cleanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return strings.TrimSpace(fields[i])
	}
	return ""
}

func checkName(name string, position int) error {
	if len([]rune(name)) < 2 {
		return rowErrorf("", position, "Invalid exercise name: %q", name)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func extractBodybuilding(fields []string, position int) (interchange.ExerciseRecord, error) {
	name := cleanName(field(fields, 0))
	if err := checkName(name, position); err != nil {
		return interchange.ExerciseRecord{}, err
	}

	muscleGroup := field(fields, 5)
	equipment := field(fields, 7)
	rating := field(fields, 8)

	var desc strings.Builder
	desc.WriteString(field(fields, 9))
	if muscleGroup != "" {
		desc.WriteString("\nMuscle Group: " + muscleGroup)
	}
	if equipment != "" {
		desc.WriteString("\nEquipment: " + equipment)
	}
	if rating != "" {
		desc.WriteString("\nRating: " + rating)
	}

	order := position
	return interchange.ExerciseRecord{
		Name:        name,
		Sets:        DefaultSets,
		Reps:        DefaultReps,
		Description: strings.TrimSpace(desc.String()),
		ImageURL:    firstNonEmpty(field(fields, 2), field(fields, 3)),
		MuscleGroup: muscleGroup,
		OrderIndex:  &order,
	}, nil
}

func extractFitnessProgramer(fields []string, position int) (interchange.ExerciseRecord, error) {
	name := cleanName(field(fields, 0))
	if err := checkName(name, position); err != nil {
		return interchange.ExerciseRecord{}, err
	}

	muscleGroup := field(fields, 3)
	description := field(fields, 2)
	if muscleGroup != "" {
		description = "Muscle Group: " + muscleGroup + "\n\n" + description
	}

	order := position
	return interchange.ExerciseRecord{
		Name:        name,
		Sets:        DefaultSets,
		Reps:        DefaultReps,
		Description: strings.TrimSpace(description),
		ImageURL:    field(fields, 1),
		MuscleGroup: muscleGroup,
		OrderIndex:  &order,
	}, nil
}

type CatalogOptions struct {
	MaxReportedErrors int
	// StrictRows reports rows with too few fields instead of dropping them.
	StrictRows bool
}

type CatalogResult struct {
	Imported    int      `json:"imported"`
	Skipped     int      `json:"skipped"`
	Errors      []string `json:"errors,omitempty"`
	TotalErrors int      `json:"totalErrors"`
}

func (r CatalogResult) Message() string {
	return fmt.Sprintf("Imported %d exercises, skipped %d", r.Imported, r.Skipped)
}

// CatalogImporter loads third-party exercise catalogs into the exercise pool,
// or into one program when a target program is given.
type CatalogImporter struct {
	store Store
	dedup *DedupFilter
	opts  CatalogOptions
}

func NewCatalogImporter(store Store, opts CatalogOptions) *CatalogImporter {
	return &CatalogImporter{
		store: store,
		dedup: NewDedupFilter(store, DedupGlobal),
		opts:  opts,
	}
}

// Import parses text with the layout, skips the catalog header row and
// inserts every new exercise. Names already in the store are skipped.
func (c *CatalogImporter) Import(layout Layout, text string, programID *uint) (CatalogResult, error) {
	if strings.TrimSpace(text) == "" {
		return CatalogResult{}, fmt.Errorf("%w: CSV data is required", ErrMalformedPayload)
	}

	if programID != nil {
		exists, err := c.store.ProgramExists(*programID)
		if err != nil {
			return CatalogResult{}, fmt.Errorf("failed to look up program %d: %w", *programID, err)
		}
		if !exists {
			return CatalogResult{}, fmt.Errorf("%w: %d", ErrUnknownProgram, *programID)
		}
	}

	mode := delimited.ModeLenient
	if c.opts.StrictRows {
		mode = delimited.ModeStrict
	}
	rows := delimited.Tokenize(text, delimited.Options{MinFields: layout.MinFields, Mode: mode})
	log.Printf("Import: %s catalog parsed %d rows", layout.Name, len(rows))

	var result CatalogResult
	errs := newErrorLog(c.opts.MaxReportedErrors)

	for i := 1; i < len(rows); i++ {
		fields := rows[i]

		if len(fields) < layout.MinFields {
			errs.add(rowErrorf("", i, "Not enough fields (%d)", len(fields)))
			result.Skipped++
			continue
		}

		rec, err := layout.Extract(fields, i)
		if err != nil {
			var rowErr RowError
			if errors.As(err, &rowErr) {
				errs.add(rowErr)
			} else {
				errs.add(rowErrorf("", i, "%v", err))
			}
			result.Skipped++
			continue
		}

		exists, err := c.dedup.Exists(rec.Name, nil, nil)
		if err != nil {
			errs.add(rowErrorf("", i, "failed to check for duplicates: %v", err))
			result.Skipped++
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		exercise := exerciseFromCatalog(rec, programID)
		if err := c.store.CreateExercise(exercise); err != nil {
			errs.add(rowErrorf("", i, "%v", err))
			result.Skipped++
			continue
		}
		result.Imported++
	}

	result.Errors = errs.messages
	result.TotalErrors = errs.total
	log.Printf("Import: %s catalog complete: imported=%d skipped=%d errors=%d", layout.Name, result.Imported, result.Skipped, result.TotalErrors)
	return result, nil
}

func exerciseFromCatalog(rec interchange.ExerciseRecord, programID *uint) *entities.Exercise {
	return &entities.Exercise{
		ProgramID:   programID,
		Name:        rec.Name,
		Sets:        rec.Sets,
		Reps:        rec.Reps,
		Description: rec.Description,
		ImageURL:    rec.ImageURL,
		MuscleGroup: rec.MuscleGroup,
		OrderIndex:  intOr(rec.OrderIndex, 0),
	}
}
