package interchange

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnsupportedType   = errors.New("unsupported entity type")
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts a format name case-insensitively. Empty means json.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// EntityType selects which stages of an import or export run.
type EntityType string

const (
	TypeAll       EntityType = "all"
	TypePrograms  EntityType = "programs"
	TypeWorkouts  EntityType = "workouts"
	TypeExercises EntityType = "exercises"
)

// ParseEntityType accepts a type name case-insensitively. Empty means all.
func ParseEntityType(s string) (EntityType, error) {
	switch t := EntityType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TypeAll, nil
	case TypeAll, TypePrograms, TypeWorkouts, TypeExercises:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, s)
	}
}

// Includes reports whether the stage for entity runs under t.
func (t EntityType) Includes(entity EntityType) bool {
	return t == TypeAll || t == entity
}
