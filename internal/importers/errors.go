package importers

import (
	"errors"
	"fmt"
	"log"

	"github.com/mrlokans/fitadmin/internal/interchange"
)

// Structural errors abort an import before any row is processed.
var (
	ErrUnsupportedFormat = interchange.ErrUnsupportedFormat
	ErrUnsupportedType   = interchange.ErrUnsupportedType
	ErrMalformedPayload  = errors.New("malformed payload")
	ErrUnknownProgram    = errors.New("target program does not exist")
)

// RowError describes a single rejected row. Row errors never abort an import.
type RowError struct {
	Entity   string // "Program", "Workout", "Exercise"; empty for catalog rows
	Position int    // 1-based position of the row in its input collection
	Message  string
}

func (e RowError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("Row %d: %s", e.Position, e.Message)
	}
	return fmt.Sprintf("%s row %d: %s", e.Entity, e.Position, e.Message)
}

func rowErrorf(entity string, position int, format string, args ...any) RowError {
	return RowError{Entity: entity, Position: position, Message: fmt.Sprintf(format, args...)}
}

// logFirstErrors is how many row errors per run are written to the log.
const logFirstErrors = 10

// errorLog collects rendered row errors up to a reporting limit while still
// counting every error.
type errorLog struct {
	limit    int
	messages []string
	total    int
}

func newErrorLog(limit int) *errorLog {
	return &errorLog{limit: limit}
}

func (l *errorLog) add(err RowError) {
	l.total++
	if l.total <= logFirstErrors {
		log.Printf("Import: %s", err.Error())
	}
	if l.limit <= 0 || len(l.messages) < l.limit {
		l.messages = append(l.messages, err.Error())
	}
}
