package delimited

import (
	"strconv"
	"strings"
)

// Quote wraps s in double quotes, doubling any embedded quote.
// Tokenize reads the result back as the original string.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Int renders an integer field unquoted.
func Int(n int) string {
	return strconv.Itoa(n)
}

// OptInt renders a nil pointer as an empty field.
func OptInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// OptUint renders a nil pointer as an empty field.
func OptUint(n *uint) string {
	if n == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*n), 10)
}

func Bool(b bool) string {
	return strconv.FormatBool(b)
}

// Writer assembles a sectioned document. Field values passed to Row must
// already be rendered with Quote, Int, OptInt, OptUint or Bool.
type Writer struct {
	b        strings.Builder
	sections int
}

// Section starts a new section: a blank separator line (except before the
// first section), the token line and the column header line.
func (w *Writer) Section(token string, columns []string) {
	if w.sections > 0 {
		w.b.WriteString("\n")
	}
	w.sections++
	w.b.WriteString(token)
	w.b.WriteString("\n")
	w.b.WriteString(strings.Join(columns, ","))
	w.b.WriteString("\n")
}

func (w *Writer) Row(fields ...string) {
	w.b.WriteString(strings.Join(fields, ","))
	w.b.WriteString("\n")
}

func (w *Writer) String() string {
	return w.b.String()
}
