package delimited

import (
	"regexp"
	"strings"
)

var sectionToken = regexp.MustCompile(`^[A-Z][A-Z_]*$`)

// Sections maps a section token (e.g. "PROGRAMS") to its data rows in input order.
type Sections map[string][][]string

// IsSectionToken reports whether a tokenized row is a section marker line.
func IsSectionToken(row []string) bool {
	return len(row) == 1 && sectionToken.MatchString(strings.TrimSpace(row[0]))
}

// SplitSections routes tokenized rows to the section they appear under.
//
// A section marker is immediately followed by one column header line, which
// is discarded. Repeated header lines (first field "id"), rows appearing before
// any marker and rows under a marker not listed in known are ignored.
func SplitSections(rows [][]string, known ...string) Sections {
	accepted := make(map[string]bool, len(known))
	for _, k := range known {
		accepted[k] = true
	}

	sections := make(Sections)
	current := ""
	skipHeader := false

	for _, row := range rows {
		if IsSectionToken(row) {
			current = strings.TrimSpace(row[0])
			skipHeader = true
			continue
		}
		if skipHeader {
			skipHeader = false
			continue
		}
		if current == "" || !accepted[current] {
			continue
		}
		if isBlank(row) || strings.EqualFold(strings.TrimSpace(row[0]), "id") {
			continue
		}
		sections[current] = append(sections[current], row)
	}

	return sections
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
