package importers

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mrlokans/fitadmin/internal/interchange"
)

// SpreadsheetDecoder decodes an xlsx workbook with one sheet per section.
// Each sheet starts with the column header row.
type SpreadsheetDecoder struct {
	Data []byte
}

var _ Decoder = (*SpreadsheetDecoder)(nil)

func NewSpreadsheetDecoder(data []byte) *SpreadsheetDecoder {
	return &SpreadsheetDecoder{Data: data}
}

func (d *SpreadsheetDecoder) Decode() (Batch, error) {
	f, err := excelize.OpenReader(bytes.NewReader(d.Data))
	if err != nil {
		return Batch{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Import: failed to close workbook: %v", err)
		}
	}()

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}

	sections := make(map[string][][]string)
	for _, sheet := range []string{interchange.SectionPrograms, interchange.SectionWorkouts, interchange.SectionExercises} {
		if !present[sheet] {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return Batch{}, fmt.Errorf("%w: sheet %s: %v", ErrMalformedPayload, sheet, err)
		}
		sections[sheet] = dataRows(rows)
	}

	return batchFromSections(sections), nil
}

// dataRows drops the header row, blank rows and repeated headers.
func dataRows(rows [][]string) [][]string {
	if len(rows) > 0 {
		rows = rows[1:]
	}
	var out [][]string
	for _, row := range rows {
		if len(row) == 0 || blankRow(row) || strings.EqualFold(strings.TrimSpace(row[0]), "id") {
			continue
		}
		out = append(out, row)
	}
	return out
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
