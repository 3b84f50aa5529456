package importers

import (
	"github.com/mrlokans/fitadmin/internal/delimited"
	"github.com/mrlokans/fitadmin/internal/interchange"
)

// SectionedDecoder decodes the sectioned delimited text
// (PROGRAMS / WORKOUTS / EXERCISES blocks).
type SectionedDecoder struct {
	Text string
}

var _ Decoder = (*SectionedDecoder)(nil)

func NewSectionedDecoder(text string) *SectionedDecoder {
	return &SectionedDecoder{Text: text}
}

func (d *SectionedDecoder) Decode() (Batch, error) {
	rows := delimited.Tokenize(d.Text, delimited.Options{MinFields: 1, Mode: delimited.ModeLenient})
	sections := delimited.SplitSections(rows,
		interchange.SectionPrograms,
		interchange.SectionWorkouts,
		interchange.SectionExercises,
	)
	return batchFromSections(sections), nil
}
