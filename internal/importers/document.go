package importers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mrlokans/fitadmin/internal/interchange"
)

// DocumentDecoder decodes the structured json document. The payload may be
// the document itself or a json string containing it.
type DocumentDecoder struct {
	Data json.RawMessage
}

var _ Decoder = (*DocumentDecoder)(nil)

func NewDocumentDecoder(data json.RawMessage) *DocumentDecoder {
	return &DocumentDecoder{Data: data}
}

func (d *DocumentDecoder) Decode() (Batch, error) {
	raw := bytes.TrimSpace(d.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Batch{}, fmt.Errorf("%w: empty document", ErrMalformedPayload)
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return Batch{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		raw = []byte(inner)
	}

	var doc interchange.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Batch{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return BatchFromDocument(doc), nil
}

// BatchFromDocument assigns positions to the records of an already decoded document.
func BatchFromDocument(doc interchange.Document) Batch {
	var batch Batch
	for i, rec := range doc.Programs {
		batch.Programs = append(batch.Programs, Row[interchange.ProgramRecord]{Position: i + 1, Record: rec})
	}
	for i, rec := range doc.Workouts {
		batch.Workouts = append(batch.Workouts, Row[interchange.WorkoutRecord]{Position: i + 1, Record: rec})
	}
	for i, rec := range doc.Exercises {
		batch.Exercises = append(batch.Exercises, Row[interchange.ExerciseRecord]{Position: i + 1, Record: rec})
	}
	return batch
}
