package importers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mrlokans/fitadmin/internal/interchange"
)

// NewRequestDecoder picks the decoder for an API request body's data field.
// json accepts a document or a json string holding one; csv expects a string;
// xlsx expects a base64-encoded workbook string.
func NewRequestDecoder(format interchange.Format, data json.RawMessage) (Decoder, error) {
	switch format {
	case interchange.FormatJSON:
		return NewDocumentDecoder(data), nil
	case interchange.FormatCSV:
		text, err := stringPayload(data)
		if err != nil {
			return nil, err
		}
		return NewSectionedDecoder(text), nil
	case interchange.FormatXLSX:
		text, err := stringPayload(data)
		if err != nil {
			return nil, err
		}
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("%w: workbook is not valid base64: %v", ErrMalformedPayload, err)
		}
		return NewSpreadsheetDecoder(raw), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// NewFileDecoder picks the decoder for raw file contents.
func NewFileDecoder(format interchange.Format, content []byte) (Decoder, error) {
	switch format {
	case interchange.FormatJSON:
		return NewDocumentDecoder(content), nil
	case interchange.FormatCSV:
		return NewSectionedDecoder(string(content)), nil
	case interchange.FormatXLSX:
		return NewSpreadsheetDecoder(content), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func stringPayload(data json.RawMessage) (string, error) {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return "", fmt.Errorf("%w: data must be a string", ErrMalformedPayload)
	}
	return text, nil
}
