package delimited

import "strings"

// Mode controls what happens to rows with fewer fields than Options.MinFields.
type Mode int

const (
	// ModeLenient silently drops short rows.
	ModeLenient Mode = iota
	// ModeStrict keeps short rows so the caller can report them.
	ModeStrict
)

type Options struct {
	MinFields int
	Mode      Mode
}

// Tokenize splits text into rows of fields using quoted-CSV rules:
// a double quote toggles quoted mode, a doubled quote inside quotes is a
// literal quote, comma and newline only separate outside quotes, and
// carriage returns outside quotes are dropped. Blank lines produce no row.
func Tokenize(text string, opts Options) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	commit := func() {
		if field.Len() == 0 && len(row) == 0 {
			return
		}
		row = append(row, field.String())
		if len(row) >= opts.MinFields || opts.Mode == ModeStrict {
			rows = append(rows, row)
		}
		row = nil
		field.Reset()
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if ch == '"' {
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
			continue
		}

		if !inQuotes {
			switch ch {
			case ',':
				row = append(row, field.String())
				field.Reset()
				continue
			case '\r':
				continue
			case '\n':
				commit()
				continue
			}
		}

		field.WriteByte(ch)
	}
	commit()

	return rows
}
