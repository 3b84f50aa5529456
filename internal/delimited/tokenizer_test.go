package delimited

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		want [][]string
	}{
		{
			name: "plain rows",
			text: "a,b,c\nd,e,f\n",
			opts: Options{MinFields: 3},
			want: [][]string{{"a", "b", "c"}, {"d", "e", "f"}},
		},
		{
			name: "last row without trailing newline",
			text: "a,b,c\nd,e,f",
			opts: Options{MinFields: 3},
			want: [][]string{{"a", "b", "c"}, {"d", "e", "f"}},
		},
		{
			name: "quoted comma and newline stay in field",
			text: "\"Squat, back\",\"line1\nline2\",x\n",
			opts: Options{MinFields: 3},
			want: [][]string{{"Squat, back", "line1\nline2", "x"}},
		},
		{
			name: "doubled quote inside quotes",
			text: `"say ""hi""",b,c` + "\n",
			opts: Options{MinFields: 3},
			want: [][]string{{`say "hi"`, "b", "c"}},
		},
		{
			name: "carriage returns stripped outside quotes",
			text: "a,b,c\r\nd,e,f\r\n",
			opts: Options{MinFields: 3},
			want: [][]string{{"a", "b", "c"}, {"d", "e", "f"}},
		},
		{
			name: "carriage return kept inside quotes",
			text: "a,\"line1\r\nline2\",c\r\n",
			opts: Options{MinFields: 3},
			want: [][]string{{"a", "line1\r\nline2", "c"}},
		},
		{
			name: "blank lines produce no rows",
			text: "\n\na,b,c\n\n\nd,e,f\n\n",
			opts: Options{MinFields: 1},
			want: [][]string{{"a", "b", "c"}, {"d", "e", "f"}},
		},
		{
			name: "lenient mode drops short rows",
			text: "a,b,c\nshort,row\nd,e,f\n",
			opts: Options{MinFields: 3},
			want: [][]string{{"a", "b", "c"}, {"d", "e", "f"}},
		},
		{
			name: "strict mode keeps short rows",
			text: "a,b,c\nshort,row\n",
			opts: Options{MinFields: 3, Mode: ModeStrict},
			want: [][]string{{"a", "b", "c"}, {"short", "row"}},
		},
		{
			name: "trailing comma yields empty last field",
			text: "a,b,\n",
			opts: Options{MinFields: 3},
			want: [][]string{{"a", "b", ""}},
		},
		{
			name: "unterminated quote swallows the rest",
			text: "a,\"b,c\nd,e,f",
			opts: Options{MinFields: 2},
			want: [][]string{{"a", "b,c\nd,e,f"}},
		},
		{
			name: "empty input",
			text: "",
			opts: Options{MinFields: 1},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text, tt.opts)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	values := []string{
		`He said "go, now"`,
		"multi\nline, with comma",
		`""`,
		"",
		"plain",
	}

	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			line := Quote("x") + "," + Quote(v)
			rows := Tokenize(line, Options{MinFields: 2})
			if assert.Len(t, rows, 1) {
				assert.Equal(t, v, rows[0][1])
			}
		})
	}
}
