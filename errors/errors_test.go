package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLocation(t *testing.T) {
	tests := []struct {
		name     string
		loc      SourceLocation
		expected string
	}{
		{"with filename", SourceLocation{Filename: "main.wv", Line: 10, Column: 5}, "main.wv:10:5"},
		{"without filename", SourceLocation{Line: 10, Column: 5}, "10:5"},
		{"zero location", SourceLocation{}, "0:0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.loc.String())
		})
	}
	assert.True(t, SourceLocation{}.IsZero())
	assert.False(t, SourceLocation{Column: 1}.IsZero())
}

func TestCodes(t *testing.T) {
	assert.Equal(t, "unexpected token", E1001.Description())
	assert.Equal(t, "parse", E1011.Category())
	assert.Equal(t, "compile", E2014.Category())
	assert.Equal(t, "assembly", E3001.Category())
	assert.Equal(t, "unknown error", ErrorCode("E9999").Description())
	assert.Equal(t, "unknown", ErrorCode("E9999").Category())
	assert.Equal(t, "unknown", ErrorCode("").Category())
	assert.Equal(t, "E2012", E2012.String())
}

func TestFormat(t *testing.T) {
	fe := &FormattedError{
		Code:      E2001,
		Kind:      "parse error",
		Message:   `undefined identifier "yy"`,
		Filename:  "main.wv",
		Line:      2,
		Column:    5,
		EndColumn: 6,
		SourceLines: []SourceLineEntry{
			{Number: 2, Text: "1 + yy;", IsMain: true},
		},
		Hint: "did you mean 'y'?",
	}
	expected := strings.Join([]string{
		`parse error[E2001]: undefined identifier "yy"`,
		"  --> main.wv:2:5",
		"   |",
		" 2 | 1 + yy;",
		"   |     ^^",
		"   |",
		"   = hint: did you mean 'y'?",
		"",
	}, "\n")
	assert.Equal(t, expected, NewFormatter(false).Format(fe))
	assert.Equal(t, "main.wv:2:5", fe.Location().String())
	assert.Equal(t, "1 + yy;", fe.Location().Source)
}

func TestFormatNote(t *testing.T) {
	fe := &FormattedError{Message: "boom", Note: "more"}
	assert.Equal(t, "error: boom\n   = note: more\n", NewFormatter(false).Format(fe))
}

func TestFormatColor(t *testing.T) {
	fe := &FormattedError{Message: "boom", Line: 1, Column: 1}
	out := NewFormatter(true).Format(fe)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, NewFormatter(false).Format(fe), "\x1b[")
}

func TestFormatMultiple(t *testing.T) {
	f := NewFormatter(false)
	assert.Equal(t, "", f.FormatMultiple(nil))

	one := &FormattedError{Message: "one"}
	assert.Equal(t, "error: one\n", f.FormatMultiple([]*FormattedError{one}))

	out := f.FormatMultiple([]*FormattedError{one, {Message: "two"}})
	assert.Equal(t, "error[1/2]: one\n\nerror[2/2]: two\n\nfound 2 errors\n", out)
}

type formattable struct{ msg string }

func (e *formattable) Error() string { return e.msg }

func (e *formattable) ToFormatted() *FormattedError {
	return &FormattedError{Code: E2012, Message: e.msg}
}

type multi struct{ errs []*formattable }

func (m *multi) Error() string { return "many" }

func (m *multi) ToFormattedMultiple() []*FormattedError {
	var out []*FormattedError
	for _, e := range m.errs {
		out = append(out, e.ToFormatted())
	}
	return out
}

func TestRender(t *testing.T) {
	assert.Equal(t, "", Render(nil, false))
	assert.Equal(t, "error: plain\n", Render(fmt.Errorf("plain"), false))

	wrapped := fmt.Errorf("compiling: %w", &formattable{msg: "arrays"})
	assert.Equal(t, "error[E2012]: arrays\n", Render(wrapped, false))

	out := Render(&multi{errs: []*formattable{{"a"}, {"b"}}}, false)
	require.Contains(t, out, "found 2 errors")
}

func TestSuggestSimilar(t *testing.T) {
	candidates := []string{"count", "counter", "amount", "x", "county", "count"}
	got := SuggestSimilar("coutn", candidates)
	require.NotEmpty(t, got)
	assert.Equal(t, "count", got[0].Value)
	assert.Equal(t, 2, got[0].Distance)

	assert.Empty(t, SuggestSimilar("", candidates))
	assert.Empty(t, SuggestSimilar("zzz", candidates))
	assert.Len(t, SuggestSimilar("xy", []string{"x", "y", "xa", "xyz", "ay"}), MaxSuggestions)
}

func TestFormatSuggestions(t *testing.T) {
	assert.Equal(t, "", FormatSuggestions(nil))
	assert.Equal(t, "did you mean 'x'?", FormatSuggestions([]Suggestion{{Value: "x"}}))
	assert.Equal(t, "did you mean one of: 'a', 'b'?",
		FormatSuggestions([]Suggestion{{Value: "a"}, {Value: "b"}}))
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, editDistance("abc", "abc"))
	assert.Equal(t, 3, editDistance("", "abc"))
	assert.Equal(t, 3, editDistance("kitten", "sitting"))
	assert.Equal(t, 2, editDistance("ab", "ba"))
}
