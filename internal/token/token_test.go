package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test looking up values succeeds, then fails
func TestLookup(t *testing.T) {
	for key, val := range keywords {

		// Obviously this will pass.
		if LookupIdentifier(key) != val {
			t.Errorf("Lookup of %s failed", key)
		}

		// Once the keywords are uppercase they'll no longer
		// match - so we find them as identifiers.
		if LookupIdentifier(strings.ToUpper(key)) != IDENT {
			t.Errorf("Lookup of %s failed", key)
		}
	}
}

func TestPosition(t *testing.T) {
	tok := Token{
		Type:    IDENT,
		Literal: "foo",
		StartPosition: Position{
			Line:   2,
			Column: 0,
		},
	}
	// Switches to 1-indexed
	assert.Equal(t, 3, tok.StartPosition.LineNumber())
	assert.Equal(t, 1, tok.StartPosition.ColumnNumber())
}

func TestAdvance(t *testing.T) {
	p := Position{Char: 4, LineStart: 2, Line: 1, Column: 2, File: "a.wv"}
	q := p.Advance(3)
	assert.Equal(t, 7, q.Char)
	assert.Equal(t, 5, q.Column)
	assert.Equal(t, 1, q.Line)
	assert.Equal(t, "a.wv", q.File)
	assert.True(t, q.IsValid())
	assert.False(t, NoPos.IsValid())
}
