package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/wervc-lang/wervc/internal/token"
)

// Int is an expression node that holds an integer literal.
type Int struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text
	Value    int64          // the parsed value
}

func (x *Int) exprNode() {}

func (x *Int) Pos() token.Position { return x.ValuePos }
func (x *Int) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Int) String() string { return x.Literal }

// Bool is an expression node that holds a boolean literal.
type Bool struct {
	ValuePos token.Position // position of "true" or "false"
	Literal  string         // "true" or "false"
	Value    bool           // the boolean value
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.ValuePos }
func (x *Bool) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Bool) String() string { return x.Literal }

// Array is an expression node that holds an array literal like [1, 2, 3].
type Array struct {
	Lbrack token.Position // position of "["
	Items  []Expr         // the elements
	Rbrack token.Position // position of "]"
}

func (x *Array) exprNode() {}

func (x *Array) Pos() token.Position { return x.Lbrack }
func (x *Array) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Array) String() string {
	items := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		items = append(items, item.String())
	}
	var out bytes.Buffer
	out.WriteString("[")
	out.WriteString(strings.Join(items, ", "))
	out.WriteString("]")
	return out.String()
}

// Type is a type annotation such as "int", "*int" or "int[3]". Annotations
// are recorded in the tree but never checked.
type Type struct {
	Star    token.Position // position of the first "*", or of the name
	Pointer int            // number of leading "*"
	Name    string         // base type name
	Dims    []int64        // array lengths, outermost first
	EndPos  token.Position // position immediately after the annotation
}

func (t *Type) Pos() token.Position { return t.Star }
func (t *Type) End() token.Position { return t.EndPos }

func (t *Type) String() string {
	var out bytes.Buffer
	out.WriteString(strings.Repeat("*", t.Pointer))
	out.WriteString(t.Name)
	for _, d := range t.Dims {
		out.WriteString("[")
		out.WriteString(strconv.FormatInt(d, 10))
		out.WriteString("]")
	}
	return out.String()
}
