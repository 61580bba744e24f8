package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wervc-lang/wervc/internal/token"
)

func pos(col int) token.Position {
	return token.Position{Char: col, Column: col}
}

func TestStrings(t *testing.T) {
	x := &Ident{NamePos: pos(4), Name: "x", Offset: 8}
	tests := []struct {
		node Node
		want string
	}{
		{&Int{Literal: "42", Value: 42}, "42"},
		{&Bool{Literal: "true", Value: true}, "true"},
		{&Prefix{Op: Neg, X: &Int{Literal: "1"}}, "(-1)"},
		{&Prefix{Op: Deref, X: x}, "(*x)"},
		{&Infix{X: x, Op: Assign, Y: &Int{Literal: "2"}}, "(x = 2)"},
		{&Infix{X: x, Op: Le, Y: x}, "(x <= x)"},
		{&Call{Func: &Ident{Name: "foo"}, Args: []Expr{x, &Int{Literal: "3"}}}, "foo(x, 3)"},
		{&Block{}, "{ }"},
		{&Block{Stmts: []Stmt{&ExprStmt{X: x}, &ValueStmt{X: x}}}, "{ x; x }"},
		{&If{Cond: x, Consequence: x}, "if x x"},
		{&If{Cond: x, Consequence: x, Alternative: &Int{Literal: "0"}}, "if x x else 0"},
		{&Return{Value: x}, "return x"},
		{&Let{Name: x}, "let x"},
		{&Let{Name: x, Type: &Type{Name: "int", Pointer: 1, Dims: []int64{3, 2}}, Value: x}, "let x: *int[3][2] = x"},
		{&Array{Items: []Expr{&Int{Literal: "1"}, &Int{Literal: "2"}}}, "[1, 2]"},
		{
			&Func{
				Name:       &Ident{Name: "add"},
				Params:     []*Param{{Name: x, Type: &Type{Name: "int"}}, {Name: &Ident{Name: "y"}}},
				ReturnType: &Type{Name: "int"},
				Body:       x,
			},
			"let add(x: int, y): int = x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestOpStrings(t *testing.T) {
	assert.Equal(t, "&", Addr.String())
	assert.Equal(t, "!", Not.String())
	assert.Equal(t, "%", Mod.String())
	assert.Equal(t, ">=", Ge.String())
	assert.Equal(t, "UnaryOp(0)", UnaryOp(0).String())
	assert.Equal(t, "BinaryOp(99)", BinaryOp(99).String())
}

func TestPositions(t *testing.T) {
	x := &Ident{NamePos: pos(2), Name: "xy"}
	assert.Equal(t, 4, x.End().Column)

	n := &Int{ValuePos: pos(7), Literal: "123"}
	infix := &Infix{X: x, Op: Add, Y: n}
	assert.Equal(t, 2, infix.Pos().Column)
	assert.Equal(t, 10, infix.End().Column)

	block := &Block{Lbrace: pos(0), Rbrace: pos(5)}
	assert.Equal(t, 6, block.End().Column)

	stmt := &ExprStmt{X: infix, Semi: pos(10)}
	assert.Equal(t, 11, stmt.End().Column)

	program := &Program{Stmts: []Stmt{stmt}}
	assert.Equal(t, 2, program.Pos().Column)
	assert.Equal(t, 11, program.End().Column)
	assert.False(t, (&Program{}).Pos().IsValid())
}

func TestResolved(t *testing.T) {
	assert.False(t, (&Ident{Name: "printf"}).Resolved())
	assert.True(t, (&Ident{Name: "x", Offset: SlotSize}).Resolved())
}

func TestTrailing(t *testing.T) {
	_, ok := Trailing(nil)
	assert.False(t, ok)

	x := &Ident{Name: "x"}
	_, ok = Trailing([]Stmt{&ValueStmt{X: x}, &ExprStmt{X: x}})
	assert.False(t, ok)

	v, ok := Trailing([]Stmt{&ExprStmt{X: x}, &ValueStmt{X: x}})
	require.True(t, ok)
	assert.Equal(t, x, v.X)
}
