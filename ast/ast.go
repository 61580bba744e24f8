// Package ast defines the syntax tree produced by the parser and consumed by
// the code generator.
//
// Identifiers are resolved while parsing: every Ident that names a local
// variable carries the frame offset of its 8-byte slot, so the code generator
// never needs a symbol table.
package ast

import "github.com/wervc-lang/wervc/internal/token"

// SlotSize is the width in bytes of one local variable slot.
const SlotSize = 8

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the source code it was parsed from, but not necessarily identical.
	String() string
}

// Stmt represents a statement node. A program or block is a sequence of
// statements.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Every expression evaluates to a value.
type Expr interface {
	Node
	exprNode()
}
