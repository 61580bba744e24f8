package ast

import "github.com/wervc-lang/wervc/internal/token"

// ExprStmt is an expression terminated by ";". Its value is discarded.
type ExprStmt struct {
	X    Expr           // the expression
	Semi token.Position // position of ";"
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }
func (s *ExprStmt) End() token.Position { return s.Semi.Advance(1) }

func (s *ExprStmt) String() string { return s.X.String() + ";" }

// ValueStmt is an unterminated expression. It may only appear as the last
// statement of a block or program, and its value becomes the value of the
// enclosing block or program.
type ValueStmt struct {
	X Expr // the expression
}

func (s *ValueStmt) stmtNode() {}

func (s *ValueStmt) Pos() token.Position { return s.X.Pos() }
func (s *ValueStmt) End() token.Position { return s.X.End() }

func (s *ValueStmt) String() string { return s.X.String() }

// Program is the root node of a parsed source file.
type Program struct {
	Stmts []Stmt // statements in order

	// TotalOffset is the number of bytes of local variable storage claimed
	// by the top-level frame. It is always a multiple of SlotSize.
	TotalOffset int
}

func (p *Program) Pos() token.Position {
	if len(p.Stmts) > 0 {
		return p.Stmts[0].Pos()
	}
	return token.NoPos
}

func (p *Program) End() token.Position {
	if n := len(p.Stmts); n > 0 {
		return p.Stmts[n-1].End()
	}
	return token.NoPos
}

func (p *Program) String() string { return joinStmts(p.Stmts) }

// Trailing returns the trailing ValueStmt of a statement list, if any.
func Trailing(stmts []Stmt) (*ValueStmt, bool) {
	if len(stmts) == 0 {
		return nil, false
	}
	v, ok := stmts[len(stmts)-1].(*ValueStmt)
	return v, ok
}

func joinStmts(stmts []Stmt) string {
	var out []byte
	for i, s := range stmts {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, s.String()...)
	}
	return string(out)
}
