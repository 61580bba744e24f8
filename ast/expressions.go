package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wervc-lang/wervc/internal/token"
)

// UnaryOp identifies the operator of a Prefix expression.
type UnaryOp int

const (
	Neg   UnaryOp = iota + 1 // -x
	Not                      // !x
	Addr                     // &x
	Deref                    // *x
)

func (op UnaryOp) String() string {
	switch op {
	case Neg:
		return "-"
	case Not:
		return "!"
	case Addr:
		return "&"
	case Deref:
		return "*"
	}
	return fmt.Sprintf("UnaryOp(%d)", int(op))
}

// BinaryOp identifies the operator of an Infix expression.
type BinaryOp int

const (
	Add BinaryOp = iota + 1
	Sub
	Mul
	Div
	Mod
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Assign
)

var binaryOpNames = map[BinaryOp]string{
	Add:    "+",
	Sub:    "-",
	Mul:    "*",
	Div:    "/",
	Mod:    "%",
	Eq:     "==",
	Ne:     "!=",
	Lt:     "<",
	Le:     "<=",
	Gt:     ">",
	Ge:     ">=",
	Assign: "=",
}

func (op BinaryOp) String() string {
	if s, ok := binaryOpNames[op]; ok {
		return s
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// Ident is an expression node that refers to a variable or, as the callee
// of a Call or the name of a Func, to an external symbol.
type Ident struct {
	NamePos token.Position // identifier position
	Name    string         // identifier name

	// Offset is the distance in bytes below the frame base of the
	// variable's slot. Zero means the identifier is not a variable.
	Offset int
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// Resolved reports whether the identifier was bound to a frame slot.
func (x *Ident) Resolved() bool { return x.Offset > 0 }

// Prefix is an expression node for a unary operator like -x or *p.
type Prefix struct {
	OpPos token.Position // position of the operator
	Op    UnaryOp        // the operator
	X     Expr           // the operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string {
	return "(" + x.Op.String() + x.X.String() + ")"
}

// Infix is an expression node for a binary operator like x + y, including
// assignment.
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of the operator
	Op    BinaryOp       // the operator
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	return "(" + x.X.String() + " " + x.Op.String() + " " + x.Y.String() + ")"
}

// Call is an expression node for a call to an external function.
type Call struct {
	Func   *Ident         // callee name, never resolved to a slot
	Lparen token.Position // position of "("
	Args   []Expr         // arguments, in source order
	Rparen token.Position // position of ")"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Func.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	return x.Func.Name + "(" + strings.Join(args, ", ") + ")"
}

// Block is an expression node holding a braced statement list. Its value is
// the value of its trailing ValueStmt, or zero when there is none.
type Block struct {
	Lbrace token.Position // position of "{"
	Stmts  []Stmt         // statements in order
	Rbrace token.Position // position of "}"
}

func (x *Block) exprNode() {}

func (x *Block) Pos() token.Position { return x.Lbrace }
func (x *Block) End() token.Position { return x.Rbrace.Advance(1) }

func (x *Block) String() string {
	if len(x.Stmts) == 0 {
		return "{ }"
	}
	return "{ " + joinStmts(x.Stmts) + " }"
}

// If is an expression node for a conditional. Both branches are
// expressions; Alternative is nil when there is no else clause.
type If struct {
	If          token.Position // position of "if"
	Cond        Expr           // condition
	Consequence Expr           // value when the condition is non-zero
	Alternative Expr           // value otherwise; may be nil
}

func (x *If) exprNode() {}

func (x *If) Pos() token.Position { return x.If }

func (x *If) End() token.Position {
	if x.Alternative != nil {
		return x.Alternative.End()
	}
	return x.Consequence.End()
}

func (x *If) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(x.Cond.String())
	out.WriteString(" ")
	out.WriteString(x.Consequence.String())
	if x.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(x.Alternative.String())
	}
	return out.String()
}

// Return is an expression node that leaves the current function.
type Return struct {
	Return token.Position // position of "return"
	Value  Expr           // returned value
}

func (x *Return) exprNode() {}

func (x *Return) Pos() token.Position { return x.Return }
func (x *Return) End() token.Position { return x.Value.End() }

func (x *Return) String() string { return "return " + x.Value.String() }

// Let is an expression node declaring a variable. The declared name is
// resolved to a fresh slot.
type Let struct {
	Let   token.Position // position of "let"
	Name  *Ident         // the declared variable
	Type  *Type          // declared type; may be nil
	Value Expr           // initializer; may be nil
}

func (x *Let) exprNode() {}

func (x *Let) Pos() token.Position { return x.Let }

func (x *Let) End() token.Position {
	switch {
	case x.Value != nil:
		return x.Value.End()
	case x.Type != nil:
		return x.Type.End()
	}
	return x.Name.End()
}

func (x *Let) String() string {
	var out bytes.Buffer
	out.WriteString("let ")
	out.WriteString(x.Name.Name)
	if x.Type != nil {
		out.WriteString(": ")
		out.WriteString(x.Type.String())
	}
	if x.Value != nil {
		out.WriteString(" = ")
		out.WriteString(x.Value.String())
	}
	return out.String()
}

// Param is a function parameter.
type Param struct {
	Name *Ident // parameter variable, resolved in the function's frame
	Type *Type  // declared type; may be nil
}

func (p *Param) Pos() token.Position { return p.Name.Pos() }

func (p *Param) End() token.Position {
	if p.Type != nil {
		return p.Type.End()
	}
	return p.Name.End()
}

func (p *Param) String() string {
	if p.Type != nil {
		return p.Name.Name + ": " + p.Type.String()
	}
	return p.Name.Name
}

// Func is an expression node for a function definition such as
// let add(x: int, y: int): int = x + y.
type Func struct {
	Let        token.Position // position of "let"
	Name       *Ident         // function name, never resolved to a slot
	Params     []*Param       // parameters
	ReturnType *Type          // declared return type; may be nil
	Body       Expr           // function body

	// FrameSize is the number of bytes of slot storage claimed by the
	// function's own frame.
	FrameSize int
}

func (x *Func) exprNode() {}

func (x *Func) Pos() token.Position { return x.Let }
func (x *Func) End() token.Position { return x.Body.End() }

func (x *Func) String() string {
	params := make([]string, 0, len(x.Params))
	for _, p := range x.Params {
		params = append(params, p.String())
	}
	var out bytes.Buffer
	out.WriteString("let ")
	out.WriteString(x.Name.Name)
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")")
	if x.ReturnType != nil {
		out.WriteString(": ")
		out.WriteString(x.ReturnType.String())
	}
	out.WriteString(" = ")
	out.WriteString(x.Body.String())
	return out.String()
}
