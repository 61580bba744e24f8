package compiler

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wervc-lang/wervc/asm"
	"github.com/wervc-lang/wervc/ast"
)

var arithmeticOps = map[ast.BinaryOp]string{
	ast.Add: "add",
	ast.Sub: "sub",
	ast.Mul: "imul",
}

var comparisonOps = map[ast.BinaryOp]string{
	ast.Eq: "sete",
	ast.Ne: "setne",
	ast.Lt: "setl",
	ast.Le: "setle",
	ast.Gt: "setg",
	ast.Ge: "setge",
}

// compileExpr emits code that leaves the value of x on the stack.
func (c *Compiler) compileExpr(x ast.Expr) error {
	switch x := x.(type) {
	case *ast.Int:
		c.compileInt(x.Value)
	case *ast.Bool:
		if x.Value {
			c.push("1")
		} else {
			c.push("0")
		}
	case *ast.Ident:
		if err := c.compileAddr(x); err != nil {
			return err
		}
		c.load()
	case *ast.Prefix:
		return c.compilePrefix(x)
	case *ast.Infix:
		return c.compileInfix(x)
	case *ast.Call:
		return c.compileCall(x)
	case *ast.Block:
		if err := c.compileStmts(x.Stmts); err != nil {
			return err
		}
		c.push("rax")
	case *ast.If:
		return c.compileIf(x)
	case *ast.Return:
		return c.compileReturn(x)
	case *ast.Let:
		return c.compileLet(x)
	case *ast.Array:
		return c.newError(&Error{Kind: Unimplemented, Node: x, Construct: "array literal"})
	case *ast.Func:
		return c.newError(&Error{Kind: Unimplemented, Node: x, Construct: "function definition"})
	default:
		return c.newError(&Error{Kind: Unimplemented, Node: x, Construct: fmt.Sprintf("expression %T", x)})
	}
	return nil
}

func (c *Compiler) compileInt(v int64) {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		c.push(strconv.FormatInt(v, 10))
		return
	}
	c.emit("mov", "rax", strconv.FormatInt(v, 10))
	c.push("rax")
}

// compileAddr emits code that leaves the address of x on the stack.
func (c *Compiler) compileAddr(x ast.Expr) error {
	switch x := x.(type) {
	case *ast.Ident:
		if !x.Resolved() {
			panic(fmt.Sprintf("compiler: identifier %q has no frame slot", x.Name))
		}
		c.emit("mov", "rax", "rbp")
		c.emit("sub", "rax", strconv.Itoa(x.Offset))
		c.push("rax")
		return nil
	case *ast.Prefix:
		if x.Op == ast.Deref {
			return c.compileExpr(x.X)
		}
	}
	return c.newError(&Error{Kind: NotLeftValue, Node: x})
}

// load replaces the address on top of the stack with the value stored there.
func (c *Compiler) load() {
	c.pop("rax")
	c.emit("mov", "rax", asm.Mem("rax"))
	c.push("rax")
}

// store writes the value on top of the stack to the address below it and
// leaves the value.
func (c *Compiler) store() {
	c.pop("rdi")
	c.pop("rax")
	c.emit("mov", asm.Mem("rax"), "rdi")
	c.push("rdi")
}

func (c *Compiler) compilePrefix(x *ast.Prefix) error {
	switch x.Op {
	case ast.Addr:
		return c.compileAddr(x.X)
	case ast.Deref:
		if err := c.compileExpr(x.X); err != nil {
			return err
		}
		c.load()
		return nil
	}
	if err := c.compileExpr(x.X); err != nil {
		return err
	}
	c.pop("rax")
	switch x.Op {
	case ast.Neg:
		c.emit("neg", "rax")
	case ast.Not:
		c.emit("cmp", "rax", "0")
		c.emit("sete", "al")
		c.emit("movzb", "rax", "al")
	default:
		return c.newError(&Error{Kind: Unimplemented, Node: x, Construct: "operator " + x.Op.String()})
	}
	c.push("rax")
	return nil
}

func (c *Compiler) compileInfix(x *ast.Infix) error {
	if x.Op == ast.Assign {
		if err := c.compileAddr(x.X); err != nil {
			return err
		}
		if err := c.compileExpr(x.Y); err != nil {
			return err
		}
		c.store()
		return nil
	}
	if err := c.compileExpr(x.X); err != nil {
		return err
	}
	if err := c.compileExpr(x.Y); err != nil {
		return err
	}
	c.pop("rdi")
	c.pop("rax")
	if op, ok := arithmeticOps[x.Op]; ok {
		c.emit(op, "rax", "rdi")
	} else if set, ok := comparisonOps[x.Op]; ok {
		c.emit("cmp", "rax", "rdi")
		c.emit(set, "al")
		c.emit("movzb", "rax", "al")
	} else {
		switch x.Op {
		case ast.Div:
			c.emit("cqo")
			c.emit("idiv", "rdi")
		case ast.Mod:
			c.emit("cqo")
			c.emit("idiv", "rdi")
			c.emit("mov", "rax", "rdx")
		default:
			return c.newError(&Error{Kind: Unimplemented, Node: x, Construct: "operator " + x.Op.String()})
		}
	}
	c.push("rax")
	return nil
}

func (c *Compiler) compileCall(x *ast.Call) error {
	if len(x.Args) > len(ArgRegisters) {
		return c.newError(&Error{Kind: TooManyArguments, Node: x})
	}
	for _, arg := range x.Args {
		if err := c.compileExpr(arg); err != nil {
			return err
		}
	}
	for i := len(x.Args) - 1; i >= 0; i-- {
		c.pop(ArgRegisters[i])
	}
	c.emit("mov", "rax", "0")
	if c.depth%2 != 0 {
		c.emit("sub", "rsp", "8")
		c.emit("call", x.Func.Name)
		c.emit("add", "rsp", "8")
	} else {
		c.emit("call", x.Func.Name)
	}
	c.push("rax")
	return nil
}

func (c *Compiler) compileIf(x *ast.If) error {
	if err := c.compileExpr(x.Cond); err != nil {
		return err
	}
	c.pop("rax")
	c.emit("cmp", "rax", "0")

	if x.Alternative == nil {
		// The false path keeps a zero as the value of the expression.
		end := c.newLabel("end")
		c.push("0")
		c.emit("je", end)
		c.pop("rax")
		if err := c.compileExpr(x.Consequence); err != nil {
			return err
		}
		c.out.Label(end)
		return nil
	}

	elseLabel := c.newLabel("else")
	end := c.newLabel("end")
	c.emit("je", elseLabel)
	depth := c.depth
	if err := c.compileExpr(x.Consequence); err != nil {
		return err
	}
	c.emit("jmp", end)
	c.depth = depth
	c.out.Label(elseLabel)
	if err := c.compileExpr(x.Alternative); err != nil {
		return err
	}
	c.out.Label(end)
	return nil
}

func (c *Compiler) compileReturn(x *ast.Return) error {
	if err := c.compileExpr(x.Value); err != nil {
		return err
	}
	c.pop("rax")
	c.epilogue()
	// Code after a return is unreachable but must stay balanced.
	c.depth++
	return nil
}

func (c *Compiler) compileLet(x *ast.Let) error {
	if err := c.compileAddr(x.Name); err != nil {
		return err
	}
	if x.Value == nil {
		c.push("0")
	} else if err := c.compileExpr(x.Value); err != nil {
		return err
	}
	c.store()
	return nil
}
