// Package compiler generates x86-64 assembly in Intel syntax from a resolved
// abstract syntax tree.
//
// The generated code is a stack machine. Every expression leaves exactly one
// 8-byte value on the machine stack and the compiler tracks the number of
// values pushed since the prologue, so that calls can be aligned to 16 bytes
// as required by the System V ABI.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/wervc-lang/wervc/asm"
	"github.com/wervc-lang/wervc/ast"
)

// DefaultEntry is the name of the global symbol the program is emitted as.
const DefaultEntry = "main"

// ArgRegisters holds the integer argument registers in calling order.
var ArgRegisters = []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// Compiler turns a parsed program into assembly text.
type Compiler struct {
	// out is the text of the program being generated
	out *asm.Builder

	// entry is the global symbol the program is emitted as
	entry string

	logger zerolog.Logger

	// filename and source are used to annotate errors
	filename string
	source   string

	// labelCount is incremented for every label minted. It is never reset,
	// so labels stay unique across compilations by the same Compiler.
	labelCount int

	// depth is the number of 8-byte values pushed since the prologue
	depth int
}

// Option is a configuration function for a Compiler.
type Option func(*Compiler)

// WithEntry sets the name of the global entry symbol. The default is "main".
func WithEntry(name string) Option {
	return func(c *Compiler) {
		c.entry = name
	}
}

// WithLogger sets the logger that receives debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithFilename sets the file name reported in errors.
func WithFilename(filename string) Option {
	return func(c *Compiler) {
		c.filename = filename
	}
}

// WithSource sets the source text the tree was parsed from. It is used to
// show the offending line in errors.
func WithSource(source string) Option {
	return func(c *Compiler) {
		c.source = source
	}
}

// New creates and returns a new Compiler.
func New(options ...Option) *Compiler {
	c := &Compiler{
		entry:  DefaultEntry,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Compile is a convenience function that creates a Compiler and generates
// assembly for the given program.
func Compile(node ast.Node, options ...Option) (string, error) {
	return New(options...).Compile(node)
}

// Compile generates assembly for the given node, which must be an
// *ast.Program. On failure no text is returned.
func (c *Compiler) Compile(node ast.Node) (string, error) {
	program, ok := node.(*ast.Program)
	if !ok || program == nil {
		return "", c.newError(&Error{Kind: InputIsNotProgram, Node: node})
	}
	c.out = asm.NewBuilder()
	c.depth = 0
	labelsBefore := c.labelCount

	if err := c.compileProgram(program); err != nil {
		c.logger.Debug().Err(err).Str("entry", c.entry).Msg("compile failed")
		return "", err
	}
	c.logger.Debug().
		Str("entry", c.entry).
		Int("statements", len(program.Stmts)).
		Int("frame_size", frameSize(program.TotalOffset)).
		Int("labels", c.labelCount-labelsBefore).
		Int("lines", c.out.Len()).
		Msg("compiled program")
	return c.out.String(), nil
}

func (c *Compiler) compileProgram(program *ast.Program) error {
	c.out.Directive(asm.Header)
	c.out.Directive(".globl", c.entry)
	c.out.Label(c.entry)
	c.emit("push", "rbp")
	c.emit("mov", "rbp", "rsp")
	c.emit("sub", "rsp", strconv.Itoa(frameSize(program.TotalOffset)))

	if err := c.compileStmts(program.Stmts); err != nil {
		return err
	}
	c.epilogue()
	return nil
}

// compileStmts evaluates each statement and leaves the value of the list in
// rax: the trailing ValueStmt's value, or zero.
func (c *Compiler) compileStmts(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := c.compileStmt(stmt); err != nil {
			return err
		}
	}
	if _, ok := ast.Trailing(stmts); !ok {
		c.emit("mov", "rax", "0")
	}
	return nil
}

func (c *Compiler) compileStmt(stmt ast.Stmt) error {
	var x ast.Expr
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		x = stmt.X
	case *ast.ValueStmt:
		x = stmt.X
	default:
		return c.newError(&Error{Kind: Unimplemented, Node: stmt, Construct: "statement " + stmt.String()})
	}
	if err := c.compileExpr(x); err != nil {
		return err
	}
	c.pop("rax")
	return nil
}

func (c *Compiler) epilogue() {
	c.emit("mov", "rsp", "rbp")
	c.emit("pop", "rbp")
	c.emit("ret")
}

// emit appends an instruction that does not move the tracked stack.
func (c *Compiler) emit(op string, operands ...string) {
	c.out.Instr(op, operands...)
}

func (c *Compiler) push(operand string) {
	c.out.Instr("push", operand)
	c.depth++
}

func (c *Compiler) pop(reg string) {
	c.out.Instr("pop", reg)
	c.depth--
}

// newLabel mints a unique local label with the given stem.
func (c *Compiler) newLabel(stem string) string {
	label := fmt.Sprintf(".L%s%03d", stem, c.labelCount)
	c.labelCount++
	return label
}

// frameSize rounds the slot storage up to keep rsp 16-byte aligned.
func frameSize(totalOffset int) int {
	return (totalOffset + 15) &^ 15
}

// newError fills in the location details of err.
func (c *Compiler) newError(err *Error) *Error {
	err.File = c.filename
	if err.Node != nil && err.Kind != InputIsNotProgram {
		err.SourceCode = sourceLine(c.source, err.Node.Pos().Line)
	}
	return err
}
