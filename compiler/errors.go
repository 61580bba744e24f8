package compiler

import (
	"fmt"
	"strings"

	"github.com/wervc-lang/wervc/ast"
	"github.com/wervc-lang/wervc/errors"
)

// ErrorKind discriminates the failures the code generator can report.
type ErrorKind int

const (
	// NotLeftValue means an expression without an address was assigned to
	// or had its address taken.
	NotLeftValue ErrorKind = iota + 1
	// Unimplemented means the tree contains a construct the generator does
	// not lower, such as an array literal or a function definition.
	Unimplemented
	// InputIsNotProgram means the root node is not an *ast.Program.
	InputIsNotProgram
	// TooManyArguments means a call passes more arguments than there are
	// argument registers.
	TooManyArguments
)

var kindNames = map[ErrorKind]string{
	NotLeftValue:      "NotLeftValue",
	Unimplemented:     "Unimplemented",
	InputIsNotProgram: "InputIsNotProgram",
	TooManyArguments:  "TooManyArguments",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

var kindCodes = map[ErrorKind]errors.ErrorCode{
	NotLeftValue:      errors.E2011,
	Unimplemented:     errors.E2012,
	InputIsNotProgram: errors.E2013,
	TooManyArguments:  errors.E2014,
}

// Code returns the diagnostic code reported for this kind of error.
func (k ErrorKind) Code() errors.ErrorCode {
	return kindCodes[k]
}

// Error is returned by the code generator. Generation stops at the first
// error and no assembly is produced.
type Error struct {
	Kind ErrorKind

	// Node is the offending node.
	Node ast.Node

	// Construct names what is unimplemented (Unimplemented only).
	Construct string

	File       string
	SourceCode string
}

func (e *Error) Error() string {
	return "compile error: " + e.Message()
}

// Message returns the error description without the error type prefix.
func (e *Error) Message() string {
	switch e.Kind {
	case NotLeftValue:
		return fmt.Sprintf("%s is not a left value", e.Node)
	case Unimplemented:
		return e.Construct + " is not implemented"
	case InputIsNotProgram:
		return fmt.Sprintf("input is not a program (got %T)", e.Node)
	case TooManyArguments:
		call := e.Node.(*ast.Call)
		return fmt.Sprintf("call to %q has %d arguments (at most %d are supported)",
			call.Func.Name, len(call.Args), len(ArgRegisters))
	}
	return e.Kind.String()
}

func (e *Error) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the compile error to a FormattedError for display.
func (e *Error) ToFormatted() *errors.FormattedError {
	fe := &errors.FormattedError{
		Code:     e.Kind.Code(),
		Kind:     "compile error",
		Message:  e.Message(),
		Filename: e.File,
	}
	if e.Node == nil || e.Kind == InputIsNotProgram {
		return fe
	}
	start := e.Node.Pos()
	fe.Line = start.LineNumber()
	fe.Column = start.ColumnNumber()
	if end := e.Node.End(); end.Line == start.Line && end.Column > start.Column {
		fe.EndColumn = end.Column
	}
	if e.SourceCode != "" {
		fe.SourceLines = []errors.SourceLineEntry{
			{Number: fe.Line, Text: e.SourceCode, IsMain: true},
		}
	}
	return fe
}

// sourceLine returns the 0-indexed line of source, or "" if unavailable.
func sourceLine(source string, line int) string {
	if source == "" || line < 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line >= len(lines) {
		return ""
	}
	return lines[line]
}
