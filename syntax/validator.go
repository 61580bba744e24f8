// Package syntax checks resolved syntax trees for constructs the code
// generator cannot lower. Unlike generation, which stops at the first
// problem, validation reports every violation at once.
package syntax

import (
	"fmt"
	"strings"

	"github.com/wervc-lang/wervc/ast"
	"github.com/wervc-lang/wervc/errors"
	"github.com/wervc-lang/wervc/internal/token"
)

// ValidationError represents a construct that cannot be compiled.
type ValidationError struct {
	Code       errors.ErrorCode // diagnostic code
	Message    string           // description of the violation
	Node       ast.Node         // the offending node
	Position   token.Position   // source location
	SourceCode string           // text of the offending line, if known
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	pos := e.Position
	if pos.File != "" {
		return fmt.Sprintf("%s at %s:%d:%d", e.Message, pos.File, pos.LineNumber(), pos.ColumnNumber())
	}
	return fmt.Sprintf("%s at line %d, column %d", e.Message, pos.LineNumber(), pos.ColumnNumber())
}

// ToFormatted converts the error to a FormattedError for display.
func (e *ValidationError) ToFormatted() *errors.FormattedError {
	fe := &errors.FormattedError{
		Code:     e.Code,
		Kind:     "compile error",
		Message:  e.Message,
		Filename: e.Position.File,
		Line:     e.Position.LineNumber(),
		Column:   e.Position.ColumnNumber(),
	}
	if e.Node != nil {
		if end := e.Node.End(); end.Line == e.Position.Line && end.Column > e.Position.Column {
			fe.EndColumn = end.Column
		}
	}
	if e.SourceCode != "" {
		fe.SourceLines = []errors.SourceLineEntry{
			{Number: fe.Line, Text: e.SourceCode, IsMain: true},
		}
	}
	return fe
}

// ValidationErrors wraps multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// NewValidationErrors creates a ValidationErrors from a slice of errors.
func NewValidationErrors(errs []ValidationError) *ValidationErrors {
	return &ValidationErrors{Errors: errs}
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return e.Errors[0].Error()
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
		for _, err := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", err.Error())
		}
		return b.String()
	}
}

// Unwrap returns the first error for errors.Is/As compatibility.
func (e *ValidationErrors) Unwrap() error {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}
	return nil
}

// ToFormattedMultiple converts all errors to FormattedError for display.
func (e *ValidationErrors) ToFormattedMultiple() []*errors.FormattedError {
	out := make([]*errors.FormattedError, 0, len(e.Errors))
	for i := range e.Errors {
		out = append(out, e.Errors[i].ToFormatted())
	}
	return out
}

// Validator inspects an AST and returns validation errors.
// Validators should not modify the AST.
type Validator interface {
	// Validate checks the AST and returns any validation errors.
	// Multiple errors may be returned to show all violations at once.
	Validate(program *ast.Program) []ValidationError
}

// ValidatorFunc is an adapter to use a function as a Validator.
type ValidatorFunc func(*ast.Program) []ValidationError

// Validate implements the Validator interface.
func (f ValidatorFunc) Validate(p *ast.Program) []ValidationError {
	return f(p)
}

// Check runs the validators over program, in order, and returns a
// *ValidationErrors holding every violation, or nil. With no validators the
// generator support checks are run. Source is used to show the offending
// lines and may be empty.
func Check(program *ast.Program, source string, validators ...Validator) error {
	if len(validators) == 0 {
		validators = []Validator{NewSupportValidator()}
	}
	var errs []ValidationError
	for _, v := range validators {
		errs = append(errs, v.Validate(program)...)
	}
	if len(errs) == 0 {
		return nil
	}
	if source != "" {
		lines := strings.Split(source, "\n")
		for i := range errs {
			if line := errs[i].Position.Line; line >= 0 && line < len(lines) {
				errs[i].SourceCode = lines[line]
			}
		}
	}
	return NewValidationErrors(errs)
}
