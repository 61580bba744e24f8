package parser

import (
	"fmt"

	"github.com/wervc-lang/wervc/errors"
	"github.com/wervc-lang/wervc/internal/token"
)

// ErrorKind discriminates the failures the parser can report.
type ErrorKind int

const (
	// UnexpectedToken means a specific token was required but another was
	// found. Expected is empty when any expression would have been accepted.
	UnexpectedToken ErrorKind = iota + 1
	// RequiredSemiColon means an expression was followed by something other
	// than ";" while not being the last statement of a block or program.
	RequiredSemiColon
	// UndefinedIdentifier means a name was used without a visible declaration.
	UndefinedIdentifier
	// IllegalToken means the lexer could not scan a character.
	IllegalToken
	// InvalidInteger means an integer literal does not fit in 64 bits.
	InvalidInteger
	// MaxDepthExceeded means the input nests deeper than the configured limit.
	MaxDepthExceeded
)

var kindNames = map[ErrorKind]string{
	UnexpectedToken:     "UnexpectedToken",
	RequiredSemiColon:   "RequiredSemiColon",
	UndefinedIdentifier: "UndefinedIdentifier",
	IllegalToken:        "IllegalToken",
	InvalidInteger:      "InvalidInteger",
	MaxDepthExceeded:    "MaxDepthExceeded",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

var kindCodes = map[ErrorKind]errors.ErrorCode{
	UnexpectedToken:     errors.E1001,
	RequiredSemiColon:   errors.E1011,
	UndefinedIdentifier: errors.E2001,
	IllegalToken:        errors.E1012,
	InvalidInteger:      errors.E1008,
	MaxDepthExceeded:    errors.E1009,
}

// Code returns the diagnostic code reported for this kind of error.
func (k ErrorKind) Code() errors.ErrorCode {
	return kindCodes[k]
}

// Error is returned by the parser. Parsing stops at the first error.
type Error struct {
	Kind ErrorKind

	// Expected is the token type that was required (UnexpectedToken only).
	Expected token.Type

	// Actual is the token at which the error was detected.
	Actual token.Token

	// Name is the undeclared identifier (UndefinedIdentifier only).
	Name string

	// Cause is the underlying lexer or number conversion error, if any.
	Cause error

	// Suggestions lists visible names close to Name.
	Suggestions []errors.Suggestion

	File       string
	SourceCode string
}

func (e *Error) Error() string {
	prefix := "parse error"
	if e.Kind == IllegalToken {
		prefix = "syntax error"
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message())
}

// Message returns the error description without the error type prefix.
func (e *Error) Message() string {
	switch e.Kind {
	case UnexpectedToken:
		if e.Expected == "" {
			return fmt.Sprintf("unexpected %s (expected expression)", tokenDescription(e.Actual))
		}
		return fmt.Sprintf("unexpected %s (expected %s)",
			tokenDescription(e.Actual), tokenTypeDescription(e.Expected))
	case RequiredSemiColon:
		return fmt.Sprintf("expected \";\" after expression, found %s", tokenDescription(e.Actual))
	case UndefinedIdentifier:
		return fmt.Sprintf("undefined identifier %q", e.Name)
	case IllegalToken:
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return fmt.Sprintf("illegal token %q", e.Actual.Literal)
	case InvalidInteger:
		return fmt.Sprintf("invalid integer literal %q", e.Actual.Literal)
	case MaxDepthExceeded:
		return "maximum nesting depth exceeded"
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// StartPosition returns the position of the offending token.
func (e *Error) StartPosition() token.Position {
	return e.Actual.StartPosition
}

// EndPosition returns the position of the last character of the offending
// token.
func (e *Error) EndPosition() token.Position {
	return e.Actual.EndPosition
}

func (e *Error) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the parser error to a FormattedError for display.
func (e *Error) ToFormatted() *errors.FormattedError {
	start := e.StartPosition()
	end := e.EndPosition()
	kind := "parse error"
	if e.Kind == IllegalToken {
		kind = "syntax error"
	}
	return &errors.FormattedError{
		Code:      e.Kind.Code(),
		Kind:      kind,
		Message:   e.Message(),
		Filename:  e.File,
		Line:      start.LineNumber(),
		Column:    start.ColumnNumber(),
		EndColumn: end.ColumnNumber(),
		SourceLines: []errors.SourceLineEntry{
			{Number: start.LineNumber(), Text: e.SourceCode, IsMain: true},
		},
		Hint: errors.FormatSuggestions(e.Suggestions),
	}
}

func tokenTypeDescription(t token.Type) string {
	switch t {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return "identifier"
	case token.INT:
		return "integer"
	default:
		return fmt.Sprintf("%q", string(t))
	}
}

func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of file"
	default:
		if t.Literal == "" {
			return string(t.Type)
		}
		return fmt.Sprintf("%q", t.Literal)
	}
}
