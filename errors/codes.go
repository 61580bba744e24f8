package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Parse errors
//   - E2xxx: Compile errors
//   - E3xxx: Assembly validation errors
type ErrorCode string

const (
	// Parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected token
	E1008 ErrorCode = "E1008" // Invalid number literal
	E1009 ErrorCode = "E1009" // Maximum nesting depth exceeded
	E1011 ErrorCode = "E1011" // Missing semicolon
	E1012 ErrorCode = "E1012" // Illegal character

	// Compile errors (E2xxx)
	E2001 ErrorCode = "E2001" // Undefined variable
	E2011 ErrorCode = "E2011" // Not a left value
	E2012 ErrorCode = "E2012" // Unimplemented construct
	E2013 ErrorCode = "E2013" // Input is not a program
	E2014 ErrorCode = "E2014" // Too many call arguments

	// Assembly validation errors (E3xxx)
	E3001 ErrorCode = "E3001" // Invalid assembly
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1008: "invalid number literal",
	E1009: "maximum nesting depth exceeded",
	E1011: "missing semicolon",
	E1012: "illegal character",

	E2001: "undefined variable",
	E2011: "not a left value",
	E2012: "unimplemented construct",
	E2013: "input is not a program",
	E2014: "too many call arguments",

	E3001: "invalid assembly",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "parse"
	case '2':
		return "compile"
	case '3':
		return "assembly"
	default:
		return "unknown"
	}
}
