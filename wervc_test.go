package wervc

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wervc-lang/wervc/asm"
	"github.com/wervc-lang/wervc/ast"
	"github.com/wervc-lang/wervc/compiler"
	"github.com/wervc-lang/wervc/parser"
	"github.com/wervc-lang/wervc/syntax"
)

func TestParse(t *testing.T) {
	program, err := Parse(context.Background(), "let x = 10; x = x + 1; x")
	require.NoError(t, err)
	assert.Equal(t, 8, program.TotalOffset)
	require.Len(t, program.Stmts, 3)
	value, ok := program.Stmts[2].(*ast.ValueStmt)
	require.True(t, ok)
	assert.Equal(t, 8, value.X.(*ast.Ident).Offset)
}

func TestCompile(t *testing.T) {
	text, err := Compile(context.Background(), "1+2*3", WithValidation())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, ".intel_syntax noprefix\n.globl main\nmain:\n"))
	assert.Contains(t, text, "  imul rax, rdi\n")
}

func TestCompileEntry(t *testing.T) {
	text, err := Compile(context.Background(), "1", WithEntry("run"), WithValidation())
	require.NoError(t, err)
	assert.Contains(t, text, ".globl run\nrun:\n")
}

func TestParseError(t *testing.T) {
	_, err := Compile(context.Background(), "let x = 1;\ny + 1", WithFilename("main.wv"))
	require.Error(t, err)

	var perr *parser.Error
	require.True(t, stderrors.As(err, &perr))
	assert.Equal(t, parser.UndefinedIdentifier, perr.Kind)

	msg := FriendlyError(err, false)
	assert.Contains(t, msg, "parse error[E2001]: undefined identifier \"y\"")
	assert.Contains(t, msg, "--> main.wv:2:1")
	assert.Contains(t, msg, "did you mean 'x'?")
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  compiler.ErrorKind
		code  string
	}{
		{"10 = 10", compiler.NotLeftValue, "E2011"},
		{"f(1, 2, 3, 4, 5, 6, 7)", compiler.TooManyArguments, "E2014"},
		{"[1]", compiler.Unimplemented, "E2012"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			text, err := Compile(context.Background(), tt.input, WithFilename("main.wv"))
			require.Error(t, err)
			assert.Empty(t, text)
			var cerr *compiler.Error
			require.True(t, stderrors.As(err, &cerr))
			assert.Equal(t, tt.kind, cerr.Kind)

			msg := FriendlyError(err, false)
			assert.Contains(t, msg, "compile error["+tt.code+"]")
			assert.Contains(t, msg, "--> main.wv:1:1")
			assert.Contains(t, msg, " 1 | "+tt.input)
		})
	}
}

func TestNulByteRejected(t *testing.T) {
	text, err := Compile(context.Background(), "1\x00 + 2")
	require.Error(t, err)
	assert.Empty(t, text)
	var perr *parser.Error
	require.True(t, stderrors.As(err, &perr))
	assert.Equal(t, parser.IllegalToken, perr.Kind)
}

func TestFriendlyErrorColor(t *testing.T) {
	_, err := Compile(context.Background(), "10 = 10")
	require.Error(t, err)
	assert.Contains(t, FriendlyError(err, true), "\x1b[")
	assert.NotContains(t, FriendlyError(err, false), "\x1b[")
	assert.Equal(t, "", FriendlyError(nil, false))
}

func TestFriendlyErrorPlain(t *testing.T) {
	assert.Equal(t, "error: boom\n", FriendlyError(stderrors.New("boom"), false))
}

func TestMaxDepth(t *testing.T) {
	source := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50)
	_, err := Compile(context.Background(), source, WithMaxDepth(10))
	var perr *parser.Error
	require.True(t, stderrors.As(err, &perr))
	assert.Equal(t, parser.MaxDepthExceeded, perr.Kind)

	_, err = Compile(context.Background(), source)
	require.NoError(t, err)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compile(ctx, "1; 2; 3")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err := Compile(context.Background(), "let a = 1; a", WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "compiled program")
}

func TestValidationAgreesWithCompiler(t *testing.T) {
	sources := []string{
		"let x = 10; x = x + 1; x",
		"if 1 < 2 { 10 } else { 20 }",
		"let a = 1; f(a, g(a, h()), 3) + { let b = 2; b }",
		"if 1 { return 2 } else { 3 }; 4",
	}
	for _, source := range sources {
		text, err := Compile(context.Background(), source)
		require.NoError(t, err)
		assert.NoError(t, asm.Validate(text), source)
	}
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check(context.Background(), "let a = 1; f(a) + a"))

	err := Check(context.Background(), "[1];\n10 = 1;\nlet f(x) = x;\ng(1, 2, 3, 4, 5, 6, 7)", WithFilename("main.wv"))
	var verrs *syntax.ValidationErrors
	require.True(t, stderrors.As(err, &verrs))
	require.Len(t, verrs.Errors, 4)

	msg := FriendlyError(err, false)
	assert.Contains(t, msg, "found 4 errors")
	assert.Contains(t, msg, "array literal is not implemented")
	assert.Contains(t, msg, "10 is not a left value")
	assert.Contains(t, msg, "function definition is not implemented")
	assert.Contains(t, msg, `call to "g" has 7 arguments`)
	assert.Contains(t, msg, "--> main.wv:4:1")

	var perr *parser.Error
	require.True(t, stderrors.As(Check(context.Background(), "x"), &perr))
}
