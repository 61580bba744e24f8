// Package wervc compiles wervc source code to x86-64 assembly in Intel syntax.
//
// Parse produces the resolved syntax tree and Compile produces assembly text
// that can be assembled and linked with a C toolchain:
//
//	text, err := wervc.Compile(ctx, "let x = 10; x = x + 1; x")
//	if err != nil {
//		fmt.Println(wervc.FriendlyError(err, false))
//	}
//
// Errors are *parser.Error, *compiler.Error, *syntax.ValidationErrors (from
// Check) or, when validation is enabled, *asm.ValidationErrors. Use errors.As
// to tell them apart.
package wervc

import (
	"context"

	"github.com/wervc-lang/wervc/asm"
	"github.com/wervc-lang/wervc/ast"
	"github.com/wervc-lang/wervc/compiler"
	"github.com/wervc-lang/wervc/errors"
	"github.com/wervc-lang/wervc/parser"
	"github.com/wervc-lang/wervc/syntax"
)

// Parse parses source code and returns the resolved syntax tree.
func Parse(ctx context.Context, source string, opts ...Option) (*ast.Program, error) {
	o := collectOptions(opts...)
	return parser.Parse(ctx, source, o.parserOpts()...)
}

// Compile parses source code and generates assembly for it. With
// WithValidation the generated text is also checked by asm.Validate.
func Compile(ctx context.Context, source string, opts ...Option) (string, error) {
	o := collectOptions(opts...)
	program, err := parser.Parse(ctx, source, o.parserOpts()...)
	if err != nil {
		return "", err
	}
	text, err := compiler.Compile(program, o.compilerOpts(source)...)
	if err != nil {
		return "", err
	}
	if o.validate {
		if err := asm.Validate(text); err != nil {
			o.logger.Error().Err(err).Str("filename", o.filename).Msg("generated assembly is invalid")
			return "", err
		}
	}
	return text, nil
}

// Check parses source and reports every construct in it that cannot be
// compiled as a *syntax.ValidationErrors. If there is none, the program is
// compiled and the generated assembly is validated. No output is produced.
func Check(ctx context.Context, source string, opts ...Option) error {
	o := collectOptions(opts...)
	program, err := parser.Parse(ctx, source, o.parserOpts()...)
	if err != nil {
		return err
	}
	if err := syntax.Check(program, source); err != nil {
		return err
	}
	text, err := compiler.Compile(program, o.compilerOpts(source)...)
	if err != nil {
		return err
	}
	return asm.Validate(text)
}

// FriendlyError renders any error returned by this package as a diagnostic
// with code, location and source excerpt. ANSI colors are used if useColor
// is set.
func FriendlyError(err error, useColor bool) string {
	return errors.Render(err, useColor)
}
