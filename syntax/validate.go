package syntax

import (
	"fmt"

	"github.com/wervc-lang/wervc/ast"
	"github.com/wervc-lang/wervc/compiler"
	"github.com/wervc-lang/wervc/errors"
)

// SupportValidator reports the constructs that the code generator rejects:
// assignments to and addresses of expressions that are not left values,
// calls with too many arguments, array literals and function definitions.
type SupportValidator struct{}

// NewSupportValidator creates a validator for the generator's restrictions.
func NewSupportValidator() *SupportValidator {
	return &SupportValidator{}
}

// Validate checks every node of the AST.
func (v *SupportValidator) Validate(program *ast.Program) []ValidationError {
	var errs []ValidationError
	for node := range ast.Preorder(program) {
		if err := v.checkNode(node); err != nil {
			errs = append(errs, *err)
		}
	}
	return errs
}

func (v *SupportValidator) checkNode(node ast.Node) *ValidationError {
	switch n := node.(type) {
	case *ast.Infix:
		if n.Op == ast.Assign && !isLeftValue(n.X) {
			return notLeftValue(n.X)
		}

	case *ast.Prefix:
		if n.Op == ast.Addr && !isLeftValue(n.X) {
			return notLeftValue(n.X)
		}

	case *ast.Call:
		if len(n.Args) > len(compiler.ArgRegisters) {
			return &ValidationError{
				Code: errors.E2014,
				Message: fmt.Sprintf("call to %q has %d arguments (at most %d are supported)",
					n.Func.Name, len(n.Args), len(compiler.ArgRegisters)),
				Node:     node,
				Position: node.Pos(),
			}
		}

	case *ast.Array:
		return &ValidationError{
			Code:     errors.E2012,
			Message:  "array literal is not implemented",
			Node:     node,
			Position: node.Pos(),
		}

	case *ast.Func:
		return &ValidationError{
			Code:     errors.E2012,
			Message:  "function definition is not implemented",
			Node:     node,
			Position: node.Pos(),
		}
	}
	return nil
}

func isLeftValue(x ast.Expr) bool {
	switch x := x.(type) {
	case *ast.Ident:
		return true
	case *ast.Prefix:
		return x.Op == ast.Deref
	}
	return false
}

func notLeftValue(x ast.Expr) *ValidationError {
	return &ValidationError{
		Code:     errors.E2011,
		Message:  fmt.Sprintf("%s is not a left value", x),
		Node:     x,
		Position: x.Pos(),
	}
}
