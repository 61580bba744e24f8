package main

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wervc-lang/wervc"
	"github.com/wervc-lang/wervc/ast"
)

func (a *app) astCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Display the resolved syntax tree of a program",
		Long: `Display the syntax tree of a program. Variables are shown with the
frame offset they were resolved to.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runAST,
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	return cmd
}

func (a *app) runAST(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	in := inputs[0]
	program, err := wervc.Parse(cmd.Context(), in.source, a.compileOpts(in.name, false)...)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	switch output, _ := cmd.Flags().GetString("output"); output {
	case "json":
		data, err := a.marshalJSON(nodeToJSON(program), a.useColor(w))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	case "text", "":
		printAST(w, program, painter{enabled: a.useColor(w)})
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
	return nil
}

// ASTNode represents a node in the JSON AST output
type ASTNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Offset   int        `json:"offset,omitempty"`
	Children []*ASTNode `json:"children,omitempty"`
}

func nodeToJSON(node ast.Node) *ASTNode {
	result := &ASTNode{Type: typeName(node)}
	switch n := node.(type) {
	case *ast.Program:
		result.Offset = n.TotalOffset
	case *ast.Ident:
		result.Value = n.Name
		result.Offset = n.Offset
	case *ast.Int:
		result.Value = n.Value
	case *ast.Bool:
		result.Value = n.Value
	case *ast.Prefix:
		result.Value = n.Op.String()
	case *ast.Infix:
		result.Value = n.Op.String()
	case *ast.Type:
		result.Value = n.String()
	case *ast.Func:
		result.Offset = n.FrameSize
	}
	for _, child := range ast.Children(node) {
		result.Children = append(result.Children, nodeToJSON(child))
	}
	return result
}

func typeName(node ast.Node) string {
	return reflect.TypeOf(node).Elem().Name()
}

var (
	nodeColor    = forced(color.FgHiBlue, color.Bold)
	opColor      = forced(color.FgMagenta)
	literalColor = forced(color.FgYellow)
	offsetColor  = forced(color.FgGreen)
	mutedColor   = forced(color.FgHiBlack)
)

func printAST(w io.Writer, program *ast.Program, p painter) {
	fmt.Fprintf(w, "%s %s\n", p.paint(nodeColor, "Program"),
		p.paint(offsetColor, "frame=%d", program.TotalOffset))
	children := ast.Children(program)
	for i, child := range children {
		printNode(w, child, "  ", i == len(children)-1, p)
	}
}

func printNode(w io.Writer, node ast.Node, indent string, isLast bool, p painter) {
	connector := "├─ "
	childIndent := indent + "│  "
	if isLast {
		connector = "└─ "
		childIndent = indent + "   "
	}
	parts := []string{p.paint(nodeColor, "%s", typeName(node))}
	switch n := node.(type) {
	case *ast.Ident:
		parts = append(parts, p.paint(literalColor, "%q", n.Name))
		if n.Resolved() {
			parts = append(parts, p.paint(offsetColor, "offset=%d", n.Offset))
		}
	case *ast.Int:
		parts = append(parts, p.paint(literalColor, "%d", n.Value))
	case *ast.Bool:
		parts = append(parts, p.paint(literalColor, "%t", n.Value))
	case *ast.Prefix:
		parts = append(parts, p.paint(opColor, "%s", n.Op))
	case *ast.Infix:
		parts = append(parts, p.paint(opColor, "%s", n.Op))
	case *ast.Type:
		parts = append(parts, p.paint(literalColor, "%s", n))
	case *ast.Func:
		parts = append(parts, p.paint(offsetColor, "frame=%d", n.FrameSize))
	}
	fmt.Fprintf(w, "%s%s\n", p.paint(mutedColor, "%s%s", indent, connector), strings.Join(parts, " "))

	children := ast.Children(node)
	for i, child := range children {
		printNode(w, child, childIndent, i == len(children)-1, p)
	}
}
