// Package asm builds and checks x86-64 assembly text in Intel syntax.
package asm

import (
	"strings"
)

// Indent is the prefix written before every instruction.
const Indent = "  "

// Builder accumulates assembly text one line at a time. Lines are only ever
// appended.
type Builder struct {
	lines []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Directive appends an assembler directive such as ".globl main".
func (b *Builder) Directive(name string, args ...string) {
	if len(args) == 0 {
		b.lines = append(b.lines, name)
		return
	}
	b.lines = append(b.lines, name+" "+strings.Join(args, ", "))
}

// Label appends a label definition.
func (b *Builder) Label(name string) {
	b.lines = append(b.lines, name+":")
}

// Instr appends an instruction with its operands separated by commas.
func (b *Builder) Instr(op string, operands ...string) {
	if len(operands) == 0 {
		b.lines = append(b.lines, Indent+op)
		return
	}
	b.lines = append(b.lines, Indent+op+" "+strings.Join(operands, ", "))
}

// Len returns the number of lines written so far.
func (b *Builder) Len() int {
	return len(b.lines)
}

// String returns the text, one line per entry, terminated by a newline.
func (b *Builder) String() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}

// Mem formats a memory operand addressed by a register.
func Mem(reg string) string {
	return "[" + reg + "]"
}
