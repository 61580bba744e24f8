package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, "", b.String())
	assert.Equal(t, 0, b.Len())

	b.Directive(".intel_syntax", "noprefix")
	b.Directive(".text")
	b.Label("main")
	b.Instr("push", "rbp")
	b.Instr("mov", "rax", Mem("rax"))
	b.Instr("ret")

	expected := ".intel_syntax noprefix\n" +
		".text\n" +
		"main:\n" +
		"  push rbp\n" +
		"  mov rax, [rax]\n" +
		"  ret\n"
	assert.Equal(t, expected, b.String())
	assert.Equal(t, 6, b.Len())
}
