package parser

import (
	"sort"

	"github.com/wervc-lang/wervc/ast"
)

// Symbol is a variable bound to an 8-byte slot in a stack frame.
type Symbol struct {
	offset int
}

// Offset returns the distance in bytes of the slot below the frame base.
func (s *Symbol) Offset() int { return s.offset }

// SymbolTable tracks which variables are visible in a given scope and which
// frame slots they occupy. Tables may have a parent table, which indicates
// that they represent a nested scope. If "isBlock" is set to true, the table
// represents a block within a frame and claims its slots from the enclosing
// frame. Otherwise the table owns a frame of its own.
type SymbolTable struct {
	parent        *SymbolTable
	symbolsByName map[string]*Symbol
	slots         int
	isBlock       bool
}

// NewSymbolTable returns the table for the top-level frame.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbolsByName: map[string]*Symbol{}}
}

// NewChild creates a table that owns a new frame, as used by a function
// definition.
func (t *SymbolTable) NewChild() *SymbolTable {
	return &SymbolTable{parent: t, symbolsByName: map[string]*Symbol{}}
}

// NewBlock creates a nested scope that allocates slots from the enclosing
// frame.
func (t *SymbolTable) NewBlock() *SymbolTable {
	child := t.NewChild()
	child.isBlock = true
	return child
}

func (t *SymbolTable) frame() *SymbolTable {
	if t.isBlock {
		return t.parent.frame()
	}
	return t
}

func (t *SymbolTable) claimSlot() int {
	f := t.frame()
	f.slots++
	return f.slots * ast.SlotSize
}

// Insert declares a variable in this scope. Every declaration claims a new
// slot, including one that shadows an existing name.
func (t *SymbolTable) Insert(name string) *Symbol {
	s := &Symbol{offset: t.claimSlot()}
	t.symbolsByName[name] = s
	return s
}

// Resolve finds the innermost visible declaration of the name. The search
// walks out through enclosing blocks but stops at the frame boundary, since
// slots of another frame are not addressable.
func (t *SymbolTable) Resolve(name string) (*Symbol, bool) {
	if s, ok := t.symbolsByName[name]; ok {
		return s, true
	}
	if t.isBlock {
		return t.parent.Resolve(name)
	}
	return nil, false
}

// FrameSize returns the bytes of slot storage claimed so far in the frame
// this table belongs to.
func (t *SymbolTable) FrameSize() int {
	return t.frame().slots * ast.SlotSize
}

// Names returns the sorted names visible from this table.
func (t *SymbolTable) Names() []string {
	seen := map[string]bool{}
	for s := t; s != nil; s = s.parent {
		for name := range s.symbolsByName {
			seen[name] = true
		}
		if !s.isBlock {
			break
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
