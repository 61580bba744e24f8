package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/wervc-lang/wervc/errors"
)

// Header is the first line of every generated file.
const Header = ".intel_syntax noprefix"

// ValidationError describes one problem found in assembly text.
type ValidationError struct {
	Line    int    // 1-based line number
	Message string // what is wrong
	Text    string // the offending line
}

func (e *ValidationError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Message, strings.TrimSpace(e.Text))
}

// ToFormatted converts the error to a FormattedError for display.
func (e *ValidationError) ToFormatted() *errors.FormattedError {
	fe := &errors.FormattedError{
		Code:    errors.E3001,
		Kind:    "assembly error",
		Message: e.Message,
		Line:    e.Line,
	}
	if e.Line > 0 {
		fe.Column = 1
		fe.SourceLines = []errors.SourceLineEntry{{Number: e.Line, Text: e.Text, IsMain: true}}
	}
	return fe
}

// ValidationErrors aggregates every problem found by Validate.
type ValidationErrors struct {
	merr *multierror.Error
}

func (e *ValidationErrors) Error() string {
	return e.merr.Error()
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *ValidationErrors) Unwrap() []error {
	return e.merr.WrappedErrors()
}

// Errors returns the individual problems in the order they were found.
func (e *ValidationErrors) Errors() []*ValidationError {
	out := make([]*ValidationError, 0, e.merr.Len())
	for _, err := range e.merr.Errors {
		if verr, ok := err.(*ValidationError); ok {
			out = append(out, verr)
		}
	}
	return out
}

// ToFormattedMultiple converts all errors to FormattedError for display.
func (e *ValidationErrors) ToFormattedMultiple() []*errors.FormattedError {
	var out []*errors.FormattedError
	for _, verr := range e.Errors() {
		out = append(out, verr.ToFormatted())
	}
	return out
}

func formatValidationErrors(errs []error) string {
	if len(errs) == 1 {
		return "invalid assembly: " + errs[0].Error()
	}
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = "  " + err.Error()
	}
	return fmt.Sprintf("invalid assembly (%d problems):\n%s", len(errs), strings.Join(lines, "\n"))
}

// mnemonics lists the instructions the validator understands.
var mnemonics = map[string]bool{
	"push": true, "pop": true, "mov": true, "movzb": true, "movzx": true,
	"add": true, "sub": true, "imul": true, "idiv": true, "cqo": true,
	"neg": true, "cmp": true, "sete": true, "setne": true, "setl": true,
	"setle": true, "setg": true, "setge": true, "je": true, "jne": true,
	"jmp": true, "call": true, "ret": true, "lea": true, "and": true,
	"or": true, "xor": true, "test": true,
}

var jumps = map[string]bool{"je": true, "jne": true, "jmp": true}

type line struct {
	num  int
	text string
	op   string
	args []string
}

// stackState simulates the number of 8-byte values pushed since the frame
// was set up.
type stackState struct {
	depth     int
	reachable bool
}

type validator struct {
	errs      *multierror.Error
	labels    map[string]int // label -> defining line
	globals   []string
	atLabel   map[string]int // depth recorded for each jump target
	state     stackState
	finalExit int // line of the last "mov rsp, rbp"
}

func (v *validator) addError(l line, format string, args ...any) {
	v.errs = multierror.Append(v.errs, &ValidationError{
		Line:    l.num,
		Message: fmt.Sprintf(format, args...),
		Text:    l.text,
	})
}

// Validate checks assembly text produced by the code generator. It verifies
// that the file starts with the Intel syntax header and defines its global
// entry label, that labels are unique and every jump target exists, and it
// simulates pushes and pops to check that the stack depth agrees at every
// merge point, never goes negative, is even at every call and is zero at the
// final epilogue. The frame reservation must keep rsp 16-byte aligned.
//
// All problems are reported together as a *ValidationErrors.
func Validate(text string) error {
	v := &validator{
		labels:  map[string]int{},
		atLabel: map[string]int{},
		state:   stackState{reachable: true},
	}
	lines := split(text)
	if len(lines) == 0 || lines[0].text != Header {
		v.addError(line{num: 1, text: first(lines)}, "missing %q header", Header)
	}
	v.collectLabels(lines)
	v.finalExit = finalExit(lines)
	v.simulate(lines)
	for _, g := range v.globals {
		if _, ok := v.labels[g]; !ok {
			v.addError(line{}, "global symbol %q is never defined", g)
		}
	}
	if len(v.globals) == 0 {
		v.addError(line{}, "no .globl entry symbol")
	}
	if err := v.errs.ErrorOrNil(); err != nil {
		v.errs.ErrorFormat = formatValidationErrors
		return &ValidationErrors{merr: v.errs}
	}
	return nil
}

func split(text string) []line {
	var out []line
	for i, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		l := line{num: i + 1, text: trimmed}
		if !strings.HasSuffix(trimmed, ":") && !strings.HasPrefix(trimmed, ".") {
			op, rest, _ := strings.Cut(trimmed, " ")
			l.op = op
			if rest = strings.TrimSpace(rest); rest != "" {
				for _, arg := range strings.Split(rest, ",") {
					l.args = append(l.args, strings.TrimSpace(arg))
				}
			}
		}
		out = append(out, l)
	}
	return out
}

func first(lines []line) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0].text
}

func (v *validator) collectLabels(lines []line) {
	for _, l := range lines {
		switch {
		case strings.HasSuffix(l.text, ":"):
			name := strings.TrimSuffix(l.text, ":")
			if prev, ok := v.labels[name]; ok {
				v.addError(l, "label %q already defined on line %d", name, prev)
				continue
			}
			v.labels[name] = l.num
		case strings.HasPrefix(l.text, ".globl"):
			fields := strings.Fields(l.text)
			if len(fields) != 2 {
				v.addError(l, "malformed .globl directive")
				continue
			}
			v.globals = append(v.globals, fields[1])
		}
	}
}

func (v *validator) simulate(lines []line) {
	var frameSetup bool
	for _, l := range lines {
		if l.op == "" {
			if strings.HasSuffix(l.text, ":") {
				v.enterLabel(l, strings.TrimSuffix(l.text, ":"))
			}
			continue
		}
		if !mnemonics[l.op] {
			v.addError(l, "unknown instruction %q", l.op)
			continue
		}
		afterSetup := frameSetup
		frameSetup = false
		if jumps[l.op] {
			v.jump(l)
			continue
		}
		if !v.state.reachable {
			continue
		}
		switch {
		case l.op == "push" && arg(l, 0) == "rbp", l.op == "pop" && arg(l, 0) == "rbp":
			// frame pointer save and restore
		case l.op == "mov" && arg(l, 0) == "rbp" && arg(l, 1) == "rsp":
			v.state.depth = 0
			frameSetup = true
		case l.op == "mov" && arg(l, 0) == "rsp" && arg(l, 1) == "rbp":
			if v.state.depth != 0 && l.num == v.finalExit {
				v.addError(l, "stack depth is %d at the final epilogue", v.state.depth)
			}
		case l.op == "push":
			v.state.depth++
		case l.op == "pop":
			v.state.depth--
			if v.state.depth < 0 {
				v.addError(l, "pop from an empty stack")
				v.state.depth = 0
			}
		case (l.op == "sub" || l.op == "add") && arg(l, 0) == "rsp":
			v.adjust(l, afterSetup)
		case l.op == "call":
			if v.state.depth%2 != 0 {
				v.addError(l, "call with misaligned stack (depth %d)", v.state.depth)
			}
		case l.op == "ret":
			v.state.reachable = false
		}
	}
}

// finalExit returns the line of the last "mov rsp, rbp" in the text.
func finalExit(lines []line) int {
	for i := len(lines) - 1; i >= 0; i-- {
		l := lines[i]
		if l.op == "mov" && arg(l, 0) == "rsp" && arg(l, 1) == "rbp" {
			return l.num
		}
	}
	return 0
}

func (v *validator) adjust(l line, frameReservation bool) {
	n, err := strconv.Atoi(arg(l, 1))
	if err != nil {
		v.addError(l, "non-constant stack adjustment")
		return
	}
	if frameReservation && l.op == "sub" {
		if n%16 != 0 {
			v.addError(l, "frame size %d is not a multiple of 16", n)
		}
		return
	}
	if n%8 != 0 {
		v.addError(l, "stack adjustment %d is not a multiple of 8", n)
		return
	}
	if l.op == "sub" {
		v.state.depth += n / 8
	} else {
		v.state.depth -= n / 8
	}
}

func (v *validator) jump(l line) {
	target := arg(l, 0)
	if _, ok := v.labels[target]; !ok {
		v.addError(l, "jump to undefined label %q", target)
		return
	}
	if !v.state.reachable {
		return
	}
	v.merge(l, target)
	if l.op == "jmp" {
		v.state.reachable = false
	}
}

func (v *validator) enterLabel(l line, name string) {
	if v.isGlobal(name) {
		v.state = stackState{reachable: true}
		return
	}
	if v.state.reachable {
		v.merge(l, name)
		return
	}
	if depth, ok := v.atLabel[name]; ok {
		v.state = stackState{depth: depth, reachable: true}
	}
}

// merge records the depth at which control reaches a label, or checks it
// against the depth recorded by an earlier path.
func (v *validator) merge(l line, label string) {
	if depth, ok := v.atLabel[label]; ok {
		if depth != v.state.depth {
			v.addError(l, "stack depth %d at %q does not match depth %d from another path",
				v.state.depth, label, depth)
		}
		return
	}
	v.atLabel[label] = v.state.depth
}

func (v *validator) isGlobal(name string) bool {
	for _, g := range v.globals {
		if g == name {
			return true
		}
	}
	return false
}

func arg(l line, i int) string {
	if i < len(l.args) {
		return l.args[i]
	}
	return ""
}
