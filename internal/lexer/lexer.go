// Package lexer converts source text into a stream of tokens.
package lexer

import (
	"fmt"

	"github.com/wervc-lang/wervc/internal/token"
)

// Lexer holds our object-state.
type Lexer struct {
	// The input being scanned
	input string

	// Byte offset of the current character
	position int

	// Byte offset of the next character
	readPosition int

	// The current character
	ch byte

	// 0-indexed line number of the current character
	line int

	// Byte offset of the start of the current line
	lineStart int

	// The name of the file being scanned, if known
	file string
}

// New returns a Lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// SetFilename sets the name of the file being lexed.
func (l *Lexer) SetFilename(file string) {
	l.file = file
}

// Filename returns the name of the file being lexed.
func (l *Lexer) Filename() string {
	return l.file
}

// Next returns the next token from the input. An unrecognized character
// produces an ILLEGAL token along with an error describing it. Once the
// input is exhausted, Next keeps returning EOF.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespaceAndComments()

	start := l.pos()
	switch {
	case l.atEOF():
		return token.Token{Type: token.EOF, StartPosition: start, EndPosition: start}, nil
	case isDigit(l.ch):
		literal := l.readWhile(isDigit)
		return l.tokenFrom(token.INT, literal, start), nil
	case isLetter(l.ch):
		literal := l.readWhile(isIdentChar)
		return l.tokenFrom(token.LookupIdentifier(literal), literal, start), nil
	}

	var tokType token.Type
	switch l.ch {
	case '=':
		tokType = l.either('=', token.EQ, token.ASSIGN)
	case '!':
		tokType = l.either('=', token.NOT_EQ, token.BANG)
	case '<':
		tokType = l.either('=', token.LT_EQUALS, token.LT)
	case '>':
		tokType = l.either('=', token.GT_EQUALS, token.GT)
	case '+':
		tokType = token.PLUS
	case '-':
		tokType = token.MINUS
	case '*':
		tokType = token.ASTERISK
	case '/':
		tokType = token.SLASH
	case '%':
		tokType = token.MOD
	case '&':
		tokType = token.AMPERSAND
	case '(':
		tokType = token.LPAREN
	case ')':
		tokType = token.RPAREN
	case '{':
		tokType = token.LBRACE
	case '}':
		tokType = token.RBRACE
	case '[':
		tokType = token.LBRACKET
	case ']':
		tokType = token.RBRACKET
	case ',':
		tokType = token.COMMA
	case ':':
		tokType = token.COLON
	case ';':
		tokType = token.SEMICOLON
	default:
		ch := l.ch
		l.readChar()
		tok := l.tokenFrom(token.ILLEGAL, string(ch), start)
		return tok, fmt.Errorf("unexpected character %q", ch)
	}
	l.readChar()
	return l.tokenFrom(tokType, l.input[start.Char:l.position], start), nil
}

// GetLineText returns the full line of source text containing the token.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start > len(l.input) {
		return ""
	}
	end := start
	for end < len(l.input) && l.input[end] != '\n' {
		end++
	}
	return l.input[start:end]
}

// either consumes the next character when it matches ch and returns
// matched, otherwise it returns single.
func (l *Lexer) either(ch byte, matched, single token.Type) token.Type {
	if l.peekChar() == ch {
		l.readChar()
		return matched
	}
	return single
}

func (l *Lexer) tokenFrom(t token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          t,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   start.Advance(len(literal) - 1),
	}
}

func (l *Lexer) pos() token.Position {
	return token.Position{
		Char:      l.position,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.position - l.lineStart,
		File:      l.file,
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.lineStart = l.readPosition
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	if l.readPosition <= len(l.input) {
		l.readPosition++
	}
}

// atEOF reports whether the whole input has been consumed. A NUL byte inside
// the input is an ordinary (illegal) character.
func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) readWhile(pred func(byte) bool) string {
	start := l.position
	for !l.atEOF() && pred(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && !l.atEOF() {
				l.readChar()
			}
		default:
			return
		}
	}
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}
