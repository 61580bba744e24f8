// Package parser is used to generate the abstract syntax tree (AST) for a program.
//
// A parser is created by calling New() with a lexer as input. The parser should
// then be used only once, by calling parser.Parse() to produce the AST.
//
// Identifiers are resolved while parsing. Each declaration claims the next
// 8-byte slot of the current frame and every variable reference in the
// resulting tree carries its slot offset.
package parser

import (
	"context"

	"github.com/wervc-lang/wervc/ast"
	"github.com/wervc-lang/wervc/internal/lexer"
	"github.com/wervc-lang/wervc/internal/token"
)

// Parse the provided input as source code and return the AST. This is
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	// Extract filename from options before creating the parser, so that lexer
	// errors in the first tokens have proper location context.
	var probe Parser
	for _, opt := range options {
		opt(&probe)
	}
	l := lexer.New(input)
	if probe.filename != "" {
		l.SetFilename(probe.filename)
	}
	return New(l, options...).Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// lexer errors for curToken and peekToken
	curErr  error
	peekErr error

	// scope holds the variables visible at the current point of the parse
	scope *SymbolTable

	// The filename of the input
	filename string

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int
}

// New returns a Parser for the program provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{
		l:        l,
		scope:    NewSymbolTable(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.filename != "" && l.Filename() == "" {
		l.SetFilename(p.filename)
	}

	// Prime the token pump. Lexer errors are reported once the offending
	// token becomes current.
	p.shift()
	p.shift()
	return p
}

// Parse the program that is provided via the lexer. On failure the first
// error is returned and no tree is produced.
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	p.ctx = ctx
	if p.curErr != nil {
		return nil, p.illegal()
	}
	var stmts []ast.Stmt
	for !p.curTokenIs(token.EOF) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		stmt, err := p.parseStatement(token.EOF)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}
	return &ast.Program{Stmts: stmts, TotalOffset: p.scope.FrameSize()}, nil
}

// shift moves the token window forward by one without reporting errors.
func (p *Parser) shift() {
	p.curToken, p.curErr = p.peekToken, p.peekErr
	p.peekToken, p.peekErr = p.l.Next()
}

// nextToken advances to the next token. If the lexer could not scan the new
// current token, an IllegalToken error is returned.
func (p *Parser) nextToken() error {
	p.shift()
	if p.curErr != nil {
		return p.illegal()
	}
	return nil
}

// curTokenIs returns true if the current token has the given type.
func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// peekTokenIs returns true if the next token has the given type.
func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek advances if the next token is of the given type. Otherwise an
// UnexpectedToken error is returned.
func (p *Parser) expectPeek(t token.Type) error {
	if !p.peekTokenIs(t) {
		if p.peekErr != nil {
			p.shift()
			return p.illegal()
		}
		return p.errorAt(p.peekToken, &Error{Kind: UnexpectedToken, Expected: t})
	}
	return p.nextToken()
}

// expectCur returns an UnexpectedToken error unless the current token is of
// the given type.
func (p *Parser) expectCur(t token.Type) error {
	if p.curTokenIs(t) {
		return nil
	}
	return p.errorAt(p.curToken, &Error{Kind: UnexpectedToken, Expected: t})
}

// enter tracks recursion depth. Callers must call leave when done.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorAt(p.curToken, &Error{Kind: MaxDepthExceeded})
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// pushScope opens a nested scope and returns a function restoring the
// previous one.
func (p *Parser) pushScope(s *SymbolTable) func() {
	saved := p.scope
	p.scope = s
	return func() { p.scope = saved }
}

func (p *Parser) illegal() error {
	return p.errorAt(p.curToken, &Error{Kind: IllegalToken, Cause: p.curErr})
}

// errorAt fills in the location details of err for the given token.
func (p *Parser) errorAt(tok token.Token, err *Error) *Error {
	err.Actual = tok
	err.File = p.l.Filename()
	err.SourceCode = p.l.GetLineText(tok)
	return err
}

// newIdent creates a new Ident node from a token.
func (p *Parser) newIdent(tok token.Token) *ast.Ident {
	return &ast.Ident{NamePos: tok.StartPosition, Name: tok.Literal}
}
