package parser

import (
	"github.com/wervc-lang/wervc/ast"
	"github.com/wervc-lang/wervc/internal/token"
)

// parseStatement parses one expression and classifies it by what follows.
// A ";" makes it an ExprStmt. The closing token of the enclosing block or
// program makes it a ValueStmt, which is left unconsumed. On return the
// current token is the last token of the statement.
func (p *Parser) parseStatement(closer token.Type) (ast.Stmt, error) {
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	switch {
	case p.peekTokenIs(token.SEMICOLON):
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x, Semi: p.curToken.StartPosition}, nil
	case p.peekTokenIs(closer):
		return &ast.ValueStmt{X: x}, nil
	case p.peekErr != nil:
		p.shift()
		return nil, p.illegal()
	case p.peekTokenIs(token.EOF):
		return nil, p.errorAt(p.peekToken, &Error{Kind: UnexpectedToken, Expected: closer})
	}
	return nil, p.errorAt(p.peekToken, &Error{Kind: RequiredSemiColon})
}

// parseBlock parses "{" stmt* "}" in a nested scope. The current token must
// be "{"; on return it is "}".
func (p *Parser) parseBlock() (*ast.Block, error) {
	block := &ast.Block{Lbrace: p.curToken.StartPosition}
	defer p.pushScope(p.scope.NewBlock())()

	if err := p.nextToken(); err != nil {
		return nil, err
	}
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			return nil, p.errorAt(p.curToken, &Error{Kind: UnexpectedToken, Expected: token.RBRACE})
		}
		stmt, err := p.parseStatement(token.RBRACE)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}
	block.Rbrace = p.curToken.StartPosition
	return block, nil
}
