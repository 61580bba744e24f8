package parser

import (
	"strconv"

	"github.com/wervc-lang/wervc/ast"
	"github.com/wervc-lang/wervc/errors"
	"github.com/wervc-lang/wervc/internal/token"
)

var (
	relationalOps = map[token.Type]ast.BinaryOp{
		token.EQ:        ast.Eq,
		token.NOT_EQ:    ast.Ne,
		token.LT:        ast.Lt,
		token.LT_EQUALS: ast.Le,
		token.GT:        ast.Gt,
		token.GT_EQUALS: ast.Ge,
	}
	additiveOps = map[token.Type]ast.BinaryOp{
		token.PLUS:  ast.Add,
		token.MINUS: ast.Sub,
	}
	multiplicativeOps = map[token.Type]ast.BinaryOp{
		token.ASTERISK: ast.Mul,
		token.SLASH:    ast.Div,
		token.MOD:      ast.Mod,
	}
	unaryOps = map[token.Type]ast.UnaryOp{
		token.MINUS:     ast.Neg,
		token.BANG:      ast.Not,
		token.AMPERSAND: ast.Addr,
		token.ASTERISK:  ast.Deref,
	}
)

// parseExpression parses an expression starting at the current token. On
// return the current token is the last token of the expression.
func (p *Parser) parseExpression() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.ctx.Err(); err != nil {
		return nil, err
	}
	switch p.curToken.Type {
	case token.LET:
		return p.parseLet()
	case token.RETURN:
		return p.parseReturn()
	}
	return p.parseAssign()
}

// parseAssign parses a right-associative assignment chain.
func (p *Parser) parseAssign() (ast.Expr, error) {
	lhs, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if !p.peekTokenIs(token.ASSIGN) {
		return lhs, nil
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	opPos := p.curToken.StartPosition
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	rhs, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	return &ast.Infix{X: lhs, OpPos: opPos, Op: ast.Assign, Y: rhs}, nil
}

// binaryLevels lists the left-associative operator groups, loosest first.
var binaryLevels = []map[token.Type]ast.BinaryOp{
	relationalOps,
	additiveOps,
	multiplicativeOps,
}

// parseBinary parses a left-associative chain of the operators at the given
// level, with operands parsed at the next tighter level.
func (p *Parser) parseBinary(level int) (ast.Expr, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}
	ops := binaryLevels[level]
	x, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.peekToken.Type]
		if !ok {
			return x, nil
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		opPos := p.curToken.StartPosition
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		y, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		x = &ast.Infix{X: x, OpPos: opPos, Op: op, Y: y}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	op, ok := unaryOps[p.curToken.Type]
	if !ok {
		return p.parsePostfix()
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	opPos := p.curToken.StartPosition
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Prefix{OpPos: opPos, Op: op, X: x}, nil
}

// parsePostfix parses a primary expression followed by any number of index
// operations. a[i] is rewritten to *(a + i).
func (p *Parser) parsePostfix() (ast.Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peekTokenIs(token.LBRACKET) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		lbrack := p.curToken.StartPosition
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.RBRACKET); err != nil {
			return nil, err
		}
		x = &ast.Prefix{
			OpPos: lbrack,
			Op:    ast.Deref,
			X:     &ast.Infix{X: x, OpPos: lbrack, Op: ast.Add, Y: index},
		}
	}
	return x, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.curToken.Type {
	case token.INT:
		return p.parseInt()
	case token.TRUE, token.FALSE:
		return &ast.Bool{
			ValuePos: p.curToken.StartPosition,
			Literal:  p.curToken.Literal,
			Value:    p.curTokenIs(token.TRUE),
		}, nil
	case token.IDENT:
		if p.peekTokenIs(token.LPAREN) {
			return p.parseCall()
		}
		return p.parseIdent()
	case token.LPAREN:
		return p.parseGrouped()
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.LBRACKET:
		return p.parseArray()
	}
	return nil, p.errorAt(p.curToken, &Error{Kind: UnexpectedToken})
}

func (p *Parser) parseInt() (ast.Expr, error) {
	tok := p.curToken
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, p.errorAt(tok, &Error{Kind: InvalidInteger, Cause: err})
	}
	return &ast.Int{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: value}, nil
}

// parseIdent resolves a variable reference against the current scope.
func (p *Parser) parseIdent() (ast.Expr, error) {
	ident := p.newIdent(p.curToken)
	sym, ok := p.scope.Resolve(ident.Name)
	if !ok {
		return nil, p.errorAt(p.curToken, &Error{
			Kind:        UndefinedIdentifier,
			Name:        ident.Name,
			Suggestions: errors.SuggestSimilar(ident.Name, p.scope.Names()),
		})
	}
	ident.Offset = sym.Offset()
	return ident, nil
}

func (p *Parser) parseGrouped() (ast.Expr, error) {
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	x, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.RPAREN); err != nil {
		return nil, err
	}
	return x, nil
}

// parseCall parses a call to an external function. The callee name is not
// looked up in scope.
func (p *Parser) parseCall() (ast.Expr, error) {
	call := &ast.Call{Func: p.newIdent(p.curToken)}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	call.Lparen = p.curToken.StartPosition
	args, err := parseList(p, token.RPAREN, p.parseExpression)
	if err != nil {
		return nil, err
	}
	call.Args = args
	call.Rparen = p.curToken.StartPosition
	return call, nil
}

func (p *Parser) parseArray() (ast.Expr, error) {
	array := &ast.Array{Lbrack: p.curToken.StartPosition}
	items, err := parseList(p, token.RBRACKET, p.parseExpression)
	if err != nil {
		return nil, err
	}
	array.Items = items
	array.Rbrack = p.curToken.StartPosition
	return array, nil
}

// parseList parses a comma separated list. The current token must be the
// opening delimiter; on return it is the closing one.
func parseList[T any](p *Parser, end token.Type, parseItem func() (T, error)) ([]T, error) {
	var items []T
	if p.peekTokenIs(end) {
		return items, p.nextToken()
	}
	for {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		item, err := parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}
	if err := p.expectPeek(end); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Parser) parseIf() (ast.Expr, error) {
	expr := &ast.If{If: p.curToken.StartPosition}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	expr.Cond = cond
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	consequence, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	expr.Consequence = consequence
	if !p.peekTokenIs(token.ELSE) {
		return expr, nil
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	alternative, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	expr.Alternative = alternative
	return expr, nil
}

func (p *Parser) parseReturn() (ast.Expr, error) {
	ret := &ast.Return{Return: p.curToken.StartPosition}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	ret.Value = value
	return ret, nil
}

// parseLet parses a variable declaration or, when the name is followed by
// "(", a function definition. The initializer is parsed before the name is
// declared, so it sees any outer variable of the same name.
func (p *Parser) parseLet() (ast.Expr, error) {
	let := &ast.Let{Let: p.curToken.StartPosition}
	if err := p.expectPeek(token.IDENT); err != nil {
		return nil, err
	}
	nameTok := p.curToken
	if p.peekTokenIs(token.LPAREN) {
		return p.parseFunc(let.Let, nameTok)
	}
	if p.peekTokenIs(token.COLON) {
		typ, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		let.Type = typ
	}
	if p.peekTokenIs(token.ASSIGN) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		let.Value = value
	}
	let.Name = p.newIdent(nameTok)
	let.Name.Offset = p.scope.Insert(nameTok.Literal).Offset()
	return let, nil
}

// parseFunc parses the rest of "let name(params): type = body". Parameters
// and locals are allocated in a new frame.
func (p *Parser) parseFunc(letPos token.Position, nameTok token.Token) (ast.Expr, error) {
	fn := &ast.Func{Let: letPos, Name: p.newIdent(nameTok)}
	frame := p.scope.NewChild()
	defer p.pushScope(frame)()

	if err := p.nextToken(); err != nil {
		return nil, err
	}
	params, err := parseList(p, token.RPAREN, p.parseParam)
	if err != nil {
		return nil, err
	}
	fn.Params = params
	if p.peekTokenIs(token.COLON) {
		typ, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		fn.ReturnType = typ
	}
	if err := p.expectPeek(token.ASSIGN); err != nil {
		return nil, err
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	fn.FrameSize = frame.FrameSize()
	return fn, nil
}

func (p *Parser) parseParam() (*ast.Param, error) {
	if err := p.expectCur(token.IDENT); err != nil {
		return nil, err
	}
	param := &ast.Param{Name: p.newIdent(p.curToken)}
	if p.peekTokenIs(token.COLON) {
		typ, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		param.Type = typ
	}
	param.Name.Offset = p.scope.Insert(param.Name.Name).Offset()
	return param, nil
}

// parseTypeAnnotation parses ": type". The next token must be ":".
func (p *Parser) parseTypeAnnotation() (*ast.Type, error) {
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	typ := &ast.Type{Star: p.curToken.StartPosition}
	for p.curTokenIs(token.ASTERISK) {
		typ.Pointer++
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}
	if err := p.expectCur(token.IDENT); err != nil {
		return nil, err
	}
	typ.Name = p.curToken.Literal
	for p.peekTokenIs(token.LBRACKET) {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.INT); err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
		if err != nil {
			return nil, p.errorAt(p.curToken, &Error{Kind: InvalidInteger, Cause: err})
		}
		typ.Dims = append(typ.Dims, n)
		if err := p.expectPeek(token.RBRACKET); err != nil {
			return nil, err
		}
	}
	typ.EndPos = p.curToken.EndPosition.Advance(1)
	return typ, nil
}
