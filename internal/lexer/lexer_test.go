package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wervc-lang/wervc/internal/token"
)

func TestNumbers(t *testing.T) {
	input := "0 42 1234567890;"
	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.INT, "0"},
		{token.INT, "42"},
		{token.INT, "1234567890"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		require.Nil(t, err)
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestArithmetic(t *testing.T) {
	input := "1 + (2 - 3) * 4 / 5 % 6"
	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.INT, "1"},
		{token.PLUS, "+"},
		{token.LPAREN, "("},
		{token.INT, "2"},
		{token.MINUS, "-"},
		{token.INT, "3"},
		{token.RPAREN, ")"},
		{token.ASTERISK, "*"},
		{token.INT, "4"},
		{token.SLASH, "/"},
		{token.INT, "5"},
		{token.MOD, "%"},
		{token.INT, "6"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		require.Nil(t, err)
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextToken(t *testing.T) {
	input := `let five: int = 5;
let add(x: int, y: int): int = x + y; // comment
if five <= 10 { !true } else { false };
a[1] == *&b != c >= d > e < f;
return add(five, 10)
`
	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.LET, "let"},
		{token.IDENT, "five"},
		{token.COLON, ":"},
		{token.IDENT, "int"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.SEMICOLON, ";"},
		{token.LET, "let"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.COLON, ":"},
		{token.IDENT, "int"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.COLON, ":"},
		{token.IDENT, "int"},
		{token.RPAREN, ")"},
		{token.COLON, ":"},
		{token.IDENT, "int"},
		{token.ASSIGN, "="},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.IDENT, "y"},
		{token.SEMICOLON, ";"},
		{token.IF, "if"},
		{token.IDENT, "five"},
		{token.LT_EQUALS, "<="},
		{token.INT, "10"},
		{token.LBRACE, "{"},
		{token.BANG, "!"},
		{token.TRUE, "true"},
		{token.RBRACE, "}"},
		{token.ELSE, "else"},
		{token.LBRACE, "{"},
		{token.FALSE, "false"},
		{token.RBRACE, "}"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "a"},
		{token.LBRACKET, "["},
		{token.INT, "1"},
		{token.RBRACKET, "]"},
		{token.EQ, "=="},
		{token.ASTERISK, "*"},
		{token.AMPERSAND, "&"},
		{token.IDENT, "b"},
		{token.NOT_EQ, "!="},
		{token.IDENT, "c"},
		{token.GT_EQUALS, ">="},
		{token.IDENT, "d"},
		{token.GT, ">"},
		{token.IDENT, "e"},
		{token.LT, "<"},
		{token.IDENT, "f"},
		{token.SEMICOLON, ";"},
		{token.RETURN, "return"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "five"},
		{token.COMMA, ","},
		{token.INT, "10"},
		{token.RPAREN, ")"},
		{token.EOF, ""},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		require.Nil(t, err)
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestIdentifiers(t *testing.T) {
	l := New("foo_bar _123 x1 letx")
	for _, want := range []string{"foo_bar", "_123", "x1", "letx"} {
		tok, err := l.Next()
		require.Nil(t, err)
		assert.Equal(t, token.IDENT, tok.Type)
		assert.Equal(t, want, tok.Literal)
	}
}

func TestIllegal(t *testing.T) {
	l := New("1 @ 2")
	tok, err := l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.INT, tok.Type)

	tok, err = l.Next()
	require.Error(t, err)
	assert.Equal(t, token.ILLEGAL, tok.Type)
	assert.Equal(t, "@", tok.Literal)
	assert.Equal(t, `unexpected character '@'`, err.Error())

	// Scanning continues after the bad character
	tok, err = l.Next()
	require.Nil(t, err)
	assert.Equal(t, "2", tok.Literal)
}

func TestNulByte(t *testing.T) {
	l := New("1\x00 + 2")
	tok, err := l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.INT, tok.Type)

	tok, err = l.Next()
	require.Error(t, err)
	assert.Equal(t, token.ILLEGAL, tok.Type)
	assert.Equal(t, "\x00", tok.Literal)
	assert.Equal(t, `unexpected character '\x00'`, err.Error())

	// The rest of the input is still scanned
	var types []token.Type
	for {
		tok, err := l.Next()
		require.Nil(t, err)
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	assert.Equal(t, []token.Type{token.PLUS, token.INT, token.EOF}, types)
}

func TestTrailingNulByte(t *testing.T) {
	l := New("x\x00")
	tok, err := l.Next()
	require.Nil(t, err)
	assert.Equal(t, "x", tok.Literal)

	tok, err = l.Next()
	require.Error(t, err)
	assert.Equal(t, token.ILLEGAL, tok.Type)

	tok, err = l.Next()
	require.Nil(t, err)
	assert.Equal(t, token.EOF, tok.Type)
}

func TestPositions(t *testing.T) {
	l := New("let x = 1;\n  x + 22")
	l.SetFilename("main.wv")
	var toks []token.Token
	for {
		tok, err := l.Next()
		require.Nil(t, err)
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	// "x" on the second line
	x := toks[5]
	assert.Equal(t, "x", x.Literal)
	assert.Equal(t, 1, x.StartPosition.Line)
	assert.Equal(t, 2, x.StartPosition.Column)
	assert.Equal(t, 13, x.StartPosition.Char)
	assert.Equal(t, "main.wv", x.StartPosition.File)
	assert.Equal(t, "  x + 22", l.GetLineText(x))

	num := toks[7]
	assert.Equal(t, "22", num.Literal)
	assert.Equal(t, 6, num.StartPosition.Column)
	assert.Equal(t, 7, num.EndPosition.Column)

	let := toks[0]
	assert.Equal(t, "let x = 1;", l.GetLineText(let))
	assert.Equal(t, "main.wv", l.Filename())
}
