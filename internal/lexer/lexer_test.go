package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xirelogy/go-lox/internal/token"
)

func TestLexerBasicTokens(t *testing.T) {
	input := `
var answer = (1 + 2.5) * 3;
print answer >= 10 != !nil;
`

	tests := []token.Token{
		{Type: token.Var, Literal: "var"},
		{Type: token.Ident, Literal: "answer"},
		{Type: token.Assign, Literal: "="},
		{Type: token.LParen, Literal: "("},
		{Type: token.Number, Literal: "1"},
		{Type: token.Plus, Literal: "+"},
		{Type: token.Number, Literal: "2.5"},
		{Type: token.RParen, Literal: ")"},
		{Type: token.Star, Literal: "*"},
		{Type: token.Number, Literal: "3"},
		{Type: token.Semicolon, Literal: ";"},
		{Type: token.Print, Literal: "print"},
		{Type: token.Ident, Literal: "answer"},
		{Type: token.GreaterEqual, Literal: ">="},
		{Type: token.Number, Literal: "10"},
		{Type: token.NotEqual, Literal: "!="},
		{Type: token.Bang, Literal: "!"},
		{Type: token.Nil, Literal: "nil"},
		{Type: token.Semicolon, Literal: ";"},
		{Type: token.EOF},
	}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected.Type || tok.Literal != expected.Literal {
			t.Fatalf("token %d: expected %v %q, got %v %q", i, expected.Type, expected.Literal, tok.Type, tok.Literal)
		}
	}
}

func TestLexerKeywords(t *testing.T) {
	input := `and class else false for fun if nil or print return super this true var while orchid`
	expected := []token.Type{
		token.And, token.Class, token.Else, token.False, token.For, token.Fun,
		token.If, token.Nil, token.Or, token.Print, token.Return, token.Super,
		token.This, token.True, token.Var, token.While, token.Ident, token.EOF,
	}

	l := New(input)
	for i, typ := range expected {
		tok := l.NextToken()
		require.Equal(t, typ, tok.Type, "token %d (%q)", i, tok.Literal)
	}
}

func TestLexerOperators(t *testing.T) {
	input := `( ) { } , . - + ; / * ! != = == > >= < <=`
	expected := []token.Type{
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.Comma, token.Dot,
		token.Minus, token.Plus, token.Semicolon, token.Slash, token.Star,
		token.Bang, token.NotEqual, token.Assign, token.Equal,
		token.Greater, token.GreaterEqual, token.Less, token.LessEqual,
		token.EOF,
	}

	l := New(input)
	for i, typ := range expected {
		tok := l.NextToken()
		require.Equal(t, typ, tok.Type, "token %d (%q)", i, tok.Literal)
	}
}

func TestLexerStrings(t *testing.T) {
	l := New(`"hello" "two
lines" ""`)

	tok := l.NextToken()
	assert.Equal(t, token.String, tok.Type)
	assert.Equal(t, "hello", tok.Literal)

	tok = l.NextToken()
	assert.Equal(t, token.String, tok.Type)
	assert.Equal(t, "two\nlines", tok.Literal)
	assert.Equal(t, 1, tok.Pos.Line)

	tok = l.NextToken()
	assert.Equal(t, token.String, tok.Type)
	assert.Equal(t, "", tok.Literal)
	assert.Equal(t, 2, tok.Pos.Line)

	assert.Equal(t, token.EOF, l.NextToken().Type)
}

func TestLexerErrors(t *testing.T) {
	l := New("@ \"open")

	tok := l.NextToken()
	assert.Equal(t, token.Illegal, tok.Type)
	assert.Equal(t, "Unexpected character.", tok.Literal)

	tok = l.NextToken()
	assert.Equal(t, token.Illegal, tok.Type)
	assert.Equal(t, "Unterminated string.", tok.Literal)

	assert.Equal(t, token.EOF, l.NextToken().Type)
}

func TestLexerComments(t *testing.T) {
	input := `// line comment
var a = 1; // trailing
// last`

	expected := []token.Type{
		token.Var, token.Ident, token.Assign, token.Number, token.Semicolon, token.EOF,
	}

	l := New(input)
	for i, typ := range expected {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("token %d: expected %v, got %v (%q)", i, typ, tok.Type, tok.Literal)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	l := New("var x;\n  print x;\n")

	var lines, cols []int
	for {
		tok := l.NextToken()
		lines = append(lines, tok.Pos.Line)
		cols = append(cols, tok.Pos.Column)
		if tok.Type == token.EOF {
			break
		}
	}
	assert.Equal(t, []int{1, 1, 1, 2, 2, 2, 3}, lines)
	assert.Equal(t, []int{1, 5, 6, 3, 9, 10}, cols[:6])
}

func TestLexerNumberWithoutFraction(t *testing.T) {
	l := New("12.")
	tok := l.NextToken()
	assert.Equal(t, token.Number, tok.Type)
	assert.Equal(t, "12", tok.Literal)
	assert.Equal(t, token.Dot, l.NextToken().Type)
	assert.Equal(t, token.EOF, l.NextToken().Type)
	assert.Equal(t, token.EOF, l.NextToken().Type)
}
