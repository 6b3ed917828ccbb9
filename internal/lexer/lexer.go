package lexer

import (
	"github.com/xirelogy/go-lox/internal/token"
)

// Lexer converts source text into a stream of tokens on demand.
type Lexer struct {
	input   string
	pos     int  // current position in bytes
	readPos int  // next read position
	ch      byte // current char
	line    int
	column  int
}

// New creates a lexer for the provided source text.
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// NextToken returns the next token from the input. Once the input is
// exhausted every call returns an EOF token.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipWhitespace()

		if l.ch == 0 && l.pos >= len(l.input) {
			return l.makeToken(token.EOF, "")
		}

		if l.ch == '/' && l.peekChar() == '/' {
			l.skipLineComment()
			continue
		}

		switch l.ch {
		case '(':
			return l.single(token.LParen)
		case ')':
			return l.single(token.RParen)
		case '{':
			return l.single(token.LBrace)
		case '}':
			return l.single(token.RBrace)
		case ',':
			return l.single(token.Comma)
		case '.':
			return l.single(token.Dot)
		case ';':
			return l.single(token.Semicolon)
		case '+':
			return l.single(token.Plus)
		case '-':
			return l.single(token.Minus)
		case '*':
			return l.single(token.Star)
		case '/':
			return l.single(token.Slash)
		case '!':
			return l.pair('=', token.NotEqual, token.Bang)
		case '=':
			return l.pair('=', token.Equal, token.Assign)
		case '<':
			return l.pair('=', token.LessEqual, token.Less)
		case '>':
			return l.pair('=', token.GreaterEqual, token.Greater)
		case '"':
			return l.readString()
		default:
			if isLetter(l.ch) {
				return l.readIdentifier()
			}
			if isDigit(l.ch) {
				return l.readNumber()
			}

			tok := l.makeToken(token.Illegal, "Unexpected character.")
			l.readChar()
			return tok
		}
	}
}

func (l *Lexer) makeToken(t token.Type, lit string) token.Token {
	return token.Token{
		Type:    t,
		Literal: lit,
		Pos: token.Position{
			Offset: l.pos,
			Line:   l.line,
			Column: l.column,
		},
	}
}

func (l *Lexer) single(t token.Type) token.Token {
	tok := l.makeToken(t, string(l.ch))
	l.readChar()
	return tok
}

// pair emits two when the next char is want, otherwise one.
func (l *Lexer) pair(want byte, two, one token.Type) token.Token {
	if l.peekChar() != want {
		return l.single(one)
	}
	tok := l.makeToken(two, l.input[l.pos:l.pos+2])
	l.readChar()
	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.pos < len(l.input) {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() token.Token {
	start := l.makeToken(token.Ident, "")
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start.Pos.Offset:l.pos]
	start.Type = token.LookupIdent(lit)
	start.Literal = lit
	return start
}

func (l *Lexer) readNumber() token.Token {
	start := l.makeToken(token.Number, "")
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	start.Literal = l.input[start.Pos.Offset:l.pos]
	return start
}

// readString scans a double-quoted literal. The literal excludes the quotes
// and may span lines; there are no escape sequences.
func (l *Lexer) readString() token.Token {
	start := l.makeToken(token.String, "")
	l.readChar() // consume opening quote
	for l.ch != '"' {
		if l.pos >= len(l.input) {
			start.Type = token.Illegal
			start.Literal = "Unterminated string."
			start.Pos.Line = l.line
			return start
		}
		l.readChar()
	}
	start.Literal = l.input[start.Pos.Offset+1 : l.pos]
	l.readChar() // consume closing quote
	return start
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPos >= len(l.input) {
		l.pos = len(l.input)
		l.ch = 0
		return
	}

	l.ch = l.input[l.readPos]
	l.pos = l.readPos
	l.readPos++
	l.column++
}
