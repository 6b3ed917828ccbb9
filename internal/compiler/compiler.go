package compiler

import (
	"github.com/xirelogy/go-lox/internal/bytecode"
	"github.com/xirelogy/go-lox/internal/lexer"
	"github.com/xirelogy/go-lox/internal/token"
	"github.com/xirelogy/go-lox/internal/value"
)

// Compile translates source into a chunk in a single pass. Strings and
// global names are interned in heap. On failure the partial chunk is
// discarded and the returned error is an *Error listing every diagnostic.
func Compile(source string, heap *value.Heap) (*Chunk, error) {
	p := &parser{
		lexer: lexer.New(source),
		chunk: bytecode.NewChunk(),
		heap:  heap,
	}

	p.advance()
	for !p.match(token.EOF) {
		p.declaration()
	}
	p.emitByte(OP_RETURN)

	if p.hadError {
		return nil, &Error{Diagnostics: p.diagnostics}
	}
	return p.chunk, nil
}

type parser struct {
	lexer *lexer.Lexer
	chunk *Chunk
	heap  *value.Heap

	current  token.Token
	previous token.Token

	hadError    bool
	panicMode   bool
	diagnostics []Diagnostic

	depth int
}

func (p *parser) advance() {
	p.previous = p.current
	for {
		p.current = p.lexer.NextToken()
		if p.current.Type != token.Illegal {
			break
		}
		p.errorAtCurrent(p.current.Literal)
	}
}

func (p *parser) consume(t token.Type, message string) {
	if p.current.Type == t {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

func (p *parser) check(t token.Type) bool {
	return p.current.Type == t
}

func (p *parser) match(t token.Type) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

// Statements.

func (p *parser) declaration() {
	if p.match(token.Var) {
		p.varDeclaration()
	} else {
		p.statement()
	}

	if p.panicMode {
		p.synchronize()
	}
}

func (p *parser) varDeclaration() {
	global := p.parseVariable("Expect variable name.")

	if p.match(token.Assign) {
		p.expression()
	} else {
		p.emitByte(OP_NIL)
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")

	p.defineVariable(global)
}

func (p *parser) statement() {
	if p.match(token.Print) {
		p.printStatement()
		return
	}
	p.expressionStatement()
}

func (p *parser) printStatement() {
	p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	p.emitByte(OP_PRINT)
}

func (p *parser) expressionStatement() {
	p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	p.emitByte(OP_POP)
}

// synchronize skips tokens until a likely statement boundary so one mistake
// produces one diagnostic.
func (p *parser) synchronize() {
	p.panicMode = false

	for p.current.Type != token.EOF {
		if p.previous.Type == token.Semicolon {
			return
		}
		if token.StartsStatement(p.current.Type) {
			return
		}
		p.advance()
	}
}

// Globals.

func (p *parser) parseVariable(message string) int {
	p.consume(token.Ident, message)
	return p.identifierConstant(p.previous)
}

func (p *parser) identifierConstant(name token.Token) int {
	return p.chunk.AddConstant(value.FromObj(p.heap.CopyString(name.Literal)))
}

func (p *parser) defineVariable(global int) {
	if !p.chunk.WriteIndexed(OP_DEFINE_GLOBAL, OP_DEFINE_GLOBAL_LONG, global, p.previous.Pos.Line) {
		p.error("Too many globals in one chunk.")
	}
}

// Emission.

func (p *parser) emitByte(b byte) {
	p.chunk.Write(b, p.previous.Pos.Line)
}

func (p *parser) emitBytes(b1, b2 byte) {
	p.emitByte(b1)
	p.emitByte(b2)
}

func (p *parser) emitConstant(v value.Value) {
	if !p.chunk.WriteConstant(v, p.previous.Pos.Line) {
		p.error("Too many constants in one chunk.")
	}
}

// Error reporting.

func (p *parser) error(message string) {
	p.errorAt(p.previous, message)
}

func (p *parser) errorAtCurrent(message string) {
	p.errorAt(p.current, message)
}

func (p *parser) errorAt(tok token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true

	d := Diagnostic{Line: tok.Pos.Line, Message: message}
	switch tok.Type {
	case token.EOF:
		d.Where = " at end"
	case token.Illegal:
	default:
		d.Where = " at '" + lexeme(tok) + "'"
	}
	p.diagnostics = append(p.diagnostics, d)
}

// lexeme returns the source text of tok. String literals carry their
// contents without quotes.
func lexeme(tok token.Token) string {
	if tok.Type == token.String {
		return `"` + tok.Literal + `"`
	}
	return tok.Literal
}
