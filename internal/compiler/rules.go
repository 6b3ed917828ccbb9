package compiler

import (
	"errors"
	"strconv"

	"github.com/xirelogy/go-lox/internal/token"
	"github.com/xirelogy/go-lox/internal/value"
)

type precedence int

const (
	precNone precedence = iota
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

type handlerKind int

const (
	handlerNone handlerKind = iota
	handlerGrouping
	handlerUnary
	handlerBinary
	handlerNumber
	handlerString
	handlerLiteral
	handlerVariable
)

type rule struct {
	prefix     handlerKind
	infix      handlerKind
	precedence precedence
}

// Tokens missing from the table have no handlers and precNone, which ends
// any infix loop.
var rules = map[token.Type]rule{
	token.LParen:       {handlerGrouping, handlerNone, precNone},
	token.Minus:        {handlerUnary, handlerBinary, precTerm},
	token.Plus:         {handlerNone, handlerBinary, precTerm},
	token.Slash:        {handlerNone, handlerBinary, precFactor},
	token.Star:         {handlerNone, handlerBinary, precFactor},
	token.Bang:         {handlerUnary, handlerNone, precNone},
	token.NotEqual:     {handlerNone, handlerBinary, precEquality},
	token.Equal:        {handlerNone, handlerBinary, precEquality},
	token.Greater:      {handlerNone, handlerBinary, precComparison},
	token.GreaterEqual: {handlerNone, handlerBinary, precComparison},
	token.Less:         {handlerNone, handlerBinary, precComparison},
	token.LessEqual:    {handlerNone, handlerBinary, precComparison},
	token.Ident:        {handlerVariable, handlerNone, precNone},
	token.String:       {handlerString, handlerNone, precNone},
	token.Number:       {handlerNumber, handlerNone, precNone},
	token.False:        {handlerLiteral, handlerNone, precNone},
	token.Nil:          {handlerLiteral, handlerNone, precNone},
	token.True:         {handlerLiteral, handlerNone, precNone},
}

func getRule(t token.Type) rule {
	return rules[t]
}

func (p *parser) expression() {
	p.parsePrecedence(precAssignment)
}

// maxNesting bounds how deeply parsePrecedence may recurse.
const maxNesting = 10000

func (p *parser) parsePrecedence(prec precedence) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		p.error("Expression nesting too deep.")
		return
	}

	p.advance()
	prefix := getRule(p.previous.Type).prefix
	if prefix == handlerNone {
		p.error("Expect expression.")
		return
	}

	canAssign := prec <= precAssignment
	p.dispatch(prefix, canAssign)

	for prec <= getRule(p.current.Type).precedence {
		p.advance()
		p.dispatch(getRule(p.previous.Type).infix, canAssign)
	}

	if canAssign && p.match(token.Assign) {
		p.error("Invalid assignment target.")
		p.expression()
	}
}

func (p *parser) dispatch(kind handlerKind, canAssign bool) {
	switch kind {
	case handlerGrouping:
		p.grouping()
	case handlerUnary:
		p.unary()
	case handlerBinary:
		p.binary()
	case handlerNumber:
		p.number()
	case handlerString:
		p.str()
	case handlerLiteral:
		p.literal()
	case handlerVariable:
		p.variable(canAssign)
	}
}

func (p *parser) grouping() {
	p.expression()
	p.consume(token.RParen, "Expect ')' after expression.")
}

func (p *parser) unary() {
	op := p.previous.Type
	p.parsePrecedence(precUnary)

	switch op {
	case token.Minus:
		p.emitByte(OP_NEGATE)
	case token.Bang:
		p.emitByte(OP_NOT)
	}
}

func (p *parser) binary() {
	op := p.previous.Type
	p.parsePrecedence(getRule(op).precedence + 1)

	switch op {
	case token.NotEqual:
		p.emitBytes(OP_EQUAL, OP_NOT)
	case token.Equal:
		p.emitByte(OP_EQUAL)
	case token.Greater:
		p.emitByte(OP_GREATER)
	case token.GreaterEqual:
		p.emitBytes(OP_LESS, OP_NOT)
	case token.Less:
		p.emitByte(OP_LESS)
	case token.LessEqual:
		p.emitBytes(OP_GREATER, OP_NOT)
	case token.Plus:
		p.emitByte(OP_ADD)
	case token.Minus:
		p.emitByte(OP_SUBTRACT)
	case token.Star:
		p.emitByte(OP_MULTIPLY)
	case token.Slash:
		p.emitByte(OP_DIVIDE)
	}
}

func (p *parser) number() {
	// Out-of-range literals become ±Inf.
	n, err := strconv.ParseFloat(p.previous.Literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		p.error("Invalid number literal.")
		return
	}
	p.emitConstant(value.Number(n))
}

func (p *parser) str() {
	p.emitConstant(value.FromObj(p.heap.CopyString(p.previous.Literal)))
}

func (p *parser) literal() {
	switch p.previous.Type {
	case token.False:
		p.emitByte(OP_FALSE)
	case token.Nil:
		p.emitByte(OP_NIL)
	case token.True:
		p.emitByte(OP_TRUE)
	}
}

func (p *parser) variable(canAssign bool) {
	p.namedVariable(p.previous, canAssign)
}

func (p *parser) namedVariable(name token.Token, canAssign bool) {
	arg := p.identifierConstant(name)

	op, longOp := OP_GET_GLOBAL, OP_GET_GLOBAL_LONG
	if canAssign && p.match(token.Assign) {
		p.expression()
		op, longOp = OP_SET_GLOBAL, OP_SET_GLOBAL_LONG
	}
	if !p.chunk.WriteIndexed(op, longOp, arg, p.previous.Pos.Line) {
		p.error("Too many globals in one chunk.")
	}
}
