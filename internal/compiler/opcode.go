package compiler

import "github.com/xirelogy/go-lox/internal/bytecode"

const (
	OP_CONSTANT           = bytecode.OP_CONSTANT
	OP_CONSTANT_LONG      = bytecode.OP_CONSTANT_LONG
	OP_NIL                = bytecode.OP_NIL
	OP_TRUE               = bytecode.OP_TRUE
	OP_FALSE              = bytecode.OP_FALSE
	OP_POP                = bytecode.OP_POP
	OP_GET_GLOBAL         = bytecode.OP_GET_GLOBAL
	OP_GET_GLOBAL_LONG    = bytecode.OP_GET_GLOBAL_LONG
	OP_DEFINE_GLOBAL      = bytecode.OP_DEFINE_GLOBAL
	OP_DEFINE_GLOBAL_LONG = bytecode.OP_DEFINE_GLOBAL_LONG
	OP_SET_GLOBAL         = bytecode.OP_SET_GLOBAL
	OP_SET_GLOBAL_LONG    = bytecode.OP_SET_GLOBAL_LONG
	OP_EQUAL              = bytecode.OP_EQUAL
	OP_GREATER            = bytecode.OP_GREATER
	OP_LESS               = bytecode.OP_LESS
	OP_ADD                = bytecode.OP_ADD
	OP_SUBTRACT           = bytecode.OP_SUBTRACT
	OP_MULTIPLY           = bytecode.OP_MULTIPLY
	OP_DIVIDE             = bytecode.OP_DIVIDE
	OP_NOT                = bytecode.OP_NOT
	OP_NEGATE             = bytecode.OP_NEGATE
	OP_PRINT              = bytecode.OP_PRINT
	OP_RETURN             = bytecode.OP_RETURN
)
