package lox

import (
	"github.com/xirelogy/go-lox/internal/compiler"
	"github.com/xirelogy/go-lox/internal/vm"
)

// CompileError lists every diagnostic reported for one source text.
type CompileError = compiler.Error

// Diagnostic is a single compile error: "[line N] Error at 'x': message".
type Diagnostic = compiler.Diagnostic

// RuntimeError is an execution failure with the line of the faulting
// instruction.
type RuntimeError = vm.RuntimeError

var (
	ErrStackOverflow    = vm.ErrStackOverflow
	ErrInstructionLimit = vm.ErrInstructionLimit
)
