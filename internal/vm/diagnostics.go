package vm

import (
	"fmt"

	"github.com/xirelogy/go-lox/internal/bytecode"
	"github.com/xirelogy/go-lox/internal/value"
)

// TraceInfo describes a single instruction dispatch for debugging/tracing.
// Stack is a snapshot taken before the instruction executes.
type TraceInfo struct {
	Op    byte
	IP    int
	Line  int
	Stack []value.Value
	Chunk *bytecode.Chunk
}

// TraceHook observes instruction dispatch for debugging/profiling.
type TraceHook func(TraceInfo)

// RuntimeError reports a failure while executing a chunk. IP is the offset
// of the faulting instruction's opcode.
type RuntimeError struct {
	Message string
	Line    int
	IP      int
	Cause   error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script", e.Message, e.Line)
}

// Unwrap exposes the original error, if any.
func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

// fail builds a runtime error for the instruction at offset and resets the
// stack.
func (vm *VM) fail(offset int, cause error, format string, args ...interface{}) error {
	line := 0
	if vm.chunk != nil {
		line = vm.chunk.LineForOffset(offset)
	}
	err := &RuntimeError{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		IP:      offset,
		Cause:   cause,
	}
	vm.stack = vm.stack[:0]
	return err
}

func (vm *VM) trace(offset int, op byte) {
	if vm.traceHook == nil {
		return
	}
	stack := make([]value.Value, len(vm.stack))
	copy(stack, vm.stack)
	vm.traceHook(TraceInfo{
		Op:    op,
		IP:    offset,
		Line:  vm.chunk.LineForOffset(offset),
		Stack: stack,
		Chunk: vm.chunk,
	})
}
