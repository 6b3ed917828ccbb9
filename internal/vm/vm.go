package vm

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xirelogy/go-lox/internal/bytecode"
	"github.com/xirelogy/go-lox/internal/value"
)

var (
	// ErrStackOverflow is the cause of a runtime error raised when a push
	// would exceed the stack limit.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrInstructionLimit is the cause of a runtime error raised when a run
	// executes more instructions than its limit allows.
	ErrInstructionLimit = errors.New("instruction limit exceeded")
	// ErrMalformedChunk is the cause of a runtime error raised for bytecode
	// the compiler would never produce.
	ErrMalformedChunk = errors.New("malformed chunk")
)

// DefaultStackLimit is the value stack depth of a new VM.
const DefaultStackLimit = 256

// VM is a stack-based interpreter for one chunk at a time. Globals and the
// heap outlive a run, so a REPL can feed successive chunks to one VM.
type VM struct {
	chunk *bytecode.Chunk
	ip    int
	stack []value.Value

	heap    *value.Heap
	globals *value.Table
	out     io.Writer

	maxStack  int
	traceHook TraceHook
	instLimit int
	instCount int
}

// New constructs an empty VM that prints to stdout.
func New() *VM {
	return &VM{
		stack:    make([]value.Value, 0, DefaultStackLimit),
		heap:     value.NewHeap(),
		globals:  value.NewTable(),
		out:      os.Stdout,
		maxStack: DefaultStackLimit,
	}
}

// Heap returns the heap owning the VM's strings. Chunks run on this VM must
// be compiled against it.
func (vm *VM) Heap() *value.Heap {
	return vm.heap
}

// SetOutput redirects print statements.
func (vm *VM) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	vm.out = w
}

// SetStackLimit caps the value stack depth (values below 1 restore the default).
func (vm *VM) SetStackLimit(n int) {
	if n < 1 {
		n = DefaultStackLimit
	}
	vm.maxStack = n
}

// SetTraceHook registers a callback for instruction-level tracing.
func (vm *VM) SetTraceHook(h TraceHook) {
	vm.traceHook = h
}

// SetInstructionLimit caps the number of instructions executed per Run (0 for unlimited).
func (vm *VM) SetInstructionLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	vm.instLimit = limit
}

// ResetState clears transient execution state.
func (vm *VM) ResetState() {
	vm.stack = vm.stack[:0]
	vm.chunk = nil
	vm.ip = 0
	vm.instCount = 0
}

// Free drops every global and heap object.
func (vm *VM) Free() {
	vm.ResetState()
	vm.globals = value.NewTable()
	vm.heap.Free()
}

// Run executes chunk from its first byte until OP_RETURN or the end of code.
// A failure is returned as a *RuntimeError and leaves the stack empty.
func (vm *VM) Run(chunk *bytecode.Chunk) error {
	vm.ResetState()
	if chunk == nil {
		return vm.fail(0, ErrMalformedChunk, "Invalid chunk.")
	}
	vm.chunk = chunk
	defer func() { vm.chunk = nil }()

	code := chunk.Code
	for vm.ip < len(code) {
		start := vm.ip
		op := code[start]

		vm.instCount++
		if vm.instLimit > 0 && vm.instCount > vm.instLimit {
			return vm.fail(start, ErrInstructionLimit, "Instruction limit exceeded.")
		}
		vm.trace(start, op)

		width := bytecode.OperandWidth(op)
		if width < 0 {
			return vm.fail(start, ErrMalformedChunk, "Unknown opcode %d.", op)
		}
		if start+width >= len(code) {
			return vm.fail(start, ErrMalformedChunk, "Truncated operand for %s.", bytecode.OpName(op))
		}
		vm.ip = start + 1 + width

		if err := vm.step(start, op); err != nil {
			return err
		}
		if op == bytecode.OP_RETURN {
			return nil
		}
	}
	return nil
}

func (vm *VM) step(start int, op byte) error {
	if need := stackEffect(op); len(vm.stack) < need {
		return vm.fail(start, ErrMalformedChunk, "Stack underflow.")
	}

	switch op {
	case bytecode.OP_CONSTANT, bytecode.OP_CONSTANT_LONG:
		c, err := vm.readConstant(start)
		if err != nil {
			return err
		}
		return vm.push(start, c)
	case bytecode.OP_NIL:
		return vm.push(start, value.Nil())
	case bytecode.OP_TRUE:
		return vm.push(start, value.Bool(true))
	case bytecode.OP_FALSE:
		return vm.push(start, value.Bool(false))
	case bytecode.OP_POP:
		vm.pop()

	case bytecode.OP_GET_GLOBAL, bytecode.OP_GET_GLOBAL_LONG:
		name, err := vm.readName(start)
		if err != nil {
			return err
		}
		v, ok := vm.globals.Get(value.FromObj(name))
		if !ok {
			return vm.fail(start, nil, "Undefined variable '%s'.", name.Chars)
		}
		return vm.push(start, v)
	case bytecode.OP_DEFINE_GLOBAL, bytecode.OP_DEFINE_GLOBAL_LONG:
		name, err := vm.readName(start)
		if err != nil {
			return err
		}
		vm.globals.Set(value.FromObj(name), vm.peek(0))
		vm.pop()
	case bytecode.OP_SET_GLOBAL, bytecode.OP_SET_GLOBAL_LONG:
		name, err := vm.readName(start)
		if err != nil {
			return err
		}
		key := value.FromObj(name)
		if vm.globals.Set(key, vm.peek(0)) {
			vm.globals.Delete(key)
			return vm.fail(start, nil, "Undefined variable '%s'.", name.Chars)
		}

	case bytecode.OP_EQUAL:
		b := vm.pop()
		a := vm.pop()
		vm.stack = append(vm.stack, value.Bool(value.Equal(a, b)))
	case bytecode.OP_GREATER, bytecode.OP_LESS, bytecode.OP_SUBTRACT, bytecode.OP_MULTIPLY, bytecode.OP_DIVIDE:
		if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
			return vm.fail(start, nil, "Operands must be numbers.")
		}
		b := vm.pop().Num
		a := vm.pop().Num
		vm.stack = append(vm.stack, arithmetic(op, a, b))
	case bytecode.OP_ADD:
		b, a := vm.peek(0), vm.peek(1)
		switch {
		case a.IsString() && b.IsString():
			vm.pop()
			vm.pop()
			joined := vm.heap.Concat(a.AsString(), b.AsString())
			vm.stack = append(vm.stack, value.FromObj(joined))
		case a.IsNumber() && b.IsNumber():
			vm.pop()
			vm.pop()
			vm.stack = append(vm.stack, value.Number(a.Num+b.Num))
		default:
			return vm.fail(start, nil, "Operands must be two numbers or two strings.")
		}
	case bytecode.OP_NOT:
		vm.stack = append(vm.stack, value.Bool(value.IsFalsey(vm.pop())))
	case bytecode.OP_NEGATE:
		if !vm.peek(0).IsNumber() {
			return vm.fail(start, nil, "Operand must be a number.")
		}
		vm.stack = append(vm.stack, value.Number(-vm.pop().Num))

	case bytecode.OP_PRINT:
		fmt.Fprintln(vm.out, vm.pop().String())
	case bytecode.OP_RETURN:
	}
	return nil
}

func arithmetic(op byte, a, b float64) value.Value {
	switch op {
	case bytecode.OP_GREATER:
		return value.Bool(a > b)
	case bytecode.OP_LESS:
		return value.Bool(a < b)
	case bytecode.OP_SUBTRACT:
		return value.Number(a - b)
	case bytecode.OP_MULTIPLY:
		return value.Number(a * b)
	default:
		return value.Number(a / b)
	}
}

// stackEffect returns how many values op reads from the stack.
func stackEffect(op byte) int {
	switch op {
	case bytecode.OP_POP, bytecode.OP_NOT, bytecode.OP_NEGATE, bytecode.OP_PRINT,
		bytecode.OP_DEFINE_GLOBAL, bytecode.OP_DEFINE_GLOBAL_LONG,
		bytecode.OP_SET_GLOBAL, bytecode.OP_SET_GLOBAL_LONG:
		return 1
	case bytecode.OP_EQUAL, bytecode.OP_GREATER, bytecode.OP_LESS,
		bytecode.OP_ADD, bytecode.OP_SUBTRACT, bytecode.OP_MULTIPLY, bytecode.OP_DIVIDE:
		return 2
	default:
		return 0
	}
}

func (vm *VM) readConstant(start int) (value.Value, error) {
	idx, ok := vm.chunk.ReadIndex(start)
	if !ok || idx >= len(vm.chunk.Constants) {
		return value.Value{}, vm.fail(start, ErrMalformedChunk, "Constant index out of range.")
	}
	return vm.chunk.Constants[idx], nil
}

func (vm *VM) readName(start int) (*value.ObjString, error) {
	c, err := vm.readConstant(start)
	if err != nil {
		return nil, err
	}
	name := c.AsString()
	if name == nil {
		return nil, vm.fail(start, ErrMalformedChunk, "Global name must be a string.")
	}
	return name, nil
}

func (vm *VM) push(start int, v value.Value) error {
	if len(vm.stack) >= vm.maxStack {
		return vm.fail(start, ErrStackOverflow, "Stack overflow.")
	}
	vm.stack = append(vm.stack, v)
	return nil
}

func (vm *VM) pop() value.Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[len(vm.stack)-1-distance]
}
