// Package lox is an embeddable interpreter for a small Lox dialect: a
// single-pass compiler to bytecode and a stack VM that runs it.
package lox

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/xirelogy/go-lox/config"
	"github.com/xirelogy/go-lox/internal/bytecode"
	"github.com/xirelogy/go-lox/internal/compiler"
	"github.com/xirelogy/go-lox/internal/value"
	"github.com/xirelogy/go-lox/internal/vm"
)

var log = commonlog.GetLogger("lox")

// InterpretResult is the outcome of Interpret.
type InterpretResult int

const (
	InterpretOK InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

func (r InterpretResult) String() string {
	switch r {
	case InterpretOK:
		return "ok"
	case InterpretCompileError:
		return "compile error"
	case InterpretRuntimeError:
		return "runtime error"
	default:
		return fmt.Sprintf("InterpretResult(%d)", int(r))
	}
}

// ErrBusy is returned when a VM is used while another call is running on it.
var ErrBusy = errors.New("VM is busy; concurrent use not allowed")

// VM compiles and runs source texts. Globals and interned strings persist
// across Interpret calls, so a REPL can feed it one line at a time.
type VM struct {
	core *vm.VM
	id   uuid.UUID

	out       io.Writer
	errOut    io.Writer
	printCode io.Writer

	mu   sync.Mutex
	busy bool
}

// NewVM constructs a VM that prints to stdout and reports errors to stderr.
func NewVM() *VM {
	vmc := &VM{
		core:   vm.New(),
		id:     uuid.New(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	log.Debugf("vm %s: created", vmc.id)
	return vmc
}

// ID identifies the VM in log lines.
func (vmc *VM) ID() string {
	return vmc.id.String()
}

// Configure applies limits and debug switches from cfg. Debug output goes to
// the current output writer.
func (vmc *VM) Configure(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	vmc.SetStackLimit(cfg.VM.StackLimit)
	vmc.SetInstructionLimit(cfg.VM.InstructionLimit)
	if cfg.Debug.Trace {
		vmc.SetTraceOutput(vmc.out)
	}
	if cfg.Debug.PrintCode {
		vmc.SetPrintCode(vmc.out)
	}
	return nil
}

// SetOutput redirects print statements.
func (vmc *VM) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	vmc.out = w
	vmc.core.SetOutput(w)
}

// SetErrorOutput redirects compile and runtime error reports.
func (vmc *VM) SetErrorOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	vmc.errOut = w
}

// SetPrintCode disassembles every successfully compiled chunk to w before it
// runs (nil to disable).
func (vmc *VM) SetPrintCode(w io.Writer) {
	vmc.printCode = w
}

// SetStackLimit caps the value stack depth (values below 1 restore the default).
func (vmc *VM) SetStackLimit(n int) {
	vmc.core.SetStackLimit(n)
}

// SetInstructionLimit caps the number of instructions a single Interpret may execute (0 for unlimited).
func (vmc *VM) SetInstructionLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	vmc.core.SetInstructionLimit(limit)
}

// Duplicate clones the VM configuration and global state into a new instance.
// The duplicate has its own ID and no in-flight execution state.
func (vmc *VM) Duplicate() (*VM, error) {
	if err := vmc.acquire(); err != nil {
		return nil, err
	}
	defer vmc.release()

	dup := &VM{
		core:      vmc.core.Duplicate(),
		id:        uuid.New(),
		out:       vmc.out,
		errOut:    vmc.errOut,
		printCode: vmc.printCode,
	}
	log.Debugf("vm %s: duplicated as %s", vmc.id, dup.id)
	return dup, nil
}

// Global returns the printed form of a global variable.
func (vmc *VM) Global(name string) (string, bool) {
	v, ok := vmc.core.Global(name)
	if !ok {
		return "", false
	}
	return v.String(), true
}

// GlobalType returns the type name of a global variable.
func (vmc *VM) GlobalType(name string) (string, bool) {
	v, ok := vmc.core.Global(name)
	if !ok {
		return "", false
	}
	return value.TypeName(v), true
}

// GlobalNames returns the defined global names in sorted order.
func (vmc *VM) GlobalNames() []string {
	return vmc.core.GlobalNames()
}

// Interpret compiles and runs source. Compile diagnostics and runtime errors
// are written to the error output and also returned, as *CompileError and
// *RuntimeError respectively. When the VM is busy nothing runs and ErrBusy
// comes back with InterpretOK, so callers check err before the result.
func (vmc *VM) Interpret(source string) (InterpretResult, error) {
	if err := vmc.acquire(); err != nil {
		return InterpretOK, err
	}
	defer vmc.release()

	chunk, err := compiler.Compile(source, vmc.core.Heap())
	if err != nil {
		var cerr *CompileError
		if errors.As(err, &cerr) {
			for _, d := range cerr.Diagnostics {
				fmt.Fprintln(vmc.errOut, d.String())
			}
			log.Debugf("vm %s: compile failed with %d diagnostic(s)", vmc.id, len(cerr.Diagnostics))
		}
		return InterpretCompileError, err
	}
	log.Debugf("vm %s: compiled %d bytes, %d constants", vmc.id, chunk.Len(), len(chunk.Constants))

	if vmc.printCode != nil {
		if err := bytecode.NewDisassembler(vmc.printCode).DisassembleChunk(chunk, "code"); err != nil {
			log.Errorf("vm %s: disassemble: %s", vmc.id, err)
		}
	}

	if err := vmc.core.Run(chunk); err != nil {
		fmt.Fprintln(vmc.errOut, err.Error())
		var rerr *RuntimeError
		if errors.As(err, &rerr) {
			log.Debugf("vm %s: runtime error at ip %d: %s", vmc.id, rerr.IP, rerr.Message)
		}
		return InterpretRuntimeError, err
	}
	return InterpretOK, nil
}

// InterpretFile reads path and interprets its contents. A read failure is
// returned as-is, in which case the result is meaningless.
func (vmc *VM) InterpretFile(path string) (InterpretResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InterpretOK, err
	}
	log.Debugf("vm %s: running %s", vmc.id, path)
	return vmc.Interpret(string(data))
}

// Free releases every global and heap object. The VM stays usable.
func (vmc *VM) Free() error {
	if err := vmc.acquire(); err != nil {
		return err
	}
	defer vmc.release()
	vmc.core.Free()
	return nil
}

func (vmc *VM) acquire() error {
	vmc.mu.Lock()
	defer vmc.mu.Unlock()
	if vmc.busy {
		return ErrBusy
	}
	vmc.busy = true
	return nil
}

func (vmc *VM) release() {
	vmc.mu.Lock()
	vmc.busy = false
	vmc.mu.Unlock()
}
