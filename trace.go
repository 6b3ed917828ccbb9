package lox

import (
	"io"

	"github.com/xirelogy/go-lox/internal/bytecode"
	"github.com/xirelogy/go-lox/internal/vm"
)

// TraceInfo captures one execution step for debug hooks.
type TraceInfo struct {
	Op    string
	IP    int
	Line  int
	Stack []string
}

// TraceHook observes instruction dispatch for debugging/profiling.
type TraceHook func(TraceInfo)

// SetTraceHook attaches a debug hook that observes instruction dispatch.
func (vmc *VM) SetTraceHook(h TraceHook) {
	if h == nil {
		vmc.core.SetTraceHook(nil)
		return
	}
	vmc.core.SetTraceHook(func(info vm.TraceInfo) {
		stack := make([]string, len(info.Stack))
		for i, v := range info.Stack {
			stack[i] = v.String()
		}
		h(TraceInfo{
			Op:    bytecode.OpName(info.Op),
			IP:    info.IP,
			Line:  info.Line,
			Stack: stack,
		})
	})
}

// SetTraceOutput prints the stack and each instruction to w as it executes
// (nil to disable).
func (vmc *VM) SetTraceOutput(w io.Writer) {
	if w == nil {
		vmc.core.SetTraceHook(nil)
		return
	}
	vmc.core.SetTraceHook(vm.TraceWriter(w))
}
