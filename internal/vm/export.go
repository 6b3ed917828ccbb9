package vm

import (
	"sort"

	"github.com/xirelogy/go-lox/internal/value"
)

// DefineGlobal binds a value into the global environment.
func (vm *VM) DefineGlobal(name string, v value.Value) {
	vm.globals.Set(value.FromObj(vm.heap.CopyString(name)), v)
}

// Global looks up a global by name.
func (vm *VM) Global(name string) (value.Value, bool) {
	key := vm.heap.Strings().FindString(name, value.HashString(name))
	if key == nil {
		return value.Value{}, false
	}
	return vm.globals.Get(value.FromObj(key))
}

// GlobalNames returns the defined global names in sorted order.
func (vm *VM) GlobalNames() []string {
	names := make([]string, 0, vm.globals.Len())
	vm.globals.Each(func(key, _ value.Value) bool {
		names = append(names, key.AsString().Chars)
		return true
	})
	sort.Strings(names)
	return names
}

// StackDepth reports the number of values currently on the stack.
func (vm *VM) StackDepth() int {
	return len(vm.stack)
}
