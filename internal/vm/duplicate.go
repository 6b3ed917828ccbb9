package vm

// Duplicate returns a new VM with copied globals, interned strings and
// configuration. Execution state is reset in the duplicate. Global values
// are immutable, so the copy shares them with the original.
func (vm *VM) Duplicate() *VM {
	if vm == nil {
		return nil
	}
	dup := New()
	dup.maxStack = vm.maxStack
	dup.traceHook = vm.traceHook
	dup.instLimit = vm.instLimit
	dup.out = vm.out

	dup.heap = vm.heap.Clone()
	dup.globals.AddAll(vm.globals)
	return dup
}
