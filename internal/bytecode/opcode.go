package bytecode

// Opcodes. Operand widths are listed by OperandWidth; every multi-byte
// operand is a little-endian index.
const (
	OP_CONSTANT byte = iota
	OP_CONSTANT_LONG
	OP_NIL
	OP_TRUE
	OP_FALSE
	OP_POP

	OP_GET_GLOBAL
	OP_GET_GLOBAL_LONG
	OP_DEFINE_GLOBAL
	OP_DEFINE_GLOBAL_LONG
	OP_SET_GLOBAL
	OP_SET_GLOBAL_LONG

	OP_EQUAL
	OP_GREATER
	OP_LESS

	OP_ADD
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_NOT
	OP_NEGATE

	OP_PRINT
	OP_RETURN
)

// MaxShortIndex is the largest index a one-byte operand can address, and
// MaxLongIndex the largest for a two-byte operand. Both are exclusive of the
// all-ones value.
const (
	MaxShortIndex = 254
	MaxLongIndex  = 65534
)

var opNames = [...]string{
	OP_CONSTANT:           "OP_CONSTANT",
	OP_CONSTANT_LONG:      "OP_CONSTANT_LONG",
	OP_NIL:                "OP_NIL",
	OP_TRUE:               "OP_TRUE",
	OP_FALSE:              "OP_FALSE",
	OP_POP:                "OP_POP",
	OP_GET_GLOBAL:         "OP_GET_GLOBAL",
	OP_GET_GLOBAL_LONG:    "OP_GET_GLOBAL_LONG",
	OP_DEFINE_GLOBAL:      "OP_DEFINE_GLOBAL",
	OP_DEFINE_GLOBAL_LONG: "OP_DEFINE_GLOBAL_LONG",
	OP_SET_GLOBAL:         "OP_SET_GLOBAL",
	OP_SET_GLOBAL_LONG:    "OP_SET_GLOBAL_LONG",
	OP_EQUAL:              "OP_EQUAL",
	OP_GREATER:            "OP_GREATER",
	OP_LESS:               "OP_LESS",
	OP_ADD:                "OP_ADD",
	OP_SUBTRACT:           "OP_SUBTRACT",
	OP_MULTIPLY:           "OP_MULTIPLY",
	OP_DIVIDE:             "OP_DIVIDE",
	OP_NOT:                "OP_NOT",
	OP_NEGATE:             "OP_NEGATE",
	OP_PRINT:              "OP_PRINT",
	OP_RETURN:             "OP_RETURN",
}

// OpName returns the mnemonic for op, or "" when op is not an opcode.
func OpName(op byte) string {
	if int(op) >= len(opNames) {
		return ""
	}
	return opNames[op]
}

// OperandWidth returns the number of operand bytes following op, or -1 for
// an unknown opcode.
func OperandWidth(op byte) int {
	switch op {
	case OP_CONSTANT, OP_GET_GLOBAL, OP_DEFINE_GLOBAL, OP_SET_GLOBAL:
		return 1
	case OP_CONSTANT_LONG, OP_GET_GLOBAL_LONG, OP_DEFINE_GLOBAL_LONG, OP_SET_GLOBAL_LONG:
		return 2
	default:
		if OpName(op) == "" {
			return -1
		}
		return 0
	}
}
