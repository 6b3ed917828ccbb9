package bytecode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xirelogy/go-lox/internal/value"
)

func TestDisassembleChunk(t *testing.T) {
	chunk := NewChunk()
	chunk.WriteConstant(value.Number(1.2), 123)
	chunk.WriteConstant(value.Number(3), 123)
	chunk.Write(OP_ADD, 123)
	chunk.Write(OP_NEGATE, 124)
	chunk.Write(OP_RETURN, 124)

	var buf bytes.Buffer
	require.NoError(t, NewDisassembler(&buf).DisassembleChunk(chunk, "test chunk"))

	expected := "== test chunk ==\n" +
		"0000  123 OP_CONSTANT         0 '1.2'\n" +
		"0002    | OP_CONSTANT         1 '3'\n" +
		"0004    | OP_ADD\n" +
		"0005  124 OP_NEGATE\n" +
		"0006    | OP_RETURN\n"
	assert.Equal(t, expected, buf.String())
}

func TestDisassembleGlobalsShowNames(t *testing.T) {
	h := value.NewHeap()
	chunk := NewChunk()
	idx := chunk.AddConstant(value.FromObj(h.CopyString("answer")))
	chunk.WriteIndexed(OP_GET_GLOBAL, OP_GET_GLOBAL_LONG, idx, 1)

	var buf bytes.Buffer
	next, err := NewDisassembler(&buf).Instruction(chunk, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, next)
	assert.Equal(t, "0000    1 OP_GET_GLOBAL       0 'answer'\n", buf.String())
}

func TestDisassembleLongConstant(t *testing.T) {
	chunk := NewChunk()
	for i := 0; i < 300; i++ {
		require.True(t, chunk.WriteConstant(value.Number(float64(i)), 1))
	}

	var buf bytes.Buffer
	next, err := NewDisassembler(&buf).Instruction(chunk, 255*2)
	require.NoError(t, err)
	assert.Equal(t, 255*2+3, next)
	assert.Equal(t, "0510    | OP_CONSTANT_LONG  255 '255'\n", buf.String())
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	chunk := NewChunk()
	chunk.Write(0xfe, 7)

	var buf bytes.Buffer
	require.NoError(t, NewDisassembler(&buf).DisassembleChunk(chunk, "bad"))
	assert.Equal(t, "== bad ==\n0000    7 Unknown opcode 254\n", buf.String())
}

func TestDisassembleTruncatedOperand(t *testing.T) {
	chunk := NewChunk()
	chunk.Write(OP_CONSTANT_LONG, 1)
	chunk.Write(0x01, 1)

	var buf bytes.Buffer
	err := NewDisassembler(&buf).DisassembleChunk(chunk, "cut")
	assert.Error(t, err)
}

func TestDisassembleDoesNotMutate(t *testing.T) {
	chunk := NewChunk()
	chunk.WriteConstant(value.Number(1), 1)
	chunk.Write(OP_PRINT, 2)
	before := append([]byte(nil), chunk.Code...)
	lines, runs := chunk.LineRuns()

	var buf bytes.Buffer
	require.NoError(t, NewDisassembler(&buf).DisassembleChunk(chunk, "x"))

	assert.Equal(t, before, chunk.Code)
	afterLines, afterRuns := chunk.LineRuns()
	assert.Equal(t, lines, afterLines)
	assert.Equal(t, runs, afterRuns)
}
