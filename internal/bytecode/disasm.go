package bytecode

import (
	"fmt"
	"io"
)

// Disassembler formats bytecode as a readable assembly-style dump.
type Disassembler struct {
	w io.Writer
}

// NewDisassembler constructs a disassembler that writes to w.
func NewDisassembler(w io.Writer) *Disassembler {
	return &Disassembler{w: w}
}

// DisassembleChunk prints a header followed by every instruction of chunk.
func (d *Disassembler) DisassembleChunk(chunk *Chunk, label string) error {
	if chunk == nil {
		return fmt.Errorf("nil chunk")
	}
	fmt.Fprintf(d.w, "== %s ==\n", label)
	for offset := 0; offset < len(chunk.Code); {
		next, err := d.Instruction(chunk, offset)
		if err != nil {
			return err
		}
		offset = next
	}
	return nil
}

// Instruction prints the instruction at offset and returns the offset of the
// one after it.
func (d *Disassembler) Instruction(chunk *Chunk, offset int) (int, error) {
	if offset < 0 || offset >= len(chunk.Code) {
		return offset, fmt.Errorf("offset %d out of range", offset)
	}

	fmt.Fprintf(d.w, "%04d ", offset)
	line := chunk.LineForOffset(offset)
	if offset > 0 && line == chunk.LineForOffset(offset-1) {
		fmt.Fprint(d.w, "   | ")
	} else {
		fmt.Fprintf(d.w, "%4d ", line)
	}

	op := chunk.Code[offset]
	name := OpName(op)
	switch OperandWidth(op) {
	case -1:
		fmt.Fprintf(d.w, "Unknown opcode %d\n", op)
		return offset + 1, nil
	case 0:
		fmt.Fprintln(d.w, name)
		return offset + 1, nil
	}

	idx, ok := chunk.ReadIndex(offset)
	if !ok {
		fmt.Fprintln(d.w, name)
		return offset, fmt.Errorf("unexpected end of bytecode at offset %d", offset)
	}
	fmt.Fprintf(d.w, "%-16s %4d '%s'\n", name, idx, formatConstRef(chunk, idx))
	return offset + 1 + OperandWidth(op), nil
}

func formatConstRef(chunk *Chunk, idx int) string {
	if idx >= len(chunk.Constants) {
		return "<invalid>"
	}
	return chunk.Constants[idx].String()
}
