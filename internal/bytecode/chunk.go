package bytecode

import "github.com/xirelogy/go-lox/internal/value"

// Chunk is a compiled bytecode sequence with its constant pool. Source lines
// are run-length encoded: lines[i] repeats for runs[i] consecutive bytes.
type Chunk struct {
	Code      []byte
	Constants []value.Value

	lines []int
	runs  []int
}

// NewChunk returns an empty chunk.
func NewChunk() *Chunk {
	return &Chunk{}
}

// Len returns the number of code bytes.
func (c *Chunk) Len() int {
	return len(c.Code)
}

// Write appends one byte attributed to line.
func (c *Chunk) Write(b byte, line int) {
	if len(c.Code) == cap(c.Code) {
		c.Code = grow(c.Code)
	}
	c.Code = append(c.Code, b)

	if n := len(c.lines); n > 0 && c.lines[n-1] == line {
		c.runs[n-1]++
		return
	}
	c.lines = append(c.lines, line)
	c.runs = append(c.runs, 1)
}

func grow(code []byte) []byte {
	capacity := cap(code) * 2
	if capacity < 8 {
		capacity = 8
	}
	next := make([]byte, len(code), capacity)
	copy(next, code)
	return next
}

// AddConstant appends v to the pool and returns its index. Equal values are
// not deduplicated.
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// WriteConstant adds v to the pool and emits the instruction that loads it,
// choosing the short or long form by index. It returns false, leaving the
// chunk untouched, when the pool has no addressable slot left.
func (c *Chunk) WriteConstant(v value.Value, line int) bool {
	idx := len(c.Constants)
	if idx > MaxLongIndex {
		return false
	}
	c.AddConstant(v)
	return c.WriteIndexed(OP_CONSTANT, OP_CONSTANT_LONG, idx, line)
}

// WriteIndexed emits shortOp with a one-byte index when idx fits, else longOp
// with a little-endian two-byte index. It returns false when idx fits
// neither.
func (c *Chunk) WriteIndexed(shortOp, longOp byte, idx, line int) bool {
	switch {
	case idx < 0:
		return false
	case idx <= MaxShortIndex:
		c.Write(shortOp, line)
		c.Write(byte(idx), line)
	case idx <= MaxLongIndex:
		c.Write(longOp, line)
		c.Write(byte(idx&0xff), line)
		c.Write(byte(idx>>8), line)
	default:
		return false
	}
	return true
}

// ReadIndex decodes the operand of the instruction at offset. It returns
// false when op is not indexed or the operand runs past the end of code.
func (c *Chunk) ReadIndex(offset int) (int, bool) {
	if offset < 0 || offset >= len(c.Code) {
		return 0, false
	}
	width := OperandWidth(c.Code[offset])
	if width < 1 || offset+width >= len(c.Code) {
		return 0, false
	}
	if width == 1 {
		return int(c.Code[offset+1]), true
	}
	return int(c.Code[offset+1]) | int(c.Code[offset+2])<<8, true
}

// LineForOffset returns the source line of the byte at offset. Offsets past
// the end map to the last recorded line; an empty chunk reports 0.
func (c *Chunk) LineForOffset(offset int) int {
	if len(c.lines) == 0 {
		return 0
	}
	end := 0
	for i, run := range c.runs {
		end += run
		if offset < end {
			return c.lines[i]
		}
	}
	return c.lines[len(c.lines)-1]
}

// LineRuns returns copies of the run-length line table.
func (c *Chunk) LineRuns() (lines, runs []int) {
	lines = append([]int(nil), c.lines...)
	runs = append([]int(nil), c.runs...)
	return lines, runs
}
