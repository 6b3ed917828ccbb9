package vm

import (
	"fmt"
	"io"

	"github.com/xirelogy/go-lox/internal/bytecode"
)

// TraceWriter returns a hook that prints the stack followed by the
// disassembled instruction before each dispatch.
func TraceWriter(w io.Writer) TraceHook {
	dis := bytecode.NewDisassembler(w)
	return func(info TraceInfo) {
		fmt.Fprint(w, "          ")
		for _, v := range info.Stack {
			fmt.Fprintf(w, "[ %s ]", v.String())
		}
		fmt.Fprintln(w)
		if _, err := dis.Instruction(info.Chunk, info.IP); err != nil {
			fmt.Fprintf(w, "%04d <%v>\n", info.IP, err)
		}
	}
}
