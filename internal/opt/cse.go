package opt

import (
	"fmt"
	"strings"

	"openfxc/internal/ir"
)

// runCSE merges identical pure computations within a block. The map is
// keyed by (op, type, tag, operand list) and cleared at every
// side-effect barrier; it never crosses block boundaries.
func runCSE(m *ir.Module) {
	for _, f := range m.Functions {
		for _, b := range f.Blocks {
			cseBlock(b)
		}
	}
}

func cseBlock(b *ir.Block) {
	avail := make(map[string]ir.ValueID)
	for _, in := range b.Instrs {
		if in.SideEffectful() {
			avail = make(map[string]ir.ValueID)
			continue
		}
		if !in.Pure() || in.Result == ir.NoValue || in.Terminator() {
			continue
		}
		key := exprKey(in)
		if prev, ok := avail[key]; ok {
			rewriteToAssign(in, prev)
			continue
		}
		avail[key] = in.Result
	}
}

func exprKey(in *ir.Instr) string {
	var sb strings.Builder
	sb.WriteString(in.OpName())
	sb.WriteByte('|')
	sb.WriteString(in.Type)
	sb.WriteByte('|')
	sb.WriteString(in.Tag())
	for _, op := range in.Operands {
		fmt.Fprintf(&sb, "|%d", op)
	}
	return sb.String()
}
