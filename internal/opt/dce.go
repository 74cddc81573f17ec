package opt

import (
	"openfxc/internal/ir"
)

// runDCE deletes pure instructions whose results nothing uses. Use
// counts are module-wide; blocks are walked in reverse so a deleted
// use frees its producers within the same sweep. Side-effectful
// instructions and terminators always survive.
func runDCE(m *ir.Module) {
	uses := make(map[ir.ValueID]int)
	for _, f := range m.Functions {
		for _, b := range f.Blocks {
			for _, in := range b.Instrs {
				for _, op := range in.Operands {
					uses[op]++
				}
			}
		}
	}

	for _, f := range m.Functions {
		for bi := len(f.Blocks) - 1; bi >= 0; bi-- {
			b := f.Blocks[bi]
			kept := make([]*ir.Instr, 0, len(b.Instrs))
			for ii := len(b.Instrs) - 1; ii >= 0; ii-- {
				in := b.Instrs[ii]
				if deletable(in, uses) {
					for _, op := range in.Operands {
						uses[op]--
					}
					continue
				}
				kept = append(kept, in)
			}
			// kept was built back to front
			for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
				kept[i], kept[j] = kept[j], kept[i]
			}
			b.Instrs = kept
		}
	}
}

func deletable(in *ir.Instr, uses map[ir.ValueID]int) bool {
	if in.Terminator() || !in.Pure() || in.Result == ir.NoValue {
		return false
	}
	return uses[in.Result] == 0
}
