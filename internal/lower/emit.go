package lower

import (
	"fmt"

	"openfxc/internal/ir"
)

// startBlock appends a fresh block and makes it current.
func (l *lowerer) startBlock(id string) *ir.Block {
	b := &ir.Block{ID: id}
	l.fn.Blocks = append(l.fn.Blocks, b)
	l.cur = b
	return b
}

// emit appends an instruction to the current block. Instructions after
// a terminator would be malformed, so a terminated block swallows them.
func (l *lowerer) emit(in *ir.Instr) {
	if l.cur.Terminated() {
		return
	}
	l.cur.Instrs = append(l.cur.Instrs, in)
}

// newLabel allocates a fresh block label from the per-function counter.
func (l *lowerer) newLabel(prefix string) string {
	l.labelSeq++
	return fmt.Sprintf("%s%d", prefix, l.labelSeq)
}

// newTemp allocates a temp value of the given type.
func (l *lowerer) newTemp(typ string) ir.ValueID {
	if typ == "" {
		typ = "unknown"
	}
	v := l.module.AddValue(&ir.Value{ID: l.alloc.Next(), Type: typ, Kind: ir.ValueTemp})
	return v.ID
}

// undefValue allocates an Undef value of the given type.
func (l *lowerer) undefValue(typ string) ir.ValueID {
	if typ == "" {
		typ = "unknown"
	}
	v := l.module.AddValue(&ir.Value{ID: l.alloc.Next(), Type: typ, Kind: ir.ValueUndef})
	return v.ID
}

// constValue allocates a constant value with the given literal text.
func (l *lowerer) constValue(text, typ string) ir.ValueID {
	if typ == "" {
		typ = "unknown"
	}
	v := l.module.AddValue(&ir.Value{ID: l.alloc.Next(), Type: typ, Kind: ir.ValueConstant, Name: text})
	return v.ID
}

// branchTo emits an unconditional branch, terminating the current
// block.
func (l *lowerer) branchTo(target string) {
	l.emit(&ir.Instr{Op: ir.OpBranch, Targets: &ir.BranchTargets{Then: target}})
}
