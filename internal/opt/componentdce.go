package opt

import (
	"math/bits"

	"openfxc/internal/ir"
)

// runComponentDCE computes component-level liveness (bitmasks over the
// x/y/z/w lanes) in one reverse walk per function. Swizzles whose
// results are entirely dead disappear; swizzles with partially dead
// results narrow their result type and trim their lane mask.
func runComponentDCE(m *ir.Module) {
	values := m.ValueIndex()
	for _, f := range m.Functions {
		componentDCEFunc(f, values)
	}
}

func fullMask(values map[ir.ValueID]*ir.Value, id ir.ValueID) uint8 {
	n := 4
	if v := values[id]; v != nil {
		n = v.TypeInfo().LaneCount()
	}
	return uint8(1<<n) - 1
}

func componentDCEFunc(f *ir.Function, values map[ir.ValueID]*ir.Value) {
	live := make(map[ir.ValueID]uint8)

	// Terminator operands anchor liveness: everything they carry is
	// fully used.
	for _, b := range f.Blocks {
		if term := b.Term(); term != nil {
			for _, op := range term.Operands {
				live[op] |= fullMask(values, op)
			}
		}
	}

	for bi := len(f.Blocks) - 1; bi >= 0; bi-- {
		b := f.Blocks[bi]
		kept := make([]*ir.Instr, 0, len(b.Instrs))
		for ii := len(b.Instrs) - 1; ii >= 0; ii-- {
			in := b.Instrs[ii]
			if in.Terminator() {
				kept = append(kept, in)
				continue
			}
			if in.Op == ir.OpSwizzle && in.Result != ir.NoValue && len(in.Operands) == 1 && len(in.Lanes) > 0 {
				if !liveSwizzle(in, live, values) {
					continue // dropped
				}
				kept = append(kept, in)
				continue
			}
			for _, op := range in.Operands {
				live[op] |= fullMask(values, op)
			}
			kept = append(kept, in)
		}
		for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
			kept[i], kept[j] = kept[j], kept[i]
		}
		b.Instrs = kept
	}
}

// liveSwizzle propagates liveness through one swizzle and narrows it
// when only a strict subset of its result lanes is live. Reports false
// when the instruction is entirely dead and may be dropped.
func liveSwizzle(in *ir.Instr, live map[ir.ValueID]uint8, values map[ir.ValueID]*ir.Value) bool {
	width := len(in.Lanes)
	resLive := live[in.Result] & (uint8(1<<width) - 1)
	if resLive == 0 {
		if in.Pure() {
			return false
		}
		resLive = uint8(1<<width) - 1
	}

	var required uint8
	for i, lane := range in.Lanes {
		if resLive&(1<<i) != 0 {
			required |= 1 << lane
		}
	}
	live[in.Operands[0]] |= required

	n := bits.OnesCount8(resLive)
	if n == width {
		return true
	}

	// Narrow: keep only the live lane characters and shrink the result
	// type to the same scalar base with the reduced component count.
	trimmed := make([]ir.Lane, 0, n)
	for i, lane := range in.Lanes {
		if resLive&(1<<i) != 0 {
			trimmed = append(trimmed, lane)
		}
	}
	in.Lanes = trimmed
	narrow := ir.ParseType(in.Type).WithComponents(n)
	in.Type = narrow
	if v := values[in.Result]; v != nil {
		v.Type = narrow
	}
	live[in.Result] = resLive
	return true
}
