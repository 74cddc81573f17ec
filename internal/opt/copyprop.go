package opt

import (
	"maps"

	"openfxc/internal/ir"
)

// runCopyProp is branching-aware copy propagation. Per block it
// computes IN/OUT maps from value id to representative with a worklist
// to fixed point; at a merge only entries every predecessor agrees on
// survive. Assign instructions stay in place for DCE to collect.
func runCopyProp(m *ir.Module) {
	for _, f := range m.Functions {
		propagateFunc(f)
	}
}

type copyMap map[ir.ValueID]ir.ValueID

// find chases the representative chain.
func find(env copyMap, id ir.ValueID) ir.ValueID {
	for {
		rep, ok := env[id]
		if !ok || rep == id {
			return id
		}
		id = rep
	}
}

func propagateFunc(f *ir.Function) {
	cfg := BuildCFG(f)
	n := len(cfg.Blocks)
	if n == 0 {
		return
	}

	ins := make([]copyMap, n)
	outs := make([]copyMap, n)

	work := make([]int, n)
	inWork := make([]bool, n)
	for i := 0; i < n; i++ {
		work[i] = i
		inWork[i] = true
	}
	for len(work) > 0 {
		i := work[0]
		work = work[1:]
		inWork[i] = false

		in := mergePreds(cfg, outs, i)
		out := transfer(cfg.Blocks[i], in)
		ins[i] = in
		if outs[i] != nil && maps.Equal(out, outs[i]) {
			continue
		}
		outs[i] = out
		for _, s := range cfg.Succs[i] {
			if !inWork[s] {
				work = append(work, s)
				inWork[s] = true
			}
		}
	}

	for i, b := range cfg.Blocks {
		rewriteBlock(b, ins[i])
	}
}

// mergePreds intersects predecessor OUT maps: an entry survives only
// when every predecessor carries it with the identical representative.
// Predecessors whose OUT is not yet computed are optimistically treated
// as top and skipped; the worklist revisits this block once they land.
func mergePreds(cfg *CFG, outs []copyMap, i int) copyMap {
	var merged copyMap
	for _, p := range cfg.Preds[i] {
		if outs[p] == nil {
			continue
		}
		if merged == nil {
			merged = maps.Clone(outs[p])
			continue
		}
		for id, rep := range merged {
			if other, ok := outs[p][id]; !ok || other != rep {
				delete(merged, id)
			}
		}
	}
	if merged == nil {
		return copyMap{}
	}
	return merged
}

// transfer applies one block's effect to a copy map: a one-operand
// Assign binds its result to the operand's representative, any other
// defining instruction kills its result.
func transfer(b *ir.Block, in copyMap) copyMap {
	env := maps.Clone(in)
	for _, instr := range b.Instrs {
		applyInstr(env, instr)
	}
	return env
}

func applyInstr(env copyMap, in *ir.Instr) {
	if in.Result == ir.NoValue {
		return
	}
	if in.Op == ir.OpAssign && len(in.Operands) == 1 {
		env[in.Result] = find(env, in.Operands[0])
		return
	}
	delete(env, in.Result)
}

// rewriteBlock replaces operands with their representative at each
// program point, updating the map as definitions pass by.
func rewriteBlock(b *ir.Block, in copyMap) {
	env := maps.Clone(in)
	if env == nil {
		env = copyMap{}
	}
	for _, instr := range b.Instrs {
		for i, op := range instr.Operands {
			instr.Operands[i] = find(env, op)
		}
		applyInstr(env, instr)
	}
}
