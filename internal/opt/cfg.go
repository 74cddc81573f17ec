package opt

import (
	"openfxc/internal/ir"
)

// CFG is the explicit adjacency view of one function, built once per
// pass so block lookups stop being linear scans over string ids.
type CFG struct {
	Blocks []*ir.Block
	Succs  [][]int
	Preds  [][]int
	index  map[string]int
}

// BuildCFG derives block adjacency from terminator targets.
func BuildCFG(f *ir.Function) *CFG {
	c := &CFG{
		Blocks: f.Blocks,
		Succs:  make([][]int, len(f.Blocks)),
		Preds:  make([][]int, len(f.Blocks)),
		index:  make(map[string]int, len(f.Blocks)),
	}
	for i, b := range f.Blocks {
		c.index[b.ID] = i
	}
	for i, b := range f.Blocks {
		term := b.Term()
		if term == nil || term.Targets == nil {
			continue
		}
		for _, target := range []string{term.Targets.Then, term.Targets.Else} {
			if target == "" {
				continue
			}
			j, ok := c.index[target]
			if !ok {
				continue
			}
			c.Succs[i] = append(c.Succs[i], j)
			c.Preds[j] = append(c.Preds[j], i)
		}
	}
	return c
}
