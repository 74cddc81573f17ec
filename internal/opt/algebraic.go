package opt

import (
	"openfxc/internal/ir"
)

// runAlgebraic applies identity/annihilator rewrites to pure binary
// instructions whose right-hand side parses as a constant:
//
//	x + 0, x - 0  →  x
//	x * 1, x / 1  →  x
//	x * 0         →  0 of the result type
func runAlgebraic(m *ir.Module) {
	values := m.ValueIndex()
	alloc := ir.NewValueAllocator(m)

	for _, f := range m.Functions {
		for _, b := range f.Blocks {
			for _, in := range b.Instrs {
				simplifyInstr(m, values, alloc, in)
			}
		}
	}
}

func simplifyInstr(m *ir.Module, values map[ir.ValueID]*ir.Value, alloc *ir.ValueAllocator, in *ir.Instr) {
	if in.Result == ir.NoValue || !in.Pure() || len(in.Operands) != 2 {
		return
	}
	rhs, ok := parseOperand(values, in.Operands[1])
	if !ok {
		return
	}

	switch in.Op {
	case ir.OpAdd, ir.OpSub:
		if allElems(rhs, 0) {
			rewriteToAssign(in, in.Operands[0])
		}
	case ir.OpMul:
		switch {
		case allElems(rhs, 1):
			rewriteToAssign(in, in.Operands[0])
		case allElems(rhs, 0):
			rewriteToAssign(in, zeroConstant(m, values, alloc, in.Type))
		}
	case ir.OpDiv:
		if allElems(rhs, 1) {
			rewriteToAssign(in, in.Operands[0])
		}
	}
}

func allElems(c ir.Constant, want float64) bool {
	if len(c.Elems) == 0 {
		return false
	}
	for _, e := range c.Elems {
		if e != want {
			return false
		}
	}
	return true
}

// zeroConstant allocates a fresh zero constant of the given type.
func zeroConstant(m *ir.Module, values map[ir.ValueID]*ir.Value, alloc *ir.ValueAllocator, typ string) ir.ValueID {
	ti := ir.ParseType(typ)
	n := ti.Components()
	if n < 1 {
		n = 1
	}
	zero := ir.Constant{Type: ti, Elems: make([]float64, n)}
	v := m.AddValue(&ir.Value{
		ID:   alloc.Next(),
		Type: typ,
		Kind: ir.ValueConstant,
		Name: zero.Format(),
	})
	values[v.ID] = v
	return v.ID
}
