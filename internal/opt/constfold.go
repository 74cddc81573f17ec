package opt

import (
	"math"

	"openfxc/internal/ir"
)

// runConstFold folds pure non-terminator instructions whose operands
// are all parseable constants, rewriting each into an Assign of a new
// canonical constant. Division-family folds are skipped whenever any
// divisor element is zero.
func runConstFold(m *ir.Module) {
	values := m.ValueIndex()
	alloc := ir.NewValueAllocator(m)

	for _, f := range m.Functions {
		for _, b := range f.Blocks {
			for _, in := range b.Instrs {
				foldInstr(m, values, alloc, in)
			}
		}
	}
}

func foldInstr(m *ir.Module, values map[ir.ValueID]*ir.Value, alloc *ir.ValueAllocator, in *ir.Instr) {
	if in.Terminator() || !in.Pure() || in.Result == ir.NoValue {
		return
	}
	consts := make([]ir.Constant, 0, len(in.Operands))
	for _, id := range in.Operands {
		c, ok := parseOperand(values, id)
		if !ok {
			return
		}
		consts = append(consts, c)
	}

	folded, ok := evalFold(in, consts)
	if !ok {
		return
	}

	cv := m.AddValue(&ir.Value{
		ID:   alloc.Next(),
		Type: in.Type,
		Kind: ir.ValueConstant,
		Name: folded.Format(),
	})
	values[cv.ID] = cv
	rewriteToAssign(in, cv.ID)
}

func parseOperand(values map[ir.ValueID]*ir.Value, id ir.ValueID) (ir.Constant, bool) {
	v := values[id]
	if v == nil {
		return ir.Constant{}, false
	}
	return v.AsConstant()
}

// rewriteToAssign turns an instruction into an Assign of src, keeping
// the result and type.
func rewriteToAssign(in *ir.Instr, src ir.ValueID) {
	in.Op = ir.OpAssign
	in.Operands = []ir.ValueID{src}
	in.Lanes = nil
	in.Targets = nil
	in.Callee = ""
	in.Extra = ""
}

// evalFold computes the constant result of a foldable instruction.
func evalFold(in *ir.Instr, consts []ir.Constant) (ir.Constant, bool) {
	switch {
	case in.Op.IsComparison(), in.Op.IsLogical():
		return evalScalarPredicate(in, consts)
	case in.Op.IsBinary():
		return evalElementwise(in, consts)
	}
	return ir.Constant{}, false
}

// evalElementwise folds Add/Sub/Mul/Div/Mod over the result type's
// element count, splatting single-element operands.
func evalElementwise(in *ir.Instr, consts []ir.Constant) (ir.Constant, bool) {
	if len(consts) != 2 {
		return ir.Constant{}, false
	}
	rt := ir.ParseType(in.Type)
	n := rt.Components()
	if n < 1 {
		return ir.Constant{}, false
	}
	lhs, ok := broadcast(consts[0].Elems, n)
	if !ok {
		return ir.Constant{}, false
	}
	rhs, ok := broadcast(consts[1].Elems, n)
	if !ok {
		return ir.Constant{}, false
	}
	if in.Op == ir.OpDiv || in.Op == ir.OpMod {
		for _, d := range rhs {
			if d == 0 {
				return ir.Constant{}, false
			}
		}
	}
	elems := make([]float64, n)
	for i := range elems {
		switch in.Op {
		case ir.OpAdd:
			elems[i] = lhs[i] + rhs[i]
		case ir.OpSub:
			elems[i] = lhs[i] - rhs[i]
		case ir.OpMul:
			elems[i] = lhs[i] * rhs[i]
		case ir.OpDiv:
			elems[i] = lhs[i] / rhs[i]
		case ir.OpMod:
			elems[i] = math.Mod(lhs[i], rhs[i])
		default:
			return ir.Constant{}, false
		}
		if rt.Scalar == ir.ScalarInt || rt.Scalar == ir.ScalarUint {
			elems[i] = math.Trunc(elems[i])
		}
	}
	return ir.Constant{Type: rt, Elems: elems}, true
}

// evalScalarPredicate folds scalar comparisons and boolean
// connectives; vector predicates are left alone.
func evalScalarPredicate(in *ir.Instr, consts []ir.Constant) (ir.Constant, bool) {
	if len(consts) != 2 || len(consts[0].Elems) != 1 || len(consts[1].Elems) != 1 {
		return ir.Constant{}, false
	}
	a, b := consts[0].Elems[0], consts[1].Elems[0]
	var r bool
	switch in.Op {
	case ir.OpEq:
		r = a == b
	case ir.OpNe:
		r = a != b
	case ir.OpLt:
		r = a < b
	case ir.OpLe:
		r = a <= b
	case ir.OpGt:
		r = a > b
	case ir.OpGe:
		r = a >= b
	case ir.OpLogicalAnd:
		r = a != 0 && b != 0
	case ir.OpLogicalOr:
		r = a != 0 || b != 0
	default:
		return ir.Constant{}, false
	}
	elems := []float64{0}
	if r {
		elems[0] = 1
	}
	return ir.Constant{Type: ir.ParseType("bool"), Elems: elems}, true
}

func broadcast(elems []float64, n int) ([]float64, bool) {
	if len(elems) == n {
		return elems, true
	}
	if len(elems) == 1 {
		out := make([]float64, n)
		for i := range out {
			out[i] = elems[0]
		}
		return out, true
	}
	return nil, false
}
