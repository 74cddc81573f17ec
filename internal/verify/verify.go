// Package verify implements the invariant validator shared by the
// lowering and optimization pipelines. Validation is a pure function
// from a module to diagnostics; it never mutates the module.
package verify

import (
	"openfxc/internal/diag"
	"openfxc/internal/ir"
)

// Validate checks every structural and type-level invariant and the
// backend-leak policy. Diagnostics come back in a deterministic order:
// module-level first, then per function in declaration order, then the
// backend-leak scan over every named field of the module.
func Validate(m *ir.Module) []diag.Diagnostic {
	v := &validator{
		module: m,
		bag:    diag.NewBag(),
		values: m.ValueIndex(),
	}
	v.checkModule()
	for _, f := range m.Functions {
		v.checkFunction(f)
	}
	v.checkLeaks()
	return v.bag.Items()
}

type validator struct {
	module *ir.Module
	bag    *diag.Bag
	values map[ir.ValueID]*ir.Value
}

func (v *validator) errorf(code diag.Code, format string, args ...any) {
	v.bag.Addf(diag.SevError, diag.StageInvariant, code, format, args...)
}

func (v *validator) checkModule() {
	if v.module.FormatVersion != ir.FormatVersion {
		v.errorf(diag.InvBadFormatVersion,
			"unsupported format version %d, expected %d", v.module.FormatVersion, ir.FormatVersion)
	}
	seen := make(map[ir.ValueID]bool, len(v.module.Values))
	for _, val := range v.module.Values {
		if val.ID <= 0 {
			v.errorf(diag.InvValueID, "value id %d is not positive", val.ID)
		} else if seen[val.ID] {
			v.errorf(diag.InvValueID, "value id %d declared more than once", val.ID)
		}
		seen[val.ID] = true
		if val.Type == "" {
			v.errorf(diag.InvValueType, "value v%d has no type", val.ID)
		}
	}
}

func (v *validator) checkFunction(f *ir.Function) {
	if len(f.Blocks) == 0 {
		v.errorf(diag.InvEmptyFunction, "function %s has no blocks", f.Name)
		return
	}
	if f.Blocks[0].ID == "" {
		v.errorf(diag.InvBadTerminator, "function %s entry block has empty id", f.Name)
	}

	blockIDs := make(map[string]bool, len(f.Blocks))
	for _, b := range f.Blocks {
		if blockIDs[b.ID] {
			v.errorf(diag.InvDuplicateBlock, "function %s declares block %q twice", f.Name, b.ID)
		}
		blockIDs[b.ID] = true
	}

	defs := make(map[ir.ValueID]int)
	var defOrder []ir.ValueID
	for _, b := range f.Blocks {
		v.checkBlockShape(f, b)
		for _, in := range b.Instrs {
			v.checkInstr(f, b, in)
			if in.Result != ir.NoValue {
				if defs[in.Result] == 0 {
					defOrder = append(defOrder, in.Result)
				}
				defs[in.Result]++
			}
		}
	}
	for _, id := range defOrder {
		if n := defs[id]; n > 1 {
			v.errorf(diag.InvMultipleDefs,
				"function %s defines v%d in %d instructions", f.Name, id, n)
		}
	}

	v.checkReachability(f, blockIDs)
}

func (v *validator) checkBlockShape(f *ir.Function, b *ir.Block) {
	if len(b.Instrs) == 0 {
		v.errorf(diag.InvBadTerminator, "function %s block %q is empty", f.Name, b.ID)
		return
	}
	for i, in := range b.Instrs {
		last := i == len(b.Instrs)-1
		if in.Terminator() && !last {
			v.errorf(diag.InvBadTerminator,
				"function %s block %q has instructions after terminator %s", f.Name, b.ID, in.OpName())
		}
		if last && !in.Terminator() {
			v.errorf(diag.InvBadTerminator,
				"function %s block %q does not end with a terminator", f.Name, b.ID)
		}
	}
}

func (v *validator) checkInstr(f *ir.Function, b *ir.Block, in *ir.Instr) {
	if in.Op == ir.OpInvalid {
		v.errorf(diag.InvTypeRule,
			"function %s block %q: op %q is outside the instruction grammar", f.Name, b.ID, in.OpName())
	}
	for _, op := range in.Operands {
		if v.values[op] == nil {
			v.errorf(diag.InvUnknownOperand,
				"function %s block %q: %s references unknown value v%d", f.Name, b.ID, in.OpName(), op)
		}
	}
	if in.Result != ir.NoValue && v.values[in.Result] == nil {
		v.errorf(diag.InvUnknownOperand,
			"function %s block %q: %s defines unknown value v%d", f.Name, b.ID, in.OpName(), in.Result)
	}
	v.checkBranch(f, b, in)
	v.checkTypeRules(f, b, in)
}

func (v *validator) checkBranch(f *ir.Function, b *ir.Block, in *ir.Instr) {
	switch in.Op {
	case ir.OpBranch:
		if in.Targets == nil || in.Targets.Then == "" {
			v.errorf(diag.InvBadBranchTargets,
				"function %s block %q: Branch needs exactly one target", f.Name, b.ID)
			return
		}
		if f.Block(in.Targets.Then) == nil {
			v.errorf(diag.InvBadBranchTargets,
				"function %s block %q: Branch target %q is not a block", f.Name, b.ID, in.Targets.Then)
		}
	case ir.OpBranchCond:
		if in.Targets == nil || in.Targets.Then == "" || in.Targets.Else == "" {
			v.errorf(diag.InvBadBranchTargets,
				"function %s block %q: BranchCond needs then and else targets", f.Name, b.ID)
			return
		}
		for _, target := range []string{in.Targets.Then, in.Targets.Else} {
			if f.Block(target) == nil {
				v.errorf(diag.InvBadBranchTargets,
					"function %s block %q: BranchCond target %q is not a block", f.Name, b.ID, target)
			}
		}
		if len(in.Operands) != 1 {
			v.errorf(diag.InvBadConditionType,
				"function %s block %q: BranchCond takes one condition operand", f.Name, b.ID)
			return
		}
		if cond := v.values[in.Operands[0]]; cond != nil && cond.Type != "bool" {
			v.errorf(diag.InvBadConditionType,
				"function %s block %q: BranchCond condition v%d has type %s, want bool",
				f.Name, b.ID, cond.ID, cond.Type)
		}
	}
}

// checkReachability walks terminator edges from the entry block; any
// block the walk never reaches is an error.
func (v *validator) checkReachability(f *ir.Function, blockIDs map[string]bool) {
	reached := make(map[string]bool, len(f.Blocks))
	work := []string{f.Blocks[0].ID}
	reached[f.Blocks[0].ID] = true
	for len(work) > 0 {
		id := work[0]
		work = work[1:]
		b := f.Block(id)
		if b == nil {
			continue
		}
		term := b.Term()
		if term == nil || term.Targets == nil {
			continue
		}
		for _, next := range []string{term.Targets.Then, term.Targets.Else} {
			if next != "" && blockIDs[next] && !reached[next] {
				reached[next] = true
				work = append(work, next)
			}
		}
	}
	for _, b := range f.Blocks {
		if !reached[b.ID] {
			v.errorf(diag.InvUnreachableBlock,
				"function %s block %q is unreachable from entry", f.Name, b.ID)
		}
	}
}
