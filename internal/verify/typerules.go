package verify

import (
	"openfxc/internal/diag"
	"openfxc/internal/ir"
)

// Type rules from the instruction grammar. Rules are only applied when
// the referenced values exist; missing operands are already reported as
// unknown-operand errors.
func (v *validator) checkTypeRules(f *ir.Function, b *ir.Block, in *ir.Instr) {
	if in.Result != ir.NoValue && in.Type == "" {
		v.errorf(diag.InvTypeRule,
			"function %s block %q: %s produces v%d but carries no type",
			f.Name, b.ID, in.OpName(), in.Result)
	}
	if in.Result != ir.NoValue && in.Type != "" {
		if res := v.values[in.Result]; res != nil && res.Type != in.Type {
			v.errorf(diag.InvTypeRule,
				"function %s block %q: %s types v%d as %s but the value declares %s",
				f.Name, b.ID, in.OpName(), in.Result, in.Type, res.Type)
		}
	}

	switch {
	case in.Op.IsBinary():
		v.checkBinary(f, b, in)
	case in.Op == ir.OpAssign:
		v.checkAssign(f, b, in)
	case in.Op == ir.OpReturn:
		v.checkReturn(f, b, in)
	case in.Op == ir.OpSwizzle:
		v.checkSwizzle(f, b, in)
	case in.Op == ir.OpStore:
		v.checkStore(f, b, in)
	}
}

func (v *validator) checkBinary(f *ir.Function, b *ir.Block, in *ir.Instr) {
	if len(in.Operands) != 2 {
		v.errorf(diag.InvTypeRule,
			"function %s block %q: %s takes two operands, got %d",
			f.Name, b.ID, in.OpName(), len(in.Operands))
		return
	}
	lhs, rhs := v.values[in.Operands[0]], v.values[in.Operands[1]]
	if lhs == nil || rhs == nil {
		return
	}
	lt, rt := lhs.TypeInfo(), rhs.TypeInfo()
	if lt.Class == ir.ClassUnknown || rt.Class == ir.ClassUnknown {
		return
	}
	if !lt.Scalar.IsNumeric() || !ir.SameScalar(lt, rt) {
		v.errorf(diag.InvTypeRule,
			"function %s block %q: %s operands v%d:%s and v%d:%s need a matching numeric scalar",
			f.Name, b.ID, in.OpName(), lhs.ID, lhs.Type, rhs.ID, rhs.Type)
		return
	}
	if in.Op.IsComparison() {
		return // result is bool by definition
	}
	if rti := ir.ParseType(in.Type); rti.Class != ir.ClassUnknown && rti.Scalar != lt.Scalar {
		v.errorf(diag.InvTypeRule,
			"function %s block %q: %s result scalar %s does not match operand scalar %s",
			f.Name, b.ID, in.OpName(), rti.Scalar, lt.Scalar)
	}
}

func (v *validator) checkAssign(f *ir.Function, b *ir.Block, in *ir.Instr) {
	if len(in.Operands) == 0 {
		v.errorf(diag.InvTypeRule,
			"function %s block %q: Assign needs an operand", f.Name, b.ID)
		return
	}
	src := v.values[in.Operands[len(in.Operands)-1]]
	if src == nil || in.Type == "" {
		return
	}
	if src.Type != in.Type && src.Type != "unknown" && in.Type != "unknown" {
		v.errorf(diag.InvTypeRule,
			"function %s block %q: Assign result type %s does not match operand type %s",
			f.Name, b.ID, in.Type, src.Type)
	}
}

func (v *validator) checkReturn(f *ir.Function, b *ir.Block, in *ir.Instr) {
	if len(in.Operands) == 0 {
		return
	}
	val := v.values[in.Operands[0]]
	if val == nil {
		return
	}
	want := ir.ParseType(f.ReturnType)
	got := val.TypeInfo()
	if want.Class == ir.ClassUnknown || want.Class == ir.ClassVoid || got.Class == ir.ClassUnknown {
		return
	}
	if got.Scalar != want.Scalar || got.Components() != want.Components() {
		v.errorf(diag.InvTypeRule,
			"function %s block %q: Return operand v%d:%s does not match declared return type %s",
			f.Name, b.ID, val.ID, val.Type, f.ReturnType)
	}
}

func (v *validator) checkSwizzle(f *ir.Function, b *ir.Block, in *ir.Instr) {
	if len(in.Operands) != 1 || len(in.Lanes) == 0 {
		v.errorf(diag.InvTypeRule,
			"function %s block %q: Swizzle needs one operand and a lane tag", f.Name, b.ID)
		return
	}
	src := v.values[in.Operands[0]]
	if src == nil {
		return
	}
	st, rt := src.TypeInfo(), ir.ParseType(in.Type)
	if st.Scalar == ir.ScalarInvalid || rt.Scalar == ir.ScalarInvalid {
		return
	}
	if st.Scalar != rt.Scalar {
		v.errorf(diag.InvTypeRule,
			"function %s block %q: Swizzle changes scalar base from %s to %s",
			f.Name, b.ID, st.Scalar, rt.Scalar)
	}
	if rt.Components() != len(in.Lanes) {
		v.errorf(diag.InvTypeRule,
			"function %s block %q: Swizzle mask %s has %d lanes but result type %s has %d components",
			f.Name, b.ID, ir.SwizzleTag(in.Lanes), len(in.Lanes), in.Type, rt.Components())
	}
}

func (v *validator) checkStore(f *ir.Function, b *ir.Block, in *ir.Instr) {
	if len(in.Operands) != 2 && len(in.Operands) != 3 {
		v.errorf(diag.InvTypeRule,
			"function %s block %q: Store takes 2 or 3 operands, got %d",
			f.Name, b.ID, len(in.Operands))
		return
	}
	target := v.values[in.Operands[0]]
	val := v.values[in.Operands[len(in.Operands)-1]]
	if target == nil || val == nil {
		return
	}
	tt := target.TypeInfo()
	if tt.Class == ir.ClassResource {
		return // resource element types are opaque here
	}
	vt := val.TypeInfo()
	if tt.Scalar == ir.ScalarInvalid || vt.Scalar == ir.ScalarInvalid {
		return
	}
	if !ir.SameScalar(tt, vt) {
		v.errorf(diag.InvTypeRule,
			"function %s block %q: Store value v%d:%s does not share a numeric scalar with target v%d:%s",
			f.Name, b.ID, val.ID, val.Type, target.ID, target.Type)
	}
}
