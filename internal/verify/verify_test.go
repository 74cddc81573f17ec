package verify

import (
	"strings"
	"testing"

	"openfxc/internal/diag"
	"openfxc/internal/ir"
)

func minimalReturn() *ir.Module {
	m := ir.NewModule("ps_2_0")
	m.Entry = &ir.EntryPoint{Function: "main", Stage: ir.StagePixel}
	m.Values = []*ir.Value{
		{ID: 1, Type: "float4", Kind: ir.ValueParameter, Name: "pos", Semantic: "POSITION0"},
	}
	m.Functions = []*ir.Function{{
		Name:       "main",
		ReturnType: "float4",
		Params:     []ir.ValueID{1},
		Blocks: []*ir.Block{{
			ID: "entry",
			Instrs: []*ir.Instr{
				{Op: ir.OpReturn, Operands: []ir.ValueID{1}},
			},
		}},
	}}
	return m
}

func errorMessages(diags []diag.Diagnostic) []string {
	var msgs []string
	for _, d := range diags {
		if d.Severity == diag.SevError {
			msgs = append(msgs, d.Message)
		}
	}
	return msgs
}

func wantError(t *testing.T, diags []diag.Diagnostic, substr string) {
	t.Helper()
	for _, msg := range errorMessages(diags) {
		if strings.Contains(msg, substr) {
			return
		}
	}
	t.Errorf("no error containing %q; errors: %v", substr, errorMessages(diags))
}

func TestValidateMinimalReturn(t *testing.T) {
	diags := Validate(minimalReturn())
	if msgs := errorMessages(diags); len(msgs) != 0 {
		t.Errorf("minimal module should validate cleanly, got %v", msgs)
	}
}

func TestValidateFormatVersion(t *testing.T) {
	m := minimalReturn()
	m.FormatVersion = 2
	wantError(t, Validate(m), "format version")
}

func TestValidateDuplicateValueID(t *testing.T) {
	m := minimalReturn()
	m.Values = append(m.Values, &ir.Value{ID: 1, Type: "float"})
	wantError(t, Validate(m), "declared more than once")
}

func TestValidateNonPositiveValueID(t *testing.T) {
	m := minimalReturn()
	m.Values = append(m.Values, &ir.Value{ID: -3, Type: "float"})
	wantError(t, Validate(m), "not positive")
}

func TestValidateEmptyValueType(t *testing.T) {
	m := minimalReturn()
	m.Values = append(m.Values, &ir.Value{ID: 2})
	wantError(t, Validate(m), "no type")
}

func TestValidateUnknownOperand(t *testing.T) {
	m := minimalReturn()
	m.Functions[0].Blocks[0].Instrs[0].Operands = []ir.ValueID{99}
	wantError(t, Validate(m), "unknown value v99")
}

func TestValidateMissingTerminator(t *testing.T) {
	m := minimalReturn()
	m.Values = append(m.Values, &ir.Value{ID: 2, Type: "float4", Kind: ir.ValueTemp})
	m.Functions[0].Blocks[0].Instrs = []*ir.Instr{
		{Op: ir.OpAssign, Operands: []ir.ValueID{1}, Result: 2, Type: "float4"},
	}
	wantError(t, Validate(m), "does not end with a terminator")
}

func TestValidateInstrAfterTerminator(t *testing.T) {
	m := minimalReturn()
	b := m.Functions[0].Blocks[0]
	b.Instrs = append(b.Instrs, &ir.Instr{Op: ir.OpReturn, Operands: []ir.ValueID{1}})
	wantError(t, Validate(m), "after terminator")
}

func TestValidateMultipleDefs(t *testing.T) {
	m := minimalReturn()
	m.Values = append(m.Values, &ir.Value{ID: 2, Type: "float4", Kind: ir.ValueTemp})
	b := m.Functions[0].Blocks[0]
	b.Instrs = []*ir.Instr{
		{Op: ir.OpAssign, Operands: []ir.ValueID{1}, Result: 2, Type: "float4"},
		{Op: ir.OpAssign, Operands: []ir.ValueID{1}, Result: 2, Type: "float4"},
		{Op: ir.OpReturn, Operands: []ir.ValueID{2}},
	}
	wantError(t, Validate(m), "defines v2 in 2 instructions")
}

func TestValidateBranchTargets(t *testing.T) {
	m := minimalReturn()
	m.Functions[0].Blocks[0].Instrs = []*ir.Instr{
		{Op: ir.OpBranch, Targets: &ir.BranchTargets{Then: "missing"}},
	}
	wantError(t, Validate(m), `target "missing"`)
}

func TestValidateBranchCondNeedsBool(t *testing.T) {
	m := minimalReturn()
	f := m.Functions[0]
	f.Blocks = []*ir.Block{
		{ID: "entry", Instrs: []*ir.Instr{
			{Op: ir.OpBranchCond, Operands: []ir.ValueID{1}, Targets: &ir.BranchTargets{Then: "a", Else: "b"}},
		}},
		{ID: "a", Instrs: []*ir.Instr{{Op: ir.OpReturn, Operands: []ir.ValueID{1}}}},
		{ID: "b", Instrs: []*ir.Instr{{Op: ir.OpReturn, Operands: []ir.ValueID{1}}}},
	}
	wantError(t, Validate(m), "want bool")
}

func TestValidateUnreachableBlock(t *testing.T) {
	m := minimalReturn()
	f := m.Functions[0]
	f.Blocks = append(f.Blocks, &ir.Block{
		ID:     "orphan",
		Instrs: []*ir.Instr{{Op: ir.OpReturn, Operands: []ir.ValueID{1}}},
	})
	wantError(t, Validate(m), "unreachable")
}

func TestValidateBinaryScalarMismatch(t *testing.T) {
	m := minimalReturn()
	m.Values = append(m.Values,
		&ir.Value{ID: 2, Type: "int", Kind: ir.ValueConstant, Name: "1"},
		&ir.Value{ID: 3, Type: "float4", Kind: ir.ValueTemp},
	)
	b := m.Functions[0].Blocks[0]
	b.Instrs = []*ir.Instr{
		{Op: ir.OpAdd, Operands: []ir.ValueID{1, 2}, Result: 3, Type: "float4"},
		{Op: ir.OpReturn, Operands: []ir.ValueID{3}},
	}
	wantError(t, Validate(m), "matching numeric scalar")
}

func TestValidateReturnTypeMismatch(t *testing.T) {
	m := minimalReturn()
	m.Values[0].Type = "float2"
	wantError(t, Validate(m), "declared return type")
}

func TestValidateSwizzleLaneCount(t *testing.T) {
	m := minimalReturn()
	m.Values = append(m.Values, &ir.Value{ID: 2, Type: "float3", Kind: ir.ValueTemp})
	b := m.Functions[0].Blocks[0]
	b.Instrs = []*ir.Instr{
		{Op: ir.OpSwizzle, Operands: []ir.ValueID{1}, Result: 2, Type: "float3", Lanes: []ir.Lane{ir.LaneX, ir.LaneY}},
		{Op: ir.OpReturn, Operands: []ir.ValueID{1}},
	}
	wantError(t, Validate(m), "lanes but result type")
}

func TestValidateStoreScalarMismatch(t *testing.T) {
	m := minimalReturn()
	m.Values = append(m.Values,
		&ir.Value{ID: 2, Type: "int4", Kind: ir.ValueGlobal, Name: "dst"},
	)
	b := m.Functions[0].Blocks[0]
	b.Instrs = []*ir.Instr{
		{Op: ir.OpStore, Operands: []ir.ValueID{2, 1}},
		{Op: ir.OpReturn, Operands: []ir.ValueID{1}},
	}
	wantError(t, Validate(m), "does not share a numeric scalar")
}

func TestValidateStoreResourceExempt(t *testing.T) {
	m := minimalReturn()
	m.Values = append(m.Values,
		&ir.Value{ID: 2, Type: "RWTexture2D<float4>", Kind: "Texture2D", Name: "dst"},
	)
	b := m.Functions[0].Blocks[0]
	b.Instrs = []*ir.Instr{
		{Op: ir.OpStore, Operands: []ir.ValueID{2, 1}},
		{Op: ir.OpReturn, Operands: []ir.ValueID{1}},
	}
	if msgs := errorMessages(Validate(m)); len(msgs) != 0 {
		t.Errorf("resource-destination store should be exempt, got %v", msgs)
	}
}
