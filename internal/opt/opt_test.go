package opt

import (
	"strings"
	"testing"

	"openfxc/internal/diag"
	"openfxc/internal/ir"
)

// retModule builds a minimal module: main(v1: float4) { entry: Return v1 }.
func retModule() *ir.Module {
	m := ir.NewModule("ps_2_0")
	m.Values = []*ir.Value{
		{ID: 1, Type: "float4", Kind: ir.ValueParameter, Name: "pos"},
	}
	m.Functions = []*ir.Function{{
		Name:       "main",
		ReturnType: "float4",
		Params:     []ir.ValueID{1},
		Blocks: []*ir.Block{{
			ID:     "entry",
			Instrs: []*ir.Instr{{Op: ir.OpReturn, Operands: []ir.ValueID{1}}},
		}},
	}}
	return m
}

func TestRunDefaultPassesKeepsMinimalModule(t *testing.T) {
	m := retModule()
	res := Run(m, Options{})
	out := res.Module

	entry := out.Functions[0].Entry()
	if len(entry.Instrs) != 1 || entry.Instrs[0].Op != ir.OpReturn {
		t.Fatalf("minimal module should be unchanged, got %+v", entry.Instrs)
	}
	// One Info diagnostic per executed pass, nothing else.
	infos := 0
	for _, d := range out.Diagnostics {
		if d.Severity != diag.SevInfo {
			t.Errorf("unexpected non-info diagnostic: %+v", d)
		}
		if d.Code == diag.OptPassRan {
			infos++
		}
	}
	if infos != len(PassNames()) {
		t.Errorf("executed-pass notices = %d, want %d", infos, len(PassNames()))
	}
}

func TestRunDoesNotMutateInput(t *testing.T) {
	m := retModule()
	m.Values = append(m.Values,
		&ir.Value{ID: 2, Type: "float", Kind: ir.ValueConstant, Name: "2"},
		&ir.Value{ID: 3, Type: "float", Kind: ir.ValueConstant, Name: "3"},
		&ir.Value{ID: 4, Type: "float", Kind: ir.ValueTemp},
	)
	entry := m.Functions[0].Entry()
	entry.Instrs = []*ir.Instr{
		{Op: ir.OpAdd, Operands: []ir.ValueID{2, 3}, Result: 4, Type: "float"},
		{Op: ir.OpReturn, Operands: []ir.ValueID{1}},
	}

	Run(m, Options{Passes: "constfold,dce"})

	if entry.Instrs[0].Op != ir.OpAdd {
		t.Error("input module was mutated by the pipeline")
	}
	if len(m.Values) != 4 {
		t.Error("input value table was mutated by the pipeline")
	}
}

func TestRunUnknownPass(t *testing.T) {
	res := Run(retModule(), Options{Passes: "constfold,frobnicate"})
	found := false
	for _, d := range res.Module.Diagnostics {
		if d.Severity == diag.SevError && d.Code == diag.OptUnknownPass {
			found = true
			if !strings.Contains(d.Message, "constfold") {
				t.Errorf("unknown-pass error should list valid names: %s", d.Message)
			}
		}
	}
	if !found {
		t.Error("unknown pass should produce an error diagnostic")
	}
}

func TestRunProfileOverride(t *testing.T) {
	res := Run(retModule(), Options{Profile: "ps_3_0", Passes: "dce"})
	if res.Module.Profile != "ps_3_0" {
		t.Errorf("profile = %q, want override", res.Module.Profile)
	}
}

func TestRunPassOrderIsRespected(t *testing.T) {
	res := Run(retModule(), Options{Passes: "dce, constfold"})
	if len(res.Timings) != 2 || res.Timings[0].Name != "dce" || res.Timings[1].Name != "constfold" {
		t.Fatalf("timings = %+v, want dce then constfold", res.Timings)
	}
}
