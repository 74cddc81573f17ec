package opt

import (
	"testing"

	"openfxc/internal/ir"
)

// storeModule models the side-effect anchor: Add feeds a Store into a
// writable texture, and nothing else uses the sum.
func storeModule() *ir.Module {
	m := ir.NewModule("cs_5_0")
	m.Values = []*ir.Value{
		{ID: 1, Type: "RWTexture2D<float4>", Kind: "Texture2D", Name: "output"},
		{ID: 2, Type: "float4", Kind: ir.ValueParameter, Name: "color"},
		{ID: 3, Type: "float4", Kind: ir.ValueTemp},
	}
	m.Functions = []*ir.Function{{
		Name:       "main",
		ReturnType: "void",
		Params:     []ir.ValueID{2},
		Blocks: []*ir.Block{{
			ID: "entry",
			Instrs: []*ir.Instr{
				{Op: ir.OpAdd, Operands: []ir.ValueID{2, 2}, Result: 3, Type: "float4"},
				{Op: ir.OpStore, Operands: []ir.ValueID{1, 3}},
				{Op: ir.OpReturn},
			},
		}},
	}}
	return m
}

func TestDCEPreservesSideEffects(t *testing.T) {
	m := storeModule()
	runDCE(m)
	entry := m.Functions[0].Entry()
	if len(entry.Instrs) != 3 {
		t.Fatalf("instrs = %d, want all three: the Store anchors its producer", len(entry.Instrs))
	}
}

func TestDCERemovesDeadPureChain(t *testing.T) {
	m := ir.NewModule("ps_2_0")
	m.Values = []*ir.Value{
		{ID: 1, Type: "float", Kind: ir.ValueParameter, Name: "x"},
		{ID: 2, Type: "float", Kind: ir.ValueTemp},
		{ID: 3, Type: "float", Kind: ir.ValueTemp},
	}
	m.Functions = []*ir.Function{{
		Name:       "main",
		ReturnType: "float",
		Params:     []ir.ValueID{1},
		Blocks: []*ir.Block{{
			ID: "entry",
			Instrs: []*ir.Instr{
				{Op: ir.OpAdd, Operands: []ir.ValueID{1, 1}, Result: 2, Type: "float"},
				{Op: ir.OpMul, Operands: []ir.ValueID{2, 2}, Result: 3, Type: "float"},
				{Op: ir.OpReturn, Operands: []ir.ValueID{1}},
			},
		}},
	}}
	runDCE(m)
	entry := m.Functions[0].Entry()
	if len(entry.Instrs) != 1 {
		t.Fatalf("instrs = %d, want only Return: the dead chain frees bottom-up in one sweep", len(entry.Instrs))
	}
}

func TestDCEKeepsLiveValues(t *testing.T) {
	m := ir.NewModule("ps_2_0")
	m.Values = []*ir.Value{
		{ID: 1, Type: "float", Kind: ir.ValueParameter, Name: "x"},
		{ID: 2, Type: "float", Kind: ir.ValueTemp},
	}
	m.Functions = []*ir.Function{{
		Name:       "main",
		ReturnType: "float",
		Params:     []ir.ValueID{1},
		Blocks: []*ir.Block{{
			ID: "entry",
			Instrs: []*ir.Instr{
				{Op: ir.OpAdd, Operands: []ir.ValueID{1, 1}, Result: 2, Type: "float"},
				{Op: ir.OpReturn, Operands: []ir.ValueID{2}},
			},
		}},
	}}
	runDCE(m)
	if len(m.Functions[0].Entry().Instrs) != 2 {
		t.Error("a value consumed by Return must survive")
	}
}

func TestDCENeverDeletesNonPure(t *testing.T) {
	m := ir.NewModule("ps_2_0")
	m.Values = []*ir.Value{
		{ID: 1, Type: "Texture2D<float4>", Kind: "Texture2D", Name: "albedo"},
		{ID: 2, Type: "SamplerState", Kind: ir.ValueSampler, Name: "linearSampler"},
		{ID: 3, Type: "float2", Kind: ir.ValueParameter, Name: "uv"},
		{ID: 4, Type: "float4", Kind: ir.ValueTemp},
		{ID: 5, Type: "float4", Kind: ir.ValueParameter, Name: "color"},
	}
	m.Functions = []*ir.Function{{
		Name:       "main",
		ReturnType: "float4",
		Params:     []ir.ValueID{3, 5},
		Blocks: []*ir.Block{{
			ID: "entry",
			Instrs: []*ir.Instr{
				// result dead, but Sample has an observable effect
				{Op: ir.OpSample, Operands: []ir.ValueID{1, 2, 3}, Result: 4, Type: "float4", Callee: "tex2D"},
				{Op: ir.OpReturn, Operands: []ir.ValueID{5}},
			},
		}},
	}}
	runDCE(m)
	if len(m.Functions[0].Entry().Instrs) != 2 {
		t.Error("Sample-family instructions must never be deleted")
	}
}
