package lower

import (
	"testing"

	"openfxc/internal/ir"
	"openfxc/internal/sem"
)

// TestLowerLocalReassignment checks that assigning a local rebinds its
// name: the read after the write sees the assigned value, through a
// one-operand Assign.
func TestLowerLocalReassignment(t *testing.T) {
	model := passthroughModel()
	model.Symbols = append(model.Symbols,
		sem.Symbol{ID: 13, Kind: sem.SymLocal, Name: "scaled", Type: "float4"},
	)
	model.Types = append(model.Types,
		sem.TypeBinding{NodeID: 121, Type: "float4"},
		sem.TypeBinding{NodeID: 123, Type: "float4"},
	)
	model.Syntax.Nodes = []sem.Node{
		{ID: 100, Kind: sem.KindFunctionDecl, Children: []sem.ChildRef{{Role: sem.RoleBody, NodeID: 101}}},
		{ID: 101, Kind: sem.KindBlockStatement, Children: []sem.ChildRef{
			{Role: sem.RoleStatement, NodeID: 110},
			{Role: sem.RoleStatement, NodeID: 120},
			{Role: sem.RoleStatement, NodeID: 102},
		}},
		{ID: 110, Kind: sem.KindVarDecl, ReferencedSymbolID: 13,
			Children: []sem.ChildRef{{Role: sem.RoleInitializer, NodeID: 111}}},
		{ID: 111, Kind: sem.KindIdentifier, ReferencedSymbolID: 11},
		{ID: 120, Kind: sem.KindExprStatement, Children: []sem.ChildRef{{Role: sem.RoleExpression, NodeID: 121}}},
		{ID: 121, Kind: sem.KindBinary, Operator: "=", Children: []sem.ChildRef{
			{Role: sem.RoleLeft, NodeID: 122},
			{Role: sem.RoleRight, NodeID: 123},
		}},
		{ID: 122, Kind: sem.KindIdentifier, ReferencedSymbolID: 13},
		{ID: 123, Kind: sem.KindLiteral, Text: "float4(0,0,0,0)"},
		{ID: 102, Kind: sem.KindReturnStatement, Children: []sem.ChildRef{{Role: sem.RoleExpression, NodeID: 103}}},
		{ID: 103, Kind: sem.KindIdentifier, ReferencedSymbolID: 13},
	}

	res := Lower(Request{Model: model})
	m := res.Module
	if errorCount(m.Diagnostics) != 0 {
		t.Fatalf("unexpected errors: %v", m.Diagnostics)
	}
	entry := m.Functions[0].Entry()
	if len(entry.Instrs) != 3 {
		t.Fatalf("instrs = %d, want decl Assign + write Assign + Return", len(entry.Instrs))
	}
	write := entry.Instrs[1]
	if write.Op != ir.OpAssign || len(write.Operands) != 1 {
		t.Fatalf("write instr must be a one-operand Assign: %+v", write)
	}
	if write.Result == 13 {
		t.Error("the write must define a fresh value, not redefine the declaration")
	}
	lit := m.Value(write.Operands[0])
	if lit == nil || lit.Kind != ir.ValueConstant {
		t.Fatalf("write operand: %+v", lit)
	}
	ret := entry.Instrs[2]
	if ret.Operands[0] != write.Result {
		t.Errorf("Return reads v%d; the read after the write must see v%d", ret.Operands[0], write.Result)
	}
}

// TestLowerStoreToGlobal checks that writing a loadable symbol emits a
// Store of [target, value] and never a Load of the destination.
func TestLowerStoreToGlobal(t *testing.T) {
	model := passthroughModel()
	model.Symbols = append(model.Symbols,
		sem.Symbol{ID: 22, Kind: sem.SymGlobal, Name: "tint", Type: "float4"},
	)
	model.Types = append(model.Types, sem.TypeBinding{NodeID: 121, Type: "float4"})
	model.Syntax.Nodes = []sem.Node{
		{ID: 100, Kind: sem.KindFunctionDecl, Children: []sem.ChildRef{{Role: sem.RoleBody, NodeID: 101}}},
		{ID: 101, Kind: sem.KindBlockStatement, Children: []sem.ChildRef{
			{Role: sem.RoleStatement, NodeID: 120},
			{Role: sem.RoleStatement, NodeID: 102},
		}},
		{ID: 120, Kind: sem.KindExprStatement, Children: []sem.ChildRef{{Role: sem.RoleExpression, NodeID: 121}}},
		{ID: 121, Kind: sem.KindBinary, Operator: "=", Children: []sem.ChildRef{
			{Role: sem.RoleLeft, NodeID: 122},
			{Role: sem.RoleRight, NodeID: 123},
		}},
		{ID: 122, Kind: sem.KindIdentifier, ReferencedSymbolID: 22},
		{ID: 123, Kind: sem.KindIdentifier, ReferencedSymbolID: 11},
		{ID: 102, Kind: sem.KindReturnStatement, Children: []sem.ChildRef{{Role: sem.RoleExpression, NodeID: 103}}},
		{ID: 103, Kind: sem.KindIdentifier, ReferencedSymbolID: 11},
	}

	res := Lower(Request{Model: model})
	m := res.Module
	if errorCount(m.Diagnostics) != 0 {
		t.Fatalf("unexpected errors: %v", m.Diagnostics)
	}
	entry := m.Functions[0].Entry()
	if len(entry.Instrs) != 2 {
		t.Fatalf("instrs = %d, want Store+Return", len(entry.Instrs))
	}
	store := entry.Instrs[0]
	if store.Op != ir.OpStore || len(store.Operands) != 2 {
		t.Fatalf("store instr: %+v", store)
	}
	if store.Operands[0] != 22 || store.Operands[1] != 11 {
		t.Errorf("store operands = %v, want [22 11]", store.Operands)
	}
	if store.Result != ir.NoValue {
		t.Error("Store must not define a result")
	}
	for _, in := range entry.Instrs {
		if in.Op == ir.OpLoad {
			t.Error("writing a global must not load it first")
		}
	}
}

// TestLowerStoreIndexed checks the [target, index, value] shape for
// element writes into a writable resource.
func TestLowerStoreIndexed(t *testing.T) {
	model := passthroughModel()
	model.Symbols = append(model.Symbols,
		sem.Symbol{ID: 20, Kind: "Texture2D", Name: "output", Type: "RWTexture2D<float4>"},
	)
	model.Types = append(model.Types,
		sem.TypeBinding{NodeID: 121, Type: "float4"},
		sem.TypeBinding{NodeID: 130, Type: "float4"},
		sem.TypeBinding{NodeID: 132, Type: "uint2"},
	)
	model.Syntax.Nodes = []sem.Node{
		{ID: 100, Kind: sem.KindFunctionDecl, Children: []sem.ChildRef{{Role: sem.RoleBody, NodeID: 101}}},
		{ID: 101, Kind: sem.KindBlockStatement, Children: []sem.ChildRef{
			{Role: sem.RoleStatement, NodeID: 120},
			{Role: sem.RoleStatement, NodeID: 102},
		}},
		{ID: 120, Kind: sem.KindExprStatement, Children: []sem.ChildRef{{Role: sem.RoleExpression, NodeID: 121}}},
		{ID: 121, Kind: sem.KindBinary, Operator: "=", Children: []sem.ChildRef{
			{Role: sem.RoleLeft, NodeID: 130},
			{Role: sem.RoleRight, NodeID: 123},
		}},
		{ID: 130, Kind: sem.KindIndex, Children: []sem.ChildRef{
			{Role: sem.RoleBase, NodeID: 131},
			{Role: sem.RoleIndex, NodeID: 132},
		}},
		{ID: 131, Kind: sem.KindIdentifier, ReferencedSymbolID: 20},
		{ID: 132, Kind: sem.KindLiteral, Text: "uint2(0,0)"},
		{ID: 123, Kind: sem.KindIdentifier, ReferencedSymbolID: 11},
		{ID: 102, Kind: sem.KindReturnStatement, Children: []sem.ChildRef{{Role: sem.RoleExpression, NodeID: 103}}},
		{ID: 103, Kind: sem.KindIdentifier, ReferencedSymbolID: 11},
	}

	res := Lower(Request{Model: model})
	m := res.Module
	if errorCount(m.Diagnostics) != 0 {
		t.Fatalf("unexpected errors: %v", m.Diagnostics)
	}
	entry := m.Functions[0].Entry()
	if len(entry.Instrs) != 2 {
		t.Fatalf("instrs = %d, want Store+Return", len(entry.Instrs))
	}
	store := entry.Instrs[0]
	if store.Op != ir.OpStore || len(store.Operands) != 3 {
		t.Fatalf("store instr: %+v", store)
	}
	if store.Operands[0] != 20 || store.Operands[2] != 11 {
		t.Errorf("store operands = %v, want [20 <index> 11]", store.Operands)
	}
	idx := m.Value(store.Operands[1])
	if idx == nil || idx.Kind != ir.ValueConstant || idx.Name != "uint2(0,0)" {
		t.Fatalf("index operand: %+v", idx)
	}
	for _, in := range entry.Instrs {
		if in.Op == ir.OpLoad || in.Op == ir.OpIndex {
			t.Errorf("the write path must not read the destination, got %v", in.Op)
		}
	}
}

// TestLowerAssignThroughRValueSwizzle checks the diagnosed failure
// path: a swizzle of an unnamed value is not a place.
func TestLowerAssignThroughRValueSwizzle(t *testing.T) {
	model := passthroughModel()
	model.Types = append(model.Types, sem.TypeBinding{NodeID: 121, Type: "float2"})
	model.Syntax.Nodes = []sem.Node{
		{ID: 100, Kind: sem.KindFunctionDecl, Children: []sem.ChildRef{{Role: sem.RoleBody, NodeID: 101}}},
		{ID: 101, Kind: sem.KindBlockStatement, Children: []sem.ChildRef{
			{Role: sem.RoleStatement, NodeID: 120},
			{Role: sem.RoleStatement, NodeID: 102},
		}},
		{ID: 120, Kind: sem.KindExprStatement, Children: []sem.ChildRef{{Role: sem.RoleExpression, NodeID: 121}}},
		{ID: 121, Kind: sem.KindBinary, Operator: "=", Children: []sem.ChildRef{
			{Role: sem.RoleLeft, NodeID: 122},
			{Role: sem.RoleRight, NodeID: 123},
		}},
		{ID: 122, Kind: sem.KindMemberAccess, Swizzle: "xy",
			Children: []sem.ChildRef{{Role: sem.RoleTarget, NodeID: 123}}},
		{ID: 123, Kind: sem.KindIdentifier, ReferencedSymbolID: 11},
		{ID: 102, Kind: sem.KindReturnStatement, Children: []sem.ChildRef{{Role: sem.RoleExpression, NodeID: 103}}},
		{ID: 103, Kind: sem.KindIdentifier, ReferencedSymbolID: 11},
	}

	res := Lower(Request{Model: model})
	if !hasError(res.Module.Diagnostics, "cannot assign through a swizzle") {
		t.Error("assigning through an unnamed swizzle must be diagnosed")
	}
}
