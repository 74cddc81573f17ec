package lower

import (
	"openfxc/internal/diag"
	"openfxc/internal/ir"
	"openfxc/internal/sem"
)

// loadableKinds are symbol kinds whose reads go through an explicit
// Load; everything else dereferences to its value directly.
var loadableKinds = map[string]bool{
	sem.SymGlobal:      true,
	sem.SymCBuffer:     true,
	sem.SymBuffer:      true,
	sem.SymStructField: true,
	sem.SymCBufferVar:  true,
}

var binaryOps = map[string]ir.Op{
	"+":  ir.OpAdd,
	"-":  ir.OpSub,
	"*":  ir.OpMul,
	"/":  ir.OpDiv,
	"%":  ir.OpMod,
	"==": ir.OpEq,
	"!=": ir.OpNe,
	"<":  ir.OpLt,
	"<=": ir.OpLe,
	">":  ir.OpGt,
	">=": ir.OpGe,
	"&&": ir.OpLogicalAnd,
	"||": ir.OpLogicalOr,
}

// lowerExpr lowers one expression node and returns the value holding
// its result. A false result means the node could not be lowered; the
// error is already in the bag.
func (l *lowerer) lowerExpr(nodeID int32) (ir.ValueID, bool) {
	node := l.idx.Node(nodeID)
	if node == nil {
		l.errorf(diag.LowUnresolvedReference, "expression node %d is missing from the syntax graph", nodeID)
		return ir.NoValue, false
	}
	switch node.Kind {
	case sem.KindIdentifier:
		return l.lowerIdentifier(node)
	case sem.KindMemberAccess:
		return l.lowerMemberAccess(node)
	case sem.KindLiteral:
		return l.constValue(node.Text, l.idx.NodeType(node.ID)), true
	case sem.KindUnary:
		return l.lowerUnary(node)
	case sem.KindBinary:
		return l.lowerBinary(node)
	case sem.KindCall:
		return l.lowerCall(node)
	case sem.KindCast:
		return l.lowerCast(node)
	case sem.KindIndex:
		return l.lowerIndex(node)
	}
	l.errorf(diag.LowUnsupportedConstruct, "unsupported expression kind %q (node %d)", node.Kind, node.ID)
	return ir.NoValue, false
}

func (l *lowerer) lowerIdentifier(node *sem.Node) (ir.ValueID, bool) {
	if node.ReferencedSymbolID != 0 {
		sym := l.idx.Symbol(node.ReferencedSymbolID)
		if sym == nil {
			l.errorf(diag.LowUnresolvedReference,
				"identifier node %d references unknown symbol %d", node.ID, node.ReferencedSymbolID)
			return ir.NoValue, false
		}
		return l.symbolRead(node, sym, nil)
	}
	return l.inferIdentifier(node)
}

// inferIdentifier resolves an unreferenced identifier by type
// uniqueness among field-like symbols.
func (l *lowerer) inferIdentifier(node *sem.Node) (ir.ValueID, bool) {
	match, ok := l.inferFieldSymbol(node)
	if !ok {
		return ir.NoValue, false
	}
	return l.symbolRead(node, match, nil)
}

// inferFieldSymbol finds the unique field-like symbol whose type
// matches the node's semantic type. Ambiguity and absence are both
// diagnosed.
func (l *lowerer) inferFieldSymbol(node *sem.Node) (*sem.Symbol, bool) {
	want := l.idx.NodeType(node.ID)
	var match *sem.Symbol
	for i := range l.idx.Model.Symbols {
		sym := &l.idx.Model.Symbols[i]
		switch sym.Kind {
		case sem.SymStructField, sem.SymCBufferVar, sem.SymGlobal:
		default:
			continue
		}
		if sym.Type != want {
			continue
		}
		if match != nil {
			l.errorf(diag.LowAmbiguousIdentifier,
				"identifier node %d is ambiguous: several field-like symbols have type %s", node.ID, want)
			return nil, false
		}
		match = sym
	}
	if match == nil {
		l.errorf(diag.LowUnresolvedReference,
			"identifier node %d has no backing symbol", node.ID)
		return nil, false
	}
	return match, true
}

// symbolValueKind maps a semantic symbol kind to the value kind its
// binding carries.
func symbolValueKind(sym *sem.Symbol) ir.ValueKind {
	kind := ir.ValueKind(sym.Kind)
	switch {
	case kind.IsResourceLike():
	case sym.Kind == sem.SymParameter:
		kind = ir.ValueParameter
	case sym.Kind == sem.SymStructField:
		kind = ir.ValueStructMember
	case sym.Kind == sem.SymCBufferVar:
		kind = ir.ValueCBufferMember
	default:
		kind = ir.ValueTemp
	}
	return kind
}

// symbolRead materializes a symbol reference: loadable symbols go
// through Load, everything else yields the symbol's value directly.
func (l *lowerer) symbolRead(node *sem.Node, sym *sem.Symbol, lanes []ir.Lane) (ir.ValueID, bool) {
	val := l.bindSymbolValue(sym, symbolValueKind(sym))
	if !loadableKinds[sym.Kind] {
		return val.ID, true
	}
	result := l.newTemp(l.idx.NodeType(node.ID))
	l.emit(&ir.Instr{
		Op:       ir.OpLoad,
		Operands: []ir.ValueID{val.ID},
		Result:   result,
		Type:     l.idx.NodeType(node.ID),
		Lanes:    lanes,
	})
	return result, true
}

func (l *lowerer) lowerMemberAccess(node *sem.Node) (ir.ValueID, bool) {
	if node.ReferencedSymbolID != 0 {
		sym := l.idx.Symbol(node.ReferencedSymbolID)
		if sym == nil {
			l.errorf(diag.LowUnresolvedReference,
				"member access node %d references unknown symbol %d", node.ID, node.ReferencedSymbolID)
			return ir.NoValue, false
		}
		var lanes []ir.Lane
		if node.Swizzle != "" {
			if parsed, ok := ir.ParseSwizzle(node.Swizzle); ok {
				lanes = parsed
			}
		}
		return l.symbolRead(node, sym, lanes)
	}

	// Pure swizzle over a lowered source expression.
	lanes, ok := ir.ParseSwizzle(node.Swizzle)
	if !ok {
		l.errorf(diag.LowUnsupportedConstruct,
			"member access node %d has neither a symbol nor a swizzle", node.ID)
		return ir.NoValue, false
	}
	srcID, ok := l.childExpr(node, sem.RoleTarget)
	if !ok {
		return ir.NoValue, false
	}
	result := l.newTemp(l.idx.NodeType(node.ID))
	l.emit(&ir.Instr{
		Op:       ir.OpSwizzle,
		Operands: []ir.ValueID{srcID},
		Result:   result,
		Type:     l.idx.NodeType(node.ID),
		Lanes:    lanes,
	})
	return result, true
}

func (l *lowerer) lowerUnary(node *sem.Node) (ir.ValueID, bool) {
	operand, ok := l.childExpr(node, sem.RoleOperand)
	if !ok {
		return ir.NoValue, false
	}
	var op ir.Op
	switch node.Operator {
	case "+":
		return operand, true
	case "-":
		op = ir.OpNegate
	case "!":
		op = ir.OpNot
	case "~":
		op = ir.OpBitNot
	default:
		l.errorf(diag.LowUnknownOperator,
			"unknown unary operator %q (node %d)", node.Operator, node.ID)
		return ir.NoValue, false
	}
	result := l.newTemp(l.idx.NodeType(node.ID))
	l.emit(&ir.Instr{
		Op:       op,
		Operands: []ir.ValueID{operand},
		Result:   result,
		Type:     l.idx.NodeType(node.ID),
	})
	return result, true
}

func (l *lowerer) lowerBinary(node *sem.Node) (ir.ValueID, bool) {
	if node.Operator == "=" {
		return l.lowerAssignment(node)
	}
	op, known := binaryOps[node.Operator]
	if !known {
		l.errorf(diag.LowUnknownOperator,
			"unknown binary operator %q (node %d)", node.Operator, node.ID)
		return ir.NoValue, false
	}
	lhs, okL := l.childExpr(node, sem.RoleLeft)
	rhs, okR := l.childExpr(node, sem.RoleRight)
	if !okL || !okR {
		return ir.NoValue, false
	}
	result := l.newTemp(l.idx.NodeType(node.ID))
	l.emit(&ir.Instr{
		Op:       op,
		Operands: []ir.ValueID{lhs, rhs},
		Result:   result,
		Type:     l.idx.NodeType(node.ID),
	})
	return result, true
}

func (l *lowerer) lowerCall(node *sem.Node) (ir.ValueID, bool) {
	var args []ir.ValueID
	for _, argID := range node.ChildrenWithRole(sem.RoleArgument) {
		arg, ok := l.lowerExpr(argID)
		if !ok {
			return ir.NoValue, false
		}
		args = append(args, arg)
	}

	op := ir.OpCall
	if node.CalleeKind == "Intrinsic" {
		mapped, known := intrinsicOp(node.CalleeName)
		if known {
			op = mapped
		} else {
			l.errorf(diag.LowUnsupportedIntrinsic,
				"unsupported intrinsic %q (node %d)", node.CalleeName, node.ID)
		}
	}

	in := &ir.Instr{Op: op, Operands: args, Callee: node.CalleeName}
	if typ := l.idx.NodeType(node.ID); typ != "void" {
		in.Result = l.newTemp(typ)
		in.Type = typ
	}
	l.emit(in)
	if in.Result == ir.NoValue {
		return ir.NoValue, true
	}
	return in.Result, true
}

func (l *lowerer) lowerCast(node *sem.Node) (ir.ValueID, bool) {
	operand, ok := l.childExpr(node, sem.RoleOperand)
	if !ok {
		return ir.NoValue, false
	}
	result := l.newTemp(l.idx.NodeType(node.ID))
	l.emit(&ir.Instr{
		Op:       ir.OpCast,
		Operands: []ir.ValueID{operand},
		Result:   result,
		Type:     l.idx.NodeType(node.ID),
	})
	return result, true
}

func (l *lowerer) lowerIndex(node *sem.Node) (ir.ValueID, bool) {
	base, okB := l.childExpr(node, sem.RoleBase)
	index, okI := l.childExpr(node, sem.RoleIndex)
	if !okB || !okI {
		return ir.NoValue, false
	}
	result := l.newTemp(l.idx.NodeType(node.ID))
	l.emit(&ir.Instr{
		Op:       ir.OpIndex,
		Operands: []ir.ValueID{base, index},
		Result:   result,
		Type:     l.idx.NodeType(node.ID),
	})
	return result, true
}

// childExpr lowers the child with the given role, falling back to the
// node's first child when the role is absent.
func (l *lowerer) childExpr(node *sem.Node, role string) (ir.ValueID, bool) {
	if id, ok := node.Child(role); ok {
		return l.lowerExpr(id)
	}
	if len(node.Children) > 0 {
		return l.lowerExpr(node.Children[0].NodeID)
	}
	l.errorf(diag.LowUnsupportedConstruct,
		"node %d (%s) is missing its %s child", node.ID, node.Kind, role)
	return ir.NoValue, false
}
