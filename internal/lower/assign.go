package lower

import (
	"openfxc/internal/diag"
	"openfxc/internal/ir"
	"openfxc/internal/sem"
)

// lowerAssignment lowers the "=" operator as a write, never as a read
// of its left-hand side. Three target shapes exist:
//
//   - a local or parameter name: the right-hand value becomes the
//     name's new binding through a one-operand Assign (locals
//     round-trip through named values, not phis);
//   - a loadable or resource symbol: an explicit Store [target, value];
//   - an indexed element: a Store [target, index, value].
//
// The expression's value is the stored value, so chained assignments
// and expression statements both work.
func (l *lowerer) lowerAssignment(node *sem.Node) (ir.ValueID, bool) {
	targetID, ok := node.Child(sem.RoleLeft)
	if !ok {
		l.errorf(diag.LowUnsupportedConstruct,
			"assignment node %d is missing its left child", node.ID)
		return ir.NoValue, false
	}
	target := l.idx.Node(targetID)
	if target == nil {
		l.errorf(diag.LowUnresolvedReference,
			"assignment target node %d is missing from the syntax graph", targetID)
		return ir.NoValue, false
	}

	switch target.Kind {
	case sem.KindIdentifier, sem.KindMemberAccess:
		return l.assignSymbol(node, target)
	case sem.KindIndex:
		return l.assignElement(node, target)
	}
	l.errorf(diag.LowUnsupportedConstruct,
		"cannot assign through %q (node %d)", target.Kind, target.ID)
	return ir.NoValue, false
}

// assignSymbol writes through a named target.
func (l *lowerer) assignSymbol(node, target *sem.Node) (ir.ValueID, bool) {
	sym, ok := l.targetSymbol(target)
	if !ok {
		return ir.NoValue, false
	}
	value, ok := l.childExpr(node, sem.RoleRight)
	if !ok {
		return ir.NoValue, false
	}

	if loadableKinds[sym.Kind] || ir.ValueKind(sym.Kind).IsResourceLike() {
		dst := l.bindSymbolValue(sym, symbolValueKind(sym))
		in := &ir.Instr{Op: ir.OpStore, Operands: []ir.ValueID{dst.ID, value}}
		if target.Swizzle != "" {
			in.Extra = target.Swizzle
		}
		l.emit(in)
		return value, true
	}

	// Local or parameter: a fresh value becomes the name's binding so
	// every read after this point sees the assigned value.
	if target.Swizzle != "" {
		l.errorf(diag.LowUnsupportedConstruct,
			"masked write to %q (node %d) is not supported", sym.Name, target.ID)
		return ir.NoValue, false
	}
	typ := sym.Type
	if typ == "" {
		typ = l.idx.NodeType(node.ID)
	}
	result := l.newTemp(typ)
	l.emit(&ir.Instr{
		Op:       ir.OpAssign,
		Operands: []ir.ValueID{value},
		Result:   result,
		Type:     typ,
	})
	l.symValues[sym.ID] = result
	return result, true
}

// assignElement writes one element of an indexed target.
func (l *lowerer) assignElement(node, target *sem.Node) (ir.ValueID, bool) {
	baseID, ok := target.Child(sem.RoleBase)
	if !ok {
		l.errorf(diag.LowUnsupportedConstruct,
			"index target node %d is missing its base child", target.ID)
		return ir.NoValue, false
	}
	base, ok := l.targetRef(baseID)
	if !ok {
		return ir.NoValue, false
	}
	index, ok := l.childExpr(target, sem.RoleIndex)
	if !ok {
		return ir.NoValue, false
	}
	value, ok := l.childExpr(node, sem.RoleRight)
	if !ok {
		return ir.NoValue, false
	}
	l.emit(&ir.Instr{Op: ir.OpStore, Operands: []ir.ValueID{base, index, value}})
	return value, true
}

// targetSymbol resolves a write target to its symbol without emitting
// a read of it.
func (l *lowerer) targetSymbol(target *sem.Node) (*sem.Symbol, bool) {
	if target.ReferencedSymbolID != 0 {
		sym := l.idx.Symbol(target.ReferencedSymbolID)
		if sym == nil {
			l.errorf(diag.LowUnresolvedReference,
				"assignment target node %d references unknown symbol %d",
				target.ID, target.ReferencedSymbolID)
			return nil, false
		}
		return sym, true
	}
	if target.Kind == sem.KindIdentifier {
		return l.inferFieldSymbol(target)
	}
	l.errorf(diag.LowUnsupportedConstruct,
		"cannot assign through a swizzle of an unnamed value (node %d)", target.ID)
	return nil, false
}

// targetRef resolves the base of an indexed write to the value being
// stored into. Named bases bind directly (storing must not read the
// destination); anything else lowers as an ordinary expression.
func (l *lowerer) targetRef(nodeID int32) (ir.ValueID, bool) {
	n := l.idx.Node(nodeID)
	if n != nil && (n.Kind == sem.KindIdentifier || n.Kind == sem.KindMemberAccess) {
		sym, ok := l.targetSymbol(n)
		if !ok {
			return ir.NoValue, false
		}
		return l.bindSymbolValue(sym, symbolValueKind(sym)).ID, true
	}
	return l.lowerExpr(nodeID)
}
