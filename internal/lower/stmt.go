package lower

import (
	"openfxc/internal/diag"
	"openfxc/internal/ir"
	"openfxc/internal/sem"
)

// lowerStatementList lowers the statements of a block-like node in
// order. Once the current block terminates (a Return on every path),
// the remaining statements are ignored.
func (l *lowerer) lowerStatementList(node *sem.Node) {
	stmts := node.ChildrenWithRole(sem.RoleStatement)
	if len(stmts) == 0 {
		for _, c := range node.Children {
			stmts = append(stmts, c.NodeID)
		}
	}
	for _, id := range stmts {
		if l.cur.Terminated() {
			return
		}
		l.lowerStmt(id)
	}
}

func (l *lowerer) lowerStmt(nodeID int32) {
	node := l.idx.Node(nodeID)
	if node == nil {
		l.errorf(diag.LowUnresolvedReference, "statement node %d is missing from the syntax graph", nodeID)
		return
	}
	switch node.Kind {
	case sem.KindBlockStatement:
		l.lowerStatementList(node)
	case sem.KindExprStatement:
		if id, ok := node.Child(sem.RoleExpression); ok {
			l.lowerExpr(id)
		} else if len(node.Children) > 0 {
			l.lowerExpr(node.Children[0].NodeID)
		}
	case sem.KindVarDecl:
		l.lowerVarDecl(node)
	case sem.KindReturnStatement:
		l.lowerReturn(node)
	case sem.KindIfStatement:
		l.lowerIf(node)
	case sem.KindWhileStatement:
		l.lowerWhile(node)
	case sem.KindDoWhileStatement:
		l.lowerDoWhile(node)
	case sem.KindForStatement:
		l.lowerFor(node)
	default:
		l.errorf(diag.LowUnsupportedConstruct,
			"unsupported statement kind %q (node %d)", node.Kind, node.ID)
	}
}

// lowerVarDecl binds a local to a named value. With an initializer the
// local's value is defined by an Assign; without one the name simply
// exists until something assigns through it.
func (l *lowerer) lowerVarDecl(node *sem.Node) {
	sym := l.idx.Symbol(node.ReferencedSymbolID)
	if sym == nil {
		l.errorf(diag.LowUnresolvedReference,
			"declaration node %d has no backing symbol", node.ID)
		return
	}
	local := l.bindSymbolValue(sym, ir.ValueTemp)
	initID, ok := node.Child(sem.RoleInitializer)
	if !ok {
		return
	}
	init, lowered := l.lowerExpr(initID)
	if !lowered {
		init = l.undefValue(local.Type)
	}
	l.emit(&ir.Instr{
		Op:       ir.OpAssign,
		Operands: []ir.ValueID{init},
		Result:   local.ID,
		Type:     local.Type,
	})
}

func (l *lowerer) lowerReturn(node *sem.Node) {
	ret := &ir.Instr{Op: ir.OpReturn}
	if exprID, ok := node.Child(sem.RoleExpression); ok {
		if val, lowered := l.lowerExpr(exprID); lowered {
			ret.Operands = []ir.ValueID{val}
		} else {
			ret.Operands = []ir.ValueID{l.undefValue(l.fn.ReturnType)}
		}
	} else if l.fn.ReturnType != "void" {
		ret.Operands = []ir.ValueID{l.undefValue(l.fn.ReturnType)}
	}
	l.emit(ret)
}

// condition lowers a control-flow condition, substituting an Undef bool
// when the expression cannot be lowered so the construct still shapes
// the CFG.
func (l *lowerer) condition(node *sem.Node) ir.ValueID {
	if condID, ok := node.Child(sem.RoleCondition); ok {
		if val, lowered := l.lowerExpr(condID); lowered {
			return val
		}
	} else {
		l.errorf(diag.LowUnsupportedConstruct,
			"%s node %d has no condition", node.Kind, node.ID)
	}
	return l.undefValue("bool")
}

func (l *lowerer) lowerIf(node *sem.Node) {
	cond := l.condition(node)

	thenL := l.newLabel("then")
	elseID, hasElse := node.Child(sem.RoleElse)
	elseL := ""
	if hasElse {
		elseL = l.newLabel("else")
	}
	mergeL := l.newLabel("merge")

	elseTarget := elseL
	if elseTarget == "" {
		elseTarget = mergeL
	}
	l.emit(&ir.Instr{
		Op:       ir.OpBranchCond,
		Operands: []ir.ValueID{cond},
		Targets:  &ir.BranchTargets{Then: thenL, Else: elseTarget},
	})

	l.startBlock(thenL)
	if thenID, ok := node.Child(sem.RoleThen); ok {
		l.lowerStmt(thenID)
	}
	if !l.cur.Terminated() {
		l.branchTo(mergeL)
	}

	if hasElse {
		l.startBlock(elseL)
		l.lowerStmt(elseID)
		if !l.cur.Terminated() {
			l.branchTo(mergeL)
		}
	}

	l.startBlock(mergeL)
}

func (l *lowerer) lowerWhile(node *sem.Node) {
	condL := l.newLabel("while.cond")
	bodyL := l.newLabel("while.body")
	exitL := l.newLabel("while.exit")

	l.branchTo(condL)

	l.startBlock(condL)
	cond := l.condition(node)
	l.emit(&ir.Instr{
		Op:       ir.OpBranchCond,
		Operands: []ir.ValueID{cond},
		Targets:  &ir.BranchTargets{Then: bodyL, Else: exitL},
	})

	l.startBlock(bodyL)
	if bodyID, ok := node.Child(sem.RoleBody); ok {
		l.lowerStmt(bodyID)
	}
	if !l.cur.Terminated() {
		l.branchTo(condL)
	}

	l.startBlock(exitL)
}

func (l *lowerer) lowerDoWhile(node *sem.Node) {
	bodyL := l.newLabel("do.body")
	condL := l.newLabel("do.cond")
	exitL := l.newLabel("do.exit")

	l.branchTo(bodyL)

	l.startBlock(bodyL)
	if bodyID, ok := node.Child(sem.RoleBody); ok {
		l.lowerStmt(bodyID)
	}
	if !l.cur.Terminated() {
		l.branchTo(condL)
	}

	l.startBlock(condL)
	cond := l.condition(node)
	l.emit(&ir.Instr{
		Op:       ir.OpBranchCond,
		Operands: []ir.ValueID{cond},
		Targets:  &ir.BranchTargets{Then: bodyL, Else: exitL},
	})

	l.startBlock(exitL)
}

func (l *lowerer) lowerFor(node *sem.Node) {
	if initID, ok := node.Child(sem.RoleInit); ok {
		l.lowerStmt(initID)
	}

	condL := l.newLabel("for.cond")
	bodyL := l.newLabel("for.body")
	incrL := l.newLabel("for.incr")
	exitL := l.newLabel("for.exit")

	l.branchTo(condL)

	l.startBlock(condL)
	var cond ir.ValueID
	if _, ok := node.Child(sem.RoleCondition); ok {
		cond = l.condition(node)
	} else {
		cond = l.constValue("true", "bool")
	}
	l.emit(&ir.Instr{
		Op:       ir.OpBranchCond,
		Operands: []ir.ValueID{cond},
		Targets:  &ir.BranchTargets{Then: bodyL, Else: exitL},
	})

	l.startBlock(bodyL)
	if bodyID, ok := node.Child(sem.RoleBody); ok {
		l.lowerStmt(bodyID)
	}
	if !l.cur.Terminated() {
		l.branchTo(incrL)
	}

	l.startBlock(incrL)
	if incrID, ok := node.Child(sem.RoleIncrement); ok {
		l.lowerExpr(incrID)
	}
	l.branchTo(condL)

	l.startBlock(exitL)
}
