package ir

// Op enumerates the closed instruction grammar. The wire format carries
// the textual name; unknown names decode as OpInvalid with the raw
// spelling preserved so the validator can inspect it.
type Op uint8

const (
	OpInvalid Op = iota
	OpNop
	OpLoad
	OpStore
	OpSample
	OpIndex
	OpSwizzle
	OpCast
	OpAssign
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLogicalAnd
	OpLogicalOr
	OpNegate
	OpNot
	OpBitNot
	OpUnary
	OpCall
	OpReturn
	OpBranch
	OpBranchCond

	// Abstract intrinsic operations.
	OpDot
	OpNormalize
	OpSaturate
	OpSin
	OpCos
	OpAbs
	OpMin
	OpMax
	OpClamp
	OpLerp
	OpPow
	OpExp
	OpLog
	OpStep
	OpSmoothStep
	OpReflect
	OpRefract
	OpAtan2
	OpFma
	OpDdx
	OpDdy
	OpLength
	OpRsqrt
	OpRcp
)

var opNames = map[Op]string{
	OpNop:        "Nop",
	OpLoad:       "Load",
	OpStore:      "Store",
	OpSample:     "Sample",
	OpIndex:      "Index",
	OpSwizzle:    "Swizzle",
	OpCast:       "Cast",
	OpAssign:     "Assign",
	OpAdd:        "Add",
	OpSub:        "Sub",
	OpMul:        "Mul",
	OpDiv:        "Div",
	OpMod:        "Mod",
	OpEq:         "Eq",
	OpNe:         "Ne",
	OpLt:         "Lt",
	OpLe:         "Le",
	OpGt:         "Gt",
	OpGe:         "Ge",
	OpLogicalAnd: "LogicalAnd",
	OpLogicalOr:  "LogicalOr",
	OpNegate:     "Negate",
	OpNot:        "Not",
	OpBitNot:     "BitNot",
	OpUnary:      "Unary",
	OpCall:       "Call",
	OpReturn:     "Return",
	OpBranch:     "Branch",
	OpBranchCond: "BranchCond",
	OpDot:        "Dot",
	OpNormalize:  "Normalize",
	OpSaturate:   "Saturate",
	OpSin:        "Sin",
	OpCos:        "Cos",
	OpAbs:        "Abs",
	OpMin:        "Min",
	OpMax:        "Max",
	OpClamp:      "Clamp",
	OpLerp:       "Lerp",
	OpPow:        "Pow",
	OpExp:        "Exp",
	OpLog:        "Log",
	OpStep:       "Step",
	OpSmoothStep: "SmoothStep",
	OpReflect:    "Reflect",
	OpRefract:    "Refract",
	OpAtan2:      "Atan2",
	OpFma:        "Fma",
	OpDdx:        "Ddx",
	OpDdy:        "Ddy",
	OpLength:     "Length",
	OpRsqrt:      "Rsqrt",
	OpRcp:        "Rcp",
}

var opByName = func() map[string]Op {
	m := make(map[string]Op, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	return m
}()

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "Invalid"
}

// ParseOp resolves a wire op name. The second result is false for
// names outside the grammar.
func ParseOp(name string) (Op, bool) {
	op, ok := opByName[name]
	return op, ok
}

// IsTerminator reports whether the op ends a basic block.
func (o Op) IsTerminator() bool {
	switch o {
	case OpReturn, OpBranch, OpBranchCond:
		return true
	}
	return false
}

// IsBinary reports whether the op is a two-operand arithmetic or
// comparison operation subject to the scalar-match type rule.
func (o Op) IsBinary() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// IsComparison reports whether the op produces a bool result from two
// numeric operands.
func (o Op) IsComparison() bool {
	switch o {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// IsLogical reports whether the op is LogicalAnd or LogicalOr.
func (o Op) IsLogical() bool {
	return o == OpLogicalAnd || o == OpLogicalOr
}

// Pure reports whether the op belongs to the closed pure set used by
// DCE and CSE. Purity is a property of the op alone; side effects
// carried through tags are checked by Instr.SideEffectful.
func (o Op) Pure() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod,
		OpEq, OpNe, OpLt, OpLe, OpGt, OpGe,
		OpLogicalAnd, OpLogicalOr,
		OpSwizzle, OpCast, OpAssign, OpIndex:
		return true
	}
	return false
}
