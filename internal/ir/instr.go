package ir

import "strings"

// BranchTargets carries the structured form of branch-target tags.
// Branch uses Then only; BranchCond uses both.
type BranchTargets struct {
	Then string
	Else string
}

// Instr is one instruction. Swizzle masks, branch targets and callee
// names live in structured fields and fold back into the textual tag at
// serialization; Extra carries any remaining free-form tag payload.
type Instr struct {
	Op       Op
	RawOp    string // wire spelling when Op is OpInvalid
	Operands []ValueID
	Result   ValueID
	Type     string // required when Result is set

	Lanes   []Lane         // Swizzle always, Load optionally
	Targets *BranchTargets // Branch, BranchCond
	Callee  string         // Call and intrinsic-mapped ops
	Extra   string         // store metadata, discard markers, unknown tags

	rawTerm bool // wire terminator flag for unknown ops
}

// OpName returns the wire spelling of the op.
func (in *Instr) OpName() string {
	if in.Op == OpInvalid && in.RawOp != "" {
		return in.RawOp
	}
	return in.Op.String()
}

// Terminator reports whether the instruction ends its block.
func (in *Instr) Terminator() bool {
	if in.Op == OpInvalid {
		return in.rawTerm
	}
	return in.Op.IsTerminator()
}

// Tag renders the instruction's serialized tag. Branch targets win,
// then swizzle lanes, then the callee name, then the free-form payload.
func (in *Instr) Tag() string {
	switch {
	case in.Op == OpBranch && in.Targets != nil:
		return in.Targets.Then
	case in.Op == OpBranchCond && in.Targets != nil:
		return "then:" + in.Targets.Then + ";else:" + in.Targets.Else
	case len(in.Lanes) > 0:
		return SwizzleTag(in.Lanes)
	case in.Callee != "":
		return in.Callee
	}
	return in.Extra
}

// SetTag decodes a wire tag into the structured fields appropriate for
// the instruction's op.
func (in *Instr) SetTag(tag string) {
	if tag == "" {
		return
	}
	switch in.Op {
	case OpBranch:
		in.Targets = &BranchTargets{Then: strings.TrimPrefix(tag, "target:")}
	case OpBranchCond:
		in.Targets = parseBranchTargets(tag)
		if in.Targets == nil {
			in.Extra = tag
		}
	case OpSwizzle, OpLoad:
		if lanes, ok := ParseSwizzle(tag); ok {
			in.Lanes = lanes
		} else {
			in.Extra = tag
		}
	case OpCall, OpSample, OpDot, OpNormalize, OpSaturate, OpSin, OpCos,
		OpAbs, OpMin, OpMax, OpClamp, OpLerp, OpPow, OpExp, OpLog, OpStep,
		OpSmoothStep, OpReflect, OpRefract, OpAtan2, OpFma, OpDdx, OpDdy,
		OpLength, OpRsqrt, OpRcp, OpMul:
		in.Callee = tag
	default:
		in.Extra = tag
	}
}

func parseBranchTargets(tag string) *BranchTargets {
	var t BranchTargets
	seen := 0
	for _, part := range strings.Split(tag, ";") {
		switch {
		case strings.HasPrefix(part, "then:"):
			t.Then = part[len("then:"):]
			seen++
		case strings.HasPrefix(part, "else:"):
			t.Else = part[len("else:"):]
			seen++
		default:
			return nil
		}
	}
	if seen != 2 || t.Then == "" || t.Else == "" {
		return nil
	}
	return &t
}

// SideEffectful reports whether the instruction must be preserved by
// DCE and acts as a CSE barrier: the Sample family, Store, and any
// instruction whose tag mentions discard.
func (in *Instr) SideEffectful() bool {
	if in.Op == OpStore {
		return true
	}
	if strings.Contains(in.OpName(), "Sample") {
		return true
	}
	return strings.Contains(in.Tag(), "discard")
}

// Pure reports whether DCE may delete and CSE may merge the
// instruction.
func (in *Instr) Pure() bool {
	return in.Op.Pure() && !in.SideEffectful()
}
