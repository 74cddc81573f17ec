package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lowering
	LowInfo                 Code = 1000
	LowNoEntryPoint         Code = 1001
	LowNoEntrySymbol        Code = 1002
	LowUnresolvedReference  Code = 1003
	LowUnsupportedConstruct Code = 1004
	LowUnsupportedIntrinsic Code = 1005
	LowUnknownOperator      Code = 1006
	LowAmbiguousIdentifier  Code = 1007

	// Optimization
	OptInfo        Code = 2000
	OptUnknownPass Code = 2001
	OptPassRan     Code = 2002

	// Invariants
	InvInfo             Code = 3000
	InvBadFormatVersion Code = 3001
	InvValueID          Code = 3002
	InvValueType        Code = 3003
	InvUnknownOperand   Code = 3004
	InvMultipleDefs     Code = 3005
	InvBadTerminator    Code = 3006
	InvDuplicateBlock   Code = 3007
	InvUnreachableBlock Code = 3008
	InvBadBranchTargets Code = 3009
	InvBadConditionType Code = 3010
	InvTypeRule         Code = 3011
	InvBackendLeak      Code = 3012
	InvEmptyFunction    Code = 3013
)

// ID returns the stable textual form used on the wire and in golden
// files, e.g. "OFX1003".
func (c Code) ID() string {
	return fmt.Sprintf("OFX%04d", uint16(c))
}

// ParseCode recovers a Code from its wire form. Anything unrecognized
// maps to UnknownCode.
func ParseCode(s string) Code {
	var n uint16
	if _, err := fmt.Sscanf(s, "OFX%04d", &n); err != nil {
		return UnknownCode
	}
	return Code(n)
}
