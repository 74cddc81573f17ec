package ir

import (
	"strings"
)

// ScalarKind identifies the scalar base of a numeric type.
type ScalarKind uint8

const (
	ScalarInvalid ScalarKind = iota
	ScalarFloat
	ScalarHalf
	ScalarDouble
	ScalarInt
	ScalarUint
	ScalarBool
)

var scalarNames = map[ScalarKind]string{
	ScalarFloat:  "float",
	ScalarHalf:   "half",
	ScalarDouble: "double",
	ScalarInt:    "int",
	ScalarUint:   "uint",
	ScalarBool:   "bool",
}

func (s ScalarKind) String() string {
	if name, ok := scalarNames[s]; ok {
		return name
	}
	return "invalid"
}

// IsNumeric reports whether the scalar participates in arithmetic type
// rules. bool is numeric for the purposes of constant parsing but not
// for the binary-op scalar-match rule.
func (s ScalarKind) IsNumeric() bool {
	switch s {
	case ScalarFloat, ScalarHalf, ScalarDouble, ScalarInt, ScalarUint:
		return true
	}
	return false
}

// TypeClass partitions the type grammar.
type TypeClass uint8

const (
	ClassUnknown TypeClass = iota
	ClassVoid
	ClassScalar
	ClassVector
	ClassMatrix
	ClassResource
	ClassNamed
)

// TypeInfo is the parsed form of a type descriptor string. The string
// stays the single serialized form; TypeInfo exists so passes and the
// validator never re-split descriptors.
type TypeInfo struct {
	Class  TypeClass
	Scalar ScalarKind
	Rows   int // matrix rows
	Cols   int // vector width or matrix columns
	Name   string
}

// resource type prefixes from the closed grammar. Generic arguments
// (`Texture2D<float4>`) are opaque to the middle end.
var resourcePrefixes = []string{
	"Texture",
	"RWTexture",
	"SamplerState",
	"SamplerComparisonState",
	"StructuredBuffer",
	"RWStructuredBuffer",
	"Buffer",
	"RWBuffer",
	"cbuffer",
	"ConstantBuffer",
}

// ParseType parses a type descriptor. It never fails: descriptors
// outside the grammar classify as ClassNamed so foreign documents stay
// representable (the validator reports them where a rule needs more).
func ParseType(s string) TypeInfo {
	s = strings.TrimSpace(s)
	if s == "" || s == "unknown" {
		return TypeInfo{Class: ClassUnknown, Name: s}
	}
	if s == "void" {
		return TypeInfo{Class: ClassVoid, Name: s}
	}
	for _, prefix := range resourcePrefixes {
		if strings.HasPrefix(s, prefix) {
			return TypeInfo{Class: ClassResource, Name: s}
		}
	}
	for kind, name := range scalarNames {
		if !strings.HasPrefix(s, name) {
			continue
		}
		rest := s[len(name):]
		if rest == "" {
			return TypeInfo{Class: ClassScalar, Scalar: kind, Rows: 1, Cols: 1, Name: s}
		}
		if len(rest) == 1 && rest[0] >= '2' && rest[0] <= '4' {
			return TypeInfo{Class: ClassVector, Scalar: kind, Rows: 1, Cols: int(rest[0] - '0'), Name: s}
		}
		if len(rest) == 3 && rest[1] == 'x' &&
			rest[0] >= '1' && rest[0] <= '4' && rest[2] >= '1' && rest[2] <= '4' {
			return TypeInfo{
				Class:  ClassMatrix,
				Scalar: kind,
				Rows:   int(rest[0] - '0'),
				Cols:   int(rest[2] - '0'),
				Name:   s,
			}
		}
	}
	return TypeInfo{Class: ClassNamed, Name: s}
}

// Components returns the number of elements a constant of this type
// carries: 1 for scalars, the width for vectors, rows*cols for
// matrices, 0 for everything else.
func (t TypeInfo) Components() int {
	switch t.Class {
	case ClassScalar:
		return 1
	case ClassVector:
		return t.Cols
	case ClassMatrix:
		return t.Rows * t.Cols
	}
	return 0
}

// LaneCount returns the component-mask width used by component-level
// liveness: 1 for scalars, the vector width for vectors, and 4 (fully
// live) for everything else.
func (t TypeInfo) LaneCount() int {
	switch t.Class {
	case ClassScalar:
		return 1
	case ClassVector:
		return t.Cols
	}
	return 4
}

// WithComponents rebuilds a scalar/vector descriptor over the same
// scalar base with the given component count. Used by component-level
// DCE when narrowing swizzle results.
func (t TypeInfo) WithComponents(n int) string {
	if t.Scalar == ScalarInvalid || n < 1 || n > 4 {
		return t.Name
	}
	base := t.Scalar.String()
	if n == 1 {
		return base
	}
	return base + string(rune('0'+n))
}

// SameScalar reports whether two types share a numeric scalar base.
func SameScalar(a, b TypeInfo) bool {
	return a.Scalar != ScalarInvalid && a.Scalar == b.Scalar
}
