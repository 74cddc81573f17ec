package ir

import (
	"strconv"
	"strings"
)

// Constant is the eagerly parsed form of a constant value's textual
// name. The canonical text remains the serialized representation; the
// parsed form keeps optimization passes from re-splitting strings.
type Constant struct {
	Type  TypeInfo
	Elems []float64
}

// ParseConstant parses a constant's textual name against its declared
// type. Accepted shapes: a bare scalar literal ("5", "2.5", "true"),
// or a constructor "float3(1,2,3)" whose leading identifier parses to a
// type of the same scalar base. A single element splats across the
// expected component count.
func ParseConstant(name, typ string) (Constant, bool) {
	ti := ParseType(typ)
	expected := ti.Components()
	if expected < 1 || expected > 16 {
		return Constant{}, false
	}

	text := strings.TrimSpace(name)
	var parts []string
	if open := strings.IndexByte(text, '('); open >= 0 {
		if !strings.HasSuffix(text, ")") {
			return Constant{}, false
		}
		ctor := ParseType(text[:open])
		if ctor.Scalar == ScalarInvalid || ctor.Scalar != ti.Scalar {
			return Constant{}, false
		}
		inner := text[open+1 : len(text)-1]
		parts = strings.Split(inner, ",")
	} else {
		parts = []string{text}
	}

	elems := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, ok := parseElem(strings.TrimSpace(p))
		if !ok {
			return Constant{}, false
		}
		elems = append(elems, v)
	}

	switch {
	case len(elems) == expected:
	case len(elems) == 1 && expected > 1:
		// scalar splat: float3(1) reads as (1,1,1)
		splat := elems[0]
		elems = make([]float64, expected)
		for i := range elems {
			elems[i] = splat
		}
	default:
		return Constant{}, false
	}
	return Constant{Type: ti, Elems: elems}, true
}

func parseElem(s string) (float64, bool) {
	switch s {
	case "true":
		return 1, true
	case "false":
		return 0, true
	}
	s = strings.TrimSuffix(strings.TrimSuffix(s, "f"), "h")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Format renders the canonical textual form: bare literal for scalars,
// "<type>(e0,e1,...)" for vectors and matrices. Invariant formatting,
// no trailing zeroes.
func (c Constant) Format() string {
	if len(c.Elems) == 1 {
		return formatElem(c.Elems[0], c.Type.Scalar)
	}
	var b strings.Builder
	b.WriteString(c.Type.Name)
	b.WriteByte('(')
	for i, e := range c.Elems {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(formatElem(e, c.Type.Scalar))
	}
	b.WriteByte(')')
	return b.String()
}

func formatElem(v float64, scalar ScalarKind) string {
	switch scalar {
	case ScalarBool:
		if v != 0 {
			return "true"
		}
		return "false"
	case ScalarInt, ScalarUint:
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
