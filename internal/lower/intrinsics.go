package lower

import (
	"strings"

	"openfxc/internal/ir"
)

// intrinsicOps maps lower-case intrinsic names to abstract ops.
var intrinsicOps = map[string]ir.Op{
	"mul":        ir.OpMul,
	"dot":        ir.OpDot,
	"normalize":  ir.OpNormalize,
	"saturate":   ir.OpSaturate,
	"sin":        ir.OpSin,
	"cos":        ir.OpCos,
	"abs":        ir.OpAbs,
	"min":        ir.OpMin,
	"max":        ir.OpMax,
	"clamp":      ir.OpClamp,
	"lerp":       ir.OpLerp,
	"pow":        ir.OpPow,
	"exp":        ir.OpExp,
	"log":        ir.OpLog,
	"step":       ir.OpStep,
	"smoothstep": ir.OpSmoothStep,
	"reflect":    ir.OpReflect,
	"refract":    ir.OpRefract,
	"atan2":      ir.OpAtan2,
	"fma":        ir.OpFma,
	"ddx":        ir.OpDdx,
	"ddy":        ir.OpDdy,
	"length":     ir.OpLength,
	"rsqrt":      ir.OpRsqrt,
	"rcp":        ir.OpRcp,
}

// intrinsicOp resolves a callee name to its abstract op. Every texture
// fetch variant (tex2D, tex2Dlod, texCUBE, ...) maps to Sample, as does
// the literal "sample".
func intrinsicOp(callee string) (ir.Op, bool) {
	name := strings.ToLower(callee)
	if strings.HasPrefix(name, "tex") || name == "sample" {
		return ir.OpSample, true
	}
	op, ok := intrinsicOps[name]
	return op, ok
}
