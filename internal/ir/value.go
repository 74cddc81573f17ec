package ir

// ValueID identifies a value within a module. Valid ids are positive;
// zero means "no value".
type ValueID int32

// NoValue is the absent-value sentinel.
const NoValue ValueID = 0

// ValueKind classifies how a value came to exist. The set is closed
// except for the texture kinds, which mirror the semantic model's
// resource vocabulary (Texture2D, Texture3D, TextureCube, ...).
type ValueKind string

const (
	ValueParameter     ValueKind = "Parameter"
	ValueConstant      ValueKind = "Constant"
	ValueTemp          ValueKind = "Temp"
	ValueUndef         ValueKind = "Undef"
	ValueSampler       ValueKind = "Sampler"
	ValueCBuffer       ValueKind = "CBuffer"
	ValueBuffer        ValueKind = "Buffer"
	ValueGlobal        ValueKind = "GlobalVariable"
	ValueResource      ValueKind = "Resource"
	ValueStructMember  ValueKind = "StructMember"
	ValueCBufferMember ValueKind = "CBufferMember"
)

// IsTexture reports whether the kind names a texture resource.
func (k ValueKind) IsTexture() bool {
	return len(k) > 7 && k[:7] == "Texture"
}

// IsResourceLike reports whether values of this kind back a module
// resource declaration.
func (k ValueKind) IsResourceLike() bool {
	switch k {
	case ValueSampler, ValueCBuffer, ValueBuffer, ValueGlobal, ValueResource:
		return true
	}
	return k.IsTexture()
}

// Value is an SSA-identifiable datum.
type Value struct {
	ID       ValueID
	Type     string
	Kind     ValueKind
	Name     string
	Semantic string
}

// TypeInfo parses the value's type descriptor.
func (v *Value) TypeInfo() TypeInfo {
	return ParseType(v.Type)
}

// IsConstant reports whether the value is a constant literal.
func (v *Value) IsConstant() bool {
	return v.Kind == ValueConstant
}

// AsConstant parses the value's literal text against its type.
func (v *Value) AsConstant() (Constant, bool) {
	if v == nil || v.Kind != ValueConstant {
		return Constant{}, false
	}
	return ParseConstant(v.Name, v.Type)
}
