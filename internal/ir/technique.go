package ir

// ShaderStage tags an entry point or shader binding with its pipeline
// stage. The set is closed.
type ShaderStage string

const (
	StageVertex   ShaderStage = "Vertex"
	StagePixel    ShaderStage = "Pixel"
	StageGeometry ShaderStage = "Geometry"
	StageHull     ShaderStage = "Hull"
	StageDomain   ShaderStage = "Domain"
	StageCompute  ShaderStage = "Compute"
	StageUnknown  ShaderStage = "Unknown"
)

// NormalizeStage folds arbitrary stage spellings into the closed set.
func NormalizeStage(s string) ShaderStage {
	switch ShaderStage(s) {
	case StageVertex, StagePixel, StageGeometry, StageHull, StageDomain, StageCompute:
		return ShaderStage(s)
	}
	return StageUnknown
}

// Resource mirrors a global declaration from the semantic model.
type Resource struct {
	Name     string
	Kind     ValueKind
	Type     string
	Writable bool
}

// Technique groups render passes; forwarded verbatim from the semantic
// model.
type Technique struct {
	Name   string
	Passes []*Pass
}

// Pass holds the shader bindings and state assignments of one render
// pass.
type Pass struct {
	Name    string
	Shaders []*ShaderBinding
	States  []*StateAssignment
}

// ShaderBinding names the entry symbol compiled for a stage.
type ShaderBinding struct {
	Stage   ShaderStage
	Profile string
	Entry   string
}

// StateAssignment is one fixed-function state setting.
type StateAssignment struct {
	Name  string
	Value string
}
