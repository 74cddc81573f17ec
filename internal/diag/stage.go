package diag

// Stage identifies the pipeline phase that produced a diagnostic.
type Stage uint8

const (
	// StageLower marks diagnostics produced while lowering the
	// semantic model into IR.
	StageLower Stage = iota
	// StageOptimize marks diagnostics produced by optimization passes.
	StageOptimize
	// StageInvariant marks diagnostics produced by the invariant
	// validator.
	StageInvariant
)

func (s Stage) String() string {
	switch s {
	case StageLower:
		return "lower"
	case StageOptimize:
		return "optimize"
	case StageInvariant:
		return "invariant"
	}
	return "unknown"
}

// ParseStage maps a wire label back to a Stage. Unrecognized labels
// decode as StageInvariant.
func ParseStage(s string) Stage {
	switch s {
	case "lower":
		return StageLower
	case "optimize":
		return StageOptimize
	default:
		return StageInvariant
	}
}
