package diag

// Diagnostic describes one condition noticed by a pipeline stage.
// Diagnostics are data: the pipelines record them and keep going, they
// never abort on invalid IR content.
type Diagnostic struct {
	Severity Severity
	Stage    Stage
	Code     Code
	Message  string
}

// Errorf builds an error-severity diagnostic.
func Errorf(stage Stage, code Code, format string, args ...any) Diagnostic {
	return newf(SevError, stage, code, format, args...)
}

// Warningf builds a warning-severity diagnostic.
func Warningf(stage Stage, code Code, format string, args ...any) Diagnostic {
	return newf(SevWarning, stage, code, format, args...)
}

// Infof builds an info-severity diagnostic.
func Infof(stage Stage, code Code, format string, args ...any) Diagnostic {
	return newf(SevInfo, stage, code, format, args...)
}
