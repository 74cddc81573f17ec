// Package driver orchestrates the pipelines: lowering, optimization,
// invariant validation, document I/O and the disk cache. The CLI and
// the test harnesses go through this package only.
package driver

import (
	"openfxc/internal/ir"
	"openfxc/internal/lower"
	"openfxc/internal/opt"
	"openfxc/internal/sem"
	"openfxc/internal/verify"
)

// LowerOptions are the CLI-facing knobs of the lowering pipeline.
type LowerOptions struct {
	Profile string // profile override
	Entry   string // entry-point override
}

// Lower runs the lowering pipeline and concludes with the invariant
// validator. The returned module always exists, whatever the
// diagnostics say.
func Lower(model *sem.Model, opts LowerOptions) *ir.Module {
	res := lower.Lower(lower.Request{
		Model:   model,
		Profile: opts.Profile,
		Entry:   opts.Entry,
	})
	m := res.Module
	m.AddDiagnostics(verify.Validate(m))
	return m
}

// OptimizeOptions are the CLI-facing knobs of the optimize pipeline.
type OptimizeOptions struct {
	Passes  string // comma-separated pass list; empty means default
	Profile string // profile override, applied before passes run
}

// OptimizeResult carries the optimized module plus pass timings for
// the CLI's --timings output.
type OptimizeResult struct {
	Module  *ir.Module
	Timings []opt.PassTiming
}

// Optimize runs the pass pipeline and concludes with the invariant
// validator.
func Optimize(m *ir.Module, opts OptimizeOptions) OptimizeResult {
	res := opt.Run(m, opt.Options{Passes: opts.Passes, Profile: opts.Profile})
	res.Module.AddDiagnostics(verify.Validate(res.Module))
	return OptimizeResult{Module: res.Module, Timings: res.Timings}
}
