// Package opt implements the optimization pipeline: a configurable
// sequence of functional passes over an IR module. Passes construct
// new modules; the caller's module is never mutated.
package opt

import (
	"strings"
	"time"

	"openfxc/internal/diag"
	"openfxc/internal/ir"
)

// A pass rewrites one module in place. The pipeline clones its input
// once and runs every pass on that private copy, which keeps the pass
// bodies simple while the pipeline as a whole stays functional.
type pass struct {
	name string
	run  func(m *ir.Module)
}

// Pass order matters: the default sequence is part of the contract.
var passes = []pass{
	{"constfold", runConstFold},
	{"algebraic", runAlgebraic},
	{"copyprop", runCopyProp},
	{"cse", runCSE},
	{"dce", runDCE},
	{"component-dce", runComponentDCE},
}

// DefaultPasses is the comma-separated default pass list.
const DefaultPasses = "constfold, algebraic, copyprop, cse, dce, component-dce"

// PassNames lists the recognized pass names in default order.
func PassNames() []string {
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.name
	}
	return names
}

func passByName(name string) (pass, bool) {
	for _, p := range passes {
		if p.name == name {
			return p, true
		}
	}
	return pass{}, false
}

// Options configures one optimize run.
type Options struct {
	// Passes is a comma-separated lowercase pass list; empty selects
	// the default sequence.
	Passes string
	// Profile, when non-empty, replaces the module's profile before
	// passes run.
	Profile string
}

// PassTiming records one executed pass for the CLI's --timings output.
type PassTiming struct {
	Name     string
	Duration time.Duration
}

// Result is the optimized module plus run metadata.
type Result struct {
	Module  *ir.Module
	Timings []PassTiming
}

// Run executes the configured pass sequence. Unknown pass names are
// diagnosed and skipped; the pipeline never aborts.
func Run(m *ir.Module, opts Options) Result {
	out := m.Clone()
	if opts.Profile != "" {
		out.Profile = opts.Profile
	}

	list := opts.Passes
	if strings.TrimSpace(list) == "" {
		list = DefaultPasses
	}

	bag := diag.NewBag()
	var timings []PassTiming
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p, ok := passByName(name)
		if !ok {
			bag.Addf(diag.SevError, diag.StageOptimize, diag.OptUnknownPass,
				"unknown pass %q; valid passes are: %s", name, strings.Join(PassNames(), ", "))
			continue
		}
		start := time.Now()
		p.run(out)
		timings = append(timings, PassTiming{Name: p.name, Duration: time.Since(start)})
		bag.Addf(diag.SevInfo, diag.StageOptimize, diag.OptPassRan, "pass %s executed", p.name)
	}

	out.AddDiagnostics(bag.Items())
	return Result{Module: out, Timings: timings}
}
