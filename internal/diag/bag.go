package diag

import (
	"fmt"
)

func newf(sev Severity, stage Stage, code Code, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Stage:    stage,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Bag accumulates diagnostics in the order they were produced.
// The order is part of the contract: stages append, nothing removes.
type Bag struct {
	items []Diagnostic
}

func NewBag() *Bag {
	return &Bag{}
}

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Addf appends a freshly formatted diagnostic.
func (b *Bag) Addf(sev Severity, stage Stage, code Code, format string, args ...any) {
	b.Add(newf(sev, stage, code, format, args...))
}

// HasErrors reports whether the bag holds at least one error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the accumulated diagnostics. The returned slice aliases
// the bag's storage; callers must not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends all diagnostics from other, preserving order.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}
