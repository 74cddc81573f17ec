package ir

import (
	"openfxc/internal/diag"
)

// FormatVersion is the only recognized wire format version.
const FormatVersion = 1

// EntryPoint names the function a downstream consumer should treat as
// the shader entry.
type EntryPoint struct {
	Function string
	Stage    ShaderStage
}

// Module is the root of the IR. Lowering creates modules; optimization
// consumes them and produces new ones. Diagnostics accumulate
// append-only across stages.
type Module struct {
	FormatVersion int
	Profile       string
	Entry         *EntryPoint
	Functions     []*Function
	Values        []*Value
	Resources     []*Resource
	Techniques    []*Technique
	Diagnostics   []diag.Diagnostic
}

// NewModule returns an empty module at the current format version.
func NewModule(profile string) *Module {
	return &Module{FormatVersion: FormatVersion, Profile: profile}
}

// Value finds a value by id.
func (m *Module) Value(id ValueID) *Value {
	for _, v := range m.Values {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// ValueIndex builds an id → value lookup table.
func (m *Module) ValueIndex() map[ValueID]*Value {
	idx := make(map[ValueID]*Value, len(m.Values))
	for _, v := range m.Values {
		idx[v.ID] = v
	}
	return idx
}

// Function finds a function by name.
func (m *Module) Function(name string) *Function {
	for _, f := range m.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// AddValue appends a value to the module table.
func (m *Module) AddValue(v *Value) *Value {
	m.Values = append(m.Values, v)
	return v
}

// AddDiagnostics appends diagnostics in order.
func (m *Module) AddDiagnostics(items []diag.Diagnostic) {
	m.Diagnostics = append(m.Diagnostics, items...)
}

// ValueAllocator hands out the lowest unused positive value ids of a
// module.
type ValueAllocator struct {
	used map[ValueID]bool
	next ValueID
}

// NewValueAllocator scans the module's current value table.
func NewValueAllocator(m *Module) *ValueAllocator {
	a := &ValueAllocator{used: make(map[ValueID]bool, len(m.Values)), next: 1}
	for _, v := range m.Values {
		a.used[v.ID] = true
	}
	return a
}

// Reserve marks an id as taken. Reports false when it already was.
func (a *ValueAllocator) Reserve(id ValueID) bool {
	if id <= 0 || a.used[id] {
		return false
	}
	a.used[id] = true
	return true
}

// Next returns the lowest unused positive id and marks it used.
func (a *ValueAllocator) Next() ValueID {
	for a.used[a.next] {
		a.next++
	}
	id := a.next
	a.used[id] = true
	return id
}
