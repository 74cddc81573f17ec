// Package ir defines the backend-agnostic intermediate representation.
//
// A Module carries typed, SSA-ish values, functions made of basic
// blocks, abstract resource handles and forwarded technique metadata.
// Every value id has at most one definition; control-flow merges are
// not expressed with phi functions, locals round-trip through
// Load/Store on named values instead.
//
// The JSON document form is the interchange format between pipelines.
// In memory, swizzle masks, branch targets and callee names live in
// structured fields on Instr and fold back into the textual tag at
// serialization, so the wire shape never changes.
//
// The representation refuses back-end vocabulary by policy: no DXBC,
// DXIL, SPIR-V, D3D, GLSL or Metal token may appear in any identified
// field. The invariant validator enforces this.
package ir
