// Package diag defines the diagnostic model shared by all pipeline
// stages.
//
// # Purpose
//
//   - Provide deterministic, serialisable records that capture findings
//     produced by lowering, optimization and the invariant validator.
//   - Offer a light-weight accumulator (Bag) that lets producers emit
//     diagnostics without coupling to storage or formatting layers.
//
// # Scope
//
// Package diag performs no IO and no CLI integration. Errors here are
// data: the pipelines record them and continue with a best-effort
// result. The only failures that surface as Go errors are document
// parse failures at the driver boundary.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Stage – which pipeline phase produced it (lower, optimize,
//     invariant).
//   - Code – compact numeric identifier with a stable string form
//     (OFXnnnn) used on the wire and in golden files.
//   - Message – human oriented text; keep it short and actionable.
package diag
