// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: a Severity, a stable numeric Code, a
// message, a primary source.Span and optional notes. Producers emit through
// the Reporter interface; the driver collects into a Bag and decides whether
// the run continues. Rendering lives in render.go and is the only place that
// touches color or terminal width.
package diag
