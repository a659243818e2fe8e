// Package diag defines the diagnostic model shared by the tree-compiler
// phases (lexer, parser, semantic analysis, combining).
//
// Diagnostic is the central record: severity, stable code, message, a primary
// source.Span, optional notes, and an optional help line. Phases emit through
// a Reporter so emission stays decoupled from storage; BagReporter aggregates
// into a Bag, which supports deterministic sorting and merging.
//
// Rendering (caret excerpts, colors) lives in render.go and is only consumed
// by the CLI layer. Check-time violations are a separate family and live in
// internal/check; this package covers compile-time DSL errors only.
package diag
