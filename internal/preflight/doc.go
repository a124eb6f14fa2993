// Package preflight provides readiness checks for the external tooling and
// filesystem paths stt depends on.
//
// The "stt model status" command renders these results so users can see why
// a model load would fail before starting a long batch. Directory checks are
// gated by their config toggle; disabled features are skipped.
package preflight
