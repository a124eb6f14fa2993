// Package paths turns user-supplied input specs into concrete audio paths and
// chooses where each transcript is written.
//
// Expand resolves literal paths and glob patterns while preserving the order
// the user gave them. ResolveOutput derives a transcript path from the input,
// an optional --output override, and the output format, then passes it
// through Uniquify so an existing file is never overwritten.
package paths
