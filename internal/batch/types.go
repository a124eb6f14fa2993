package batch

import (
	"context"
	"errors"

	"parakeet-stt/internal/transcript"
)

// Transcriber converts one audio file into a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (transcript.Result, error)
}

// ModelLoader acquires the shared transcriber for a run.
type ModelLoader interface {
	// ModelID names the model for notices and logs.
	ModelID() string
	// IsCached reports whether Load can complete without a download.
	IsCached() bool
	// Load returns a ready transcriber. Run calls it at most once.
	Load(ctx context.Context) (Transcriber, error)
}

// Exit codes returned by Outcome.ExitCode.
const (
	ExitOK      = 0
	ExitFailure = 1
)

var (
	// ErrNoInputs reports that no input spec resolved to a path.
	ErrNoInputs = errors.New("no matching files found")
	// ErrMissingInputs reports that at least one resolved input does not exist.
	ErrMissingInputs = errors.New("input file not found")
	// ErrOutputNotDirectory reports an output override that cannot hold multiple transcripts.
	ErrOutputNotDirectory = errors.New("output must be a directory when processing multiple files")
	// ErrModelLoad reports that the model could not be acquired.
	ErrModelLoad = errors.New("model load failed")
)

// Request describes one batch run.
type Request struct {
	// Inputs are literal paths or glob patterns.
	Inputs []string
	// Output is an optional file (single input) or directory override.
	Output string
	Format transcript.Format
	// Quiet suppresses diagnostics but never output paths.
	Quiet bool
}

// ItemResult records what happened to one input.
type ItemResult struct {
	Input  string
	Output string
	Err    error
}

// Succeeded reports whether the item produced a transcript file.
func (r ItemResult) Succeeded() bool {
	return r.Err == nil
}

// Outcome summarizes a run.
type Outcome struct {
	RunID string
	// Inputs holds the resolved input paths.
	Inputs []string
	// Missing lists inputs that failed the existence check.
	Missing []string
	Items   []ItemResult
	// Err is set when the run stopped before or during processing.
	Err error
}

// Succeeded counts items that produced a transcript.
func (o Outcome) Succeeded() int {
	n := 0
	for _, item := range o.Items {
		if item.Succeeded() {
			n++
		}
	}
	return n
}

// Failed counts items whose transcription or write failed.
func (o Outcome) Failed() int {
	return len(o.Items) - o.Succeeded()
}

// OK reports whether every resolved input was transcribed.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Failed() == 0 && len(o.Items) == len(o.Inputs)
}

// ExitCode maps the outcome to the process exit status.
func (o Outcome) ExitCode() int {
	if o.OK() {
		return ExitOK
	}
	return ExitFailure
}
