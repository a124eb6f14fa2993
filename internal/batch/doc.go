// Package batch runs one transcription batch from input specs to written
// transcript files.
//
// Runner.Run walks a fixed sequence: expand inputs, validate that every input
// exists and that the output override fits the input count, load the model
// once, then transcribe, render, and write each input in order. Validation
// failures end the run before any file is written. A transcription failure
// only fails its own item; the remaining inputs are still processed and the
// outcome's exit code reflects whether every item succeeded.
//
// Output paths go to the primary writer, one per line, regardless of quiet
// mode. Progress and "Error:" diagnostics go to the diagnostic writer and are
// suppressed by quiet.
package batch
