// Package transcript defines the transcription result model and renders it
// into the supported output encodings.
//
// A Result carries the full transcript text plus ordered, timestamped
// sentences. Render serializes a Result as plain text, JSON, SRT, or WebVTT;
// FormatTimestamp produces the cue timestamps shared by the subtitle formats.
// Unknown formats fall back to plain text so callers never receive an empty
// document for a non-empty transcript.
package transcript
