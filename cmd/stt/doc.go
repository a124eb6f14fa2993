// Command stt transcribes audio files with a local parakeet speech model.
//
//	stt [flags] <input>...
//
// Inputs are paths or glob patterns. Each transcript is written next to its
// input (or under --output) and its path is printed on stdout; progress and
// errors go to stderr. The exit status is 0 only when every input was
// transcribed.
//
// Subcommands:
//
//	config init|validate   manage the TOML configuration file
//	model status|fetch     inspect or pre-download the speech model
//	cache list|clear       inspect the optional transcript cache
package main
