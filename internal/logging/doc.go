// Package logging assembles structured slog loggers and formatting helpers
// used across stt.
//
// It owns the console and JSON handlers, routes records to the configured
// log file and optional stderr mirror, and provides attribute helpers plus a
// no-op logger for tests and wiring code that cannot fail. stdout is reserved
// for transcript paths and is never used as a log destination by the CLI.
package logging
