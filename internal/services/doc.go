// Package services defines shared utilities consumed by the external tool
// integrations under internal/services.
//
// Key responsibilities:
//   - Context helpers that stamp the batch run id and item position for
//     logging.
//   - Structured error markers plus the Wrap helper, and Hint which turns a
//     marker into a remediation line for the log.
//
// Use these helpers when wiring a new integration so failures read the same
// way across the CLI.
package services
