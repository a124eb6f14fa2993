// Package transcriptcache stores finished transcripts in SQLite so repeat runs
// over the same audio skip the model.
//
// Entries are keyed by the SHA-256 of the audio bytes plus the model id, so a
// renamed or copied file still hits while a model change misses. The cache is
// opt-in and strictly best effort: Cached logs lookup and store failures and
// falls through to the wrapped transcriber.
//
// Schema changes bump schemaVersion in schema.go; users clear the database
// with "stt cache clear --purge" to adopt the new layout.
package transcriptcache
