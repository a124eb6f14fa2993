// Package config loads, normalizes, and validates stt configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads an optional TOML file, and honours environment fallbacks
// such as HF_TOKEN and HF_HOME. The Config type centralizes the model,
// output, cache, and logging knobs the CLI needs.
//
// Configuration is read-only: nothing in this package writes state except
// CreateSample, which the `config init` command calls explicitly.
package config
