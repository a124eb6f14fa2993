package config

const (
	defaultModelID       = "mlx-community/parakeet-tdt-0.6b-v3"
	defaultUVXCommand    = "uvx"
	defaultOutputFormat  = "txt"
	defaultStateDir      = "~/.local/share/stt"
	defaultCacheFileName = "transcripts.db"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultConfigPath    = "~/.config/stt/config.toml"
	projectConfigName    = "stt.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Model: Model{
			ID:         defaultModelID,
			UVXCommand: defaultUVXCommand,
		},
		Output: Output{
			DefaultFormat: defaultOutputFormat,
		},
		Cache: Cache{
			Enabled: false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
