package parakeet

// Config captures runtime settings for parakeet-mlx operations.
type Config struct {
	// ModelID is the Hugging Face repository holding the weights.
	ModelID string
	// UVXCommand launches the Python tooling.
	UVXCommand string
	// CacheDir is the Hugging Face hub cache. Empty defers to the tooling default.
	CacheDir string
	// HFToken authenticates hub downloads when set.
	HFToken string
}

// Parakeet configuration constants.
const (
	DefaultModelID    = "mlx-community/parakeet-tdt-0.6b-v3"
	ParakeetPackage   = "parakeet-mlx"
	HubPackage        = "huggingface_hub"
	HubCommand        = "hf"
	OutputFormat      = "json"
	ModelConfigFile   = "config.json"
	defaultUVXCommand = "uvx"
)
