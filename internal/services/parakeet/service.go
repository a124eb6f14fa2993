package parakeet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"parakeet-stt/internal/deps"
	"parakeet-stt/internal/logging"
	"parakeet-stt/internal/services"
)

// ErrModelUnavailable reports that the model could not be made ready locally.
var ErrModelUnavailable = errors.New("model unavailable")

const downloadLockRetry = 500 * time.Millisecond

// CommandRunner launches an external process and waits for it to exit.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Service provides parakeet-mlx model management and transcription.
type Service struct {
	cfg           Config
	logger        *slog.Logger
	commandRunner CommandRunner
}

// NewService creates a parakeet service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if strings.TrimSpace(cfg.ModelID) == "" {
		cfg.ModelID = DefaultModelID
	}
	if strings.TrimSpace(cfg.UVXCommand) == "" {
		cfg.UVXCommand = defaultUVXCommand
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "parakeet"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) {
	s.commandRunner = runner
}

// ModelID returns the configured model identifier.
func (s *Service) ModelID() string {
	return s.cfg.ModelID
}

// Dependencies lists the binaries Load needs.
func (s *Service) Dependencies() []deps.Requirement {
	return []deps.Requirement{deps.UVX(s.cfg.UVXCommand)}
}

// Load ensures the weights are cached locally and returns a ready Model.
// Concurrent callers across processes serialize on a lock file in the cache dir.
func (s *Service) Load(ctx context.Context) (*Model, error) {
	if err := s.checkDependencies(); err != nil {
		return nil, err
	}
	if s.IsCached() {
		s.logger.Debug("model found in cache", logging.Args(logging.Model(s.ModelID()))...)
		return &Model{svc: s}, nil
	}
	if err := s.Download(ctx); err != nil {
		return nil, err
	}
	return &Model{svc: s}, nil
}

// Download fetches the model snapshot into the hub cache.
func (s *Service) Download(ctx context.Context) error {
	if s.cfg.CacheDir == "" {
		return fmt.Errorf("%w: %w", ErrModelUnavailable,
			services.Wrap(services.ErrConfiguration, "parakeet", "download", "model cache dir not configured", nil))
	}
	if err := os.MkdirAll(s.cfg.CacheDir, 0o755); err != nil {
		return fmt.Errorf("%w: create cache dir: %w", ErrModelUnavailable, err)
	}

	lock := flock.New(s.lockPath())
	locked, err := lock.TryLockContext(ctx, downloadLockRetry)
	if err != nil {
		return fmt.Errorf("%w: acquire download lock: %w", ErrModelUnavailable, err)
	}
	if !locked {
		return fmt.Errorf("%w: download lock %s is held", ErrModelUnavailable, s.lockPath())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release download lock", logging.Args(logging.Error(err))...)
		}
	}()

	// Another process may have finished the download while we waited.
	if s.IsCached() {
		return nil
	}

	started := time.Now()
	s.logger.Info("downloading model", logging.Args(
		logging.String(logging.FieldEventType, "model_download_started"),
		logging.Model(s.ModelID()),
		logging.String("cache_dir", s.cfg.CacheDir),
	)...)
	if err := s.run(ctx, s.cfg.UVXCommand, s.buildDownloadArgs()...); err != nil {
		return fmt.Errorf("%w: %w", ErrModelUnavailable,
			services.Wrap(services.ErrExternalTool, "parakeet", "download", s.ModelID(), err))
	}
	if !s.IsCached() {
		return fmt.Errorf("%w: %w", ErrModelUnavailable,
			services.Wrap(services.ErrNotFound, "parakeet", "download", "snapshot missing after download", nil))
	}
	s.logger.Info("model downloaded", logging.Args(
		logging.String(logging.FieldEventType, "model_download_completed"),
		logging.Model(s.ModelID()),
		logging.Duration("duration", time.Since(started)),
	)...)
	return nil
}

func (s *Service) checkDependencies() error {
	// A custom runner owns process resolution.
	if s.commandRunner != nil {
		return nil
	}
	if missing, ok := deps.FirstMissing(deps.CheckBinaries(s.Dependencies())); ok {
		return fmt.Errorf("%w: %w", ErrModelUnavailable,
			services.Wrap(services.ErrConfiguration, "parakeet", "load", missing.Name+" "+missing.Detail, nil))
	}
	return nil
}

func (s *Service) buildDownloadArgs() []string {
	args := []string{"--from", HubPackage, HubCommand, "download", s.ModelID()}
	if s.cfg.CacheDir != "" {
		args = append(args, "--cache-dir", s.cfg.CacheDir)
	}
	return args
}

func (s *Service) buildTranscribeArgs(source, outputDir string) []string {
	return []string{
		ParakeetPackage,
		source,
		"--model", s.ModelID(),
		"--output-format", OutputFormat,
		"--output-dir", outputDir,
	}
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Env = s.environ()

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (s *Service) environ() []string {
	env := os.Environ()
	if s.cfg.CacheDir != "" {
		env = append(env, "HF_HUB_CACHE="+s.cfg.CacheDir)
	}
	if s.cfg.HFToken != "" {
		env = append(env, "HF_TOKEN="+s.cfg.HFToken)
	}
	return env
}
