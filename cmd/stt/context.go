package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"parakeet-stt/internal/batch"
	"parakeet-stt/internal/config"
	"parakeet-stt/internal/logging"
)

// loaderFactory builds the model loader for a run.
type loaderFactory func(cfg *config.Config, logger *slog.Logger) batch.ModelLoader

type commandContext struct {
	configFlag *string
	modelFlag  *string
	newLoader  loaderFactory

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, modelFlag *string, newLoader loaderFactory) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		modelFlag:  modelFlag,
		newLoader:  newLoader,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.modelFlag != nil {
			if model := strings.TrimSpace(*c.modelFlag); model != "" {
				cfg.Model.ID = model
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds the structured logger. console mirrors records when the
// config asks for it; pass nil to keep stderr clean.
func (c *commandContext) logger(console io.Writer) *slog.Logger {
	cfg, err := c.ensureConfig()
	if err != nil {
		return logging.NewNop()
	}
	if !cfg.Logging.Console {
		console = nil
	}
	logger, err := logging.NewFromConfig(cfg, console)
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
