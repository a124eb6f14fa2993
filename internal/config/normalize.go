package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeModel(); err != nil {
		return err
	}
	c.normalizeOutput()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeModel() error {
	c.Model.ID = strings.TrimSpace(c.Model.ID)
	c.Model.UVXCommand = strings.TrimSpace(c.Model.UVXCommand)
	if c.Model.UVXCommand == "" {
		c.Model.UVXCommand = defaultUVXCommand
	}
	if strings.TrimSpace(c.Model.CacheDir) == "" {
		c.Model.CacheDir = defaultModelCacheDir()
	}
	var err error
	if c.Model.CacheDir, err = expandPath(strings.TrimSpace(c.Model.CacheDir)); err != nil {
		return fmt.Errorf("model.cache_dir: %w", err)
	}
	c.Model.HFToken = strings.TrimSpace(c.Model.HFToken)
	if c.Model.HFToken == "" {
		if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.Model.HFToken = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			c.Model.HFToken = strings.TrimSpace(value)
		}
	}
	return nil
}

func (c *Config) normalizeOutput() {
	c.Output.DefaultFormat = strings.ToLower(strings.TrimSpace(c.Output.DefaultFormat))
	if c.Output.DefaultFormat == "" {
		c.Output.DefaultFormat = defaultOutputFormat
	}
}

func (c *Config) normalizeCache() error {
	c.Cache.Path = strings.TrimSpace(c.Cache.Path)
	if c.Cache.Path == "" {
		c.Cache.Path = filepath.Join(c.Paths.StateDir, defaultCacheFileName)
	}
	var err error
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
