package config

import (
	"errors"
	"fmt"
)

var (
	validFormats   = map[string]struct{}{"txt": {}, "srt": {}, "vtt": {}, "json": {}}
	validLogFormat = map[string]struct{}{"console": {}, "json": {}}
	validLogLevels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateModel() error {
	if c.Model.ID == "" {
		return errors.New("model.id must be set")
	}
	if c.Model.UVXCommand == "" {
		return errors.New("model.uvx_command must be set")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if _, ok := validFormats[c.Output.DefaultFormat]; !ok {
		return fmt.Errorf("output.default_format: unsupported value %q (choose from txt, srt, vtt, json)", c.Output.DefaultFormat)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, ok := validLogFormat[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format: unsupported value %q (choose from console, json)", c.Logging.Format)
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level: unsupported value %q (choose from debug, info, warn, error)", c.Logging.Level)
	}
	return nil
}
