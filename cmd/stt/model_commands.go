package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"parakeet-stt/internal/preflight"
)

func newModelCommand(ctx *commandContext) *cobra.Command {
	modelCmd := &cobra.Command{
		Use:   "model",
		Short: "Inspect or download the speech model",
	}
	modelCmd.AddCommand(newModelStatusCommand(ctx))
	modelCmd.AddCommand(newModelFetchCommand(ctx))
	return modelCmd
}

func newModelStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show model cache and tooling status",
		Long:  "Show model cache and tooling status. Exits 1 when an environment check fails.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc := newParakeetService(cfg, ctx.logger(nil))
			snapshot, cached := svc.SnapshotPath()

			out := cmd.OutOrStdout()
			checks := preflight.RunAll(cfg)
			lines := modelStatusLines(svc.ModelID(), snapshot, cached, checks, shouldColorize(out))
			fmt.Fprintln(out, strings.Join(lines, "\n"))
			if !preflight.AllPassed(checks) {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

func modelStatusLines(modelID, snapshot string, cached bool, checks []preflight.Result, colorize bool) []string {
	lines := renderSectionHeader("Model", colorize)
	lines = append(lines, renderStatusLine("Model", statusInfo, modelID, colorize))
	if cached {
		lines = append(lines, renderStatusLine("Cached", statusOK, snapshot, colorize))
	} else {
		lines = append(lines, renderStatusLine("Cached", statusWarn, "not downloaded (run: stt model fetch)", colorize))
	}

	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("Environment", colorize)...)
	return append(lines, renderCheckLines(checks, colorize)...)
}

func newModelFetchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the model ahead of the first transcription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc := newParakeetService(cfg, ctx.logger(cmd.ErrOrStderr()))
			out := cmd.OutOrStdout()
			if svc.IsCached() {
				path, _ := svc.SnapshotPath()
				fmt.Fprintf(out, "Model already cached: %s\n", path)
				return nil
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Downloading %s...\n", svc.ModelID())
			if _, err := svc.Load(cmd.Context()); err != nil {
				return fmt.Errorf("fetch model %s: %w", svc.ModelID(), err)
			}
			path, _ := svc.SnapshotPath()
			fmt.Fprintf(out, "Model ready: %s\n", path)
			return nil
		},
	}
}
