package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"parakeet-stt/internal/batch"
	"parakeet-stt/internal/logging"
	"parakeet-stt/internal/transcript"
	"parakeet-stt/internal/transcriptcache"
)

// exitError carries a process exit status without an extra message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newRootCommand() *cobra.Command {
	return newRootCommandWithLoader(newParakeetLoader)
}

func newRootCommandWithLoader(newLoader loaderFactory) *cobra.Command {
	var (
		configFlag string
		modelFlag  string
		outputFlag string
		formatFlag string
		quietFlag  bool
		noCache    bool
	)

	ctx := newCommandContext(&configFlag, &modelFlag, newLoader)

	rootCmd := &cobra.Command{
		Use:   "stt [flags] <input>...",
		Short: "Transcribe audio to text",
		Long: "Transcribe audio files with a local parakeet model.\n\n" +
			"Inputs may be paths or glob patterns (e.g. \"*.mp3\"). Each transcript path is\n" +
			"printed on stdout; progress and errors go to stderr.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			formatValue := cfg.Output.DefaultFormat
			if cmd.Flags().Changed("format") {
				formatValue = formatFlag
			}
			format, err := transcript.ParseFormat(formatValue)
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			console := stderr
			if quietFlag {
				console = nil
			}
			logger := ctx.logger(console)

			loader := ctx.newLoader(cfg, logger)
			if cfg.Cache.Enabled && !noCache {
				store, openErr := transcriptcache.Open(cfg.Cache.Path)
				if openErr != nil {
					logging.WarnWithContext(logger, "transcript cache unavailable", "cache_open_failed",
						logging.String("path", cfg.Cache.Path),
						logging.Error(openErr),
						logging.String(logging.FieldErrorHint, "run: stt cache clear --purge"),
						logging.String(logging.FieldImpact, "transcripts will not be cached this run"),
					)
				} else {
					defer store.Close()
					loader = &cachingLoader{ModelLoader: loader, store: store, logger: logger}
				}
			}

			runner := batch.NewRunner(loader, cmd.OutOrStdout(), stderr, logger)
			outcome := runner.Run(cmd.Context(), batch.Request{
				Inputs: args,
				Output: strings.TrimSpace(outputFlag),
				Format: format,
				Quiet:  quietFlag,
			})
			if code := outcome.ExitCode(); code != batch.ExitOK {
				return &exitError{code: code}
			}
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&outputFlag, "output", "o", "", "Output path (file for single input, directory for multiple)")
	flags.StringVarP(&formatFlag, "format", "f", string(transcript.DefaultFormat),
		fmt.Sprintf("Output format: %s", strings.Join(transcript.FormatNames(), ", ")))
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress all output except the output file path")
	flags.BoolVar(&noCache, "no-cache", false, "Bypass the transcript cache for this run")

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Model identifier (overrides config)")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newModelCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))

	return rootCmd
}
