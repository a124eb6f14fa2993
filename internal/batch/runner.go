package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"parakeet-stt/internal/fileutil"
	"parakeet-stt/internal/logging"
	"parakeet-stt/internal/paths"
	"parakeet-stt/internal/services"
	"parakeet-stt/internal/transcript"
)

// Runner executes transcription batches.
type Runner struct {
	loader ModelLoader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	newID  func() string
}

// NewRunner constructs a Runner. stdout receives output paths; stderr
// receives diagnostics. Nil writers discard.
func NewRunner(loader ModelLoader, stdout, stderr io.Writer, logger *slog.Logger) *Runner {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		loader: loader,
		stdout: stdout,
		stderr: stderr,
		logger: logging.NewComponentLogger(logger, "batch"),
		newID:  func() string { return uuid.NewString() },
	}
}

// Run processes req and reports what happened. It never panics on a per-item
// failure; inspect Outcome.ExitCode for the process status.
func (r *Runner) Run(ctx context.Context, req Request) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	outcome := Outcome{RunID: r.newID()}
	ctx = services.WithRunID(ctx, outcome.RunID)
	logger := r.logger.With(logging.String(logging.FieldRunID, outcome.RunID))
	d := diagnostics{w: r.stderr, quiet: req.Quiet}
	format := req.Format
	if format == "" {
		format = transcript.DefaultFormat
	}

	inputs, err := paths.Expand(req.Inputs)
	if err != nil {
		d.errorf("%v", err)
		outcome.Err = err
		return outcome
	}
	outcome.Inputs = inputs
	if len(inputs) == 0 {
		d.errorf("No matching files found")
		outcome.Err = ErrNoInputs
		logging.WarnWithContext(logger, "no inputs resolved", "no_inputs",
			logging.String("specs", strings.Join(req.Inputs, " ")),
			logging.String(logging.FieldErrorHint, "check the paths or quote glob patterns"),
			logging.String(logging.FieldImpact, "nothing was transcribed"),
		)
		return outcome
	}

	for _, input := range inputs {
		if !inputExists(input) {
			outcome.Missing = append(outcome.Missing, input)
		}
	}
	if len(outcome.Missing) > 0 {
		for _, missing := range outcome.Missing {
			d.errorf("Input file not found: %s", missing)
		}
		outcome.Err = fmt.Errorf("%w: %s", ErrMissingInputs, strings.Join(outcome.Missing, ", "))
		logging.WarnWithContext(logger, "inputs missing", "missing_inputs",
			logging.Int("missing", len(outcome.Missing)),
			logging.String(logging.FieldImpact, "run aborted before transcription"),
		)
		return outcome
	}

	if len(inputs) > 1 && req.Output != "" && !fileutil.IsDir(req.Output) {
		d.errorf("Output must be a directory when processing multiple files")
		outcome.Err = ErrOutputNotDirectory
		return outcome
	}

	logger.Info("batch started", logging.Args(
		logging.String(logging.FieldEventType, "batch_started"),
		logging.Int(logging.FieldItemCount, len(inputs)),
		logging.String(logging.FieldFormat, format.String()),
		logging.Model(r.loader.ModelID()),
	)...)

	if !r.loader.IsCached() {
		d.notef("Model not found locally. Downloading %s...", r.loader.ModelID())
	}
	loadStarted := time.Now()
	model, err := r.loader.Load(ctx)
	if err != nil {
		d.errorf("Failed to load model %s: %v", r.loader.ModelID(), err)
		outcome.Err = fmt.Errorf("%w: %w", ErrModelLoad, err)
		logging.ErrorWithContext(logger, "model load failed", "model_load_failed",
			logging.Model(r.loader.ModelID()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, services.Hint(err)),
		)
		return outcome
	}
	logger.Debug("model ready", logging.Args(logging.Duration("duration", time.Since(loadStarted)))...)

	started := time.Now()
	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			outcome.Err = err
			logging.WarnWithContext(logger, "batch interrupted", "batch_interrupted",
				logging.Int("remaining", len(inputs)-i),
				logging.String(logging.FieldImpact, "remaining inputs were not transcribed"),
			)
			break
		}
		itemLogger := logger.With(logging.Args(logging.Item(i+1, len(inputs))...)...)
		itemCtx := services.WithItemIndex(ctx, i+1)
		outcome.Items = append(outcome.Items, r.processItem(itemCtx, itemLogger, d, model, input, req.Output, format))
	}

	logger.Info("batch finished", logging.Args(
		logging.String(logging.FieldEventType, "batch_finished"),
		logging.Int("succeeded", outcome.Succeeded()),
		logging.Int("failed", outcome.Failed()),
		logging.Duration("duration", time.Since(started)),
	)...)
	return outcome
}

func (r *Runner) processItem(
	ctx context.Context,
	logger *slog.Logger,
	d diagnostics,
	model Transcriber,
	input, override string,
	format transcript.Format,
) ItemResult {
	item := ItemResult{Input: input}
	name := filepath.Base(input)
	target := paths.ResolveOutput(input, override, format)

	d.notef("Processing %s...", name)
	started := time.Now()
	result, err := model.Transcribe(ctx, input)
	if err != nil {
		d.errorf("Transcription failed for %s: %v", name, err)
		item.Err = err
		logging.WarnWithContext(logger, "transcription failed", "transcription_failed",
			logging.Input(input),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, services.Hint(err)),
			logging.String(logging.FieldImpact, "no transcript written for this input"),
		)
		return item
	}

	content, err := transcript.Render(result, format)
	if err == nil {
		err = fileutil.WriteFile(target, []byte(content))
	}
	if err != nil {
		d.errorf("Failed to write %s: %v", target, err)
		item.Err = fmt.Errorf("write transcript: %w", err)
		logging.WarnWithContext(logger, "transcript write failed", "write_failed",
			logging.Input(input),
			logging.Output(target),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions and free space at the output path"),
		)
		return item
	}

	item.Output = target
	fmt.Fprintln(r.stdout, target)
	logger.Info("transcript written", logging.Args(
		logging.String(logging.FieldEventType, "item_completed"),
		logging.Input(input),
		logging.Output(target),
		logging.Int("sentences", len(result.Sentences)),
		logging.Int64("output_bytes", int64(len(content))),
		logging.Duration("duration", time.Since(started)),
	)...)
	return item
}

// inputExists follows symlinks, so a dangling link counts as missing.
func inputExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

type diagnostics struct {
	w     io.Writer
	quiet bool
}

func (d diagnostics) notef(format string, args ...any) {
	if d.quiet {
		return
	}
	fmt.Fprintf(d.w, format+"\n", args...)
}

func (d diagnostics) errorf(format string, args ...any) {
	d.notef("Error: "+format, args...)
}
