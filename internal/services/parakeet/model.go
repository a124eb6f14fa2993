package parakeet

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"parakeet-stt/internal/fileutil"
	"parakeet-stt/internal/logging"
	"parakeet-stt/internal/services"
	"parakeet-stt/internal/transcript"
)

// Model is a loaded parakeet model ready to transcribe audio files.
type Model struct {
	svc *Service
}

// ID returns the model identifier.
func (m *Model) ID() string {
	return m.svc.ModelID()
}

// Transcribe runs parakeet-mlx over one audio file.
func (m *Model) Transcribe(ctx context.Context, source string) (transcript.Result, error) {
	if strings.TrimSpace(source) == "" {
		return transcript.Result{}, services.Wrap(services.ErrValidation, "parakeet", "transcribe", "source path required", nil)
	}

	workDir, err := os.MkdirTemp("", "stt-parakeet-")
	if err != nil {
		return transcript.Result{}, fmt.Errorf("transcribe: create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	logger := m.svc.logger
	if runID, ok := services.RunIDFromContext(ctx); ok {
		logger = logger.With(logging.String(logging.FieldRunID, runID))
	}
	if index, ok := services.ItemIndexFromContext(ctx); ok {
		logger = logger.With(logging.Int(logging.FieldItemIndex, index))
	}

	started := time.Now()
	args := m.svc.buildTranscribeArgs(source, workDir)
	logger.Debug("launching parakeet-mlx", logging.Args(
		logging.String("command", m.svc.cfg.UVXCommand),
		logging.String("args", strings.Join(args, " ")),
	)...)
	if err := m.svc.run(ctx, m.svc.cfg.UVXCommand, args...); err != nil {
		return transcript.Result{}, services.Wrap(services.ErrExternalTool, "parakeet", "transcribe", filepath.Base(source), err)
	}

	jsonPath, err := locateOutput(workDir, source)
	if err != nil {
		return transcript.Result{}, services.Wrap(services.ErrExternalTool, "parakeet", "transcribe", "no transcript produced", err)
	}
	result, err := LoadResult(jsonPath)
	if err != nil {
		return transcript.Result{}, services.Wrap(services.ErrExternalTool, "parakeet", "parse", filepath.Base(jsonPath), err)
	}

	logger.Debug("parakeet-mlx finished", logging.Args(
		logging.Input(source),
		logging.Int("sentences", len(result.Sentences)),
		logging.Duration("duration", time.Since(started)),
	)...)
	return result, nil
}

// Sentence is one aligned sentence in parakeet-mlx JSON output.
type Sentence struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// parakeetPayload is the JSON structure parakeet-mlx writes. Token-level
// fields are ignored.
type parakeetPayload struct {
	Text      string     `json:"text"`
	Sentences []Sentence `json:"sentences"`
}

// LoadResult reads a parakeet-mlx JSON transcript.
func LoadResult(jsonPath string) (transcript.Result, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return transcript.Result{}, err
	}
	var payload parakeetPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return transcript.Result{}, fmt.Errorf("parse parakeet json: %w", err)
	}
	result := transcript.Result{
		Text:      payload.Text,
		Sentences: make([]transcript.Sentence, 0, len(payload.Sentences)),
	}
	for _, s := range payload.Sentences {
		result.Sentences = append(result.Sentences, transcript.Sentence{Text: s.Text, Start: s.Start, End: s.End})
	}
	return result, nil
}

// locateOutput finds the JSON file parakeet-mlx wrote for source.
func locateOutput(workDir, source string) (string, error) {
	base := filepath.Base(source)
	expected := filepath.Join(workDir, strings.TrimSuffix(base, filepath.Ext(base))+".json")
	if fileutil.IsFile(expected) {
		return expected, nil
	}
	matches, err := filepath.Glob(filepath.Join(workDir, "*.json"))
	if err != nil {
		return "", err
	}
	if len(matches) != 1 {
		return "", fmt.Errorf("expected one json file in %s, found %d", workDir, len(matches))
	}
	return matches[0], nil
}
