package transcriptcache

import (
	"context"
	"log/slog"

	"parakeet-stt/internal/fileutil"
	"parakeet-stt/internal/logging"
	"parakeet-stt/internal/transcript"
)

// Transcriber converts one audio file into a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (transcript.Result, error)
}

// Cached serves transcripts from a Store before delegating to the wrapped
// transcriber, and stores fresh results afterwards.
type Cached struct {
	inner  Transcriber
	store  *Store
	model  string
	logger *slog.Logger
}

// Wrap returns a Transcriber that consults store first. A nil store returns
// inner unchanged.
func Wrap(inner Transcriber, store *Store, model string, logger *slog.Logger) Transcriber {
	if store == nil {
		return inner
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Cached{
		inner:  inner,
		store:  store,
		model:  model,
		logger: logging.NewComponentLogger(logger, "cache"),
	}
}

// Transcribe implements Transcriber.
func (c *Cached) Transcribe(ctx context.Context, path string) (transcript.Result, error) {
	digest, size, err := fileutil.HashFile(path)
	if err != nil {
		logging.WarnWithContext(c.logger, "hash input failed; bypassing cache", "cache_bypass",
			logging.Input(path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "transcript will not be cached"),
		)
		return c.inner.Transcribe(ctx, path)
	}
	key := Key(digest, c.model)

	result, found, err := c.store.Get(ctx, key)
	if found {
		if err != nil {
			c.logger.Debug("cache hit bookkeeping failed", logging.Args(logging.Error(err))...)
		}
		c.logger.Info("transcript served from cache", logging.Args(
			logging.String(logging.FieldEventType, "cache_hit"),
			logging.Input(path),
			logging.String("cache_key", key),
		)...)
		return result, nil
	}
	if err != nil {
		logging.WarnWithContext(c.logger, "cache lookup failed", "cache_lookup_failed",
			logging.Input(path),
			logging.Error(err),
		)
	}

	result, err = c.inner.Transcribe(ctx, path)
	if err != nil {
		return transcript.Result{}, err
	}

	if err := c.store.Put(ctx, Entry{
		Key:        key,
		SHA256:     digest,
		Model:      c.model,
		SourcePath: path,
		SourceSize: size,
		Result:     result,
	}); err != nil {
		logging.WarnWithContext(c.logger, "cache store failed", "cache_store_failed",
			logging.Input(path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "next run will transcribe this file again"),
		)
		return result, nil
	}
	c.logger.Debug("transcript cached", logging.Args(
		logging.Input(path),
		logging.String("cache_key", key),
		logging.Int64("source_bytes", size),
	)...)
	return result, nil
}
