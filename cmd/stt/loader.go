package main

import (
	"context"
	"log/slog"

	"parakeet-stt/internal/batch"
	"parakeet-stt/internal/config"
	"parakeet-stt/internal/services/parakeet"
	"parakeet-stt/internal/transcriptcache"
)

func newParakeetService(cfg *config.Config, logger *slog.Logger) *parakeet.Service {
	return parakeet.NewService(parakeet.Config{
		ModelID:    cfg.Model.ID,
		UVXCommand: cfg.Model.UVXCommand,
		CacheDir:   cfg.Model.CacheDir,
		HFToken:    cfg.Model.HFToken,
	}, logger)
}

// parakeetLoader adapts parakeet.Service to batch.ModelLoader.
type parakeetLoader struct {
	svc *parakeet.Service
}

func newParakeetLoader(cfg *config.Config, logger *slog.Logger) batch.ModelLoader {
	return &parakeetLoader{svc: newParakeetService(cfg, logger)}
}

func (l *parakeetLoader) ModelID() string { return l.svc.ModelID() }

func (l *parakeetLoader) IsCached() bool { return l.svc.IsCached() }

func (l *parakeetLoader) Load(ctx context.Context) (batch.Transcriber, error) {
	model, err := l.svc.Load(ctx)
	if err != nil {
		return nil, err
	}
	return model, nil
}

// cachingLoader wraps the loaded transcriber with the transcript cache.
type cachingLoader struct {
	batch.ModelLoader
	store  *transcriptcache.Store
	logger *slog.Logger
}

func (l *cachingLoader) Load(ctx context.Context) (batch.Transcriber, error) {
	model, err := l.ModelLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return transcriptcache.Wrap(model, l.store, l.ModelID(), l.logger), nil
}
