// Package bootstrap wires the application once, at process start. There is
// no module-level state: everything lives on the App handle and re-invoking
// New builds an independent instance.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"pensaai/internal/ai"
	"pensaai/internal/config"
	"pensaai/internal/extract"
	"pensaai/internal/index"
	"pensaai/internal/store"
	"pensaai/internal/worker"
)

type App struct {
	Config       *config.Config
	Store        *store.DocumentStore
	AI           *ai.Client
	Index        *index.Service
	UploadWorker *worker.IndexUpdateWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	documentStore, err := store.NewDocumentStore(cfg.Index.UploadPath)
	if err != nil {
		return nil, err
	}

	aiClient := ai.NewClient(ai.ClientConfig{
		BaseURL:        cfg.LLM.BaseURL,
		APIKey:         cfg.LLM.APIKey,
		Model:          cfg.LLM.Model,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		RequestTimeout: time.Duration(cfg.LLM.RequestTimeoutSeconds) * time.Second,
	})

	indexService := index.NewService(index.Config{
		PersistPath:    cfg.Index.PersistPath,
		ChunkSize:      cfg.Index.ChunkSize,
		ChunkOverlap:   cfg.Index.ChunkOverlap,
		EmbedBatchSize: cfg.Index.EmbedBatchSize,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
	}, documentStore, aiClient, extract.Text)

	if err := loadOrRebuildIndex(ctx, indexService); err != nil {
		return nil, err
	}

	uploadWorker := worker.NewIndexUpdateWorker(documentStore.Dir(), indexService, 0)
	if err := uploadWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start upload worker failed: %w", err)
	}

	return &App{
		Config:       cfg,
		Store:        documentStore,
		AI:           aiClient,
		Index:        indexService,
		UploadWorker: uploadWorker,
		StartedAt:    time.Now(),
	}, nil
}

// loadOrRebuildIndex restores the persisted index; an incompatible snapshot
// is discarded and rebuilt from source documents, never partially loaded.
func loadOrRebuildIndex(ctx context.Context, indexService *index.Service) error {
	err := indexService.Load()
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("bootstrap: no persisted index, building from documents")
	case errors.Is(err, index.ErrIncompatibleIndex):
		log.Printf("bootstrap: persisted index incompatible, rebuilding: %v", err)
		if resetErr := indexService.Reset(); resetErr != nil {
			return resetErr
		}
	default:
		return err
	}
	return indexService.Rebuild(ctx)
}

func (a *App) Close() error {
	if a.UploadWorker != nil {
		a.UploadWorker.Close()
	}
	return nil
}
