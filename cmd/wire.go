package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/plza-save-editor/internal/adapters/codec/swish"
	summaryadapter "github.com/bnema/plza-save-editor/internal/adapters/render/summary"
	bigcachestore "github.com/bnema/plza-save-editor/internal/adapters/session/bigcache"
	memorystore "github.com/bnema/plza-save-editor/internal/adapters/session/memory"
	ristrettostore "github.com/bnema/plza-save-editor/internal/adapters/session/ristretto"
	"github.com/bnema/plza-save-editor/internal/adapters/session/snapshot"
	"github.com/bnema/plza-save-editor/internal/application"
	"github.com/bnema/plza-save-editor/internal/catalog"
	"github.com/bnema/plza-save-editor/internal/config"
	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/ports"
	"github.com/bnema/plza-save-editor/internal/workerpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	cfg             config.Config
	logger          *zap.Logger
	catalog         *catalog.Catalog
	sessions        ports.SessionStore
	pool            *workerpool.Pool
	service         *application.Service
	summaryRenderer func(domain.SaveSummary, summaryadapter.RenderOptions) (string, error)
}

func wireApp(cfg config.Config) (*app, error) {
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("wire catalog: %w", err)
	}

	sessions, err := newSessionStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	pool, err := workerpool.New(cfg.Workers.Size, logger.Named("workers"))
	if err != nil {
		_ = sessions.Close(context.Background())
		return nil, fmt.Errorf("wire worker pool: %w", err)
	}

	logger.Debug("app wired",
		zap.String("config", cfg.File),
		zap.String("sessions", cfg.Sessions.Backend),
		zap.Int("workers", pool.Size()),
	)

	return &app{
		cfg:             cfg,
		logger:          logger,
		catalog:         cat,
		sessions:        sessions,
		pool:            pool,
		service:         application.NewService(swish.New(), sessions, pool, cat, logger.Named("service")),
		summaryRenderer: summaryadapter.Render,
	}, nil
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}

func newSessionStore(cfg config.Config, logger *zap.Logger) (ports.SessionStore, error) {
	logger = logger.Named("sessions")

	switch cfg.Sessions.Backend {
	case config.BackendMemory:
		return memorystore.New(memorystore.Config{
			TTL:           cfg.Sessions.TTL,
			MaxEntries:    cfg.Sessions.MaxEntries,
			SweepInterval: cfg.Sessions.SweepInterval,
			Logger:        logger,
		}), nil
	case config.BackendRistretto:
		return ristrettostore.New(ristrettostore.Config{
			TTL:        cfg.Sessions.TTL,
			MaxEntries: int64(cfg.Sessions.MaxEntries),
			Logger:     logger,
		})
	case config.BackendBigcache:
		codec, err := snapshot.ByName(cfg.Sessions.SnapshotCodec)
		if err != nil {
			return nil, err
		}
		return bigcachestore.New(bigcachestore.Config{
			TTL:        cfg.Sessions.TTL,
			MaxEntries: cfg.Sessions.MaxEntries,
			MaxSizeMB:  cfg.Sessions.BigcacheMaxMB,
			// Snapshots are slightly larger than the save they came from.
			Snapshot: snapshot.Limit{Inner: codec, MaxDecode: int(2 * cfg.Server.MaxUploadBytes)},
			Logger:   logger,
		})
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Sessions.Backend)
	}
}

// Close releases the session store and worker pool. It is safe on a nil app.
func (a *app) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}

	err := errors.Join(a.sessions.Close(ctx), a.pool.Close())
	_ = a.logger.Sync()
	return err
}
