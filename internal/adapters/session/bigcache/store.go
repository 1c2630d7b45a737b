// Package bigcache keeps sessions as serialized snapshots in a bigcache
// instance, outside the garbage collector's view. Each Get decodes a private
// copy. Entries live for TTL after their last write; the oldest entries are
// dropped once the cache reaches its size limit.
package bigcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	bc "github.com/allegro/bigcache/v3"
	"github.com/bnema/plza-save-editor/internal/adapters/session/snapshot"
	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/ports"
	"go.uber.org/zap"
)

const (
	defaultShards      = 16
	defaultEntrySize   = 16 << 10
	defaultCleanWindow = time.Minute
)

type Config struct {
	TTL        time.Duration
	MaxEntries int
	MaxSizeMB  int // 0 = unbounded
	Snapshot   snapshot.Codec
	Logger     *zap.Logger
}

type Store struct {
	c        *bc.BigCache
	snapshot snapshot.Codec
	logger   *zap.Logger
}

var _ ports.SessionStore = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	if cfg.TTL <= 0 {
		return nil, errors.New("bigcache: ttl must be positive")
	}
	if cfg.Snapshot == nil {
		codec, err := snapshot.NewCBOR()
		if err != nil {
			return nil, err
		}
		cfg.Snapshot = codec
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	conf := bc.DefaultConfig(cfg.TTL)
	conf.Shards = defaultShards
	conf.CleanWindow = min(cfg.TTL, defaultCleanWindow)
	conf.MaxEntriesInWindow = max(cfg.MaxEntries, 1)
	conf.MaxEntrySize = defaultEntrySize
	conf.HardMaxCacheSize = max(cfg.MaxSizeMB, 0)
	conf.Verbose = false
	conf.OnRemoveWithReason = func(key string, _ []byte, reason bc.RemoveReason) {
		if reason != bc.Deleted {
			cfg.Logger.Debug("session dropped", zap.String("ref", key), zap.Int("reason", int(reason)))
		}
	}

	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, fmt.Errorf("create bigcache: %w", err)
	}

	return &Store{c: c, snapshot: cfg.Snapshot, logger: cfg.Logger}, nil
}

func (s *Store) Put(ctx context.Context, c *domain.Container) (domain.SessionRef, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c == nil {
		return "", errors.New("put session: nil container")
	}

	ref, err := domain.NewSessionRef()
	if err != nil {
		return "", err
	}
	if err := s.set(ref, c); err != nil {
		return "", err
	}

	return ref, nil
}

func (s *Store) Get(ctx context.Context, ref domain.SessionRef) (*domain.Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := s.c.Get(string(ref))
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", ref, err)
	}

	c, err := s.snapshot.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decode session %s: %w", ref, err)
	}

	return c, nil
}

func (s *Store) Replace(ctx context.Context, ref domain.SessionRef, c *domain.Container) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c == nil {
		return errors.New("replace session: nil container")
	}

	if _, err := s.c.Get(string(ref)); err != nil {
		if errors.Is(err, bc.ErrEntryNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, ref)
		}
		return fmt.Errorf("read session %s: %w", ref, err)
	}

	return s.set(ref, c)
}

func (s *Store) set(ref domain.SessionRef, c *domain.Container) error {
	b, err := s.snapshot.Encode(c)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", ref, err)
	}
	if err := s.c.Set(string(ref), b); err != nil {
		s.logger.Warn("bigcache rejected session", zap.String("ref", ref.String()), zap.Error(err))
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreFull, ref, err)
	}
	return nil
}

func (s *Store) Len() int {
	return s.c.Len()
}

func (s *Store) Close(_ context.Context) error {
	return s.c.Close()
}
