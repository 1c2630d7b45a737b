// Package ristretto backs sessions with a cost-bounded ristretto cache. Every
// session costs 1, so MaxCost is the session capacity. TTLs count from the
// last write.
package ristretto

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/ports"
	rc "github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
)

type Config struct {
	TTL        time.Duration
	MaxEntries int64
	Metrics    bool
	Logger     *zap.Logger
}

type Store struct {
	c      *rc.Cache
	ttl    time.Duration
	logger *zap.Logger
}

var _ ports.SessionStore = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	if cfg.MaxEntries <= 0 {
		return nil, errors.New("ristretto: max entries must be positive")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	c, err := rc.NewCache(&rc.Config{
		NumCounters:        cfg.MaxEntries * 10,
		MaxCost:            cfg.MaxEntries,
		BufferItems:        64,
		Metrics:            cfg.Metrics,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}

	return &Store{c: c, ttl: max(cfg.TTL, 0), logger: cfg.Logger}, nil
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

// Get returns the cached container; callers clone it before changing it.
func (s *Store) Get(ctx context.Context, ref domain.SessionRef) (*domain.Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, ok := s.c.Get(string(ref))
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, ref)
	}
	c, ok := v.(*domain.Container)
	if !ok || c == nil {
		s.c.Del(string(ref))
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, ref)
	}

	return c, nil
}

// Replace overwrites a live session. Between the existence check and the
// write the entry may be evicted, in which case it comes back.
func (s *Store) Replace(ctx context.Context, ref domain.SessionRef, c *domain.Container) error {
	if _, err := s.Get(ctx, ref); err != nil {
		return err
	}
	if c == nil {
		return errors.New("replace session: nil container")
	}

	return s.set(ref, c)
}

func (s *Store) set(ref domain.SessionRef, c *domain.Container) error {
	if !s.c.SetWithTTL(string(ref), c, 1, s.ttl) {
		s.logger.Warn("ristretto dropped session write", zap.String("ref", ref.String()))
		return fmt.Errorf("%w: %s", domain.ErrStoreFull, ref)
	}
	s.c.Wait()
	return nil
}

func (s *Store) Close(_ context.Context) error {
	s.c.Wait()
	s.c.Close()
	return nil
}

func (s *Store) Metrics() *rc.Metrics { return s.c.Metrics }
