// Package memory keeps sessions in process memory with a sliding idle TTL and
// a capacity bound that evicts the least recently used session.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/ports"
	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"
)

type Config struct {
	TTL           time.Duration // <= 0 disables expiry
	MaxEntries    int           // <= 0 disables the capacity bound
	SweepInterval time.Duration // <= 0 disables the background janitor
	Clock         ports.Clock
	Logger        *zap.Logger
}

type entry struct {
	mu      sync.Mutex
	session domain.Session
	removed bool
}

type Store struct {
	cfg     Config
	clock   ports.Clock
	logger  *zap.Logger
	entries *xsync.Map[domain.SessionRef, *entry]

	// putMu serializes inserts so the capacity check and the insert it guards
	// are one step.
	putMu sync.Mutex

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

var _ ports.SessionStore = (*Store)(nil)

func New(cfg Config) *Store {
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := &Store{
		cfg:     cfg,
		clock:   cfg.Clock,
		logger:  cfg.Logger,
		entries: xsync.NewMap[domain.SessionRef, *entry](),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	if cfg.TTL > 0 && cfg.SweepInterval > 0 {
		go s.janitor(cfg.SweepInterval)
	} else {
		close(s.done)
	}

	return s
}

// Put stores c under a fresh reference. The store owns c from here on.
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

	s.putMu.Lock()
	defer s.putMu.Unlock()

	s.makeRoom()
	now := s.clock.Now()
	s.entries.Store(ref, &entry{session: domain.Session{
		Ref:        ref,
		Container:  c,
		CreatedAt:  now,
		LastAccess: now,
	}})

	return ref, nil
}

// Get returns the stored container. It is shared with other readers and must
// be cloned before any change.
func (s *Store) Get(ctx context.Context, ref domain.SessionRef) (*domain.Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var c *domain.Container
	err := s.touch(ref, func(e *entry) {
		c = e.session.Container
	})
	if err != nil {
		return nil, err
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

	return s.touch(ref, func(e *entry) {
		e.session.Container = c
	})
}

// Len reports how many sessions are held, expired ones included until swept.
func (s *Store) Len() int {
	return s.entries.Size()
}

func (s *Store) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		close(s.stop)
	})

	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.entries.Clear()
	return nil
}

// touch runs fn on a live entry and refreshes its access time.
func (s *Store) touch(ref domain.SessionRef, fn func(e *entry)) error {
	e, ok := s.entries.Load(ref)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, ref)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := s.clock.Now()
	if e.removed {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, ref)
	}
	if e.session.Expired(now, s.cfg.TTL) {
		s.removeLocked(e)
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, ref)
	}

	fn(e)
	e.session.LastAccess = now
	return nil
}

// removeLocked drops e from the map. The caller holds e.mu.
func (s *Store) removeLocked(e *entry) {
	if e.removed {
		return
	}
	e.removed = true
	s.entries.Delete(e.session.Ref)
}

// makeRoom evicts least recently used sessions until one more fits. The caller
// holds putMu.
func (s *Store) makeRoom() {
	if s.cfg.MaxEntries <= 0 {
		return
	}

	for s.entries.Size() >= s.cfg.MaxEntries {
		var (
			oldest     *entry
			oldestSeen time.Time
		)
		s.entries.Range(func(_ domain.SessionRef, e *entry) bool {
			e.mu.Lock()
			seen, removed := e.session.LastAccess, e.removed
			e.mu.Unlock()
			if !removed && (oldest == nil || seen.Before(oldestSeen)) {
				oldest, oldestSeen = e, seen
			}
			return true
		})
		if oldest == nil {
			return
		}

		oldest.mu.Lock()
		s.removeLocked(oldest)
		oldest.mu.Unlock()
		s.logger.Debug("evicted least recently used session", zap.String("ref", oldest.session.Ref.String()))
	}
}

func (s *Store) janitor(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("swept expired sessions", zap.Int("count", n))
			}
		}
	}
}

// Sweep removes every expired session and returns how many it dropped.
func (s *Store) Sweep() int {
	if s.cfg.TTL <= 0 {
		return 0
	}

	now := s.clock.Now()
	removed := 0
	s.entries.Range(func(_ domain.SessionRef, e *entry) bool {
		e.mu.Lock()
		if !e.removed && e.session.Expired(now, s.cfg.TTL) {
			s.removeLocked(e)
			removed++
		}
		e.mu.Unlock()
		return true
	})

	return removed
}
