package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func testContainer(t *testing.T, marker byte) *domain.Container {
	t.Helper()

	c, err := domain.NewContainer([]domain.Block{{Key: domain.BlockProfile, Type: domain.BlockTypeObject, Data: []byte{marker}}})
	require.NoError(t, err)
	return c
}

func newStore(t *testing.T, cfg Config) *Store {
	t.Helper()

	s := New(cfg)
	t.Cleanup(func() { require.NoError(t, s.Close(context.Background())) })
	return s
}

func TestStorePutGetReplace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, Config{})

	first := testContainer(t, 1)
	ref, err := s.Put(ctx, first)
	require.NoError(t, err)
	assert.NotEmpty(t, ref)

	got, err := s.Get(ctx, ref)
	require.NoError(t, err)
	assert.Same(t, first, got)

	second := testContainer(t, 2)
	require.NoError(t, s.Replace(ctx, ref, second))

	got, err = s.Get(ctx, ref)
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestStoreRefsAreUnique(t *testing.T) {
	t.Parallel()

	s := newStore(t, Config{})
	seen := map[domain.SessionRef]bool{}
	for range 50 {
		ref, err := s.Put(context.Background(), testContainer(t, 0))
		require.NoError(t, err)
		require.False(t, seen[ref])
		seen[ref] = true
	}
	assert.Equal(t, 50, s.Len())
}

func TestStoreUnknownRef(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, Config{})

	_, err := s.Get(ctx, "9f3a0b5e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	err = s.Replace(ctx, "9f3a0b5e-0000-4000-8000-000000000000", testContainer(t, 1))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Zero(t, s.Len(), "replace never creates a session")
}

func TestStoreRejectsNilContainerAndDoneContext(t *testing.T) {
	t.Parallel()

	s := newStore(t, Config{})
	_, err := s.Put(context.Background(), nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Put(ctx, testContainer(t, 1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStoreSlidingTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	s := newStore(t, Config{TTL: time.Hour, Clock: clock})

	ref, err := s.Put(ctx, testContainer(t, 1))
	require.NoError(t, err)

	clock.Advance(50 * time.Minute)
	_, err = s.Get(ctx, ref)
	require.NoError(t, err)

	clock.Advance(50 * time.Minute)
	_, err = s.Get(ctx, ref)
	require.NoError(t, err, "access refreshed the deadline")

	clock.Advance(61 * time.Minute)
	_, err = s.Get(ctx, ref)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Zero(t, s.Len())
}

func TestStoreSweep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	s := newStore(t, Config{TTL: time.Minute, Clock: clock})

	stale, err := s.Put(ctx, testContainer(t, 1))
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)
	fresh, err := s.Put(ctx, testContainer(t, 2))
	require.NoError(t, err)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	_, err = s.Get(ctx, stale)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = s.Get(ctx, fresh)
	assert.NoError(t, err)
}

func TestStoreJanitorSweeps(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	s := newStore(t, Config{TTL: time.Minute, SweepInterval: 5 * time.Millisecond, Clock: clock})

	_, err := s.Put(context.Background(), testContainer(t, 1))
	require.NoError(t, err)
	clock.Advance(time.Hour)

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	s := newStore(t, Config{MaxEntries: 2, Clock: clock})

	a, err := s.Put(ctx, testContainer(t, 'a'))
	require.NoError(t, err)
	clock.Advance(time.Second)
	b, err := s.Put(ctx, testContainer(t, 'b'))
	require.NoError(t, err)
	clock.Advance(time.Second)

	_, err = s.Get(ctx, a)
	require.NoError(t, err)
	clock.Advance(time.Second)

	c, err := s.Put(ctx, testContainer(t, 'c'))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	_, err = s.Get(ctx, b)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = s.Get(ctx, a)
	assert.NoError(t, err)
	_, err = s.Get(ctx, c)
	assert.NoError(t, err)
}

func TestStoreConcurrentPutsKeepCapacity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, Config{MaxEntries: 4})

	refs := make([]domain.SessionRef, 32)
	var g errgroup.Group
	for i := range refs {
		g.Go(func() error {
			ref, err := s.Put(ctx, testContainer(t, byte(i)))
			refs[i] = ref
			return err
		})
	}
	require.NoError(t, g.Wait())

	live := 0
	for _, ref := range refs {
		if _, err := s.Get(ctx, ref); err == nil {
			live++
		}
	}
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 4, live)
}

func TestStoreConcurrentReplaceIsLastWriterWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, Config{TTL: time.Hour})

	ref, err := s.Put(ctx, testContainer(t, 0))
	require.NoError(t, err)

	var g errgroup.Group
	for i := range 32 {
		g.Go(func() error {
			if _, err := s.Get(ctx, ref); err != nil {
				return err
			}
			return s.Replace(ctx, ref, testContainer(t, byte(i)))
		})
	}
	require.NoError(t, g.Wait())

	got, err := s.Get(ctx, ref)
	require.NoError(t, err)
	block, err := got.Block(domain.BlockProfile)
	require.NoError(t, err)
	assert.Len(t, block.Data, 1)
}

func TestStoreCloseStopsJanitor(t *testing.T) {
	t.Parallel()

	s := New(Config{TTL: time.Minute, SweepInterval: time.Millisecond})
	_, err := s.Put(context.Background(), testContainer(t, 1))
	require.NoError(t, err)

	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, s.Close(context.Background()), "close is idempotent")
	assert.Zero(t, s.Len())
}
