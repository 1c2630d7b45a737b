package ristretto

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContainer(t *testing.T, marker byte) *domain.Container {
	t.Helper()

	c, err := domain.NewContainer([]domain.Block{{Key: domain.BlockProfile, Type: domain.BlockTypeObject, Data: []byte{marker}}})
	require.NoError(t, err)
	return c
}

func newStore(t *testing.T, cfg Config) *Store {
	t.Helper()

	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestNewRejectsZeroCapacity(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	assert.Error(t, err)
}

func TestStorePutGetReplace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, Config{MaxEntries: 16, TTL: time.Hour})

	first := testContainer(t, 1)
	ref, err := s.Put(ctx, first)
	require.NoError(t, err)

	got, err := s.Get(ctx, ref)
	require.NoError(t, err)
	assert.Same(t, first, got)

	second := testContainer(t, 2)
	require.NoError(t, s.Replace(ctx, ref, second))
	got, err = s.Get(ctx, ref)
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestStoreUnknownRef(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, Config{MaxEntries: 4})

	_, err := s.Get(ctx, "3b241101-e2bb-4255-8caf-4136c566a962")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	err = s.Replace(ctx, "3b241101-e2bb-4255-8caf-4136c566a962", testContainer(t, 1))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = s.Get(ctx, "3b241101-e2bb-4255-8caf-4136c566a962")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStoreExpiresEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, Config{MaxEntries: 4, TTL: 50 * time.Millisecond})

	ref, err := s.Put(ctx, testContainer(t, 1))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := s.Get(ctx, ref)
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)
}
