package bigcache

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/plza-save-editor/internal/adapters/session/snapshot"
	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContainer(t *testing.T, marker byte) *domain.Container {
	t.Helper()

	c, err := domain.NewContainer([]domain.Block{
		{Key: domain.BlockProfile, Type: domain.BlockTypeObject, Data: []byte{marker, 0, 0, marker}},
		{Key: domain.BlockCosmetic, Type: domain.BlockTypeObject, Data: []byte{0xC0}},
	})
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

func TestNewRequiresTTL(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	assert.Error(t, err)
}

func TestStoreRoundTripsSnapshots(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"cbor", "msgpack"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			codec, err := snapshot.ByName(name)
			require.NoError(t, err)

			ctx := context.Background()
			s := newStore(t, Config{TTL: time.Hour, MaxEntries: 8, Snapshot: codec})

			original := testContainer(t, 7)
			ref, err := s.Put(ctx, original)
			require.NoError(t, err)
			assert.Equal(t, 1, s.Len())

			got, err := s.Get(ctx, ref)
			require.NoError(t, err)
			assert.NotSame(t, original, got)
			block, err := got.Block(domain.BlockProfile)
			require.NoError(t, err)
			assert.Equal(t, []byte{7, 0, 0, 7}, block.Data)

			require.NoError(t, got.ReplaceBlockData(domain.BlockProfile, []byte{9}))
			again, err := s.Get(ctx, ref)
			require.NoError(t, err)
			block, err = again.Block(domain.BlockProfile)
			require.NoError(t, err)
			assert.Equal(t, []byte{7, 0, 0, 7}, block.Data, "changes are invisible until replaced")

			require.NoError(t, s.Replace(ctx, ref, got))
			again, err = s.Get(ctx, ref)
			require.NoError(t, err)
			block, err = again.Block(domain.BlockProfile)
			require.NoError(t, err)
			assert.Equal(t, []byte{9}, block.Data)
		})
	}
}

func TestStoreUnknownRef(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t, Config{TTL: time.Hour})

	_, err := s.Get(ctx, "0b5a4a52-5f7c-4d0e-9a53-b2f1d3c1d0aa")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	err = s.Replace(ctx, "0b5a4a52-5f7c-4d0e-9a53-b2f1d3c1d0aa", testContainer(t, 1))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Zero(t, s.Len())
}
