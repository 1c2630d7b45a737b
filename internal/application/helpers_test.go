package application

import (
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/bnema/plza-save-editor/internal/catalog"
	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/records"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func changesFromJSON(t *testing.T, raw string) domain.ChangeSet {
	t.Helper()

	var cs domain.ChangeSet
	require.NoError(t, json.Unmarshal([]byte(raw), &cs))
	return cs
}

func blockData(t *testing.T, c *domain.Container, key domain.BlockKey) []byte {
	t.Helper()

	block, err := c.Block(key)
	require.NoError(t, err)
	return block.Data
}

func inventoryEntry(t *testing.T, c *domain.Container, slot int) records.InventoryEntry {
	t.Helper()

	inv, err := records.DecodeInventory(blockData(t, c, domain.BlockInventory))
	require.NoError(t, err)
	entry, err := inv.Entry(slot)
	require.NoError(t, err)
	return entry
}

func profile(t *testing.T, c *domain.Container) *records.Profile {
	t.Helper()

	p, err := records.DecodeProfile(blockData(t, c, domain.BlockProfile))
	require.NoError(t, err)
	return p
}

func requireSameBlocks(t *testing.T, want, got *domain.Container) {
	t.Helper()

	require.Equal(t, want.Len(), got.Len())
	for i, block := range want.Blocks() {
		require.Equal(t, block.Key, got.Blocks()[i].Key)
		require.Equal(t, block.Data, got.Blocks()[i].Data, "block %s", block.Key)
	}
}

func rawQuantity(t *testing.T, c *domain.Container, slot int) uint32 {
	t.Helper()

	data := blockData(t, c, domain.BlockInventory)
	return binary.LittleEndian.Uint32(data[slot*records.InventoryEntrySize+4:])
}

func mockAnyContext() interface{} {
	return mock.Anything
}
