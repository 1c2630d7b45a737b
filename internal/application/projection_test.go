package application

import (
	"testing"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSample(t *testing.T) {
	t.Parallel()

	cat := defaultCatalog(t)
	summary, err := Project(fixtures.Container(), cat)
	require.NoError(t, err)

	assert.Equal(t, domain.ProfileSummary{
		Name:      fixtures.Name,
		Gender:    fixtures.Gender,
		TrainerID: fixtures.TrainerID,
		Language:  fixtures.Language,
	}, summary.Profile)

	assert.Equal(t, domain.InventorySummaryEntry{Category: domain.ItemCategoryBalls, Quantity: 15}, summary.Inventory[5])
	assert.Equal(t, domain.CollectionSummaryEntry{BattleFlag: 1}, summary.Collection[6])
	assert.Equal(t, domain.CollectionSummaryEntry{CaptureFlag: 1, ShinyFlag: 1}, summary.Collection[5])
}

func TestProjectOnlyExposesWhitelistedSlots(t *testing.T) {
	t.Parallel()

	cat := defaultCatalog(t)
	summary, err := Project(fixtures.Container(), cat)
	require.NoError(t, err)

	for slot := range summary.Inventory {
		_, ok := cat.Item(slot)
		assert.True(t, ok, "inventory slot %d is not whitelisted", slot)
	}
	for slot := range summary.Collection {
		_, ok := cat.Species(slot)
		assert.True(t, ok, "collection slot %d is not whitelisted", slot)
	}
	assert.Len(t, summary.Inventory, len(cat.ItemSlots()))
	assert.NotContains(t, summary.Inventory, 0)
	assert.NotContains(t, summary.Inventory, 13)
}

func TestProjectFailsOnMissingBlock(t *testing.T) {
	t.Parallel()

	for _, key := range []domain.BlockKey{domain.BlockProfile, domain.BlockInventory, domain.BlockCollection} {
		t.Run(key.String(), func(t *testing.T) {
			t.Parallel()

			var blocks []domain.Block
			for _, b := range fixtures.Container().Blocks() {
				if b.Key != key {
					blocks = append(blocks, b)
				}
			}
			c, err := domain.NewContainer(blocks)
			require.NoError(t, err)

			_, err = Project(c, defaultCatalog(t))
			assert.ErrorIs(t, err, domain.ErrBlockMissing)
		})
	}
}

func TestProjectFailsOnTruncatedProfile(t *testing.T) {
	t.Parallel()

	c := fixtures.Container()
	require.NoError(t, c.ReplaceBlockData(domain.BlockProfile, []byte{1, 2, 3}))

	_, err := Project(c, defaultCatalog(t))
	assert.ErrorIs(t, err, domain.ErrInvalidContainer)
}

func TestProjectSkipsSlotsPastRecordEnd(t *testing.T) {
	t.Parallel()

	c := fixtures.Container()
	require.NoError(t, c.ReplaceBlockData(domain.BlockInventory, fixtures.InventoryBytes()[:8*6]))

	summary, err := Project(c, defaultCatalog(t))
	require.NoError(t, err)
	assert.Len(t, summary.Inventory, 5)
	assert.Contains(t, summary.Inventory, 5)
}
