package application

import (
	"errors"
	"fmt"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/ports"
	"github.com/bnema/plza-save-editor/internal/records"
)

// Project builds the whitelisted client view of c. It never mutates c, and
// any record that cannot be decoded fails the whole projection. Whitelisted
// slots past the end of a record are left out.
func Project(c *domain.Container, catalog ports.Catalog) (domain.SaveSummary, error) {
	profile, err := loadProfile(c)
	if err != nil {
		return domain.SaveSummary{}, err
	}
	inventory, err := loadInventory(c)
	if err != nil {
		return domain.SaveSummary{}, err
	}
	collection, err := loadCollection(c)
	if err != nil {
		return domain.SaveSummary{}, err
	}

	summary := domain.SaveSummary{
		Profile: domain.ProfileSummary{
			Name:      profile.Name(),
			Gender:    profile.Gender(),
			TrainerID: profile.TrainerID(),
			Language:  profile.Language(),
		},
		Inventory:  make(map[int]domain.InventorySummaryEntry),
		Collection: make(map[int]domain.CollectionSummaryEntry),
	}

	for _, slot := range catalog.ItemSlots() {
		entry, err := inventory.Entry(slot)
		if errors.Is(err, records.ErrSlotOutOfRange) {
			continue
		}
		if err != nil {
			return domain.SaveSummary{}, fmt.Errorf("read inventory slot %d: %w", slot, err)
		}
		summary.Inventory[slot] = domain.InventorySummaryEntry{Category: entry.Category, Quantity: entry.Quantity}
	}

	for _, slot := range catalog.SpeciesSlots() {
		entry, err := collection.Entry(slot)
		if errors.Is(err, records.ErrSlotOutOfRange) {
			continue
		}
		if err != nil {
			return domain.SaveSummary{}, fmt.Errorf("read collection slot %d: %w", slot, err)
		}
		summary.Collection[slot] = domain.CollectionSummaryEntry{
			CaptureFlag: entry.Capture,
			BattleFlag:  entry.Battle,
			ShinyFlag:   entry.Shiny,
			VariantFlag: entry.Variant,
		}
	}

	return summary, nil
}

func loadProfile(c *domain.Container) (*records.Profile, error) {
	block, err := c.Block(domain.BlockProfile)
	if err != nil {
		return nil, err
	}
	return records.DecodeProfile(block.Data)
}

func loadInventory(c *domain.Container) (*records.Inventory, error) {
	block, err := c.Block(domain.BlockInventory)
	if err != nil {
		return nil, err
	}
	return records.DecodeInventory(block.Data)
}

func loadCollection(c *domain.Container) (*records.Collection, error) {
	block, err := c.Block(domain.BlockCollection)
	if err != nil {
		return nil, err
	}
	return records.DecodeCollection(block.Data)
}
