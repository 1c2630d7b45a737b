package application

import (
	"fmt"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/ports"
)

// ApplyChanges validates changes and applies them to a copy of c. The input
// container is never modified, so a failed or concurrent edit cannot leave it
// half written.
func ApplyChanges(c *domain.Container, changes domain.ChangeSet, catalog ports.Catalog) (*domain.Container, error) {
	plan, err := planChanges(changes, catalog)
	if err != nil {
		return nil, err
	}

	out := c.Clone()
	if err := applyProfile(out, plan, catalog); err != nil {
		return nil, err
	}
	if err := applyInventory(out, plan); err != nil {
		return nil, err
	}

	return out, nil
}

func applyProfile(c *domain.Container, plan changePlan, catalog ports.Catalog) error {
	if !plan.touchesProfile() {
		return nil
	}

	profile, err := loadProfile(c)
	if err != nil {
		return err
	}

	if plan.gender != nil {
		profile.SetGender(*plan.gender)
		if err := c.ReplaceBlockData(domain.BlockCosmetic, catalog.DressUp(*plan.gender)); err != nil {
			return fmt.Errorf("replace dress-up block: %w", err)
		}
	}
	if plan.name != nil {
		profile.SetName(*plan.name)
	}
	if plan.tid != nil {
		profile.SetTrainerID(*plan.tid)
	}
	if plan.language != nil {
		profile.SetLanguage(*plan.language)
	}

	data, err := profile.Encode()
	if err != nil {
		return err
	}
	return c.ReplaceBlockData(domain.BlockProfile, data)
}

func applyInventory(c *domain.Container, plan changePlan) error {
	if len(plan.inventory) == 0 {
		return nil
	}

	inventory, err := loadInventory(c)
	if err != nil {
		return err
	}

	for _, edit := range plan.inventory {
		if err := inventory.SetEntry(edit.slot, edit.entry); err != nil {
			return &domain.ValidationError{Field: fmt.Sprintf("%s%d", inventoryKeyPrefix, edit.slot), Reason: err.Error()}
		}
	}

	data, err := inventory.Encode()
	if err != nil {
		return err
	}
	return c.ReplaceBlockData(domain.BlockInventory, data)
}
