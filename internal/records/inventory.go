package records

import (
	"fmt"
	"maps"
	"slices"

	"github.com/bnema/plza-save-editor/internal/domain"
)

const (
	InventoryEntrySize = 8
	MaxQuantity        = 999
)

type InventoryEntry struct {
	Category domain.ItemCategory
	Quantity uint32
}

type inventoryLayout struct {
	Category uint32 `struc:"uint32"`
	Quantity uint32 `struc:"uint32"`
}

// Inventory is the bag record: a flat run of fixed-size entries indexed by
// slot. Trailing bytes that do not fill an entry are carried untouched.
type Inventory struct {
	raw   []byte
	dirty map[int]InventoryEntry
}

func DecodeInventory(data []byte) (*Inventory, error) {
	return &Inventory{
		raw:   slices.Clone(data),
		dirty: make(map[int]InventoryEntry),
	}, nil
}

// Len is the number of addressable slots.
func (inv *Inventory) Len() int {
	return len(inv.raw) / InventoryEntrySize
}

func (inv *Inventory) Entry(slot int) (InventoryEntry, error) {
	if slot < 0 || slot >= inv.Len() {
		return InventoryEntry{}, fmt.Errorf("%w: inventory slot %d of %d", ErrSlotOutOfRange, slot, inv.Len())
	}
	if entry, ok := inv.dirty[slot]; ok {
		return entry, nil
	}

	var l inventoryLayout
	if err := unpack(inv.raw[slot*InventoryEntrySize:], &l); err != nil {
		return InventoryEntry{}, &domain.DecodeError{Block: domain.BlockInventory, Err: err}
	}

	return InventoryEntry{Category: domain.ItemCategory(l.Category), Quantity: l.Quantity}, nil
}

func (inv *Inventory) SetEntry(slot int, entry InventoryEntry) error {
	if slot < 0 || slot >= inv.Len() {
		return fmt.Errorf("%w: inventory slot %d of %d", ErrSlotOutOfRange, slot, inv.Len())
	}
	inv.dirty[slot] = entry
	return nil
}

func (inv *Inventory) Encode() ([]byte, error) {
	out := slices.Clone(inv.raw)

	for _, slot := range slices.Sorted(maps.Keys(inv.dirty)) {
		entry := inv.dirty[slot]
		l := inventoryLayout{Category: uint32(entry.Category), Quantity: entry.Quantity}
		if err := packAt(out[slot*InventoryEntrySize:(slot+1)*InventoryEntrySize], &l); err != nil {
			return nil, fmt.Errorf("encode inventory slot %d: %w", slot, err)
		}
	}

	return out, nil
}
