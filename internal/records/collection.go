package records

import (
	"fmt"

	"github.com/bnema/plza-save-editor/internal/domain"
)

const CollectionEntrySize = 8

type CollectionEntry struct {
	Capture uint8
	Battle  uint8
	Shiny   uint8
	Variant uint8
}

// Collection is the per-species flag record. Each entry carries four flag
// bytes followed by four reserved bytes.
type Collection struct {
	raw []byte
}

func DecodeCollection(data []byte) (*Collection, error) {
	return &Collection{raw: data}, nil
}

func (c *Collection) Len() int {
	return len(c.raw) / CollectionEntrySize
}

func (c *Collection) Entry(slot int) (CollectionEntry, error) {
	if slot < 0 || slot >= c.Len() {
		return CollectionEntry{}, fmt.Errorf("%w: collection slot %d of %d", ErrSlotOutOfRange, slot, c.Len())
	}

	var e CollectionEntry
	if err := unpack(c.raw[slot*CollectionEntrySize:(slot+1)*CollectionEntrySize], &e); err != nil {
		return CollectionEntry{}, &domain.DecodeError{Block: domain.BlockCollection, Err: err}
	}

	return e, nil
}
