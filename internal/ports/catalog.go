package ports

import "github.com/bnema/plza-save-editor/internal/domain"

// Catalog holds the whitelists of editable bag slots and exposed collection
// slots, plus the fixed dress-up blobs written on gender changes.
type Catalog interface {
	ItemSlots() []int
	Item(slot int) (domain.CatalogItem, bool)
	SpeciesSlots() []int
	Species(slot int) (domain.CatalogSpecies, bool)
	DressUp(gender domain.Gender) []byte
}
