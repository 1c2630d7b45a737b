package domain

import "fmt"

// ItemCategory is the bag pocket an item entry belongs to.
type ItemCategory uint32

const (
	ItemCategoryNone ItemCategory = iota
	ItemCategoryMedicine
	ItemCategoryBalls
	ItemCategoryBattle
	ItemCategoryBerries
	ItemCategoryOther
	ItemCategoryTMs
	ItemCategoryTreasures
	ItemCategoryMegaStones
)

var itemCategoryNames = [...]string{
	ItemCategoryNone:       "none",
	ItemCategoryMedicine:   "medicine",
	ItemCategoryBalls:      "balls",
	ItemCategoryBattle:     "battle",
	ItemCategoryBerries:    "berries",
	ItemCategoryOther:      "other",
	ItemCategoryTMs:        "tms",
	ItemCategoryTreasures:  "treasures",
	ItemCategoryMegaStones: "mega-stones",
}

func (c ItemCategory) String() string {
	if int(c) >= len(itemCategoryNames) {
		return fmt.Sprintf("category(%d)", uint32(c))
	}
	return itemCategoryNames[c]
}

// CatalogItem is one editable bag slot.
type CatalogItem struct {
	Slot     int
	Name     string
	Category ItemCategory
}

// CatalogSpecies is one exposed collection slot.
type CatalogSpecies struct {
	Slot int
	Name string
}

// ParseItemCategory accepts the names returned by ItemCategory.String.
func ParseItemCategory(name string) (ItemCategory, error) {
	for i, known := range itemCategoryNames {
		if known == name {
			return ItemCategory(i), nil
		}
	}
	return ItemCategoryNone, fmt.Errorf("unknown item category %q", name)
}
