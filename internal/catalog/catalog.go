// Package catalog provides the slot whitelists and dress-up blobs the edit
// engine consults. The default catalog is embedded; a TOML file with the same
// schema can replace it.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

var (
	//go:embed data/catalog.toml
	defaultCatalog []byte

	//go:embed data/dressup_male.bin
	dressUpMale []byte

	//go:embed data/dressup_female.bin
	dressUpFemale []byte
)

type Catalog struct {
	items        map[int]domain.CatalogItem
	species      map[int]domain.CatalogSpecies
	itemSlots    []int
	speciesSlots []int
}

var _ ports.Catalog = (*Catalog)(nil)

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file. An empty path selects the embedded catalog.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}

	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	file.applyDefaults()
	if err := file.validateVersion(); err != nil {
		return nil, err
	}

	return fromSchema(file)
}

func fromSchema(file fileSchema) (*Catalog, error) {
	c := &Catalog{
		items:   make(map[int]domain.CatalogItem, len(file.Items)),
		species: make(map[int]domain.CatalogSpecies, len(file.Species)),
	}

	var errs []error
	for _, item := range file.Items {
		category, err := domain.ParseItemCategory(item.Category)
		switch {
		case item.Slot < 0:
			errs = append(errs, fmt.Errorf("item %q: negative slot %d", item.Name, item.Slot))
		case err != nil:
			errs = append(errs, fmt.Errorf("item slot %d: %w", item.Slot, err))
		case category == domain.ItemCategoryNone:
			errs = append(errs, fmt.Errorf("item slot %d: category is required", item.Slot))
		default:
			if _, dup := c.items[item.Slot]; dup {
				errs = append(errs, fmt.Errorf("item slot %d listed twice", item.Slot))
				continue
			}
			c.items[item.Slot] = domain.CatalogItem{Slot: item.Slot, Name: item.Name, Category: category}
		}
	}

	for _, sp := range file.Species {
		if sp.Slot < 0 {
			errs = append(errs, fmt.Errorf("species %q: negative slot %d", sp.Name, sp.Slot))
			continue
		}
		if _, dup := c.species[sp.Slot]; dup {
			errs = append(errs, fmt.Errorf("species slot %d listed twice", sp.Slot))
			continue
		}
		c.species[sp.Slot] = domain.CatalogSpecies{Slot: sp.Slot, Name: sp.Name}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	c.itemSlots = slices.Sorted(maps.Keys(c.items))
	c.speciesSlots = slices.Sorted(maps.Keys(c.species))
	return c, nil
}

// ItemSlots returns the editable bag slots in ascending order.
func (c *Catalog) ItemSlots() []int {
	return slices.Clone(c.itemSlots)
}

func (c *Catalog) Item(slot int) (domain.CatalogItem, bool) {
	item, ok := c.items[slot]
	return item, ok
}

func (c *Catalog) SpeciesSlots() []int {
	return slices.Clone(c.speciesSlots)
}

func (c *Catalog) Species(slot int) (domain.CatalogSpecies, bool) {
	sp, ok := c.species[slot]
	return sp, ok
}

// DressUp returns a fresh copy of the cosmetic blob for g.
func (c *Catalog) DressUp(g domain.Gender) []byte {
	if g == domain.GenderMale {
		return slices.Clone(dressUpMale)
	}
	return slices.Clone(dressUpFemale)
}
