package application

import (
	"encoding/json"
	"errors"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/ports"
	"github.com/bnema/plza-save-editor/internal/records"
	"github.com/spf13/cast"
	"golang.org/x/exp/constraints"
)

const (
	inventoryKeyPrefix = "bag_"
	namePlaceholder    = "."
)

// changePlan is a change set after validation. Nothing in it can fail to apply
// to a well-formed container.
type changePlan struct {
	gender   *domain.Gender
	name     *string
	tid      *uint32
	language *domain.Language

	inventory []inventoryEdit
	skipped   []int
}

type inventoryEdit struct {
	slot  int
	entry records.InventoryEntry
}

func (p changePlan) touchesProfile() bool {
	return p.gender != nil || p.name != nil || p.tid != nil || p.language != nil
}

// planChanges validates every field of changes before anything is applied.
// Unknown profile keys and bag slots outside the catalog are ignored, whatever
// value they carry.
func planChanges(changes domain.ChangeSet, catalog ports.Catalog) (changePlan, error) {
	var plan changePlan

	if v, ok := changes.Profile["gender"]; ok {
		n, err := toInt64("gender", v)
		if err != nil {
			return changePlan{}, err
		}
		g := domain.GenderFromValue(n)
		plan.gender = &g
	}

	if v, ok := changes.Profile["name"]; ok {
		name, isString := v.(string)
		if !isString {
			return changePlan{}, &domain.ValidationError{Field: "name", Reason: "must be a string"}
		}
		if name = records.NormalizeName(name); name == "" {
			name = namePlaceholder
		}
		plan.name = &name
	}

	if v, ok := changes.Profile["tid"]; ok {
		n, err := toInt64("tid", v)
		if err != nil {
			return changePlan{}, err
		}
		tid := uint32(n & 0xFFFFFFFF)
		plan.tid = &tid
	}

	if v, ok := changes.Profile["language"]; ok {
		n, err := toInt64("language", v)
		if err != nil {
			return changePlan{}, err
		}
		lang := domain.Language(n)
		if n < 0 || n > math.MaxUint8 || !lang.Valid() {
			return changePlan{}, &domain.ValidationError{Field: "language", Reason: "unknown language id " + strconv.FormatInt(n, 10)}
		}
		plan.language = &lang
	}

	for _, key := range slices.Sorted(maps.Keys(changes.Inventory)) {
		slot, err := strconv.Atoi(strings.TrimPrefix(key, inventoryKeyPrefix))
		if err != nil {
			return changePlan{}, &domain.ValidationError{Field: key, Reason: "slot must be numeric"}
		}
		item, ok := catalog.Item(slot)
		if !ok {
			plan.skipped = append(plan.skipped, slot)
			continue
		}
		quantity, err := toInt64(key, changes.Inventory[key])
		if err != nil {
			return changePlan{}, err
		}
		plan.inventory = append(plan.inventory, inventoryEdit{
			slot: slot,
			entry: records.InventoryEntry{
				Category: item.Category,
				Quantity: uint32(clamp(quantity, 0, records.MaxQuantity)),
			},
		})
	}

	return plan, nil
}

// toInt64 coerces a decoded JSON value to an integer. Fractions, booleans and
// missing values are rejected; floats beyond the int64 range saturate.
func toInt64(field string, v any) (int64, error) {
	switch x := v.(type) {
	case nil:
		return 0, &domain.ValidationError{Field: field, Reason: "value is required"}
	case bool:
		return 0, &domain.ValidationError{Field: field, Reason: "must be a number"}
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(x.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, &domain.ValidationError{Field: field, Reason: "must be an integer"}
		}
		return floatToInt64(field, x.String(), f)
	case float64:
		return floatToInt64(field, strconv.FormatFloat(x, 'g', -1, 64), x)
	case float32:
		return floatToInt64(field, strconv.FormatFloat(float64(x), 'g', -1, 32), float64(x))
	}

	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, &domain.ValidationError{Field: field, Reason: "must be an integer"}
	}
	return n, nil
}

func floatToInt64(field, raw string, f float64) (int64, error) {
	switch {
	case math.IsNaN(f) || f != math.Trunc(f):
		return 0, &domain.ValidationError{Field: field, Reason: "must be an integer, got " + raw}
	case f >= math.MaxInt64:
		return math.MaxInt64, nil
	case f <= math.MinInt64:
		return math.MinInt64, nil
	default:
		return int64(f), nil
	}
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
