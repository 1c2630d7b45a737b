package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// ChangeSet is an untrusted partial edit request. Keys absent from a domain map
// leave the matching record fields untouched.
type ChangeSet struct {
	Profile   map[string]any `json:"profile,omitempty"`
	Inventory map[string]any `json:"inventory,omitempty"`
}

func (c ChangeSet) Empty() bool {
	return len(c.Profile) == 0 && len(c.Inventory) == 0
}

// UnmarshalJSON also accepts the older "core" and "bag" domain names. When both
// spellings are sent the new one wins key by key. Numbers decode as
// json.Number so large ids survive intact.
func (c *ChangeSet) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw map[string]map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode change set: %w", err)
	}

	*c = ChangeSet{
		Profile:   merged(raw["core"], raw["profile"]),
		Inventory: merged(raw["bag"], raw["inventory"]),
	}
	return nil
}

func merged(legacy, current map[string]any) map[string]any {
	if len(legacy) == 0 {
		return current
	}
	out := maps.Clone(legacy)
	maps.Copy(out, current)
	return out
}
