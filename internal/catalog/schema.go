package catalog

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int             `toml:"version"`
	Items   []itemSchema    `toml:"items"`
	Species []speciesSchema `toml:"species"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported catalog schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type itemSchema struct {
	Slot     int    `toml:"slot"`
	Name     string `toml:"name"`
	Category string `toml:"category"`
}

type speciesSchema struct {
	Slot int    `toml:"slot"`
	Name string `toml:"name"`
}
