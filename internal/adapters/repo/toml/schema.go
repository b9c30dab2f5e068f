package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Events  []eventSchema `toml:"events"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported agenda schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// The three field names are the store's public table contract.
type eventSchema struct {
	Evento string `toml:"evento"`
	Fecha  string `toml:"fecha"`
	Hora   string `toml:"hora"`
}
