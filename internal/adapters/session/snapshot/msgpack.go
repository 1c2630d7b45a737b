package snapshot

import (
	"fmt"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack is ready to use as its zero value.
type Msgpack struct{}

func (Msgpack) Name() string { return "msgpack" }

func (Msgpack) Encode(container *domain.Container) ([]byte, error) {
	b, err := msgpack.Marshal(toWire(container))
	if err != nil {
		return nil, fmt.Errorf("encode msgpack snapshot: %w", err)
	}
	return b, nil
}

func (Msgpack) Decode(b []byte) (*domain.Container, error) {
	var w wireContainer
	if err := msgpack.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("decode msgpack snapshot: %w", err)
	}
	return fromWire(w)
}
