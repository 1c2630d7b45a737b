// Package snapshot serializes containers for session backends that store
// bytes rather than Go values.
package snapshot

import (
	"fmt"
	"strings"

	"github.com/bnema/plza-save-editor/internal/domain"
)

const wireVersion = 1

// Codec converts a container to a self-contained snapshot and back. Decode
// always returns a container that shares no memory with the input.
type Codec interface {
	Name() string
	Encode(c *domain.Container) ([]byte, error)
	Decode(b []byte) (*domain.Container, error)
}

type wireContainer struct {
	Version int         `cbor:"v" msgpack:"v"`
	Blocks  []wireBlock `cbor:"b" msgpack:"b"`
}

type wireBlock struct {
	Key     uint32 `cbor:"k" msgpack:"k"`
	Type    uint8  `cbor:"t" msgpack:"t"`
	SubType uint8  `cbor:"s,omitempty" msgpack:"s,omitempty"`
	Data    []byte `cbor:"d" msgpack:"d"`
}

func toWire(c *domain.Container) wireContainer {
	blocks := c.Blocks()
	w := wireContainer{Version: wireVersion, Blocks: make([]wireBlock, len(blocks))}
	for i, b := range blocks {
		w.Blocks[i] = wireBlock{Key: uint32(b.Key), Type: uint8(b.Type), SubType: uint8(b.SubType), Data: b.Data}
	}
	return w
}

func fromWire(w wireContainer) (*domain.Container, error) {
	if w.Version != wireVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", w.Version)
	}

	blocks := make([]domain.Block, len(w.Blocks))
	for i, b := range w.Blocks {
		blocks[i] = domain.Block{
			Key:     domain.BlockKey(b.Key),
			Type:    domain.BlockType(b.Type),
			SubType: domain.BlockType(b.SubType),
			Data:    b.Data,
		}
	}
	return domain.NewContainer(blocks)
}

// ByName returns the codec registered under name ("cbor" or "msgpack").
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cbor":
		return NewCBOR()
	case "msgpack":
		return Msgpack{}, nil
	default:
		return nil, fmt.Errorf("unknown snapshot codec %q", name)
	}
}

// Limit rejects snapshots larger than MaxDecode before decoding them.
// MaxDecode <= 0 disables the check.
type Limit struct {
	Inner     Codec
	MaxDecode int
}

func (l Limit) Name() string { return l.Inner.Name() }

func (l Limit) Encode(c *domain.Container) ([]byte, error) { return l.Inner.Encode(c) }

func (l Limit) Decode(b []byte) (*domain.Container, error) {
	if l.MaxDecode > 0 && len(b) > l.MaxDecode {
		return nil, fmt.Errorf("snapshot too large: %d > %d", len(b), l.MaxDecode)
	}
	return l.Inner.Decode(b)
}
