package snapshot

import (
	"fmt"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/fxamacker/cbor/v2"
)

// CBOR encodes snapshots deterministically (RFC 8949 core rules).
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func NewCBOR() (*CBOR, error) {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("build cbor encoder: %w", err)
	}
	dm, err := (cbor.DecOptions{}).DecMode()
	if err != nil {
		return nil, fmt.Errorf("build cbor decoder: %w", err)
	}
	return &CBOR{enc: em, dec: dm}, nil
}

func (c *CBOR) Name() string { return "cbor" }

func (c *CBOR) Encode(container *domain.Container) ([]byte, error) {
	b, err := c.enc.Marshal(toWire(container))
	if err != nil {
		return nil, fmt.Errorf("encode cbor snapshot: %w", err)
	}
	return b, nil
}

func (c *CBOR) Decode(b []byte) (*domain.Container, error) {
	var w wireContainer
	if err := c.dec.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("decode cbor snapshot: %w", err)
	}
	return fromWire(w)
}
