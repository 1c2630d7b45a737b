// Package swish implements the encrypted block container used by save files:
// a static xorpad over a sequence of typed blocks, each block further masked by
// a keystream seeded from its key, followed by a salted SHA-256 trailer.
package swish

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"fmt"
	"slices"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/ports"
)

var errIntegrity = errors.New("integrity hash mismatch")

type Codec struct{}

var _ ports.Codec = (*Codec)(nil)

func New() *Codec {
	return &Codec{}
}

func (c *Codec) Decode(data []byte) (*domain.Container, error) {
	if len(data) < hashSize {
		return nil, &domain.DecodeError{Err: fmt.Errorf("%w: %d bytes is too short", domain.ErrInvalidContainer, len(data))}
	}

	body, trailer := data[:len(data)-hashSize], data[len(data)-hashSize:]
	sum := integrityHash(body)
	if subtle.ConstantTimeCompare(sum[:], trailer) != 1 {
		return nil, &domain.DecodeError{Err: errIntegrity}
	}

	payload := slices.Clone(body)
	applyXorpad(payload)

	blocks, err := readBlocks(payload)
	if err != nil {
		return nil, err
	}

	return domain.NewContainer(blocks)
}

func (c *Codec) Encode(container *domain.Container) ([]byte, error) {
	if container == nil {
		return nil, fmt.Errorf("%w: nil container", domain.ErrEncode)
	}

	var buf bytes.Buffer
	for _, block := range container.Blocks() {
		if err := writeBlock(&buf, block); err != nil {
			return nil, fmt.Errorf("%w: block %s: %w", domain.ErrEncode, block.Key, err)
		}
	}

	payload := buf.Bytes()
	applyXorpad(payload)
	sum := integrityHash(payload)

	return append(payload, sum[:]...), nil
}
