package swish

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/lunixbochs/struc"
)

var (
	errTruncated   = errors.New("truncated block")
	errUnknownType = errors.New("unknown block type")
	errBadLength   = errors.New("block data does not match its type")
)

var wireOptions = &struc.Options{Order: binary.LittleEndian}

type blockReader struct {
	src *bytes.Reader
	ks  *keystream
}

// bytes reads n encrypted bytes. The length is checked against what is left in
// the payload before anything is allocated.
func (b *blockReader) bytes(n uint64) ([]byte, error) {
	if n > uint64(b.src.Len()) {
		return nil, fmt.Errorf("%w: need %d bytes, %d left", errTruncated, n, b.src.Len())
	}
	if n == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(b.src, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", errTruncated, err)
	}
	b.ks.XORKeyStream(buf, buf)
	return buf, nil
}

func (b *blockReader) u8() (uint8, error) {
	p, err := b.bytes(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (b *blockReader) u32() (uint32, error) {
	p, err := b.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

func readBlocks(payload []byte) ([]domain.Block, error) {
	src := bytes.NewReader(payload)

	var blocks []domain.Block
	for src.Len() > 0 {
		block, err := readBlock(src)
		if err != nil {
			return nil, &domain.DecodeError{Block: block.Key, Err: err}
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}

func readBlock(src *bytes.Reader) (domain.Block, error) {
	if src.Len() < 4 {
		return domain.Block{}, fmt.Errorf("%w: block key", errTruncated)
	}
	var key uint32
	if err := struc.UnpackWithOptions(src, &key, wireOptions); err != nil {
		return domain.Block{}, fmt.Errorf("%w: %v", errTruncated, err)
	}

	block := domain.Block{Key: domain.BlockKey(key)}
	br := &blockReader{src: src, ks: newKeystream(block.Key)}

	tag, err := br.u8()
	if err != nil {
		return block, err
	}
	block.Type = domain.BlockType(tag)

	switch {
	case block.Type.IsBool():
		block.Data = []byte{}
	case block.Type == domain.BlockTypeObject:
		size, err := br.u32()
		if err != nil {
			return block, err
		}
		if block.Data, err = br.bytes(uint64(size)); err != nil {
			return block, err
		}
	case block.Type == domain.BlockTypeArray:
		count, err := br.u32()
		if err != nil {
			return block, err
		}
		sub, err := br.u8()
		if err != nil {
			return block, err
		}
		block.SubType = domain.BlockType(sub)
		width := block.SubType.ValueSize()
		if width == 0 {
			return block, fmt.Errorf("%w: array of %d", errUnknownType, sub)
		}
		if block.Data, err = br.bytes(uint64(count) * uint64(width)); err != nil {
			return block, err
		}
	case block.Type.ValueSize() > 0:
		if block.Data, err = br.bytes(uint64(block.Type.ValueSize())); err != nil {
			return block, err
		}
	default:
		return block, fmt.Errorf("%w: %d", errUnknownType, tag)
	}

	return block, nil
}

// blockHeader returns the plain header that follows the key for one block.
func blockHeader(block domain.Block) ([]byte, error) {
	header := []byte{byte(block.Type)}

	switch {
	case block.Type.IsBool():
		if len(block.Data) != 0 {
			return nil, fmt.Errorf("%w: bool block carries %d bytes", errBadLength, len(block.Data))
		}
	case block.Type == domain.BlockTypeObject:
		if uint64(len(block.Data)) > uint64(^uint32(0)) {
			return nil, fmt.Errorf("%w: object of %d bytes", errBadLength, len(block.Data))
		}
		header = binary.LittleEndian.AppendUint32(header, uint32(len(block.Data)))
	case block.Type == domain.BlockTypeArray:
		width := block.SubType.ValueSize()
		if width == 0 {
			return nil, fmt.Errorf("%w: array of %d", errUnknownType, block.SubType)
		}
		if len(block.Data)%width != 0 || uint64(len(block.Data)/width) > uint64(^uint32(0)) {
			return nil, fmt.Errorf("%w: %d bytes of %d-byte elements", errBadLength, len(block.Data), width)
		}
		header = binary.LittleEndian.AppendUint32(header, uint32(len(block.Data)/width))
		header = append(header, byte(block.SubType))
	case block.Type.ValueSize() > 0:
		if len(block.Data) != block.Type.ValueSize() {
			return nil, fmt.Errorf("%w: %d bytes for a %d-byte value", errBadLength, len(block.Data), block.Type.ValueSize())
		}
	default:
		return nil, fmt.Errorf("%w: %d", errUnknownType, block.Type)
	}

	return header, nil
}

func writeBlock(w io.Writer, block domain.Block) error {
	header, err := blockHeader(block)
	if err != nil {
		return err
	}

	sealed := make([]byte, len(header)+len(block.Data))
	ks := newKeystream(block.Key)
	ks.XORKeyStream(sealed[:len(header)], header)
	ks.XORKeyStream(sealed[len(header):], block.Data)

	if err := struc.PackWithOptions(w, uint32(block.Key), wireOptions); err != nil {
		return err
	}
	_, err = w.Write(sealed)
	return err
}
