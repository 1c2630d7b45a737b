package domain

import (
	"fmt"
	"slices"
)

// BlockKey identifies a block inside a save container.
type BlockKey uint32

const (
	BlockProfile    BlockKey = 0x0E2A6C51
	BlockInventory  BlockKey = 0x21C9BD44
	BlockCollection BlockKey = 0x4716C404
	BlockCosmetic   BlockKey = 0x9A9F5B1D
)

func (k BlockKey) String() string {
	switch k {
	case BlockProfile:
		return "profile"
	case BlockInventory:
		return "inventory"
	case BlockCollection:
		return "collection"
	case BlockCosmetic:
		return "cosmetic"
	default:
		return fmt.Sprintf("block(0x%08X)", uint32(k))
	}
}

// BlockType is the storage type tag the codec records for a block.
type BlockType uint8

const (
	BlockTypeNone   BlockType = 0
	BlockTypeBool1  BlockType = 1
	BlockTypeBool2  BlockType = 2
	BlockTypeBool3  BlockType = 3
	BlockTypeObject BlockType = 4
	BlockTypeArray  BlockType = 5
	BlockTypeByte   BlockType = 8
	BlockTypeUInt16 BlockType = 9
	BlockTypeUInt32 BlockType = 10
	BlockTypeUInt64 BlockType = 11
	BlockTypeSByte  BlockType = 12
	BlockTypeInt16  BlockType = 13
	BlockTypeInt32  BlockType = 14
	BlockTypeInt64  BlockType = 15
	BlockTypeSingle BlockType = 16
	BlockTypeDouble BlockType = 17
)

// IsBool reports whether the type carries its value in the tag alone.
func (t BlockType) IsBool() bool {
	return t == BlockTypeBool1 || t == BlockTypeBool2 || t == BlockTypeBool3
}

// ValueSize returns the byte width of a scalar type, or 0 for non-scalars.
// Bool types count as one byte when they appear as array elements.
func (t BlockType) ValueSize() int {
	switch t {
	case BlockTypeBool1, BlockTypeBool2, BlockTypeBool3, BlockTypeByte, BlockTypeSByte:
		return 1
	case BlockTypeUInt16, BlockTypeInt16:
		return 2
	case BlockTypeUInt32, BlockTypeInt32, BlockTypeSingle:
		return 4
	case BlockTypeUInt64, BlockTypeInt64, BlockTypeDouble:
		return 8
	default:
		return 0
	}
}

type Block struct {
	Key     BlockKey
	Type    BlockType
	SubType BlockType // element type, only meaningful for BlockTypeArray
	Data    []byte
}

func (b Block) clone() Block {
	b.Data = slices.Clone(b.Data)
	return b
}

// Container is the decoded form of one save blob: an ordered list of blocks
// with unique keys. Blocks are only ever changed through ReplaceBlockData.
type Container struct {
	blocks []Block
	index  map[BlockKey]int
}

// NewContainer builds a container from decoded blocks, rejecting duplicate keys.
func NewContainer(blocks []Block) (*Container, error) {
	c := &Container{
		blocks: make([]Block, 0, len(blocks)),
		index:  make(map[BlockKey]int, len(blocks)),
	}
	for _, block := range blocks {
		if _, ok := c.index[block.Key]; ok {
			return nil, &DecodeError{Block: block.Key, Err: fmt.Errorf("%w: duplicate block key", ErrInvalidContainer)}
		}
		c.index[block.Key] = len(c.blocks)
		c.blocks = append(c.blocks, block)
	}

	return c, nil
}

func (c *Container) Len() int {
	return len(c.blocks)
}

// Blocks returns the blocks in container order. The slice is shared; callers
// must not write into it.
func (c *Container) Blocks() []Block {
	return c.blocks
}

// Block returns a copy of the block's bytes so records never alias the container.
func (c *Container) Block(key BlockKey) (Block, error) {
	i, ok := c.index[key]
	if !ok {
		return Block{}, &DecodeError{Block: key, Err: ErrBlockMissing}
	}

	return c.blocks[i].clone(), nil
}

func (c *Container) Has(key BlockKey) bool {
	_, ok := c.index[key]
	return ok
}

// ReplaceBlockData swaps the whole byte buffer of an existing block.
func (c *Container) ReplaceBlockData(key BlockKey, data []byte) error {
	i, ok := c.index[key]
	if !ok {
		return &DecodeError{Block: key, Err: ErrBlockMissing}
	}

	c.blocks[i].Data = slices.Clone(data)
	return nil
}

// Clone returns a deep copy that shares no storage with c.
func (c *Container) Clone() *Container {
	out := &Container{
		blocks: make([]Block, len(c.blocks)),
		index:  make(map[BlockKey]int, len(c.index)),
	}
	for i, block := range c.blocks {
		out.blocks[i] = block.clone()
	}
	for key, i := range c.index {
		out.index[key] = i
	}

	return out
}
