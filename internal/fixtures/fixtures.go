// Package fixtures builds a small but complete save container for tests and
// local experiments.
package fixtures

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/bnema/plza-save-editor/internal/adapters/codec/swish"
	"github.com/bnema/plza-save-editor/internal/domain"
)

const (
	TrainerID       uint32 = 123456
	Name                   = "Serena"
	Gender                 = domain.GenderFemale
	Language               = domain.LanguageEnglish
	InventorySlots         = 64
	CollectionSlots        = 32
)

func ProfileBytes() []byte {
	b := make([]byte, 0x60)
	for i := range b {
		b[i] = byte(0x30 + i)
	}
	binary.LittleEndian.PutUint32(b[0x00:], TrainerID)
	b[0x08] = byte(Gender)
	b[0x09] = byte(Language)

	name := b[0x10:0x2A]
	clear(name)
	for i, unit := range utf16.Encode([]rune(Name)) {
		binary.LittleEndian.PutUint16(name[i*2:], unit)
	}
	return b
}

// InventoryBytes stores quantity 3*slot in every slot, with categories that
// deliberately disagree with the catalog for some slots.
func InventoryBytes() []byte {
	var b []byte
	for slot := range InventorySlots {
		b = binary.LittleEndian.AppendUint32(b, uint32(slot%3))
		b = binary.LittleEndian.AppendUint32(b, uint32(slot*3))
	}
	return append(b, 0xDE, 0xAD, 0xBE, 0xEF)
}

func CollectionBytes() []byte {
	b := make([]byte, 0, CollectionSlots*8)
	for slot := range CollectionSlots {
		b = append(b,
			byte(slot%2),
			byte(slot/2%2),
			flag(slot%5 == 0),
			flag(slot%7 == 0),
			0xFF, 0xFF, 0xFF, 0xFF,
		)
	}
	return b
}

func CosmeticBytes() []byte {
	b := make([]byte, 0x80)
	for i := range b {
		b[i] = byte(0xF0 ^ i)
	}
	return b
}

// Container returns a fresh copy of the sample save. It panics only if the
// static layout above is broken.
func Container() *domain.Container {
	c, err := domain.NewContainer([]domain.Block{
		{Key: 0x00C0FFEE, Type: domain.BlockTypeBool2},
		{Key: domain.BlockProfile, Type: domain.BlockTypeObject, Data: ProfileBytes()},
		{Key: 0x1234ABCD, Type: domain.BlockTypeUInt32, Data: []byte{0x10, 0x20, 0x30, 0x40}},
		{Key: domain.BlockInventory, Type: domain.BlockTypeObject, Data: InventoryBytes()},
		{Key: domain.BlockCollection, Type: domain.BlockTypeObject, Data: CollectionBytes()},
		{Key: domain.BlockCosmetic, Type: domain.BlockTypeObject, Data: CosmeticBytes()},
		{Key: 0x7777AAAA, Type: domain.BlockTypeArray, SubType: domain.BlockTypeUInt16, Data: []byte{1, 0, 2, 0, 3, 0}},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// Blob returns the sample save encoded as an uploadable file.
func Blob() []byte {
	b, err := swish.New().Encode(Container())
	if err != nil {
		panic(err)
	}
	return b
}

func flag(v bool) byte {
	if v {
		return 1
	}
	return 0
}
