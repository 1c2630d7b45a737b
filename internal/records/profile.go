package records

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/bnema/plza-save-editor/internal/domain"
)

const (
	// ProfileSize is the smallest profile block the layout fits in.
	ProfileSize = 0x40

	// NameCapacity is the name length in UTF-16 code units, terminator excluded.
	NameCapacity = 12

	offsetTrainerID = 0x00
	offsetGender    = 0x08
	offsetLanguage  = 0x09
	offsetName      = 0x10
	nameFieldSize   = (NameCapacity + 1) * 2
)

// profileLayout is the head of the profile block, up to the end of the name.
type profileLayout struct {
	TrainerID uint32                   `struc:"uint32"`
	Reserved0 [4]byte                  `struc:"[4]pad"`
	Gender    uint8                    `struc:"uint8"`
	Language  uint8                    `struc:"uint8"`
	Reserved1 [6]byte                  `struc:"[6]pad"`
	Name      [NameCapacity + 1]uint16 `struc:"[13]uint16"`
}

type nameLayout struct {
	Units [NameCapacity + 1]uint16 `struc:"[13]uint16"`
}

type profileField uint8

const (
	fieldTrainerID profileField = 1 << iota
	fieldGender
	fieldLanguage
	fieldName
)

// Profile is the trainer record.
type Profile struct {
	raw       []byte
	trainerID uint32
	gender    uint8
	language  uint8
	name      string
	dirty     profileField
}

func DecodeProfile(data []byte) (*Profile, error) {
	if len(data) < ProfileSize {
		return nil, tooShort(domain.BlockProfile, len(data), ProfileSize)
	}

	var l profileLayout
	if err := unpack(data, &l); err != nil {
		return nil, &domain.DecodeError{Block: domain.BlockProfile, Err: err}
	}

	return &Profile{
		raw:       slices.Clone(data),
		trainerID: l.TrainerID,
		gender:    l.Gender,
		language:  l.Language,
		name:      decodeName(l.Name[:]),
	}, nil
}

// decodeName reads the fixed-width little-endian name up to its first zero
// unit. The field carries no byte-order mark.
func decodeName(units []uint16) string {
	if i := slices.Index(units, 0); i >= 0 {
		units = units[:i]
	}
	return string(utf16.Decode(units))
}

func (p *Profile) TrainerID() uint32 { return p.trainerID }

func (p *Profile) SetTrainerID(id uint32) {
	p.trainerID = id
	p.dirty |= fieldTrainerID
}

func (p *Profile) Gender() domain.Gender { return domain.GenderFromValue(int64(p.gender)) }

func (p *Profile) SetGender(g domain.Gender) {
	p.gender = uint8(g)
	p.dirty |= fieldGender
}

func (p *Profile) Language() domain.Language { return domain.Language(p.language) }

func (p *Profile) SetLanguage(l domain.Language) {
	p.language = uint8(l)
	p.dirty |= fieldLanguage
}

func (p *Profile) Name() string { return p.name }

// NormalizeName returns name as the profile will store it: cut at the first
// NUL and truncated to NameCapacity code units. A surrogate pair that would be
// split by the cut is dropped whole.
func NormalizeName(name string) string {
	if i := strings.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	units := utf16.Encode([]rune(name))
	if len(units) > NameCapacity {
		units = units[:NameCapacity]
		if last := units[NameCapacity-1]; utf16.IsSurrogate(rune(last)) && last < 0xDC00 {
			units = units[:NameCapacity-1]
		}
	}
	return string(utf16.Decode(units))
}

func (p *Profile) SetName(name string) {
	p.name = NormalizeName(name)
	p.dirty |= fieldName
}

// Encode returns the block bytes with every set field written over the
// original layout. Untouched bytes are returned as decoded.
func (p *Profile) Encode() ([]byte, error) {
	out := slices.Clone(p.raw)

	if p.dirty&fieldTrainerID != 0 {
		if err := packAt(out[offsetTrainerID:], p.trainerID); err != nil {
			return nil, fmt.Errorf("encode profile trainer id: %w", err)
		}
	}
	if p.dirty&fieldGender != 0 {
		out[offsetGender] = p.gender
	}
	if p.dirty&fieldLanguage != 0 {
		out[offsetLanguage] = p.language
	}
	if p.dirty&fieldName != 0 {
		var l nameLayout
		copy(l.Units[:NameCapacity], utf16.Encode([]rune(p.name)))
		if err := packAt(out[offsetName:offsetName+nameFieldSize], &l); err != nil {
			return nil, fmt.Errorf("encode profile name: %w", err)
		}
	}

	return out, nil
}
