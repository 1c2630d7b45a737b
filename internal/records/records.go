// Package records decodes the fixed little-endian layouts stored inside the
// profile, inventory and collection blocks. Records keep the bytes they were
// decoded from and only overwrite fields that were explicitly set.
package records

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/lunixbochs/struc"
)

var ErrSlotOutOfRange = errors.New("slot out of range")

var layoutOptions = &struc.Options{Order: binary.LittleEndian}

// unpack decodes the layout v from the start of b.
func unpack(b []byte, v any) error {
	return struc.UnpackWithOptions(bytes.NewReader(b), v, layoutOptions)
}

// packAt writes the layout v over b, starting at its first byte. Bytes past
// the end of v are left as they are.
func packAt(b []byte, v any) error {
	var buf bytes.Buffer
	if err := struc.PackWithOptions(&buf, v, layoutOptions); err != nil {
		return err
	}
	if buf.Len() > len(b) {
		return fmt.Errorf("%w: %d bytes into %d", io.ErrShortBuffer, buf.Len(), len(b))
	}
	copy(b, buf.Bytes())
	return nil
}

func tooShort(key domain.BlockKey, got, want int) error {
	return &domain.DecodeError{
		Block: key,
		Err:   fmt.Errorf("%w: %d bytes, want at least %d", domain.ErrInvalidContainer, got, want),
	}
}
