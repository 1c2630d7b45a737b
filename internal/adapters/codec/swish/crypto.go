package swish

import (
	"crypto/cipher"
	"crypto/sha256"
	"encoding/binary"

	"github.com/bnema/plza-save-editor/internal/domain"
)

const (
	hashSize   = sha256.Size
	xorpadSize = 0x7F
	saltSize   = 0x40
)

var (
	staticXorpad = expand("plza.swish.xorpad", xorpadSize)
	introSalt    = expand("plza.swish.intro", saltSize)
	outroSalt    = expand("plza.swish.outro", saltSize)
)

// expand stretches a label into n deterministic bytes (SHA-256 in counter mode).
func expand(label string, n int) []byte {
	out := make([]byte, 0, n+sha256.Size)
	var counter [4]byte
	for i := uint32(0); len(out) < n; i++ {
		binary.LittleEndian.PutUint32(counter[:], i)
		h := sha256.New()
		h.Write([]byte(label))
		h.Write(counter[:])
		out = h.Sum(out)
	}
	return out[:n]
}

func integrityHash(payload []byte) [hashSize]byte {
	var sum [hashSize]byte
	h := sha256.New()
	h.Write(introSalt)
	h.Write(payload)
	h.Write(outroSalt)
	h.Sum(sum[:0])
	return sum
}

// applyXorpad is its own inverse.
func applyXorpad(data []byte) {
	for i := range data {
		data[i] ^= staticXorpad[i%xorpadSize]
	}
}

// keystream is the per-block xorshift32 stream seeded by the block key.
type keystream struct {
	state uint32
	buf   [4]byte
	used  int
}

var _ cipher.Stream = (*keystream)(nil)

func newKeystream(key domain.BlockKey) *keystream {
	seed := uint32(key)
	if seed == 0 {
		seed = 0x6C078965
	}
	return &keystream{state: seed, used: len(keystream{}.buf)}
}

func (k *keystream) next() byte {
	if k.used == len(k.buf) {
		k.state ^= k.state << 13
		k.state ^= k.state >> 17
		k.state ^= k.state << 5
		binary.LittleEndian.PutUint32(k.buf[:], k.state)
		k.used = 0
	}
	b := k.buf[k.used]
	k.used++
	return b
}

func (k *keystream) XORKeyStream(dst, src []byte) {
	for i, b := range src {
		dst[i] = b ^ k.next()
	}
}
