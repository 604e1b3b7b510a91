// Package matchid generates sortable match identifiers: UUIDv7 values
// rendered as 26 characters of Crockford base32. The leading timestamp
// bits make IDs sort by creation time, which keeps match listings and
// log lines in play order for free.
package matchid

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32 alphabet, as used by TypeID.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded identifier.
const Length = 26

// Generator produces match IDs. The zero value is not usable; call
// NewGenerator. Both time and entropy are injectable for tests.
type Generator struct {
	clock   quartz.Clock
	entropy io.Reader
}

// NewGenerator builds a generator. A nil clock falls back to the real
// clock, a nil entropy reader to crypto/rand.
func NewGenerator(clock quartz.Clock, entropy io.Reader) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Generator{clock: clock, entropy: entropy}
}

// New generates an ID with the default clock and entropy source.
func New() string {
	return NewGenerator(nil, nil).New()
}

// New generates one match ID.
func (g *Generator) New() string {
	var uuid [16]byte

	// UUIDv7: 48-bit millisecond timestamp, then random bits with the
	// version and variant fields stamped in.
	ms := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		uuid[i] = byte(ms >> (40 - 8*i))
	}
	if _, err := io.ReadFull(g.entropy, uuid[6:]); err != nil {
		panic("matchid: entropy source failed: " + err.Error())
	}
	uuid[6] = uuid[6]&0x0f | 0x70
	uuid[8] = uuid[8]&0x3f | 0x80

	return encode(uuid)
}

// Validate checks that id looks like a generated match ID.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("matchid: want %d characters, got %d", Length, len(id))
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("matchid: invalid character %q at position %d", c, i)
		}
	}
	return nil
}

// encode renders 128 bits as 26 base32 characters, top bits first, the
// trailing 3 bits padded into the final character.
func encode(data [16]byte) string {
	var out [Length]byte
	var acc, bits uint
	n := 0
	for _, b := range data {
		acc = acc<<8 | uint(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[n] = alphabet[(acc>>bits)&0x1f]
			n++
		}
	}
	out[n] = alphabet[(acc<<(5-bits))&0x1f]
	return string(out[:])
}
