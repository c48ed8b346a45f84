package bitio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsignedWithinByte(t *testing.T) {
	r := NewReader([]byte{0b1011_0010})
	assert.Equal(t, uint32(0b0010), r.Unsigned(0, 4))
	assert.Equal(t, uint32(0b1011), r.Unsigned(4, 4))
}

func TestUnsignedSpansBytes(t *testing.T) {
	// bits 4..15 span byte 0 (upper nibble) and byte 1 (all 8 bits).
	r := NewReader([]byte{0xF0, 0xAB})
	got := r.Unsigned(4, 12)
	// upper nibble of byte0 (0xF) as the low bits, then all of byte1 (0xAB) -> 0xABF
	assert.Equal(t, uint32(0xABF), got)
}

func TestSignedNegative(t *testing.T) {
	r := NewReader([]byte{0x0F}) // 4-bit field value 0b1111 == -1
	assert.Equal(t, int32(-1), r.Signed(0, 4))
}

func TestSignedPositive(t *testing.T) {
	r := NewReader([]byte{0x07}) // 4-bit field value 0b0111 == 7
	assert.Equal(t, int32(7), r.Signed(0, 4))
}

func TestSignedFullWidth(t *testing.T) {
	r := NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	assert.Equal(t, int32(-1), r.Signed(0, 32))
}
