package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPutUintReadUint(t *testing.T) {
	buf := make([]byte, 8)

	PutUint(buf, uint64(0xdeadbeef))
	assert.Equal(t, uint64(0xdeadbeef), ReadUint[uint64](buf))
	assert.Equal(t, byte(0xef), buf[0], "register buffers are little-endian")

	// narrow buffers truncate, wide buffers zero-fill
	short := make([]byte, 2)
	PutUint(short, uint64(0x11223344))
	assert.Equal(t, uint64(0x3344), ReadUint[uint64](short))

	wide := make([]byte, 16)
	PutUint(wide, uint64(1))
	assert.Equal(t, uint64(1), ReadUint[uint64](wide))
	assert.Equal(t, byte(0), wide[15])
}

func TestPutUint_OverwritesStaleBytes(t *testing.T) {
	buf := []byte{0xff, 0xff, 0xff, 0xff}

	PutUint(buf, uint32(0x12))
	assert.Equal(t, []byte{0x12, 0, 0, 0}, buf)
}

func TestHex(t *testing.T) {
	buf := make([]byte, 4)
	PutUint(buf, uint32(0xcafe))

	assert.Equal(t, "0xcafe", Hex(buf))
	assert.Equal(t, "0x0", Hex(make([]byte, 8)))
}
