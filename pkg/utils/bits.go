package utils

import (
	"encoding/hex"
	"strings"

	"golang.org/x/exp/constraints"
)

// PutUint stores an unsigned value into a little-endian register buffer,
// zeroing any bytes the value does not reach.
func PutUint[Word constraints.Unsigned](buf []byte, value Word) {
	v := uint64(value)

	for i := range buf {
		if i < 8 {
			buf[i] = byte(v >> (8 * i))
		} else {
			buf[i] = 0
		}
	}
}

// ReadUint reads an unsigned value from a little-endian register buffer
func ReadUint[Word constraints.Unsigned](buf []byte) Word {
	v := uint64(0)

	for i := len(buf) - 1; i >= 0; i-- {
		if i < 8 {
			v = v<<8 | uint64(buf[i])
		}
	}

	return Word(v)
}

// Hex renders a register buffer as a big-endian hex string, the way register
// values are usually shown to humans.
func Hex(buf []byte) string {
	reversed := make([]byte, len(buf))

	for i := range buf {
		reversed[len(buf)-i-1] = buf[i]
	}

	s := strings.TrimLeft(hex.EncodeToString(reversed), "0")
	if s == "" {
		s = "0"
	}

	return "0x" + s
}
