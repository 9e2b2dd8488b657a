// Package wire provides the low-level length-prefix and fixed-width integer
// codec primitives shared by the witness chunk format. Adapted from the
// teacher's common.go read/write helpers (ReadBytes32/WriteBytes32,
// ReadUint32/WriteUint32, ReadByte/WriteByte): same little-endian,
// panic-on-overflow-at-write-time style, narrowed to the uint32 length
// prefixes the witness format actually uses; single-byte fields are written
// by the witness codec directly.
package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// WriteUint32 appends val as 4 little-endian bytes.
func WriteUint32(buf []byte, val uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], val)
	return append(buf, tmp[:]...)
}

// ReadUint32 reads 4 little-endian bytes at offset off. ok is false if the
// buffer is too short.
func ReadUint32(buf []byte, off int) (val uint32, ok bool) {
	if off+4 > len(buf) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(buf[off : off+4]), true
}

// WriteChunk appends a 4-byte little-endian length prefix followed by data.
func WriteChunk(buf []byte, data []byte) []byte {
	if len(data) > math.MaxUint32 {
		panic(fmt.Sprintf("wire.WriteChunk: chunk too large (%d bytes)", len(data)))
	}
	buf = WriteUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

// ReadChunk reads a length-prefixed chunk starting at offset off, returning
// the chunk bytes and the offset immediately following it. ok is false if
// the length prefix or the chunk body overruns buf.
func ReadChunk(buf []byte, off int) (data []byte, next int, ok bool) {
	length, ok := ReadUint32(buf, off)
	if !ok {
		return nil, 0, false
	}
	start := off + 4
	end := start + int(length)
	if end > len(buf) || end < start {
		return nil, 0, false
	}
	return buf[start:end], end, true
}
