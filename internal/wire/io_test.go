package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainproofs/statetoken/internal/wire"
)

func TestUint32RoundTrip(t *testing.T) {
	buf := wire.WriteUint32(nil, 0xDEADBEEF)
	require.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE}, buf)
	v, ok := wire.ReadUint32(buf, 0)
	require.True(t, ok)
	require.Equal(t, uint32(0xDEADBEEF), v)
}

func TestReadUint32ShortBuffer(t *testing.T) {
	_, ok := wire.ReadUint32([]byte{1, 2, 3}, 0)
	require.False(t, ok)
}

func TestChunkRoundTrip(t *testing.T) {
	buf := wire.WriteChunk(nil, []byte("hello"))
	buf = wire.WriteChunk(buf, []byte("!"))

	data1, next, ok := wire.ReadChunk(buf, 0)
	require.True(t, ok)
	require.Equal(t, []byte("hello"), data1)

	data2, _, ok := wire.ReadChunk(buf, next)
	require.True(t, ok)
	require.Equal(t, []byte("!"), data2)
}

func TestReadChunkRejectsOverrun(t *testing.T) {
	buf := wire.WriteUint32(nil, 100) // claims 100 bytes, has none
	_, _, ok := wire.ReadChunk(buf, 0)
	require.False(t, ok)
}

func TestReadChunkRejectsTruncatedPrefix(t *testing.T) {
	_, _, ok := wire.ReadChunk([]byte{1, 2}, 0)
	require.False(t, ok)
}
