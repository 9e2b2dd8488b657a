package bitpath_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainproofs/statetoken/bitpath"
)

func TestFromStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "0", "1", "0101", "11111111", "0000000001"} {
		p := bitpath.FromString(s)
		require.Equal(t, len(s), p.Len())
		require.Equal(t, s, p.String())
	}
}

func TestAppendAndBit(t *testing.T) {
	p := bitpath.Empty()
	bits := []byte{1, 0, 1, 1, 0, 0, 0, 1, 1}
	for _, b := range bits {
		p = p.Append(b)
	}
	require.Equal(t, len(bits), p.Len())
	for i, b := range bits {
		require.Equal(t, b, p.Bit(i), "bit %d", i)
	}
}

func TestSliceAndAppendChunk(t *testing.T) {
	p := bitpath.FromString("110100101")
	chunk := p.Slice(2, 6)
	require.Equal(t, "0100", chunk.String())

	prefix := p.Slice(0, 2)
	rebuilt := prefix.AppendChunk(chunk).AppendChunk(p.Slice(6, p.Len()))
	require.True(t, p.Equal(rebuilt))
}

func TestLessOrdering(t *testing.T) {
	a := bitpath.FromString("0001")
	b := bitpath.FromString("0010")
	c := bitpath.FromString("0010")
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
	require.False(t, b.Less(c))
	require.True(t, b.Equal(c))
}

func TestSortPaths(t *testing.T) {
	paths := []bitpath.Path{
		bitpath.FromString("1010"),
		bitpath.FromString("0001"),
		bitpath.FromString("0111"),
		bitpath.FromString("0000"),
	}
	bitpath.SortPaths(paths)
	for i := 1; i < len(paths); i++ {
		require.True(t, paths[i-1].Less(paths[i]))
	}
}

func TestBigEndianIntegerRoundTrip(t *testing.T) {
	// A=4 does not land on a byte boundary: the integer-style encoding is
	// right-aligned within its single byte, not left-aligned.
	p := bitpath.FromString("1011")
	encoded := p.BigEndianInteger(1)
	require.Equal(t, []byte{0b00001011}, encoded)

	decoded := bitpath.FromBigEndianInteger(encoded, 4)
	require.True(t, p.Equal(decoded))
}

func TestBigEndianIntegerByteAligned(t *testing.T) {
	p := bitpath.FromString("0000000100000010")
	encoded := p.BigEndianInteger(2)
	require.Equal(t, []byte{0x01, 0x02}, encoded)
	decoded := bitpath.FromBigEndianInteger(encoded, 16)
	require.True(t, p.Equal(decoded))
}

func TestPackedLeftAlignedDiffersFromBigEndianInteger(t *testing.T) {
	// A radix-edge chunk of "101" packs left-aligned (MSB-first, zero
	// padded on the right): 0b10100000, not the integer value 5.
	chunk := bitpath.FromString("101")
	require.Equal(t, []byte{0b10100000}, chunk.PackedLeftAligned())
	require.Equal(t, []byte{0b00000101}, chunk.BigEndianInteger(1))
}

func TestCommonPrefixLen(t *testing.T) {
	a := bitpath.FromString("110100")
	b := bitpath.FromString("110111")
	require.Equal(t, 4, bitpath.CommonPrefixLen(a, b))
}
