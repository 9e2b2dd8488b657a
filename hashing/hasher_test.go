package hashing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainproofs/statetoken/hashing"
)

func TestBlake2bDeterministic(t *testing.T) {
	h := hashing.NewBlake2b(20)
	d1 := h.Hash([]byte("abc"))
	d2 := h.Hash([]byte("abc"))
	require.True(t, d1.Equal(d2))
	require.Len(t, d1, 20)
}

func TestBlake2bSensitiveToInput(t *testing.T) {
	h := hashing.NewBlake2b(20)
	d1 := h.Hash([]byte("abc"))
	d2 := h.Hash([]byte("abd"))
	require.False(t, d1.Equal(d2))
}

func TestBlake2bSizeParam(t *testing.T) {
	for _, size := range []int{1, 16, 20, 32, 64} {
		h := hashing.NewBlake2b(size)
		require.Equal(t, size, h.Size())
		require.Len(t, h.Hash([]byte("x")), size)
	}
}

func TestLeafInputEndianness(t *testing.T) {
	addr := []byte{0xAA, 0xBB}
	// balance 1 should appear as little-endian: 0x01 0x00 in a 2-byte field.
	input := hashing.LeafInput(addr, 1, 2)
	require.Equal(t, []byte{0xAA, 0xBB, 0x01, 0x00}, input)
}

func TestInternalInputConcatenation(t *testing.T) {
	left := hashing.Digest{1, 2, 3}
	right := hashing.Digest{4, 5, 6}
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, hashing.InternalInput(left, right))
}

func TestDigestEqual(t *testing.T) {
	a := hashing.Digest{1, 2, 3}
	b := hashing.Digest{1, 2, 3}
	c := hashing.Digest{1, 2, 4}
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(hashing.Digest{1, 2}))
}
