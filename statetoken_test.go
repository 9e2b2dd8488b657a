package statetoken_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainproofs/statetoken"
)

func TestReferenceConfiguration(t *testing.T) {
	p := statetoken.Reference()
	require.Equal(t, 160, p.AddressBits)
	require.Equal(t, 160, p.HashBits)
	require.Equal(t, 64, p.BalanceBits)
	require.Equal(t, 20, p.AddressBytes())
	require.Equal(t, 20, p.HashBytes())
	require.Equal(t, 8, p.BalanceBytes())
}

func TestByteWidthRoundsUp(t *testing.T) {
	p := statetoken.Params{AddressBits: 5, HashBits: 4, BalanceBits: 9}
	require.Equal(t, 1, p.AddressBytes())
	require.Equal(t, 1, p.HashBytes())
	require.Equal(t, 2, p.BalanceBytes())
}
