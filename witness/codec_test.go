package witness_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainproofs/statetoken"
	"github.com/chainproofs/statetoken/bitpath"
	"github.com/chainproofs/statetoken/hashing"
	"github.com/chainproofs/statetoken/witness"
)

func refParams() statetoken.Params {
	return statetoken.Params{AddressBits: 8, HashBits: 16, BalanceBits: 16}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := refParams()
	w := witness.Witness{
		ProofHashes:     []hashing.Digest{{0xAB, 0xCD}, {0x12, 0x34}},
		SortedAddresses: []bitpath.Path{bitpath.FromString("00000001"), bitpath.FromString("00000010")},
		Balances:        []uint64{7, 300},
		TreeEncoding:    []witness.Opcode{witness.OpcodeBothChildren, witness.OpcodeLeftOnly, witness.OpcodeRadixChunk},
		AddressChunks:   []bitpath.Path{bitpath.FromString("101")},
	}

	calldata := witness.Encode(p, w)
	got, err := witness.Decode(p, calldata)
	require.NoError(t, err)

	require.Len(t, got.ProofHashes, len(w.ProofHashes))
	for i := range w.ProofHashes {
		require.True(t, got.ProofHashes[i].Equal(w.ProofHashes[i]))
	}
	require.Len(t, got.SortedAddresses, len(w.SortedAddresses))
	for i := range w.SortedAddresses {
		require.True(t, got.SortedAddresses[i].Equal(w.SortedAddresses[i]))
	}
	require.Equal(t, w.Balances, got.Balances)
	require.Equal(t, w.TreeEncoding, got.TreeEncoding)
	require.Len(t, got.AddressChunks, len(w.AddressChunks))
	for i := range w.AddressChunks {
		require.True(t, got.AddressChunks[i].Equal(w.AddressChunks[i]))
	}
}

func TestEncodeDecodeEmptyWitness(t *testing.T) {
	p := refParams()
	calldata := witness.Encode(p, witness.Witness{})
	got, err := witness.Decode(p, calldata)
	require.NoError(t, err)
	require.Empty(t, got.ProofHashes)
	require.Empty(t, got.SortedAddresses)
	require.Empty(t, got.Balances)
	require.Empty(t, got.TreeEncoding)
	require.Empty(t, got.AddressChunks)
}

func TestDecodeRejectsTruncatedLengthPrefix(t *testing.T) {
	p := refParams()
	_, err := witness.Decode(p, []byte{0xFF, 0xFF, 0xFF, 0xFF})
	require.Error(t, err)
}

func TestDecodeRejectsMisalignedProofHashes(t *testing.T) {
	p := refParams()
	calldata := witness.Encode(p, witness.Witness{})
	// Corrupt the proof_hashes length prefix to claim 3 bytes, not a
	// multiple of the 2-byte hash width (HashBits=16).
	calldata[0] = 3
	_, err := witness.Decode(p, calldata)
	require.Error(t, err)
}

func TestDecodeRejectsOutOfRangeAddressChunkLength(t *testing.T) {
	p := refParams()
	bad := witness.Encode(p, witness.Witness{})
	// Hand-corrupt the address_chunks stream (the last chunk) to declare
	// bitLen=0, which is always invalid.
	chunkPayload := []byte{0x00}
	lenPrefix := []byte{1, 0, 0, 0}
	manual := append(append([]byte{}, bad[:len(bad)-4]...), lenPrefix...)
	manual = append(manual, chunkPayload...)
	_, err := witness.Decode(p, manual)
	require.Error(t, err)
}
