package witness

import (
	"golang.org/x/xerrors"

	"github.com/chainproofs/statetoken"
	"github.com/chainproofs/statetoken/bitpath"
	"github.com/chainproofs/statetoken/hashing"
	"github.com/chainproofs/statetoken/internal/errs"
	"github.com/chainproofs/statetoken/internal/wire"
)

// Encode serializes w into calldata per §4.2: five length-prefixed chunks,
// in order proof_hashes, sorted_addresses, balances, tree_encoding,
// address_chunks.
func Encode(p statetoken.Params, w Witness) []byte {
	var buf []byte

	hashBytes := make([]byte, 0, len(w.ProofHashes)*p.HashBytes())
	for _, h := range w.ProofHashes {
		hashBytes = append(hashBytes, h...)
	}
	buf = wire.WriteChunk(buf, hashBytes)

	addrBytes := make([]byte, 0, len(w.SortedAddresses)*p.AddressBytes())
	for _, a := range w.SortedAddresses {
		addrBytes = append(addrBytes, a.BigEndianInteger(p.AddressBytes())...)
	}
	buf = wire.WriteChunk(buf, addrBytes)

	balanceBytes := make([]byte, 0, len(w.Balances)*p.BalanceBytes())
	for _, b := range w.Balances {
		balanceBytes = append(balanceBytes, encodeBalance(b, p.BalanceBytes())...)
	}
	buf = wire.WriteChunk(buf, balanceBytes)

	treeBytes := make([]byte, len(w.TreeEncoding))
	for i, op := range w.TreeEncoding {
		treeBytes[i] = byte(op) & 0x03
	}
	buf = wire.WriteChunk(buf, treeBytes)

	var chunkBytes []byte
	for _, c := range w.AddressChunks {
		chunkBytes = append(chunkBytes, byte(c.Len()))
		chunkBytes = append(chunkBytes, c.PackedLeftAligned()...)
	}
	buf = wire.WriteChunk(buf, chunkBytes)

	return buf
}

// Decode parses calldata into a Witness, per §4.2's decode contract. It
// fails with errs.ErrMalformedCalldata if any length prefix overruns the
// buffer, if proof_hashes isn't a multiple of the hash width, if balances
// isn't a multiple of the balance width, or if an address-chunk's declared
// bit length is zero or exceeds A.
func Decode(p statetoken.Params, calldata []byte) (Witness, error) {
	var w Witness
	off := 0

	hashChunk, off, ok := wire.ReadChunk(calldata, off)
	if !ok {
		return Witness{}, xerrors.Errorf("%w: proof_hashes length prefix overruns buffer", errs.ErrMalformedCalldata)
	}
	hashWidth := p.HashBytes()
	if hashWidth == 0 || len(hashChunk)%hashWidth != 0 {
		return Witness{}, xerrors.Errorf("%w: proof_hashes length %d is not a multiple of hash width %d", errs.ErrMalformedCalldata, len(hashChunk), hashWidth)
	}
	for i := 0; i < len(hashChunk); i += hashWidth {
		d := make(hashing.Digest, hashWidth)
		copy(d, hashChunk[i:i+hashWidth])
		w.ProofHashes = append(w.ProofHashes, d)
	}

	addrChunk, off, ok := wire.ReadChunk(calldata, off)
	if !ok {
		return Witness{}, xerrors.Errorf("%w: sorted_addresses length prefix overruns buffer", errs.ErrMalformedCalldata)
	}
	addrWidth := p.AddressBytes()
	if addrWidth == 0 || len(addrChunk)%addrWidth != 0 {
		return Witness{}, xerrors.Errorf("%w: sorted_addresses length %d is not a multiple of address width %d", errs.ErrMalformedCalldata, len(addrChunk), addrWidth)
	}
	for i := 0; i < len(addrChunk); i += addrWidth {
		w.SortedAddresses = append(w.SortedAddresses, bitpath.FromBigEndianInteger(addrChunk[i:i+addrWidth], p.AddressBits))
	}

	balChunk, off, ok := wire.ReadChunk(calldata, off)
	if !ok {
		return Witness{}, xerrors.Errorf("%w: balances length prefix overruns buffer", errs.ErrMalformedCalldata)
	}
	balWidth := p.BalanceBytes()
	if balWidth == 0 || len(balChunk)%balWidth != 0 {
		return Witness{}, xerrors.Errorf("%w: balances length %d is not a multiple of balance width %d", errs.ErrMalformedCalldata, len(balChunk), balWidth)
	}
	for i := 0; i < len(balChunk); i += balWidth {
		w.Balances = append(w.Balances, decodeBalance(balChunk[i:i+balWidth]))
	}

	treeChunk, off, ok := wire.ReadChunk(calldata, off)
	if !ok {
		return Witness{}, xerrors.Errorf("%w: tree_encoding length prefix overruns buffer", errs.ErrMalformedCalldata)
	}
	for _, b := range treeChunk {
		w.TreeEncoding = append(w.TreeEncoding, Opcode(b&0x03))
	}

	chunksChunk, _, ok := wire.ReadChunk(calldata, off)
	if !ok {
		return Witness{}, xerrors.Errorf("%w: address_chunks length prefix overruns buffer", errs.ErrMalformedCalldata)
	}
	idx := 0
	for idx < len(chunksChunk) {
		bitLen := int(chunksChunk[idx])
		idx++
		if bitLen == 0 || bitLen > p.AddressBits {
			return Witness{}, xerrors.Errorf("%w: address-chunk bit length %d out of range (0, %d]", errs.ErrMalformedCalldata, bitLen, p.AddressBits)
		}
		byteLen := (bitLen + 7) / 8
		if idx+byteLen > len(chunksChunk) {
			return Witness{}, xerrors.Errorf("%w: address-chunk payload overruns address_chunks stream", errs.ErrMalformedCalldata)
		}
		w.AddressChunks = append(w.AddressChunks, bitpath.FromBits(chunksChunk[idx:idx+byteLen], bitLen))
		idx += byteLen
	}

	return w, nil
}

func encodeBalance(b uint64, width int) []byte {
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(b >> (8 * i))
	}
	return buf[:width]
}

func decodeBalance(b []byte) uint64 {
	var ret uint64
	for i := len(b) - 1; i >= 0; i-- {
		ret = ret<<8 | uint64(b[i])
	}
	return ret
}
