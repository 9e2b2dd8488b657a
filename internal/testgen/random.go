// Package testgen generates deterministic pseudorandom account sets and
// touched subsets for the randomized property tests (§8's "large random
// instance" scenarios, in the spirit of merkle_token_tools.py's handwritten
// scenario generators). Grounded on the teacher's use of a kyber XOF seeded
// from a fixed secret for reproducible pseudorandom scalars
// (models/trie_kzg_bn256/kzg_setup/kzg_setup.go seeds a kyber Scalar from a
// hashed seed); here a kyber XOF stream plays the same role for bytes
// instead of seeding a single curve scalar, so a test run is reproducible
// from its seed alone.
package testgen

import (
	"go.dedis.ch/kyber/v3/xof/blake2xb"

	"github.com/chainproofs/statetoken/bitpath"
	"github.com/chainproofs/statetoken/builder"
)

// Stream wraps a seeded kyber XOF for drawing random addresses and balances.
type Stream struct {
	seed []byte
}

// NewStream returns a Stream that will always generate the same sequence of
// accounts for a given seed, so a failing randomized test is reproducible.
func NewStream(seed []byte) *Stream {
	return &Stream{seed: seed}
}

func (s *Stream) bytes(n int) []byte {
	buf := make([]byte, n)
	if _, err := blake2xb.New(s.seed).Read(buf); err != nil {
		panic(err)
	}
	s.seed = append(append([]byte(nil), s.seed...), buf...)
	return buf
}

// Accounts draws n accounts with distinct addresses of addressBits width and
// balances in [0, 2^balanceBits).
func (s *Stream) Accounts(n, addressBits, balanceBits int) []builder.Account {
	addrBytes := (addressBits + 7) / 8
	seen := make(map[string]bool, n)
	accounts := make([]builder.Account, 0, n)
	for len(accounts) < n {
		raw := s.bytes(addrBytes)
		addr := bitpath.FromBigEndianInteger(raw, addressBits)
		key := addr.String()
		if seen[key] {
			continue
		}
		seen[key] = true

		balBuf := s.bytes(8)
		var balance uint64
		for i := 0; i < 8; i++ {
			balance |= uint64(balBuf[i]) << (8 * i)
		}
		if balanceBits < 64 {
			balance &= (uint64(1) << uint(balanceBits)) - 1
		}
		accounts = append(accounts, builder.Account{Address: addr, Balance: balance})
	}
	return accounts
}

// TouchedSubset draws a non-empty subset of k distinct addresses from
// accounts, preserving neither order nor accounts' own order guarantees
// (the builder sorts its input regardless).
func (s *Stream) TouchedSubset(accounts []builder.Account, k int) []bitpath.Path {
	if k <= 0 || k > len(accounts) {
		k = len(accounts)
	}
	idxs := make([]int, len(accounts))
	for i := range idxs {
		idxs[i] = i
	}
	for i := len(idxs) - 1; i > 0; i-- {
		j := int(s.bytes(1)[0]) % (i + 1)
		idxs[i], idxs[j] = idxs[j], idxs[i]
	}
	touched := make([]bitpath.Path, 0, k)
	for _, idx := range idxs[:k] {
		touched = append(touched, accounts[idx].Address)
	}
	return touched
}
