// Package statetoken ties together the witness codec, trie-proof verifier,
// and offline witness builder for a stateless token-ledger state-transition
// verifier: a central authority holds only a Merkle root commitment over an
// account set, and applies batches of balance transfers by checking a
// witness against that root rather than holding the full account set
// in-process. See SPEC_FULL.md for the full component breakdown; this file
// holds the one piece of configuration every component threads through
// explicitly (Params), replacing the module-level globals of the reference
// implementation this was distilled from.
package statetoken

// Params fixes the three bit-widths the wire format and trie shape depend
// on. All three are parameters fixed at deploy time (§3); a single value is
// threaded through every package entry point instead of being baked in as
// constants, so the same code serves the reference configuration and the
// smaller configurations used by the spec's worked examples (A=4, A=5).
type Params struct {
	// AddressBits is the address width in bits (A).
	AddressBits int
	// HashBits is the digest width in bits (H).
	HashBits int
	// BalanceBits is the balance width in bits (B).
	BalanceBits int
}

// Reference returns the reference configuration: A=160, H=160, B=64.
func Reference() Params {
	return Params{AddressBits: 160, HashBits: 160, BalanceBits: 64}
}

// AddressBytes returns ceil(A/8).
func (p Params) AddressBytes() int {
	return (p.AddressBits + 7) / 8
}

// HashBytes returns ceil(H/8).
func (p Params) HashBytes() int {
	return (p.HashBits + 7) / 8
}

// BalanceBytes returns ceil(B/8). The reference configuration (B=64) is
// byte-aligned; this module assumes a byte-aligned B throughout, which the
// reference configuration and every worked example satisfy.
func (p Params) BalanceBytes() int {
	return (p.BalanceBits + 7) / 8
}
