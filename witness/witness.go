// Package witness implements the calldata codec of §4.2: encoding and
// decoding the five streams a verification call consumes (proof-hashes,
// optional sorted-addresses, pre-state balances, tree-encoding opcodes,
// address-chunks). The bundled-struct shape is grounded on the stateless
// witness pattern used by go-ethereum's core/stateless package (see
// other_examples/..._core-stateless-witness.go.go): one value carrying all
// the named streams a verifier needs, rather than a loose tuple.
package witness

import (
	"github.com/chainproofs/statetoken/bitpath"
	"github.com/chainproofs/statetoken/hashing"
)

// Opcode is a two-bit tree-encoding tag (§4.3).
type Opcode uint8

const (
	// OpcodeBothChildren ("11"): both children are part of the pruned tree.
	OpcodeBothChildren Opcode = 0b11
	// OpcodeLeftOnly ("10"): left child descends, right is a frontier.
	OpcodeLeftOnly Opcode = 0b10
	// OpcodeRightOnly ("01"): right child descends, left is a frontier.
	OpcodeRightOnly Opcode = 0b01
	// OpcodeRadixChunk ("00"): consume an address-chunk, no hash here.
	OpcodeRadixChunk Opcode = 0b00
)

// Witness bundles the decoded form of the five calldata streams.
type Witness struct {
	// ProofHashes are frontier digests for pruned subtrees, in the order the
	// verifier consumes them: each frontier digest follows every digest used
	// inside the subtree that descends beside it.
	ProofHashes []hashing.Digest
	// SortedAddresses holds the touched addresses directly; empty when
	// addresses are to be reconstructed from TreeEncoding+AddressChunks.
	SortedAddresses []bitpath.Path
	// Balances holds the pre-state balance of each touched account, in
	// ascending-address order.
	Balances []uint64
	// TreeEncoding is the pre-order opcode sequence describing the shape
	// of the pruned trie.
	TreeEncoding []Opcode
	// AddressChunks are the radix-edge bit-chunks, consumed in traversal
	// order immediately after each OpcodeRadixChunk.
	AddressChunks []bitpath.Path
}
