package builder

import (
	"github.com/chainproofs/statetoken"
	"github.com/chainproofs/statetoken/bitpath"
	"github.com/chainproofs/statetoken/hashing"
)

// node is one position of the compacted binary trie: the digest committing
// to everything beneath it, and the radix-edge chunk (possibly empty)
// leading down to it from its parent split point. Keyed in a trieTable by
// the bit-string of the address prefix at which the node's owning
// recursive call was entered — i.e. the split-point prefix, not the node's
// own post-chunk position. Grounded on merkle_token_tools.build_merkle_tree,
// whose Python dict plays the same role with string keys.
type node struct {
	hash  hashing.Digest
	chunk bitpath.Path
}

type trieTable map[string]node

// buildTree recursively builds the compacted trie over sorted (by address)
// accounts, depth-first, populating table with every internal/leaf node
// touched along the way, and returns the digest of the subtree rooted at
// depth.
func buildTree(p statetoken.Params, h hashing.Hasher, depth int, sorted []Account, table trieTable) hashing.Digest {
	prefix := sorted[0].Address.Slice(0, depth)

	if len(sorted) == 1 {
		addr := sorted[0].Address
		addrBytes := addr.BigEndianInteger(p.AddressBytes())
		digest := h.Hash(hashing.LeafInput(addrBytes, sorted[0].Balance, p.BalanceBytes()))
		chunk := addr.Slice(depth, addr.Len())
		table[prefix.String()] = node{hash: digest, chunk: chunk}
		return digest
	}

	first := sorted[0].Address
	last := sorted[len(sorted)-1].Address
	d := depth
	for ; d < first.Len(); d++ {
		if first.Bit(d) != last.Bit(d) {
			break
		}
	}
	chunk := first.Slice(depth, d)

	splitIdx := len(sorted)
	for i, a := range sorted {
		if a.Address.Bit(d) != 0 {
			splitIdx = i
			break
		}
	}

	leftHash := buildTree(p, h, d+1, sorted[:splitIdx], table)
	rightHash := buildTree(p, h, d+1, sorted[splitIdx:], table)
	digest := h.Hash(hashing.InternalInput(leftHash, rightHash))
	table[prefix.String()] = node{hash: digest, chunk: chunk}
	return digest
}
