// Package builder implements the offline witness builder (§4.4): given a
// full account map and a touched-address subset, it builds the compacted
// binary trie for the full set and walks the pruned projection onto the
// touched set to emit the five witness streams in exactly the order the
// verifier consumes them. Grounded on merkle_token_tools.build_merkle_tree
// and build_merkle_proof from the original source this spec was distilled
// from; the builder's output is canonical, so any two conforming
// implementations given the same (accounts, touched) produce byte-identical
// witnesses (§4.4).
package builder

import (
	"golang.org/x/xerrors"

	"github.com/chainproofs/statetoken"
	"github.com/chainproofs/statetoken/bitpath"
	"github.com/chainproofs/statetoken/hashing"
	"github.com/chainproofs/statetoken/witness"
)

// Account is one (address, balance) pair of the full account set.
type Account struct {
	Address bitpath.Path
	Balance uint64
}

// BuildFull computes the root digest of the compacted trie over the full
// account set, without constructing any witness. Exposed standalone (not
// just as an internal step of Build) so builder-verifier agreement tests
// can compute build_full(m) and build_full(m') independently of witness
// construction.
func BuildFull(p statetoken.Params, h hashing.Hasher, accounts []Account) (hashing.Digest, error) {
	sorted, err := sortedUniqueAccounts(accounts)
	if err != nil {
		return nil, err
	}
	table := make(trieTable, 2*len(sorted))
	return buildTree(p, h, 0, sorted, table), nil
}

// Build constructs the pruned witness for touched against the full account
// set accounts, returning the witness and the full-set's root digest.
// includeSortedAddresses controls whether the witness also carries the
// touched addresses directly in witness.Witness.SortedAddresses (§4.2's
// optional stream) in addition to the tree_encoding/address_chunks
// reconstruction path.
func Build(p statetoken.Params, h hashing.Hasher, accounts []Account, touched []bitpath.Path, includeSortedAddresses bool) (witness.Witness, hashing.Digest, error) {
	sorted, err := sortedUniqueAccounts(accounts)
	if err != nil {
		return witness.Witness{}, nil, err
	}
	table := make(trieTable, 2*len(sorted))
	root := buildTree(p, h, 0, sorted, table)

	touchedSorted := append([]bitpath.Path(nil), touched...)
	bitpath.SortPaths(touchedSorted)
	if len(touchedSorted) == 0 {
		return witness.Witness{}, nil, xerrors.New("builder: touched set must be non-empty")
	}
	for i := 1; i < len(touchedSorted); i++ {
		if !touchedSorted[i-1].Less(touchedSorted[i]) {
			return witness.Witness{}, nil, xerrors.New("builder: touched set contains a duplicate address")
		}
	}

	balanceOf := make(map[string]uint64, len(sorted))
	for _, a := range sorted {
		balanceOf[a.Address.String()] = a.Balance
	}
	touchedAccounts := make([]Account, 0, len(touchedSorted))
	for _, a := range touchedSorted {
		bal, ok := balanceOf[a.String()]
		if !ok {
			return witness.Witness{}, nil, xerrors.Errorf("builder: touched address %s is not present in accounts", a.String())
		}
		touchedAccounts = append(touchedAccounts, Account{Address: a, Balance: bal})
	}

	b := &builderState{params: p, table: table}
	if err := b.build(0, touchedAccounts); err != nil {
		return witness.Witness{}, nil, err
	}
	if includeSortedAddresses {
		b.w.SortedAddresses = touchedSorted
	}
	return b.w, root, nil
}

func sortedUniqueAccounts(accounts []Account) ([]Account, error) {
	if len(accounts) == 0 {
		return nil, xerrors.New("builder: accounts must be non-empty")
	}
	sorted := append([]Account(nil), accounts...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Address.Less(sorted[j-1].Address); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	for i := 1; i < len(sorted); i++ {
		if !sorted[i-1].Address.Less(sorted[i].Address) {
			return nil, xerrors.New("builder: accounts contains a duplicate address")
		}
	}
	return sorted, nil
}

// builderState accumulates the witness streams while walking the pruned
// projection of table onto a touched subset. Its table field is read-only;
// its w field is the only mutated state, threaded explicitly rather than
// through package globals (the same re-architecture principle §9 requires
// of the verifier's cursors).
type builderState struct {
	params statetoken.Params
	table  trieTable
	w      witness.Witness
}

// build walks the pruned trie for the touched accounts in [depth, A),
// emitting tree_encoding/address_chunks/proof_hashes/balances in the exact
// order build_merkle_proof does in the original source, including the
// right-to-left reversal of proof hashes gathered along a single radix
// edge (§9 "Proof-hash ordering along radix chunks" — load-bearing for
// verifier/builder agreement).
func (b *builderState) build(depth int, touched []Account) error {
	if len(touched) == 1 {
		addr := touched[0].Address
		proofHashes, _, err := b.handleAddressChunk(depth, addr, addr.Len()-depth)
		if err != nil {
			return err
		}
		b.w.Balances = append(b.w.Balances, touched[0].Balance)
		appendReversed(&b.w.ProofHashes, proofHashes)
		return nil
	}

	first := touched[0].Address
	last := touched[len(touched)-1].Address
	d := depth
	for ; d < first.Len(); d++ {
		if first.Bit(d) != last.Bit(d) {
			break
		}
	}

	proofHashes, _, err := b.handleAddressChunk(depth, first, d-depth)
	if err != nil {
		return err
	}
	b.w.TreeEncoding = append(b.w.TreeEncoding, witness.OpcodeBothChildren)

	splitIdx := len(touched)
	for i, a := range touched {
		if a.Address.Bit(d) != 0 {
			splitIdx = i
			break
		}
	}
	if err := b.build(d+1, touched[:splitIdx]); err != nil {
		return err
	}
	if err := b.build(d+1, touched[splitIdx:]); err != nil {
		return err
	}
	appendReversed(&b.w.ProofHashes, proofHashes)
	return nil
}

// handleAddressChunk walks the full-tree structure from the compacted node
// at depth (looked up in the table by refAddr's prefix) along refAddr's
// bits until the accumulated prefix reaches depth+targetLen, stepping over
// any branch points the touched set itself doesn't need by recording the
// untouched sibling's digest as a proof hash and emitting the corresponding
// opcode. This is where a full-tree edge shorter than the touched set's
// required run gets bridged: every extra hop taken is a subtree the
// touched set does not enter.
func (b *builderState) handleAddressChunk(depth int, refAddr bitpath.Path, targetLen int) ([]hashing.Digest, bitpath.Path, error) {
	prefix := refAddr.Slice(0, depth)
	nd, ok := b.table[prefix.String()]
	if !ok {
		return nil, bitpath.Path{}, xerrors.Errorf("builder: no trie node at prefix %q", prefix.String())
	}

	var proofHashes []hashing.Digest
	if nd.chunk.Len() > 0 {
		b.w.AddressChunks = append(b.w.AddressChunks, nd.chunk)
		b.w.TreeEncoding = append(b.w.TreeEncoding, witness.OpcodeRadixChunk)
	}
	prefix = prefix.AppendChunk(nd.chunk)
	idx := nd.chunk.Len()

	for idx < targetLen {
		bit := refAddr.Bit(depth + idx)
		var siblingBit, takenBit byte
		var op witness.Opcode
		if bit == 0 {
			siblingBit, takenBit, op = 1, 0, witness.OpcodeLeftOnly
		} else {
			siblingBit, takenBit, op = 0, 1, witness.OpcodeRightOnly
		}

		siblingPrefix := prefix.Append(siblingBit)
		siblingNode, ok := b.table[siblingPrefix.String()]
		if !ok {
			return nil, bitpath.Path{}, xerrors.Errorf("builder: no trie node at prefix %q", siblingPrefix.String())
		}
		proofHashes = append(proofHashes, siblingNode.hash)

		takenPrefix := prefix.Append(takenBit)
		takenNode, ok := b.table[takenPrefix.String()]
		if !ok {
			return nil, bitpath.Path{}, xerrors.Errorf("builder: no trie node at prefix %q", takenPrefix.String())
		}
		b.w.TreeEncoding = append(b.w.TreeEncoding, op)
		if takenNode.chunk.Len() > 0 {
			b.w.TreeEncoding = append(b.w.TreeEncoding, witness.OpcodeRadixChunk)
			b.w.AddressChunks = append(b.w.AddressChunks, takenNode.chunk)
		}
		prefix = takenPrefix.AppendChunk(takenNode.chunk)
		idx += takenNode.chunk.Len() + 1
	}
	return proofHashes, prefix, nil
}

func appendReversed(dst *[]hashing.Digest, src []hashing.Digest) {
	for i := len(src) - 1; i >= 0; i-- {
		*dst = append(*dst, src[i])
	}
}
