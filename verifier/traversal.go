package verifier

import (
	"golang.org/x/xerrors"

	"github.com/chainproofs/statetoken"
	"github.com/chainproofs/statetoken/bitpath"
	"github.com/chainproofs/statetoken/hashing"
	"github.com/chainproofs/statetoken/internal/errs"
	"github.com/chainproofs/statetoken/witness"
)

// addressTraversal reconstructs the touched-address sequence from the
// tree-encoding and address-chunk streams in one depth-first pre-order
// walk. Its cursors are explicit fields on the value, not package-level
// globals — the re-architecture Design Notes §9 requires of the reference
// implementation's module-level "opcode_idx"/"addychunk_idx" counters.
type addressTraversal struct {
	params   statetoken.Params
	opcodes  []witness.Opcode
	chunks   []bitpath.Path
	opIdx    int
	chunkIdx int
}

func recoverAddresses(p statetoken.Params, w witness.Witness) ([]bitpath.Path, error) {
	t := &addressTraversal{params: p, opcodes: w.TreeEncoding, chunks: w.AddressChunks}
	addrs, err := t.recover(bitpath.Empty())
	if err != nil {
		return nil, err
	}
	if t.opIdx != len(t.opcodes) {
		return nil, xerrors.Errorf("%w: tree_encoding has %d trailing opcodes after address reconstruction", errs.ErrMalformedWitness, len(t.opcodes)-t.opIdx)
	}
	if t.chunkIdx != len(t.chunks) {
		return nil, xerrors.Errorf("%w: address_chunks has %d trailing entries after address reconstruction", errs.ErrMalformedWitness, len(t.chunks)-t.chunkIdx)
	}
	return addrs, nil
}

func (t *addressTraversal) recover(prefix bitpath.Path) ([]bitpath.Path, error) {
	if prefix.Len() == t.params.AddressBits {
		return []bitpath.Path{prefix}, nil
	}
	if t.opIdx >= len(t.opcodes) {
		return nil, xerrors.Errorf("%w: tree_encoding exhausted at depth %d", errs.ErrMalformedWitness, prefix.Len())
	}
	op := t.opcodes[t.opIdx]
	t.opIdx++

	switch op {
	case witness.OpcodeBothChildren:
		left, err := t.recover(prefix.Append(0))
		if err != nil {
			return nil, err
		}
		right, err := t.recover(prefix.Append(1))
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil

	case witness.OpcodeLeftOnly:
		return t.recover(prefix.Append(0))

	case witness.OpcodeRightOnly:
		return t.recover(prefix.Append(1))

	case witness.OpcodeRadixChunk:
		if t.chunkIdx >= len(t.chunks) {
			return nil, xerrors.Errorf("%w: address_chunks exhausted at depth %d", errs.ErrMalformedWitness, prefix.Len())
		}
		chunk := t.chunks[t.chunkIdx]
		t.chunkIdx++
		if chunk.Len() == 0 {
			return nil, xerrors.Errorf("%w: zero-length address-chunk at depth %d", errs.ErrMalformedWitness, prefix.Len())
		}
		if prefix.Len()+chunk.Len() > t.params.AddressBits {
			return nil, xerrors.Errorf("%w: address-chunk at depth %d overruns address width %d", errs.ErrMalformedWitness, prefix.Len(), t.params.AddressBits)
		}
		return t.recover(prefix.AppendChunk(chunk))

	default:
		return nil, xerrors.Errorf("%w: unknown opcode %02b at depth %d", errs.ErrMalformedWitness, op, prefix.Len())
	}
}

// merkleTraversal computes the old-state and new-state roots in one fused
// depth-first pre-order walk, sharing the frontier (proof) hashes of
// untouched subtrees between both roots. It consumes tree_encoding and
// address_chunks a second time (spec.md §4.3 explicitly allows either two
// separate passes or a fusion of the two; the reference implementation
// performs the traversal twice, once for addresses and once for hashing),
// plus proof_hashes, pre-state balances, and post-state balances, all
// through explicit cursor fields.
type merkleTraversal struct {
	params  statetoken.Params
	hasher  hashing.Hasher
	opcodes []witness.Opcode
	chunks  []bitpath.Path
	hashes  []hashing.Digest
	addrs   []bitpath.Path
	pre     []uint64
	post    []uint64

	opIdx, chunkIdx, hashIdx, leafIdx int
}

func computeRoots(p statetoken.Params, h hashing.Hasher, w witness.Witness, addrs []bitpath.Path, post []uint64) (oldRoot, newRoot hashing.Digest, err error) {
	t := &merkleTraversal{
		params:  p,
		hasher:  h,
		opcodes: w.TreeEncoding,
		chunks:  w.AddressChunks,
		hashes:  w.ProofHashes,
		addrs:   addrs,
		pre:     w.Balances,
		post:    post,
	}
	oldRoot, newRoot, err = t.run(0)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case t.opIdx != len(t.opcodes):
		return nil, nil, xerrors.Errorf("%w: tree_encoding has %d trailing opcodes after root computation", errs.ErrMalformedWitness, len(t.opcodes)-t.opIdx)
	case t.chunkIdx != len(t.chunks):
		return nil, nil, xerrors.Errorf("%w: address_chunks has %d trailing entries after root computation", errs.ErrMalformedWitness, len(t.chunks)-t.chunkIdx)
	case t.hashIdx != len(t.hashes):
		return nil, nil, xerrors.Errorf("%w: proof_hashes has %d trailing entries after root computation", errs.ErrMalformedWitness, len(t.hashes)-t.hashIdx)
	case t.leafIdx != len(t.pre):
		return nil, nil, xerrors.Errorf("%w: balances has %d trailing entries after root computation", errs.ErrMalformedWitness, len(t.pre)-t.leafIdx)
	}
	return oldRoot, newRoot, nil
}

func (t *merkleTraversal) run(depth int) (oldDigest, newDigest hashing.Digest, err error) {
	if depth == t.params.AddressBits {
		if t.leafIdx >= len(t.pre) || t.leafIdx >= len(t.addrs) || t.leafIdx >= len(t.post) {
			return nil, nil, xerrors.Errorf("%w: balances exhausted at a leaf", errs.ErrMalformedWitness)
		}
		addr := t.addrs[t.leafIdx]
		oldBalance := t.pre[t.leafIdx]
		newBalance := t.post[t.leafIdx]
		t.leafIdx++

		addrBytes := addr.BigEndianInteger(t.params.AddressBytes())
		oldDigest = t.hasher.Hash(hashing.LeafInput(addrBytes, oldBalance, t.params.BalanceBytes()))
		newDigest = t.hasher.Hash(hashing.LeafInput(addrBytes, newBalance, t.params.BalanceBytes()))
		return oldDigest, newDigest, nil
	}

	if t.opIdx >= len(t.opcodes) {
		return nil, nil, xerrors.Errorf("%w: tree_encoding exhausted at depth %d", errs.ErrMalformedWitness, depth)
	}
	op := t.opcodes[t.opIdx]
	t.opIdx++

	switch op {
	case witness.OpcodeBothChildren:
		lo, ln, err := t.run(depth + 1)
		if err != nil {
			return nil, nil, err
		}
		ro, rn, err := t.run(depth + 1)
		if err != nil {
			return nil, nil, err
		}
		return t.hasher.Hash(hashing.InternalInput(lo, ro)), t.hasher.Hash(hashing.InternalInput(ln, rn)), nil

	case witness.OpcodeLeftOnly:
		lo, ln, err := t.run(depth + 1)
		if err != nil {
			return nil, nil, err
		}
		frontier, err := t.nextFrontier(depth)
		if err != nil {
			return nil, nil, err
		}
		return t.hasher.Hash(hashing.InternalInput(lo, frontier)), t.hasher.Hash(hashing.InternalInput(ln, frontier)), nil

	case witness.OpcodeRightOnly:
		ro, rn, err := t.run(depth + 1)
		if err != nil {
			return nil, nil, err
		}
		frontier, err := t.nextFrontier(depth)
		if err != nil {
			return nil, nil, err
		}
		return t.hasher.Hash(hashing.InternalInput(frontier, ro)), t.hasher.Hash(hashing.InternalInput(frontier, rn)), nil

	case witness.OpcodeRadixChunk:
		if t.chunkIdx >= len(t.chunks) {
			return nil, nil, xerrors.Errorf("%w: address_chunks exhausted at depth %d", errs.ErrMalformedWitness, depth)
		}
		chunk := t.chunks[t.chunkIdx]
		t.chunkIdx++
		if chunk.Len() == 0 {
			return nil, nil, xerrors.Errorf("%w: zero-length address-chunk at depth %d", errs.ErrMalformedWitness, depth)
		}
		if depth+chunk.Len() > t.params.AddressBits {
			return nil, nil, xerrors.Errorf("%w: address-chunk at depth %d overruns address width %d", errs.ErrMalformedWitness, depth, t.params.AddressBits)
		}
		return t.run(depth + chunk.Len())

	default:
		return nil, nil, xerrors.Errorf("%w: unknown opcode %02b at depth %d", errs.ErrMalformedWitness, op, depth)
	}
}

func (t *merkleTraversal) nextFrontier(depth int) (hashing.Digest, error) {
	if t.hashIdx >= len(t.hashes) {
		return nil, xerrors.Errorf("%w: proof_hashes exhausted at depth %d", errs.ErrMalformedWitness, depth)
	}
	h := t.hashes[t.hashIdx]
	t.hashIdx++
	return h, nil
}
