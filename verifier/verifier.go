// Package verifier implements the trie-proof verifier: the algorithmic
// heart of the system (§4.3). It consumes a witness's five streams in a
// single logical depth-first pass, reconstructs the touched-address
// sequence, recomputes the pre-state root to authenticate the supplied
// balances and addresses against the stored root, drives the transaction
// executor collaborator to get post-state balances, and recomputes the
// post-state root sharing the same frontier digests. The verifier is
// single-threaded and sequential (§5): one call processes one calldata blob
// to completion and never blocks on I/O.
package verifier

import (
	"context"

	"golang.org/x/xerrors"

	"github.com/chainproofs/statetoken"
	"github.com/chainproofs/statetoken/bitpath"
	"github.com/chainproofs/statetoken/execution"
	"github.com/chainproofs/statetoken/hashing"
	"github.com/chainproofs/statetoken/internal/errs"
	"github.com/chainproofs/statetoken/witness"
)

// Result carries the successfully recomputed post-state root.
type Result struct {
	NewRoot hashing.Digest
}

// Verify checks calldata against storedRoot and, on success, returns the
// new root the host should commit. It never mutates any host state itself;
// the caller commits Result.NewRoot via the host collaborator only after
// Verify returns a nil error (§6, §7: "All failures leave the host's
// committed root unchanged").
//
// Guarantees on success (§4.3):
//  1. the recomputed pre-state root equals storedRoot;
//  2. the reconstructed touched-address sequence is strictly ascending and
//     every entry has length exactly Params.AddressBits;
//  3. every post-state balance lies in [0, 2^B);
//  4. the returned root shares the pre-state root's tree shape and frontier
//     digests, differing only in leaf balances.
func Verify(
	ctx context.Context,
	p statetoken.Params,
	h hashing.Hasher,
	calldata []byte,
	storedRoot hashing.Digest,
	exec execution.Executor,
	txs []execution.Transaction,
) (Result, error) {
	w, err := witness.Decode(p, calldata)
	if err != nil {
		return Result{}, err
	}

	addrs, err := reconcileAddresses(p, w)
	if err != nil {
		return Result{}, err
	}
	if err := checkAscending(addrs); err != nil {
		return Result{}, err
	}
	if len(addrs) != len(w.Balances) {
		return Result{}, xerrors.Errorf("%w: touched-address count %d does not match balances count %d", errs.ErrMalformedWitness, len(addrs), len(w.Balances))
	}

	post, err := exec.Execute(ctx, txs, addrs, w.Balances)
	if err != nil {
		return Result{}, err
	}
	if len(post) != len(w.Balances) {
		return Result{}, xerrors.Errorf("%w: executor returned %d balances, expected %d", errs.ErrMalformedWitness, len(post), len(w.Balances))
	}
	limit := uint64(1) << uint(p.BalanceBits)
	for i, b := range post {
		if p.BalanceBits < 64 && b >= limit {
			return Result{}, xerrors.Errorf("%w: post-state balance at index %d (%d) exceeds %d-bit range", errs.ErrMalformedWitness, i, b, p.BalanceBits)
		}
	}

	oldRoot, newRoot, err := computeRoots(p, h, w, addrs, post)
	if err != nil {
		return Result{}, err
	}

	if !oldRoot.Equal(storedRoot) {
		return Result{}, xerrors.Errorf("%w: recomputed root does not match stored root", errs.ErrRootMismatch)
	}

	return Result{NewRoot: newRoot}, nil
}

// reconcileAddresses always reconstructs the touched-address sequence from
// tree_encoding + address_chunks (this also validates and advances those
// cursors), and, if the witness additionally supplies sorted_addresses,
// cross-checks that the two agree. See DESIGN.md for why both streams are
// validated together rather than sorted_addresses short-circuiting
// reconstruction entirely.
func reconcileAddresses(p statetoken.Params, w witness.Witness) ([]bitpath.Path, error) {
	recovered, err := recoverAddresses(p, w)
	if err != nil {
		return nil, err
	}
	if len(w.SortedAddresses) == 0 {
		return recovered, nil
	}
	if len(w.SortedAddresses) != len(recovered) {
		return nil, xerrors.Errorf("%w: sorted_addresses has %d entries, tree encoding yields %d", errs.ErrMalformedWitness, len(w.SortedAddresses), len(recovered))
	}
	for i := range recovered {
		if !w.SortedAddresses[i].Equal(recovered[i]) {
			return nil, xerrors.Errorf("%w: sorted_addresses disagrees with tree_encoding at index %d", errs.ErrMalformedWitness, i)
		}
	}
	return w.SortedAddresses, nil
}

func checkAscending(addrs []bitpath.Path) error {
	for i := 1; i < len(addrs); i++ {
		if !addrs[i-1].Less(addrs[i]) {
			return xerrors.Errorf("%w: reconstructed addresses are not strictly ascending at index %d", errs.ErrMalformedWitness, i)
		}
	}
	return nil
}
