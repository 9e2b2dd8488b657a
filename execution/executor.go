// Package execution defines the transaction-executor collaborator contract
// (§6) and provides reference implementations. The verifier depends only on
// the Executor interface; execution semantics (what a signed transfer does
// to a balance) are explicitly out of scope for the verifier per §1, and
// are supplied here only so the full pipeline can be exercised end-to-end —
// the original source this spec was distilled from stubs execute_transactions
// with a bare TODO ("new_balances = balances"), so IdentityExecutor
// preserves that exact behavior and TransferExecutor supplements it with a
// real (if minimal) balance-transfer semantics.
package execution

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/chainproofs/statetoken/bitpath"
	"github.com/chainproofs/statetoken/internal/errs"
)

// Transaction is a minimal balance transfer: move Amount from the account at
// From to the account at To. Both must be addresses present in the aligned
// address/balance vectors passed to Execute.
type Transaction struct {
	From   bitpath.Path
	To     bitpath.Path
	Amount uint64
}

// Executor maps a pre-state balance vector, aligned by index with
// reconstructed addresses, plus a transaction batch, to a post-state balance
// vector of the same length and ordering (§6).
type Executor interface {
	Execute(ctx context.Context, txs []Transaction, addrs []bitpath.Path, pre []uint64) (post []uint64, err error)
}

// IdentityExecutor leaves every balance unchanged. Used by tests exercising
// Property 3 (identity transactions) and as a drop-in when transaction
// semantics are not under test.
type IdentityExecutor struct{}

func (IdentityExecutor) Execute(_ context.Context, _ []Transaction, _ []bitpath.Path, pre []uint64) ([]uint64, error) {
	post := make([]uint64, len(pre))
	copy(post, pre)
	return post, nil
}

// TransferExecutor applies a batch of Transaction values against the
// aligned (addrs, pre) vectors, returning errs.ErrBalanceUnderflow if any
// debit would drive a balance below zero. Transactions referencing an
// address absent from addrs are rejected as malformed input — the address
// vector is exactly the witness's touched set, so any transaction outside
// it could never have been authenticated by the accompanying proof.
type TransferExecutor struct {
	// BatchID correlates this Execute call with host-side logs; it plays
	// no role in the balance computation itself.
	BatchID uuid.UUID
}

// NewTransferExecutor returns a TransferExecutor tagged with a fresh batch id.
func NewTransferExecutor() TransferExecutor {
	return TransferExecutor{BatchID: uuid.New()}
}

func (e TransferExecutor) Execute(_ context.Context, txs []Transaction, addrs []bitpath.Path, pre []uint64) ([]uint64, error) {
	post := make([]uint64, len(pre))
	copy(post, pre)

	index := make(map[string]int, len(addrs))
	for i, a := range addrs {
		index[a.String()] = i
	}
	lookup := func(a bitpath.Path) (int, bool) {
		i, ok := index[a.String()]
		return i, ok
	}

	for _, tx := range txs {
		fromIdx, ok := lookup(tx.From)
		if !ok {
			return nil, xerrors.Errorf("transaction references untouched sender address")
		}
		toIdx, ok := lookup(tx.To)
		if !ok {
			return nil, xerrors.Errorf("transaction references untouched recipient address")
		}
		if post[fromIdx] < tx.Amount {
			return nil, xerrors.Errorf("%w: account %d balance %d cannot cover transfer of %d", errs.ErrBalanceUnderflow, fromIdx, post[fromIdx], tx.Amount)
		}
		post[fromIdx] -= tx.Amount
		post[toIdx] += tx.Amount
	}
	return post, nil
}
