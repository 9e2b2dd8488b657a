// Package errs holds the sentinel error kinds shared by the witness codec,
// verifier, and executor collaborator, per §7's error kinds. Every fatal
// condition wraps one of these so callers can discriminate with errors.Is
// regardless of which component raised it. Grounded on the teacher's
// trie/errors.go, which follows the same one-sentinel-per-kind pattern for
// its single ErrNotAllBytesConsumed error; this module generalizes that to
// the five kinds §7 names.
package errs

import "golang.org/x/xerrors"

var (
	// ErrMalformedCalldata is returned by the witness codec when the
	// length-prefixed chunk framing is inconsistent with the buffer.
	ErrMalformedCalldata = xerrors.New("malformed calldata")

	// ErrMalformedWitness is returned by the verifier when a cursor
	// overruns its stream, an opcode is unrecognized, or the traversal
	// depth invariant is violated.
	ErrMalformedWitness = xerrors.New("malformed witness")

	// ErrRootMismatch is returned when the recomputed pre-state root does
	// not equal the stored root.
	ErrRootMismatch = xerrors.New("root mismatch")

	// ErrSignatureError is returned by a signature-verification
	// collaborator on an invalid signature.
	ErrSignatureError = xerrors.New("signature error")

	// ErrBalanceUnderflow is returned by the transaction executor when a
	// debit would drive a balance below zero.
	ErrBalanceUnderflow = xerrors.New("balance underflow")
)
