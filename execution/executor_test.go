package execution_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainproofs/statetoken/bitpath"
	"github.com/chainproofs/statetoken/execution"
)

func addrs(ss ...string) []bitpath.Path {
	ret := make([]bitpath.Path, len(ss))
	for i, s := range ss {
		ret[i] = bitpath.FromString(s)
	}
	return ret
}

func TestIdentityExecutorPreservesBalances(t *testing.T) {
	pre := []uint64{10, 20, 30}
	post, err := execution.IdentityExecutor{}.Execute(context.Background(), nil, addrs("00", "01", "10"), pre)
	require.NoError(t, err)
	require.Equal(t, pre, post)
}

func TestTransferExecutorAppliesTransfer(t *testing.T) {
	a := addrs("00", "01")
	pre := []uint64{100, 0}
	txs := []execution.Transaction{{From: a[0], To: a[1], Amount: 40}}

	post, err := execution.NewTransferExecutor().Execute(context.Background(), txs, a, pre)
	require.NoError(t, err)
	require.Equal(t, []uint64{60, 40}, post)
}

func TestTransferExecutorRejectsUnderflow(t *testing.T) {
	a := addrs("00", "01")
	pre := []uint64{10, 0}
	txs := []execution.Transaction{{From: a[0], To: a[1], Amount: 40}}

	_, err := execution.NewTransferExecutor().Execute(context.Background(), txs, a, pre)
	require.Error(t, err)
}

func TestTransferExecutorRejectsUntouchedAddress(t *testing.T) {
	a := addrs("00", "01")
	pre := []uint64{10, 0}
	txs := []execution.Transaction{{From: bitpath.FromString("11"), To: a[1], Amount: 1}}

	_, err := execution.NewTransferExecutor().Execute(context.Background(), txs, a, pre)
	require.Error(t, err)
}

func TestNewTransferExecutorAssignsDistinctBatchIDs(t *testing.T) {
	e1 := execution.NewTransferExecutor()
	e2 := execution.NewTransferExecutor()
	require.NotEqual(t, e1.BatchID, e2.BatchID)
}
