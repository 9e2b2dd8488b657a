package host_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/chainproofs/statetoken/hashing"
	"github.com/chainproofs/statetoken/host"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestStoreStartsWithNoRoot(t *testing.T) {
	s := host.NewStore()
	require.Nil(t, s.GetStateRoot())
}

func TestStoreRoundTripsRoot(t *testing.T) {
	s := host.NewStore()
	root := hashing.Digest{1, 2, 3, 4}
	s.SetStateRoot(root)
	require.True(t, s.GetStateRoot().Equal(root))
}

func TestStoreCommitsCounterIncrements(t *testing.T) {
	s := host.NewStore()
	collectors := s.Collector()
	require.Len(t, collectors, 2)
	commits := collectors[0].(prometheus.Counter)

	require.Equal(t, float64(0), counterValue(t, commits))
	s.SetStateRoot(hashing.Digest{1})
	s.SetStateRoot(hashing.Digest{2})
	require.Equal(t, float64(2), counterValue(t, commits))
}

func TestStoreRecordVerifyFailureIncrementsCounter(t *testing.T) {
	s := host.NewStore()
	collectors := s.Collector()
	failures := collectors[1].(prometheus.Counter)

	require.Equal(t, float64(0), counterValue(t, failures))
	s.RecordVerifyFailure()
	require.Equal(t, float64(1), counterValue(t, failures))
}
