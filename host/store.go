// Package host implements the host ABI collaborator contract (§6): the one
// piece of state persisted between verification calls, the committed root
// digest. Grounded on the teacher's hive_adaptor/hiveadaptor.go, which
// wraps a github.com/iotaledger/hive.go kvstore.KVStore as the trie's
// backing store; here the same kvstore abstraction backs the single
// persisted root entry instead of a whole trie, since the verifier never
// holds the full account set (§1 "The verifier never sees the full account
// set").
package host

import (
	"sync"

	"github.com/iotaledger/hive.go/core/kvstore"
	"github.com/iotaledger/hive.go/core/kvstore/mapdb"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/chainproofs/statetoken/hashing"
)

var rootKey = []byte("state_root")

// ABI is the host collaborator contract (§6): read the committed root,
// accept calldata (left to the caller's transport), commit a new root.
type ABI interface {
	GetStateRoot() hashing.Digest
	SetStateRoot(digest hashing.Digest)
}

// Store is the reference ABI implementation: a single root digest
// persisted in a hive.go kvstore.KVStore, with optional Prometheus
// counters so SetStateRoot calls are observable without introducing any
// asynchronous reporting path (§5 forbids async state access).
type Store struct {
	mu  sync.Mutex
	kvs kvstore.KVStore

	commits  prometheus.Counter
	failures prometheus.Counter
}

// NewStore returns a Store backed by an in-memory hive.go kvstore. The root
// starts unset; GetStateRoot returns nil until the first SetStateRoot.
func NewStore() *Store {
	return newStore(mapdb.NewMapDB())
}

// NewStoreWithBackend returns a Store backed by an arbitrary hive.go
// kvstore, e.g. a persistent backend in a deployment where the committed
// root must survive process restarts.
func NewStoreWithBackend(kvs kvstore.KVStore) *Store {
	return newStore(kvs)
}

func newStore(kvs kvstore.KVStore) *Store {
	return &Store{
		kvs: kvs,
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statetoken_verify_commits_total",
			Help: "Number of times the host committed a new state root.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statetoken_verify_failures_total",
			Help: "Number of times a caller reported a failed verification against this host's root.",
		}),
	}
}

// Collector exposes the store's Prometheus counters for registration.
func (s *Store) Collector() []prometheus.Collector {
	return []prometheus.Collector{s.commits, s.failures}
}

// RecordVerifyFailure increments the failure counter. Verify itself never
// touches the host (§6: failures leave the committed root unchanged), so
// callers that want failures observable report them explicitly after a
// non-nil error from verifier.Verify.
func (s *Store) RecordVerifyFailure() {
	s.failures.Inc()
}

func (s *Store) GetStateRoot() hashing.Digest {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.kvs.Get(rootKey)
	if err != nil {
		return nil
	}
	return hashing.Digest(v)
}

func (s *Store) SetStateRoot(digest hashing.Digest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kvs.Set(rootKey, digest); err != nil {
		panic(err)
	}
	s.commits.Inc()
}
