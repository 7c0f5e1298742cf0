package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateElectionIsIdempotent(t *testing.T) {
	r := New("node-a", "", nil)
	first := r.CreateElection(1, "first description", "miner-pub")
	second := r.CreateElection(1, "ignored on second call", "ignored-pub")
	require.Same(t, first, second)
}

func TestGetReportsExistence(t *testing.T) {
	r := New("node-a", "", nil)
	_, ok := r.Get(42)
	require.False(t, ok)
	require.False(t, r.Exists(42))

	r.CreateElection(42, "d", "pub")
	_, ok = r.Get(42)
	require.True(t, ok)
	require.True(t, r.Exists(42))
}

func TestDistinctElectionsAreIndependentLedgers(t *testing.T) {
	r := New("node-a", "", nil)
	a := r.CreateElection(1, "election one", "miner-a")
	b := r.CreateElection(2, "election two", "miner-b")
	require.NotSame(t, a, b)
	require.Len(t, a.Chain(), 1)
	require.Len(t, b.Chain(), 1)
}
