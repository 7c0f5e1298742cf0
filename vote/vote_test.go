package vote

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignedPayloadConcatenation(t *testing.T) {
	v := Vote{Voter: "aa", Candidate: "bb", Amount: 3}
	require.Equal(t, "aabb3", v.SignedPayload())
}

func TestEqualAllFourFields(t *testing.T) {
	a := Vote{Voter: "v", Candidate: "c", Amount: 1, Signature: "s"}
	b := a
	require.True(t, a.Equal(b))

	b.Signature = "other"
	require.False(t, a.Equal(b))
}

func TestNewMiningVote(t *testing.T) {
	mv := NewMiningVote("minerpub")
	require.True(t, mv.IsMining())
	require.Equal(t, "minerpub", mv.Candidate)
	require.EqualValues(t, 1, mv.Amount)
	require.Empty(t, mv.Signature)
}

func TestCanonicalListPreservesOrder(t *testing.T) {
	votes := []Vote{
		{Voter: "a", Candidate: "x", Amount: 1, Signature: "sig1"},
		{Voter: "b", Candidate: "y", Amount: 2, Signature: "sig2"},
	}
	canon := CanonicalList(votes)
	require.Len(t, canon, 2)
	require.Equal(t, canonical{Voter: "a", Candidate: "x", Amount: 1}, canon[0])
}
