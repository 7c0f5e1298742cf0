package block

import (
	"testing"

	"github.com/equa/votenode/vote"
	"github.com/stretchr/testify/require"
)

func TestGenesisMetadataSlots(t *testing.T) {
	g := Genesis(7, "my election")
	require.Equal(t, 0, g.Index)
	require.Equal(t, "my election", g.PreviousHash)
	require.EqualValues(t, 7, g.Proof)
	require.Empty(t, g.Votes)
	require.Zero(t, g.Timestamp)
}

func TestVotesExcludingCoinbase(t *testing.T) {
	b := &Block{Votes: []vote.Vote{
		{Voter: "a"},
		{Voter: "b"},
		{Voter: "MINING"},
	}}
	got := b.VotesExcludingCoinbase()
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].Voter)
	require.Equal(t, "b", got[1].Voter)
}

func TestCloneIsIndependent(t *testing.T) {
	orig := New(1, "prevhash", []vote.Vote{{Voter: "a"}}, 5)
	cp := orig.Clone()
	cp.Votes[0].Voter = "mutated"
	require.Equal(t, "a", orig.Votes[0].Voter)
}
