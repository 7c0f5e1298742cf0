package verify

import (
	"testing"

	"github.com/equa/votenode/ballot"
	"github.com/equa/votenode/block"
	"github.com/equa/votenode/params"
	"github.com/equa/votenode/vote"
	"github.com/equa/votenode/votehash"
	"github.com/stretchr/testify/require"
)

func mineTrivial(t *testing.T, votes []vote.Vote, lastHash string) uint64 {
	t.Helper()
	for proof := uint64(0); proof < 200000; proof++ {
		if ok, _ := ValidProof(votes, lastHash, proof); ok {
			return proof
		}
	}
	t.Fatal("no proof found in search bound")
	return 0
}

func TestValidProofAcceptsMinedProof(t *testing.T) {
	votes := []vote.Vote{{Voter: "a", Candidate: "b", Amount: 1, Signature: "s"}}
	proof := mineTrivial(t, votes, "genesis")
	ok, hash := ValidProof(votes, "genesis", proof)
	require.True(t, ok)
	require.Equal(t, params.PoWDifficultyPrefix, hash[:len(params.PoWDifficultyPrefix)])
}

func TestValidProofRejectsWrongGuess(t *testing.T) {
	votes := []vote.Vote{{Voter: "a", Candidate: "b", Amount: 1, Signature: "s"}}
	ok, _ := ValidProof(votes, "genesis", 1)
	require.False(t, ok)
}

func TestVerifyChainAcceptsGenesisOnly(t *testing.T) {
	chain := []*block.Block{block.Genesis(1, "test election")}
	require.True(t, VerifyChain(chain))
}

func TestVerifyChainDetectsBrokenLink(t *testing.T) {
	genesis := block.Genesis(1, "test election")
	votes := []vote.Vote{{Voter: "a", Candidate: "b", Amount: 1, Signature: "s"}}
	proof := mineTrivial(t, votes, "genesis-hash")
	bad := block.New(1, "not-the-real-genesis-hash", append(votes, vote.NewMiningVote("miner")), proof)

	chain := []*block.Block{genesis, bad}
	require.False(t, VerifyChain(chain))
}

func TestVerifyChainDetectsBadProof(t *testing.T) {
	genesis := block.Genesis(1, "test election")
	prevHash, err := votehash.HashBlock(genesis)
	require.NoError(t, err)

	votes := []vote.Vote{{Voter: "a", Candidate: "b", Amount: 1, Signature: "s"}}
	bad := block.New(1, prevHash, append(votes, vote.NewMiningVote("miner")), 0)

	chain := []*block.Block{genesis, bad}
	require.False(t, VerifyChain(chain))
}

func TestVerifyVoteChecksFundsOnlyWhenAsked(t *testing.T) {
	priv, pub, err := ballot.GenerateKeys()
	require.NoError(t, err)
	sig, err := ballot.SignVote(pub, priv, "candidateX", 10)
	require.NoError(t, err)
	v := vote.Vote{Voter: pub, Candidate: "candidateX", Amount: 10, Signature: sig}

	zeroBalance := func(string) int64 { return 0 }
	require.True(t, VerifyVote(v, zeroBalance, false))
	require.False(t, VerifyVote(v, zeroBalance, true))

	fundedBalance := func(string) int64 { return 10 }
	require.True(t, VerifyVote(v, fundedBalance, true))
}

func TestVerifyVotesRequiresEveryVoteValid(t *testing.T) {
	priv, pub, err := ballot.GenerateKeys()
	require.NoError(t, err)
	sig, err := ballot.SignVote(pub, priv, "candidateX", 1)
	require.NoError(t, err)

	good := vote.Vote{Voter: pub, Candidate: "candidateX", Amount: 1, Signature: sig}
	bad := vote.Vote{Voter: pub, Candidate: "candidateX", Amount: 1, Signature: "garbage"}

	balance := func(string) int64 { return 100 }
	require.True(t, VerifyVotes([]vote.Vote{good}, balance))
	require.False(t, VerifyVotes([]vote.Vote{good, bad}, balance))
}
