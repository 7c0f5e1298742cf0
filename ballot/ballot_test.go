package ballot

import (
	"testing"

	"github.com/equa/votenode/vote"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	priv, pub, err := GenerateKeys()
	require.NoError(t, err)

	sig, err := SignVote(pub, priv, "candidateX", 1)
	require.NoError(t, err)

	v := vote.Vote{Voter: pub, Candidate: "candidateX", Amount: 1, Signature: sig}
	require.True(t, VerifyVote(v))
}

func TestVerifyRejectsTamperedAmount(t *testing.T) {
	priv, pub, err := GenerateKeys()
	require.NoError(t, err)

	sig, err := SignVote(pub, priv, "candidateX", 1)
	require.NoError(t, err)

	tampered := vote.Vote{Voter: pub, Candidate: "candidateX", Amount: 99, Signature: sig}
	require.False(t, VerifyVote(tampered))
}

func TestVerifyRejectsGarbageSignature(t *testing.T) {
	_, pub, err := GenerateKeys()
	require.NoError(t, err)

	v := vote.Vote{Voter: pub, Candidate: "candidateX", Amount: 1, Signature: "not-hex-garbage"}
	require.False(t, VerifyVote(v))
}

func TestVerifyAcceptsUnsignedMiningVote(t *testing.T) {
	mv := vote.NewMiningVote("minerpub")
	require.True(t, VerifyVote(mv))
}

func TestCreateKeysPopulatesBallot(t *testing.T) {
	b := New("7")
	require.NoError(t, b.CreateKeys())
	require.NotEmpty(t, b.PublicKey)
	require.NotEmpty(t, b.PrivateKey)
}
