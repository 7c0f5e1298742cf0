// Package vote defines the Vote record and its canonical serialization.
package vote

import (
	"strconv"

	"github.com/equa/votenode/params"
)

// Vote is an immutable record admitted to a ledger's mempool or embedded in
// a mined block. Voter is a hex-encoded RSA public key, or the reserved
// literal "MINING" for a coinbase vote appended by the miner.
type Vote struct {
	Voter     string `json:"voter"`
	Candidate string `json:"candidate"`
	Amount    int64  `json:"amount"`
	Signature string `json:"signature"`
}

// canonical is the ordered triple used for proof-of-work input. Field order
// matters: it is part of the PoW guess string, not just display, and it is
// the same order SignedPayload concatenates for signing.
type canonical struct {
	Voter     string `json:"voter"`
	Candidate string `json:"candidate"`
	Amount    int64  `json:"amount"`
}

// Canonical returns the vote's ordered (voter, candidate, amount) triple,
// excluding the signature, used for proof-of-work (signing uses
// SignedPayload).
func (v Vote) Canonical() interface{} {
	return canonical{Voter: v.Voter, Candidate: v.Candidate, Amount: v.Amount}
}

// SignedPayload returns the exact string that gets SHA-256'd and signed:
// voter || candidate || amount, string-concatenated.
func (v Vote) SignedPayload() string {
	return v.Voter + v.Candidate + strconv.FormatInt(v.Amount, 10)
}

// IsMining reports whether this is a coinbase vote.
func (v Vote) IsMining() bool {
	return v.Voter == params.MiningVoter
}

// Equal reports whether two votes match on all four fields — the identity
// used to reconcile mempool entries against votes that landed in a block.
func (v Vote) Equal(o Vote) bool {
	return v.Voter == o.Voter &&
		v.Candidate == o.Candidate &&
		v.Amount == o.Amount &&
		v.Signature == o.Signature
}

// NewMiningVote builds the coinbase vote a miner appends as the last entry
// of a newly mined block.
func NewMiningVote(minerPublicKey string) Vote {
	return Vote{
		Voter:     params.MiningVoter,
		Candidate: minerPublicKey,
		Amount:    params.MiningReward,
		Signature: "",
	}
}

// CanonicalList converts a slice of votes into their canonical (signature-
// excluded) ordered form, preserving input order, for PoW hashing.
func CanonicalList(votes []Vote) []interface{} {
	out := make([]interface{}, len(votes))
	for i, v := range votes {
		out[i] = v.Canonical()
	}
	return out
}
