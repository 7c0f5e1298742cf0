// Package block defines the Block header and its construction. A Block has
// no behavior beyond accessors: validity is the job of package verify.
package block

import (
	"time"

	"github.com/equa/votenode/vote"
)

// Block is a single entry in an election's chain. In a mined block the last
// entry of Votes is the coinbase vote; in genesis, PreviousHash carries the
// election's free-form description and Proof carries the election id —
// neither is ever verified, they are metadata (see design notes on genesis).
type Block struct {
	Index        int         `json:"index"`
	PreviousHash string      `json:"previous_hash"`
	Timestamp    int64       `json:"timestamp"`
	Votes        []vote.Vote `json:"votes"`
	Proof        uint64      `json:"proof"`
}

// New builds a block with the timestamp set to now, mirroring the teacher's
// "set on construction if not supplied" rule for everything except genesis.
func New(index int, previousHash string, votes []vote.Vote, proof uint64) *Block {
	return &Block{
		Index:        index,
		PreviousHash: previousHash,
		Timestamp:    time.Now().Unix(),
		Votes:        votes,
		Proof:        proof,
	}
}

// Genesis builds the root block of a new election's chain. Its timestamp is
// pinned to zero (not wall-clock) so that hash_block(genesis) — and
// therefore every descendant block's previous_hash — is fully determined by
// (electionID, description), not by when the node happened to start.
func Genesis(electionID int, description string) *Block {
	return &Block{
		Index:        0,
		PreviousHash: description,
		Timestamp:    0,
		Votes:        []vote.Vote{},
		Proof:        uint64(electionID),
	}
}

// VotesExcludingCoinbase returns all votes except the last (coinbase) entry. Callers
// must only use this on non-genesis, non-empty blocks.
func (b *Block) VotesExcludingCoinbase() []vote.Vote {
	if len(b.Votes) == 0 {
		return nil
	}
	return b.Votes[:len(b.Votes)-1]
}

// Clone returns a deep-enough copy safe to hand out of the ledger lock: the
// Votes slice is copied so callers can't mutate ledger state through it.
func (b *Block) Clone() *Block {
	votes := make([]vote.Vote, len(b.Votes))
	copy(votes, b.Votes)
	cp := *b
	cp.Votes = votes
	return &cp
}
