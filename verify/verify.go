// Package verify holds the pure predicates that gate every ledger
// mutation: proof-of-work validity, chain validity, and vote validity.
// Nothing here touches a mutex or the filesystem — callers own that.
package verify

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/equa/votenode/ballot"
	"github.com/equa/votenode/block"
	"github.com/equa/votenode/params"
	"github.com/equa/votenode/vote"
	"github.com/equa/votenode/votehash"
)

// ValidProof reports whether proof solves the proof-of-work puzzle for
// votes (which must already exclude any coinbase entry) chained onto
// lastHash, and returns the guess hash it computed for callers that want
// to log or reuse it.
func ValidProof(votes []vote.Vote, lastHash string, proof uint64) (bool, string) {
	canonVotes, _ := json.Marshal(vote.CanonicalList(votes))
	guess := string(canonVotes) + lastHash + strconv.FormatUint(proof, 10)
	guessHash := votehash.HashString256([]byte(guess))
	return strings.HasPrefix(guessHash, params.PoWDifficultyPrefix), guessHash
}

// VerifyChain walks the chain from genesis and confirms every non-genesis
// block links to its predecessor's hash and carries a valid proof of work
// over its non-coinbase votes.
func VerifyChain(chain []*block.Block) bool {
	for i := 1; i < len(chain); i++ {
		prev, cur := chain[i-1], chain[i]

		prevHash, err := votehash.HashBlock(prev)
		if err != nil {
			return false
		}
		if cur.PreviousHash != prevHash {
			return false
		}
		ok, _ := ValidProof(cur.VotesExcludingCoinbase(), cur.PreviousHash, cur.Proof)
		if !ok {
			return false
		}
	}
	return true
}

// VerifyVote always checks the signature; when checkFunds is true it also
// requires the voter's balance (via getBalance) to cover the amount.
func VerifyVote(v vote.Vote, getBalance func(string) int64, checkFunds bool) bool {
	if checkFunds {
		return getBalance(v.Voter) >= v.Amount && ballot.VerifyVote(v)
	}
	return ballot.VerifyVote(v)
}

// VerifyVotes verifies every vote's signature (without a funds check),
// the check mine_block runs over the mempool snapshot before sealing it.
func VerifyVotes(votes []vote.Vote, getBalance func(string) int64) bool {
	for _, v := range votes {
		if !VerifyVote(v, getBalance, false) {
			return false
		}
	}
	return true
}
