// Package ledger implements the per-election state machine: chain,
// mempool, and peer set, guarded by a single mutex per the concurrency
// model (one election must not starve another, so the lock is scoped to
// the Ledger, not process-wide).
package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/equa/votenode/block"
	"github.com/equa/votenode/internal/logger"
	"github.com/equa/votenode/verify"
	"github.com/equa/votenode/vote"
	"github.com/equa/votenode/votehash"
)

// Gateway is the peer-replication surface a Ledger needs. peer.Client
// implements it; tests substitute a fake. Every call MUST happen with the
// ledger's lock already released — the concurrency model forbids blocking
// network I/O under the per-election lock.
type Gateway interface {
	// BroadcastVote fans v out to peers for election and reports whether
	// any peer rejected it with 4xx/5xx (connection errors are not a
	// rejection: they are silently skipped).
	BroadcastVote(ctx context.Context, peers []string, election int, v vote.Vote) (rejected bool)
	// BroadcastBlock fans b out to peers for election and reports whether
	// any peer signaled a fork (409), meaning the caller should resolve.
	BroadcastBlock(ctx context.Context, peers []string, election int, b *block.Block) (needsResolve bool)
	// FetchChain retrieves peerURL's view of election's chain. A
	// connection error is returned to the caller, which skips that peer.
	FetchChain(ctx context.Context, peerURL string, election int) ([]*block.Block, error)
}

// Ledger owns one election's chain, mempool, and peer set.
type Ledger struct {
	mu sync.Mutex

	nodeID       string
	electionID   int
	dataDir      string
	publicKey    string
	gateway      Gateway
	needsResolve bool

	chain   []*block.Block
	mempool []vote.Vote
	peers   map[string]struct{}
}

// New constructs a ledger for electionID, owned by nodeID. It attempts to
// load a prior snapshot from dataDir; on any failure (including none
// existing yet) it falls back to a fresh genesis built from description.
// dataDir == "" disables persistence entirely (used by tests).
func New(nodeID string, electionID int, description string, publicKey string, dataDir string, gateway Gateway) *Ledger {
	l := &Ledger{
		nodeID:     nodeID,
		electionID: electionID,
		dataDir:    dataDir,
		publicKey:  publicKey,
		gateway:    gateway,
		chain:      []*block.Block{block.Genesis(electionID, description)},
		peers:      make(map[string]struct{}),
	}
	if dataDir == "" {
		return l
	}
	chain, mempool, peers, err := loadSnapshot(snapshotPath(dataDir, nodeID, electionID))
	if err != nil {
		return l
	}
	l.chain = chain
	l.mempool = mempool
	for _, p := range peers {
		l.peers[p] = struct{}{}
	}
	return l
}

// AddVote admits a vote to the mempool. isReceiving marks a vote arriving
// from a peer's /broadcast-vote call, which must not be re-broadcast.
//
// Preserves the source's ambiguous "post-admission broadcast failure"
// behavior verbatim: once a vote clears the signature check it is in the
// mempool and persisted regardless of what peers later say; a 4xx/5xx from
// any peer still makes this call return false to the HTTP layer.
func (l *Ledger) AddVote(candidate, voter, signature string, amount int64, isReceiving bool) (bool, vote.Vote) {
	l.mu.Lock()
	if l.hasVotedLocked(voter) {
		l.mu.Unlock()
		return false, vote.Vote{}
	}
	v := vote.Vote{Voter: voter, Candidate: candidate, Amount: amount, Signature: signature}
	if !verify.VerifyVote(v, l.balanceLocked, false) {
		l.mu.Unlock()
		return false, vote.Vote{}
	}
	l.mempool = append(l.mempool, v)
	peers := l.peerListLocked()
	election := l.electionID
	l.saveLocked()
	l.mu.Unlock()

	if isReceiving || l.gateway == nil {
		return true, v
	}
	if rejected := l.gateway.BroadcastVote(context.Background(), peers, election, v); rejected {
		return false, v
	}
	return true, v
}

// MineBlock searches for a proof-of-work solution over the current
// mempool, seals a block with a coinbase reward to this ledger's public
// key, and broadcasts it. It returns (nil, false) if no miner key is
// configured or if needsResolve is set (mining is blocked until resolved).
func (l *Ledger) MineBlock() (*block.Block, bool) {
	l.mu.Lock()
	if l.publicKey == "" || l.needsResolve {
		l.mu.Unlock()
		return nil, false
	}

	last := l.chain[len(l.chain)-1]
	lastHash, err := votehash.HashBlock(last)
	if err != nil {
		l.mu.Unlock()
		return nil, false
	}

	mempoolSnapshot := make([]vote.Vote, len(l.mempool))
	copy(mempoolSnapshot, l.mempool)

	var proof uint64
	for {
		if ok, _ := verify.ValidProof(mempoolSnapshot, lastHash, proof); ok {
			break
		}
		proof++
	}

	if !verify.VerifyVotes(mempoolSnapshot, l.balanceLocked) {
		l.mu.Unlock()
		return nil, false
	}

	votes := append(mempoolSnapshot, vote.NewMiningVote(l.publicKey))
	mined := block.New(len(l.chain), lastHash, votes, proof)
	l.chain = append(l.chain, mined)
	l.mempool = nil
	peers := l.peerListLocked()
	election := l.electionID
	l.saveLocked()
	l.mu.Unlock()

	if l.gateway != nil {
		if needsResolve := l.gateway.BroadcastBlock(context.Background(), peers, election, mined); needsResolve {
			l.mu.Lock()
			l.needsResolve = true
			l.mu.Unlock()
		}
	}
	return mined, true
}

// AddBlock accepts a block proposed by a peer (via /broadcast-block). It
// rejects blocks that don't chain onto the current tip or whose proof does
// not verify, and otherwise reconciles the mempool against the block's
// votes.
func (l *Ledger) AddBlock(b *block.Block) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	last := l.chain[len(l.chain)-1]
	lastHash, err := votehash.HashBlock(last)
	if err != nil || b.PreviousHash != lastHash {
		return false
	}
	if ok, _ := verify.ValidProof(b.VotesExcludingCoinbase(), b.PreviousHash, b.Proof); !ok {
		return false
	}

	l.chain = append(l.chain, b)
	l.removeMinedVotesLocked(b.Votes)
	l.saveLocked()
	return true
}

// removeMinedVotesLocked drops every mempool entry that matches (by full
// field equality) a vote now confirmed in b's votes. A missing match is
// tolerated — another peer-induced removal may have already raced it out.
func (l *Ledger) removeMinedVotesLocked(confirmed []vote.Vote) {
	if len(l.mempool) == 0 {
		return
	}
	kept := l.mempool[:0:0]
	for _, pending := range l.mempool {
		matched := false
		for _, c := range confirmed {
			if pending.Equal(c) {
				matched = true
				break
			}
		}
		if !matched {
			kept = append(kept, pending)
		}
	}
	l.mempool = kept
}

// Resolve polls every peer's chain for electionID and adopts the longest
// one that is strictly longer than the local chain and passes full chain
// validation; among equally long candidates the first polled wins. Ties
// with the local chain keep the local chain. needsResolve is always cleared at
// the end of a resolve pass, whether or not a replacement occurred.
func (l *Ledger) Resolve(ctx context.Context) bool {
	l.mu.Lock()
	peers := l.peerListLocked()
	localLen := len(l.chain)
	election := l.electionID
	gateway := l.gateway
	l.mu.Unlock()

	var winner []*block.Block
	maxLen := localLen
	if gateway != nil {
		for _, p := range peers {
			chain, err := gateway.FetchChain(ctx, p, election)
			if err != nil {
				continue
			}
			if len(chain) > maxLen && verify.VerifyChain(chain) {
				winner = chain
				maxLen = len(chain)
			}
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.needsResolve = false
	if winner == nil {
		return false
	}
	l.chain = winner
	l.mempool = nil
	l.saveLocked()
	return true
}

// Balance reports voter's balance: received amounts from confirmed blocks
// minus sent amounts across chain and mempool (pending outflow counts
// immediately to prevent double-spend; pending income never does).
func (l *Ledger) Balance(voter string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceLocked(voter)
}

// OwnBalance is a convenience for this node's own miner key.
func (l *Ledger) OwnBalance() int64 {
	return l.Balance(l.publicKey)
}

func (l *Ledger) balanceLocked(participant string) int64 {
	var sent, received int64
	for _, b := range l.chain {
		for _, v := range b.Votes {
			if v.Voter == participant {
				sent += v.Amount
			}
			if v.Candidate == participant {
				received += v.Amount
			}
		}
	}
	for _, v := range l.mempool {
		if v.Voter == participant {
			sent += v.Amount
		}
	}
	return received - sent
}

// TotalMines sums the mining reward confirmed votes credited to voter.
func (l *Ledger) TotalMines(voter string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var total int64
	for _, b := range l.chain {
		for _, v := range b.Votes {
			if v.IsMining() && v.Candidate == voter {
				total += v.Amount
			}
		}
	}
	return total
}

// Results sums confirmed, non-coinbase vote amounts targeting candidate.
func (l *Ledger) Results(candidate string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var total int64
	for _, b := range l.chain {
		for _, v := range b.Votes {
			if !v.IsMining() && v.Candidate == candidate {
				total += v.Amount
			}
		}
	}
	return total
}

// ResultsVoters lists the voters behind confirmed, non-coinbase votes
// targeting candidate, in chain order.
func (l *Ledger) ResultsVoters(candidate string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var voters []string
	for _, b := range l.chain {
		for _, v := range b.Votes {
			if !v.IsMining() && v.Candidate == candidate {
				voters = append(voters, v.Voter)
			}
		}
	}
	return voters
}

// HasVoted reports whether voter has any recorded sent vote across chain
// and mempool.
func (l *Ledger) HasVoted(voter string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasVotedLocked(voter)
}

func (l *Ledger) hasVotedLocked(voter string) bool {
	for _, b := range l.chain {
		for _, v := range b.Votes {
			if !v.IsMining() && v.Voter == voter {
				return true
			}
		}
	}
	for _, v := range l.mempool {
		if v.Voter == voter {
			return true
		}
	}
	return false
}

// Chain returns a deep-enough copy of the chain safe to hand to callers
// outside the lock.
func (l *Ledger) Chain() []*block.Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*block.Block, len(l.chain))
	for i, b := range l.chain {
		out[i] = b.Clone()
	}
	return out
}

// Mempool returns a copy of the pending vote list.
func (l *Ledger) Mempool() []vote.Vote {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]vote.Vote, len(l.mempool))
	copy(out, l.mempool)
	return out
}

// AddPeer registers a peer base URL and returns the resulting peer list.
func (l *Ledger) AddPeer(url string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.peers[url] = struct{}{}
	l.saveLocked()
	return l.peerListLocked()
}

// RemovePeer drops a peer base URL, if present.
func (l *Ledger) RemovePeer(url string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.peers, url)
	l.saveLocked()
}

// Peers returns the current peer list, sorted for stable output.
func (l *Ledger) Peers() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.peerListLocked()
}

func (l *Ledger) peerListLocked() []string {
	out := make([]string, 0, len(l.peers))
	for p := range l.peers {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// NeedsResolve reports whether a peer has advertised a conflicting or
// longer chain since the last resolve pass.
func (l *Ledger) NeedsResolve() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.needsResolve
}

// MarkNeedsResolve flags the ledger for conflict resolution. The HTTP
// adapter calls this when a peer-proposed block via /broadcast-block
// carries an index other than the local chain's next index — a sign the
// peer is ahead or has diverged. The block itself is not validated first.
func (l *Ledger) MarkNeedsResolve() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.needsResolve = true
}

// Height returns the current chain length, for the HTTP adapter to decide
// whether a proposed block lands on the expected next index.
func (l *Ledger) Height() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.chain)
}

func (l *Ledger) saveLocked() {
	if l.dataDir == "" {
		return
	}
	path := snapshotPath(l.dataDir, l.nodeID, l.electionID)
	if err := saveSnapshot(path, l.chain, l.mempool, l.peerListLocked()); err != nil {
		logger.Warn("ledger snapshot save failed", "election", l.electionID, "err", err)
	}
}
