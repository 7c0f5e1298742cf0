// Package registry maps election ids to their Ledger, the process-wide
// mutable state every HTTP handler looks an election up through. It is
// guarded by its own lock, distinct from any per-ledger lock.
package registry

import (
	"sync"

	"github.com/equa/votenode/ledger"
)

// Registry owns every election this node hosts.
type Registry struct {
	mu        sync.Mutex
	nodeID    string
	dataDir   string
	gateway   ledger.Gateway
	elections map[int]*ledger.Ledger
}

// New returns an empty registry scoped to nodeID. dataDir is passed through
// to every ledger it creates for snapshot persistence; gateway is passed
// through for peer replication.
func New(nodeID, dataDir string, gateway ledger.Gateway) *Registry {
	return &Registry{
		nodeID:    nodeID,
		dataDir:   dataDir,
		gateway:   gateway,
		elections: make(map[int]*ledger.Ledger),
	}
}

// CreateElection creates (or, if a snapshot already exists on disk,
// reloads) the ledger for electionID with the given description and this
// node's public key as miner. It is idempotent: calling it again for an
// id that already exists returns the existing ledger unchanged.
func (r *Registry) CreateElection(electionID int, description, publicKey string) *ledger.Ledger {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.elections[electionID]; ok {
		return l
	}
	l := ledger.New(r.nodeID, electionID, description, publicKey, r.dataDir, r.gateway)
	r.elections[electionID] = l
	return l
}

// Get returns the ledger for electionID, or (nil, false) if no election
// with that id has been created on this node.
func (r *Registry) Get(electionID int) (*ledger.Ledger, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.elections[electionID]
	return l, ok
}

// Exists reports whether electionID has been created, for the presence
// probe GET /election?election=<id> surfaces.
func (r *Registry) Exists(electionID int) bool {
	_, ok := r.Get(electionID)
	return ok
}
