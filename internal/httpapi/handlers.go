package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/equa/votenode/ballot"
	"github.com/equa/votenode/block"
	"github.com/equa/votenode/vote"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeMessage(w, http.StatusOK, "Server Running Correctly!")
}

func (s *Server) handleGenerateKeys(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	priv, pub, err := ballot.GenerateKeys()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "key generation failed")
		return
	}
	writeJSON(w, http.StatusCreated, generateKeysResponse{PublicKey: pub, PrivateKey: priv})
}

// handleCreateBallot creates this node's own process-wide keypair and
// returns it. Calling it again replaces the previous keypair, matching
// the original's create-or-overwrite semantics for POST /ballot.
func (s *Server) handleCreateBallot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	b := ballot.New(s.nodeID)
	if err := b.CreateKeys(); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create ballot")
		return
	}
	s.ballotMu.Lock()
	s.ballot = b
	s.ballotMu.Unlock()
	writeJSON(w, http.StatusCreated, generateKeysResponse{PublicKey: b.PublicKey, PrivateKey: b.PrivateKey})
}

// handleLoadBallot returns the existing process-wide ballot. If none has
// been created yet it creates one, mirroring the original's "load or
// create" GET /ballot behavior.
func (s *Server) handleLoadBallot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.ballotMu.Lock()
	b := s.ballot
	s.ballotMu.Unlock()
	if b == nil {
		s.handleCreateBallot(w, r, nil)
		return
	}
	writeJSON(w, http.StatusCreated, generateKeysResponse{PublicKey: b.PublicKey, PrivateKey: b.PrivateKey})
}

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createElectionRequest
	if !decodeBody(r, &req) || req.ID == nil || req.Description == "" {
		writeMessage(w, http.StatusBadRequest, "missing id or description")
		return
	}
	publicKey, ok := s.currentBallot()
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "no ballot configured for this node")
		return
	}
	s.registry.CreateElection(*req.ID, req.Description, publicKey)
	writeMessage(w, http.StatusCreated, "election created")
}

func (s *Server) handleElectionExists(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, ok := parseElectionQuery(r.URL.Query().Get("election"))
	if !ok {
		writeJSON(w, http.StatusCreated, electionPresenceResponse{Election: 0})
		return
	}
	present := 0
	if s.registry.Exists(id) {
		present = 1
	}
	writeJSON(w, http.StatusCreated, electionPresenceResponse{Election: present})
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req voteRequest
	if !decodeBody(r, &req) || req.Election == nil || req.Candidate == "" ||
		req.VoterPublicKey == "" || req.VoterPrivateKey == "" {
		writeMessage(w, http.StatusBadRequest, "missing vote fields")
		return
	}
	l, ok := s.lookupElection(w, req.Election)
	if !ok {
		return
	}

	const amount = 1
	signature, err := ballot.SignVote(req.VoterPublicKey, req.VoterPrivateKey, req.Candidate, amount)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to sign vote")
		return
	}

	admitted, v := l.AddVote(req.Candidate, req.VoterPublicKey, signature, amount, false)
	if !admitted {
		writeMessage(w, http.StatusBadRequest, "already voted or vote rejected")
		return
	}
	writeJSON(w, http.StatusCreated, voteResponse{Vote: v, Funds: l.Balance(req.VoterPublicKey)})
}

func (s *Server) handleBroadcastVote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req broadcastVoteRequest
	if !decodeBody(r, &req) || req.Election == nil || req.Voter == "" || req.Candidate == "" {
		writeMessage(w, http.StatusBadRequest, "missing broadcast-vote fields")
		return
	}
	l, ok := s.lookupElection(w, req.Election)
	if !ok {
		return
	}
	admitted, _ := l.AddVote(req.Candidate, req.Voter, req.Signature, req.Amount, true)
	if !admitted {
		writeMessage(w, http.StatusBadRequest, "vote rejected")
		return
	}
	writeMessage(w, http.StatusCreated, "vote received")
}

func (s *Server) handleMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req mineRequest
	if !decodeBody(r, &req) {
		writeMessage(w, http.StatusBadRequest, "missing election id")
		return
	}
	l, ok := s.lookupElection(w, req.Election)
	if !ok {
		return
	}
	if l.NeedsResolve() {
		writeMessage(w, http.StatusConflict, "chain needs resolving before mining")
		return
	}
	mined, ok := l.MineBlock()
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "mining failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"block": mined})
}

func (s *Server) handleBroadcastBlock(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req broadcastBlockRequest
	if !decodeBody(r, &req) || req.Election == nil {
		writeMessage(w, http.StatusBadRequest, "missing broadcast-block fields")
		return
	}
	l, ok := s.lookupElection(w, req.Election)
	if !ok {
		return
	}

	proposed := &block.Block{
		Index:        req.Block.Index,
		PreviousHash: req.Block.PreviousHash,
		Timestamp:    req.Block.Timestamp,
		Votes:        req.Block.Votes,
		Proof:        req.Block.Proof,
	}

	if proposed.Index != l.Height() {
		l.MarkNeedsResolve()
		writeMessage(w, http.StatusOK, "differs")
		return
	}
	if !l.AddBlock(proposed) {
		writeMessage(w, http.StatusConflict, "invalid or shorter block")
		return
	}
	writeMessage(w, http.StatusCreated, "block added")
}

func (s *Server) handleResolveConflicts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req resolveRequest
	if !decodeBody(r, &req) {
		writeMessage(w, http.StatusBadRequest, "missing election id")
		return
	}
	l, ok := s.lookupElection(w, req.Election)
	if !ok {
		return
	}
	if l.Resolve(r.Context()) {
		writeMessage(w, http.StatusOK, "chain replaced")
		return
	}
	writeMessage(w, http.StatusOK, "chain kept (authoritative)")
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, ok := parseElectionQuery(r.URL.Query().Get("election"))
	if !ok {
		writeMessage(w, http.StatusBadRequest, "missing election id")
		return
	}
	l, ok := s.registry.Get(id)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "unknown election")
		return
	}
	writeJSON(w, http.StatusOK, l.Chain())
}

func (s *Server) handleVotes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req votesOnlyRequest
	if !decodeBody(r, &req) {
		writeMessage(w, http.StatusBadRequest, "missing election id")
		return
	}
	l, ok := s.lookupElection(w, req.Election)
	if !ok {
		return
	}
	mempool := l.Mempool()
	if mempool == nil {
		mempool = []vote.Vote{}
	}
	writeJSON(w, http.StatusOK, mempool)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req balanceRequest
	if !decodeBody(r, &req) {
		writeMessage(w, http.StatusBadRequest, "missing election id")
		return
	}
	l, ok := s.lookupElection(w, req.Election)
	if !ok {
		return
	}
	if req.Voter != "" {
		writeJSON(w, http.StatusOK, balanceResponse{Funds: l.Balance(req.Voter)})
		return
	}
	publicKey, ok := s.currentBallot()
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "no ballot configured for this node")
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Funds: l.Balance(publicKey)})
}

func (s *Server) handleVoteEligibility(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req balanceRequest
	if !decodeBody(r, &req) {
		writeMessage(w, http.StatusBadRequest, "missing election id")
		return
	}
	l, ok := s.lookupElection(w, req.Election)
	if !ok {
		return
	}
	voter := req.Voter
	if voter == "" {
		publicKey, ok := s.currentBallot()
		if !ok {
			writeMessage(w, http.StatusInternalServerError, "no ballot configured for this node")
			return
		}
		voter = publicKey
	}
	writeJSON(w, http.StatusOK, voteEligibilityResponse{IsVote: l.HasVoted(voter)})
}

func (s *Server) handleTotalMines(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req totalMinesRequest
	if !decodeBody(r, &req) {
		writeMessage(w, http.StatusBadRequest, "missing election id")
		return
	}
	l, ok := s.lookupElection(w, req.Election)
	if !ok {
		return
	}
	publicKey, ok := s.currentBallot()
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "no ballot configured for this node")
		return
	}
	writeJSON(w, http.StatusOK, totalMinesResponse{AmountMined: l.TotalMines(publicKey)})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req candidateRequest
	if !decodeBody(r, &req) || req.Candidate == "" {
		writeMessage(w, http.StatusBadRequest, "missing candidate")
		return
	}
	l, ok := s.lookupElection(w, req.Election)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, resultsResponse{Votes: l.Results(req.Candidate)})
}

func (s *Server) handleResultsVoters(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req candidateRequest
	if !decodeBody(r, &req) || req.Candidate == "" {
		writeMessage(w, http.StatusBadRequest, "missing candidate")
		return
	}
	l, ok := s.lookupElection(w, req.Election)
	if !ok {
		return
	}
	voters := l.ResultsVoters(req.Candidate)
	if voters == nil {
		voters = []string{}
	}
	writeJSON(w, http.StatusOK, resultsVotersResponse{Voters: voters})
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req addNodeRequest
	if !decodeBody(r, &req) || req.Node == "" {
		writeMessage(w, http.StatusBadRequest, "missing node url")
		return
	}
	l, ok := s.lookupElection(w, req.Election)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, nodesResponse{AllNodes: l.AddPeer(req.Node)})
}

// handleRemoveNode takes election and node_url as query parameters, not a
// JSON body — preserved from the original implementation exactly.
func (s *Server) handleRemoveNode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, ok := parseElectionQuery(r.URL.Query().Get("election"))
	nodeURL := r.URL.Query().Get("node_url")
	if !ok || nodeURL == "" {
		writeMessage(w, http.StatusBadRequest, "missing election or node_url")
		return
	}
	l, ok := s.registry.Get(id)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "unknown election")
		return
	}
	l.RemovePeer(nodeURL)
	writeMessage(w, http.StatusOK, "node removed")
}

func (s *Server) handleListNodes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, ok := parseElectionQuery(r.URL.Query().Get("election"))
	if !ok {
		writeMessage(w, http.StatusBadRequest, "missing election id")
		return
	}
	l, ok := s.registry.Get(id)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "unknown election")
		return
	}
	writeJSON(w, http.StatusCreated, nodesResponse{AllNodes: l.Peers()})
}
