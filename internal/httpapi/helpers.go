package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/equa/votenode/ledger"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func decodeBody(r *http.Request, dst any) bool {
	if r.Body == nil {
		return false
	}
	return json.NewDecoder(r.Body).Decode(dst) == nil
}

func parseElectionQuery(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	return id, err == nil
}

// lookupElection resolves an election id to its ledger, writing a 400 and
// returning ok=false if the field is absent or the election is unknown.
func (s *Server) lookupElection(w http.ResponseWriter, electionID *int) (*ledger.Ledger, bool) {
	if electionID == nil {
		writeMessage(w, http.StatusBadRequest, "missing election id")
		return nil, false
	}
	l, ok := s.registry.Get(*electionID)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "unknown election")
		return nil, false
	}
	return l, true
}

// currentBallot returns the public key of the server's process-wide
// ballot, or ok=false if one hasn't been created yet via POST/GET /ballot.
func (s *Server) currentBallot() (publicKey string, ok bool) {
	s.ballotMu.Lock()
	defer s.ballotMu.Unlock()
	if s.ballot == nil {
		return "", false
	}
	return s.ballot.PublicKey, true
}
