package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New("node-test", "", nil)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateKeysAndBallotLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/generateKeys", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var keys generateKeysResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &keys))
	require.NotEmpty(t, keys.PublicKey)
	require.NotEmpty(t, keys.PrivateKey)

	rec = doJSON(t, s, http.MethodGet, "/ballot", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var loaded generateKeysResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loaded))
	require.NotEmpty(t, loaded.PublicKey)

	rec = doJSON(t, s, http.MethodGet, "/ballot", nil)
	var reloaded generateKeysResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reloaded))
	require.Equal(t, loaded.PublicKey, reloaded.PublicKey)
}

func TestCreateElectionRequiresBallotFirst(t *testing.T) {
	s := newTestServer(t)
	id := 1
	rec := doJSON(t, s, http.MethodPost, "/create-election",
		createElectionRequest{ID: &id, Description: "test election"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	doJSON(t, s, http.MethodPost, "/ballot", nil)
	rec = doJSON(t, s, http.MethodPost, "/create-election",
		createElectionRequest{ID: &id, Description: "test election"})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestElectionExistsProbe(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/ballot", nil)
	id := 5
	doJSON(t, s, http.MethodPost, "/create-election", createElectionRequest{ID: &id, Description: "d"})

	rec := doJSON(t, s, http.MethodGet, "/election?election=5", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp electionPresenceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Election)

	rec = doJSON(t, s, http.MethodGet, "/election?election=999", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Election)
}

func TestVoteAndMineAndBalance(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/ballot", nil)
	id := 1
	doJSON(t, s, http.MethodPost, "/create-election", createElectionRequest{ID: &id, Description: "d"})

	rec := doJSON(t, s, http.MethodPost, "/generateKeys", nil)
	var voterKeys generateKeysResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &voterKeys))

	rec = doJSON(t, s, http.MethodPost, "/vote", voteRequest{
		Candidate:       "candidate-x",
		VoterPublicKey:  voterKeys.PublicKey,
		VoterPrivateKey: voterKeys.PrivateKey,
		Election:        &id,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/mine", mineRequest{Election: &id})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/results", candidateRequest{Candidate: "candidate-x", Election: &id})
	require.Equal(t, http.StatusOK, rec.Code)
	var results resultsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Equal(t, int64(1), results.Votes)

	rec = doJSON(t, s, http.MethodPost, "/balance", balanceRequest{Election: &id, Voter: "candidate-x"})
	var bal balanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bal))
	require.Equal(t, int64(1), bal.Funds)
}

func TestVoteRejectsSecondVoteFromSameVoter(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/ballot", nil)
	id := 1
	doJSON(t, s, http.MethodPost, "/create-election", createElectionRequest{ID: &id, Description: "d"})

	rec := doJSON(t, s, http.MethodPost, "/generateKeys", nil)
	var voterKeys generateKeysResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &voterKeys))

	voteBody := voteRequest{
		Candidate:       "candidate-x",
		VoterPublicKey:  voterKeys.PublicKey,
		VoterPrivateKey: voterKeys.PrivateKey,
		Election:        &id,
	}
	rec = doJSON(t, s, http.MethodPost, "/vote", voteBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	voteBody.Candidate = "candidate-y"
	rec = doJSON(t, s, http.MethodPost, "/vote", voteBody)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChainAndNodesRoutes(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/ballot", nil)
	id := 1
	doJSON(t, s, http.MethodPost, "/create-election", createElectionRequest{ID: &id, Description: "d"})

	rec := doJSON(t, s, http.MethodGet, "/chain?election=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/node", addNodeRequest{Election: &id, Node: "http://peer-1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var nodes nodesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nodes))
	require.Equal(t, []string{"http://peer-1"}, nodes.AllNodes)

	rec = doJSON(t, s, http.MethodGet, "/nodes?election=1", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/node?election=1&node_url=http://peer-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
