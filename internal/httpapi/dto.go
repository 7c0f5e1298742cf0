package httpapi

import "github.com/equa/votenode/vote"

// messageResponse is the shape every non-payload-bearing response uses.
type messageResponse struct {
	Message string `json:"message"`
}

type generateKeysResponse struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

type createElectionRequest struct {
	ID          *int   `json:"id"`
	Description string `json:"description"`
}

type electionPresenceResponse struct {
	Election int `json:"election"`
}

type voteRequest struct {
	Candidate       string `json:"candidate"`
	VoterPublicKey  string `json:"voter_public_key"`
	VoterPrivateKey string `json:"voter_private_key"`
	Election        *int   `json:"election"`
}

type voteResponse struct {
	Vote  vote.Vote `json:"vote"`
	Funds int64     `json:"funds"`
}

type broadcastVoteRequest struct {
	Election  *int   `json:"election"`
	Voter     string `json:"voter"`
	Candidate string `json:"candidate"`
	Amount    int64  `json:"amount"`
	Signature string `json:"signature"`
}

type mineRequest struct {
	Election *int `json:"election"`
}

type broadcastBlockRequest struct {
	Election *int         `json:"election"`
	Block    blockWireDTO `json:"block"`
}

// blockWireDTO mirrors block.Block's JSON shape field for field, so it
// decodes exactly as block.Block would: a mistyped field fails the decode,
// and an absent field is left at its zero value.
type blockWireDTO struct {
	Index        int         `json:"index"`
	PreviousHash string      `json:"previous_hash"`
	Timestamp    int64       `json:"timestamp"`
	Votes        []vote.Vote `json:"votes"`
	Proof        uint64      `json:"proof"`
}

type resolveRequest struct {
	Election *int `json:"election"`
}

type votesOnlyRequest struct {
	Election *int `json:"election"`
}

type balanceRequest struct {
	Election *int   `json:"election"`
	Voter    string `json:"voter"`
}

type balanceResponse struct {
	Funds int64 `json:"funds"`
}

type voteEligibilityResponse struct {
	IsVote bool `json:"isVote"`
}

type totalMinesRequest struct {
	Election *int `json:"election"`
}

type totalMinesResponse struct {
	AmountMined int64 `json:"amount_mined"`
}

type candidateRequest struct {
	Candidate string `json:"candidate"`
	Election  *int   `json:"election"`
}

type resultsResponse struct {
	Votes int64 `json:"Votes"`
}

type resultsVotersResponse struct {
	Voters []string `json:"Voters"`
}

type addNodeRequest struct {
	Election *int   `json:"election"`
	Node     string `json:"node"`
}

type nodesResponse struct {
	AllNodes []string `json:"all_nodes"`
}
