// Package httpapi is the adapter layer: it shapes JSON requests/responses
// and status codes over the core ledger/registry operations. Nothing in
// here participates in consensus or persistence decisions — it only
// translates.
package httpapi

import (
	"net/http"
	"sync"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/equa/votenode/ballot"
	"github.com/equa/votenode/ledger"
	"github.com/equa/votenode/registry"
)

// Server wires a Registry and this node's own process-wide Ballot behind
// an httprouter.Router, with permissive CORS (the spec treats CORS as
// adapter behavior, not a security boundary — see the module's
// non-goals on transport security).
type Server struct {
	nodeID string

	ballotMu sync.Mutex
	ballot   *ballot.Ballot

	registry *registry.Registry
	router   *httprouter.Router
}

// New builds a Server for nodeID, persisting election snapshots under
// dataDir (dataDir == "" disables persistence) and replicating through
// gateway (nil disables peer replication, useful for single-node runs
// and tests).
func New(nodeID, dataDir string, gateway ledger.Gateway) *Server {
	s := &Server{
		nodeID:   nodeID,
		registry: registry.New(nodeID, dataDir, gateway),
	}
	s.router = httprouter.New()
	s.routes()
	return s
}

// Handler returns the CORS-wrapped http.Handler to pass to http.ListenAndServe.
func (s *Server) Handler() http.Handler {
	return cors.AllowAll().Handler(s.router)
}
