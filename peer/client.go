// Package peer implements gossip to a ledger's configured peer set: a
// fire-and-forget JSON client where one peer's failure never blocks or
// fails another's, modeled on the node's own RPC client construction
// (bounded http.Client, one call per remote operation) but fanning the
// broadcast calls out concurrently instead of serially.
package peer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/equa/votenode/block"
	"github.com/equa/votenode/internal/logger"
	"github.com/equa/votenode/vote"
)

const defaultTimeout = 5 * time.Second

// Client is the Gateway implementation ledgers use to talk to peers.
type Client struct {
	http *http.Client
}

// New returns a Client whose requests are bounded by timeout. timeout <= 0
// falls back to defaultTimeout — the source is unbounded, a defect this
// module doesn't repeat.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// BroadcastVote POSTs v to every peer's /broadcast-vote concurrently.
// Connection errors are logged and skipped; any peer responding 4xx/5xx
// makes rejected true.
func (c *Client) BroadcastVote(ctx context.Context, peers []string, election int, v vote.Vote) (rejected bool) {
	body := map[string]any{
		"election":  election,
		"voter":     v.Voter,
		"candidate": v.Candidate,
		"amount":    v.Amount,
		"signature": v.Signature,
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([]bool, len(peers))
	for i, p := range peers {
		i, p := i, p
		g.Go(func() error {
			status, err := c.postJSON(ctx, p+"/broadcast-vote", body)
			if err != nil {
				logger.Warn("peer unreachable, skipping", "peer", p, "err", err)
				return nil
			}
			results[i] = status >= 400
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r {
			rejected = true
		}
	}
	return rejected
}

// BroadcastBlock POSTs b to every peer's /broadcast-block concurrently. A
// 409 from any peer (meaning that peer saw a fork) makes needsResolve true.
func (c *Client) BroadcastBlock(ctx context.Context, peers []string, election int, b *block.Block) (needsResolve bool) {
	body := map[string]any{
		"election": election,
		"block":    b,
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([]bool, len(peers))
	for i, p := range peers {
		i, p := i, p
		g.Go(func() error {
			status, err := c.postJSON(ctx, p+"/broadcast-block", body)
			if err != nil {
				logger.Warn("peer unreachable, skipping", "peer", p, "err", err)
				return nil
			}
			results[i] = status == http.StatusConflict
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r {
			needsResolve = true
		}
	}
	return needsResolve
}

// FetchChain GETs peerURL's view of election's chain.
func (c *Client) FetchChain(ctx context.Context, peerURL string, election int) ([]*block.Block, error) {
	url := fmt.Sprintf("%s/chain?election=%d", peerURL, election)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("peer %s: status %d", peerURL, resp.StatusCode)
	}

	var chain []*block.Block
	if err := json.NewDecoder(resp.Body).Decode(&chain); err != nil {
		return nil, fmt.Errorf("decode chain from %s: %w", peerURL, err)
	}
	return chain, nil
}

// postJSON POSTs body as JSON to url and returns the response status code.
func (c *Client) postJSON(ctx context.Context, url string, body any) (int, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
