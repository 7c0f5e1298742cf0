package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/equa/votenode/block"
	"github.com/equa/votenode/vote"
)

// snapshotPath returns the flat file a ledger's state is persisted to: one
// file per (nodeID, electionID) pair, as required by the snapshot format.
func snapshotPath(dataDir, nodeID string, electionID int) string {
	return filepath.Join(dataDir, fmt.Sprintf("%s-election-%d.snapshot", nodeID, electionID))
}

// saveSnapshot writes the three-line snapshot: blocks, mempool votes, peer
// URLs, each a JSON array on its own line.
func saveSnapshot(path string, chain []*block.Block, mempool []vote.Vote, peers []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot create: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, v := range []any{chain, mempool, peers} {
		line, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("snapshot marshal: %w", err)
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("snapshot write: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

// loadSnapshot reads the three-line format back. It is best-effort: any
// read or parse failure returns an error and the caller keeps its defaults
// (genesis-only chain, empty mempool and peers) rather than failing startup.
func loadSnapshot(path string) (chain []*block.Block, mempool []vote.Vote, peers []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lines := make([][]byte, 0, 3)
	for scanner.Scan() {
		line := make([]byte, len(scanner.Bytes()))
		copy(line, scanner.Bytes())
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, err
	}
	if len(lines) < 3 {
		return nil, nil, nil, fmt.Errorf("snapshot %s: expected 3 lines, got %d", path, len(lines))
	}

	if err := json.Unmarshal(lines[0], &chain); err != nil {
		return nil, nil, nil, fmt.Errorf("snapshot chain: %w", err)
	}
	if err := json.Unmarshal(lines[1], &mempool); err != nil {
		return nil, nil, nil, fmt.Errorf("snapshot mempool: %w", err)
	}
	if err := json.Unmarshal(lines[2], &peers); err != nil {
		return nil, nil, nil, fmt.Errorf("snapshot peers: %w", err)
	}
	return chain, mempool, peers, nil
}
