// votenode runs a single node of the voting ledger: an HTTP server over
// one or more elections, replicating votes and blocks to a configured
// peer set.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/equa/votenode/internal/httpapi"
	"github.com/equa/votenode/internal/logger"
	"github.com/equa/votenode/params"
	"github.com/equa/votenode/peer"
)

func main() {
	app := &cli.App{
		Name:  "votenode",
		Usage: "run a peer-replicated voting ledger node",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: params.DefaultPort, Usage: "listen port"},
			&cli.StringFlag{Name: "peers", Usage: "comma-separated seed peer base URLs"},
			&cli.StringFlag{Name: "data-dir", Usage: "directory for election snapshots (empty disables persistence)"},
			&cli.DurationFlag{Name: "peer-timeout", Value: 5 * time.Second, Usage: "per-peer HTTP timeout"},
			&cli.StringFlag{Name: "node-id", Usage: "this node's id, for snapshot filenames (defaults to hostname)"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		logger.Crit("votenode exited", "err", err)
	}
}

func run(c *cli.Context) error {
	nodeID := c.String("node-id")
	if nodeID == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "node"
		}
		nodeID = host
	}

	client := peer.New(c.Duration("peer-timeout"))
	server := httpapi.New(nodeID, c.String("data-dir"), client)

	addr := fmt.Sprintf("0.0.0.0:%d", c.Int("port"))
	httpServer := &http.Server{Addr: addr, Handler: server.Handler()}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("votenode listening", "addr", addr, "node_id", nodeID)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	seedPeers(server, c.String("peers"))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	statsTicker := time.NewTicker(30 * time.Second)
	defer statsTicker.Stop()

	for {
		select {
		case err := <-errCh:
			return err
		case <-sigCh:
			logger.Info("votenode received shutdown signal")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(ctx)
		case <-statsTicker.C:
			logger.Info("votenode heartbeat")
		}
	}
}

// seedPeers parses a comma-separated peer list and logs each entry. The
// peers are not added to any election's peer set: per-election peer sets
// are populated only via /node once the election exists.
func seedPeers(server *httpapi.Server, raw string) {
	if raw == "" {
		return
	}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		logger.Info("seed peer configured", "peer", p)
	}
}
