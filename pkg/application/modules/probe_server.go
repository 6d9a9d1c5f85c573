package modules

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"buyback/pkg/probe"
)

// ProbeServer отдаёт /healthz и /ready. Ready проверяет зависимости из Checks.
type ProbeServer struct {
	Name          string
	Version       string
	ListenAddress string
	Checks        map[string]probe.Check
	CheckTimeout  time.Duration
}

func (p ProbeServer) Run(ctx context.Context, g *errgroup.Group) {
	probeServer := probe.NewServer(
		p.ListenAddress,
		probe.Options{
			Name:         p.Name,
			Version:      p.Version,
			Checks:       p.Checks,
			CheckTimeout: p.CheckTimeout,
		},
	)

	g.Go(func() error {
		if err := probeServer.Run(ctx); err != nil {
			return fmt.Errorf("probeServer.Run: %w", err)
		}

		return nil
	})
}
