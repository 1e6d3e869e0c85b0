package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/simlab/internal/dynamo"
)

// Trial is one simulator in a comparison, labelled by its integrator.
type Trial struct {
	Name string
	Sim  *Simulator
}

// Compare runs every trial from the same initial state concurrently. The
// trials must not share metrics or mutable systems. Results come back in
// trial order; the first error cancels the rest.
func Compare(ctx context.Context, trials []Trial, x0 dynamo.State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(trials))
	g, ctx := errgroup.WithContext(ctx)
	for i, tr := range trials {
		g.Go(func() error {
			res, err := tr.Sim.Run(ctx, x0, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
