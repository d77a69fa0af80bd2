package prefetch

import (
	"context"
	"fmt"

	"github.com/drakos74/free-prefetch/internal/model"
	"github.com/drakos74/free-prefetch/internal/storage"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Sweep runs the given configs against the same space, at most limit at a time.
// Every run owns its clusterer, the space is only read.
// The reports are returned in the order of the configs.
func Sweep(ctx context.Context, space *model.Space, cfgs []Config, store storage.Persistence, limit int) ([]Report, error) {
	reports := make([]Report, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, cfg := range cfgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, _, err := Run(cfg, space, store)
			if err != nil {
				return fmt.Errorf("run %d (%s) failed: %w", i, cfg.Algorithm, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Int("runs", len(reports)).Msg("sweep complete")
	return reports, nil
}

// Best returns the report with the highest hit rate plus accuracy.
// Reports with undefined metrics are ignored.
func Best(reports []Report) (Report, bool) {
	var best Report
	found := false
	for _, r := range reports {
		if !r.Performance.Defined() {
			continue
		}
		if !found || r.Performance.Sum() > best.Performance.Sum() {
			best = r
			found = true
		}
	}
	return best, found
}
