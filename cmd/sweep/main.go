package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/drakos74/free-prefetch/infra/config"
	coinmath "github.com/drakos74/free-prefetch/internal/math"
	"github.com/drakos74/free-prefetch/internal/math/ml"
	"github.com/drakos74/free-prefetch/internal/prefetch"
	"github.com/drakos74/free-prefetch/internal/storage"
	"github.com/drakos74/free-prefetch/internal/storage/file/json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// configs expands the base config into k-means runs for k in [1, K]
// and kohonen runs for sizes in [1, Size].
func configs(base prefetch.Config) []prefetch.Config {
	cfgs := make([]prefetch.Config, 0, base.KMeans.K+base.Kohonen.Size)
	for k := 1; k <= base.KMeans.K; k++ {
		cfg := base
		cfg.Algorithm = ml.KMeansName
		cfg.KMeans.K = k
		cfgs = append(cfgs, cfg)
	}
	for size := 1; size <= base.Kohonen.Size; size++ {
		cfg := base
		cfg.Algorithm = ml.KohonenName
		cfg.Kohonen.Size = size
		cfgs = append(cfgs, cfg)
	}
	return cfgs
}

func main() {
	var base prefetch.Config
	config.MustLoad("prefetch", &base)
	base = base.WithDefaults()

	data, err := json.BlobShard(storage.DataDir)(base.Name)
	if err != nil {
		log.Fatal().Err(err).Str("table", storage.DataDir).Msg("could not open storage")
	}
	space, err := prefetch.LoadSpace(data, base.Name, base.Dim)
	if err != nil {
		log.Fatal().Err(err).Str("name", base.Name).Msg("could not load vector space")
	}

	// keep the sweep reports in memory, only the best one is persisted
	local, err := json.LocalShard()(base.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open local storage")
	}
	reports, err := prefetch.Sweep(context.Background(), space, configs(base), local, runtime.NumCPU())
	if err != nil {
		log.Fatal().Err(err).Msg("sweep failed")
	}

	for _, r := range reports {
		size := r.Config.KMeans.K
		if r.Config.Algorithm == ml.KohonenName {
			size = r.Config.Kohonen.Size
		}
		fmt.Printf("%-8s %3d | hitrate = %s | accuracy = %s | converged = %v\n",
			r.Config.Algorithm, size,
			coinmath.Format(r.Performance.HitRate),
			coinmath.Format(r.Performance.Accuracy),
			r.Converged)
	}

	best, ok := prefetch.Best(reports)
	if !ok {
		log.Warn().Int("runs", len(reports)).Msg("no run with defined metrics")
		return
	}
	store, err := json.BlobShard(storage.ReportDir)(base.Name)
	if err != nil {
		log.Fatal().Err(err).Str("table", storage.ReportDir).Msg("could not open storage")
	}
	if err := store.Store(best.Key(), best); err != nil {
		log.Fatal().Err(err).Str("id", best.ID).Msg("could not store best report")
	}
	fmt.Printf("best = %s\n%s", best.Key().Path(), ml.FormatPerformance(best.Performance, best.Config.Threshold))
}
