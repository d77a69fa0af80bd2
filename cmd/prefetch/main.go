package main

import (
	"fmt"

	"github.com/drakos74/free-prefetch/infra/config"
	"github.com/drakos74/free-prefetch/internal/math/ml"
	"github.com/drakos74/free-prefetch/internal/metrics"
	"github.com/drakos74/free-prefetch/internal/prefetch"
	"github.com/drakos74/free-prefetch/internal/storage"
	"github.com/drakos74/free-prefetch/internal/storage/file/json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const metricsPort = 6122

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	var cfg prefetch.Config
	config.MustLoad("prefetch", &cfg)
	cfg = cfg.WithDefaults()

	go func() {
		if err := metrics.Serve(metricsPort); err != nil {
			log.Error().Err(err).Int("port", metricsPort).Msg("metrics server stopped")
		}
	}()

	data, err := json.BlobShard(storage.DataDir)(cfg.Name)
	if err != nil {
		log.Fatal().Err(err).Str("table", storage.DataDir).Msg("could not open storage")
	}
	space, err := prefetch.LoadSpace(data, cfg.Name, cfg.Dim)
	if err != nil {
		log.Fatal().Err(err).Str("name", cfg.Name).Msg("could not load vector space")
	}

	reports, err := json.BlobShard(storage.ReportDir)(cfg.Name)
	if err != nil {
		log.Fatal().Err(err).Str("table", storage.ReportDir).Msg("could not open storage")
	}
	report, m, err := prefetch.Run(cfg, space, reports)
	if err != nil {
		log.Fatal().Err(err).Str("algorithm", cfg.Algorithm).Msg("run failed")
	}

	fmt.Print(ml.FormatMembers(m))
	fmt.Print(ml.FormatPrototypes(m))
	fmt.Print(ml.FormatPerformance(report.Performance, cfg.Threshold))
	fmt.Printf("report = %s\n", report.Key().Path())
}
