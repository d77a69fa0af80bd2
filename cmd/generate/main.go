package main

import (
	"math/rand"

	"github.com/drakos74/free-prefetch/infra/config"
	coinmath "github.com/drakos74/free-prefetch/internal/math"
	"github.com/drakos74/free-prefetch/internal/model"
	"github.com/drakos74/free-prefetch/internal/prefetch"
	"github.com/drakos74/free-prefetch/internal/storage"
	"github.com/drakos74/free-prefetch/internal/storage/file/json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	profiles = 8
	clients  = 500
	hot      = 0.1
	noise    = 0.3
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// generates a synthetic train and test set for the configured name and dimension
func main() {
	var cfg prefetch.Config
	config.MustLoad("prefetch", &cfg)

	rnd := rand.New(rand.NewSource(cfg.Seed))
	train, test := coinmath.Clients(rnd, coinmath.Profiles(rnd, profiles, cfg.Dim, hot), clients, noise)

	space, err := model.NewSpace(cfg.Dim, train, test)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create vector space")
	}

	store, err := json.BlobShard(storage.DataDir)(cfg.Name)
	if err != nil {
		log.Fatal().Err(err).Str("table", storage.DataDir).Msg("could not open storage")
	}
	if err := prefetch.StoreSpace(store, cfg.Name, space); err != nil {
		log.Fatal().Err(err).Str("name", cfg.Name).Msg("could not store vector space")
	}

	usage := prefetch.Describe(space.Train, space.Dim)
	log.Info().
		Str("name", cfg.Name).
		Int("dim", cfg.Dim).
		Int("clients", usage.Clients).
		Float64("accesses", usage.Accesses).
		Float64("mean", usage.Mean).
		Float64("min", usage.Min).
		Float64("max", usage.Max).
		Msg("generated vector space")
}
