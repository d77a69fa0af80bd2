package ml

import (
	"fmt"

	coinmath "github.com/drakos74/free-prefetch/internal/math"
	"github.com/drakos74/free-prefetch/internal/metrics"
	"github.com/drakos74/free-prefetch/internal/model"
	"github.com/rs/zerolog/log"
)

// DefaultMaxIterations is the iteration bound for k-means if none is configured.
const DefaultMaxIterations = 100

// EmptyPolicy decides what happens to the prototype of a cluster without members.
type EmptyPolicy string

const (
	// KeepPrototype leaves the prototype of an empty cluster unchanged.
	KeepPrototype EmptyPolicy = "keep"
	// ZeroPrototype resets the prototype of an empty cluster to the zero vector.
	ZeroPrototype EmptyPolicy = "zero"
)

// KMeansConfig defines the k-means hyperparameters.
// K is the number of clusters
// MaxIterations bounds the training loop in case the memberships oscillate
// TieBreak defaults to FirstMin e.g. the lowest cluster index wins
// Empty defaults to KeepPrototype
type KMeansConfig struct {
	K             int         `json:"k"`
	MaxIterations int         `json:"max_iterations"`
	TieBreak      TieBreak    `json:"tie_break"`
	Empty         EmptyPolicy `json:"empty"`
}

// WithDefaults fills in the unset optional fields.
func (cfg KMeansConfig) WithDefaults() KMeansConfig {
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.TieBreak == "" {
		cfg.TieBreak = FirstMin
	}
	if cfg.Empty == "" {
		cfg.Empty = KeepPrototype
	}
	return cfg
}

// Validate checks the config for invalid values.
func (cfg KMeansConfig) Validate() error {
	if cfg.K <= 0 {
		return fmt.Errorf("cluster count must be positive but was %d: %w", cfg.K, model.ConfigErr)
	}
	if cfg.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive but was %d: %w", cfg.MaxIterations, model.ConfigErr)
	}
	if !cfg.TieBreak.valid() {
		return fmt.Errorf("unknown tie break '%s': %w", cfg.TieBreak, model.ConfigErr)
	}
	if cfg.Empty != KeepPrototype && cfg.Empty != ZeroPrototype {
		return fmt.Errorf("unknown empty cluster policy '%s': %w", cfg.Empty, model.ConfigErr)
	}
	return nil
}

// KMeans partitions the training vectors into k clusters.
type KMeans struct {
	cfg KMeansConfig
	rnd Source
}

// NewKMeans creates a new k-means clusterer.
func NewKMeans(cfg KMeansConfig, rnd Source) (*KMeans, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid k-means config: %w", err)
	}
	if rnd == nil {
		return nil, fmt.Errorf("no random source: %w", model.ConfigErr)
	}
	return &KMeans{
		cfg: cfg,
		rnd: rnd,
	}, nil
}

// Train runs k-means until the memberships are stable or the iteration bound is reached.
// If the bound is reached the model is returned with Converged = false.
func (k *KMeans) Train(space *model.Space) (Model, error) {
	if space == nil {
		return Model{}, fmt.Errorf("no vector space: %w", model.ConfigErr)
	}
	if len(space.Train) == 0 {
		return Model{}, fmt.Errorf("empty training set: %w", model.ConfigErr)
	}

	clusters := make([]*Cluster, k.cfg.K)
	for i := range clusters {
		clusters[i] = newCluster(i, 0, make(model.Vector, space.Dim))
	}

	// random initial partition
	for i := range space.Train {
		clusters[k.rnd.Intn(k.cfg.K)].Members.Add(i)
	}

	iterations := 0
	converged := false
	for !converged && iterations < k.cfg.MaxIterations {
		iterations++
		k.update(clusters, space.Train, space.Dim)
		k.assign(clusters, space.Train)
		converged = stable(clusters)
		metrics.Observer.Iteration(KMeansName)
	}

	m := freeze(KMeansName, 0, clusters, space.Train)
	m.Iterations = iterations
	m.Converged = converged

	if !converged {
		metrics.Observer.NonConvergence(KMeansName)
		log.Warn().
			Err(NonConvergenceErr).
			Int("k", k.cfg.K).
			Int("iterations", iterations).
			Msg("k-means stopped at the iteration bound")
	}

	log.Debug().
		Int("k", k.cfg.K).
		Int("iterations", iterations).
		Bool("converged", converged).
		Int("degenerate", m.Degenerate).
		Msg("k-means trained")

	return m, nil
}

// update recomputes every prototype as the mean of the current members
// and moves the current members to the previous ones.
func (k *KMeans) update(clusters []*Cluster, train model.Dataset, dim int) {
	for i, c := range clusters {
		ids := c.Members.IDs()
		vv := make([][]float64, len(ids))
		for j, id := range ids {
			vv[j] = train[id]
		}
		if mean, ok := coinmath.Mean(dim, vv...); ok {
			c.Prototype = mean
		} else {
			metrics.Observer.Degenerate(KMeansName)
			log.Debug().
				Int("cluster", i).
				Str("policy", string(k.cfg.Empty)).
				Msg("empty cluster")
			if k.cfg.Empty == ZeroPrototype {
				c.Prototype = make(model.Vector, dim)
			}
		}
		c.Previous = c.Members.Clone()
		c.Members.Clear()
	}
}

// assign moves every vector to the cluster with the closest prototype.
func (k *KMeans) assign(clusters []*Cluster, train model.Dataset) {
	for i, v := range train {
		j, _ := nearest(v, clusters, k.cfg.TieBreak)
		clusters[j].Members.Add(i)
	}
}

// stable checks if every cluster kept exactly the same members.
func stable(clusters []*Cluster) bool {
	for _, c := range clusters {
		if !c.Members.Equals(c.Previous) {
			return false
		}
	}
	return true
}
