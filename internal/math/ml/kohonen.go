package ml

import (
	"fmt"

	coinmath "github.com/drakos74/free-prefetch/internal/math"
	"github.com/drakos74/free-prefetch/internal/metrics"
	"github.com/drakos74/free-prefetch/internal/model"
	"github.com/rs/zerolog/log"
)

// DefaultLearningRate is the initial learning rate of the kohonen map.
const DefaultLearningRate = 0.8

// Neighbourhood decides whether the upper bound of the update square is part of it.
type Neighbourhood string

const (
	// Inclusive updates every cell in [bmu - r, bmu + r].
	Inclusive Neighbourhood = "inclusive"
	// Exclusive stops one cell short of bmu + r on both axes.
	Exclusive Neighbourhood = "exclusive"
)

// KohonenConfig defines the self-organizing map hyperparameters.
// Size is the side N of the N x N grid
// Epochs is the number of passes over the training set
// LearningRate is the initial learning rate, decaying linearly to 0
// TieBreak defaults to LastMin e.g. later cells in row-major order win on equal distance
// Neighbourhood defaults to Inclusive
type KohonenConfig struct {
	Size          int           `json:"size"`
	Epochs        int           `json:"epochs"`
	LearningRate  float64       `json:"learning_rate"`
	TieBreak      TieBreak      `json:"tie_break"`
	Neighbourhood Neighbourhood `json:"neighbourhood"`
}

// WithDefaults fills in the unset optional fields.
func (cfg KohonenConfig) WithDefaults() KohonenConfig {
	if cfg.LearningRate == 0 {
		cfg.LearningRate = DefaultLearningRate
	}
	if cfg.TieBreak == "" {
		cfg.TieBreak = LastMin
	}
	if cfg.Neighbourhood == "" {
		cfg.Neighbourhood = Inclusive
	}
	return cfg
}

// Validate checks the config for invalid values.
func (cfg KohonenConfig) Validate() error {
	if cfg.Size <= 0 {
		return fmt.Errorf("grid size must be positive but was %d: %w", cfg.Size, model.ConfigErr)
	}
	if cfg.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive but was %d: %w", cfg.Epochs, model.ConfigErr)
	}
	if cfg.LearningRate <= 0 || cfg.LearningRate > 1 {
		return fmt.Errorf("learning rate must be in (0,1] but was %v: %w", cfg.LearningRate, model.ConfigErr)
	}
	if !cfg.TieBreak.valid() {
		return fmt.Errorf("unknown tie break '%s': %w", cfg.TieBreak, model.ConfigErr)
	}
	if cfg.Neighbourhood != Inclusive && cfg.Neighbourhood != Exclusive {
		return fmt.Errorf("unknown neighbourhood '%s': %w", cfg.Neighbourhood, model.ConfigErr)
	}
	return nil
}

// Rate is the learning rate for the given zero-based epoch.
func (cfg KohonenConfig) Rate(epoch int) float64 {
	return cfg.LearningRate * cfg.decay(epoch)
}

// Radius is the neighbourhood radius for the given zero-based epoch.
func (cfg KohonenConfig) Radius(epoch int) float64 {
	return float64(cfg.Size) / 2 * cfg.decay(epoch)
}

func (cfg KohonenConfig) decay(epoch int) float64 {
	return 1 - float64(epoch)/float64(cfg.Epochs)
}

// Grid is the N x N lattice of the kohonen map, stored in row-major order.
type Grid struct {
	size  int
	cells []*Cluster
}

func newGrid(size int, seed func() model.Vector) *Grid {
	cells := make([]*Cluster, 0, size*size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			cells = append(cells, newCluster(x, y, seed()))
		}
	}
	return &Grid{
		size:  size,
		cells: cells,
	}
}

// At returns the cell at the given coordinates.
func (g *Grid) At(x, y int) *Cluster {
	return g.cells[x*g.size+y]
}

// span returns the [from, to) range of the neighbourhood around c on one axis.
func (g *Grid) span(c, radius int, nb Neighbourhood) (int, int) {
	from := c - radius
	if from < 0 {
		from = 0
	}
	to := c + radius
	if to > g.size-1 {
		to = g.size - 1
	}
	if nb == Inclusive {
		to++
	}
	return from, to
}

func (g *Grid) clear() {
	for _, c := range g.cells {
		c.Members.Clear()
	}
}

// Kohonen is a self-organizing map over an N x N grid of prototypes.
type Kohonen struct {
	cfg KohonenConfig
	rnd Source
}

// NewKohonen creates a new self-organizing map.
func NewKohonen(cfg KohonenConfig, rnd Source) (*Kohonen, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid kohonen config: %w", err)
	}
	if rnd == nil {
		return nil, fmt.Errorf("no random source: %w", model.ConfigErr)
	}
	return &Kohonen{
		cfg: cfg,
		rnd: rnd,
	}, nil
}

// Train runs exactly the configured number of epochs over the training set.
func (k *Kohonen) Train(space *model.Space) (Model, error) {
	if space == nil {
		return Model{}, fmt.Errorf("no vector space: %w", model.ConfigErr)
	}
	if len(space.Train) == 0 {
		return Model{}, fmt.Errorf("empty training set: %w", model.ConfigErr)
	}

	grid := newGrid(k.cfg.Size, func() model.Vector {
		return space.Train[k.rnd.Intn(len(space.Train))].Copy()
	})

	for epoch := 0; epoch < k.cfg.Epochs; epoch++ {
		rate := k.cfg.Rate(epoch)
		radius := int(k.cfg.Radius(epoch))
		grid.clear()
		for i, v := range space.Train {
			k.present(grid, i, v, rate, radius)
		}
		metrics.Observer.Iteration(KohonenName)
		log.Trace().
			Int("epoch", epoch).
			Float64("rate", rate).
			Int("radius", radius).
			Msg("kohonen epoch")
	}

	m := freeze(KohonenName, k.cfg.Size, grid.cells, space.Train)
	m.Iterations = k.cfg.Epochs
	m.Converged = true

	log.Debug().
		Int("size", k.cfg.Size).
		Int("epochs", k.cfg.Epochs).
		Int("degenerate", m.Degenerate).
		Msg("kohonen trained")

	return m, nil
}

// present moves the neighbourhood of the best matching unit towards v
// and assigns the client to the best matching unit.
func (k *Kohonen) present(grid *Grid, client int, v model.Vector, rate float64, radius int) {
	index, _ := nearest(v, grid.cells, k.cfg.TieBreak)
	bmu := grid.cells[index]

	fromX, toX := grid.span(bmu.X, radius, k.cfg.Neighbourhood)
	fromY, toY := grid.span(bmu.Y, radius, k.cfg.Neighbourhood)
	for x := fromX; x < toX; x++ {
		for y := fromY; y < toY; y++ {
			coinmath.Blend(grid.At(x, y).Prototype, v, rate)
		}
	}

	bmu.Members.Add(client)
}
