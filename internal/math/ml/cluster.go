package ml

import (
	"errors"
	"math"

	coinmath "github.com/drakos74/free-prefetch/internal/math"
	"github.com/drakos74/free-prefetch/internal/model"
)

const (
	// KMeansName identifies the partitioning algorithm.
	KMeansName = "kmeans"
	// KohonenName identifies the self-organizing map.
	KohonenName = "kohonen"
)

var (
	// NonConvergenceErr marks a training run that stopped at its iteration bound.
	NonConvergenceErr = errors.New("no convergence")
	// UndefinedMetricErr marks a metric with a zero denominator.
	UndefinedMetricErr = errors.New("undefined metric")
)

// Source is the random source for the initial cluster state.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Clusterer trains a model on the training part of the given space.
type Clusterer interface {
	Train(space *model.Space) (Model, error)
}

// TieBreak decides which cluster wins when two prototypes are at the same distance.
type TieBreak string

const (
	// FirstMin keeps the first minimum in scan order.
	FirstMin TieBreak = "first"
	// LastMin lets later equal distances replace the current minimum.
	LastMin TieBreak = "last"
)

func (tb TieBreak) valid() bool {
	return tb == FirstMin || tb == LastMin
}

func (tb TieBreak) closer(d, min float64) bool {
	if tb == LastMin {
		return d <= min
	}
	return d < min
}

// Cluster is a prototype together with the clients assigned to it.
type Cluster struct {
	// X, Y are the grid coordinates for the kohonen map.
	// For k-means X is the cluster index.
	X         int           `json:"x"`
	Y         int           `json:"y"`
	Prototype model.Vector  `json:"prototype"`
	Members   model.Members `json:"members"`
	// Previous are the members before the last reassignment (k-means only).
	Previous model.Members `json:"-"`
	Summary  Summary       `json:"summary"`
}

func newCluster(x, y int, prototype model.Vector) *Cluster {
	return &Cluster{
		X:         x,
		Y:         y,
		Prototype: prototype,
		Members:   model.NewMembers(),
		Previous:  model.NewMembers(),
	}
}

// Summary describes how well a prototype represents its members.
type Summary struct {
	Size int `json:"size"`
	// Error is the average distance of the members to the prototype.
	Error float64 `json:"error"`
	// Spread is the standard deviation of the member distances.
	Spread float64 `json:"spread"`
}

// nearest returns the index of the cluster closest to v.
func nearest(v model.Vector, clusters []*Cluster, tb TieBreak) (int, float64) {
	index := 0
	min := math.Inf(1)
	for i, c := range clusters {
		d := coinmath.Distance(v, c.Prototype)
		if tb.closer(d, min) {
			index = i
			min = d
		}
	}
	return index, min
}
