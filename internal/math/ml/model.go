package ml

import (
	"fmt"

	"github.com/drakos74/free-prefetch/internal/buffer"
	coinmath "github.com/drakos74/free-prefetch/internal/math"
	"github.com/drakos74/free-prefetch/internal/model"
)

// Model is the frozen result of a training run.
// It is the only state carried into evaluation.
type Model struct {
	Algorithm string `json:"algorithm"`
	Dim       int    `json:"dim"`
	// Grid is the side of the kohonen map, 0 for k-means.
	Grid     int       `json:"grid,omitempty"`
	Clusters []Cluster `json:"clusters"`
	// Iterations counts k-means iterations or kohonen epochs.
	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`
	// Degenerate is the number of clusters left without members.
	Degenerate int `json:"degenerate"`
}

// freeze copies the clusters into a model, so that later changes to them are not visible.
func freeze(algorithm string, grid int, clusters []*Cluster, train model.Dataset) Model {
	m := Model{
		Algorithm: algorithm,
		Grid:      grid,
		Clusters:  make([]Cluster, len(clusters)),
	}
	if len(train) > 0 {
		m.Dim = len(train[0])
	}
	for i, c := range clusters {
		stats := buffer.NewStats()
		for _, id := range c.Members.IDs() {
			stats.Push(coinmath.Distance(train[id], c.Prototype))
		}
		m.Clusters[i] = Cluster{
			X:         c.X,
			Y:         c.Y,
			Prototype: c.Prototype.Copy(),
			Members:   c.Members.Clone(),
			Previous:  c.Previous.Clone(),
			Summary: Summary{
				Size:   c.Members.Size(),
				Error:  stats.Avg(),
				Spread: stats.StDev(),
			},
		}
		if c.Members.Size() == 0 {
			m.Degenerate++
		}
	}
	return m
}

// Evaluate evaluates the model against the given test set.
func (m Model) Evaluate(test model.Dataset, threshold float64) (Performance, error) {
	return Evaluate(m, test, threshold)
}

// Label returns the display name of the cluster.
func (m Model) Label(c Cluster) string {
	if m.Grid > 0 {
		return fmt.Sprintf("(%d, %d)", c.X, c.Y)
	}
	return fmt.Sprintf("%d", c.X)
}
