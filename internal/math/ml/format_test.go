package ml

import (
	"math"
	"testing"

	"github.com/drakos74/free-prefetch/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	kmeans := singleCluster(model.Vector{0.95, 0.05}, 0, 1)
	assert.Equal(t, "Members cluster 0 : {0, 1} [error = 0.00 | spread = 0.00]\n", FormatMembers(kmeans))
	assert.Equal(t, "Prototype cluster 0 : [0.95 0.05]\n", FormatPrototypes(kmeans))

	grid := Model{
		Algorithm: KohonenName,
		Grid:      2,
		Clusters: []Cluster{
			{X: 1, Y: 0, Prototype: model.Vector{1}, Members: model.NewMembers(3)},
		},
	}
	assert.Equal(t, "Prototype cluster (1, 0) : [1.00]\n", FormatPrototypes(grid))

	s := FormatPerformance(Performance{HitRate: 0.75, Accuracy: 0.5}, 0.5)
	assert.Contains(t, s, "Prefetch threshold = 0.5")
	assert.Contains(t, s, "Hitrate: 0.75")
	assert.Contains(t, s, "Accuracy: 0.5")
	assert.Contains(t, s, "Hitrate+Accuracy = 1.25")

	undefined := FormatPerformance(Performance{HitRate: math.NaN(), Accuracy: math.NaN()}, 1)
	assert.Contains(t, undefined, "Hitrate: NaN")
}
