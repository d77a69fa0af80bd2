package prefetch

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/drakos74/free-prefetch/internal/math/ml"
	"github.com/drakos74/free-prefetch/internal/model"
	"github.com/drakos74/free-prefetch/internal/storage/file/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep(t *testing.T) {
	type test struct {
		limit int
	}

	tests := map[string]test{
		"sequential": {limit: 1},
		"limited":    {limit: 2},
		"unlimited":  {limit: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfgs := []Config{
				kmeansConfig(1, 1),
				kmeansConfig(2, 2),
				kmeansConfig(3, 3),
				kohonenConfig(1, 4),
				kohonenConfig(2, 5),
			}
			store := json.NewLocalStorage()

			reports, err := Sweep(context.Background(), newTestSpace(t), cfgs, store, tt.limit)
			require.NoError(t, err)
			require.Len(t, reports, len(cfgs))
			assert.Equal(t, len(cfgs), store.Keys())

			for i, r := range reports {
				assert.Equal(t, cfgs[i].Algorithm, r.Config.Algorithm)
				assert.Equal(t, cfgs[i].Seed, r.Config.Seed)
			}
			assert.Len(t, reports[2].Clusters, 3)
			assert.Len(t, reports[4].Clusters, 4)
		})
	}
}

func TestSweep_Error(t *testing.T) {
	cfgs := []Config{
		kmeansConfig(2, 1),
		kmeansConfig(0, 1),
	}

	reports, err := Sweep(context.Background(), newTestSpace(t), cfgs, nil, 1)
	assert.True(t, errors.Is(err, model.ConfigErr), "%v", err)
	assert.Nil(t, reports)
}

func TestSweep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := json.NewLocalStorage()
	reports, err := Sweep(ctx, newTestSpace(t), []Config{kmeansConfig(2, 1)}, store, 1)
	assert.True(t, errors.Is(err, context.Canceled), "%v", err)
	assert.Nil(t, reports)
	assert.Equal(t, 0, store.Keys())
}

func TestBest(t *testing.T) {
	report := func(id string, hitRate, accuracy float64) Report {
		return Report{
			ID:          id,
			Performance: ml.Performance{HitRate: hitRate, Accuracy: accuracy},
		}
	}

	type test struct {
		reports []Report
		id      string
		found   bool
	}

	tests := map[string]test{
		"empty": {},
		"all-undefined": {
			reports: []Report{report("a", math.NaN(), 1), report("b", 1, math.NaN())},
		},
		"highest-sum": {
			reports: []Report{report("a", 0.5, 0.5), report("b", 0.9, 0.6), report("c", 0.7, 0.7)},
			id:      "b",
			found:   true,
		},
		"skip-undefined": {
			reports: []Report{report("a", math.NaN(), 1), report("b", 0.2, 0.3)},
			id:      "b",
			found:   true,
		},
		"first-of-equal": {
			reports: []Report{report("a", 0.5, 0.5), report("b", 0.5, 0.5)},
			id:      "a",
			found:   true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			best, ok := Best(tt.reports)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.id, best.ID)
		})
	}
}
