package prefetch

import (
	"errors"
	"testing"

	"github.com/drakos74/free-prefetch/internal/math/ml"
	"github.com/drakos74/free-prefetch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{Algorithm: ml.KMeansName, Dim: 2}.WithDefaults()
	assert.Equal(t, ml.DefaultThreshold, cfg.Threshold)
	assert.Equal(t, ml.DefaultMaxIterations, cfg.KMeans.MaxIterations)
	assert.Equal(t, ml.FirstMin, cfg.KMeans.TieBreak)
	assert.Equal(t, ml.KeepPrototype, cfg.KMeans.Empty)
	assert.Equal(t, ml.DefaultLearningRate, cfg.Kohonen.LearningRate)
	assert.Equal(t, ml.LastMin, cfg.Kohonen.TieBreak)
	assert.Equal(t, ml.Inclusive, cfg.Kohonen.Neighbourhood)

	cfg = Config{Threshold: 0.8}.WithDefaults()
	assert.Equal(t, 0.8, cfg.Threshold)
}

func TestConfig_Validate(t *testing.T) {
	type test struct {
		cfg Config
		err bool
	}

	tests := map[string]test{
		"kmeans": {
			cfg: Config{Algorithm: ml.KMeansName, Dim: 2, KMeans: ml.KMeansConfig{K: 2}},
		},
		"kohonen": {
			cfg: Config{Algorithm: ml.KohonenName, Dim: 2, Kohonen: ml.KohonenConfig{Size: 2, Epochs: 10}},
		},
		"unknown-algorithm": {
			cfg: Config{Algorithm: "dbscan", Dim: 2},
			err: true,
		},
		"missing-algorithm": {
			cfg: Config{Dim: 2, KMeans: ml.KMeansConfig{K: 2}},
			err: true,
		},
		"zero-dimension": {
			cfg: Config{Algorithm: ml.KMeansName, KMeans: ml.KMeansConfig{K: 2}},
			err: true,
		},
		"negative-threshold": {
			cfg: Config{Algorithm: ml.KMeansName, Dim: 2, Threshold: -0.1, KMeans: ml.KMeansConfig{K: 2}},
			err: true,
		},
		"large-threshold": {
			cfg: Config{Algorithm: ml.KMeansName, Dim: 2, Threshold: 1.1, KMeans: ml.KMeansConfig{K: 2}},
			err: true,
		},
		"zero-k": {
			cfg: Config{Algorithm: ml.KMeansName, Dim: 2},
			err: true,
		},
		"zero-epochs": {
			cfg: Config{Algorithm: ml.KohonenName, Dim: 2, Kohonen: ml.KohonenConfig{Size: 2}},
			err: true,
		},
		"large-learning-rate": {
			cfg: Config{Algorithm: ml.KohonenName, Dim: 2, Kohonen: ml.KohonenConfig{Size: 2, Epochs: 10, LearningRate: 1.5}},
			err: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.cfg.WithDefaults().Validate()
			if tt.err {
				assert.True(t, errors.Is(err, model.ConfigErr), "%v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Threshold(t *testing.T) {
	type test struct {
		threshold float64
		expected  float64
		err       bool
	}

	tests := map[string]test{
		"unset":   {threshold: 0, expected: ml.DefaultThreshold},
		"lowest":  {threshold: 0.01, expected: 0.01},
		"highest": {threshold: 1, expected: 1},
		"above":   {threshold: 1.5, expected: 1.5, err: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Config{Algorithm: ml.KMeansName, Dim: 2, Threshold: tt.threshold, KMeans: ml.KMeansConfig{K: 2}}.WithDefaults()
			assert.Equal(t, tt.expected, cfg.Threshold)
			err := cfg.Validate()
			if tt.err {
				assert.True(t, errors.Is(err, model.ConfigErr), "%v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	// zero is only valid as unset
	err := Config{Algorithm: ml.KMeansName, Dim: 2, KMeans: ml.KMeansConfig{K: 2}.WithDefaults()}.Validate()
	assert.True(t, errors.Is(err, model.ConfigErr), "%v", err)
	assert.Contains(t, err.Error(), "threshold")
}

func TestConfig_Clusterer(t *testing.T) {
	c, err := Config{Algorithm: ml.KMeansName, Dim: 2, KMeans: ml.KMeansConfig{K: 2}}.WithDefaults().Clusterer()
	require.NoError(t, err)
	assert.IsType(t, &ml.KMeans{}, c)

	c, err = Config{Algorithm: ml.KohonenName, Dim: 2, Kohonen: ml.KohonenConfig{Size: 2, Epochs: 1}}.WithDefaults().Clusterer()
	require.NoError(t, err)
	assert.IsType(t, &ml.Kohonen{}, c)

	c, err = Config{Algorithm: ml.KMeansName, Dim: 2}.Clusterer()
	assert.True(t, errors.Is(err, model.ConfigErr))
	assert.Nil(t, c)
}
