package prefetch

import (
	"fmt"
	"math/rand"

	"github.com/drakos74/free-prefetch/internal/math/ml"
	"github.com/drakos74/free-prefetch/internal/model"
)

// Config defines a single train and evaluate run.
// Name identifies the dataset and groups the reports
// Algorithm selects the clusterer, one of ml.KMeansName or ml.KohonenName
// Dim is the expected vector dimension
// Seed initialises the random source, runs with the same seed are reproducible
// Threshold is the prefetch threshold in (0,1]. 0 is reserved for unset and becomes ml.DefaultThreshold,
// a zero threshold would prefetch every resource with any access at all.
type Config struct {
	Name      string           `json:"name"`
	Algorithm string           `json:"algorithm"`
	Dim       int              `json:"dim"`
	Seed      int64            `json:"seed"`
	Threshold float64          `json:"threshold"`
	KMeans    ml.KMeansConfig  `json:"kmeans"`
	Kohonen   ml.KohonenConfig `json:"kohonen"`
}

// WithDefaults fills in the unset optional fields.
func (c Config) WithDefaults() Config {
	if c.Threshold == 0 {
		c.Threshold = ml.DefaultThreshold
	}
	c.KMeans = c.KMeans.WithDefaults()
	c.Kohonen = c.Kohonen.WithDefaults()
	return c
}

// Validate checks the config for invalid values.
func (c Config) Validate() error {
	if c.Dim <= 0 {
		return fmt.Errorf("dimension must be positive but was %d: %w", c.Dim, model.ConfigErr)
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be in (0,1] but was %v: %w", c.Threshold, model.ConfigErr)
	}
	switch c.Algorithm {
	case ml.KMeansName:
		return c.KMeans.Validate()
	case ml.KohonenName:
		return c.Kohonen.Validate()
	}
	return fmt.Errorf("unknown algorithm '%s': %w", c.Algorithm, model.ConfigErr)
}

// Clusterer creates the configured clusterer with its own random source.
func (c Config) Clusterer() (ml.Clusterer, error) {
	rnd := rand.New(rand.NewSource(c.Seed))
	switch c.Algorithm {
	case ml.KMeansName:
		kmeans, err := ml.NewKMeans(c.KMeans, rnd)
		if err != nil {
			return nil, err
		}
		return kmeans, nil
	case ml.KohonenName:
		kohonen, err := ml.NewKohonen(c.Kohonen, rnd)
		if err != nil {
			return nil, err
		}
		return kohonen, nil
	}
	return nil, fmt.Errorf("unknown algorithm '%s': %w", c.Algorithm, model.ConfigErr)
}
