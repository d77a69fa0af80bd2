package ml

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/drakos74/free-prefetch/internal/model"
)

// DefaultThreshold is the prefetch threshold if none is configured.
const DefaultThreshold = 0.5

// Performance holds the prefetch counters and the derived metrics.
// HitRate and Accuracy are NaN if their denominator is zero.
type Performance struct {
	Hits       int
	Requests   int
	Prefetches int
	HitRate    float64
	Accuracy   float64
}

// Evaluate uses the cluster prototypes of the model as predictions for the test set.
// For every assigned client and every component
// a request is a test value above the threshold,
// a prefetch is a prototype value above the threshold,
// and a hit is both.
func Evaluate(m Model, test model.Dataset, threshold float64) (Performance, error) {
	var p Performance
	assigned := model.NewMembers()
	for _, c := range m.Clusters {
		if len(c.Prototype) != m.Dim {
			return Performance{}, fmt.Errorf("prototype %s has dimension %d instead of %d: %w", m.Label(c), len(c.Prototype), m.Dim, model.ConfigErr)
		}
		for _, client := range c.Members.IDs() {
			if assigned.Contains(client) {
				return Performance{}, fmt.Errorf("client %d is assigned to more than one cluster: %w", client, model.ConfigErr)
			}
			assigned.Add(client)
			if client >= len(test) {
				return Performance{}, fmt.Errorf("no test vector for client %d [%d]: %w", client, len(test), model.ConfigErr)
			}
			v := test[client]
			if len(v) != m.Dim {
				return Performance{}, fmt.Errorf("test vector %d has dimension %d instead of %d: %w", client, len(v), m.Dim, model.ConfigErr)
			}
			for i := range v {
				prefetch := c.Prototype[i] > threshold
				request := v[i] > threshold
				if prefetch && request {
					p.Hits++
				}
				if request {
					p.Requests++
				}
				if prefetch {
					p.Prefetches++
				}
			}
		}
	}
	p.HitRate = ratio(p.Hits, p.Requests)
	p.Accuracy = ratio(p.Hits, p.Prefetches)
	return p, nil
}

func ratio(a, b int) float64 {
	if b == 0 {
		return math.NaN()
	}
	return float64(a) / float64(b)
}

// Defined checks if both metrics could be computed.
func (p Performance) Defined() bool {
	return !math.IsNaN(p.HitRate) && !math.IsNaN(p.Accuracy)
}

// Sum returns hit rate plus accuracy.
func (p Performance) Sum() float64 {
	return p.HitRate + p.Accuracy
}

// Err describes the undefined metrics, if any.
func (p Performance) Err() error {
	switch {
	case p.Requests == 0 && p.Prefetches == 0:
		return fmt.Errorf("no requests and no prefetches: %w", UndefinedMetricErr)
	case p.Requests == 0:
		return fmt.Errorf("no requests, hit rate: %w", UndefinedMetricErr)
	case p.Prefetches == 0:
		return fmt.Errorf("no prefetches, accuracy: %w", UndefinedMetricErr)
	}
	return nil
}

type performanceJson struct {
	Hits       int      `json:"hits"`
	Requests   int      `json:"requests"`
	Prefetches int      `json:"prefetches"`
	HitRate    *float64 `json:"hitrate"`
	Accuracy   *float64 `json:"accuracy"`
}

// MarshalJSON encodes undefined metrics as null.
func (p Performance) MarshalJSON() ([]byte, error) {
	return json.Marshal(performanceJson{
		Hits:       p.Hits,
		Requests:   p.Requests,
		Prefetches: p.Prefetches,
		HitRate:    defined(p.HitRate),
		Accuracy:   defined(p.Accuracy),
	})
}

// UnmarshalJSON decodes null metrics as NaN.
func (p *Performance) UnmarshalJSON(b []byte) error {
	var pj performanceJson
	if err := json.Unmarshal(b, &pj); err != nil {
		return fmt.Errorf("could not decode performance: %w", err)
	}
	*p = Performance{
		Hits:       pj.Hits,
		Requests:   pj.Requests,
		Prefetches: pj.Prefetches,
		HitRate:    undefined(pj.HitRate),
		Accuracy:   undefined(pj.Accuracy),
	}
	return nil
}

func defined(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func undefined(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}
