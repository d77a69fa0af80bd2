package prefetch

import (
	"github.com/drakos74/free-prefetch/internal/buffer"
	"github.com/drakos74/free-prefetch/internal/model"
)

// Usage describes how often the resources of a dataset are accessed.
type Usage struct {
	Clients   int `json:"clients"`
	Resources int `json:"resources"`
	// Accesses is the sum of all access frequencies.
	Accesses float64 `json:"accesses"`
	// Mean, Min and Max are taken over the mean access frequency of every resource.
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Describe collects the per-resource access statistics of the dataset.
func Describe(ds model.Dataset, dim int) Usage {
	collector := buffer.NewStatsCollector(dim)
	for _, v := range ds {
		collector.Push(v...)
	}

	rates := buffer.NewStats()
	accesses := 0.0
	for _, s := range collector.Stats() {
		rates.Push(s.Avg())
		accesses += s.Sum()
	}

	return Usage{
		Clients:   collector.Size(),
		Resources: rates.Count(),
		Accesses:  accesses,
		Mean:      rates.Avg(),
		Min:       rates.Min(),
		Max:       rates.Max(),
	}
}
