package math

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// Format formats a float based on the given precision
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// FormatVector formats all components of the vector with the default precision.
func FormatVector(v []float64) string {
	ss := make([]byte, 0, len(v)*6)
	ss = append(ss, '[')
	for i, f := range v {
		if i > 0 {
			ss = append(ss, ' ')
		}
		ss = append(ss, Format(f)...)
	}
	ss = append(ss, ']')
	return string(ss)
}

// Distance is the euclidean distance of the two vectors.
func Distance(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("inconsistent dimensions %d vs %d", len(a), len(b)))
	}
	return floats.Distance(a, b, 2)
}

// Mean returns the component-wise mean of the given vectors.
// It returns false if there are no vectors to average.
func Mean(dim int, vv ...[]float64) ([]float64, bool) {
	mean := make([]float64, dim)
	if len(vv) == 0 {
		return mean, false
	}
	for _, v := range vv {
		floats.Add(mean, v)
	}
	floats.Scale(1/float64(len(vv)), mean)
	return mean, true
}

// Blend moves p towards v by the given rate, in place.
// p = (1 - rate) * p + rate * v
func Blend(p, v []float64, rate float64) {
	floats.Scale(1-rate, p)
	floats.AddScaled(p, rate, v)
}
