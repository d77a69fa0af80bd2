package ml

import (
	"fmt"
	"strings"

	coinmath "github.com/drakos74/free-prefetch/internal/math"
)

// FormatMembers lists the members of every cluster.
func FormatMembers(m Model) string {
	buffer := new(strings.Builder)
	for _, c := range m.Clusters {
		buffer.WriteString(fmt.Sprintf("Members cluster %s : %s [error = %s | spread = %s]\n",
			m.Label(c),
			c.Members.String(),
			coinmath.Format(c.Summary.Error),
			coinmath.Format(c.Summary.Spread)))
	}
	return buffer.String()
}

// FormatPrototypes lists the prototype of every cluster.
func FormatPrototypes(m Model) string {
	buffer := new(strings.Builder)
	for _, c := range m.Clusters {
		buffer.WriteString(fmt.Sprintf("Prototype cluster %s : %s\n",
			m.Label(c),
			coinmath.FormatVector(c.Prototype)))
	}
	return buffer.String()
}

// FormatPerformance summarises the evaluation results.
func FormatPerformance(p Performance, threshold float64) string {
	return fmt.Sprintf("Prefetch threshold = %v\nHitrate: %v\nAccuracy: %v\nHitrate+Accuracy = %v\n",
		threshold,
		p.HitRate,
		p.Accuracy,
		p.Sum())
}
