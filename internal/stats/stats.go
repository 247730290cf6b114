// Package stats derives the explorer's aggregate numbers from the dataset.
package stats

import (
	"math"

	"github.com/longevitylab/gerograph/internal/gaps"
	"github.com/longevitylab/gerograph/internal/graph"
)

type Stats struct {
	Nodes            int `json:"total_nodes"`
	Connections      int `json:"total_connections"`
	HighPriorityGaps int `json:"high_priority_gaps"`
	AvgConfidencePct int `json:"avg_confidence_pct"`
}

// Compute is a pure function of the dataset. An empty gap list yields a 0%
// average confidence rather than a division error.
func Compute(nodes []graph.Node, edges []graph.Edge, gapList []gaps.HypothesisGap) Stats {
	s := Stats{
		Nodes:       len(nodes),
		Connections: len(edges),
	}

	var sum float64
	for _, g := range gapList {
		if g.Priority == graph.PriorityHigh {
			s.HighPriorityGaps++
		}
		sum += g.Confidence
	}
	if len(gapList) > 0 {
		s.AvgConfidencePct = int(math.Round(sum / float64(len(gapList)) * 100))
	}
	return s
}
