package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longevitylab/gerograph/internal/dataset"
	"github.com/longevitylab/gerograph/internal/gaps"
	"github.com/longevitylab/gerograph/internal/graph"
)

func TestCompute_EmptyGapListIsZeroPercent(t *testing.T) {
	s := Compute(nil, nil, nil)
	assert.Equal(t, 0, s.Nodes)
	assert.Equal(t, 0, s.Connections)
	assert.Equal(t, 0, s.HighPriorityGaps)
	assert.Equal(t, 0, s.AvgConfidencePct)
}

func TestCompute_SampleDataset(t *testing.T) {
	p, err := dataset.NewStaticProvider()
	require.NoError(t, err)

	ctx := context.Background()
	nodes, edges, err := p.LoadGraph(ctx)
	require.NoError(t, err)
	gapList, err := p.LoadGaps(ctx)
	require.NoError(t, err)

	s := Compute(nodes, edges, gapList)
	assert.Equal(t, 8, s.Nodes)
	assert.Equal(t, 6, s.Connections)
	assert.Equal(t, 2, s.HighPriorityGaps)
	// round((0.85+0.78+0.73)/3 * 100)
	assert.Equal(t, 79, s.AvgConfidencePct)
}

func TestCompute_Rounding(t *testing.T) {
	gapList := []gaps.HypothesisGap{
		{Confidence: 0.5, Priority: graph.PriorityMedium},
		{Confidence: 0.51, Priority: graph.PriorityMedium},
	}
	s := Compute(nil, nil, gapList)
	assert.Equal(t, 51, s.AvgConfidencePct)
}
