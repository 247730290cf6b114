package dataset

import (
	"context"
	"fmt"

	"github.com/longevitylab/gerograph/internal/gaps"
	"github.com/longevitylab/gerograph/internal/graph"
)

// StaticProvider serves the compiled-in longevity sample dataset. Everything
// is immutable after construction; loads copy the backing slices so callers
// cannot mutate shared state.
type StaticProvider struct {
	nodes  []graph.Node
	edges  []graph.Edge
	gaps   []gaps.HypothesisGap
	trends []Trend
}

var _ Source = (*StaticProvider)(nil)

// NewStaticProvider builds the sample provider, validating that every edge
// references an existing node.
func NewStaticProvider() (*StaticProvider, error) {
	p := &StaticProvider{
		nodes:  sampleNodes(),
		edges:  sampleEdges(),
		gaps:   sampleGaps(),
		trends: sampleTrends(),
	}

	ids := make(map[string]bool, len(p.nodes))
	for _, n := range p.nodes {
		if ids[n.ID] {
			return nil, fmt.Errorf("duplicate node id %q in sample data", n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range p.edges {
		if !ids[e.Source] || !ids[e.Target] {
			return nil, fmt.Errorf("edge %s->%s references unknown node", e.Source, e.Target)
		}
	}
	return p, nil
}

func (p *StaticProvider) LoadGraph(ctx context.Context) ([]graph.Node, []graph.Edge, error) {
	nodes := append([]graph.Node(nil), p.nodes...)
	edges := append([]graph.Edge(nil), p.edges...)
	return nodes, edges, nil
}

func (p *StaticProvider) LoadGaps(ctx context.Context) ([]gaps.HypothesisGap, error) {
	return append([]gaps.HypothesisGap(nil), p.gaps...), nil
}

func (p *StaticProvider) LoadTrends(ctx context.Context) ([]Trend, error) {
	return append([]Trend(nil), p.trends...), nil
}

// NodeByID looks a node up without going through a filter pass.
func (p *StaticProvider) NodeByID(id string) (graph.Node, bool) {
	for _, n := range p.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return graph.Node{}, false
}

// GapByID looks a gap record up by id.
func (p *StaticProvider) GapByID(id string) (gaps.HypothesisGap, bool) {
	for _, g := range p.gaps {
		if g.ID == id {
			return g, true
		}
	}
	return gaps.HypothesisGap{}, false
}

func sampleNodes() []graph.Node {
	return []graph.Node{
		{ID: "sirt1", Type: graph.TypeGene, Name: "SIRT1", X: 200, Y: 150, Connections: 15, Priority: graph.PriorityHigh},
		{ID: "foxo3", Type: graph.TypeGene, Name: "FOXO3", X: 340, Y: 90, Connections: 12, Priority: graph.PriorityHigh},
		{ID: "mtor_signaling", Type: graph.TypePathway, Name: "mTOR signaling", X: 480, Y: 200, Connections: 20, Priority: graph.PriorityHigh},
		{ID: "autophagy", Type: graph.TypePathway, Name: "Autophagy", X: 640, Y: 120, Connections: 16, Priority: graph.PriorityMedium},
		{ID: "crispr", Type: graph.TypeMethod, Name: "CRISPR-Cas9", X: 140, Y: 320, Connections: 8, Priority: graph.PriorityMedium},
		{ID: "scrnaseq", Type: graph.TypeMethod, Name: "scRNA-seq", X: 400, Y: 380, Connections: 7, Priority: graph.PriorityLow},
		{ID: "sinclair", Type: graph.TypeResearcher, Name: "David Sinclair", X: 600, Y: 330, Connections: 22, Priority: graph.PriorityMedium},
		{ID: "hyp_mtor_autophagy", Type: graph.TypeHypothesis, Name: "mTOR-autophagy crosstalk", X: 760, Y: 240, Connections: 9, Priority: graph.PriorityHigh},
	}
}

func sampleEdges() []graph.Edge {
	return []graph.Edge{
		{Source: "sirt1", Target: "mtor_signaling", Relation: "REGULATES", Strength: 0.9},
		{Source: "mtor_signaling", Target: "autophagy", Relation: "INHIBITS", Strength: 0.9},
		{Source: "foxo3", Target: "autophagy", Relation: "PROMOTES", Strength: 0.7},
		{Source: "crispr", Target: "sirt1", Relation: "USED_TO_STUDY", Strength: 0.7},
		{Source: "sinclair", Target: "sirt1", Relation: "STUDIES", Strength: 0.9},
		{Source: "hyp_mtor_autophagy", Target: "autophagy", Relation: "EXPLAINS", Strength: 0.85},
	}
}

func sampleGaps() []gaps.HypothesisGap {
	return []gaps.HypothesisGap{
		{
			ID:         "gap-sirt1-klotho",
			Hypothesis: "SIRT1 may regulate KLOTHO through epigenetic mechanisms",
			Confidence: 0.85,
			SupportingEvidence: []string{
				"Both are longevity regulators",
				"Shared epigenetic target sites across tissues",
				"No direct interaction studies published",
			},
			MissingConnections: []gaps.MissingConnection{
				gaps.Link("sirt1", "klotho", "REGULATES"),
			},
			Priority:         graph.PriorityHigh,
			SuggestedMethods: []string{"ChIP-seq", "Epigenome analysis", "Co-expression studies"},
		},
		{
			ID:         "gap-crispr-scrnaseq",
			Hypothesis: "Combining CRISPR-Cas9 with scRNA-seq could reveal new senescence biomarkers",
			Confidence: 0.78,
			SupportingEvidence: []string{
				"Methods are compatible at single-cell resolution",
				"CRISPR screens can generate senescence models",
			},
			MissingConnections: []gaps.MissingConnection{
				gaps.Link("crispr", "scrnaseq", "COMBINES_WITH"),
			},
			Priority:         graph.PriorityHigh,
			SuggestedMethods: []string{"Pilot study", "Protocol optimization", "Validation experiments"},
		},
		{
			ID:         "gap-circadian-axis",
			Hypothesis: "The AMPK-mTOR-autophagy axis is controlled by circadian rhythms",
			Confidence: 0.73,
			SupportingEvidence: []string{
				"All axis components show circadian regulation",
				"Aging correlates with circadian dysfunction",
			},
			MissingConnections: []gaps.MissingConnection{
				gaps.Pattern("circadian + metabolic + aging", 6, "TEMPORAL_REGULATION"),
			},
			Priority:         graph.PriorityMedium,
			SuggestedMethods: []string{"Time-course RNA-seq", "Chronobiology experiments"},
		},
	}
}

func sampleTrends() []Trend {
	return []Trend{
		{
			Area:                  "Senolytic drugs",
			GrowthRate:            0.34,
			PublicationsLastMonth: 45,
			KeyResearchers:        []string{"Judith Campisi", "James Kirkland"},
			EmergingTargets:       []string{"BCL-2", "p21", "p16"},
			FundingTrend:          "increasing",
		},
		{
			Area:                  "Epigenetic reprogramming",
			GrowthRate:            0.28,
			PublicationsLastMonth: 38,
			KeyResearchers:        []string{"David Sinclair", "Juan Carlos Izpisua Belmonte"},
			EmergingTargets:       []string{"Yamanaka factors", "chromatin remodeling"},
			FundingTrend:          "stable",
		},
		{
			Area:                  "NAD+ metabolism",
			GrowthRate:            0.22,
			PublicationsLastMonth: 32,
			KeyResearchers:        []string{"David Sinclair", "Charles Brenner"},
			EmergingTargets:       []string{"NMN", "NR", "NAMPT"},
			FundingTrend:          "increasing",
		},
	}
}
