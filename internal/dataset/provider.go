package dataset

import (
	"context"
	"fmt"

	"github.com/longevitylab/gerograph/internal/gaps"
	"github.com/longevitylab/gerograph/internal/graph"
)

// Provider is the data collaborator the explorer reads from. Implementations
// may fail; callers must surface a LoadError as an explicit error state
// instead of rendering undefined data.
type Provider interface {
	LoadGraph(ctx context.Context) ([]graph.Node, []graph.Edge, error)
	LoadGaps(ctx context.Context) ([]gaps.HypothesisGap, error)
	LoadTrends(ctx context.Context) ([]Trend, error)
}

// Index resolves single records by id without a full load.
type Index interface {
	NodeByID(id string) (graph.Node, bool)
	GapByID(id string) (gaps.HypothesisGap, bool)
}

// Source is the full surface the server consumes.
type Source interface {
	Provider
	Index
}

// LoadError wraps any failure to source the dataset.
type LoadError struct {
	What string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.What, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Trend is a trending research area, static sample data like the rest.
type Trend struct {
	Area                  string   `json:"area"`
	GrowthRate            float64  `json:"growth_rate"`
	PublicationsLastMonth int      `json:"publications_last_month"`
	KeyResearchers        []string `json:"key_researchers"`
	EmergingTargets       []string `json:"emerging_targets"`
	FundingTrend          string   `json:"funding_trend"`
}
