package gaps

import (
	"encoding/json"
	"fmt"

	"github.com/longevitylab/gerograph/internal/graph"
)

// ConnectionKind discriminates the two shapes a missing connection comes in.
// The sample data carries both and they are deliberately not unified.
type ConnectionKind string

const (
	// KindLink is a concrete source/target/type triple.
	KindLink ConnectionKind = "link"
	// KindPattern is a recurring pattern with an instance count.
	KindPattern ConnectionKind = "pattern"
)

// MissingConnection is a tagged variant. For KindLink, Source and Target are
// set; for KindPattern, Pattern and Instances are set. RelType is shared.
type MissingConnection struct {
	Kind      ConnectionKind
	Source    string
	Target    string
	Pattern   string
	Instances int
	RelType   string
}

func Link(source, target, relType string) MissingConnection {
	return MissingConnection{Kind: KindLink, Source: source, Target: target, RelType: relType}
}

func Pattern(pattern string, instances int, relType string) MissingConnection {
	return MissingConnection{Kind: KindPattern, Pattern: pattern, Instances: instances, RelType: relType}
}

// MarshalJSON emits the loose wire shapes the dataset has always used:
// {"source","target","type"} for links, {"pattern","instances","type"} for
// patterns.
func (m MissingConnection) MarshalJSON() ([]byte, error) {
	switch m.Kind {
	case KindPattern:
		return json.Marshal(struct {
			Pattern   string `json:"pattern"`
			Instances int    `json:"instances"`
			RelType   string `json:"type"`
		}{m.Pattern, m.Instances, m.RelType})
	default:
		return json.Marshal(struct {
			Source  string `json:"source"`
			Target  string `json:"target"`
			RelType string `json:"type"`
		}{m.Source, m.Target, m.RelType})
	}
}

func (m *MissingConnection) UnmarshalJSON(data []byte) error {
	var raw struct {
		Source    string `json:"source"`
		Target    string `json:"target"`
		Pattern   string `json:"pattern"`
		Instances int    `json:"instances"`
		RelType   string `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Pattern != "" {
		*m = Pattern(raw.Pattern, raw.Instances, raw.RelType)
		return nil
	}
	if raw.Source == "" || raw.Target == "" {
		return fmt.Errorf("missing connection needs either pattern or source/target")
	}
	*m = Link(raw.Source, raw.Target, raw.RelType)
	return nil
}

// HypothesisGap is a candidate unexplored research hypothesis. Immutable
// sample data; gap priorities only ever come in high and medium.
type HypothesisGap struct {
	ID                 string              `json:"id"`
	Hypothesis         string              `json:"potential_hypothesis"`
	Confidence         float64             `json:"confidence_score"`
	SupportingEvidence []string            `json:"supporting_evidence"`
	MissingConnections []MissingConnection `json:"missing_connections"`
	Priority           graph.Priority      `json:"research_priority"`
	SuggestedMethods   []string            `json:"suggested_methods"`
}

// ConfidencePct is the confidence score as a 0-100 integer.
func (g HypothesisGap) ConfidencePct() int {
	return int(g.Confidence*100 + 0.5)
}
