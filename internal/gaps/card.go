package gaps

import "github.com/longevitylab/gerograph/internal/graph"

// Card list presentation rules: the hypothesis statement is shown in full,
// long evidence strings get truncated, and only the first couple of evidence
// and method entries appear with a more-indicator.
const (
	evidenceRunes = 30
	cardEntries   = 2
)

type Card struct {
	ID            string         `json:"id"`
	Hypothesis    string         `json:"hypothesis"`
	ConfidencePct int            `json:"confidence_pct"`
	Priority      graph.Priority `json:"priority"`
	Evidence      []string       `json:"evidence"`
	MoreEvidence  int            `json:"more_evidence,omitempty"`
	Methods       []string       `json:"methods"`
	MoreMethods   int            `json:"more_methods,omitempty"`
}

// BuildCard shapes a gap record for list display.
func BuildCard(g HypothesisGap) Card {
	evidence, moreEvidence := headOf(g.SupportingEvidence, cardEntries)
	for i, e := range evidence {
		evidence[i] = truncate(e, evidenceRunes)
	}
	methods, moreMethods := headOf(g.SuggestedMethods, cardEntries)

	return Card{
		ID:            g.ID,
		Hypothesis:    g.Hypothesis,
		ConfidencePct: g.ConfidencePct(),
		Priority:      g.Priority,
		Evidence:      evidence,
		MoreEvidence:  moreEvidence,
		Methods:       methods,
		MoreMethods:   moreMethods,
	}
}

func BuildCards(gs []HypothesisGap) []Card {
	cards := make([]Card, 0, len(gs))
	for _, g := range gs {
		cards = append(cards, BuildCard(g))
	}
	return cards
}

func headOf(items []string, n int) ([]string, int) {
	if len(items) <= n {
		return append([]string(nil), items...), 0
	}
	return append([]string(nil), items[:n]...), len(items) - n
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
