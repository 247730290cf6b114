package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const genericGreeting = "Hi! Select a node in the graph or a hypothesis gap to explore, and I can walk you through what the dataset says about it."

// MockAssistant simulates an inference backend: it waits a fixed delay, then
// returns a templated reply shaped by the current selection. Cancelling the
// context cancels the pending reply.
type MockAssistant struct {
	Delay time.Duration
}

func NewMockAssistant(delay time.Duration) *MockAssistant {
	return &MockAssistant{Delay: delay}
}

func (m *MockAssistant) SubmitQuery(ctx context.Context, qc QueryContext) (string, error) {
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return Reply(qc), nil
}

// Reply selects the templated response: node blurb first, then gap summary,
// then the generic greeting.
func Reply(qc QueryContext) string {
	switch {
	case qc.SelectedNode != nil:
		return nodeBlurb(qc)
	case qc.SelectedGap != nil:
		g := qc.SelectedGap
		return fmt.Sprintf(
			"This hypothesis gap has a confidence score of %d%%: %q. Suggested approaches to close it: %s.",
			g.ConfidencePct(), g.Hypothesis, strings.Join(g.SuggestedMethods, ", "))
	default:
		return genericGreeting
	}
}

func nodeBlurb(qc QueryContext) string {
	n := qc.SelectedNode
	switch n.Type {
	case "gene":
		return fmt.Sprintf(
			"%s is a longevity-associated gene with %d known connections in the graph. Its interactions with major aging pathways make it a frequent intervention target.",
			n.Name, n.Connections)
	case "pathway":
		return fmt.Sprintf(
			"%s is a signaling pathway central to aging biology, linked to %d other entities here. Perturbing it shifts several downstream longevity phenotypes.",
			n.Name, n.Connections)
	case "method":
		return fmt.Sprintf(
			"%s is an experimental method applied across %d entities in this graph. It is commonly combined with sequencing or proteomic readouts in aging studies.",
			n.Name, n.Connections)
	case "researcher":
		return fmt.Sprintf(
			"%s is a researcher connected to %d entities in this dataset, spanning genes, pathways, and proposed hypotheses in the longevity field.",
			n.Name, n.Connections)
	case "hypothesis":
		return fmt.Sprintf(
			"%q is a working hypothesis tied to %d entities in the graph. The linked evidence suggests it is worth a closer literature pass.",
			n.Name, n.Connections)
	default:
		return fmt.Sprintf("%s appears in the graph with %d connections.", n.Name, n.Connections)
	}
}
