package assistant

import (
	"fmt"
	"strings"
)

// buildPrompt flattens the query context for the real inference providers.
// The mock assistant never uses this; it replies from templates directly.
func buildPrompt(qc QueryContext) string {
	var b strings.Builder
	b.WriteString("You are a research assistant for a longevity knowledge graph explorer.\n")

	if qc.SelectedNode != nil {
		n := qc.SelectedNode
		fmt.Fprintf(&b, "The user has selected the %s node %q (%d connections, priority %s).\n",
			n.Type, n.Name, n.Connections, n.Priority)
	}
	if qc.SelectedGap != nil {
		g := qc.SelectedGap
		fmt.Fprintf(&b, "The user has selected a hypothesis gap (confidence %d%%): %s\n",
			g.ConfidencePct(), g.Hypothesis)
		if len(g.SuggestedMethods) > 0 {
			fmt.Fprintf(&b, "Suggested methods: %s\n", strings.Join(g.SuggestedMethods, ", "))
		}
	}

	fmt.Fprintf(&b, "\nUser message: %s\n\nAnswer concisely using the selection context above.", qc.Text)
	return b.String()
}
