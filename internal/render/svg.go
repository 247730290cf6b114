// Package render draws the graph view as SVG. Positions come straight from
// the dataset; no layout is computed here.
package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/longevitylab/gerograph/internal/graph"
)

// Visual tuning constants. Node size grows monotonically with connection
// count; the exact curve is a presentation choice.
const (
	baseRadius  = 8.0
	radiusScale = 4.0
)

var typeColors = map[graph.NodeType]string{
	graph.TypeGene:       "#4f83cc",
	graph.TypePathway:    "#2e9e6b",
	graph.TypeMethod:     "#c77d2e",
	graph.TypeResearcher: "#8a5cc2",
	graph.TypeHypothesis: "#c94f6d",
}

const defaultColor = "#7a7a7a"

// NodeRadius maps connection count to a circle radius.
func NodeRadius(connections int) int {
	if connections < 0 {
		connections = 0
	}
	return int(baseRadius + radiusScale*math.Log2(float64(1+connections)))
}

// NodeColor returns the fixed color for a node type.
func NodeColor(t graph.NodeType) string {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return defaultColor
}

type Options struct {
	Width          int
	Height         int
	SelectedNodeID string
}

// Graph writes the visible subgraph as an SVG document. Edges render first so
// nodes sit on top; each node carries a <title> so its name shows on hover.
func Graph(w io.Writer, nodes []graph.Node, edges []graph.Edge, opts Options) {
	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#101418")

	pos := make(map[string]graph.Node, len(nodes))
	for _, n := range nodes {
		pos[n.ID] = n
	}

	for _, e := range edges {
		src, ok := pos[e.Source]
		if !ok {
			continue
		}
		dst, ok := pos[e.Target]
		if !ok {
			continue
		}
		width := 1.0 + e.Strength*3.0
		canvas.Line(int(src.X), int(src.Y), int(dst.X), int(dst.Y),
			fmt.Sprintf("stroke:#3c4650;stroke-width:%.1f", width))
	}

	for _, n := range nodes {
		r := NodeRadius(n.Connections)
		canvas.Group()
		canvas.Title(n.Name)
		if n.ID == opts.SelectedNodeID {
			canvas.Circle(int(n.X), int(n.Y), r+4, "fill:none;stroke:#f2c14e;stroke-width:3")
		}
		canvas.Circle(int(n.X), int(n.Y), r, fmt.Sprintf("fill:%s", NodeColor(n.Type)))
		canvas.Text(int(n.X), int(n.Y)+r+14, n.Name,
			"text-anchor:middle;font-size:11px;fill:#d7dde3;font-family:sans-serif")
		canvas.Gend()
	}

	canvas.End()
}
