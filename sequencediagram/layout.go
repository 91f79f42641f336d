package sequencediagram

import (
	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/plugin"
)

const (
	participantHPad = 4
	participantGap  = 4
	messageRowGap   = 2 // rows between successive messages, leaves room for the label
)

// Layout places participants along a single header row and stacks messages below it in
// declaration order, one per row. It implements [plugin.Layout] but does not use flowchart's
// layered algorithm: row order here is message sequence, not graph topology.
type Layout struct{}

func (Layout) Layout(db *diagram.Database) (*plugin.LayoutResult, error) {
	nodes := db.Nodes()
	if len(nodes) == 0 {
		return &plugin.LayoutResult{Nodes: map[string]plugin.NodeBox{}, Width: 0, Height: 0}, nil
	}

	boxes := make(map[string]plugin.NodeBox, len(nodes))
	x, maxX := 0, 0
	for _, n := range nodes {
		w := len([]rune(n.Label)) + participantHPad
		if w < 5 {
			w = 5
		}
		boxes[n.ID] = plugin.NodeBox{X: x, Y: 0, Width: w, Height: 3}
		if x+w > maxX {
			maxX = x + w
		}
		x += w + participantGap
	}

	edges := db.Edges()
	routes := make([]plugin.EdgeRoute, len(edges))
	y := 4
	for i, e := range edges {
		fromBox, to := boxes[e.From], boxes[e.To]
		fromX := fromBox.X + fromBox.Width/2
		toX := to.X + to.Width/2

		var waypoints []diagram.Point
		if fromX == toX {
			// A self-message: a short stub out and back, a loop three cells wide spanning two rows.
			waypoints = []diagram.Point{{X: fromX, Y: y}, {X: fromX + 3, Y: y}, {X: fromX + 3, Y: y + 1}, {X: fromX, Y: y + 1}}
			y++
		} else {
			waypoints = []diagram.Point{{X: fromX, Y: y}, {X: toX, Y: y}}
		}

		route := plugin.EdgeRoute{EdgeIndex: i, Waypoints: waypoints}
		if e.Label != "" {
			mid := diagram.Point{X: (fromX + toX) / 2, Y: y - 1}
			route.LabelAt = &mid
		}
		routes[i] = route
		y += messageRowGap
	}

	height := y
	if len(edges) == 0 {
		height = 4
	}

	return &plugin.LayoutResult{Nodes: boxes, Edges: routes, Width: maxX, Height: height}, nil
}
