package flowchart

import (
	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/internal/assert"
	"github.com/meridian-diagrams/meridian/plugin"
)

// outAttach returns the perimeter cell an edge leaves its source from, and inAttach the
// perimeter cell it arrives at its target on, for the given direction.
func outAttach(b plugin.NodeBox, dir diagram.Direction) diagram.Point {
	switch dir {
	case diagram.TopDown:
		return diagram.Point{X: b.X + b.Width/2, Y: b.Y + b.Height - 1}
	case diagram.BottomUp:
		return diagram.Point{X: b.X + b.Width/2, Y: b.Y}
	case diagram.LeftRight:
		return diagram.Point{X: b.X + b.Width - 1, Y: b.Y + b.Height/2}
	default: // RightLeft
		return diagram.Point{X: b.X, Y: b.Y + b.Height/2}
	}
}

func inAttach(b plugin.NodeBox, dir diagram.Direction) diagram.Point {
	switch dir {
	case diagram.TopDown:
		return diagram.Point{X: b.X + b.Width/2, Y: b.Y}
	case diagram.BottomUp:
		return diagram.Point{X: b.X + b.Width/2, Y: b.Y + b.Height - 1}
	case diagram.LeftRight:
		return diagram.Point{X: b.X, Y: b.Y + b.Height/2}
	default: // RightLeft
		return diagram.Point{X: b.X + b.Width - 1, Y: b.Y + b.Height/2}
	}
}

// isVertical reports whether the layer axis runs top-to-bottom (TopDown/BottomUp) rather than
// left-to-right (LeftRight/RightLeft).
func isVertical(dir diagram.Direction) bool {
	return dir == diagram.TopDown || dir == diagram.BottomUp
}

// routeEdges computes an orthogonal route for every edge, merging the routes of a fan-out (a
// node with more than one outgoing edge into a different layer) onto a shared trunk with a
// recorded junction point.
func routeEdges(dir diagram.Direction, edges []diagram.Edge, boxes map[string]plugin.NodeBox, layer map[string]int) []plugin.EdgeRoute {
	for _, e := range edges {
		_, fromOK := boxes[e.From]
		_, toOK := boxes[e.To]
		assert.That(fromOK && toOK, "edge endpoints %q -> %q must both have an assigned box", e.From, e.To)
	}

	// Group edges by source, to find fan-outs that cross a layer boundary.
	bySource := make(map[string][]int)
	for i, e := range edges {
		if layer[e.To] != layer[e.From] {
			bySource[e.From] = append(bySource[e.From], i)
		}
	}

	junctionAt := make(map[int]diagram.Point) // edge index -> shared trunk point
	for from, idxs := range bySource {
		if len(idxs) < 2 {
			continue
		}
		out := outAttach(boxes[from], dir)
		j := trunkPoint(out, dir)
		for _, idx := range idxs {
			junctionAt[idx] = j
		}
	}

	routes := make([]plugin.EdgeRoute, len(edges))
	for i, e := range edges {
		from, to := boxes[e.From], boxes[e.To]
		out := outAttach(from, dir)
		in := inAttach(to, dir)

		var waypoints []diagram.Point
		if straight(out, in, dir) {
			waypoints = []diagram.Point{out, in}
		} else if j, ok := junctionAt[i]; ok {
			waypoints = []diagram.Point{out, j, crossPoint(in, j, dir), in}
		} else {
			mid := trunkPoint(out, dir)
			waypoints = []diagram.Point{out, mid, crossPoint(in, mid, dir), in}
		}

		route := plugin.EdgeRoute{EdgeIndex: i, Waypoints: dedupe(waypoints)}
		if j, ok := junctionAt[i]; ok {
			jp := j
			route.Junction = &jp
		}
		if e.Label != "" {
			anchor := labelAnchor(route.Waypoints)
			route.LabelAt = &anchor
		}
		assertOrthogonal(route.Waypoints)
		routes[i] = route
	}
	return routes
}

// assertOrthogonal checks the Manhattan-routing invariant: every segment between consecutive
// waypoints runs along a single axis.
func assertOrthogonal(pts []diagram.Point) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		assert.That(a.X == b.X || a.Y == b.Y, "route segment %v -> %v must be axis-aligned", a, b)
	}
}

// straight reports whether a direct single-segment connection suffices: the cross-axis
// coordinates already line up.
func straight(out, in diagram.Point, dir diagram.Direction) bool {
	if isVertical(dir) {
		return out.X == in.X
	}
	return out.Y == in.Y
}

// trunkPoint is the point one cell out from an attach point, along the layer axis, where a
// fan-out's shared segment runs.
func trunkPoint(out diagram.Point, dir diagram.Direction) diagram.Point {
	switch dir {
	case diagram.TopDown:
		return diagram.Point{X: out.X, Y: out.Y + 1}
	case diagram.BottomUp:
		return diagram.Point{X: out.X, Y: out.Y - 1}
	case diagram.LeftRight:
		return diagram.Point{X: out.X + 1, Y: out.Y}
	default: // RightLeft
		return diagram.Point{X: out.X - 1, Y: out.Y}
	}
}

// crossPoint combines the incoming attach point's cross-axis coordinate with the trunk's
// layer-axis coordinate, forming the second corner of a three-segment route.
func crossPoint(in, trunk diagram.Point, dir diagram.Direction) diagram.Point {
	if isVertical(dir) {
		return diagram.Point{X: in.X, Y: trunk.Y}
	}
	return diagram.Point{X: trunk.X, Y: in.Y}
}

func dedupe(pts []diagram.Point) []diagram.Point {
	out := pts[:0:0]
	for i, p := range pts {
		if i > 0 && p == pts[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// labelAnchor is the midpoint of the longest straight (single-axis) segment of a route.
func labelAnchor(pts []diagram.Point) diagram.Point {
	if len(pts) < 2 {
		if len(pts) == 1 {
			return pts[0]
		}
		return diagram.Point{}
	}
	bestLen := -1
	var best diagram.Point
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		length := abs(a.X-b.X) + abs(a.Y-b.Y)
		if length > bestLen {
			bestLen = length
			best = diagram.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
