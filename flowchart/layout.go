package flowchart

import (
	"sort"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/internal/assert"
	"github.com/meridian-diagrams/meridian/plugin"
)

// padding is a shape's layout geometry: horizontal/vertical padding around a centered label, and
// the box's minimum width/height regardless of label size.
type padding struct {
	hPad, vPad, minW, minH int
}

var paddingTable = map[diagram.NodeShape]padding{
	diagram.Rectangle:     {4, 2, 5, 3},
	diagram.RoundedRect:   {4, 2, 5, 3},
	diagram.Circle:        {6, 4, 7, 5},
	diagram.Rhombus:       {6, 2, 7, 3},
	diagram.Hexagon:       {6, 2, 7, 3},
	diagram.Stadium:       {6, 2, 7, 3},
	diagram.Cylinder:      {4, 4, 5, 5},
	diagram.Subroutine:    {6, 2, 7, 3},
	diagram.Parallelogram: {6, 2, 7, 3},
	diagram.Trapezoid:     {6, 2, 7, 3},
	diagram.Asymmetric:    {4, 2, 5, 3},
}

const (
	layerGap = 1 // gap, in cells, between successive layers
	indexGap = 2 // gap, in cells, between siblings within a layer
)

// Layout implements [plugin.Layout] with the three-phase layered digraph algorithm described for
// the flowchart plugin: longest-path layer assignment (cycle-tolerant via back-edge reversal),
// barycenter within-layer ordering over two sweeps, then shape-padded coordinate assignment and
// orthogonal Manhattan edge routing with junction merging for fan-outs.
type Layout struct{}

func (Layout) Layout(db *diagram.Database) (*plugin.LayoutResult, error) {
	nodes := db.Nodes()
	if len(nodes) == 0 {
		return &plugin.LayoutResult{Nodes: map[string]plugin.NodeBox{}, Width: 0, Height: 0}, nil
	}

	edges := db.Edges()
	layer := assignLayers(nodes, edges)
	order := orderWithinLayers(nodes, edges, layer)

	boxes, maxX, maxY := assignCoordinates(db.Direction(), nodes, layer, order)
	assert.That(len(boxes) == len(nodes), "every node must receive a box, got %d boxes for %d nodes", len(boxes), len(nodes))
	for _, a := range nodes {
		for _, b := range nodes {
			if a.ID == b.ID {
				continue
			}
			assert.That(!boxesOverlap(boxes[a.ID], boxes[b.ID]), "node boxes %q and %q must not overlap, got %+v and %+v", a.ID, b.ID, boxes[a.ID], boxes[b.ID])
		}
	}

	routes := routeEdges(db.Direction(), edges, boxes, layer)

	return &plugin.LayoutResult{Nodes: boxes, Edges: routes, Width: 1 + maxX, Height: 1 + maxY}, nil
}

// boxesOverlap reports whether two node rectangles share any cell, the disjointness invariant
// the layered coordinate assignment in assignCoordinates must uphold.
func boxesOverlap(a, b plugin.NodeBox) bool {
	if a.X+a.Width <= b.X || b.X+b.Width <= a.X {
		return false
	}
	if a.Y+a.Height <= b.Y || b.Y+b.Height <= a.Y {
		return false
	}
	return true
}

// --- Phase 1: layer assignment ---

type effEdge struct {
	to     string
	length int
}

// assignLayers computes each node's longest-path layer. Cycles are broken by reversing
// DFS-detected back edges for this computation only; routing later uses the original, unreversed
// edge direction.
func assignLayers(nodes []*diagram.Node, edges []diagram.Edge) map[string]int {
	outAdj := make(map[string][]int) // node id -> indices into edges
	for i, e := range edges {
		outAdj[e.From] = append(outAdj[e.From], i)
	}

	isBackEdge := make([]bool, len(edges))
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(nodes))

	var visit func(u string)
	visit = func(u string) {
		color[u] = gray
		for _, idx := range outAdj[u] {
			v := edges[idx].To
			switch color[v] {
			case white:
				visit(v)
			case gray:
				isBackEdge[idx] = true
			}
		}
		color[u] = black
	}
	for _, n := range nodes {
		if color[n.ID] == white {
			visit(n.ID)
		}
	}

	predecessors := make(map[string][]effEdge, len(nodes))
	for i, e := range edges {
		if isBackEdge[i] {
			predecessors[e.From] = append(predecessors[e.From], effEdge{to: e.To, length: e.Length})
		} else {
			predecessors[e.To] = append(predecessors[e.To], effEdge{to: e.From, length: e.Length})
		}
	}

	layer := make(map[string]int, len(nodes))
	computed := make(map[string]bool, len(nodes))
	var layerOf func(id string) int
	layerOf = func(id string) int {
		if computed[id] {
			return layer[id]
		}
		computed[id] = true // break any residual cycle defensively
		best := 0
		for _, pred := range predecessors[id] {
			if v := layerOf(pred.to) + pred.length; v > best {
				best = v
			}
		}
		layer[id] = best
		return best
	}
	for _, n := range nodes {
		layerOf(n.ID)
	}
	return layer
}

// --- Phase 2: within-layer ordering ---

// orderWithinLayers returns, for every node id, its index within its layer after two barycenter
// sweeps.
func orderWithinLayers(nodes []*diagram.Node, edges []diagram.Edge, layer map[string]int) map[string]int {
	maxLayer := 0
	layerNodes := make(map[int][]string)
	for _, n := range nodes {
		l := layer[n.ID]
		layerNodes[l] = append(layerNodes[l], n.ID)
		if l > maxLayer {
			maxLayer = l
		}
	}

	pos := make(map[string]int)
	for l := 0; l <= maxLayer; l++ {
		for i, id := range layerNodes[l] {
			pos[id] = i
		}
	}

	up := make(map[string][]string)   // node -> sources of its incoming edges
	down := make(map[string][]string) // node -> targets of its outgoing edges
	for _, e := range edges {
		up[e.To] = append(up[e.To], e.From)
		down[e.From] = append(down[e.From], e.To)
	}

	barycenter := func(id string, neighbors map[string][]string) (float64, bool) {
		ns := neighbors[id]
		if len(ns) == 0 {
			return 0, false
		}
		sum := 0
		for _, n := range ns {
			sum += pos[n]
		}
		return float64(sum) / float64(len(ns)), true
	}

	sweep := func(from, to, step int, neighbors map[string][]string) {
		for l := from; l != to+step; l += step {
			ids := layerNodes[l]
			keys := make(map[string]float64, len(ids))
			for i, id := range ids {
				if bc, ok := barycenter(id, neighbors); ok {
					keys[id] = bc
				} else {
					keys[id] = float64(i)
				}
			}
			sort.SliceStable(ids, func(i, j int) bool {
				return keys[ids[i]] < keys[ids[j]]
			})
			for i, id := range ids {
				pos[id] = i
			}
			layerNodes[l] = ids
		}
	}

	sweep(1, maxLayer, 1, up)
	sweep(maxLayer-1, 0, -1, down)

	result := make(map[string]int, len(nodes))
	for _, ids := range layerNodes {
		for i, id := range ids {
			result[id] = i
		}
	}
	return result
}

// --- Phase 3: coordinate assignment ---

func shapePadding(s diagram.NodeShape) padding {
	if p, ok := paddingTable[s]; ok {
		return p
	}
	return paddingTable[diagram.Rectangle]
}

func boxSize(n *diagram.Node) (w, h int) {
	p := shapePadding(n.Shape)
	labelWidth := len([]rune(n.Label))
	w = labelWidth + p.hPad
	if w < p.minW {
		w = p.minW
	}
	h = 1 + p.vPad
	if h < p.minH {
		h = p.minH
	}
	return w, h
}

func assignCoordinates(dir diagram.Direction, nodes []*diagram.Node, layer, order map[string]int) (map[string]plugin.NodeBox, int, int) {
	maxLayer := 0
	layerOf := make(map[string]int, len(nodes))
	indexOf := make(map[string]int, len(nodes))
	byID := make(map[string]*diagram.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
		l := layer[n.ID]
		layerOf[n.ID] = l
		indexOf[n.ID] = order[n.ID]
		if l > maxLayer {
			maxLayer = l
		}
	}

	width := make(map[string]int, len(nodes))
	height := make(map[string]int, len(nodes))
	for _, n := range nodes {
		w, h := boxSize(n)
		width[n.ID] = w
		height[n.ID] = h
	}

	primarySizeOf := func(id string) int {
		if dir == diagram.LeftRight || dir == diagram.RightLeft {
			return width[id]
		}
		return height[id]
	}
	secondarySizeOf := func(id string) int {
		if dir == diagram.LeftRight || dir == diagram.RightLeft {
			return height[id]
		}
		return width[id]
	}

	layerNodes := make([][]string, maxLayer+1)
	for _, n := range nodes {
		l := layerOf[n.ID]
		for len(layerNodes[l]) <= indexOf[n.ID] {
			layerNodes[l] = append(layerNodes[l], "")
		}
		layerNodes[l][indexOf[n.ID]] = n.ID
	}

	// Primary axis: cumulative offset per layer, sized by that layer's tallest/widest member.
	primaryOffset := make([]int, maxLayer+2)
	layerPrimarySize := make([]int, maxLayer+1)
	for l := 0; l <= maxLayer; l++ {
		maxSize := 0
		for _, id := range layerNodes[l] {
			if id == "" {
				continue
			}
			if s := primarySizeOf(id); s > maxSize {
				maxSize = s
			}
		}
		layerPrimarySize[l] = maxSize
		primaryOffset[l+1] = primaryOffset[l] + maxSize + layerGap
	}
	totalPrimary := primaryOffset[maxLayer+1] - layerGap
	if totalPrimary < 0 {
		totalPrimary = 0
	}

	// Secondary axis: pack each layer left-to-right, then center narrower layers within the
	// widest layer's extent.
	secondaryPos := make(map[string]int, len(nodes))
	layerSecondaryExtent := make([]int, maxLayer+1)
	for l := 0; l <= maxLayer; l++ {
		offset := 0
		for _, id := range layerNodes[l] {
			if id == "" {
				continue
			}
			secondaryPos[id] = offset
			offset += secondarySizeOf(id) + indexGap
		}
		if offset > 0 {
			offset -= indexGap
		}
		layerSecondaryExtent[l] = offset
	}
	maxSecondaryExtent := 0
	for _, e := range layerSecondaryExtent {
		if e > maxSecondaryExtent {
			maxSecondaryExtent = e
		}
	}
	for l := 0; l <= maxLayer; l++ {
		shift := (maxSecondaryExtent - layerSecondaryExtent[l]) / 2
		for _, id := range layerNodes[l] {
			if id == "" {
				continue
			}
			secondaryPos[id] += shift
		}
	}

	boxes := make(map[string]plugin.NodeBox, len(nodes))
	maxX, maxY := 0, 0
	for _, n := range nodes {
		id := n.ID
		l := layerOf[id]
		primary := primaryOffset[l]
		secondary := secondaryPos[id]

		var box plugin.NodeBox
		switch dir {
		case diagram.TopDown:
			box = plugin.NodeBox{X: secondary, Y: primary, Width: width[id], Height: height[id]}
		case diagram.BottomUp:
			y := totalPrimary - primary - primarySizeOf(id)
			box = plugin.NodeBox{X: secondary, Y: y, Width: width[id], Height: height[id]}
		case diagram.LeftRight:
			box = plugin.NodeBox{X: primary, Y: secondary, Width: width[id], Height: height[id]}
		case diagram.RightLeft:
			x := totalPrimary - primary - primarySizeOf(id)
			box = plugin.NodeBox{X: x, Y: secondary, Width: width[id], Height: height[id]}
		}
		boxes[id] = box
		if box.X+box.Width > maxX {
			maxX = box.X + box.Width
		}
		if box.Y+box.Height > maxY {
			maxY = box.Y + box.Height
		}
	}

	return boxes, maxX, maxY
}
