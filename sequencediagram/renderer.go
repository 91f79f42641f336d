package sequencediagram

import (
	"strings"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/plugin"
)

// Renderer rasterizes a sequence diagram: a participant header row, a dashed lifeline per
// participant running the full height of the diagram, and one horizontal message arrow per
// row beneath it.
type Renderer struct{}

func (Renderer) Render(db *diagram.Database, layout *plugin.LayoutResult) (string, error) {
	if layout == nil {
		return "", &diagram.RenderError{Message: "nil layout"}
	}
	if layout.Width == 0 || layout.Height == 0 {
		return "", nil
	}

	cells := make([][]rune, layout.Height)
	for y := range cells {
		cells[y] = make([]rune, layout.Width)
		for x := range cells[y] {
			cells[y][x] = ' '
		}
	}
	set := func(x, y int, r rune) {
		if x >= 0 && x < layout.Width && y >= 0 && y < layout.Height {
			cells[y][x] = r
		}
	}

	for _, n := range db.Nodes() {
		box, ok := layout.Nodes[n.ID]
		if !ok {
			continue
		}
		drawParticipantBox(set, box, n.Label)
		lifelineX := box.X + box.Width/2
		for y := box.Y + box.Height; y < layout.Height; y++ {
			set(lifelineX, y, '╎')
		}
	}

	edges := db.Edges()
	for _, route := range layout.Edges {
		if route.EdgeIndex < 0 || route.EdgeIndex >= len(edges) {
			continue
		}
		drawMessage(set, route, edges[route.EdgeIndex].Type)
	}
	for _, route := range layout.Edges {
		if route.LabelAt == nil {
			continue
		}
		edge := edges[route.EdgeIndex]
		if edge.Label == "" {
			continue
		}
		drawLabel(set, *route.LabelAt, layout.Width, edge.Label)
	}

	lines := make([]string, len(cells))
	for y, row := range cells {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n"), nil
}

func drawParticipantBox(set func(int, int, rune), box plugin.NodeBox, label string) {
	x0, y0 := box.X, box.Y
	x1, y1 := box.X+box.Width-1, box.Y+box.Height-1
	set(x0, y0, '┌')
	set(x1, y0, '┐')
	set(x0, y1, '└')
	set(x1, y1, '┘')
	for x := x0 + 1; x < x1; x++ {
		set(x, y0, '─')
		set(x, y1, '─')
	}
	for y := y0 + 1; y < y1; y++ {
		set(x0, y, '│')
		set(x1, y, '│')
	}
	text := []rune(label)
	interior := box.Width - 2
	if interior > 0 {
		if len(text) > interior {
			if interior > 1 {
				text = append([]rune(string(text[:interior-1])), '…')
			} else {
				text = []rune{'…'}
			}
		}
		start := x0 + 1 + (interior-len(text))/2
		for i, r := range text {
			set(start+i, y0+1, r)
		}
	}
}

func drawMessage(set func(int, int, rune), route plugin.EdgeRoute, typ diagram.EdgeType) {
	pts := route.Waypoints
	if len(pts) < 2 {
		return
	}
	h, _ := lineChar(typ)
	for i := 1; i < len(pts); i++ {
		drawSegment(set, pts[i-1], pts[i], h)
	}
	last, prev := pts[len(pts)-1], pts[len(pts)-2]
	if typ.IsArrow() {
		set(last.X, last.Y, arrowHead(typ, prev, last))
	}
}

func lineChar(typ diagram.EdgeType) (horiz, vert rune) {
	switch typ {
	case diagram.DottedArrow, diagram.DottedLine, diagram.OpenArrow:
		return '╌', '╎'
	default:
		return '─', '│'
	}
}

func drawSegment(set func(int, int, rune), a, b diagram.Point, horiz rune) {
	if a.Y == b.Y {
		lo, hi := a.X, b.X
		if lo > hi {
			lo, hi = hi, lo
		}
		for x := lo; x <= hi; x++ {
			set(x, a.Y, horiz)
		}
		return
	}
	lo, hi := a.Y, b.Y
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := lo; y <= hi; y++ {
		set(a.X, y, '│')
	}
}

func arrowHead(typ diagram.EdgeType, before, end diagram.Point) rune {
	switch typ {
	case diagram.OpenArrow:
		return 'o'
	case diagram.CrossArrow:
		return 'x'
	default:
		if before.X < end.X {
			return '>'
		}
		return '<'
	}
}

func drawLabel(set func(int, int, rune), at diagram.Point, width int, label string) {
	text := []rune(label)
	start := at.X - len(text)/2
	for i, r := range text {
		x := start + i
		if x >= 0 && x < width {
			set(x, at.Y, r)
		}
	}
}
