package flowchart

import (
	"strings"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/plugin"
)

const (
	priLine   = 0
	priCorner = 1
	priArrow  = 2
	priLabel  = 3
	priNode   = 4
	priUnset  = -1
)

// grid is the mutable character buffer the renderer stamps nodes, edges, and labels into. Cells
// track the priority of whatever was written so the overlap policy — nodes over labels over
// arrowheads over corners/junctions over line segments — can refuse lower-priority overwrites.
type grid struct {
	w, h  int
	cells [][]rune
	pri   [][]int
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h}
	g.cells = make([][]rune, h)
	g.pri = make([][]int, h)
	for y := 0; y < h; y++ {
		g.cells[y] = make([]rune, w)
		g.pri[y] = make([]int, w)
		for x := 0; x < w; x++ {
			g.cells[y][x] = ' '
			g.pri[y][x] = priUnset
		}
	}
	return g
}

func (g *grid) set(x, y int, r rune, priority int) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	if g.pri[y][x] > priority {
		return
	}
	g.cells[y][x] = r
	g.pri[y][x] = priority
}

func (g *grid) String() string {
	lines := make([]string, g.h)
	for y := 0; y < g.h; y++ {
		lines[y] = strings.TrimRight(string(g.cells[y]), " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Renderer implements [plugin.Renderer] for the flowchart diagram kind: it rasterizes a
// populated database and its layout into box-drawing character art.
type Renderer struct{}

func (Renderer) Render(db *diagram.Database, layout *plugin.LayoutResult) (string, error) {
	if layout == nil {
		return "", &diagram.RenderError{Message: "nil layout"}
	}
	if layout.Width == 0 || layout.Height == 0 {
		return "", nil
	}

	g := newGrid(layout.Width, layout.Height)

	for _, n := range db.Nodes() {
		box, ok := layout.Nodes[n.ID]
		if !ok {
			continue
		}
		drawNode(g, box, n.Label)
	}

	for _, route := range layout.Edges {
		if route.EdgeIndex < 0 || route.EdgeIndex >= len(db.Edges()) {
			continue
		}
		edge := db.Edges()[route.EdgeIndex]
		drawRoute(g, route, edge.Type)
	}

	for _, route := range layout.Edges {
		if route.LabelAt == nil {
			continue
		}
		edge := db.Edges()[route.EdgeIndex]
		if edge.Label == "" {
			continue
		}
		drawEdgeLabel(g, *route.LabelAt, edge.Label)
	}

	return g.String(), nil
}

func drawNode(g *grid, box plugin.NodeBox, label string) {
	x0, y0 := box.X, box.Y
	x1, y1 := box.X+box.Width-1, box.Y+box.Height-1

	g.set(x0, y0, '┌', priNode)
	g.set(x1, y0, '┐', priNode)
	g.set(x0, y1, '└', priNode)
	g.set(x1, y1, '┘', priNode)
	for x := x0 + 1; x < x1; x++ {
		g.set(x, y0, '─', priNode)
		g.set(x, y1, '─', priNode)
	}
	for y := y0 + 1; y < y1; y++ {
		g.set(x0, y, '│', priNode)
		g.set(x1, y, '│', priNode)
		for x := x0 + 1; x < x1; x++ {
			g.set(x, y, ' ', priNode)
		}
	}

	interiorWidth := box.Width - 2
	if interiorWidth <= 0 {
		return
	}
	text := []rune(label)
	if len(text) > interiorWidth {
		if interiorWidth <= 1 {
			text = []rune(strings.Repeat("…", interiorWidth))
		} else {
			text = append([]rune(string(text[:interiorWidth-1])), '…')
		}
	}
	startX := x0 + 1 + (interiorWidth-len(text))/2
	midY := y0 + box.Height/2
	for i, r := range text {
		g.set(startX+i, midY, r, priNode)
	}
}

func drawRoute(g *grid, route plugin.EdgeRoute, typ diagram.EdgeType) {
	pts := route.Waypoints
	if len(pts) < 2 {
		return
	}

	h, v := lineChars(typ)
	for i := 1; i < len(pts); i++ {
		drawSegment(g, pts[i-1], pts[i], h, v)
	}
	for i := 1; i < len(pts)-1; i++ {
		g.set(pts[i].X, pts[i].Y, cornerChar(pts[i-1], pts[i], pts[i+1]), priCorner)
	}
	if route.Junction != nil {
		g.set(route.Junction.X, route.Junction.Y, junctionChar(route.Waypoints), priCorner)
	}

	if typ.IsArrow() {
		end := pts[len(pts)-1]
		before := pts[len(pts)-2]
		// end lies on the target's border, which outranks an arrowhead, so the head goes on the
		// cell just before it along the final segment.
		head := end
		switch {
		case before.X < end.X:
			head.X--
		case before.X > end.X:
			head.X++
		case before.Y < end.Y:
			head.Y--
		case before.Y > end.Y:
			head.Y++
		}
		g.set(head.X, head.Y, arrowHead(typ, before, end), priArrow)
	}
}

func lineChars(typ diagram.EdgeType) (horiz, vert rune) {
	switch typ {
	case diagram.DottedArrow, diagram.DottedLine:
		return '╌', '╎'
	case diagram.ThickArrow, diagram.ThickLine:
		return '━', '┃'
	default:
		return '─', '│'
	}
}

func drawSegment(g *grid, a, b diagram.Point, horiz, vert rune) {
	if a.Y == b.Y {
		lo, hi := a.X, b.X
		if lo > hi {
			lo, hi = hi, lo
		}
		for x := lo; x <= hi; x++ {
			g.set(x, a.Y, horiz, priLine)
		}
		return
	}
	lo, hi := a.Y, b.Y
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := lo; y <= hi; y++ {
		g.set(a.X, y, vert, priLine)
	}
}

// cornerChar picks the elbow glyph for a direction change at b, given the segment arriving from a
// and the segment leaving toward c.
func cornerChar(a, b, c diagram.Point) rune {
	fromLeft := a.X < b.X
	fromRight := a.X > b.X
	fromTop := a.Y < b.Y
	fromBottom := a.Y > b.Y
	toDown := c.Y > b.Y
	toUp := c.Y < b.Y
	toRight := c.X > b.X
	toLeft := c.X < b.X

	switch {
	case fromLeft && toUp:
		return '┘'
	case fromRight && toUp:
		return '└'
	case fromLeft && toDown:
		return '┐'
	case fromRight && toDown:
		return '┌'
	case fromTop && toRight:
		return '└'
	case fromTop && toLeft:
		return '┘'
	case fromBottom && toRight:
		return '┌'
	case fromBottom && toLeft:
		return '┐'
	}
	return '┼'
}

// junctionChar picks a tee glyph for a fan-out branch point: it always has one trunk segment and
// two or more branch segments, so a tee pointing away from the trunk direction is always correct.
func junctionChar(pts []diagram.Point) rune {
	if len(pts) < 2 {
		return '┼'
	}
	a, b := pts[0], pts[1]
	switch {
	case a.Y < b.Y: // trunk leaves downward (TopDown)
		return '┬'
	case a.Y > b.Y: // trunk leaves upward (BottomUp)
		return '┴'
	case a.X < b.X: // trunk leaves rightward (LeftRight)
		return '├'
	default: // trunk leaves leftward (RightLeft)
		return '┤'
	}
}

func arrowHead(typ diagram.EdgeType, before, end diagram.Point) rune {
	switch typ {
	case diagram.OpenArrow:
		return 'o'
	case diagram.CrossArrow:
		return 'x'
	default:
		switch {
		case before.X < end.X:
			return '>'
		case before.X > end.X:
			return '<'
		case before.Y < end.Y:
			return 'v'
		default:
			return '^'
		}
	}
}

func drawEdgeLabel(g *grid, at diagram.Point, label string) {
	text := []rune(label)
	startX := at.X - len(text)/2
	for i, r := range text {
		x := startX + i
		if x >= 0 && x < g.w && at.Y >= 0 && at.Y < g.h && g.pri[at.Y][x] < priLabel {
			g.set(x, at.Y, r, priLabel)
		}
	}
}
