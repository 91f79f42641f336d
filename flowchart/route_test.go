package flowchart

import (
	"testing"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/plugin"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestRouteEdgesOrthogonal(t *testing.T) {
	db := parse(t, "graph TD\nA --> B\n")
	res, err := Layout{}.Layout(db)
	require.NoError(t, err)
	require.EqualValues(t, len(res.Edges), 1)

	pts := res.Edges[0].Waypoints
	require.Truef(t, len(pts) >= 2, "route needs at least two waypoints")
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		assert.Truef(t, a.X == b.X || a.Y == b.Y, "segment %d must be axis-aligned", i)
	}
}

func TestRouteFanOutSharesJunction(t *testing.T) {
	db := parse(t, "graph TD\n    S --> A\n    S --> B\n")
	res, err := Layout{}.Layout(db)
	require.NoError(t, err)
	require.EqualValues(t, len(res.Edges), 2)
	require.NotNil(t, res.Edges[0].Junction)
	require.NotNil(t, res.Edges[1].Junction)
	assert.EqualValues(t, *res.Edges[0].Junction, *res.Edges[1].Junction)
}

func TestDedupeCollapsesRepeatedPoints(t *testing.T) {
	pts := []diagram.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}}
	got := dedupe(pts)
	require.EqualValues(t, len(got), 2)
	assert.EqualValues(t, got[0], diagram.Point{X: 0, Y: 0})
	assert.EqualValues(t, got[1], diagram.Point{X: 1, Y: 0})
}

func TestLabelAnchorPicksLongestSegment(t *testing.T) {
	pts := []diagram.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 5, Y: 1}}
	got := labelAnchor(pts)
	assert.EqualValues(t, got, diagram.Point{X: 2, Y: 1})
}

func TestStraightDetectsAlignedAttachPoints(t *testing.T) {
	assert.Truef(t, straight(diagram.Point{X: 3, Y: 0}, diagram.Point{X: 3, Y: 5}, diagram.TopDown), "same X should be straight in TopDown")
	assert.Truef(t, !straight(diagram.Point{X: 3, Y: 0}, diagram.Point{X: 5, Y: 5}, diagram.TopDown), "different X should not be straight in TopDown")
	assert.Truef(t, straight(diagram.Point{X: 0, Y: 2}, diagram.Point{X: 6, Y: 2}, diagram.LeftRight), "same Y should be straight in LeftRight")
}

func TestOutAttachInAttachPerimeter(t *testing.T) {
	box := plugin.NodeBox{X: 0, Y: 0, Width: 5, Height: 3}
	out := outAttach(box, diagram.TopDown)
	assert.EqualValues(t, out, diagram.Point{X: 2, Y: 2})
	in := inAttach(box, diagram.TopDown)
	assert.EqualValues(t, in, diagram.Point{X: 2, Y: 0})
}
