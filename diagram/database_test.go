package diagram

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestDatabaseAddNode(t *testing.T) {
	db := NewDatabase(TopDown)

	n, err := db.AddNode(NodeData{ID: "A"})
	require.NoError(t, err)
	assert.EqualValues(t, n.Label, "A")
	assert.EqualValues(t, n.Shape, Rectangle)
	assert.EqualValues(t, db.NodeCount(), 1)
}

func TestDatabaseAddNodeTwiceLastWinsLabelFirstWinsShape(t *testing.T) {
	db := NewDatabase(TopDown)

	_, err := db.AddNode(NodeData{ID: "A", Label: "first", Shape: Circle})
	require.NoError(t, err)
	_, err = db.AddNode(NodeData{ID: "A", Label: "second", Shape: Rhombus})
	require.NoError(t, err)

	n, ok := db.GetNode("A")
	require.True(t, ok)
	assert.EqualValues(t, n.Label, "second")
	assert.EqualValues(t, n.Shape, Circle)
	assert.EqualValues(t, db.NodeCount(), 1)
}

func TestDatabaseAddNodeEmptyID(t *testing.T) {
	db := NewDatabase(TopDown)

	_, err := db.AddNode(NodeData{})
	require.NotNil(t, err)
}

func TestDatabaseAddEdgeAutoCreatesEndpoints(t *testing.T) {
	db := NewDatabase(TopDown)

	_, err := db.AddEdge(EdgeData{From: "A", To: "B", Type: Arrow})
	require.NoError(t, err)

	assert.EqualValues(t, db.NodeCount(), 2)
	a, ok := db.GetNode("A")
	require.True(t, ok)
	assert.EqualValues(t, a.Label, "A")
	assert.EqualValues(t, a.Shape, Rectangle)
	b, ok := db.GetNode("B")
	require.True(t, ok)
	assert.EqualValues(t, b.Label, "B")
}

func TestDatabaseAutoCreatedNodeGetsRealShapeLater(t *testing.T) {
	db := NewDatabase(TopDown)

	_, err := db.AddEdge(EdgeData{From: "A", To: "B", Type: Arrow})
	require.NoError(t, err)
	_, err = db.AddNode(NodeData{ID: "B", Shape: Circle})
	require.NoError(t, err)

	b, ok := db.GetNode("B")
	require.True(t, ok)
	assert.EqualValues(t, b.Shape, Circle)
}

func TestDatabaseEdgesPreserveInsertionOrder(t *testing.T) {
	db := NewDatabase(TopDown)

	_, err := db.AddEdge(EdgeData{From: "A", To: "B", Type: Arrow})
	require.NoError(t, err)
	_, err = db.AddEdge(EdgeData{From: "B", To: "C", Type: SolidLine})
	require.NoError(t, err)

	edges := db.Edges()
	require.EqualValues(t, len(edges), 2)
	assert.EqualValues(t, edges[0].From, "A")
	assert.EqualValues(t, edges[0].To, "B")
	assert.EqualValues(t, edges[1].From, "B")
	assert.EqualValues(t, edges[1].To, "C")
}

func TestDatabaseParallelEdgesPermitted(t *testing.T) {
	db := NewDatabase(TopDown)

	_, err := db.AddEdge(EdgeData{From: "A", To: "B", Type: Arrow})
	require.NoError(t, err)
	_, err = db.AddEdge(EdgeData{From: "A", To: "B", Type: DottedArrow})
	require.NoError(t, err)

	assert.EqualValues(t, db.EdgeCount(), 2)
}

func TestDatabaseClearPreservesDirection(t *testing.T) {
	db := NewDatabase(LeftRight)
	_, err := db.AddEdge(EdgeData{From: "A", To: "B", Type: Arrow})
	require.NoError(t, err)

	db.Clear()

	assert.EqualValues(t, db.NodeCount(), 0)
	assert.EqualValues(t, db.EdgeCount(), 0)
	assert.EqualValues(t, db.Direction(), LeftRight)
}

func TestParseDirection(t *testing.T) {
	tests := map[string]struct {
		in   string
		want Direction
		ok   bool
	}{
		"TD": {in: "TD", want: TopDown, ok: true},
		"TB": {in: "TB", want: TopDown, ok: true},
		"BT": {in: "BT", want: BottomUp, ok: true},
		"LR": {in: "LR", want: LeftRight, ok: true},
		"RL": {in: "RL", want: RightLeft, ok: true},
		"garbage": {in: "XX", ok: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := ParseDirection(test.in)
			assert.EqualValues(t, ok, test.ok)
			if test.ok {
				assert.EqualValues(t, got, test.want)
			}
		})
	}
}
