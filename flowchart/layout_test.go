package flowchart

import (
	"testing"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/plugin"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func overlaps(a, b plugin.NodeBox) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

func TestLayoutEmptyDatabase(t *testing.T) {
	db := diagram.NewDatabase(diagram.TopDown)
	res, err := Layout{}.Layout(db)
	require.NoError(t, err)
	assert.EqualValues(t, res.Width, 0)
	assert.EqualValues(t, res.Height, 0)
	assert.EqualValues(t, len(res.Nodes), 0)
}

func TestLayoutBoxesAreDisjoint(t *testing.T) {
	db := parse(t, "graph TD\n"+
		"A --> B\n"+
		"A --> C\n"+
		"B --> D\n"+
		"C --> D\n"+
		"D --> E\n")
	res, err := Layout{}.Layout(db)
	require.NoError(t, err)

	var boxes []plugin.NodeBox
	for _, b := range res.Nodes {
		boxes = append(boxes, b)
	}
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			assert.Truef(t, !overlaps(boxes[i], boxes[j]), "boxes %d and %d must not overlap", i, j)
		}
	}
}

func TestLayoutS4FanOutJunctionLeftRight(t *testing.T) {
	db := parse(t, "graph LR\n    S -->|yes| A\n    S -->|no| B\n")
	res, err := Layout{}.Layout(db)
	require.NoError(t, err)
	require.EqualValues(t, len(res.Edges), 2)

	junctions := 0
	for _, r := range res.Edges {
		if r.Junction != nil {
			junctions++
		}
	}
	assert.EqualValues(t, junctions, 2)

	labeled := 0
	for _, r := range res.Edges {
		if r.LabelAt != nil {
			labeled++
		}
	}
	assert.EqualValues(t, labeled, 2)
}

func TestLayoutS5FanOutJunctionTopDown(t *testing.T) {
	db := parse(t, "graph TD\n    S --> A\n    S --> B\n    S --> C\n")
	res, err := Layout{}.Layout(db)
	require.NoError(t, err)
	require.EqualValues(t, len(res.Edges), 3)
	for _, r := range res.Edges {
		require.NotNil(t, r.Junction)
	}
}

func TestLayoutSingleNodeHasPositiveExtent(t *testing.T) {
	db := parse(t, "graph TD\nA[Solo]\n")
	res, err := Layout{}.Layout(db)
	require.NoError(t, err)
	assert.Truef(t, res.Width > 0, "width should be positive")
	assert.Truef(t, res.Height > 0, "height should be positive")
	box, ok := res.Nodes["A"]
	require.True(t, ok)
	assert.Truef(t, box.Width >= 5, "rectangle minimum width is 5")
}

func TestLayoutCycleDoesNotPanic(t *testing.T) {
	db := parse(t, "graph TD\nA --> B\nB --> C\nC --> A\n")
	res, err := Layout{}.Layout(db)
	require.NoError(t, err)
	assert.EqualValues(t, len(res.Nodes), 3)
}
