package statediagram

import (
	"testing"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestDetectorConfidence(t *testing.T) {
	tests := map[string]struct {
		source string
		want   float32
	}{
		"V2":        {source: "stateDiagram-v2\n[*] --> Idle\n", want: 1},
		"Plain":     {source: "stateDiagram\n[*] --> Idle\n", want: 1},
		"Flowchart": {source: "graph TD\nA --> B\n", want: 0},
		"Empty":     {source: "", want: 0},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := Detector{}.Confidence(test.source)
			assert.EqualValues(t, got, test.want)
		})
	}
}

func TestParserTransitions(t *testing.T) {
	db := diagram.NewDatabase(diagram.TopDown)
	err := Parser{}.Parse("stateDiagram-v2\n[*] --> Idle\nIdle --> Running : start\nRunning --> [*]\n", db)
	require.NoError(t, err)

	edges := db.Edges()
	require.EqualValues(t, len(edges), 3)
	assert.EqualValues(t, edges[1].Label, "start")

	start, ok := db.GetNode(startEndID)
	require.True(t, ok)
	assert.EqualValues(t, start.Label, "●")
}

func TestParserStartEndSharesSingleNode(t *testing.T) {
	db := diagram.NewDatabase(diagram.TopDown)
	err := Parser{}.Parse("stateDiagram-v2\n[*] --> A\nB --> [*]\n", db)
	require.NoError(t, err)

	count := 0
	for _, n := range db.Nodes() {
		if n.ID == startEndID {
			count++
		}
	}
	assert.EqualValues(t, count, 1)
}

func TestParserBareStateDeclaration(t *testing.T) {
	db := diagram.NewDatabase(diagram.TopDown)
	err := Parser{}.Parse("stateDiagram-v2\nIdle\n", db)
	require.NoError(t, err)
	assert.EqualValues(t, db.NodeCount(), 1)
}

func TestParserStateAndNoteLinesSkipped(t *testing.T) {
	db := diagram.NewDatabase(diagram.TopDown)
	err := Parser{}.Parse("stateDiagram-v2\nstate Idle\nnote right of Idle: waiting\nIdle --> Running\n", db)
	require.NoError(t, err)
	assert.EqualValues(t, db.NodeCount(), 2)
}

func TestParserMissingHeader(t *testing.T) {
	db := diagram.NewDatabase(diagram.TopDown)
	err := Parser{}.Parse("[*] --> Idle\n", db)
	require.NotNil(t, err)
}

func TestNewPluginProducesOutput(t *testing.T) {
	p := NewPlugin()
	db := p.NewDatabase()
	require.NoError(t, p.Parser.Parse("stateDiagram-v2\n[*] --> Idle\nIdle --> [*]\n", db))
	layout, err := p.Layout.Layout(db)
	require.NoError(t, err)
	out, err := p.Renderer.Render(db, layout)
	require.NoError(t, err)
	assert.Truef(t, len(out) > 0, "render output should not be empty")
}
