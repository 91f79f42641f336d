package gitgraph

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
		"Header":    {source: "gitGraph\ncommit\n", want: 1},
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

func TestParserLinearCommits(t *testing.T) {
	db := diagram.NewDatabase(diagram.LeftRight)
	err := Parser{}.Parse("gitGraph\ncommit\ncommit\ncommit\n", db)
	require.NoError(t, err)
	assert.EqualValues(t, db.NodeCount(), 3)
	assert.EqualValues(t, len(db.Edges()), 2)
}

func TestParserBranchAndCheckout(t *testing.T) {
	db := diagram.NewDatabase(diagram.LeftRight)
	err := Parser{}.Parse("gitGraph\ncommit\nbranch develop\ncheckout develop\ncommit\ncheckout main\ncommit\n", db)
	require.NoError(t, err)
	assert.EqualValues(t, db.NodeCount(), 3)
	assert.EqualValues(t, len(db.Edges()), 2)
}

func TestParserMerge(t *testing.T) {
	db := diagram.NewDatabase(diagram.LeftRight)
	err := Parser{}.Parse("gitGraph\ncommit\nbranch develop\ncheckout develop\ncommit\ncheckout main\nmerge develop\n", db)
	require.NoError(t, err)
	edges := db.Edges()
	require.EqualValues(t, len(edges), 2)
	assert.EqualValues(t, edges[1].Type, diagram.DottedLine)
}

func TestParserMergeUnknownBranchErrors(t *testing.T) {
	db := diagram.NewDatabase(diagram.LeftRight)
	err := Parser{}.Parse("gitGraph\ncommit\nmerge ghost\n", db)
	require.NotNil(t, err)
}

func TestParserExplicitCommitID(t *testing.T) {
	db := diagram.NewDatabase(diagram.LeftRight)
	err := Parser{}.Parse(`gitGraph
commit id: "init"
`, db)
	require.NoError(t, err)
	_, ok := db.GetNode("init")
	require.True(t, ok)
}

func TestParserMissingHeader(t *testing.T) {
	db := diagram.NewDatabase(diagram.LeftRight)
	err := Parser{}.Parse("commit\n", db)
	require.NotNil(t, err)
}

func TestNewPluginProducesOutput(t *testing.T) {
	p := NewPlugin()
	db := p.NewDatabase()
	require.NoError(t, p.Parser.Parse("gitGraph\ncommit\ncommit\n", db))
	layout, err := p.Layout.Layout(db)
	require.NoError(t, err)
	out, err := p.Renderer.Render(db, layout)
	require.NoError(t, err)
	assert.Truef(t, len(out) > 0, "render output should not be empty")
}
