package classdiagram

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
		"Header":      {source: "classDiagram\nclass Animal\n", want: 1},
		"HeaderSpace": {source: "classDiagram TB\nclass Animal\n", want: 1},
		"Flowchart":   {source: "graph TD\nA --> B\n", want: 0},
		"Empty":       {source: "", want: 0},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := Detector{}.Confidence(test.source)
			assert.EqualValues(t, got, test.want)
		})
	}
}

func TestParserClassDeclaration(t *testing.T) {
	db := diagram.NewDatabase(diagram.TopDown)
	err := Parser{}.Parse("classDiagram\nclass Animal\nclass Dog\n", db)
	require.NoError(t, err)
	assert.EqualValues(t, db.NodeCount(), 2)
}

func TestParserRelationTable(t *testing.T) {
	tests := map[string]struct {
		op   string
		want diagram.EdgeType
	}{
		"Inheritance":    {op: "<|--", want: diagram.Arrow},
		"InheritanceRev": {op: "--|>", want: diagram.Arrow},
		"Composition":    {op: "*--", want: diagram.ThickLine},
		"Aggregation":    {op: "o--", want: diagram.SolidLine},
		"Dependency":     {op: "..>", want: diagram.DottedArrow},
		"Association":    {op: "-->", want: diagram.Arrow},
		"PlainLine":      {op: "--", want: diagram.SolidLine},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			db := diagram.NewDatabase(diagram.TopDown)
			err := Parser{}.Parse("classDiagram\nAnimal "+test.op+" Dog\n", db)
			require.NoError(t, err)
			edges := db.Edges()
			require.EqualValues(t, len(edges), 1)
			assert.EqualValues(t, edges[0].Type, test.want)
		})
	}
}

func TestParserRelationWithLabelAndCardinality(t *testing.T) {
	db := diagram.NewDatabase(diagram.TopDown)
	err := Parser{}.Parse(`classDiagram
Animal "1" --> "many" Leg : has
`, db)
	require.NoError(t, err)
	edges := db.Edges()
	require.EqualValues(t, len(edges), 1)
	assert.EqualValues(t, edges[0].From, "Animal")
	assert.EqualValues(t, edges[0].To, "Leg")
	assert.EqualValues(t, edges[0].Label, "has")
}

func TestParserMemberAnnotationKeepsClassOnly(t *testing.T) {
	db := diagram.NewDatabase(diagram.TopDown)
	err := Parser{}.Parse("classDiagram\nAnimal : +String name\n", db)
	require.NoError(t, err)
	assert.EqualValues(t, db.NodeCount(), 1)
	n, ok := db.GetNode("Animal")
	require.True(t, ok)
	assert.EqualValues(t, n.ID, "Animal")
}

func TestParserMissingHeader(t *testing.T) {
	db := diagram.NewDatabase(diagram.TopDown)
	err := Parser{}.Parse("class Animal\n", db)
	require.NotNil(t, err)
}

func TestNewPluginWiresFlowchartLayoutAndRenderer(t *testing.T) {
	p := NewPlugin()
	assert.EqualValues(t, p.Name, "classdiagram")
	db := p.NewDatabase()
	require.NoError(t, p.Parser.Parse("classDiagram\nA <|-- B\n", db))
	layout, err := p.Layout.Layout(db)
	require.NoError(t, err)
	out, err := p.Renderer.Render(db, layout)
	require.NoError(t, err)
	assert.Truef(t, len(out) > 0, "render output should not be empty")
}
