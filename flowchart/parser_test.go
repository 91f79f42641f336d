package flowchart

import (
	"testing"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func parse(t *testing.T, source string) *diagram.Database {
	t.Helper()
	db := diagram.NewDatabase(diagram.TopDown)
	p, err := New(source)
	require.NoError(t, err)
	require.NoError(t, p.Parse(source, db))
	return db
}

func TestParserEdgeOperatorTable(t *testing.T) {
	tests := map[string]struct {
		op   string
		want diagram.EdgeType
	}{
		"Arrow":       {op: "-->", want: diagram.Arrow},
		"SolidLine":   {op: "---", want: diagram.SolidLine},
		"OpenArrow":   {op: "--o", want: diagram.OpenArrow},
		"CrossArrow":  {op: "--x", want: diagram.CrossArrow},
		"DottedArrow": {op: "-.->", want: diagram.DottedArrow},
		"DottedLine":  {op: "-.-", want: diagram.DottedLine},
		"ThickArrow":  {op: "==>", want: diagram.ThickArrow},
		"ThickLine":   {op: "===", want: diagram.ThickLine},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			db := parse(t, "graph TD\nA "+test.op+" B\n")
			edges := db.Edges()
			require.EqualValues(t, len(edges), 1)
			assert.EqualValues(t, edges[0].Type, test.want)
			assert.EqualValues(t, edges[0].From, "A")
			assert.EqualValues(t, edges[0].To, "B")
		})
	}
}

func TestParserS1OpenArrow(t *testing.T) {
	db := parse(t, "graph TD\n    A --o B")
	require.EqualValues(t, db.NodeCount(), 2)
	edges := db.Edges()
	require.EqualValues(t, len(edges), 1)
	assert.EqualValues(t, edges[0].Type, diagram.OpenArrow)
}

func TestParserS2CrossArrow(t *testing.T) {
	db := parse(t, "graph TD\n    A --x B")
	edges := db.Edges()
	require.EqualValues(t, len(edges), 1)
	assert.EqualValues(t, edges[0].Type, diagram.CrossArrow)
}

func TestParserS3ThickLine(t *testing.T) {
	db := parse(t, "graph TD\n    A === B")
	edges := db.Edges()
	require.EqualValues(t, len(edges), 1)
	assert.EqualValues(t, edges[0].Type, diagram.ThickLine)
}

func TestParserEdgeChainProducesTwoEdges(t *testing.T) {
	db := parse(t, "graph TD\nA --> B --> C\n")
	edges := db.Edges()
	require.EqualValues(t, len(edges), 2)
	assert.EqualValues(t, edges[0].From, "A")
	assert.EqualValues(t, edges[0].To, "B")
	assert.EqualValues(t, edges[1].From, "B")
	assert.EqualValues(t, edges[1].To, "C")
}

func TestParserUnknownNodeAutoCreated(t *testing.T) {
	db := parse(t, "graph TD\nA --> B\n")
	b, ok := db.GetNode("B")
	require.True(t, ok)
	assert.EqualValues(t, b.Label, "B")
	assert.EqualValues(t, b.Shape, diagram.Rectangle)
}

func TestParserShapeDelimiters(t *testing.T) {
	tests := map[string]struct {
		src   string
		shape diagram.NodeShape
		label string
	}{
		"Rectangle":     {src: "A[Box]", shape: diagram.Rectangle, label: "Box"},
		"RoundedRect":   {src: "A(Round)", shape: diagram.RoundedRect, label: "Round"},
		"Stadium":       {src: "A([Pill])", shape: diagram.Stadium, label: "Pill"},
		"Circle":        {src: "A((Circ))", shape: diagram.Circle, label: "Circ"},
		"Rhombus":       {src: "A{Decision}", shape: diagram.Rhombus, label: "Decision"},
		"Hexagon":       {src: "A{{Hex}}", shape: diagram.Hexagon, label: "Hex"},
		"Parallelogram": {src: `A[/Para/]`, shape: diagram.Parallelogram, label: "Para"},
		"Trapezoid":     {src: `A[\Trap\]`, shape: diagram.Trapezoid, label: "Trap"},
		"Cylinder":      {src: "A[(Cyl)]", shape: diagram.Cylinder, label: "Cyl"},
		"Subroutine":    {src: "A[[Sub]]", shape: diagram.Subroutine, label: "Sub"},
		"Asymmetric":    {src: "A>Asym]", shape: diagram.Asymmetric, label: "Asym"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			db := parse(t, "graph TD\n"+test.src+"\n")
			n, ok := db.GetNode("A")
			require.True(t, ok)
			assert.EqualValues(t, n.Shape, test.shape)
			assert.EqualValues(t, n.Label, test.label)
		})
	}
}

func TestParserLabeledEdgeForms(t *testing.T) {
	tests := map[string]string{
		"PipeLabel":      "A -->|yes| B\n",
		"QuotedBetween":  `A --"yes"--> B` + "\n",
		"UnquotedBetween": "A -- yes --> B\n",
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			db := parse(t, "graph TD\n"+src)
			edges := db.Edges()
			require.EqualValues(t, len(edges), 1)
			assert.EqualValues(t, edges[0].Label, "yes")
			assert.EqualValues(t, edges[0].Type, diagram.Arrow)
		})
	}
}

func TestParserDirections(t *testing.T) {
	tests := map[string]diagram.Direction{
		"TD": diagram.TopDown,
		"TB": diagram.TopDown,
		"BT": diagram.BottomUp,
		"LR": diagram.LeftRight,
		"RL": diagram.RightLeft,
	}
	for dir, want := range tests {
		t.Run(dir, func(t *testing.T) {
			db := parse(t, "graph "+dir+"\nA --> B\n")
			assert.EqualValues(t, db.Direction(), want)
		})
	}
}

func TestParserCommentsStripped(t *testing.T) {
	db := parse(t, "graph TD\n%% a comment\nA --> B\n")
	assert.EqualValues(t, db.NodeCount(), 2)
}

func TestParserSyntaxErrorHasLineAndColumn(t *testing.T) {
	_, err := New("graph TD\nA -->\n")
	if err != nil {
		t.Fatalf("New should not fail on construction: %v", err)
	}
	p, err := New("graph TD\nA -->\n")
	require.NoError(t, err)
	db := diagram.NewDatabase(diagram.TopDown)
	err = p.Parse("graph TD\nA -->\n", db)
	require.NotNil(t, err)
	var perr *diagram.ParseError
	ok := asParseError(err, &perr)
	require.True(t, ok)
	assert.Truef(t, perr.Line >= 1, "line should be 1-based")
}

func asParseError(err error, target **diagram.ParseError) bool {
	if perr, ok := err.(*diagram.ParseError); ok {
		*target = perr
		return true
	}
	return false
}

func TestParserMissingHeader(t *testing.T) {
	_, err := New("A --> B\n")
	if err == nil {
		db := diagram.NewDatabase(diagram.TopDown)
		p, _ := New("A --> B\n")
		err = p.Parse("A --> B\n", db)
	}
	require.NotNil(t, err)
}
