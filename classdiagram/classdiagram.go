// Package classdiagram is a shallow plugin for Mermaid's classDiagram kind: class boxes and
// the relations between them (inheritance, composition, aggregation, association,
// dependency). Per spec.md §1, only flowchart is specified in depth; this plugin reuses the
// flowchart package's layout engine and renderer wholesale, since a class diagram is, once
// parsed, just another directed graph of boxes and orthogonal routes; the plugin contributes
// only its own detector and parser.
package classdiagram

import (
	"strings"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/flowchart"
	"github.com/meridian-diagrams/meridian/plugin"
)

// Detector recognizes "classDiagram" headers.
type Detector struct{}

func (Detector) Confidence(source string) float32 {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%%") {
			continue
		}
		if trimmed == "classDiagram" || strings.HasPrefix(trimmed, "classDiagram ") {
			return 1
		}
		return 0
	}
	return 0
}

func (Detector) Patterns() []string { return []string{"classDiagram"} }

// relationOp maps a class-diagram relation token to a rendered edge type. Mermaid's class
// relations carry semantic meaning (inheritance, composition, ...) that this shallow plugin
// flattens onto the shared EdgeType vocabulary by visual similarity: an inheritance arrow looks
// like a hollow triangle, closest to Arrow; composition/aggregation's filled/open diamond
// renders closest to ThickLine/SolidLine; a dependency's dashed arrow maps to DottedArrow.
var relationOps = []struct {
	token string
	typ   diagram.EdgeType
}{
	{"<|--", diagram.Arrow},
	{"--|>", diagram.Arrow},
	{"*--", diagram.ThickLine},
	{"--*", diagram.ThickLine},
	{"o--", diagram.SolidLine},
	{"--o", diagram.SolidLine},
	{"..>", diagram.DottedArrow},
	{"<..", diagram.DottedArrow},
	{"-->", diagram.Arrow},
	{"--", diagram.SolidLine},
}

// Parser handles the class-declaration and relation-line subset of the classDiagram grammar:
//
//	classDiagram
//	class ClassName
//	ClassName : +field type
//	A <|-- B
//	A "1" --> "many" B : label
//
// Member lines (fields/methods inside "class X { ... }" or "X : member") are recognized and
// discarded; this plugin renders relation topology only, not member listings.
type Parser struct{}

func (Parser) Parse(source string, db *diagram.Database) error {
	lines := strings.Split(source, "\n")
	if len(lines) == 0 {
		return &diagram.ParseError{Message: "empty source", Line: 1, Column: 1}
	}

	started := false
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		if !started {
			if line != "classDiagram" && !strings.HasPrefix(line, "classDiagram ") {
				return &diagram.ParseError{Message: "expected classDiagram header", Line: i + 1, Column: 1}
			}
			started = true
			continue
		}

		if err := parseStatement(db, line, i+1); err != nil {
			return err
		}
	}
	if !started {
		return &diagram.ParseError{Message: "expected classDiagram header", Line: 1, Column: 1}
	}
	return nil
}

func parseStatement(db *diagram.Database, line string, lineNo int) error {
	head, _, hasColon := strings.Cut(line, ":")
	headIsRelation := false
	for _, op := range relationOps {
		if strings.Contains(head, op.token) {
			headIsRelation = true
			break
		}
	}
	switch {
	case strings.HasPrefix(line, "class "):
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "class "), "{"))
		name = strings.Fields(name)[0]
		_, err := db.AddNode(diagram.NodeData{ID: name, Shape: diagram.Rectangle})
		return wrapErr(err, lineNo)
	case hasColon && !headIsRelation:
		// Member annotation "ClassName : +field type" — ensures the class node exists, drops the
		// member text.
		name := strings.TrimSpace(strings.SplitN(line, ":", 2)[0])
		fields := strings.Fields(name)
		if len(fields) == 0 {
			return nil
		}
		_, err := db.AddNode(diagram.NodeData{ID: fields[0], Shape: diagram.Rectangle})
		return wrapErr(err, lineNo)
	case strings.ContainsAny(line, "<>*o-") && !strings.HasPrefix(line, "note"):
		return parseRelation(db, line, lineNo)
	default:
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil
		}
		_, err := db.AddNode(diagram.NodeData{ID: fields[0], Shape: diagram.Rectangle})
		return wrapErr(err, lineNo)
	}
}

func parseRelation(db *diagram.Database, line string, lineNo int) error {
	var label string
	if idx := strings.LastIndex(line, ":"); idx >= 0 {
		label = strings.TrimSpace(line[idx+1:])
		line = strings.TrimSpace(line[:idx])
	}

	for _, op := range relationOps {
		if idx := strings.Index(line, op.token); idx >= 0 {
			left := stripCardinality(strings.TrimSpace(line[:idx]))
			right := stripCardinality(strings.TrimSpace(line[idx+len(op.token):]))
			if left == "" || right == "" {
				continue
			}
			_, err := db.AddEdge(diagram.EdgeData{From: left, To: right, Type: op.typ, Label: label})
			return wrapErr(err, lineNo)
		}
	}
	return &diagram.ParseError{Message: "unrecognized class relation: " + line, Line: lineNo, Column: 1}
}

// stripCardinality removes a trailing/leading quoted cardinality like `"1"` or `"many"` that
// Mermaid allows on either side of a relation, keeping only the class identifier.
func stripCardinality(s string) string {
	fields := strings.Fields(s)
	for _, f := range fields {
		if !strings.HasPrefix(f, "\"") {
			return f
		}
	}
	if len(fields) > 0 {
		return fields[len(fields)-1]
	}
	return s
}

func wrapErr(err error, lineNo int) error {
	if err == nil {
		return nil
	}
	return &diagram.ParseError{Message: err.Error(), Line: lineNo, Column: 1}
}

// NewPlugin bundles the classdiagram detector and parser with the flowchart package's layout
// engine and renderer.
func NewPlugin() plugin.Plugin {
	return plugin.Plugin{
		Name:        "classdiagram",
		NewDatabase: func() *diagram.Database { return diagram.NewDatabase(diagram.TopDown) },
		Detector:    Detector{},
		Parser:      Parser{},
		Layout:      flowchart.Layout{},
		Renderer:    flowchart.Renderer{},
	}
}
