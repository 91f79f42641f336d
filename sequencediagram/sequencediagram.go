// Package sequencediagram is a shallow plugin for Mermaid's sequenceDiagram kind: participants
// placed along a header row, each anchoring a vertical lifeline, with messages between them
// rendered as one horizontal arrow per source line, top to bottom in declaration order.
//
// A sequence diagram's geometry does not fit the layered digraph model flowchart uses (time,
// not topology, decides row order), so unlike classdiagram and statediagram this plugin
// contributes its own [Layout] and [Renderer] rather than reusing flowchart's; it still reuses
// the shared [diagram.Database] and [plugin.LayoutResult] vocabulary.
package sequencediagram

import (
	"strings"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/plugin"
)

// Detector recognizes "sequenceDiagram" headers.
type Detector struct{}

func (Detector) Confidence(source string) float32 {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%%") {
			continue
		}
		if trimmed == "sequenceDiagram" {
			return 1
		}
		return 0
	}
	return 0
}

func (Detector) Patterns() []string { return []string{"sequenceDiagram"} }

// messageOps maps a sequence-diagram arrow token to a rendered edge type. Each token comes before
// any shorter token it contains, so "->>" is tried before its "->" prefix and "--x" before "-x".
var messageOps = []struct {
	token string
	typ   diagram.EdgeType
}{
	{"-->>", diagram.DottedArrow},
	{"--)", diagram.DottedLine},
	{"->>", diagram.Arrow},
	{"-)", diagram.OpenArrow},
	{"->", diagram.Arrow},
	{"--x", diagram.CrossArrow},
	{"-x", diagram.CrossArrow},
}

// Parser handles the participant and message subset of the sequence-diagram grammar:
//
//	sequenceDiagram
//	participant Alice
//	Alice->>Bob: Hello
//	Bob-->>Alice: Hi back
//
// "participant" declarations are optional: a message mentioning an undeclared participant
// auto-creates it in first-seen order, the same auto-creation policy [diagram.Database.AddEdge]
// uses. "activate"/"deactivate"/"note" lines are recognized and skipped.
type Parser struct{}

func (Parser) Parse(source string, db *diagram.Database) error {
	lines := strings.Split(source, "\n")
	started := false
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		if !started {
			if line != "sequenceDiagram" {
				return &diagram.ParseError{Message: "expected sequenceDiagram header", Line: i + 1, Column: 1}
			}
			started = true
			continue
		}
		if err := parseStatement(db, line, i+1); err != nil {
			return err
		}
	}
	if !started {
		return &diagram.ParseError{Message: "expected sequenceDiagram header", Line: 1, Column: 1}
	}
	return nil
}

func parseStatement(db *diagram.Database, line string, lineNo int) error {
	switch {
	case strings.HasPrefix(line, "participant "):
		name := strings.TrimSpace(strings.TrimPrefix(line, "participant "))
		if idx := strings.Index(name, " as "); idx >= 0 {
			name = strings.TrimSpace(name[:idx])
		}
		_, err := db.AddSimpleNode(name)
		return wrapErr(err, lineNo)
	case strings.HasPrefix(line, "activate "), strings.HasPrefix(line, "deactivate "),
		strings.HasPrefix(line, "note "), strings.HasPrefix(line, "Note "):
		return nil
	default:
		return parseMessage(db, line, lineNo)
	}
}

func parseMessage(db *diagram.Database, line string, lineNo int) error {
	var label string
	body := line
	if idx := strings.Index(line, ":"); idx >= 0 {
		body = strings.TrimSpace(line[:idx])
		label = strings.TrimSpace(line[idx+1:])
	}

	for _, op := range messageOps {
		if idx := strings.Index(body, op.token); idx >= 0 {
			from := strings.TrimSpace(body[:idx])
			to := strings.TrimSpace(body[idx+len(op.token):])
			if from == "" || to == "" {
				continue
			}
			_, err := db.AddEdge(diagram.EdgeData{From: from, To: to, Type: op.typ, Label: label})
			return wrapErr(err, lineNo)
		}
	}
	return &diagram.ParseError{Message: "unrecognized sequence message: " + line, Line: lineNo, Column: 1}
}

func wrapErr(err error, lineNo int) error {
	if err == nil {
		return nil
	}
	return &diagram.ParseError{Message: err.Error(), Line: lineNo, Column: 1}
}

// NewPlugin bundles the sequencediagram detector, parser, layout, and renderer.
func NewPlugin() plugin.Plugin {
	return plugin.Plugin{
		Name:        "sequencediagram",
		NewDatabase: func() *diagram.Database { return diagram.NewDatabase(diagram.LeftRight) },
		Detector:    Detector{},
		Parser:      Parser{},
		Layout:      Layout{},
		Renderer:    Renderer{},
	}
}
