// Package statediagram is a shallow plugin for Mermaid's stateDiagram-v2 kind: states and the
// transitions between them, including the special "[*]" start/end pseudostate. Like
// classdiagram, it reuses the flowchart package's layout engine and renderer and contributes
// only its own detector and parser.
package statediagram

import (
	"strings"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/flowchart"
	"github.com/meridian-diagrams/meridian/plugin"
)

const startEndID = "__start_end__"

// Detector recognizes "stateDiagram" and "stateDiagram-v2" headers.
type Detector struct{}

func (Detector) Confidence(source string) float32 {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%%") {
			continue
		}
		if trimmed == "stateDiagram" || trimmed == "stateDiagram-v2" ||
			strings.HasPrefix(trimmed, "stateDiagram-v2 ") || strings.HasPrefix(trimmed, "stateDiagram ") {
			return 1
		}
		return 0
	}
	return 0
}

func (Detector) Patterns() []string { return []string{"stateDiagram", "stateDiagram-v2"} }

// Parser handles the transition subset of the state-diagram grammar:
//
//	stateDiagram-v2
//	[*] --> Idle
//	Idle --> Running : start
//	Running --> [*]
//
// Composite states ("state X { ... }") are not supported: every "state ..." line, including a
// composite's header, is skipped without declaring a node, lone "{" and "}" lines are skipped,
// and the lines inside a composite body are parsed as top-level statements.
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
			if line != "stateDiagram" && line != "stateDiagram-v2" &&
				!strings.HasPrefix(line, "stateDiagram-v2 ") && !strings.HasPrefix(line, "stateDiagram ") {
				return &diagram.ParseError{Message: "expected stateDiagram header", Line: i + 1, Column: 1}
			}
			started = true
			continue
		}
		if line == "{" || line == "}" {
			continue
		}
		if err := parseStatement(db, line, i+1); err != nil {
			return err
		}
	}
	if !started {
		return &diagram.ParseError{Message: "expected stateDiagram header", Line: 1, Column: 1}
	}
	return nil
}

func parseStatement(db *diagram.Database, line string, lineNo int) error {
	if strings.HasPrefix(line, "state ") || strings.HasPrefix(line, "note ") {
		return nil
	}
	if !strings.Contains(line, "-->") {
		// Bare state declaration.
		id := resolveID(strings.Fields(line)[0])
		_, err := db.AddNode(diagram.NodeData{ID: id, Label: displayLabel(id)})
		return wrapErr(err, lineNo)
	}

	parts := strings.SplitN(line, "-->", 2)
	from := resolveID(strings.TrimSpace(parts[0]))
	rest := strings.TrimSpace(parts[1])

	var label string
	to := rest
	if idx := strings.Index(rest, ":"); idx >= 0 {
		to = strings.TrimSpace(rest[:idx])
		label = strings.TrimSpace(rest[idx+1:])
	}
	to = resolveID(to)

	if _, err := db.AddNode(diagram.NodeData{ID: from, Label: displayLabel(from)}); err != nil {
		return wrapErr(err, lineNo)
	}
	if _, err := db.AddNode(diagram.NodeData{ID: to, Label: displayLabel(to)}); err != nil {
		return wrapErr(err, lineNo)
	}
	_, err := db.AddEdge(diagram.EdgeData{From: from, To: to, Type: diagram.Arrow, Label: label})
	return wrapErr(err, lineNo)
}

// resolveID maps the literal "[*]" pseudostate to a single stable node id so every use of it in
// the diagram refers to the same start/end marker.
func resolveID(s string) string {
	if s == "[*]" {
		return startEndID
	}
	return s
}

func displayLabel(id string) string {
	if id == startEndID {
		return "●"
	}
	return id
}

func wrapErr(err error, lineNo int) error {
	if err == nil {
		return nil
	}
	return &diagram.ParseError{Message: err.Error(), Line: lineNo, Column: 1}
}

// NewPlugin bundles the statediagram detector and parser with the flowchart package's layout
// engine and renderer.
func NewPlugin() plugin.Plugin {
	return plugin.Plugin{
		Name:        "statediagram",
		NewDatabase: func() *diagram.Database { return diagram.NewDatabase(diagram.TopDown) },
		Detector:    Detector{},
		Parser:      Parser{},
		Layout:      flowchart.Layout{},
		Renderer:    flowchart.Renderer{},
	}
}
