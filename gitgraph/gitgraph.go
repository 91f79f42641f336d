// Package gitgraph is a shallow plugin for Mermaid's gitGraph kind: commits chained along
// branches, with branch/checkout/merge commands controlling which chain a commit is appended
// to. Once parsed, a commit history is just a DAG of nodes and edges, so like classdiagram and
// statediagram this plugin reuses the flowchart package's layout engine and renderer, defaulting
// to a left-to-right direction to match how commit history is conventionally drawn.
package gitgraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/flowchart"
	"github.com/meridian-diagrams/meridian/plugin"
)

// Detector recognizes "gitGraph" headers.
type Detector struct{}

func (Detector) Confidence(source string) float32 {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%%") {
			continue
		}
		if trimmed == "gitGraph" || strings.HasPrefix(trimmed, "gitGraph ") ||
			strings.HasPrefix(trimmed, "gitGraph:") {
			return 1
		}
		return 0
	}
	return 0
}

func (Detector) Patterns() []string { return []string{"gitGraph"} }

// Parser handles the commit-history subset of the gitGraph grammar:
//
//	gitGraph
//	commit
//	branch develop
//	checkout develop
//	commit id: "feat"
//	checkout main
//	merge develop
//
// Every commit becomes a circle node chained to the previous commit on its branch by a solid
// edge; a merge adds an extra edge from the merged branch's tip into the checked-out branch.
type Parser struct{}

type gitState struct {
	db          *diagram.Database
	current     string
	tip         map[string]string // branch name -> last commit node id
	commitCount int
}

func (Parser) Parse(source string, db *diagram.Database) error {
	lines := strings.Split(source, "\n")
	started := false
	st := &gitState{db: db, current: "main", tip: map[string]string{}}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		if !started {
			if line != "gitGraph" && !strings.HasPrefix(line, "gitGraph ") && !strings.HasPrefix(line, "gitGraph:") {
				return &diagram.ParseError{Message: "expected gitGraph header", Line: i + 1, Column: 1}
			}
			started = true
			continue
		}
		if err := st.apply(line, i+1); err != nil {
			return err
		}
	}
	if !started {
		return &diagram.ParseError{Message: "expected gitGraph header", Line: 1, Column: 1}
	}
	return nil
}

func (st *gitState) apply(line string, lineNo int) error {
	switch {
	case line == "commit" || strings.HasPrefix(line, "commit "), strings.HasPrefix(line, "commit:"):
		return st.commit(line, lineNo)
	case strings.HasPrefix(line, "branch "):
		name := strings.TrimSpace(strings.TrimPrefix(line, "branch "))
		st.tip[name] = st.tip[st.current]
		st.current = name
		return nil
	case strings.HasPrefix(line, "checkout "):
		st.current = strings.TrimSpace(strings.TrimPrefix(line, "checkout "))
		return nil
	case strings.HasPrefix(line, "merge "):
		other := strings.TrimSpace(strings.TrimPrefix(line, "merge "))
		return st.merge(other, lineNo)
	default:
		return &diagram.ParseError{Message: "unrecognized gitGraph command: " + line, Line: lineNo, Column: 1}
	}
}

func (st *gitState) commit(line string, lineNo int) error {
	id := commitID(line, st.commitCount)
	st.commitCount++

	if _, err := st.db.AddNode(diagram.NodeData{ID: id, Shape: diagram.Circle}); err != nil {
		return wrapErr(err, lineNo)
	}
	if prev, ok := st.tip[st.current]; ok && prev != "" {
		if _, err := st.db.AddEdge(diagram.EdgeData{From: prev, To: id, Type: diagram.SolidLine}); err != nil {
			return wrapErr(err, lineNo)
		}
	}
	st.tip[st.current] = id
	return nil
}

func (st *gitState) merge(branch string, lineNo int) error {
	src, ok := st.tip[branch]
	if !ok || src == "" {
		return &diagram.ParseError{Message: fmt.Sprintf("merge of unknown branch %q", branch), Line: lineNo, Column: 1}
	}
	dst := st.tip[st.current]
	if dst == "" {
		return &diagram.ParseError{Message: "merge with no commit on current branch", Line: lineNo, Column: 1}
	}
	_, err := st.db.AddEdge(diagram.EdgeData{From: src, To: dst, Type: diagram.DottedLine})
	return wrapErr(err, lineNo)
}

// commitID extracts an explicit `id: "name"` tag if present, else synthesizes one from the
// running commit count so every commit node gets a distinct id.
func commitID(line string, count int) string {
	if idx := strings.Index(line, "id:"); idx >= 0 {
		rest := strings.TrimSpace(line[idx+len("id:"):])
		if unquoted, err := strconv.Unquote(rest); err == nil && unquoted != "" {
			return unquoted
		}
	}
	return "commit" + strconv.Itoa(count)
}

func wrapErr(err error, lineNo int) error {
	if err == nil {
		return nil
	}
	return &diagram.ParseError{Message: err.Error(), Line: lineNo, Column: 1}
}

// NewPlugin bundles the gitgraph detector and parser with the flowchart package's layout engine
// and renderer.
func NewPlugin() plugin.Plugin {
	return plugin.Plugin{
		Name:        "gitgraph",
		NewDatabase: func() *diagram.Database { return diagram.NewDatabase(diagram.LeftRight) },
		Detector:    Detector{},
		Parser:      Parser{},
		Layout:      flowchart.Layout{},
		Renderer:    flowchart.Renderer{},
	}
}
