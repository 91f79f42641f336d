package diagram

import "fmt"

// ParseError is a syntactic failure encountered while parsing diagram source. Line and Column
// are 1-based, matching the position convention the teleivo/dot scanner uses for its own
// [fmt.Stringer]-based error type.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error: %s (line %d, column %d)", e.Message, e.Line, e.Column)
}

// LayoutError is returned by a layout engine for pathological inputs it cannot position. Well
// formed databases, including empty and cyclic ones, never produce this error.
type LayoutError struct {
	Message string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("Layout error: %s", e.Message)
}

// RenderError is returned when a renderer cannot construct its output grid.
type RenderError struct {
	Message string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("Render error: %s", e.Message)
}

// DatabaseError is returned when a mutation would violate a Database invariant, such as an
// empty node id.
type DatabaseError struct {
	Message string
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("Database error: %s", e.Message)
}

// DetectionError indicates a detector misconfiguration. It is never returned for an ordinary
// negative match; those are expressed as a confidence of 0.
type DetectionError struct {
	Message string
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("Detection error: %s", e.Message)
}

// UnknownDiagramTypeError is returned by the orchestrator when no registered plugin reports a
// positive confidence for the given source.
type UnknownDiagramTypeError struct {
	DiagramType string
}

func (e *UnknownDiagramTypeError) Error() string {
	if e.DiagramType == "" {
		return "Unknown diagram type: could not detect a diagram kind for the given source"
	}
	return fmt.Sprintf("Unknown diagram type: %s", e.DiagramType)
}
