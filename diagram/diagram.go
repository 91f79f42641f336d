// Package diagram provides the shared vocabulary and in-memory graph model used by every
// diagram plugin: node shapes, edge types, layout directions, and the [Database] that a
// parser fills in and a layout engine and renderer read back out.
//
// The Database is the single mutable structure in the whole pipeline. It is built once by a
// [Parser] during a single parse, then only ever read afterwards, matching the lifetime rules
// described for the dot language's AST in the sibling teleivo/dot project.
package diagram

import "fmt"

// Direction controls which way a layout grows layers.
type Direction int

const (
	// TopDown grows layers downward, the default for flowcharts.
	TopDown Direction = iota
	BottomUp
	LeftRight
	RightLeft
)

func (d Direction) String() string {
	switch d {
	case TopDown:
		return "TD"
	case BottomUp:
		return "BT"
	case LeftRight:
		return "LR"
	case RightLeft:
		return "RL"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection looks up a Direction by its source token ("TD", "TB", "BT", "LR", "RL").
// "TB" is an alias for "TD".
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "TD", "TB":
		return TopDown, true
	case "BT":
		return BottomUp, true
	case "LR":
		return LeftRight, true
	case "RL":
		return RightLeft, true
	default:
		return 0, false
	}
}

// NodeShape is the visual shape a node is rendered with.
type NodeShape int

const (
	Rectangle NodeShape = iota
	RoundedRect
	Stadium
	Circle
	Rhombus
	Hexagon
	Parallelogram
	Trapezoid
	Cylinder
	Subroutine
	Asymmetric
)

func (s NodeShape) String() string {
	switch s {
	case Rectangle:
		return "rectangle"
	case RoundedRect:
		return "rounded-rect"
	case Stadium:
		return "stadium"
	case Circle:
		return "circle"
	case Rhombus:
		return "rhombus"
	case Hexagon:
		return "hexagon"
	case Parallelogram:
		return "parallelogram"
	case Trapezoid:
		return "trapezoid"
	case Cylinder:
		return "cylinder"
	case Subroutine:
		return "subroutine"
	case Asymmetric:
		return "asymmetric"
	default:
		return fmt.Sprintf("NodeShape(%d)", int(s))
	}
}

// EdgeType is the visual/semantic kind of connector between two nodes.
type EdgeType int

const (
	Arrow EdgeType = iota
	SolidLine
	OpenArrow
	CrossArrow
	DottedArrow
	DottedLine
	ThickArrow
	ThickLine
)

func (t EdgeType) String() string {
	switch t {
	case Arrow:
		return "Arrow"
	case SolidLine:
		return "SolidLine"
	case OpenArrow:
		return "OpenArrow"
	case CrossArrow:
		return "CrossArrow"
	case DottedArrow:
		return "DottedArrow"
	case DottedLine:
		return "DottedLine"
	case ThickArrow:
		return "ThickArrow"
	case ThickLine:
		return "ThickLine"
	default:
		return fmt.Sprintf("EdgeType(%d)", int(t))
	}
}

// IsArrow reports whether the edge type terminates in an arrowhead of some kind at its "to" end.
func (t EdgeType) IsArrow() bool {
	switch t {
	case Arrow, OpenArrow, CrossArrow, DottedArrow, ThickArrow:
		return true
	default:
		return false
	}
}

// Point is an integer grid coordinate, origin top-left, x growing right and y growing down.
type Point struct {
	X, Y int
}
