package flowchart

import (
	"strings"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/internal/lex"
)

// parseEdgeOperator consumes one edge operator starting at p.cur (a DashRun or EqRun token),
// resolving it against the table in the spec's grammar:
//
//	-->   Arrow          --o    OpenArrow      -.->  DottedArrow    ==>  ThickArrow
//	---   SolidLine      --x    CrossArrow      -.-  DottedLine     ===  ThickLine
//
// plus the three ways an edge can carry a label: `--"text"-->`, `-- text -->`, and `-->|text|`,
// any of which may trail any operator above. It leaves p.cur on the token right after the
// operator and its label, ready for the next node-ref.
func (p *Parser) parseEdgeOperator() (diagram.EdgeType, int, string, error) {
	run1 := p.cur
	kind1 := run1.Kind
	n1 := len([]rune(run1.Literal))
	if err := p.advance(); err != nil {
		return 0, 0, "", err
	}

	var edgeType diagram.EdgeType
	var length int
	var label string
	var err error

	switch {
	case p.cur.Kind == lex.Dot && kind1 == lex.DashRun:
		edgeType, length, err = p.finishDotted(n1)
	case p.cur.Kind == lex.String:
		edgeType, length, label, err = p.finishBetweenLabel(kind1, n1, p.cur.Literal)
	case p.cur.Kind == lex.GT:
		edgeType, length = finishArrowLike(kind1, n1, "")
		err = p.advance()
	case kind1 == lex.DashRun && p.cur.Kind == lex.Ident && (p.cur.Literal == "o" || p.cur.Literal == "x"):
		edgeType, length = finishArrowLike(kind1, n1, p.cur.Literal)
		err = p.advance()
	case n1 >= 3:
		// None of the terminator forms above matched, and run1 itself is already at least 3
		// chars long ("---" or "==="): this is a plain, unlabeled line, so p.cur is already the
		// next statement's node id and there is nothing left to consume here.
		edgeType, length = plainLineType(kind1, n1)
	default:
		// An unquoted label between two dash/equal runs: "-- some words -->".
		edgeType, length, label, err = p.finishUnquotedBetweenLabel(kind1, n1)
	}
	if err != nil {
		return 0, 0, "", err
	}

	if p.cur.Kind == lex.Pipe {
		text, matched, err := p.sc.ScanRaw("|")
		if err != nil {
			return 0, 0, "", err
		}
		if matched != "|" {
			return 0, 0, "", p.errorf("unterminated edge label, expected closing %q", "|")
		}
		if err := p.sc.Advance(1); err != nil {
			return 0, 0, "", err
		}
		if err := p.advance(); err != nil {
			return 0, 0, "", err
		}
		label = strings.TrimSpace(text)
	}

	return edgeType, length, label, nil
}

// finishArrowLike resolves the type for a run terminated by '>' (word == "") or a bare "o"/"x"
// identifier.
func finishArrowLike(kind1 lex.Kind, n1 int, word string) (diagram.EdgeType, int) {
	length := max(1, n1-1)
	if kind1 == lex.EqRun {
		return diagram.ThickArrow, length
	}
	switch word {
	case "o":
		return diagram.OpenArrow, length
	case "x":
		return diagram.CrossArrow, length
	default:
		return diagram.Arrow, length
	}
}

// plainLineType resolves the type for an unterminated run: "---" is SolidLine, "===" ThickLine.
func plainLineType(kind1 lex.Kind, n1 int) (diagram.EdgeType, int) {
	length := max(1, n1-2)
	if kind1 == lex.EqRun {
		return diagram.ThickLine, length
	}
	return diagram.SolidLine, length
}

// finishDotted consumes the second dash run of a dotted operator ("-.-" or "-.->") and resolves
// its type.
func (p *Parser) finishDotted(n1 int) (diagram.EdgeType, int, error) {
	if err := p.advance(); err != nil { // consume '.'
		return 0, 0, err
	}
	if p.cur.Kind != lex.DashRun {
		return 0, 0, p.errorf("expected %q to continue a dotted edge, got %s", "-", p.cur)
	}
	n2 := len([]rune(p.cur.Literal))
	if err := p.advance(); err != nil {
		return 0, 0, err
	}
	length := max(1, n1+n2-2)
	if p.cur.Kind == lex.GT {
		if err := p.advance(); err != nil {
			return 0, 0, err
		}
		return diagram.DottedArrow, length, nil
	}
	return diagram.DottedLine, length, nil
}

// finishBetweenLabel handles the `--"text"-->` form: a quoted label sits between the opening run
// and a second run that itself carries the usual terminator.
func (p *Parser) finishBetweenLabel(kind1 lex.Kind, n1 int, label string) (diagram.EdgeType, int, string, error) {
	if err := p.advance(); err != nil { // consume the string token
		return 0, 0, "", err
	}
	if p.cur.Kind != lex.DashRun && p.cur.Kind != lex.EqRun {
		return 0, 0, "", p.errorf("expected a dash or equals run after a labeled edge's label, got %s", p.cur)
	}
	run2 := p.cur
	if err := p.advance(); err != nil {
		return 0, 0, "", err
	}

	edgeType, length, err := p.resolveSecondRun(kind1, n1, run2)
	if err != nil {
		return 0, 0, "", err
	}
	return edgeType, length, strings.TrimSpace(label), nil
}

// finishUnquotedBetweenLabel handles "-- some words -->": accumulates tokens until the closing
// dash/equal run is reached.
func (p *Parser) finishUnquotedBetweenLabel(kind1 lex.Kind, n1 int) (diagram.EdgeType, int, string, error) {
	var words []string
	for p.cur.Kind != lex.DashRun && p.cur.Kind != lex.EqRun {
		if p.cur.Kind == lex.NEWLINE || p.cur.Kind == lex.EOF {
			return 0, 0, "", p.errorf("unterminated edge label")
		}
		words = append(words, p.cur.String())
		if err := p.advance(); err != nil {
			return 0, 0, "", err
		}
	}
	run2 := p.cur
	if err := p.advance(); err != nil {
		return 0, 0, "", err
	}

	edgeType, length, err := p.resolveSecondRun(kind1, n1, run2)
	if err != nil {
		return 0, 0, "", err
	}
	return edgeType, length, strings.Join(words, " "), nil
}

// resolveSecondRun resolves the operator's type from its two runs, after a between-run label has
// already been consumed.
func (p *Parser) resolveSecondRun(kind1 lex.Kind, n1 int, run2 lex.Token) (diagram.EdgeType, int, error) {
	n2 := len([]rune(run2.Literal))
	length := max(1, n1+n2-3)

	switch {
	case p.cur.Kind == lex.GT:
		if err := p.advance(); err != nil {
			return 0, 0, err
		}
		if kind1 == lex.EqRun || run2.Kind == lex.EqRun {
			return diagram.ThickArrow, length, nil
		}
		return diagram.Arrow, length, nil
	case p.cur.Kind == lex.Ident && (p.cur.Literal == "o" || p.cur.Literal == "x"):
		typ := diagram.CrossArrow
		if p.cur.Literal == "o" {
			typ = diagram.OpenArrow
		}
		if err := p.advance(); err != nil {
			return 0, 0, err
		}
		return typ, length, nil
	default:
		if kind1 == lex.EqRun || run2.Kind == lex.EqRun {
			return diagram.ThickLine, length, nil
		}
		return diagram.SolidLine, length, nil
	}
}
