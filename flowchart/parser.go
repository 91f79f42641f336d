// Package flowchart implements the detector, parser, layout engine, and renderer for the
// flowchart diagram kind: "graph"/"flowchart" sources describing nodes and the directed,
// possibly labeled, edges between them.
package flowchart

import (
	"fmt"
	"strings"

	"github.com/meridian-diagrams/meridian/diagram"
	"github.com/meridian-diagrams/meridian/internal/lex"
)

// Parser turns flowchart source text directly into [diagram.Database] mutations. It is a
// recursive-descent parser in the curToken/peekToken style teleivo/dot's dot.go uses, narrowed
// to a single token of lookahead: the one place that needs to see past the current token (shape
// delimiters like "[(" versus "[") is resolved with [lex.Scanner.PeekRune] instead, so label text
// can be raw-scanned starting exactly where the delimiter ends rather than re-tokenized.
type Parser struct {
	sc  *lex.Scanner
	cur lex.Token
}

// New creates a Parser over source and primes its first token.
func New(source string) (*Parser, error) {
	sc, err := lex.NewScanner(strings.NewReader(source))
	if err != nil {
		return nil, err
	}
	p := &Parser{sc: sc}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse implements [plugin.Parser]. It fills db with every node and edge declared in source.
func (p *Parser) Parse(source string, db *diagram.Database) error {
	np, err := New(source)
	if err != nil {
		return err
	}
	*p = *np
	return p.parse(db)
}

func (p *Parser) advance() error {
	tok, err := p.sc.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) parse(db *diagram.Database) error {
	p.skipBlankLines()
	if err := p.parseHeader(db); err != nil {
		return err
	}
	p.skipBlankLines()

	for p.cur.Kind != lex.EOF {
		if err := p.parseStatement(db); err != nil {
			return err
		}
		p.skipBlankLines()
	}
	return nil
}

func (p *Parser) skipBlankLines() {
	for p.cur.Kind == lex.NEWLINE {
		_ = p.advance()
	}
}

// parseHeader consumes the mandatory "graph"/"flowchart" keyword and direction token.
func (p *Parser) parseHeader(db *diagram.Database) error {
	if p.cur.Kind != lex.Ident || (p.cur.Literal != "graph" && p.cur.Literal != "flowchart") {
		return p.errorf("expected %q or %q, got %s", "graph", "flowchart", p.cur)
	}
	if err := p.advance(); err != nil {
		return err
	}

	if p.cur.Kind != lex.Ident {
		return p.errorf("expected a direction (TD, TB, BT, LR, or RL), got %s", p.cur)
	}
	dir, ok := diagram.ParseDirection(p.cur.Literal)
	if !ok {
		return p.errorf("unknown direction %q", p.cur.Literal)
	}
	db.SetDirection(dir)
	if err := p.advance(); err != nil {
		return err
	}

	if p.cur.Kind != lex.NEWLINE && p.cur.Kind != lex.EOF {
		return p.errorf("expected end of line after header, got %s", p.cur)
	}
	return nil
}

func (p *Parser) parseStatement(db *diagram.Database) error {
	switch {
	case p.cur.Kind == lex.Comment:
		return p.advance()
	case p.cur.Kind == lex.NEWLINE:
		return p.advance()
	case p.cur.Kind == lex.Ident && p.cur.Literal == "classDef":
		return p.parseClassDef(db)
	case p.cur.Kind == lex.Ident && p.cur.Literal == "class":
		return p.parseClassAssign(db)
	case p.cur.Kind == lex.Ident && p.cur.Literal == "style":
		return p.skipToEndOfLine()
	case p.cur.Kind == lex.Ident:
		return p.parseNodeOrEdgeStatement(db)
	default:
		return p.errorf("unexpected token %s", p.cur)
	}
}

func (p *Parser) skipToEndOfLine() error {
	for p.cur.Kind != lex.NEWLINE && p.cur.Kind != lex.EOF {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// parseClassDef handles "classDef name styleText...", storing the raw style text for later
// consumption by an external color post-processor; the core renderer never reads it.
func (p *Parser) parseClassDef(db *diagram.Database) error {
	if err := p.advance(); err != nil { // consume "classDef"
		return err
	}
	if p.cur.Kind != lex.Ident {
		return p.errorf("expected a class name after classDef, got %s", p.cur)
	}
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return err
	}

	var words []string
	for p.cur.Kind != lex.NEWLINE && p.cur.Kind != lex.EOF {
		words = append(words, p.cur.String())
		if err := p.advance(); err != nil {
			return err
		}
	}
	db.AddClassDef(name, strings.Join(words, ""))
	return nil
}

// parseClassAssign handles "class id1,id2,... className".
func (p *Parser) parseClassAssign(db *diagram.Database) error {
	if err := p.advance(); err != nil { // consume "class"
		return err
	}

	var ids []string
	for {
		if p.cur.Kind != lex.Ident {
			return p.errorf("expected a node id, got %s", p.cur)
		}
		ids = append(ids, p.cur.Literal)
		if err := p.advance(); err != nil {
			return err
		}
		if p.cur.Kind != lex.Comma {
			break
		}
		if err := p.advance(); err != nil {
			return err
		}
	}

	if p.cur.Kind != lex.Ident {
		return p.errorf("expected a class name, got %s", p.cur)
	}
	class := p.cur.Literal
	if err := p.advance(); err != nil {
		return err
	}

	for _, id := range ids {
		db.SetNodeClass(id, class)
	}
	return nil
}

// parseNodeOrEdgeStatement parses a node-ref, and if it is followed by one or more edge
// operators, the full chain: "A --> B --> C" becomes edges (A,B) and (B,C), registering every
// node it mentions along the way, shaped or not.
func (p *Parser) parseNodeOrEdgeStatement(db *diagram.Database) error {
	id, hasShape, shape, label, err := p.parseNodeRef()
	if err != nil {
		return err
	}
	if _, err := db.AddNode(diagram.NodeData{ID: id, Label: label, Shape: shapeOrDefault(hasShape, shape)}); err != nil {
		return p.wrapDBError(err)
	}

	prev := id
	for p.cur.Kind == lex.DashRun || p.cur.Kind == lex.EqRun {
		edgeType, length, edgeLabel, err := p.parseEdgeOperator()
		if err != nil {
			return err
		}

		nid, hasShape2, shape2, label2, err := p.parseNodeRef()
		if err != nil {
			return err
		}
		if _, err := db.AddNode(diagram.NodeData{ID: nid, Label: label2, Shape: shapeOrDefault(hasShape2, shape2)}); err != nil {
			return p.wrapDBError(err)
		}
		if _, err := db.AddEdge(diagram.EdgeData{From: prev, To: nid, Type: edgeType, Label: edgeLabel, Length: length}); err != nil {
			return p.wrapDBError(err)
		}
		prev = nid
	}

	if p.cur.Kind != lex.NEWLINE && p.cur.Kind != lex.EOF {
		return p.errorf("expected end of line, got %s", p.cur)
	}
	return nil
}

func shapeOrDefault(hasShape bool, shape diagram.NodeShape) diagram.NodeShape {
	if hasShape {
		return shape
	}
	return diagram.Rectangle
}

// parseNodeRef parses "id" or "id" followed immediately by a shape delimiter pair enclosing a
// label, e.g. "B{Decision}".
func (p *Parser) parseNodeRef() (id string, hasShape bool, shape diagram.NodeShape, label string, err error) {
	if p.cur.Kind != lex.Ident {
		return "", false, 0, "", p.errorf("expected a node id, got %s", p.cur)
	}
	id = p.cur.Literal
	if err = p.advance(); err != nil {
		return "", false, 0, "", err
	}

	shape, closer, extra, ok := detectShapeOpener(p.cur, p.sc.PeekRune())
	if !ok {
		return id, false, 0, "", nil
	}

	if extra {
		if err = p.sc.Advance(1); err != nil {
			return "", false, 0, "", err
		}
	}
	text, matched, err := p.sc.ScanRaw(closer)
	if err != nil {
		return "", false, 0, "", err
	}
	if matched != closer {
		return "", false, 0, "", p.errorf("unterminated %s label, expected closing %q", shape, closer)
	}
	if err = p.sc.Advance(len(closer)); err != nil {
		return "", false, 0, "", err
	}
	if err = p.advance(); err != nil {
		return "", false, 0, "", err
	}
	return id, true, shape, strings.TrimSpace(text), nil
}

// detectShapeOpener inspects the token the parser is sitting on plus the scanner's next raw rune
// to decide which of the eleven shape delimiter pairs, if any, starts here. extra reports whether
// one more raw rune (the second delimiter character) must be consumed before the label begins.
func detectShapeOpener(cur lex.Token, nextRune rune) (shape diagram.NodeShape, closer string, extra bool, ok bool) {
	switch cur.Kind {
	case lex.LeftBracket:
		switch nextRune {
		case '(':
			return diagram.Cylinder, ")]", true, true
		case '[':
			return diagram.Subroutine, "]]", true, true
		case '/':
			return diagram.Parallelogram, "/]", true, true
		case '\\':
			return diagram.Trapezoid, "\\]", true, true
		default:
			return diagram.Rectangle, "]", false, true
		}
	case lex.LeftParen:
		switch nextRune {
		case '[':
			return diagram.Stadium, "])", true, true
		case '(':
			return diagram.Circle, "))", true, true
		default:
			return diagram.RoundedRect, ")", false, true
		}
	case lex.LeftBrace:
		if nextRune == '{' {
			return diagram.Hexagon, "}}", true, true
		}
		return diagram.Rhombus, "}", false, true
	case lex.GT:
		return diagram.Asymmetric, "]", false, true
	default:
		return 0, "", false, false
	}
}

func (p *Parser) errorf(format string, args ...any) *diagram.ParseError {
	return &diagram.ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    p.cur.Start.Line,
		Column:  p.cur.Start.Column,
	}
}

func (p *Parser) wrapDBError(err error) error {
	return &diagram.ParseError{
		Message: err.Error(),
		Line:    p.cur.Start.Line,
		Column:  p.cur.Start.Column,
	}
}
