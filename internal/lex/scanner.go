package lex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Scanner tokenizes diagram source code into a stream of [Token]s. It mirrors the two-rune
// lookahead scanner teleivo/dot uses for the DOT language: a current and a next rune are kept
// so multi-character operators ("-->", "==>") can be recognized without backtracking.
type Scanner struct {
	r         *bufio.Reader
	cur       rune
	curLine   int
	curColumn int
	next      rune
	eof       bool
	err       error
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) (*Scanner, error) {
	sc := &Scanner{r: bufio.NewReader(r), curLine: 1}

	if err := sc.readRune(); err != nil {
		return nil, err
	}
	if err := sc.readRune(); err != nil {
		return nil, err
	}
	sc.curColumn = 1

	return sc, nil
}

func (sc *Scanner) readRune() error {
	if sc.isDone() {
		return sc.err
	}

	r, _, err := sc.r.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			sc.err = fmt.Errorf("failed to read rune: %v", err)
			return sc.err
		}
		sc.eof = true
	}

	if sc.cur == '\n' {
		sc.curLine++
		sc.curColumn = 1
	} else {
		sc.curColumn++
	}
	sc.cur = sc.next
	sc.next = r
	return nil
}

func (sc *Scanner) hasNext() bool {
	return !sc.eof || sc.cur != 0
}

func (sc *Scanner) isDone() bool {
	return !sc.hasNext() || sc.err != nil
}

func (sc *Scanner) pos() Position {
	return Position{Line: sc.curLine, Column: sc.curColumn}
}

// Next returns the next token. Whitespace other than newlines is skipped; a line of only
// whitespace still yields a NEWLINE, since statement boundaries in every plugin's grammar are
// newline sensitive.
func (sc *Scanner) Next() (Token, error) {
	sc.skipHorizontalWhitespace()
	if sc.err != nil {
		return Token{}, sc.err
	}
	if !sc.hasNext() {
		return Token{Kind: EOF}, nil
	}

	start := sc.pos()

	switch sc.cur {
	case '\n':
		tok := Token{Kind: NEWLINE, Literal: "\n", Start: start, End: start}
		return tok, sc.readRune()
	case '\r':
		return sc.singleRune(NEWLINE, "\n")
	case '(':
		return sc.singleRune(LeftParen, "(")
	case ')':
		return sc.singleRune(RightParen, ")")
	case '[':
		return sc.singleRune(LeftBracket, "[")
	case ']':
		return sc.singleRune(RightBracket, "]")
	case '{':
		return sc.singleRune(LeftBrace, "{")
	case '}':
		return sc.singleRune(RightBrace, "}")
	case '|':
		return sc.singleRune(Pipe, "|")
	case ':':
		return sc.singleRune(Colon, ":")
	case ',':
		return sc.singleRune(Comma, ",")
	case '>':
		return sc.singleRune(GT, ">")
	case '<':
		return sc.singleRune(LT, "<")
	case '.':
		return sc.singleRune(Dot, ".")
	case '/':
		return sc.singleRune(Slash, "/")
	case '\\':
		return sc.singleRune(Backslash, "\\")
	case '~':
		return sc.singleRune(Tilde, "~")
	case '"':
		return sc.tokenizeQuotedString()
	case '%':
		if sc.next == '%' {
			return sc.tokenizeComment()
		}
		return sc.illegal()
	case '-':
		return sc.tokenizeRun('-', DashRun)
	case '=':
		return sc.tokenizeRun('=', EqRun)
	default:
		if isIdentStart(sc.cur) {
			return sc.tokenizeIdent()
		}
		return sc.illegal()
	}
}

func (sc *Scanner) illegal() (Token, error) {
	start := sc.pos()
	lit := string(sc.cur)
	err := sc.errorf("unexpected character %q", sc.cur)
	_ = sc.readRune()
	return Token{Kind: ILLEGAL, Literal: lit, Start: start, End: start}, err
}

func (sc *Scanner) singleRune(kind Kind, literal string) (Token, error) {
	start := sc.pos()
	tok := Token{Kind: kind, Literal: literal, Start: start, End: start}
	return tok, sc.readRune()
}

func (sc *Scanner) skipHorizontalWhitespace() {
	for sc.cur == ' ' || sc.cur == '\t' {
		if err := sc.readRune(); err != nil {
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func (sc *Scanner) tokenizeIdent() (Token, error) {
	start := sc.pos()
	var sb strings.Builder
	end := start
	for sc.hasNext() && isIdentPart(sc.cur) {
		sb.WriteRune(sc.cur)
		end = sc.pos()
		if err := sc.readRune(); err != nil {
			return Token{}, err
		}
	}
	return Token{Kind: Ident, Literal: sb.String(), Start: start, End: end}, nil
}

func (sc *Scanner) tokenizeRun(r rune, kind Kind) (Token, error) {
	start := sc.pos()
	var sb strings.Builder
	end := start
	for sc.hasNext() && sc.cur == r {
		sb.WriteRune(sc.cur)
		end = sc.pos()
		if err := sc.readRune(); err != nil {
			return Token{}, err
		}
	}
	return Token{Kind: kind, Literal: sb.String(), Start: start, End: end}, nil
}

func (sc *Scanner) tokenizeComment() (Token, error) {
	start := sc.pos()
	var sb strings.Builder
	end := start
	for sc.hasNext() && sc.cur != '\n' {
		sb.WriteRune(sc.cur)
		end = sc.pos()
		if err := sc.readRune(); err != nil {
			return Token{}, err
		}
	}
	return Token{Kind: Comment, Literal: sb.String(), Start: start, End: end}, nil
}

func (sc *Scanner) tokenizeQuotedString() (Token, error) {
	start := sc.pos()
	if err := sc.readRune(); err != nil { // consume opening quote
		return Token{}, err
	}

	var sb strings.Builder
	var end Position
	var closed bool
	for sc.hasNext() {
		if sc.cur == '"' {
			closed = true
			end = sc.pos()
			if err := sc.readRune(); err != nil {
				return Token{}, err
			}
			break
		}
		if sc.cur == '\n' {
			break
		}
		sb.WriteRune(sc.cur)
		end = sc.pos()
		if err := sc.readRune(); err != nil {
			return Token{}, err
		}
	}

	if !closed {
		return Token{Kind: ILLEGAL, Literal: sb.String(), Start: start, End: end}, sc.errorAt(start, "missing closing quote")
	}

	return Token{Kind: String, Literal: sb.String(), Start: start, End: end}, nil
}

// ScanRaw reads raw runes, starting at the current position, up to (but not including) the
// first occurrence of any string in terminators, or end of line/input. It is used by plugin
// parsers to capture node and shape label text, which may contain spaces and punctuation that
// would otherwise be tokenized, the same way teleivo/dot's scanner hand-rolls raw accumulation
// for comments and quoted strings rather than tokenizing their contents.
func (sc *Scanner) ScanRaw(terminators ...string) (string, string, error) {
	var sb strings.Builder
	for sc.hasNext() {
		if sc.cur == '\n' {
			return sb.String(), "", nil
		}
		for _, term := range terminators {
			if sc.matchesAhead(term) {
				return sb.String(), term, nil
			}
		}
		sb.WriteRune(sc.cur)
		if err := sc.readRune(); err != nil {
			return sb.String(), "", err
		}
	}
	return sb.String(), "", nil
}

// PeekRune returns the rune that the next call to Next or ScanRaw would start consuming from,
// without consuming it. It lets a parser decide between a single- and multi-rune delimiter (for
// example "[" rectangle vs "[(" cylinder) after having already consumed the first rune as an
// ordinary token, without needing a second token of lookahead.
func (sc *Scanner) PeekRune() rune {
	return sc.cur
}

// matchesAhead reports whether term starts at the scanner's current position, without
// consuming any input. Only 1- and 2-rune terminators are used by callers, which the scanner's
// cur/next lookahead already covers.
func (sc *Scanner) matchesAhead(term string) bool {
	runes := []rune(term)
	switch len(runes) {
	case 1:
		return sc.cur == runes[0]
	case 2:
		return sc.cur == runes[0] && sc.next == runes[1]
	default:
		return false
	}
}

// Advance consumes n runes, used by callers after ScanRaw matched a multi-rune terminator they
// want to also consume.
func (sc *Scanner) Advance(n int) error {
	for range n {
		if err := sc.readRune(); err != nil {
			return err
		}
	}
	return nil
}

func (sc *Scanner) errorf(format string, args ...any) *Error {
	return &Error{Line: sc.curLine, Column: sc.curColumn, Message: fmt.Sprintf(format, args...)}
}

func (sc *Scanner) errorAt(pos Position, message string) *Error {
	return &Error{Line: pos.Line, Column: pos.Column, Message: message}
}

// Error represents a scanning error in diagram source code.
type Error struct {
	Line, Column int
	Message      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}
