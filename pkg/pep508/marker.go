package pep508

import (
	"fmt"
	"strings"
)

// Marker is a parsed environment-marker expression: a boolean combination of
// comparisons between marker variables and string literals.
type Marker struct {
	root markerNode
	raw  string
}

// String returns the original marker text as written in the specifier.
//
// Returns:
//   - string: The raw marker expression
func (m *Marker) String() string {
	return m.raw
}

// Evaluate evaluates the marker against an environment mapping.
//
// Variables missing from the environment evaluate as the empty string, so a
// marker like `extra == "i18n"` is false when no extra is set.
//
// Parameters:
//   - env: The marker environment (may be nil)
//
// Returns:
//   - bool: The boolean result of the expression
func (m *Marker) Evaluate(env Environment) bool {
	if m == nil || m.root == nil {
		return true
	}
	return m.root.eval(env)
}

// markerNode is one node of the parsed boolean expression tree.
type markerNode interface {
	eval(env Environment) bool
}

// markerOr evaluates as the logical OR of its operands.
type markerOr struct {
	left, right markerNode
}

func (n markerOr) eval(env Environment) bool {
	return n.left.eval(env) || n.right.eval(env)
}

// markerAnd evaluates as the logical AND of its operands.
type markerAnd struct {
	left, right markerNode
}

func (n markerAnd) eval(env Environment) bool {
	return n.left.eval(env) && n.right.eval(env)
}

// markerValue is one operand of a comparison: either a quoted literal or a
// marker variable resolved against the environment at evaluation time.
type markerValue struct {
	text     string
	variable bool
}

// resolve returns the operand's value under the given environment.
//
// Parameters:
//   - env: The marker environment
//
// Returns:
//   - string: The literal text, or the variable's looked-up value
func (v markerValue) resolve(env Environment) string {
	if v.variable {
		return env.Lookup(v.text)
	}
	return v.text
}

// markerCompare is a single comparison between two marker values.
//
// Fields:
//   - lhs: Left operand
//   - op: Comparison operator (==, !=, <, <=, >, >=, ~=, ===, in, not in)
//   - rhs: Right operand
type markerCompare struct {
	lhs markerValue
	op  string
	rhs markerValue
}

func (c markerCompare) eval(env Environment) bool {
	lhs := c.lhs.resolve(env)
	rhs := c.rhs.resolve(env)

	switch c.op {
	case "in":
		return strings.Contains(rhs, lhs)
	case "not in":
		return !strings.Contains(rhs, lhs)
	case "===":
		return strings.TrimSpace(lhs) == strings.TrimSpace(rhs)
	case "~=":
		return compatibleMatch(lhs, rhs)
	}

	cmp := compareOperands(c.lhs, c.rhs, lhs, rhs)
	switch c.op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}

// markerLexer splits a marker expression into tokens.
//
// Fields:
//   - input: The full marker text being lexed
//   - pos: Current byte offset into input
type markerLexer struct {
	input string
	pos   int
}

// token kinds produced by the lexer.
const (
	tokenEOF = iota
	tokenLParen
	tokenRParen
	tokenOp
	tokenString
	tokenIdent
)

// markerToken is one lexed token with its source position.
type markerToken struct {
	kind int
	text string
	pos  int
}

// operator spellings ordered longest-first so the lexer matches greedily.
var operatorSpellings = []string{"===", "==", "!=", "<=", ">=", "~=", "<", ">"}

// next lexes and returns the next token.
//
// Returns:
//   - markerToken: The next token (kind tokenEOF at end of input)
//   - error: When an unterminated string or unexpected byte is found
func (l *markerLexer) next() (markerToken, error) {
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t') {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return markerToken{kind: tokenEOF, pos: l.pos}, nil
	}

	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case '(':
		l.pos++
		return markerToken{kind: tokenLParen, text: "(", pos: start}, nil
	case ')':
		l.pos++
		return markerToken{kind: tokenRParen, text: ")", pos: start}, nil
	case '\'', '"':
		l.pos++
		for l.pos < len(l.input) && l.input[l.pos] != ch {
			l.pos++
		}
		if l.pos >= len(l.input) {
			return markerToken{}, fmt.Errorf("unterminated string at offset %d", start)
		}
		text := l.input[start+1 : l.pos]
		l.pos++
		return markerToken{kind: tokenString, text: text, pos: start}, nil
	}

	for _, op := range operatorSpellings {
		if strings.HasPrefix(l.input[l.pos:], op) {
			l.pos += len(op)
			return markerToken{kind: tokenOp, text: op, pos: start}, nil
		}
	}

	if isIdentByte(ch) {
		for l.pos < len(l.input) && isIdentByte(l.input[l.pos]) {
			l.pos++
		}
		return markerToken{kind: tokenIdent, text: l.input[start:l.pos], pos: start}, nil
	}

	return markerToken{}, fmt.Errorf("unexpected character %q at offset %d", ch, start)
}

// isIdentByte reports whether b can appear in a marker variable name.
//
// Parameters:
//   - b: The byte to classify
//
// Returns:
//   - bool: True for letters, digits, underscore, and dot
func isIdentByte(b byte) bool {
	return b == '_' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// markerParser is a recursive-descent parser over the lexed token stream.
//
// Fields:
//   - lexer: Token source
//   - tok: Current lookahead token
type markerParser struct {
	lexer markerLexer
	tok   markerToken
}

// ParseMarker parses a marker expression string into a Marker.
//
// The grammar is `or` over `and` over parenthesized groups of comparisons,
// with `and` binding tighter than `or`.
//
// Parameters:
//   - raw: The marker expression text (the part after ";" in a specifier)
//
// Returns:
//   - *Marker: The parsed marker
//   - error: When the expression does not conform to the grammar
func ParseMarker(raw string) (*Marker, error) {
	p := &markerParser{lexer: markerLexer{input: raw}}
	if err := p.advance(); err != nil {
		return nil, err
	}

	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF {
		return nil, fmt.Errorf("unexpected %q at offset %d", p.tok.text, p.tok.pos)
	}

	return &Marker{root: root, raw: strings.TrimSpace(raw)}, nil
}

// advance moves the lookahead to the next token.
//
// Returns:
//   - error: When lexing fails
func (p *markerParser) advance() error {
	tok, err := p.lexer.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// parseOr parses a chain of `or`-joined terms.
//
// Returns:
//   - markerNode: The parsed subtree
//   - error: When parsing fails
func (p *markerParser) parseOr() (markerNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tokenIdent && p.tok.text == "or" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = markerOr{left: left, right: right}
	}

	return left, nil
}

// parseAnd parses a chain of `and`-joined terms.
//
// Returns:
//   - markerNode: The parsed subtree
//   - error: When parsing fails
func (p *markerParser) parseAnd() (markerNode, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tokenIdent && p.tok.text == "and" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = markerAnd{left: left, right: right}
	}

	return left, nil
}

// parseTerm parses a parenthesized group or a single comparison.
//
// Returns:
//   - markerNode: The parsed subtree
//   - error: When parsing fails
func (p *markerParser) parseTerm() (markerNode, error) {
	if p.tok.kind == tokenLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokenRParen {
			return nil, fmt.Errorf("missing closing parenthesis at offset %d", p.tok.pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	}

	return p.parseComparison()
}

// parseComparison parses `<value> <op> <value>`.
//
// Returns:
//   - markerNode: The comparison node
//   - error: When either operand or the operator is malformed
func (p *markerParser) parseComparison() (markerNode, error) {
	lhs, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	op, err := p.parseOperator()
	if err != nil {
		return nil, err
	}

	rhs, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return markerCompare{lhs: lhs, op: op, rhs: rhs}, nil
}

// parseValue parses one comparison operand: a quoted literal or a variable.
//
// Returns:
//   - markerValue: The operand
//   - error: When the token is neither a string nor an identifier
func (p *markerParser) parseValue() (markerValue, error) {
	switch p.tok.kind {
	case tokenString:
		v := markerValue{text: p.tok.text}
		return v, p.advance()
	case tokenIdent:
		if p.tok.text == "and" || p.tok.text == "or" || p.tok.text == "in" || p.tok.text == "not" {
			return markerValue{}, fmt.Errorf("expected value, got %q at offset %d", p.tok.text, p.tok.pos)
		}
		v := markerValue{text: p.tok.text, variable: true}
		return v, p.advance()
	default:
		return markerValue{}, fmt.Errorf("expected value at offset %d", p.tok.pos)
	}
}

// parseOperator parses a comparison operator, including the word forms
// `in` and `not in`.
//
// Returns:
//   - string: The operator spelling
//   - error: When no valid operator is present
func (p *markerParser) parseOperator() (string, error) {
	if p.tok.kind == tokenOp {
		op := p.tok.text
		return op, p.advance()
	}

	if p.tok.kind == tokenIdent {
		switch p.tok.text {
		case "in":
			return "in", p.advance()
		case "not":
			if err := p.advance(); err != nil {
				return "", err
			}
			if p.tok.kind != tokenIdent || p.tok.text != "in" {
				return "", fmt.Errorf("expected \"in\" after \"not\" at offset %d", p.tok.pos)
			}
			return "not in", p.advance()
		}
	}

	return "", fmt.Errorf("expected comparison operator at offset %d", p.tok.pos)
}
