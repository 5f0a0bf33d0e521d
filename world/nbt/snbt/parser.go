package snbt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/df-mc/mcdbcodec/world/nbt"
)

// ErrAmbiguousRoot is returned when the root of a parsed document is a bare
// identifier that could be read as either a string or a number: such an
// ambiguous bare scalar at the root is rejected rather than guessed at.
var ErrAmbiguousRoot = errors.New("snbt: ambiguous root value: quote it to force a string")

// Parse parses a stringified-NBT document into a tagged value. The root is
// normally a compound (`{...}`), but Parse also accepts a list, an array or
// a quoted string at the root for use by APIs that only ever need a single
// value (e.g. printing a block-state palette entry's `states` value back
// out). A bare unquoted scalar at the root is rejected with ErrAmbiguousRoot.
func Parse(src string) (any, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokIdentifier {
		return nil, ErrAmbiguousRoot
	}
	v, err := p.parseValue(0)
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("snbt: unexpected trailing input at offset %d", p.tok.pos)
	}
	return v, nil
}

// ParseCompound parses src and requires the root value to be a compound,
// the same root constraint nbt.Decoder.DecodeCompound enforces for binary NBT.
func ParseCompound(src string) (*nbt.Compound, error) {
	v, err := Parse(src)
	if err != nil {
		return nil, err
	}
	c, ok := v.(*nbt.Compound)
	if !ok {
		return nil, fmt.Errorf("snbt: root value is not a compound (got %T)", v)
	}
	return c, nil
}

type parser struct {
	lex   *lexer
	tok   token
	depth int
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) parseValue(depth int) (any, error) {
	if depth > nbt.DefaultDepthLimit {
		return nil, nbt.ErrDepthExceeded
	}
	switch p.tok.kind {
	case tokLBrace:
		return p.parseCompound(depth)
	case tokLBracket:
		return p.parseListOrArray(depth)
	case tokString:
		s := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return s, nil
	case tokIdentifier:
		v, err := parseScalarLiteral(p.tok.text)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("snbt: expected a value at offset %d", p.tok.pos)
	}
}

func (p *parser) parseCompound(depth int) (*nbt.Compound, error) {
	c := nbt.NewCompound()
	if err := p.advance(); err != nil { // consume '{'
		return nil, err
	}
	if p.tok.kind == tokRBrace {
		return c, p.advance()
	}
	for {
		if p.tok.kind != tokIdentifier && p.tok.kind != tokString {
			return nil, fmt.Errorf("snbt: expected compound key at offset %d", p.tok.pos)
		}
		key := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokColon {
			return nil, fmt.Errorf("snbt: expected ':' after key %q at offset %d", key, p.tok.pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		c.Put(key, v)
		switch p.tok.kind {
		case tokComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokRBrace:
			return c, p.advance()
		default:
			return nil, fmt.Errorf("snbt: expected ',' or '}' at offset %d", p.tok.pos)
		}
	}
}

// parseListOrArray handles `[...]`, `[B;...]`, `[I;...]`, `[L;...]`.
func (p *parser) parseListOrArray(depth int) (any, error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	if p.tok.kind == tokIdentifier && len(p.tok.text) == 1 {
		prefix := p.tok.text
		switch prefix {
		case "B", "I", "L":
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.kind == tokSemicolon {
				if err := p.advance(); err != nil {
					return nil, err
				}
				return p.parseTypedArray(prefix)
			}
			// Not actually an array prefix: reparse as ordinary list whose
			// first element happens to be the identifier we consumed.
			return p.parseList(depth, prefix)
		}
	}
	if p.tok.kind == tokRBracket {
		return &nbt.List{}, p.advance()
	}
	return p.parseListFresh(depth)
}

func (p *parser) parseTypedArray(prefix string) (any, error) {
	switch prefix {
	case "B":
		var out []byte
		if err := p.parseCommaSeparated(func() error {
			n, err := parseIntLiteral(p.tok.text, 8)
			if err != nil {
				return err
			}
			out = append(out, byte(n))
			return p.advance()
		}); err != nil {
			return nil, err
		}
		return out, nil
	case "I":
		var out []int32
		if err := p.parseCommaSeparated(func() error {
			n, err := parseIntLiteral(p.tok.text, 32)
			if err != nil {
				return err
			}
			out = append(out, int32(n))
			return p.advance()
		}); err != nil {
			return nil, err
		}
		return out, nil
	case "L":
		var out []int64
		if err := p.parseCommaSeparated(func() error {
			n, err := parseIntLiteral(p.tok.text, 64)
			if err != nil {
				return err
			}
			out = append(out, n)
			return p.advance()
		}); err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, fmt.Errorf("snbt: unknown array prefix %q", prefix)
}

func (p *parser) parseCommaSeparated(elem func() error) error {
	if p.tok.kind == tokRBracket {
		return p.advance()
	}
	for {
		if p.tok.kind != tokIdentifier {
			return fmt.Errorf("snbt: expected numeric literal at offset %d", p.tok.pos)
		}
		if err := elem(); err != nil {
			return err
		}
		switch p.tok.kind {
		case tokComma:
			if err := p.advance(); err != nil {
				return err
			}
		case tokRBracket:
			return p.advance()
		default:
			return fmt.Errorf("snbt: expected ',' or ']' at offset %d", p.tok.pos)
		}
	}
}

// parseList parses an ordinary list whose first value is the already-lexed
// identifier text first (used when a `[X;` prefix attempt failed to find the
// semicolon).
func (p *parser) parseList(depth int, first string) (*nbt.List, error) {
	v, err := parseScalarLiteral(first)
	if err != nil {
		return nil, err
	}
	list := &nbt.List{}
	elemType, _ := nbt.TypeOf(v)
	list.Elem = elemType
	list.Values = append(list.Values, v)
	if p.tok.kind == tokRBracket {
		return list, p.advance()
	}
	if p.tok.kind != tokComma {
		return nil, fmt.Errorf("snbt: expected ',' or ']' at offset %d", p.tok.pos)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseListRest(depth, list)
}

func (p *parser) parseListFresh(depth int) (*nbt.List, error) {
	list := &nbt.List{}
	return p.parseListRest(depth, list)
}

func (p *parser) parseListRest(depth int, list *nbt.List) (*nbt.List, error) {
	for {
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		if list.Elem == 0 && len(list.Values) == 0 {
			list.Elem, _ = nbt.TypeOf(v)
		}
		list.Values = append(list.Values, v)
		switch p.tok.kind {
		case tokComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokRBracket:
			return list, p.advance()
		default:
			return nil, fmt.Errorf("snbt: expected ',' or ']' at offset %d", p.tok.pos)
		}
	}
}

// parseScalarLiteral interprets an unquoted identifier as a number-with-
// suffix literal, falling back to treating it as a bare (unquoted) string
// when it doesn't parse as a number — e.g. `true`/`false`/custom keywords.
func parseScalarLiteral(text string) (any, error) {
	if text == "" {
		return "", nil
	}
	last := text[len(text)-1]
	body := text
	var suffix byte
	switch last {
	case 'b', 'B', 's', 'S', 'l', 'L', 'f', 'F', 'd', 'D':
		// 'i'/'I' is not a valid suffix (it collides with int-array prefix
		// and the plain integer has no suffix at all).
		suffix = lower(last)
		body = text[:len(text)-1]
	}
	if body == "" {
		return text, nil
	}
	switch suffix {
	case 'b':
		n, err := strconv.ParseInt(body, 10, 8)
		if err != nil {
			return text, nil
		}
		return int8(n), nil
	case 's':
		n, err := strconv.ParseInt(body, 10, 16)
		if err != nil {
			return text, nil
		}
		return int16(n), nil
	case 'l':
		n, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			return text, nil
		}
		return n, nil
	case 'f':
		f, err := strconv.ParseFloat(body, 32)
		if err != nil {
			return text, nil
		}
		return float32(f), nil
	case 'd':
		f, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return text, nil
		}
		return f, nil
	}
	if n, err := strconv.ParseInt(text, 10, 32); err == nil {
		return int32(n), nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && strings.ContainsAny(text, ".eE") {
		return f, nil
	}
	return text, nil
}

func parseIntLiteral(text string, bits int) (int64, error) {
	body := text
	if len(body) > 0 {
		switch body[len(body)-1] {
		case 'b', 'B', 's', 'S', 'l', 'L':
			body = body[:len(body)-1]
		}
	}
	return strconv.ParseInt(body, 10, bits)
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
