package goswipe

import "strings"

// ParseLoose reads the relaxed object literals used in companion attribute
// values, such as
//
//	nextEl: .btn-next, prevEl: '.btn-prev'
//	{delay: 3000, pauseOnMouseEnter: true}
//
// Keys may be bare identifiers or quoted. Values may be quoted with single or
// double quotes, or bare; a bare value runs up to the next comma or closing
// brace. Bare true, false and null are read as such and bare numbers become
// float64. Objects are flat: nested objects and arrays are rejected.
func ParseLoose(raw string) (map[string]any, error) {
	p := &looseParser{src: raw}
	return p.parse()
}

// Normalize is ParseLoose under the name the resolvers use.
func Normalize(raw string) (map[string]any, error) {
	return ParseLoose(raw)
}

type looseParser struct {
	src string
	pos int
}

func (p *looseParser) errorf(reason string) error {
	return &ParseError{Input: p.src, Offset: p.pos, Reason: reason}
}

func (p *looseParser) parse() (map[string]any, error) {
	out := map[string]any{}

	p.skipSpace()
	braced := p.peek() == '{'
	if braced {
		p.pos++
	}

	for {
		p.skipSpace()
		if p.eof() {
			if braced {
				return nil, p.errorf("missing closing brace")
			}
			return out, nil
		}
		if p.peek() == '}' {
			if !braced {
				return nil, p.errorf("unexpected closing brace")
			}
			p.pos++
			p.skipSpace()
			if !p.eof() {
				return nil, p.errorf("trailing characters after object")
			}
			return out, nil
		}

		key, err := p.key()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ':' {
			return nil, p.errorf("expected ':' after key " + key)
		}
		p.pos++
		p.skipSpace()

		val, err := p.value()
		if err != nil {
			return nil, err
		}
		out[key] = val

		p.skipSpace()
		switch {
		case p.eof():
		case p.peek() == ',':
			p.pos++
		case p.peek() == '}':
		default:
			return nil, p.errorf("expected ',' between members")
		}
	}
}

func (p *looseParser) key() (string, error) {
	switch c := p.peek(); {
	case c == '"' || c == '\'':
		return p.quoted()
	case isIdent(c):
		start := p.pos
		for !p.eof() && isIdent(p.peek()) {
			p.pos++
		}
		return p.src[start:p.pos], nil
	default:
		return "", p.errorf("expected key")
	}
}

func (p *looseParser) value() (any, error) {
	switch c := p.peek(); {
	case p.eof():
		return nil, p.errorf("missing value")
	case c == '"' || c == '\'':
		return p.quoted()
	case c == '{' || c == '[':
		return nil, p.errorf("nested values are not supported")
	}

	start := p.pos
	for !p.eof() && p.peek() != ',' && p.peek() != '}' {
		p.pos++
	}
	word := strings.TrimSpace(p.src[start:p.pos])
	if word == "" {
		p.pos = start
		return nil, p.errorf("missing value")
	}

	switch word {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}
	if n, ok := toNumber(word); ok {
		return n, nil
	}
	return word, nil
}

func (p *looseParser) quoted() (string, error) {
	q := p.peek()
	start := p.pos
	p.pos++

	var b strings.Builder
	for !p.eof() {
		c := p.peek()
		switch {
		case c == '\\' && p.pos+1 < len(p.src):
			b.WriteByte(p.src[p.pos+1])
			p.pos += 2
		case c == q:
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	p.pos = start
	return "", p.errorf("unterminated string")
}

func (p *looseParser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *looseParser) eof() bool { return p.pos >= len(p.src) }

func (p *looseParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func isIdent(c byte) bool {
	return c == '_' || c == '-' || c == '$' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
