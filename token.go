package goswipe

import "strings"

// TokenKind tells a flag modifier apart from a key/value modifier.
type TokenKind uint8

const (
	// Flag is a unit modifier such as loop. It occupies one slot.
	Flag TokenKind = iota
	// KeyValue is a modifier key followed by its value, e.g. slides-per-view.3.
	// It occupies two slots.
	KeyValue
)

func (k TokenKind) String() string {
	switch k {
	case Flag:
		return "flag"
	case KeyValue:
		return "key-value"
	default:
		return "unknown"
	}
}

// Token is one entry of a tokenized modifier stream. Pos is the index of the
// key in the original stream.
type Token struct {
	Kind     TokenKind
	Key      string
	Value    string
	HasValue bool
	Pos      int
}

// Tokenize splits a flat modifier stream into flags and key/value pairs.
// Every name present in units becomes a Flag, also when scoped to a
// breakpoint (md:loop); any other modifier takes the next modifier as its
// value, whatever that modifier is. A key in the last
// position gets HasValue == false.
func Tokenize(modifiers []string, units UnitTable) []Token {
	toks := make([]Token, 0, len(modifiers))
	for i := 0; i < len(modifiers); i++ {
		m := modifiers[i]
		if units.isUnit(m) {
			toks = append(toks, Token{Kind: Flag, Key: m, Pos: i})
			continue
		}
		tok := Token{Kind: KeyValue, Key: m, Pos: i}
		if i+1 < len(modifiers) {
			tok.Value = modifiers[i+1]
			tok.HasValue = true
			i++
		}
		toks = append(toks, tok)
	}
	return toks
}

func (u UnitTable) isUnit(m string) bool {
	if _, ok := u[m]; ok {
		return true
	}
	if _, prop, scoped := strings.Cut(m, ":"); scoped {
		_, ok := u[prop]
		return ok
	}
	return false
}
