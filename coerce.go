package goswipe

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// UnitTable holds the modifiers that are boolean flags. A unit modifier
// occupies a single slot in the modifier stream and never carries a value.
type UnitTable map[string]bool

// BreakpointTable maps responsive size names to pixel widths.
type BreakpointTable map[string]int

// DefaultUnits returns the built-in unit modifiers.
func DefaultUnits() UnitTable {
	return UnitTable{
		"autoplay":               true,
		"loop":                   true,
		"cross-fade":             true,
		"no-swiping":             true,
		"slide-to-clicked-slide": true,
		"auto-height":            true,
		"equal-height":           true,
	}
}

// DefaultBreakpoints returns the tailwind screen sizes.
func DefaultBreakpoints() BreakpointTable {
	return BreakpointTable{
		"sm":  640,
		"md":  768,
		"lg":  1024,
		"xl":  1280,
		"2xl": 1536,
	}
}

// Names returns the breakpoint names ordered by width.
func (b BreakpointTable) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if b[names[i]] != b[names[j]] {
			return b[names[i]] < b[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

type missing struct{}

func (missing) String() string { return "<missing>" }

// Missing is the value produced for a key/value modifier that has no value
// token after it. The compiler drops keys holding it.
var Missing any = missing{}

var durationMs = regexp.MustCompile(`^([0-9]+)ms$`)

// Coerce converts a raw modifier value using the default unit table.
func Coerce(key, raw string) any {
	return DefaultUnits().Coerce(key, raw)
}

// Coerce converts raw into a bool, a float64 or a string.
//
// Unit modifiers always yield their table value. A value containing an
// underscore is read with the first underscore as decimal point, so 1_5 is
// 1.5. The duration key accepts an ms suffix. Anything that is not numeric
// comes back unchanged.
func (u UnitTable) Coerce(key, raw string) any {
	if v, ok := u[key]; ok {
		return v
	}

	if strings.Contains(raw, "_") {
		if n, ok := toNumber(strings.Replace(raw, "_", ".", 1)); ok {
			return n
		}
		return raw
	}

	if key == "duration" {
		if m := durationMs.FindStringSubmatch(raw); m != nil {
			if n, ok := toNumber(m[1]); ok {
				return n
			}
		}
	}

	if n, ok := toNumber(raw); ok {
		return n
	}
	return raw
}

// CoerceToken coerces the value of tok, propagating Missing when the token
// has no value.
func (u UnitTable) CoerceToken(tok Token) any {
	if tok.Kind == Flag {
		return u.Coerce(tok.Key, "")
	}
	if !tok.HasValue {
		return Missing
	}
	return u.Coerce(tok.Key, tok.Value)
}

func toNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToConfigKey turns a kebab or snake cased modifier key into the camel cased
// key the widget expects: slides-per-view becomes slidesPerView. Only a
// separator followed by a lowercase ASCII letter is rewritten.
func ToConfigKey(raw string) string {
	if !strings.ContainsAny(raw, "-_") {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c == '-' || c == '_') && i+1 < len(raw) && raw[i+1] >= 'a' && raw[i+1] <= 'z' {
			b.WriteByte(raw[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
