package goswipe

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	asrt := assert.New(t)

	tests := []struct {
		key, raw string
		want     any
	}{
		{"loop", "", true},
		{"loop", "false", true},
		{"slides-per-view", "3", 3.0},
		{"space-between", "1_5", 1.5},
		{"effect", "ease_in", "ease_in"},
		{"duration", "500ms", 500.0},
		{"duration", "500", 500.0},
		{"speed", "500ms", "500ms"},
		{"effect", "fade", "fade"},
		{"effect", "", ""},
		{"effect", "NaN", "NaN"},
		{"effect", "Infinity", "Infinity"},
		{"offset", "-20", -20.0},
	}

	for _, tt := range tests {
		asrt.Equal(tt.want, Coerce(tt.key, tt.raw), "Coerce(%q, %q)", tt.key, tt.raw)
	}
}

func TestCoerceUnderscoreDecimal(t *testing.T) {
	asrt := assert.New(t)

	for a := 0; a <= 20; a++ {
		for _, b := range []string{"0", "5", "25", "125", "05"} {
			want, err := strconv.ParseFloat(fmt.Sprintf("%d.%s", a, b), 64)
			asrt.NoError(err)
			asrt.Equal(want, Coerce("x", fmt.Sprintf("%d_%s", a, b)))
		}
	}
}

func TestCoerceCustomUnits(t *testing.T) {
	units := UnitTable{"centered": true}
	assert.Equal(t, true, units.Coerce("centered", "7"))
	assert.Equal(t, 7.0, units.Coerce("loop", "7"))
}

func TestCoerceTokenMissing(t *testing.T) {
	asrt := assert.New(t)
	units := DefaultUnits()

	asrt.Equal(Missing, units.CoerceToken(Token{Kind: KeyValue, Key: "speed"}))
	asrt.Equal(300.0, units.CoerceToken(Token{Kind: KeyValue, Key: "speed", Value: "300", HasValue: true}))
	asrt.Equal(true, units.CoerceToken(Token{Kind: Flag, Key: "loop"}))
}

func TestToConfigKey(t *testing.T) {
	asrt := assert.New(t)

	tests := map[string]string{
		"slides-per-view":        "slidesPerView",
		"slide_to_clicked_slide": "slideToClickedSlide",
		"auto-height":            "autoHeight",
		"loop":                   "loop",
		"a-B":                    "a-B",
		"trailing-":              "trailing-",
		"x--y":                   "x-Y",
		"2xl-gap":                "2xlGap",
		"":                       "",
	}
	for in, want := range tests {
		got := ToConfigKey(in)
		asrt.Equal(want, got, "ToConfigKey(%q)", in)
		asrt.Equal(got, ToConfigKey(got), "ToConfigKey not idempotent for %q", in)
	}
}

func TestBreakpointNames(t *testing.T) {
	assert.Equal(t, []string{"sm", "md", "lg", "xl", "2xl"}, DefaultBreakpoints().Names())
}
