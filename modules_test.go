package goswipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredModules(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{"none", Config{"loop": true}, nil},
		{"autoplay flag", Config{"autoplay": true}, []string{"Autoplay"}},
		{"autoplay off", Config{"autoplay": false}, nil},
		{"companions", Config{
			"autoplay":   Config{"delay": 3000.0},
			"navigation": Config{"nextEl": ".n"},
			"controller": Config{"control": "#t"},
		}, []string{"Autoplay", "Navigation", "Controller"}},
		{"fade effect", Config{"effect": "fade"}, []string{"EffectFade"}},
		{"cross fade", Config{"crossFade": true, "pagination": ".p"}, []string{"Pagination", "EffectFade"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, m := range RequiredModules(tt.cfg) {
				got = append(got, m.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

type sizedWidget struct {
	fakeWidget
	heights []int
	set     int
}

func (w *sizedWidget) SlideHeights() []int   { return w.heights }
func (w *sizedWidget) SetSlideHeight(px int) { w.set = px }

func TestEqualHeight(t *testing.T) {
	w := &sizedWidget{heights: []int{100, 250, 180}}
	assert.NoError(t, EqualHeight(w))
	assert.Equal(t, 250, w.set)

	assert.Error(t, EqualHeight(&fakeWidget{id: "plain"}))
}
