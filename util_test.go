package goswipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flatOptions struct {
	Name  string  `swiper:"name"`
	Count int     `swiper:"count"`
	Small int8    `swiper:"small"`
	Ratio float64 `swiper:"ratio"`
	On    bool    `swiper:"on"`
	Skip  string  `swiper:"-"`
	Ptr   *int    `swiper:"ptr"`
}

func TestDecodeFlat(t *testing.T) {
	asrt := assert.New(t)

	opts := flatOptions{Name: "default", Count: 1}
	err := decodeFlat(map[string]any{
		"count": 3.0,
		"ratio": "1.5",
		"on":    "true",
		"ptr":   7.0,
		"-":     "ignored",
	}, &opts)
	require.NoError(t, err)
	asrt.Equal("default", opts.Name)
	asrt.Equal(3, opts.Count)
	asrt.Equal(1.5, opts.Ratio)
	asrt.True(opts.On)
	require.NotNil(t, opts.Ptr)
	asrt.Equal(7, *opts.Ptr)
	asrt.Empty(opts.Skip)
}

func TestDecodeFlatRejectsLossyIntegers(t *testing.T) {
	tests := map[string]map[string]any{
		"fraction":       {"count": 2500.75},
		"int64 overflow": {"count": 1e30},
		"int8 overflow":  {"small": 300.0},
		"not a number":   {"count": "many"},
		"wrong type":     {"on": 1.0},
	}
	for name, obj := range tests {
		t.Run(name, func(t *testing.T) {
			var opts flatOptions
			assert.Error(t, decodeFlat(obj, &opts))
		})
	}
}

func TestDecodeFlatTarget(t *testing.T) {
	assert.Error(t, decodeFlat(nil, flatOptions{}))
	n := 1
	assert.Error(t, decodeFlat(nil, &n))
}

func TestEncodeFlat(t *testing.T) {
	got := encodeFlat(autoplayOptions{Delay: 3000, PauseOnMouseEnter: true})
	assert.Equal(t, Config{
		"delay":                3000.0,
		"disableOnInteraction": false,
		"pauseOnMouseEnter":    true,
	}, got)
}
