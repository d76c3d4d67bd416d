package goswipe

import (
	"fmt"
	"strings"
)

// Companion attribute names, written as <directive>:<name> in markup.
const (
	CompanionControl    = "control"
	CompanionSync       = "sync"
	CompanionNavigation = "navigation"
	CompanionAutoplay   = "autoplay"
)

type navigationOptions struct {
	NextEl string `swiper:"nextEl"`
	PrevEl string `swiper:"prevEl"`
}

type autoplayOptions struct {
	Delay                int  `swiper:"delay"`
	DisableOnInteraction bool `swiper:"disableOnInteraction"`
	PauseOnMouseEnter    bool `swiper:"pauseOnMouseEnter"`
}

// ResolveControl links the widget to the one rendered by the element with
// the given id. The id is not checked here; the binding waits for it.
func ResolveControl(target string) Config {
	return Config{
		"controller": Config{
			"by":      "slide",
			"control": "#" + strings.TrimSpace(target),
		},
	}
}

// ResolveNavigation reads the navigation companion. Missing selectors fall
// back to the compiler's defaults.
func (c *Compiler) ResolveNavigation(raw string) (Config, error) {
	obj, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	nav := navigationOptions{
		NextEl: c.opts.NextEl,
		PrevEl: c.opts.PrevEl,
	}
	if err := decodeFlat(obj, &nav); err != nil {
		return nil, err
	}
	return Config{"navigation": encodeFlat(nav)}, nil
}

// ResolveAutoplay reads the autoplay companion.
func (c *Compiler) ResolveAutoplay(raw string) (Config, error) {
	obj, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	ap := autoplayOptions{Delay: c.opts.AutoplayDelay}
	if err := decodeFlat(obj, &ap); err != nil {
		return nil, err
	}
	if ap.Delay < 0 {
		return nil, fmt.Errorf("goswipe: autoplay delay %d must not be negative", ap.Delay)
	}
	return Config{"autoplay": encodeFlat(ap)}, nil
}

// ResolveBreakpoint reads a breakpoint shorthand companion such as
// x-swiper:md="slidesPerView: 2" into overrides for that width.
func (c *Compiler) ResolveBreakpoint(name, raw string) (Config, error) {
	width, ok := c.opts.Breakpoints[name]
	if !ok {
		return nil, &BreakpointError{Name: name, Key: name}
	}
	obj, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	return Config{
		breakpointsKey: map[int]Config{width: configFrom(obj)},
	}, nil
}
