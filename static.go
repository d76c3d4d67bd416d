package goswipe

import (
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// StaticFactory creates StaticWidgets. It stands in for a real carousel
// wherever markup is compiled ahead of time: the CLI, the HTTP service and
// tests.
type StaticFactory struct {
	mu      sync.Mutex
	widgets []*StaticWidget
}

// NewWidget implements WidgetFactory.
func (f *StaticFactory) NewWidget(el *Element, cfg Config, hooks Hooks) (Widget, error) {
	w := &StaticWidget{
		id:    el.ID(),
		cfg:   cfg,
		hooks: hooks,
	}
	el.Selection().Find(".swiper-slide").Each(func(_ int, s *goquery.Selection) {
		h, _ := s.Attr("data-height")
		n, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(h), "px"))
		w.heights = append(w.heights, n)
	})

	f.mu.Lock()
	f.widgets = append(f.widgets, w)
	f.mu.Unlock()
	return w, nil
}

// Widgets returns every widget created so far, in creation order.
func (f *StaticFactory) Widgets() []*StaticWidget {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*StaticWidget(nil), f.widgets...)
}

// StaticWidget is a widget without a renderer. It keeps an index, reports
// index changes through its hooks and remembers its configuration.
type StaticWidget struct {
	mu          sync.Mutex
	id          string
	cfg         Config
	hooks       Hooks
	index       int
	heights     []int
	slideHeight int
	destroyed   bool
}

// ID implements Widget.
func (w *StaticWidget) ID() string { return w.id }

// Config returns the configuration the widget was created with.
func (w *StaticWidget) Config() Config { return w.cfg }

// SlideTo moves to index, clamped to the known slides. Hooks fire only when
// the index actually changes.
func (w *StaticWidget) SlideTo(index int) {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	if n := len(w.heights); n > 0 && index >= n {
		index = n - 1
	}
	if index < 0 {
		index = 0
	}
	changed := index != w.index
	w.index = index
	w.mu.Unlock()

	if changed && w.hooks.IndexChanged != nil {
		w.hooks.IndexChanged(w)
	}
}

// RealIndex implements Widget.
func (w *StaticWidget) RealIndex() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.index
}

// ActiveIndex implements Widget. Without loop duplicates it equals
// RealIndex.
func (w *StaticWidget) ActiveIndex() int { return w.RealIndex() }

// Destroy implements Widget.
func (w *StaticWidget) Destroy() {
	w.mu.Lock()
	w.destroyed = true
	w.mu.Unlock()
}

// Destroyed reports whether Destroy was called.
func (w *StaticWidget) Destroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}

// SlideHeights implements SlideSizer from the slides' data-height
// attributes.
func (w *StaticWidget) SlideHeights() []int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]int(nil), w.heights...)
}

// SetSlideHeight implements SlideSizer.
func (w *StaticWidget) SetSlideHeight(px int) {
	w.mu.Lock()
	w.slideHeight = px
	w.mu.Unlock()
}

// SlideHeight returns the height set by SetSlideHeight.
func (w *StaticWidget) SlideHeight() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.slideHeight
}
