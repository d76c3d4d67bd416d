package goswipe

// Widget is one carousel instance owned by a binding. Implementations wrap
// whatever actually renders the carousel. The registry keys subscriptions by
// widget, so implementations must be comparable; pointer types are.
type Widget interface {
	// ID is the id of the element the widget was created on. It is how
	// control and sync companions find the widget.
	ID() string
	SlideTo(index int)
	// RealIndex is the active slide index ignoring loop duplicates.
	RealIndex() int
	ActiveIndex() int
	Destroy()
}

// Hooks are handed to a WidgetFactory. The widget calls IndexChanged every
// time its active index changes.
type Hooks struct {
	IndexChanged func(Widget)
}

// WidgetFactory constructs widgets from compiled configurations.
type WidgetFactory interface {
	NewWidget(el *Element, cfg Config, hooks Hooks) (Widget, error)
}

// WidgetFactoryFunc adapts a function to WidgetFactory.
type WidgetFactoryFunc func(el *Element, cfg Config, hooks Hooks) (Widget, error)

// NewWidget calls f.
func (f WidgetFactoryFunc) NewWidget(el *Element, cfg Config, hooks Hooks) (Widget, error) {
	return f(el, cfg, hooks)
}

// SlideSizer is implemented by widgets that can measure and resize their
// slides. It is needed by the equalHeight custom function.
type SlideSizer interface {
	SlideHeights() []int
	SetSlideHeight(px int)
}
