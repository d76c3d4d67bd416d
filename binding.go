package goswipe

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// CustomFunc runs against a freshly created widget when the compiled
// configuration sets the function's name to true.
type CustomFunc func(Widget) error

// DefaultCustomFuncs returns the built-in custom functions.
func DefaultCustomFuncs() map[string]CustomFunc {
	return map[string]CustomFunc{
		"equalHeight": EqualHeight,
	}
}

// Binder binds elements to widgets. All bindings of one page share the
// binder's registry.
type Binder struct {
	compiler *Compiler
	registry *Registry
	factory  WidgetFactory
	funcs    map[string]CustomFunc
}

// NewBinder returns a binder creating widgets with factory. A nil registry
// gets a fresh one.
func NewBinder(c *Compiler, reg *Registry, factory WidgetFactory) *Binder {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Binder{
		compiler: c,
		registry: reg,
		factory:  factory,
		funcs:    DefaultCustomFuncs(),
	}
}

// Compiler returns the binder's compiler.
func (b *Binder) Compiler() *Compiler { return b.compiler }

// Registry returns the binder's registry.
func (b *Binder) Registry() *Registry { return b.registry }

// SetCustomFunc registers fn under name. A nil fn removes the name.
func (b *Binder) SetCustomFunc(name string, fn CustomFunc) {
	if fn == nil {
		delete(b.funcs, name)
		return
	}
	b.funcs[name] = fn
}

// Bind compiles the element's directive and creates its widget. When the
// directive controls another element the creation waits until that
// element's widget is registered.
func (b *Binder) Bind(el *Element) (*Binding, error) {
	prefix := b.compiler.opts.Directive
	d, ok := el.Directive(prefix)
	if !ok {
		return nil, directiveError(fmt.Errorf("no %s attribute", prefix), el.String(), prefix)
	}

	res, err := b.compiler.Compile(d)
	if err != nil {
		return nil, directiveError(err, el.String(), prefix)
	}
	for _, w := range res.Warnings {
		var de *DirectiveError
		if errors.As(w, &de) && de.Element == "" {
			de.Element = el.String()
		}
	}

	cfg := defaults(el)
	cfg.Merge(res.Config)

	bd := &Binding{
		binder: b,
		el:     el,
		result: res,
		config: cfg,
	}

	if res.Sync != "" {
		if _, ok := el.Lookup(res.Sync); !ok {
			res.Warnings = append(res.Warnings, directiveError(
				&DanglingReferenceError{Directive: CompanionSync, Target: res.Sync},
				el.String(), prefix+":"+CompanionSync))
			Logger().Warn("sync target not found, ignoring",
				zap.Stringer("element", el), zap.String("target", res.Sync))
		} else {
			bd.syncTarget = res.Sync
		}
	}

	if res.Control == "" {
		bd.create()
		return bd, bd.Err()
	}

	Logger().Debug("deferring widget creation",
		zap.Stringer("element", el), zap.String("controls", res.Control))
	cancel := b.registry.WhenCreated(res.Control, func(Widget) { bd.create() })
	bd.mu.Lock()
	if bd.destroyed || bd.widget != nil {
		bd.mu.Unlock()
		cancel()
	} else {
		bd.cancelWait = cancel
		bd.mu.Unlock()
	}
	return bd, bd.Err()
}

func defaults(el *Element) Config {
	var scrollbar any
	if el.Has(".swiper-scrollbar") {
		scrollbar = ".swiper-scrollbar"
	}
	return Config{
		"scrollbar":          Config{"el": scrollbar},
		"loopAddBlankSlides": true,
	}
}

// Binding owns the widget of one bound element.
type Binding struct {
	binder     *Binder
	el         *Element
	result     *Result
	config     Config
	syncTarget string

	mu          sync.Mutex
	widget      Widget
	err         error
	destroyed   bool
	cancelWait  func()
	unsubscribe func()
	unregister  func()
}

// Element returns the bound element.
func (b *Binding) Element() *Element { return b.el }

// Config returns the final configuration handed to the widget factory.
func (b *Binding) Config() Config { return b.config }

// Result returns the compiled directive.
func (b *Binding) Result() *Result { return b.result }

// Widget returns the created widget, nil while pending or after Destroy.
func (b *Binding) Widget() Widget {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.widget
}

// Err returns the error the widget factory failed with, if any.
func (b *Binding) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Pending reports whether the binding still waits for the widget it
// controls.
func (b *Binding) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.widget == nil && b.err == nil && !b.destroyed
}

func (b *Binding) create() {
	b.mu.Lock()
	if b.destroyed || b.widget != nil || b.err != nil {
		b.mu.Unlock()
		return
	}
	reg := b.binder.registry
	w, err := b.binder.factory.NewWidget(b.el, b.config, Hooks{IndexChanged: reg.Changed})
	if err != nil {
		b.err = directiveError(err, b.el.String(), b.binder.compiler.opts.Directive)
		b.mu.Unlock()
		Logger().Error("widget creation failed", zap.Error(b.err))
		return
	}
	b.widget = w
	b.mu.Unlock()

	// Registering may wake bindings that wait for this one, so it happens
	// outside the lock.
	unregister := reg.Register(w)
	b.runCustomFuncs(w)

	var unsubscribe func()
	if target := b.syncTarget; target != "" {
		unsubscribe = reg.Subscribe(w, func(src Widget) {
			if t, ok := reg.Lookup(target); ok && t != src {
				t.SlideTo(src.RealIndex())
			}
		})
	}

	b.mu.Lock()
	if b.destroyed {
		// torn down while the widget was being wired
		b.mu.Unlock()
		if unsubscribe != nil {
			unsubscribe()
		}
		unregister()
		return
	}
	b.unregister, b.unsubscribe = unregister, unsubscribe
	b.cancelWait = nil
	b.mu.Unlock()

	Logger().Debug("widget created", zap.Stringer("element", b.el), zap.String("id", w.ID()))
}

func (b *Binding) runCustomFuncs(w Widget) {
	for name, fn := range b.binder.funcs {
		if on, _ := b.config[name].(bool); !on {
			continue
		}
		if err := fn(w); err != nil {
			Logger().Warn("custom function failed",
				zap.String("func", name), zap.Stringer("element", b.el), zap.Error(err))
		}
	}
}

// Destroy tears the binding down: a pending creation is cancelled and can no
// longer fire, subscriptions are dropped and the widget is destroyed.
// Destroy is idempotent.
func (b *Binding) Destroy() {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return
	}
	b.destroyed = true
	cancel, unsub, unreg, w := b.cancelWait, b.unsubscribe, b.unregister, b.widget
	b.cancelWait, b.unsubscribe, b.unregister, b.widget = nil, nil, nil, nil
	b.mu.Unlock()

	for _, fn := range []func(){cancel, unsub, unreg} {
		if fn != nil {
			fn()
		}
	}
	if w != nil {
		w.Destroy()
	}
}
