package goswipe

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry tracks live widgets by element id. Bindings use it to wait for
// the widget they control and to follow index changes of a single widget.
// Every callback runs outside the registry lock, so callbacks may call back
// into the registry.
type Registry struct {
	mu      sync.Mutex
	seq     uint64
	widgets map[string]Widget
	waiters map[string]map[uint64]func(Widget)
	subs    map[Widget]map[uint64]func(Widget)
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		widgets: map[string]Widget{},
		waiters: map[string]map[uint64]func(Widget){},
		subs:    map[Widget]map[uint64]func(Widget){},
	}
}

// Register records w under its id and wakes everything waiting for that
// id. Widgets without an id are not recorded but can still be subscribed
// to. The returned func removes the widget and its subscribers.
func (r *Registry) Register(w Widget) (unregister func()) {
	id := w.ID()

	r.mu.Lock()
	var waiting []func(Widget)
	if id != "" {
		if prev, ok := r.widgets[id]; ok && prev != w {
			Logger().Warn("widget id registered twice", zap.String("id", id))
		}
		r.widgets[id] = w
		waiting = ordered(r.waiters[id])
		delete(r.waiters, id)
	}
	r.mu.Unlock()

	for _, fn := range waiting {
		fn(w)
	}

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if id != "" && r.widgets[id] == w {
			delete(r.widgets, id)
		}
		delete(r.subs, w)
	}
}

// Lookup returns the widget registered under id.
func (r *Registry) Lookup(id string) (Widget, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.widgets[id]
	return w, ok
}

// WhenCreated calls fn once with the widget registered under id. If the
// widget is already registered fn runs before WhenCreated returns. The
// returned func cancels a wait that has not fired yet.
func (r *Registry) WhenCreated(id string, fn func(Widget)) (cancel func()) {
	r.mu.Lock()
	if w, ok := r.widgets[id]; ok {
		r.mu.Unlock()
		fn(w)
		return func() {}
	}
	r.seq++
	key := r.seq
	if r.waiters[id] == nil {
		r.waiters[id] = map[uint64]func(Widget){}
	}
	r.waiters[id][key] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if ws := r.waiters[id]; ws != nil {
			delete(ws, key)
			if len(ws) == 0 {
				delete(r.waiters, id)
			}
		}
	}
}

// Subscribe calls fn every time src reports an index change.
func (r *Registry) Subscribe(src Widget, fn func(Widget)) (cancel func()) {
	r.mu.Lock()
	r.seq++
	key := r.seq
	if r.subs[src] == nil {
		r.subs[src] = map[uint64]func(Widget){}
	}
	r.subs[src][key] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if ss := r.subs[src]; ss != nil {
			delete(ss, key)
		}
	}
}

// Changed notifies the subscribers of src, in subscription order.
func (r *Registry) Changed(src Widget) {
	r.mu.Lock()
	fns := ordered(r.subs[src])
	r.mu.Unlock()

	for _, fn := range fns {
		fn(src)
	}
}

// Pending returns the ids that are waited on but were never registered.
func (r *Registry) Pending() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.waiters))
	for id := range r.waiters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func ordered(m map[uint64]func(Widget)) []func(Widget) {
	keys := make([]uint64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	fns := make([]func(Widget), len(keys))
	for i, k := range keys {
		fns[i] = m[k]
	}
	return fns
}
