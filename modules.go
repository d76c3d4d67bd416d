package goswipe

import "fmt"

// Module is an optional Swiper module with the script and stylesheet that
// provide it.
type Module struct {
	Name       string `json:"name"`
	Script     string `json:"script"`
	Stylesheet string `json:"stylesheet"`
}

var availableModules = []struct {
	Module
	needed func(Config) bool
}{
	{Module{"Autoplay", "swiper/modules", "swiper/css/autoplay"}, func(c Config) bool { return enabled(c["autoplay"]) }},
	{Module{"Pagination", "swiper/modules", "swiper/css/pagination"}, func(c Config) bool { return enabled(c["pagination"]) }},
	{Module{"Navigation", "swiper/modules", "swiper/css/navigation"}, func(c Config) bool { return enabled(c["navigation"]) }},
	{Module{"Controller", "swiper/modules", "swiper/css/controller"}, func(c Config) bool { return enabled(c["controller"]) }},
	{Module{"EffectFade", "swiper/modules", "swiper/css/effect-fade"}, func(c Config) bool {
		return c["effect"] == "fade" || enabled(c["crossFade"])
	}},
}

// RequiredModules lists the Swiper modules a configuration relies on, in a
// stable order.
func RequiredModules(cfg Config) []Module {
	var mods []Module
	for _, m := range availableModules {
		if m.needed(cfg) {
			mods = append(mods, m.Module)
		}
	}
	return mods
}

func enabled(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	default:
		return v != Missing
	}
}

// EqualHeight sets every slide of w to the height of the tallest one. It
// needs a widget implementing SlideSizer.
func EqualHeight(w Widget) error {
	s, ok := w.(SlideSizer)
	if !ok {
		return fmt.Errorf("goswipe: widget %q cannot size its slides", w.ID())
	}
	tallest := 0
	for _, h := range s.SlideHeights() {
		if h > tallest {
			tallest = h
		}
	}
	s.SetSlideHeight(tallest)
	return nil
}
