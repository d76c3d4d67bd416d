// Package goswipe compiles declarative carousel directives written as HTML
// attributes into Swiper configurations, and binds each annotated element to
// a widget.
//
// A directive is an attribute named after the directive prefix (x-swiper by
// default) followed by dot separated modifiers:
//
//	<div x-swiper.loop.slides-per-view.3.md:slides-per-view.2></div>
//
// compiles to
//
//	{"loop": true, "slidesPerView": 3, "breakpoints": {"768": {"slidesPerView": 2}}}
//
// The following rules apply to modifiers:
//
// - Unit modifiers (autoplay, loop, cross-fade, no-swiping,
// slide-to-clicked-slide, auto-height, equal-height) are flags. They occupy a
// single modifier and always compile to true.
//
// - Any other modifier is a key and takes the next modifier as its value. A
// key in the last position has no value and is dropped with a warning.
//
// - Keys are camel cased: slides-per-view becomes slidesPerView.
//
// - Values are numbers when they parse as numbers. An underscore is read as a
// decimal point (1_5 is 1.5), and the duration key accepts an ms suffix
// (duration.500ms). Anything else stays a string.
//
// - A key prefixed with a breakpoint name and a colon (md:slides-per-view)
// lands under breakpoints at that breakpoint's pixel width. Unknown
// breakpoint names fail the directive.
//
// - When the same key appears twice, the later one wins.
//
// Companion attributes, written as the prefix, a colon and a name, refine the
// compiled configuration. Their values are loose object literals such as
// "nextEl: .next, prevEl: .prev", with keys and simple values left unquoted.
// They are applied after the modifiers and override them:
//
// - x-swiper:control="id" makes the widget control the widget on the element
// with that id. The widget is only created once the controlled one exists.
//
// - x-swiper:sync="id" moves the widget on the element with that id to this
// widget's index every time this widget's index changes.
//
// - x-swiper:navigation sets nextEl and prevEl, defaulting to
// .swiper-button-next and .swiper-button-prev.
//
// - x-swiper:autoplay sets delay, disableOnInteraction and pauseOnMouseEnter,
// defaulting to 5000, false and false.
//
// - x-swiper:sm, :md, :lg, :xl and :2xl hold overrides for one breakpoint.
//
// A companion whose value does not parse is skipped with a warning. One
// broken directive never keeps the rest of the page from binding.
//
// Widgets are created through a WidgetFactory. StaticFactory is provided for
// compiling markup ahead of time; Page.Render then writes the document back
// with each configuration embedded as JSON.
package goswipe
