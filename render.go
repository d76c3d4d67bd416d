package goswipe

import (
	"encoding/json"
	"io"

	"golang.org/x/net/html"
)

// OptionsAttr is the attribute Render stores each binding's configuration in.
const OptionsAttr = "data-swiper-options"

// Render writes the page's document with every bound element marked with the
// swiper class and its final configuration embedded as JSON in OptionsAttr.
// Bindings that are still pending are rendered too, so the client can
// finish them. The document is modified in place.
func (p *Page) Render(w io.Writer) error {
	for _, bd := range p.Bindings {
		js, err := json.Marshal(bd.config)
		if err != nil {
			return directiveError(err, bd.el.String(), OptionsAttr)
		}
		bd.el.sel.AddClass("swiper")
		bd.el.sel.SetAttr(OptionsAttr, string(js))
	}
	for _, n := range p.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}
