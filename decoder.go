package goswipe

import (
	"bytes"
	"errors"
	"io"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Decoder reads an HTML document and binds every directive in it. Like
// goquery it reads the whole document up front; there is no streaming.
type Decoder struct {
	err error
	doc *goquery.Document
}

// NewDecoder returns a new decoder given an io.Reader
func NewDecoder(r io.Reader) *Decoder {
	d := &Decoder{}
	d.doc, d.err = goquery.NewDocumentFromReader(r)
	return d
}

// Document returns the parsed document, nil if parsing failed.
func (d *Decoder) Document() *goquery.Document { return d.doc }

// Bind binds every element carrying the binder's directive, in document
// order. A directive that fails to compile or whose widget cannot be
// created is recorded in Page.Errors and does not stop the others. Only a
// document parse failure is returned as an error.
func (d *Decoder) Bind(b *Binder) (*Page, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.doc == nil {
		return nil, errors.New("goswipe: resulting document was nil")
	}

	prefix := b.compiler.opts.Directive
	page := &Page{doc: d.doc}
	root := d.doc.Selection

	var idx int
	d.doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		el := &Element{sel: s, root: root, idx: idx}
		if !el.hasDirective(prefix) {
			return
		}
		idx++

		bd, err := b.Bind(el)
		if err != nil {
			page.Errors = append(page.Errors, err)
			Logger().Warn("directive not bound", zap.Error(err))
		}
		if bd == nil {
			return
		}
		page.Bindings = append(page.Bindings, bd)
		page.Warnings = append(page.Warnings, bd.result.Warnings...)
	})

	for _, bd := range page.Bindings {
		if !bd.Pending() {
			continue
		}
		err := directiveError(
			&DanglingReferenceError{Directive: CompanionControl, Target: bd.result.Control},
			bd.el.String(), prefix+":"+CompanionControl)
		page.Warnings = append(page.Warnings, err)
		Logger().Warn("binding still pending", zap.Error(err))
	}
	return page, nil
}

// BindHTML parses bs and binds it with b.
func BindHTML(bs []byte, b *Binder) (*Page, error) {
	return NewDecoder(bytes.NewReader(bs)).Bind(b)
}

// Compile parses r and binds it with static widgets. It is the one call
// needed to turn markup into configurations ahead of time.
func Compile(r io.Reader, opts Options) (*Page, error) {
	b := NewBinder(NewCompiler(opts), NewRegistry(), &StaticFactory{})
	return NewDecoder(r).Bind(b)
}

// Page is a bound document.
type Page struct {
	doc      *goquery.Document
	Bindings []*Binding
	// Errors are directives that could not be bound at all.
	Errors []error
	// Warnings are problems that left a binding incomplete or dropped part
	// of its directive.
	Warnings []error
}

// Document returns the page's document.
func (p *Page) Document() *goquery.Document { return p.doc }

// Destroy destroys every binding of the page.
func (p *Page) Destroy() {
	for _, bd := range p.Bindings {
		bd.Destroy()
	}
}

// Report is the serializable summary of one binding.
type Report struct {
	Element  string   `json:"element"`
	ID       string   `json:"id,omitempty"`
	Config   Config   `json:"config"`
	Modules  []Module `json:"modules,omitempty"`
	Control  string   `json:"control,omitempty"`
	Sync     string   `json:"sync,omitempty"`
	Pending  bool     `json:"pending,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// PageReport is the serializable summary of a page.
type PageReport struct {
	Bindings []Report `json:"bindings"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Report summarizes the page.
func (p *Page) Report() PageReport {
	out := PageReport{Bindings: make([]Report, 0, len(p.Bindings))}
	for _, bd := range p.Bindings {
		r := Report{
			Element: bd.el.String(),
			ID:      bd.el.ID(),
			Config:  bd.config,
			Modules: RequiredModules(bd.config),
			Control: bd.result.Control,
			Sync:    bd.result.Sync,
			Pending: bd.Pending(),
		}
		for _, w := range bd.result.Warnings {
			r.Warnings = append(r.Warnings, w.Error())
		}
		out.Bindings = append(out.Bindings, r)
	}
	for _, err := range p.Errors {
		out.Errors = append(out.Errors, err.Error())
	}
	for _, w := range p.Warnings {
		out.Warnings = append(out.Warnings, w.Error())
	}
	return out
}
