package goswipe

import (
	"strings"

	"go.uber.org/zap"
)

// Options tunes a Compiler. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// Directive is the attribute prefix bindings are declared with.
	Directive   string
	Units       UnitTable
	Breakpoints BreakpointTable

	// Navigation selectors used when the navigation companion omits them.
	NextEl string
	PrevEl string

	// AutoplayDelay in milliseconds used when the autoplay companion omits it.
	AutoplayDelay int
}

// DefaultOptions returns the stock directive name, tables and defaults.
func DefaultOptions() Options {
	return Options{
		Directive:     "x-swiper",
		Units:         DefaultUnits(),
		Breakpoints:   DefaultBreakpoints(),
		NextEl:        ".swiper-button-next",
		PrevEl:        ".swiper-button-prev",
		AutoplayDelay: 5000,
	}
}

// Directive is the raw material of one binding: the dot separated modifiers
// of the directive attribute, its value and its companion attributes keyed
// by the name after the colon.
type Directive struct {
	Modifiers  []string
	Expression string
	Companions map[string]string
}

// Result is a compiled directive.
type Result struct {
	Config Config

	// Control is the id of the element this widget controls, if any.
	Control string
	// Sync is the id of the element whose widget follows this one, if any.
	Sync string

	// Warnings holds problems that dropped part of the directive without
	// failing it.
	Warnings []error
}

// Compiler turns directives into widget configurations. It holds no state
// between calls and is safe for concurrent use.
type Compiler struct {
	opts Options
}

// NewCompiler returns a compiler for opts.
func NewCompiler(opts Options) *Compiler {
	if opts.Units == nil {
		opts.Units = DefaultUnits()
	}
	if opts.Breakpoints == nil {
		opts.Breakpoints = DefaultBreakpoints()
	}
	return &Compiler{opts: opts}
}

// Options returns the options the compiler was built with.
func (c *Compiler) Options() Options { return c.opts }

// Fold compiles a modifier stream. Modifiers of the form size:key are
// placed under breakpoints at the width the size resolves to. A later
// modifier overwrites an earlier one with the same key.
//
// An unknown breakpoint size fails the whole stream. A trailing key with no
// value is dropped and reported in warnings.
func (c *Compiler) Fold(modifiers []string) (cfg Config, warnings []error, err error) {
	cfg = Config{}
	for _, tok := range Tokenize(modifiers, c.opts.Units) {
		name, prop, scoped := strings.Cut(tok.Key, ":")

		// Scoped values are coerced against the bare property, so
		// md:duration.300ms reads like duration.300ms.
		bare := tok
		if scoped {
			bare.Key = prop
		}
		v := c.opts.Units.CoerceToken(bare)
		if v == Missing {
			warnings = append(warnings, &MalformedTokenError{Key: tok.Key, Pos: tok.Pos})
		}

		if !scoped {
			cfg.Set(ToConfigKey(tok.Key), v)
			continue
		}
		width, ok := c.opts.Breakpoints[name]
		if !ok {
			return nil, warnings, &BreakpointError{Name: name, Key: tok.Key}
		}
		cfg.SetAt(width, ToConfigKey(prop), v)
	}
	return cfg, warnings, nil
}

// Compile folds the directive's modifiers, merges the inline expression and
// then every companion in a fixed order: control, sync, navigation,
// autoplay and the breakpoint shorthands from the smallest width up.
// Companion values override same named keys from the modifiers.
//
// A companion whose value cannot be parsed is skipped and reported as a
// warning; the rest of the directive still compiles.
func (c *Compiler) Compile(d Directive) (*Result, error) {
	cfg, warnings, err := c.Fold(d.Modifiers)
	if err != nil {
		return nil, err
	}
	res := &Result{Config: cfg, Warnings: warnings}

	if expr := strings.TrimSpace(d.Expression); expr != "" {
		obj, err := ParseLoose(expr)
		if err != nil {
			res.warn(directiveError(err, "", c.opts.Directive))
		} else {
			res.Config.Merge(configFrom(obj))
		}
	}

	for _, name := range c.companionOrder() {
		raw, ok := d.Companions[name]
		if !ok {
			continue
		}
		frag, err := c.resolve(res, name, raw)
		if err != nil {
			res.warn(directiveError(err, "", c.opts.Directive+":"+name))
			continue
		}
		res.Config.Merge(frag)
	}

	for name := range d.Companions {
		if !c.isCompanion(name) {
			Logger().Debug("ignoring unknown companion",
				zap.String("directive", c.opts.Directive),
				zap.String("companion", name))
		}
	}

	for _, w := range res.Warnings {
		Logger().Warn("directive partially compiled", zap.Error(w))
	}
	return res, nil
}

func (c *Compiler) resolve(res *Result, name, raw string) (Config, error) {
	switch name {
	case CompanionControl:
		target := strings.TrimSpace(raw)
		if target == "" {
			return nil, &ParseError{Input: raw, Reason: "empty control target"}
		}
		res.Control = target
		return ResolveControl(target), nil
	case CompanionSync:
		target := strings.TrimSpace(raw)
		if target == "" {
			return nil, &ParseError{Input: raw, Reason: "empty sync target"}
		}
		res.Sync = target
		return nil, nil
	case CompanionNavigation:
		return c.ResolveNavigation(raw)
	case CompanionAutoplay:
		return c.ResolveAutoplay(raw)
	case "sm", "md", "lg", "xl", "2xl":
		return c.ResolveBreakpoint(name, raw)
	default:
		// sizes added through configuration
		return c.ResolveBreakpoint(name, raw)
	}
}

func (c *Compiler) companionOrder() []string {
	order := []string{CompanionControl, CompanionSync, CompanionNavigation, CompanionAutoplay}
	return append(order, c.opts.Breakpoints.Names()...)
}

func (c *Compiler) isCompanion(name string) bool {
	switch name {
	case CompanionControl, CompanionSync, CompanionNavigation, CompanionAutoplay:
		return true
	}
	_, ok := c.opts.Breakpoints[name]
	return ok
}

func (r *Result) warn(err error) {
	r.Warnings = append(r.Warnings, err)
}
