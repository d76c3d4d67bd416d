package goswipe

// Config is a compiled widget configuration. Values are float64, bool,
// string, nil, nested Config, or, under the breakpoints key, a
// map[int]Config keyed by pixel width.
type Config map[string]any

const breakpointsKey = "breakpoints"

// Breakpoints returns the per-width overrides, creating the map when create
// is set.
func (c Config) Breakpoints(create bool) map[int]Config {
	if bp, ok := c[breakpointsKey].(map[int]Config); ok {
		return bp
	}
	if !create {
		return nil
	}
	bp := map[int]Config{}
	c[breakpointsKey] = bp
	return bp
}

// Set stores v under key. Missing values are ignored.
func (c Config) Set(key string, v any) {
	if v == Missing {
		return
	}
	c[key] = v
}

// SetAt stores v under key for the breakpoint width.
func (c Config) SetAt(width int, key string, v any) {
	if v == Missing {
		return
	}
	bp := c.Breakpoints(true)
	if bp[width] == nil {
		bp[width] = Config{}
	}
	bp[width][key] = v
}

// Merge copies every key of frag over c. Keys in frag win. The copy is
// shallow except for breakpoints, which merge width by width.
func (c Config) Merge(frag Config) {
	for k, v := range frag {
		if k == breakpointsKey {
			if bp, ok := v.(map[int]Config); ok {
				for width, over := range bp {
					for kk, vv := range over {
						c.SetAt(width, kk, vv)
					}
				}
				continue
			}
		}
		c[k] = v
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Config:
		return t.Clone()
	case map[string]any:
		return Config(t).Clone()
	case map[int]Config:
		bp := make(map[int]Config, len(t))
		for w, c := range t {
			bp[w] = c.Clone()
		}
		return bp
	default:
		return v
	}
}

func configFrom(m map[string]any) Config {
	c := make(Config, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
