package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goswipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	asrt := assert.New(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	asrt.Equal(Default(), cfg)
	asrt.Equal("x-swiper", cfg.Directive)
	asrt.Equal("127.0.0.1:3400", cfg.Server.Listen)
	asrt.Equal(300, cfg.Watch.DebounceMs)
	asrt.Equal(5000, cfg.Autoplay.DelayMs)
	asrt.Equal("info", cfg.Logging.Level)

	cfg, err = Load("")
	require.NoError(t, err)
	asrt.Equal(Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	asrt := assert.New(t)
	path := writeConfig(t, `
directive: data-carousel
breakpoints:
  tablet: 900
  md: 800
unit_modifiers: [centered-slides]
navigation:
  next_el: .next
autoplay:
  delay_ms: 2500
watch:
  dir: ./pages
  render: true
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	asrt.Equal("data-carousel", cfg.Directive)
	asrt.Equal(".next", cfg.Navigation.NextEl)
	asrt.Equal(".swiper-button-prev", cfg.Navigation.PrevEl)
	asrt.True(cfg.Watch.Render)
	asrt.Equal("./pages", cfg.Watch.Dir)

	opts := cfg.CompilerOptions()
	asrt.Equal("data-carousel", opts.Directive)
	asrt.Equal(900, opts.Breakpoints["tablet"])
	asrt.Equal(800, opts.Breakpoints["md"])
	asrt.Equal(640, opts.Breakpoints["sm"])
	asrt.True(opts.Units["centered-slides"])
	asrt.True(opts.Units["loop"])
	asrt.Equal(2500, opts.AutoplayDelay)
	asrt.Equal(".next", opts.NextEl)
}

func TestLoadEnvOverrides(t *testing.T) {
	asrt := assert.New(t)
	t.Setenv("GOSWIPE_LISTEN", "0.0.0.0:9000")
	t.Setenv("GOSWIPE_WATCH_DEBOUNCE_MS", "50")
	t.Setenv("GOSWIPE_WATCH_RENDER", "yes")
	t.Setenv("GOSWIPE_AUTOPLAY_DELAY_MS", "not-a-number")
	t.Setenv("GOSWIPE_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, "server:\n  listen: 127.0.0.1:1\n"))
	require.NoError(t, err)
	asrt.Equal("0.0.0.0:9000", cfg.Server.Listen)
	asrt.Equal(50, cfg.Watch.DebounceMs)
	asrt.True(cfg.Watch.Render)
	asrt.Equal(5000, cfg.Autoplay.DelayMs)
	asrt.Equal("warn", cfg.Logging.Level)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"directive with dot", "directive: x.swiper\n"},
		{"directive with colon", "directive: 'x:swiper'\n"},
		{"zero width breakpoint", "breakpoints:\n  tablet: 0\n"},
		{"breakpoint name with colon", "breakpoints:\n  'a:b': 10\n"},
		{"empty unit", "unit_modifiers: ['']\n"},
		{"negative delay", "autoplay:\n  delay_ms: -1\n"},
		{"negative debounce", "watch:\n  debounce_ms: -5\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"bad yaml", "directive: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestCompilerOptionsDoesNotShareTables(t *testing.T) {
	a := Default()
	a.Breakpoints = map[string]int{"tablet": 900}
	optsA := a.CompilerOptions()
	optsB := Default().CompilerOptions()

	assert.Contains(t, optsA.Breakpoints, "tablet")
	assert.NotContains(t, optsB.Breakpoints, "tablet")
}
