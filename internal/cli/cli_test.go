package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRootCommands(t *testing.T) {
	var names []string
	for _, c := range newRootCmd().Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"compile", "render", "serve", "watch", "version"}, names)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "-c", "/nonexistent/dir/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestCompileCommand(t *testing.T) {
	asrt := assert.New(t)
	dir := t.TempDir()
	page := writeFile(t, dir, "page.html", `<div id="c" x-swiper.loop.md:slides-per-view.2></div>`)

	out, err := run(t, "compile", "-c", filepath.Join(dir, "none.yaml"), page)
	require.NoError(t, err)

	var reports []fileReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	asrt.Equal(page, reports[0].File)
	require.Len(t, reports[0].Bindings, 1)
	asrt.Equal(true, reports[0].Bindings[0].Config["loop"])
	asrt.Empty(reports[0].Errors)
}

func TestCompileCommandStrict(t *testing.T) {
	dir := t.TempDir()
	page := writeFile(t, dir, "page.html", `<div x-swiper.loop.speed></div>`)
	cfg := filepath.Join(dir, "none.yaml")

	_, err := run(t, "compile", "-c", cfg, page)
	require.NoError(t, err)

	out, err := run(t, "compile", "-c", cfg, "--strict", "--pretty", page)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 problem(s)")
	assert.Contains(t, out, "\n  ")
}

func TestCompileCommandUsesConfig(t *testing.T) {
	dir := t.TempDir()
	page := writeFile(t, dir, "page.html", `<div data-carousel.tablet:loop.1></div>`)
	cfg := writeFile(t, dir, "goswipe.yaml", "directive: data-carousel\nbreakpoints:\n  tablet: 900\n")

	out, err := run(t, "compile", "-c", cfg, page)
	require.NoError(t, err)
	assert.Contains(t, out, `"900"`)
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	page := writeFile(t, dir, "page.html", `<div id="c" x-swiper.loop></div>`)
	target := filepath.Join(dir, "out.html")

	out, err := run(t, "render", "-c", filepath.Join(dir, "none.yaml"), "-o", target, page)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `data-swiper-options=`))
}

func TestBadConfig(t *testing.T) {
	dir := t.TempDir()
	page := writeFile(t, dir, "page.html", `<div x-swiper></div>`)
	cfg := writeFile(t, dir, "goswipe.yaml", "logging:\n  level: loud\n")

	_, err := run(t, "compile", "-c", cfg, page)
	assert.Error(t, err)
}
