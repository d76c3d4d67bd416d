package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astuart.co/goswipe"
	"astuart.co/goswipe/internal/config"
)

const markup = `<div id="main" x-swiper.loop.slides-per-view.2 x-swiper:control="thumbs"></div>
<div id="thumbs" x-swiper.slides-per-view.5></div>
<div x-swiper.xxl:loop.1></div>`

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, New(config.Default(), nil).Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestCompile(t *testing.T) {
	asrt := assert.New(t)
	rec := do(t, New(config.Default(), nil).Handler(), http.MethodPost, "/v1/compile", markup)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rep goswipe.PageReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	require.Len(t, rep.Bindings, 2)
	asrt.Equal("main", rep.Bindings[0].ID)
	asrt.Equal("thumbs", rep.Bindings[0].Control)
	asrt.Equal(2.0, rep.Bindings[0].Config["slidesPerView"])
	asrt.Len(rep.Errors, 1)
	asrt.Contains(rep.Errors[0], "xxl")
}

func TestCompileBodyLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxBodyBytes = 16
	rec := do(t, New(cfg, nil).Handler(), http.MethodPost, "/v1/compile", markup)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRender(t *testing.T) {
	rec := do(t, New(config.Default(), nil).Handler(), http.MethodPost, "/v1/render", markup)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), goswipe.OptionsAttr+`="{`)
	assert.Contains(t, rec.Body.String(), `class="swiper"`)
}

func TestModifiers(t *testing.T) {
	asrt := assert.New(t)
	h := New(config.Default(), nil).Handler()

	rec := do(t, h, http.MethodPost, "/v1/modifiers", `{
		"modifiers": ["autoplay", "md:slides-per-view", "3", "speed"],
		"companions": {"navigation": "", "control": "thumbs"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Config   map[string]any `json:"config"`
		Modules  []goswipe.Module
		Control  string   `json:"control"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	asrt.Equal(true, got.Config["autoplay"])
	asrt.Equal(map[string]any{"768": map[string]any{"slidesPerView": 3.0}}, got.Config["breakpoints"])
	asrt.Equal("thumbs", got.Control)
	asrt.Len(got.Warnings, 1)
	asrt.Len(got.Modules, 3)
}

func TestModifiersErrors(t *testing.T) {
	h := New(config.Default(), nil).Handler()

	rec := do(t, h, http.MethodPost, "/v1/modifiers", `{"modifiers": ["xxl:loop", "1"]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/modifiers", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomBreakpoints(t *testing.T) {
	cfg := config.Default()
	cfg.Breakpoints = map[string]int{"tablet": 900}
	h := New(cfg, nil).Handler()

	rec := do(t, h, http.MethodPost, "/v1/modifiers", `{"modifiers": ["tablet:loop", "1"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"900"`)
}
