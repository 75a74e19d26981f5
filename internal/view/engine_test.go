package view

import (
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestProcessConditionalTruthy(t *testing.T) {
	tpl := "{{#if name}}Hi {{name}}{{/if}}"

	assert.Equal(t, "Hi X", Process(tpl, map[string]any{"name": "X"}))
	assert.Equal(t, "", Process(tpl, map[string]any{"name": 0}), "numeric zero is falsy")
	assert.Equal(t, "", Process(tpl, map[string]any{"name": ""}))
	assert.Equal(t, "", Process(tpl, map[string]any{"name": false}))
	assert.Equal(t, "", Process(tpl, map[string]any{}))
	assert.Equal(t, "Hi ", Process(tpl, map[string]any{"name": nil}), "present nil is not one of the falsy sentinels")
}

func TestProcessLoop(t *testing.T) {
	tpl := "{{#each items}}{{.v}},{{/each}}"
	data := map[string]any{"items": []map[string]any{{"v": 1}, {"v": 2}}}

	assert.Equal(t, "1,2,", Process(tpl, data))
}

func TestProcessLoopMergedContext(t *testing.T) {
	tpl := "{{#each items}}{{ad}}-{{yil}};{{/each}}"
	data := map[string]any{
		"yil": 2025,
		"items": []map[string]any{
			{"ad": "Bodrum"},
			{"ad": "Çeşme", "yil": 2024},
		},
	}

	assert.Equal(t, "Bodrum-2025;Çeşme-2024;", Process(tpl, data), "item keys shadow the page context")
}

func TestProcessNestedPath(t *testing.T) {
	data := map[string]any{"kpi": map[string]any{"toplam": map[string]any{"kar": 1500}}}

	assert.Equal(t, "1500", Process("{{kpi.toplam.kar}}", data))
	assert.Equal(t, "", Process("{{kpi.yok.kar}}", data), "missing intermediate yields empty string")
}

func TestProcessSimpleKeyMissing(t *testing.T) {
	assert.Equal(t, "", Process("{{bilinmeyen}}", map[string]any{}))
}

func TestProcessOrderLoopsBeforeConditionals(t *testing.T) {
	// Loops expand first, so a conditional wrapping loop output still sees
	// the loop construct resolved.
	tpl := "{{#if goster}}{{#each items}}{{.v}}{{/each}}{{/if}}"
	data := map[string]any{"goster": true, "items": []map[string]any{{"v": "a"}}}

	assert.Equal(t, "a", Process(tpl, data))
}

func TestProcessIdempotentShape(t *testing.T) {
	tpl := "{{#each items}}{{.v}},{{/each}}|{{toplam}}"
	data := map[string]any{"items": []map[string]any{{"v": 1}}, "toplam": 7}

	first := Process(tpl, data)
	second := Process(tpl, data)
	assert.Equal(t, first, second)
}

func TestRenderStringFallsBackOnMissingTemplate(t *testing.T) {
	engine := NewEngine(fstest.MapFS{}, nil)

	assert.Equal(t, FallbackHTML, engine.RenderString("yok", map[string]any{}))
}

func TestRenderWritesHTML(t *testing.T) {
	fsys := fstest.MapFS{
		"dashboard.html": {Data: []byte("<h1>{{baslik}}</h1>")},
	}
	engine := NewEngine(fsys, nil)
	rec := httptest.NewRecorder()

	engine.Render(rec, "dashboard", map[string]any{"baslik": "Genel Bakış"})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<h1>Genel Bakış</h1>", rec.Body.String())
}
