// Package view implements the minimal placeholder templating used by the
// report pages: {{#each}} loops, {{#if}} conditionals, dotted paths and
// simple keys inlined into static HTML.
package view

import (
	"io/fs"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// FallbackHTML is served when a template resource cannot be read.
const FallbackHTML = "<html><body><h1>Template yüklenemedi</h1></body></html>"

var (
	eachRe = regexp.MustCompile(`(?s)\{\{#each (\w+)\}\}(.*?)\{\{/each\}\}`)
	ifRe   = regexp.MustCompile(`(?s)\{\{#if (\w+)\}\}(.*?)\{\{/if\}\}`)
	itemRe = regexp.MustCompile(`\{\{\.(\w+)\}\}`)
	pathRe = regexp.MustCompile(`\{\{(\w+(?:\.\w+)+)\}\}`)
	keyRe  = regexp.MustCompile(`\{\{(\w+)\}\}`)
)

// Engine renders named templates from a filesystem.
type Engine struct {
	fsys   fs.FS
	logger *slog.Logger
}

// NewEngine constructs an Engine over the given template filesystem.
func NewEngine(fsys fs.FS, logger *slog.Logger) *Engine {
	return &Engine{fsys: fsys, logger: logger}
}

// Render writes the named template merged with data. A missing or unreadable
// template degrades to the static fallback fragment with status 200; read
// failures never reach the client as errors.
func (e *Engine) Render(w http.ResponseWriter, name string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(e.RenderString(name, data)))
}

// RenderString returns the rendered template, or the fallback fragment when
// the template cannot be read.
func (e *Engine) RenderString(name string, data map[string]any) string {
	raw, err := fs.ReadFile(e.fsys, name+".html")
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("template unavailable", slog.String("template", name), slog.Any("error", err))
		}
		return FallbackHTML
	}
	return Process(string(raw), data)
}

// Process applies the substitution passes in their required order: loops
// first, then conditionals, then dotted paths, then simple keys. The order
// is load-bearing; placeholders inside an expanded construct are handled by
// the later passes.
func Process(content string, data map[string]any) string {
	out := eachRe.ReplaceAllStringFunc(content, func(m string) string {
		groups := eachRe.FindStringSubmatch(m)
		return expandLoop(groups[1], groups[2], data)
	})

	out = ifRe.ReplaceAllStringFunc(out, func(m string) string {
		groups := ifRe.FindStringSubmatch(m)
		if truthy(data, groups[1]) {
			return groups[2]
		}
		return ""
	})

	out = pathRe.ReplaceAllStringFunc(out, func(m string) string {
		path := pathRe.FindStringSubmatch(m)[1]
		return formatValue(lookupPath(data, path))
	})

	return keyRe.ReplaceAllStringFunc(out, func(m string) string {
		key := keyRe.FindStringSubmatch(m)[1]
		v, ok := data[key]
		if !ok {
			return ""
		}
		return formatValue(v)
	})
}

func expandLoop(name, body string, data map[string]any) string {
	items, ok := asSlice(data[name])
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, raw := range items {
		item, _ := raw.(map[string]any)

		// Item keys shadow the page context inside the loop body.
		merged := make(map[string]any, len(data)+len(item))
		for k, v := range data {
			merged[k] = v
		}
		for k, v := range item {
			merged[k] = v
		}

		s := itemRe.ReplaceAllStringFunc(body, func(m string) string {
			prop := itemRe.FindStringSubmatch(m)[1]
			v, ok := item[prop]
			if !ok {
				return ""
			}
			return formatValue(v)
		})
		s = pathRe.ReplaceAllStringFunc(s, func(m string) string {
			path := pathRe.FindStringSubmatch(m)[1]
			return formatValue(lookupPath(merged, path))
		})
		s = keyRe.ReplaceAllStringFunc(s, func(m string) string {
			key := keyRe.FindStringSubmatch(m)[1]
			v, ok := merged[key]
			if !ok {
				return ""
			}
			return formatValue(v)
		})
		b.WriteString(s)
	}
	return b.String()
}

// truthy reproduces the engine's exact falsy set: absent key, empty string,
// numeric zero, or boolean false. Anything else present, nil included,
// renders the block.
func truthy(data map[string]any, name string) bool {
	v, ok := data[name]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case bool:
		return t
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

func lookupPath(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	var cur any = data
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[p]
		if !ok {
			return nil
		}
	}
	return cur
}

func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []map[string]any:
		items := make([]any, len(t))
		for i := range t {
			items[i] = t[i]
		}
		return items, true
	default:
		return nil, false
	}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
