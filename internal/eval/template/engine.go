package template

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aymerick/raymond"
)

// DefaultResultTemplate renders a row result the way the batch driver prints
// it when no template is configured.
const DefaultResultTemplate = `rule engine result: [{{join results ", "}}]`

// raymond keeps helpers in a process-wide registry that panics on duplicate
// names.
var registerOnce sync.Once

// Engine renders Handlebars result templates and caches them by source.
type Engine struct {
	cache map[string]*raymond.Template
	mu    sync.RWMutex
}

// NewEngine creates an engine with an empty cache.
func NewEngine() *Engine {
	registerOnce.Do(registerHelpers)

	return &Engine{
		cache: make(map[string]*raymond.Template),
	}
}

// Render executes src against data. Each distinct source is parsed once.
func (e *Engine) Render(src string, data interface{}) (string, error) {
	tmpl, err := e.compiled(src)
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}

	out, err := tmpl.Exec(data)
	if err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return out, nil
}

func (e *Engine) lookup(src string) (*raymond.Template, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	tmpl, ok := e.cache[src]
	return tmpl, ok
}

// compiled returns the cached template for src, parsing it on first use.
func (e *Engine) compiled(src string) (*raymond.Template, error) {
	if tmpl, ok := e.lookup(src); ok {
		return tmpl, nil
	}

	tmpl, err := raymond.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// A concurrent caller may have stored the same source first.
	if cached, ok := e.cache[src]; ok {
		return cached, nil
	}
	e.cache[src] = tmpl
	return tmpl, nil
}

// ValidateTemplate reports whether src parses, without caching it.
func (e *Engine) ValidateTemplate(src string) error {
	_, err := raymond.Parse(src)
	return err
}

// registerHelpers registers the result helpers: join renders a list with a
// separator, passfail renders one rule result.
func registerHelpers() {
	raymond.RegisterHelper("join", func(arr []interface{}, sep string) string {
		strs := make([]string, len(arr))
		for i, v := range arr {
			strs[i] = fmt.Sprint(v)
		}
		return strings.Join(strs, sep)
	})

	raymond.RegisterHelper("passfail", func(pass bool) string {
		if pass {
			return "PASS"
		}
		return "FAIL"
	})
}
