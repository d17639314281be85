package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDefaultResultTemplate(t *testing.T) {
	e := NewEngine()

	out, err := e.Render(DefaultResultTemplate, map[string]interface{}{
		"results": []interface{}{true, false, true},
	})
	require.NoError(t, err)
	assert.Equal(t, "rule engine result: [true, false, true]", out)
}

func TestRenderHelpers(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name string
		tmpl string
		data map[string]interface{}
		want string
	}{
		{"join", `{{join results "|"}}`, map[string]interface{}{"results": []interface{}{1, 2}}, "1|2"},
		{"passfail", `{{passfail ok}} {{passfail bad}}`, map[string]interface{}{"ok": true, "bad": false}, "PASS FAIL"},
		{"fields", `{{line}}: {{matched}}/{{total}}`, map[string]interface{}{"line": 3, "matched": 1, "total": 2}, "3: 1/2"},
		{"each", `{{#each results}}{{passfail this}};{{/each}}`, map[string]interface{}{"results": []interface{}{true, false}}, "PASS;FAIL;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Render(tt.tmpl, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestNewEngineTwice(t *testing.T) {
	assert.NotPanics(t, func() {
		NewEngine()
		NewEngine()
	})
}

func TestRenderParseError(t *testing.T) {
	e := NewEngine()

	_, err := e.Render("{{#if}}", nil)
	require.Error(t, err)
	assert.Error(t, e.ValidateTemplate("{{#each results}}"))
	assert.NoError(t, e.ValidateTemplate(DefaultResultTemplate))
}

func TestRenderCachesTemplates(t *testing.T) {
	e := NewEngine()

	_, err := e.Render("{{line}}", map[string]interface{}{"line": 1})
	require.NoError(t, err)
	_, err = e.Render("{{line}}", map[string]interface{}{"line": 2})
	require.NoError(t, err)

	e.mu.RLock()
	defer e.mu.RUnlock()
	assert.Len(t, e.cache, 1)
}
