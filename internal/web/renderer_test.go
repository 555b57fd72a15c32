package web

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/snapgallery/internal/gallery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_Embedded(t *testing.T) {
	r, err := NewRenderer("", zerolog.Nop())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, paginationTemplateName, gallery.Page{IsLastPage: false}))
	assert.Contains(t, buf.String(), `id="load-more-button"`)

	assert.Contains(t, string(r.Script()), "load-more-button")
}

func TestNewRenderer_CustomOverridesByName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html.tmpl"), []byte(`<p id="custom">{{.Title}}</p>`), 0o644))

	env := newTestEnv(t, nil, dir)
	w := env.get(t, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Night Snapshots", parse(t, w).Find("#custom").Text())

	// Templates not present in the directory stay embedded.
	w = env.get(t, "/snapshots")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, parse(t, w).Find("#snapshots-container").Length())
}

func TestNewRenderer_EmptyDirKeepsEmbedded(t *testing.T) {
	r, err := NewRenderer(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, r.template.Lookup(indexTemplateName))
}

func TestNewRenderer_BrokenCustomTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html.tmpl"), []byte(`{{if}}`), 0o644))

	_, err := NewRenderer(dir, zerolog.Nop())
	assert.Error(t, err)
}

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer("", zerolog.Nop())
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, "nope.html.tmpl", nil))
	assert.Zero(t, buf.Len())
}

func TestTemplateFunctions(t *testing.T) {
	funcs := GetTemplateFunctions()
	assert.Equal(t, 3, funcs["inc"].(func(int) int)(2))
	assert.Equal(t, "1 minute", funcs["minutesLabel"].(func(int) string)(1))
	assert.Equal(t, "15 minutes", funcs["minutesLabel"].(func(int) string)(15))
	assert.Equal(t, "1, 2", funcs["joinInts"].(func([]int) string)([]int{1, 2}))
}
