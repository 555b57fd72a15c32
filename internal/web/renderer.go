package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

//go:embed templates/*.html.tmpl
var embeddedTemplates embed.FS

//go:embed assets/scripts.js
var embeddedScript []byte

const (
	templateGlob           = "*.html.tmpl"
	indexTemplateName      = "index.html.tmpl"
	snapshotsTemplateName  = "snapshots.html.tmpl"
	paginationTemplateName = "pagination"
)

// Renderer executes the gallery's HTML templates.
type Renderer struct {
	template *template.Template
	logger   zerolog.Logger
}

// NewRenderer parses the embedded templates. Files matching *.html.tmpl in
// templateDir, when set, replace the embedded templates of the same name.
func NewRenderer(templateDir string, logger zerolog.Logger) (*Renderer, error) {
	r := &Renderer{
		logger: logger.With().Str("component", "Renderer").Logger(),
	}

	tmpl := template.New("gallery").Funcs(GetTemplateFunctions())
	if err := r.loadEmbeddedTemplates(tmpl); err != nil {
		return nil, err
	}
	if templateDir != "" {
		if err := r.loadCustomTemplates(tmpl, templateDir); err != nil {
			return nil, err
		}
	}

	for _, name := range []string{indexTemplateName, snapshotsTemplateName, paginationTemplateName} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("template %q is not defined", name)
		}
	}

	r.template = tmpl
	return r, nil
}

func (r *Renderer) loadEmbeddedTemplates(tmpl *template.Template) error {
	names, err := fs.Glob(embeddedTemplates, path.Join("templates", templateGlob))
	if err != nil {
		return fmt.Errorf("failed to list embedded templates: %w", err)
	}

	for _, name := range names {
		content, err := embeddedTemplates.ReadFile(name)
		if err != nil {
			r.logger.Error().Err(err).Str("template", name).Msg("Failed to read embedded template")
			return fmt.Errorf("failed to read embedded template %s: %w", name, err)
		}

		cleanedContent := strings.ReplaceAll(string(content), "\r\n", "\n")
		if _, err := tmpl.New(path.Base(name)).Parse(cleanedContent); err != nil {
			r.logger.Error().Err(err).Str("template", name).Msg("Failed to parse embedded template")
			return fmt.Errorf("failed to parse embedded template %s: %w", name, err)
		}
	}
	return nil
}

func (r *Renderer) loadCustomTemplates(tmpl *template.Template, dir string) error {
	pattern := filepath.Join(dir, templateGlob)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("invalid template directory %s: %w", dir, err)
	}
	if len(matches) == 0 {
		r.logger.Warn().Str("template_dir", dir).Msg("No custom templates found, using embedded templates")
		return nil
	}

	if _, err := tmpl.ParseGlob(pattern); err != nil {
		r.logger.Error().Err(err).Str("template_dir", dir).Msg("Failed to parse custom templates")
		return fmt.Errorf("failed to parse custom templates in %s: %w", dir, err)
	}

	r.logger.Info().Str("template_dir", dir).Strs("files", matches).Msg("Loaded custom templates")
	return nil
}

// Render executes the named template into w. Output is buffered so a failed
// execution writes nothing.
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.template.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Script returns the embedded "load more" script.
func (r *Renderer) Script() []byte {
	return embeddedScript
}
