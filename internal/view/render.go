package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"slices"
	"strings"
	"time"
	_ "time/tzdata" // zone database for configured time zones on hosts without one

	"github.com/goodsign/monday"
	"github.com/phrazzld/taskbin/internal/config"
	"github.com/phrazzld/taskbin/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// deletedAtFormat renders as "1 de enero de 2024, 10:00" in es_ES.
const deletedAtFormat = "2 de January de 2006, 15:04"

// naiveLayouts are tried after RFC 3339 for timestamps without an offset.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Renderer turns view state into HTML. It is immutable and safe for concurrent use.
type Renderer struct {
	tmpl     *template.Template
	location *time.Location
	locale   monday.Locale
}

// NewRenderer parses the embedded templates and resolves the configured time
// zone and locale. Locales unknown to monday are rejected.
func NewRenderer(cfg config.ViewConfig) (*Renderer, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid view time zone %q: %w", cfg.TimeZone, err)
	}

	locale := monday.Locale(cfg.Locale)
	if !slices.Contains(monday.ListLocales(), locale) {
		return nil, fmt.Errorf("unsupported view locale %q", cfg.Locale)
	}

	r := &Renderer{location: loc, locale: locale}

	tmpl, err := template.New("view").
		Funcs(template.FuncMap{"deletedAt": r.FormatDeletedAt}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse view templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// RenderDeletedTasks renders the list container content for tasks: one card
// per task in the given order, or the empty-state message. All task text is
// escaped.
func (r *Renderer) RenderDeletedTasks(tasks []domain.DeletedTask) (template.HTML, error) {
	return r.fragment("tasks", tasks)
}

// RenderLoadError renders the inline banner shown when the list cannot be loaded.
func (r *Renderer) RenderLoadError() (template.HTML, error) {
	return r.fragment("load_error", nil)
}

// RenderPage writes the full page for p.
func (r *Renderer) RenderPage(w io.Writer, p Page) error {
	return r.tmpl.ExecuteTemplate(w, "page", p)
}

// FormatDeletedAt formats a deletion timestamp in the configured locale and
// time zone. Values that cannot be parsed are returned unchanged.
func (r *Renderer) FormatDeletedAt(raw string) string {
	t, ok := r.parseTimestamp(strings.TrimSpace(raw))
	if !ok {
		return raw
	}
	return monday.Format(t.In(r.location), deletedAtFormat, r.locale)
}

// parseTimestamp accepts RFC 3339 and ISO 8601 without offset. The latter is
// read as wall time in the configured zone.
func (r *Renderer) parseTimestamp(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, true
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, r.location); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (r *Renderer) fragment(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	// Output of html/template is already escaped.
	return template.HTML(buf.String()), nil // #nosec G203
}
