// Package templater renders agent instructions written as Jinja-style (pongo2) templates.
package templater

import (
	"fmt"
	"maps"
	"time"

	"github.com/awantoch/foundryflow/utils"
	pongo2 "github.com/flosch/pongo2/v6"
)

// DateLayout is how {{ today }} is formatted.
const DateLayout = "2006-01-02"

// Templater renders instruction templates.
type Templater struct {
	now func() time.Time
}

// NewTemplater returns a Templater using the wall clock.
func NewTemplater() *Templater {
	return &Templater{now: time.Now}
}

// WithClock fixes the time {{ today }} and {{ now }} resolve to.
func (t *Templater) WithClock(now func() time.Time) *Templater {
	t.now = now
	return t
}

// Render renders tmpl with data. today and now are always available unless data overrides them.
func (t *Templater) Render(tmpl string, data map[string]any) (string, error) {
	if data == nil {
		return "", fmt.Errorf("template data is nil")
	}
	now := t.now()
	ctx := pongo2.Context{
		"today": now.Format(DateLayout),
		"now":   now.Format(time.RFC3339),
	}
	maps.Copy(ctx, data)
	utils.Debug("Templater.Render: tmpl = %q", tmpl)

	pl, err := pongo2.FromString(tmpl)
	if err != nil {
		return "", err
	}
	return pl.Execute(ctx)
}

// Render renders tmpl with the wall clock.
func Render(tmpl string, data map[string]any) (string, error) {
	return NewTemplater().Render(tmpl, data)
}
