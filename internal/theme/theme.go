// Package theme loads the page template set.
//
// A Theme combines:
//
//   - Name       – the theme name, for logs.
//   - Templates  – every *.html file in the theme file system, parsed as
//     one set so pages can share layouts via {{ template "layout" . }}.
//   - Asset      – helper injected into templates so they can resolve
//     `{{ asset "css/main.css" }}` to the root-relative "/css/main.css".
//     Adapters map that path onto the static bundle.
//
// Later files override earlier ones when they {{ define }} the same name;
// CollectHTML sorts paths, so "pages/…" overrides "layouts/…".
package theme

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
)

// Theme is returned by Load once all templates are parsed.
type Theme struct {
	Name      string
	Templates *template.Template
	Asset     func(string) string
}

// Load parses every *.html file in fsys.  funcs must contain every helper
// the templates call; "asset" is added here.
func Load(name string, fsys fs.FS, funcs template.FuncMap) (*Theme, error) {
	files, err := CollectHTML(fsys)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("theme %s: no templates found", name)
	}

	th := &Theme{Name: name, Asset: func(p string) string { return path.Join("/", p) }}

	tpl := template.New(name).Funcs(funcs).Funcs(template.FuncMap{"asset": th.Asset})
	if _, err := tpl.ParseFS(fsys, files...); err != nil {
		return nil, fmt.Errorf("theme %s: parse: %w", name, err)
	}
	th.Templates = tpl
	return th, nil
}
