package pages

import (
	"context"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"
	"github.com/templui/devlens/internal/ctxkeys"
)

const layoutHTML = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} · {{.AppName}}</title>
  <style nonce="{{.Nonce}}">
    body { margin: 0; font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; color: #18181b; background: #fafafa; }
    main { max-width: 760px; margin: 0 auto; padding: 32px 16px; }
    header a { color: inherit; text-decoration: none; font-weight: 600; }
    .card { background: #fff; border: 1px solid #e4e4e7; border-radius: 8px; padding: 20px; margin-top: 20px; }
    .flash { background: #fef2f2; border: 1px solid #fecaca; color: #991b1b; padding: 12px 16px; border-radius: 6px; margin-top: 20px; }
    .muted { color: #71717a; font-size: 14px; }
    .stats { display: flex; gap: 24px; margin-top: 12px; }
    .stats strong { display: block; font-size: 20px; }
    .profile { display: flex; gap: 16px; align-items: center; }
    .profile img { width: 72px; height: 72px; border-radius: 50%; }
    form { display: flex; gap: 8px; margin-top: 12px; }
    input[type=text] { flex: 1; padding: 8px 10px; border: 1px solid #d4d4d8; border-radius: 6px; }
    button { padding: 8px 14px; border: 0; border-radius: 6px; background: #2563eb; color: #fff; cursor: pointer; }
    button.secondary { background: #52525b; }
    table { width: 100%; border-collapse: collapse; margin-top: 12px; font-size: 14px; }
    th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #e4e4e7; }
    pre { overflow-x: auto; font-size: 12px; background: #f4f4f5; padding: 12px; border-radius: 6px; }
  </style>
</head>
<body>
  <main>
    <header><a href="/">{{.AppName}}</a></header>
    {{template "content" .}}
  </main>
</body>
</html>{{end}}`

var funcs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("Jan 2, 2006")
	},
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("Jan 2, 2006 15:04 MST")
	},
}

var base = template.Must(template.New("layout").Funcs(funcs).Parse(layoutHTML))

// pageData is what every page template receives. Data holds the page's own view model.
type pageData struct {
	Title     string
	AppName   string
	Nonce     string
	CSRFToken string
	Path      string
	Data      any
}

func newPage(content string) *template.Template {
	return template.Must(template.Must(base.Clone()).Parse(content))
}

// page adapts an html/template page into a templ.Component so handlers render
// every page the same way.
func page(tmpl *template.Template, title string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		appName := "Devlens"
		if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
			appName = cfg.AppName
		}

		return tmpl.ExecuteTemplate(w, "layout", pageData{
			Title:     title,
			AppName:   appName,
			Nonce:     templ.GetNonce(ctx),
			CSRFToken: ctxkeys.CSRFToken(ctx),
			Path:      ctxkeys.URLPath(ctx),
			Data:      data,
		})
	})
}
