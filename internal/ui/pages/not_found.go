package pages

import "github.com/a-h/templ"

var notFoundTmpl = newPage(`{{define "content"}}
<section class="card">
  <h1>Page not found</h1>
  <p class="muted">Nothing lives at <code>{{.Path}}</code>.</p>
  <p><a href="/">Back to the lookup</a></p>
</section>
{{end}}`)

func NotFound() templ.Component {
	return page(notFoundTmpl, "Not found", nil)
}
