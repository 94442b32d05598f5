package pages

import "github.com/a-h/templ"

var homeTmpl = newPage(`{{define "content"}}
{{with .Data}}<div class="flash" role="alert">{{.}}</div>{{end}}
<section class="card">
  <h1>Look up a GitHub developer</h1>
  <p class="muted">Fetch a live profile from GitHub and store a snapshot, or open the snapshot we already have.</p>
  <form method="post" action="/fetch-user/">
    <input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
    <input type="text" name="username" placeholder="octocat" required maxlength="39" autocomplete="off">
    <button type="submit">Fetch from GitHub</button>
  </form>
  <form method="post" action="/fetch-from-db/">
    <input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
    <input type="text" name="username" placeholder="octocat" required maxlength="39" autocomplete="off">
    <button type="submit" class="secondary">Load stored snapshot</button>
  </form>
</section>
{{end}}`)

// Home renders the entry page with an optional flash message
func Home(flash string) templ.Component {
	return page(homeTmpl, "Home", flash)
}
