package pages

import (
	"github.com/a-h/templ"
	"github.com/templui/devlens/internal/service"
)

var userDetailsTmpl = newPage(`{{define "content"}}
{{with .Data}}
<section class="card">
  <div class="profile">
    {{with .Profile}}{{if .AvatarURL}}<img src="{{.AvatarURL}}" alt="">{{end}}{{end}}
    <div>
      <h1>{{.Stored.DisplayName}}</h1>
      {{with .Profile}}<a href="{{.HTMLURL}}">@{{.Login}}</a>{{else}}<span class="muted">@{{.Stored.Username}}</span>{{end}}
    </div>
  </div>
  {{with .Profile}}
    {{with deref .Bio}}<p>{{.}}</p>{{end}}
    <p class="muted">{{with deref .Company}}{{.}} · {{end}}{{with deref .Location}}{{.}} · {{end}}Joined {{date .CreatedAt}}</p>
  {{else}}
    <p class="muted">Joined {{date .Stored.CreatedAt}}</p>
  {{end}}
  <div class="stats">
    <div><strong>{{.Stored.PublicRepos}}</strong><span class="muted">repositories</span></div>
    <div><strong>{{.Stored.Followers}}</strong><span class="muted">followers</span></div>
    <div><strong>{{.Stored.Following}}</strong><span class="muted">following</span></div>
  </div>
  <p class="muted">First stored {{datetime .Stored.FetchedAt}}{{if .FromDB}} · served from the database{{end}}</p>
</section>

{{if not .FromDB}}
<section class="card">
  <h2>Repositories</h2>
  {{if .Repos}}
  <table>
    <thead><tr><th>Name</th><th>Language</th><th>Stars</th><th>Forks</th><th>Updated</th></tr></thead>
    <tbody>
    {{range .Repos}}
      <tr><td>{{.Name}}</td><td>{{with deref .Language}}{{.}}{{else}}<span class="muted">n/a</span>{{end}}</td><td>{{.Stars}}</td><td>{{.Forks}}</td><td>{{date .UpdatedAt}}</td></tr>
    {{end}}
    </tbody>
  </table>
  {{else}}
  <p class="muted">No public repositories.</p>
  {{end}}
</section>

<section class="card">
  <details>
    <summary>Raw profile payload</summary>
    <pre>{{printf "%s" .Profile.Raw}}</pre>
  </details>
</section>
{{end}}
{{end}}
{{end}}`)

// UserDetails renders a fetched or stored snapshot
func UserDetails(snap *service.Snapshot) templ.Component {
	return page(userDetailsTmpl, snap.Stored.DisplayName(), snap)
}
