package views

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eteber/folio"
	"github.com/eteber/folio/analytics"
)

// adminPage is the dashboard chrome: minimal head, admin nav, logout form.
func (s *Site) adminPage(title, csrfToken string, body func(*bytes.Buffer)) templ.Component {
	return component(func(b *bytes.Buffer) {
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		b.WriteString(`<meta name="robots" content="noindex"/>`)
		b.WriteString(`<title>` + esc(title) + ` — ` + esc(s.cfg.Name) + `</title>`)
		b.WriteString(`<link rel="stylesheet" href="/public/css/site.css"/>`)
		b.WriteString(`<script src="/public/js/htmx.min.js" defer></script>`)
		b.WriteString(`</head><body class="admin">`)
		b.WriteString(`<header class="admin-header"><nav>`)
		b.WriteString(`<a href="/admin/">Posts</a>`)
		b.WriteString(`<a href="/admin/images/">Images</a>`)
		if s.cfg.AnalyticsEnabled {
			b.WriteString(`<a href="/admin/stats/">Stats</a>`)
		}
		b.WriteString(`<a href="/" target="_blank">View site</a>`)
		if csrfToken != "" {
			b.WriteString(`<form method="post" action="/admin/logout/">`)
			csrfField(b, csrfToken)
			b.WriteString(`<button type="submit">Log out</button></form>`)
		}
		b.WriteString(`</nav></header><main class="admin-main">`)
		body(b)
		b.WriteString(`</main></body></html>`)
	})
}

func csrfField(b *bytes.Buffer, token string) {
	b.WriteString(`<input type="hidden" name="_csrf" value="` + esc(token) + `"/>`)
}

// AdminLogin is the password form, with an error banner after a failed try.
func (s *Site) AdminLogin(showError bool, csrfToken string) templ.Component {
	return s.adminPage("Login", "", func(b *bytes.Buffer) {
		b.WriteString(`<section class="admin-login"><h1>Admin</h1>`)
		if showError {
			b.WriteString(`<p class="error">Wrong password.</p>`)
		}
		b.WriteString(`<form method="post" action="/admin/login/">`)
		csrfField(b, csrfToken)
		b.WriteString(`<input type="password" name="password" autofocus required/>`)
		b.WriteString(`<button type="submit">Log in</button>`)
		b.WriteString(`</form></section>`)
	})
}

// AdminDashboard lists all posts (drafts included) with edit and delete
// controls and an empty editor form for a new post.
func (s *Site) AdminDashboard(posts []folio.BlogPost, message string, csrfToken string) templ.Component {
	return s.adminPage("Dashboard", csrfToken, func(b *bytes.Buffer) {
		if message != "" {
			b.WriteString(`<p class="flash">` + esc(message) + `</p>`)
		}
		b.WriteString(`<section class="admin-posts"><h1>Posts</h1><table><thead><tr><th>Date</th><th>Title</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, p := range posts {
			b.WriteString(`<tr><td>` + esc(p.Date) + `</td>`)
			b.WriteString(`<td><a href="/admin/post/` + esc(p.Slug) + `/">` + esc(p.Title) + `</a></td>`)
			if p.Published {
				b.WriteString(`<td>published</td>`)
			} else {
				b.WriteString(`<td>draft</td>`)
			}
			b.WriteString(`<td><button hx-delete="/admin/post/` + esc(p.Slug) + `/" hx-headers='{"X-CSRF-Token":"` + esc(csrfToken) + `"}' hx-confirm="Delete this post?" hx-target="closest tr" hx-swap="outerHTML">delete</button></td></tr>`)
		}
		b.WriteString(`</tbody></table></section>`)
		b.WriteString(`<section class="admin-editor"><h2>New post</h2>`)
		s.postForm(b, folio.BlogPost{}, csrfToken)
		b.WriteString(`</section>`)
	})
}

// AdminFormPartial is the editor form alone, for HTMX edit-in-place swaps.
func (s *Site) AdminFormPartial(post folio.BlogPost, csrfToken string) templ.Component {
	return component(func(b *bytes.Buffer) {
		s.postForm(b, post, csrfToken)
	})
}

func (s *Site) postForm(b *bytes.Buffer, post folio.BlogPost, csrfToken string) {
	b.WriteString(`<form class="post-form" method="post" action="/admin/save/">`)
	csrfField(b, csrfToken)
	b.WriteString(`<input type="hidden" name="slug" value="` + esc(post.Slug) + `"/>`)
	b.WriteString(`<label>Title <input type="text" name="title" value="` + esc(post.Title) + `" required/></label>`)
	b.WriteString(`<label>Date <input type="date" name="date" value="` + esc(post.Date) + `"/></label>`)
	b.WriteString(`<label>Tags <input type="text" name="tags" value="` + esc(strings.Join(post.Tags, ", ")) + `" placeholder="go, web"/></label>`)
	b.WriteString(`<label>Summary <input type="text" name="summary" value="` + esc(post.Summary) + `"/></label>`)
	b.WriteString(`<label>Content <textarea name="content" rows="20">` + esc(post.Content) + `</textarea></label>`)
	checked := ""
	if post.Published {
		checked = ` checked`
	}
	b.WriteString(`<label><input type="checkbox" name="published"` + checked + `/> Published</label>`)
	if post.Thumbnail != "" {
		b.WriteString(`<img class="thumb-preview" src="` + esc(post.Thumbnail) + `" alt="thumbnail" width="400" height="200"/>`)
	}
	b.WriteString(`<button type="submit">Save</button></form>`)
}

// AdminImages is the upload form plus the image library with markdown
// snippets ready to paste into a post.
func (s *Site) AdminImages(images []folio.Image, csrfToken string) templ.Component {
	return s.adminPage("Images", csrfToken, func(b *bytes.Buffer) {
		b.WriteString(`<section class="admin-images"><h1>Images</h1>`)
		b.WriteString(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		csrfField(b, csrfToken)
		b.WriteString(`<input type="file" name="image" accept="image/*" required/>`)
		b.WriteString(`<button type="submit">Upload</button></form>`)
		b.WriteString(`<ul class="image-grid">`)
		for _, img := range images {
			src := "/public/uploads/" + img.Filename
			b.WriteString(`<li><img src="` + esc(src) + `" alt="` + esc(img.OriginalName) + `" loading="lazy"/>`)
			snippet := "![" + img.OriginalName + "](" + src + "){|" + strconv.Itoa(img.Width) + "|" + strconv.Itoa(img.Height) + "}"
			b.WriteString(`<code>` + esc(snippet) + `</code>`)
			b.WriteString(`<span>` + strconv.Itoa(img.Width) + `×` + strconv.Itoa(img.Height) + `</span>`)
			b.WriteString(`<button hx-delete="/admin/images/` + esc(img.Filename) + `/" hx-headers='{"X-CSRF-Token":"` + esc(csrfToken) + `"}' hx-confirm="Delete this image?" hx-target="closest li" hx-swap="outerHTML">delete</button></li>`)
		}
		b.WriteString(`</ul></section>`)
	})
}

// AdminStats shows daily views and sessions for the last 30 days plus the
// most-viewed paths.
func (s *Site) AdminStats(totals []analytics.DayCount, top []analytics.PathCount) templ.Component {
	return s.adminPage("Stats", "", func(b *bytes.Buffer) {
		b.WriteString(`<section class="admin-stats"><h1>Stats</h1>`)
		b.WriteString(`<h2>Daily</h2><table><thead><tr><th>Day</th><th>Views</th><th>Sessions</th></tr></thead><tbody>`)
		for _, d := range totals {
			b.WriteString(`<tr><td>` + esc(d.Day) + `</td><td>` + strconv.Itoa(d.Views) + `</td><td>` + strconv.Itoa(d.Sessions) + `</td></tr>`)
		}
		b.WriteString(`</tbody></table>`)
		b.WriteString(`<h2>Top pages</h2><table><thead><tr><th>Path</th><th>Views</th></tr></thead><tbody>`)
		for _, p := range top {
			b.WriteString(`<tr><td>` + esc(p.Path) + `</td><td>` + strconv.Itoa(p.Views) + `</td></tr>`)
		}
		b.WriteString(`</tbody></table></section>`)
	})
}
