// Package views ships the default templ components for a folio site: public
// pages, admin dashboard, and error pages. A host site can replace any of
// them through folio.ViewFuncs.
package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/eteber/folio"
	"github.com/eteber/folio/markdown"
)

// Site binds the default components to a site configuration.
type Site struct {
	cfg folio.SiteConfig
}

// New returns the default view set for cfg.
func New(cfg folio.SiteConfig) *Site {
	return &Site{cfg: cfg}
}

// Funcs wires the default components into a folio.ViewFuncs.
func (s *Site) Funcs() folio.ViewFuncs {
	return folio.ViewFuncs{
		Home:             s.Home,
		HomePartial:      s.HomePartial,
		BlogSection:      s.BlogSection,
		Post:             s.Post,
		PostPartial:      s.PostPartial,
		Projects:         s.Projects,
		AdminLogin:       s.AdminLogin,
		AdminDashboard:   s.AdminDashboard,
		AdminFormPartial: s.AdminFormPartial,
		AdminImages:      s.AdminImages,
		AdminStats:       s.AdminStats,
		NotFound:         s.NotFound,
		ServerError:      s.ServerError,
	}
}

// component adapts a buffer-writing function into a templ.Component.
func component(fn func(*bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		fn(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

// page writes the site chrome around body: head with SEO/OpenGraph metadata
// and JSON-LD, nav, footer.
func (s *Site) page(meta folio.PageMeta, jsonLD string, body func(*bytes.Buffer)) templ.Component {
	return component(func(b *bytes.Buffer) {
		title := meta.Title
		if title == "" {
			title = s.cfg.Name
		}
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		b.WriteString(`<title>` + esc(title) + `</title>`)
		if meta.Description != "" {
			b.WriteString(`<meta name="description" content="` + esc(meta.Description) + `"/>`)
		}
		if meta.URL != "" {
			b.WriteString(`<link rel="canonical" href="` + esc(meta.URL) + `"/>`)
			b.WriteString(`<meta property="og:url" content="` + esc(meta.URL) + `"/>`)
		}
		b.WriteString(`<meta property="og:title" content="` + esc(title) + `"/>`)
		if meta.Description != "" {
			b.WriteString(`<meta property="og:description" content="` + esc(meta.Description) + `"/>`)
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		b.WriteString(`<meta property="og:type" content="` + esc(ogType) + `"/>`)
		if meta.Image != "" {
			b.WriteString(`<meta property="og:image" content="` + esc(meta.Image) + `"/>`)
			b.WriteString(`<meta name="twitter:card" content="summary_large_image"/>`)
		}
		b.WriteString(`<link rel="alternate" type="application/rss+xml" title="` + esc(s.cfg.Name) + `" href="/feed.xml"/>`)
		b.WriteString(`<link rel="stylesheet" href="/public/css/site.css"/>`)
		if jsonLD != "" {
			b.WriteString(`<script type="application/ld+json">` + jsonLD + `</script>`)
		}
		b.WriteString(`</head><body>`)
		s.nav(b)
		b.WriteString(`<main id="main">`)
		body(b)
		b.WriteString(`</main>`)
		s.footer(b)
		b.WriteString(`</body></html>`)
	})
}

func (s *Site) nav(b *bytes.Buffer) {
	b.WriteString(`<header class="site-header"><nav>`)
	b.WriteString(`<a class="site-name" href="/">` + esc(s.cfg.Name) + `</a>`)
	b.WriteString(`<a href="/">Blog</a>`)
	b.WriteString(`<a href="/projects/">Projects</a>`)
	b.WriteString(`<a href="/feed.xml">RSS</a>`)
	b.WriteString(`</nav></header>`)
}

func (s *Site) footer(b *bytes.Buffer) {
	b.WriteString(`<footer class="site-footer">`)
	if s.cfg.Author != "" {
		b.WriteString(`<p>&copy; ` + esc(s.cfg.Author) + `</p>`)
	}
	b.WriteString(`</footer>`)
}

// Home is the blog index with hero, tag filter, and post list.
func (s *Site) Home(posts []folio.BlogPost, activeTag string, tags []string) templ.Component {
	meta := folio.PageMeta{
		Title:       s.cfg.Name,
		Description: s.cfg.Description,
		URL:         folio.BuildURL(s.cfg.URL),
		OGType:      "website",
	}
	return s.page(meta, WebsiteJsonLD(s.cfg), func(b *bytes.Buffer) {
		s.hero(b)
		s.blogSection(b, posts, activeTag, tags)
	})
}

// HomePartial is the home body without chrome, for HTMX swaps.
func (s *Site) HomePartial(posts []folio.BlogPost, activeTag string, tags []string) templ.Component {
	return component(func(b *bytes.Buffer) {
		s.hero(b)
		s.blogSection(b, posts, activeTag, tags)
	})
}

// BlogSection is the post list alone, for HTMX tag-filter swaps.
func (s *Site) BlogSection(posts []folio.BlogPost, activeTag string, tags []string) templ.Component {
	return component(func(b *bytes.Buffer) {
		s.blogSection(b, posts, activeTag, tags)
	})
}

func (s *Site) hero(b *bytes.Buffer) {
	b.WriteString(`<section class="hero"><h1>` + esc(s.cfg.Name) + `</h1>`)
	if s.cfg.Description != "" {
		b.WriteString(`<p>` + esc(s.cfg.Description) + `</p>`)
	}
	b.WriteString(`</section>`)
}

func (s *Site) blogSection(b *bytes.Buffer, posts []folio.BlogPost, activeTag string, tags []string) {
	b.WriteString(`<section id="blog" class="blog-section">`)
	if len(tags) > 0 {
		b.WriteString(`<div class="tag-filter">`)
		b.WriteString(`<a class="` + TagClass(activeTag == "") + `" href="/">all</a>`)
		for _, t := range tags {
			b.WriteString(`<a class="` + TagClass(t == activeTag) + `" href="/?tag=` + url.QueryEscape(t) + `#blog">` + esc(t) + `</a>`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`<ul class="post-list">`)
	for _, p := range posts {
		b.WriteString(`<li><article>`)
		b.WriteString(`<time datetime="` + esc(p.Date) + `">` + esc(FormatDate(p.Date)) + `</time>`)
		b.WriteString(`<h2><a href="` + esc(p.Link) + `/">` + esc(p.Title) + `</a></h2>`)
		if p.Summary != "" {
			b.WriteString(`<p>` + esc(p.Summary) + `</p>`)
		}
		b.WriteString(`</article></li>`)
	}
	b.WriteString(`</ul></section>`)
}

// Post is a full article page with markdown body and related posts.
func (s *Site) Post(post folio.BlogPost, posts []folio.BlogPost) templ.Component {
	meta := folio.PageMeta{
		Title:       post.Title,
		Description: post.Summary,
		URL:         folio.BuildURL(s.cfg.URL, "blog", post.Slug),
		OGType:      "article",
		Image:       absoluteImage(s.cfg.URL, post.Thumbnail),
	}
	return s.page(meta, BlogPostingJsonLD(s.cfg, post), func(b *bytes.Buffer) {
		s.article(b, post, posts)
	})
}

// PostPartial is the article without chrome, for HTMX swaps.
func (s *Site) PostPartial(post folio.BlogPost, posts []folio.BlogPost) templ.Component {
	return component(func(b *bytes.Buffer) {
		s.article(b, post, posts)
	})
}

func (s *Site) article(b *bytes.Buffer, post folio.BlogPost, posts []folio.BlogPost) {
	b.WriteString(`<article class="post">`)
	b.WriteString(`<header><h1>` + esc(post.Title) + `</h1>`)
	b.WriteString(`<time datetime="` + esc(post.Date) + `">` + esc(FormatDate(post.Date)) + `</time>`)
	if len(post.Tags) > 0 {
		b.WriteString(`<p class="tags">` + esc(JoinTags(post.Tags)) + `</p>`)
	}
	b.WriteString(`</header><div class="post-body">`)
	markdown.Render(b, post.Content)
	b.WriteString(`</div></article>`)

	related := FilterRelatedPosts(post, posts)
	if len(related) > 0 {
		b.WriteString(`<aside class="related"><h2>Related</h2><ul>`)
		for _, p := range related {
			b.WriteString(`<li><a href="` + esc(p.Link) + `/">` + esc(p.Title) + `</a></li>`)
		}
		b.WriteString(`</ul></aside>`)
	}
}

// Projects is the portfolio page.
func (s *Site) Projects(projects []folio.Project) templ.Component {
	meta := folio.PageMeta{
		Title:       "Projects — " + s.cfg.Name,
		Description: s.cfg.Description,
		URL:         folio.BuildURL(s.cfg.URL, "projects"),
		OGType:      "website",
	}
	return s.page(meta, WebsiteJsonLD(s.cfg), func(b *bytes.Buffer) {
		b.WriteString(`<section class="projects"><h1>Projects</h1><ul class="project-grid">`)
		for _, p := range projects {
			b.WriteString(`<li class="project-card"><h2>`)
			if p.Link != "" {
				b.WriteString(`<a href="` + esc(p.Link) + `" rel="noopener noreferrer">` + esc(p.Name) + `</a>`)
			} else {
				b.WriteString(esc(p.Name))
			}
			b.WriteString(`</h2>`)
			if p.Year > 0 {
				b.WriteString(`<span class="year">` + esc(FormatYear(p.Year)) + `</span>`)
			}
			if p.Blurb != "" {
				b.WriteString(`<p>` + esc(p.Blurb) + `</p>`)
			}
			if len(p.Tags) > 0 {
				b.WriteString(`<p class="tags">` + esc(JoinTags(p.Tags)) + `</p>`)
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul></section>`)
	})
}

// NotFound is the styled 404 page.
func (s *Site) NotFound() templ.Component {
	meta := folio.PageMeta{Title: "Not found — " + s.cfg.Name}
	return s.page(meta, "", func(b *bytes.Buffer) {
		b.WriteString(`<section class="error-page"><h1>404</h1><p>That page does not exist.</p><a href="/">Back home</a></section>`)
	})
}

// ServerError is the styled 500 page.
func (s *Site) ServerError() templ.Component {
	meta := folio.PageMeta{Title: "Something broke — " + s.cfg.Name}
	return s.page(meta, "", func(b *bytes.Buffer) {
		b.WriteString(`<section class="error-page"><h1>500</h1><p>Something went wrong. Try again shortly.</p><a href="/">Back home</a></section>`)
	})
}

func absoluteImage(base, path string) string {
	if path == "" {
		return ""
	}
	return base + path
}
