package views

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/eteber/folio"
)

const maxRelatedPosts = 3

// FormatDate renders a YYYY-MM-DD date for display, e.g. "Mar 2, 2025".
// Unparseable input is returned as-is.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

// FormatYear renders a project year, zero meaning unknown.
func FormatYear(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}

// JoinTags renders a tag list as "#go #web".
func JoinTags(tags []string) string {
	var b strings.Builder
	for i, t := range tags {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('#')
		b.WriteString(t)
	}
	return b.String()
}

// TagClass returns the pill class for a tag-filter link.
func TagClass(active bool) string {
	if active {
		return "tag-pill tag-pill-active"
	}
	return "tag-pill"
}

// FilterRelatedPosts picks up to three other posts sharing a tag with post,
// preserving the input (newest-first) order.
func FilterRelatedPosts(post folio.BlogPost, posts []folio.BlogPost) []folio.BlogPost {
	tagSet := make(map[string]bool, len(post.Tags))
	for _, t := range post.Tags {
		tagSet[t] = true
	}
	var related []folio.BlogPost
	for _, p := range posts {
		if p.Slug == post.Slug {
			continue
		}
		for _, t := range p.Tags {
			if tagSet[t] {
				related = append(related, p)
				break
			}
		}
		if len(related) == maxRelatedPosts {
			break
		}
	}
	return related
}

// WebsiteJsonLD builds the schema.org WebSite snippet for the site.
func WebsiteJsonLD(cfg folio.SiteConfig) string {
	doc := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         cfg.URL,
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		doc["author"] = map[string]any{"@type": "Person", "name": cfg.Author}
	}
	return marshalJsonLD(doc)
}

// BlogPostingJsonLD builds the schema.org BlogPosting snippet for a post.
func BlogPostingJsonLD(cfg folio.SiteConfig, post folio.BlogPost) string {
	doc := map[string]any{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"datePublished": post.Date,
		"url":           folio.BuildURL(cfg.URL, "blog", post.Slug),
	}
	if post.Summary != "" {
		doc["description"] = post.Summary
	}
	if post.Thumbnail != "" {
		doc["image"] = cfg.URL + post.Thumbnail
	}
	if len(post.Tags) > 0 {
		doc["keywords"] = strings.Join(post.Tags, ",")
	}
	if cfg.Author != "" {
		doc["author"] = map[string]any{"@type": "Person", "name": cfg.Author}
	}
	return marshalJsonLD(doc)
}

func marshalJsonLD(doc map[string]any) string {
	data, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return string(data)
}
