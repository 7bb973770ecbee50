package views

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/eteber/folio"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-02", "Mar 2, 2025"},
		{"2024-12-25", "Dec 25, 2024"},
		{"not-a-date", "not-a-date"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoinTags(t *testing.T) {
	if got := JoinTags([]string{"go", "web"}); got != "#go #web" {
		t.Errorf("JoinTags = %q, want %q", got, "#go #web")
	}
	if got := JoinTags(nil); got != "" {
		t.Errorf("JoinTags(nil) = %q, want empty", got)
	}
}

func TestFilterRelatedPosts(t *testing.T) {
	current := folio.BlogPost{Slug: "a", Tags: []string{"go"}}
	posts := []folio.BlogPost{
		{Slug: "a", Tags: []string{"go"}},      // self, skipped
		{Slug: "b", Tags: []string{"go"}},      // related
		{Slug: "c", Tags: []string{"rust"}},    // unrelated
		{Slug: "d", Tags: []string{"go", "x"}}, // related
		{Slug: "e", Tags: []string{"go"}},      // related
		{Slug: "f", Tags: []string{"go"}},      // over the cap
	}
	related := FilterRelatedPosts(current, posts)
	if len(related) != 3 {
		t.Fatalf("got %d related posts, want 3", len(related))
	}
	want := []string{"b", "d", "e"}
	for i, p := range related {
		if p.Slug != want[i] {
			t.Errorf("related[%d] = %q, want %q", i, p.Slug, want[i])
		}
	}
}

func TestFilterRelatedPostsNoTags(t *testing.T) {
	current := folio.BlogPost{Slug: "a"}
	posts := []folio.BlogPost{{Slug: "b", Tags: []string{"go"}}}
	if related := FilterRelatedPosts(current, posts); len(related) != 0 {
		t.Errorf("got %d related posts for untagged post, want 0", len(related))
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := folio.SiteConfig{Name: "Test", URL: "https://example.com", Author: "Jo"}
	post := folio.BlogPost{
		Title:     "Hello",
		Slug:      "hello",
		Date:      "2025-01-01",
		Summary:   "A post",
		Tags:      []string{"go"},
		Thumbnail: "/public/thumbnails/hello.png",
	}
	raw := BlogPostingJsonLD(cfg, post)

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if doc["@type"] != "BlogPosting" {
		t.Errorf("@type = %v, want BlogPosting", doc["@type"])
	}
	if doc["headline"] != "Hello" {
		t.Errorf("headline = %v", doc["headline"])
	}
	if doc["image"] != "https://example.com/public/thumbnails/hello.png" {
		t.Errorf("image = %v", doc["image"])
	}
	if doc["url"] != "https://example.com/blog/hello/" {
		t.Errorf("url = %v", doc["url"])
	}
}

func TestHomeRendersPostsAndEscapes(t *testing.T) {
	cfg := folio.SiteConfig{Name: "Test Site", URL: "https://example.com"}
	s := New(cfg)
	posts := []folio.BlogPost{
		{Title: "Hello <World>", Date: "2025-01-01", Link: "/blog/hello", Slug: "hello", Summary: "First"},
	}

	var buf bytes.Buffer
	if err := s.Home(posts, "", []string{"go"}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Hello &lt;World&gt;") {
		t.Error("post title not escaped in output")
	}
	if strings.Contains(out, "Hello <World>") {
		t.Error("raw unescaped title leaked into output")
	}
	if !strings.Contains(out, `href="/blog/hello/"`) {
		t.Error("post link missing")
	}
	if !strings.Contains(out, "application/ld+json") {
		t.Error("JSON-LD script missing")
	}
}

func TestPostRendersThumbnailMeta(t *testing.T) {
	cfg := folio.SiteConfig{Name: "Test", URL: "https://example.com"}
	s := New(cfg)
	post := folio.BlogPost{
		Title:     "Card Test",
		Slug:      "card-test",
		Date:      "2025-02-02",
		Content:   "# Heading\n\nBody text.",
		Thumbnail: "/public/thumbnails/card_test.png",
	}

	var buf bytes.Buffer
	if err := s.Post(post, nil).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `property="og:image" content="https://example.com/public/thumbnails/card_test.png"`) {
		t.Error("og:image meta missing or wrong")
	}
	if !strings.Contains(out, `property="og:type" content="article"`) {
		t.Error("og:type article missing")
	}
	if !strings.Contains(out, "<h1>Heading</h1>") {
		t.Error("markdown body not rendered")
	}
}
