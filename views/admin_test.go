package views

import (
	"bytes"
	"context"
	"html"
	"strings"
	"testing"

	"github.com/eteber/folio"
	"github.com/eteber/folio/markdown"
)

// The image library's copy-paste snippet must be valid input for the post
// body renderer, dimensions included.
func TestAdminImagesSnippetMatchesImageGrammar(t *testing.T) {
	s := New(folio.SiteConfig{Name: "Test"})
	images := []folio.Image{
		{Filename: "photo.jpg", OriginalName: "photo.jpg", Width: 800, Height: 600},
	}

	var buf bytes.Buffer
	if err := s.AdminImages(images, "tok").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	start := strings.Index(out, "<code>")
	end := strings.Index(out, "</code>")
	if start < 0 || end < 0 {
		t.Fatal("markdown snippet missing from image library")
	}
	snippet := html.UnescapeString(out[start+len("<code>") : end])
	if snippet != "![photo.jpg](/public/uploads/photo.jpg){|800|600}" {
		t.Fatalf("snippet = %q", snippet)
	}

	rendered := markdown.FormatInline(snippet, new(int))
	if !strings.Contains(rendered, "<img ") {
		t.Fatalf("snippet does not render as an image: %q", rendered)
	}
	if !strings.Contains(rendered, `width="800"`) || !strings.Contains(rendered, `height="600"`) {
		t.Errorf("snippet lost the stored dimensions: %q", rendered)
	}
}

func TestAdminDashboardListsDrafts(t *testing.T) {
	s := New(folio.SiteConfig{Name: "Test"})
	posts := []folio.BlogPost{
		{Slug: "live", Title: "Live", Date: "2025-01-02", Published: true},
		{Slug: "wip", Title: "WIP", Date: "2025-01-01", Published: false},
	}

	var buf bytes.Buffer
	if err := s.AdminDashboard(posts, "", "tok").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<td>published</td>") || !strings.Contains(out, "<td>draft</td>") {
		t.Errorf("post statuses missing: %q", out)
	}
	if !strings.Contains(out, `href="/admin/post/wip/"`) {
		t.Error("draft edit link missing")
	}
}
