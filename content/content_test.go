package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseArticle(t *testing.T) {
	data := []byte(`---
title: Shipping Side Projects
date: 2025-03-01
tags:
  - go
  - indie
summary: Lessons from shipping too many side projects.
---

# Heading

Body text here.
`)
	a, err := Parse("shipping-side-projects.md", data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if a.Slug != "shipping-side-projects" {
		t.Errorf("Slug = %q, want %q", a.Slug, "shipping-side-projects")
	}
	if a.Title != "Shipping Side Projects" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.Date != "2025-03-01" {
		t.Errorf("Date = %q", a.Date)
	}
	if len(a.Tags) != 2 || a.Tags[0] != "go" || a.Tags[1] != "indie" {
		t.Errorf("Tags = %v, want [go indie]", a.Tags)
	}
	if a.Draft {
		t.Error("Draft should default to false")
	}
	if a.Body == "" || a.Body[0] != '#' {
		t.Errorf("Body should start at the heading, got %q", a.Body)
	}
}

func TestParseDraftFlag(t *testing.T) {
	data := []byte("---\ntitle: WIP\ndraft: true\n---\nbody")
	a, err := Parse("wip.mdx", data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !a.Draft {
		t.Error("Draft should be true")
	}
}

func TestParseMissingTitle(t *testing.T) {
	if _, err := Parse("x.md", []byte("---\ndate: 2025-01-01\n---\nbody")); err == nil {
		t.Fatal("expected error for missing title")
	}
}

func TestParseInvalidDate(t *testing.T) {
	if _, err := Parse("x.md", []byte("---\ntitle: X\ndate: 01/02/2025\n---\n")); err == nil {
		t.Fatal("expected error for invalid date format")
	}
}

func TestParseUnterminatedFrontmatter(t *testing.T) {
	if _, err := Parse("x.md", []byte("---\ntitle: X\n")); err == nil {
		t.Fatal("expected error for unterminated frontmatter")
	}
}

func TestParseNoFrontmatter(t *testing.T) {
	// A bare markdown file has no title, which is an error the loader surfaces
	// with the filename attached.
	if _, err := Parse("x.md", []byte("just a body")); err == nil {
		t.Fatal("expected error for file without frontmatter")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"first-post.md":  "---\ntitle: First Post\ndate: 2025-01-01\n---\nhello",
		"Second Post.md": "---\ntitle: Second Post\ndate: 2025-01-02\n---\nworld",
		"notes.txt":      "ignored",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	articles, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("article count = %d, want 2", len(articles))
	}
	slugs := map[string]bool{}
	for _, a := range articles {
		slugs[a.Slug] = true
	}
	if !slugs["first-post"] || !slugs["second-post"] {
		t.Errorf("unexpected slugs: %v", slugs)
	}
}

func TestLoadDirMissing(t *testing.T) {
	articles, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir should not error, got %v", err)
	}
	if articles != nil {
		t.Errorf("expected no articles, got %v", articles)
	}
}

func TestLoadDirDateFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "undated.md"), []byte("---\ntitle: Undated\n---\nbody"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	articles, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(articles) != 1 || articles[0].Date == "" {
		t.Errorf("date should fall back to file modtime, got %+v", articles)
	}
}

func TestLoadProjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	data := `
- name: folio
  blurb: This site.
  link: https://github.com/eteber/folio
  tags: [go, web]
  year: 2026
- name: inkjet
  blurb: Plotter art toolkit.
  year: 2024
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	projects, err := LoadProjects(path)
	if err != nil {
		t.Fatalf("LoadProjects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("project count = %d, want 2", len(projects))
	}
	if projects[0].Name != "folio" || projects[0].Year != 2026 {
		t.Errorf("first project = %+v", projects[0])
	}
	if len(projects[0].Tags) != 2 {
		t.Errorf("tags = %v, want 2 entries", projects[0].Tags)
	}
}

func TestLoadProjectsMissing(t *testing.T) {
	projects, err := LoadProjects(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if projects != nil {
		t.Errorf("expected empty portfolio, got %v", projects)
	}
}
