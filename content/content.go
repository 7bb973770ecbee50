// Package content loads markdown articles and portfolio projects from the
// site's content directory. Articles carry YAML frontmatter; the engine syncs
// them into the post store and renders a social thumbnail for each.
package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Article is one markdown file parsed into metadata and body.
type Article struct {
	Slug    string
	Title   string
	Date    string // YYYY-MM-DD
	Tags    []string
	Summary string
	Body    string
	Draft   bool
}

// Project is a portfolio entry from projects.yaml.
type Project struct {
	Name  string   `yaml:"name"`
	Blurb string   `yaml:"blurb"`
	Link  string   `yaml:"link"`
	Tags  []string `yaml:"tags"`
	Year  int      `yaml:"year"`
}

type frontmatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Tags    []string `yaml:"tags"`
	Summary string   `yaml:"summary"`
	Draft   bool     `yaml:"draft"`
}

var delimiter = []byte("---")

// LoadDir parses every .md and .mdx file in dir. A missing directory is not
// an error: a fresh site simply has no articles yet.
func LoadDir(dir string) ([]Article, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var articles []Article
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".md" && ext != ".mdx" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		a, err := Parse(e.Name(), data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		if a.Date == "" {
			if info, err := e.Info(); err == nil {
				a.Date = info.ModTime().Format("2006-01-02")
			}
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// Parse splits a markdown file into frontmatter and body. The slug is derived
// from the filename stem; a title frontmatter key is required.
func Parse(name string, data []byte) (Article, error) {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return Article{}, err
	}
	var meta frontmatter
	if len(fm) > 0 {
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return Article{}, fmt.Errorf("frontmatter: %w", err)
		}
	}
	if meta.Title == "" {
		return Article{}, fmt.Errorf("missing title")
	}
	if meta.Date != "" {
		if _, err := time.Parse("2006-01-02", meta.Date); err != nil {
			return Article{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", meta.Date)
		}
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return Article{
		Slug:    slugify(stem),
		Title:   meta.Title,
		Date:    meta.Date,
		Tags:    meta.Tags,
		Summary: meta.Summary,
		Body:    strings.TrimSpace(string(body)),
		Draft:   meta.Draft,
	}, nil
}

// splitFrontmatter returns the YAML block between the leading "---" fences
// and the remaining body. Files without a fence are all body.
func splitFrontmatter(data []byte) (fm, body []byte, err error) {
	trimmed := bytes.TrimLeft(data, "\r\n")
	if !bytes.HasPrefix(trimmed, delimiter) {
		return nil, data, nil
	}
	rest := trimmed[len(delimiter):]
	rest = bytes.TrimPrefix(rest, []byte("\r"))
	if !bytes.HasPrefix(rest, []byte("\n")) {
		return nil, data, nil
	}
	rest = rest[1:]
	idx := bytes.Index(rest, append([]byte("\n"), delimiter...))
	if idx < 0 {
		return nil, nil, fmt.Errorf("unterminated frontmatter")
	}
	fm = rest[:idx]
	body = rest[idx+1+len(delimiter):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	return fm, body, nil
}

// LoadProjects reads the portfolio YAML file. A missing file yields an empty
// portfolio.
func LoadProjects(path string) ([]Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var projects []Project
	if err := yaml.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return projects, nil
}

// slugify mirrors the engine's slug rule: lowercase, runs of
// non-alphanumerics collapsed to single hyphens.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
