package folio

import "testing"

func TestSitemapEntries(t *testing.T) {
	a := &App{Config: SiteConfig{URL: "https://example.com"}}
	posts := []BlogPost{
		{Slug: "newer", Date: "2025-02-01"},
		{Slug: "older", Date: "2025-01-01"},
	}

	urls := a.sitemapEntries(posts)
	if len(urls) != 4 {
		t.Fatalf("got %d urls, want 4", len(urls))
	}
	if urls[0].Loc != "https://example.com" {
		t.Errorf("urls[0] = %q, want home", urls[0].Loc)
	}
	if urls[1].Loc != "https://example.com/projects/" {
		t.Errorf("urls[1] = %q, want projects", urls[1].Loc)
	}
	if urls[2].Loc != "https://example.com/blog/newer/" || urls[2].LastMod != "2025-02-01" {
		t.Errorf("urls[2] = %+v", urls[2])
	}
	if urls[3].Loc != "https://example.com/blog/older/" || urls[3].LastMod != "2025-01-01" {
		t.Errorf("urls[3] = %+v", urls[3])
	}
}
