package folio

import "testing"

func TestFeedItems(t *testing.T) {
	a := &App{Config: SiteConfig{URL: "https://example.com"}}
	posts := []BlogPost{
		{
			Slug:      "with-card",
			Title:     "With Card",
			Date:      "2025-02-01",
			Summary:   "Has a thumbnail",
			Tags:      []string{"go", "web"},
			Thumbnail: "/public/thumbnails/with_card.png",
		},
		{
			Slug:  "plain",
			Title: "Plain",
			Date:  "2025-01-01",
		},
	}

	items := a.feedItems(posts)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.Link != "https://example.com/blog/with-card/" || first.GUID != first.Link {
		t.Errorf("link/guid = %q / %q", first.Link, first.GUID)
	}
	if first.PubDate != "Sat, 01 Feb 2025 00:00:00 +0000" {
		t.Errorf("pubDate = %q", first.PubDate)
	}
	if len(first.Categories) != 2 || first.Categories[0] != "go" {
		t.Errorf("categories = %v", first.Categories)
	}
	if first.Enclosure == nil {
		t.Fatal("post with a thumbnail should carry an enclosure")
	}
	if first.Enclosure.URL != "https://example.com/public/thumbnails/with_card.png" {
		t.Errorf("enclosure url = %q", first.Enclosure.URL)
	}
	if first.Enclosure.Type != "image/png" {
		t.Errorf("enclosure type = %q", first.Enclosure.Type)
	}

	if items[1].Enclosure != nil {
		t.Error("post without a thumbnail should have no enclosure")
	}
}

func TestFeedItemsBadDate(t *testing.T) {
	a := &App{Config: SiteConfig{URL: "https://example.com"}}
	items := a.feedItems([]BlogPost{{Slug: "x", Title: "X", Date: "not-a-date"}})
	if items[0].PubDate != "" {
		t.Errorf("unparseable date should yield empty pubDate, got %q", items[0].PubDate)
	}
}
