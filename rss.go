package folio

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description"`
	PubDate     string        `xml:"pubDate"`
	GUID        string        `xml:"guid"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
	Categories  []string      `xml:"category,omitempty"`
}

// rssEnclosure carries the post's generated thumbnail card so feed readers
// can show it. Length 0 means unknown, which readers accept for images.
type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int    `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

// feedItems maps posts to RSS items: permalink GUIDs, RFC1123Z dates, tags as
// categories, and the thumbnail card attached as an image enclosure.
func (a *App) feedItems(posts []BlogPost) []rssItem {
	base := a.Config.URL
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if t, err := time.Parse("2006-01-02", p.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := BuildURL(base, "blog", p.Slug)
		item := rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Summary,
			PubDate:     pubDate,
			GUID:        postURL,
			Categories:  p.Tags,
		}
		if p.Thumbnail != "" {
			item.Enclosure = &rssEnclosure{
				URL:  base + p.Thumbnail,
				Type: "image/png",
			}
		}
		items = append(items, item)
	}
	return items
}

func (a *App) renderRSS(c echo.Context, posts []BlogPost) error {
	items := a.feedItems(posts)
	lastBuild := ""
	if len(items) > 0 {
		lastBuild = items[0].PubDate
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:         a.Config.Name,
			Link:          a.Config.URL,
			Description:   a.Config.Description,
			LastBuildDate: lastBuild,
			Items:         items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
