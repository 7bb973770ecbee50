package folio

// BlogPost is the core content type: synced from markdown article files or
// created in the admin dashboard, stored in SQLite, rendered by templates.
type BlogPost struct {
	Title     string
	Date      string
	Tags      []string
	Summary   string
	Link      string
	Slug      string
	Content   string
	Thumbnail string // public path of the generated social card, may be empty
	Published bool
}

// Project is a portfolio entry loaded from projects.yaml.
type Project struct {
	Name  string
	Blurb string
	Link  string
	Tags  []string
	Year  int
}

// Image is metadata for an uploaded content image.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>
// template. Image is the og:image URL, typically the post's thumbnail.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
}
