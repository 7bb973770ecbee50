package folio

import "time"

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (default "Folio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/site.db")

	ContentDir   string // Markdown article directory (default "content/posts")
	ProjectsFile string // Portfolio YAML file (default "content/projects.yaml")
	WatchContent bool   // Re-sync articles when files change

	// ThumbnailAsset points at a pre-rendered gradient image used as the card
	// background. Empty means the background gradient is synthesized.
	ThumbnailAsset string

	AnalyticsEnabled      bool   // Record page views (default off)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")
	AnalyticsRetainDays   int    // Days of view data to keep (default 365)

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Folio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/posts"
	}
	if c.ProjectsFile == "" {
		c.ProjectsFile = "content/projects.yaml"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.AnalyticsRetainDays == 0 {
		c.AnalyticsRetainDays = 365
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default
// "public"). Generated thumbnails are written to its "thumbnails" subdir.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
