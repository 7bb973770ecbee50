// Package folio is a personal blog and portfolio engine built with Go, Echo,
// and templ. It serves a markdown-backed blog index, portfolio page, RSS,
// sitemap, and an admin dashboard, and generates social-sharing thumbnail
// cards for every post.
//
// Users provide their own templ components via the ViewFuncs struct (the
// views package ships a default set), and folio handles the handler logic,
// middleware, content sync, and database operations.
package folio

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eteber/folio/analytics"
	"github.com/eteber/folio/content"
	"github.com/eteber/folio/thumbnail"
)

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets users
// own and customize all templates.
type ViewFuncs struct {
	Home             func(posts []BlogPost, activeTag string, tags []string) templ.Component
	HomePartial      func(posts []BlogPost, activeTag string, tags []string) templ.Component
	BlogSection      func(posts []BlogPost, activeTag string, tags []string) templ.Component
	Post             func(post BlogPost, posts []BlogPost) templ.Component
	PostPartial      func(post BlogPost, posts []BlogPost) templ.Component
	Projects         func(projects []Project) templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(posts []BlogPost, message string, csrfToken string) templ.Component
	AdminFormPartial func(post BlogPost, csrfToken string) templ.Component
	AdminImages      func(images []Image, csrfToken string) templ.Component
	AdminStats       func(totals []analytics.DayCount, top []analytics.PathCount) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// App is the central folio application. It wires together the store, cache,
// content sync, thumbnail renderer, handlers, middleware, and user-provided
// templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs
	Thumbs *thumbnail.Renderer

	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
	stopWatch      func()
	stopCleanup    func()

	projectsMu sync.RWMutex
	projects   []Project
}

// New creates a new folio App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Bootstrap opens the store and prepares the cache and thumbnail renderer.
// Start calls it; tools that only sync content call it directly.
func (a *App) Bootstrap() error {
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	thumbs, err := newThumbnailRenderer(a.staticDir, a.Config.ThumbnailAsset)
	if err != nil {
		return fmt.Errorf("folio: init thumbnails: %w", err)
	}
	a.Thumbs = thumbs
	return nil
}

// Start initializes the database, cache, thumbnail renderer, content sync,
// middleware, and routes, then starts the server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("folio: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}

	if err := a.Bootstrap(); err != nil {
		return err
	}

	if err := a.SyncContent(); err != nil {
		return fmt.Errorf("folio: sync content: %w", err)
	}
	if a.Config.WatchContent {
		stop, err := content.Watch(a.Config.ContentDir, func() {
			if err := a.SyncContent(); err != nil {
				log.Printf("folio: content re-sync: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("folio: watch content: %w", err)
		}
		a.stopWatch = stop
	}

	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("folio: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		a.stopCleanup = analyticsStore.StartCleanupScheduler(a.Config.AnalyticsRetainDays, 24*time.Hour)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// newThumbnailRenderer writes cards under <staticDir>/thumbnails, served as
// /public/thumbnails. An asset path switches the background from the
// synthesized gradient to the pre-rendered image.
func newThumbnailRenderer(staticDir, asset string) (*thumbnail.Renderer, error) {
	var bg thumbnail.Background
	if asset != "" {
		bg = thumbnail.ImageFill{Path: asset}
	}
	return thumbnail.NewRenderer(filepath.Join(staticDir, "thumbnails"), "/public/thumbnails", bg)
}

// SyncContent loads markdown articles and the portfolio file from disk,
// upserts posts into the store, renders missing-or-stale thumbnails, and
// invalidates the post cache. Posts created through the admin dashboard are
// left untouched.
func (a *App) SyncContent() error {
	articles, err := content.LoadDir(a.Config.ContentDir)
	if err != nil {
		return err
	}
	for _, art := range articles {
		post := BlogPost{
			Slug:      art.Slug,
			Title:     art.Title,
			Date:      art.Date,
			Tags:      art.Tags,
			Summary:   art.Summary,
			Content:   art.Body,
			Published: !art.Draft,
		}
		// A thumbnail render failure should not block publishing; the page
		// simply omits the card.
		if p, err := a.Thumbs.Render(art.Title); err != nil {
			log.Printf("folio: thumbnail for %q: %v", art.Slug, err)
		} else {
			post.Thumbnail = p
		}
		if err := a.Store.SavePost(post); err != nil {
			return fmt.Errorf("save %s: %w", art.Slug, err)
		}
	}

	projects, err := content.LoadProjects(a.Config.ProjectsFile)
	if err != nil {
		return err
	}
	converted := make([]Project, len(projects))
	for i, p := range projects {
		converted[i] = Project{
			Name:  p.Name,
			Blurb: p.Blurb,
			Link:  p.Link,
			Tags:  p.Tags,
			Year:  p.Year,
		}
	}
	a.projectsMu.Lock()
	a.projects = converted
	a.projectsMu.Unlock()

	if a.Cache != nil {
		a.Cache.Invalidate()
	}
	return nil
}

// ListProjects returns the portfolio entries loaded from projects.yaml.
func (a *App) ListProjects() []Project {
	a.projectsMu.RLock()
	defer a.projectsMu.RUnlock()
	return a.projects
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/projects/", a.handleProjects)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)

	if a.analyticsStore != nil {
		e.GET("/admin/stats/", a.handleAdminStats)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		a.Store.Close()
	}
	if a.analyticsStore != nil {
		a.analyticsStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits
// if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("folio: required environment variable %s is not set", key)
	}
	return v
}
