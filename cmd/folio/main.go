// Command folio runs a personal blog and portfolio site: markdown posts with
// generated social-card thumbnails, a projects page, RSS, sitemap, and an
// admin dashboard.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eteber/folio"
	"github.com/eteber/folio/thumbnail"
	"github.com/eteber/folio/views"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "folio",
		Short: "Personal blog and portfolio engine",
	}
	root.AddCommand(serveCmd(), syncCmd(), thumbCmd(), versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// configFromEnv assembles the site configuration. ADMIN_PASSWORD and
// ADMIN_SESSION_SECRET are only required by serve, so they are read lazily.
func configFromEnv() folio.SiteConfig {
	return folio.SiteConfig{
		Name:                  folio.EnvOr("SITE_NAME", "Folio"),
		URL:                   folio.EnvOr("SITE_URL", "http://localhost:3000"),
		Description:           os.Getenv("SITE_DESCRIPTION"),
		Author:                os.Getenv("SITE_AUTHOR"),
		Addr:                  folio.EnvOr("LISTEN_ADDR", ":3000"),
		DatabasePath:          folio.EnvOr("DATABASE_PATH", "data/site.db"),
		ContentDir:            folio.EnvOr("CONTENT_DIR", "content/posts"),
		ProjectsFile:          folio.EnvOr("PROJECTS_FILE", "content/projects.yaml"),
		WatchContent:          envBool("WATCH_CONTENT"),
		ThumbnailAsset:        os.Getenv("THUMBNAIL_ASSET"),
		AnalyticsEnabled:      envBool("ANALYTICS_ENABLED"),
		AnalyticsDatabasePath: folio.EnvOr("ANALYTICS_DATABASE_PATH", "data/analytics.db"),
		CookieSecure:          envBool("COOKIE_SECURE"),
	}
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Sync content and serve the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromEnv()
			cfg.AdminPassword = folio.MustEnv("ADMIN_PASSWORD")
			cfg.SessionSecret = folio.MustEnv("ADMIN_SESSION_SECRET")

			app := folio.New(cfg, views.New(cfg).Funcs())
			defer app.Close()
			return app.Start()
		},
	}
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync markdown content and thumbnails into the database, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromEnv()
			app := folio.New(cfg, folio.ViewFuncs{})
			if err := app.Bootstrap(); err != nil {
				return err
			}
			defer app.Close()
			if err := app.SyncContent(); err != nil {
				return err
			}
			log.Println("content synced")
			return nil
		},
	}
}

func thumbCmd() *cobra.Command {
	var asset string
	cmd := &cobra.Command{
		Use:   "thumb <title>",
		Short: "Render a thumbnail card for a title and print its public path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var bg thumbnail.Background
			if asset != "" {
				bg = thumbnail.ImageFill{Path: asset}
			}
			r, err := thumbnail.NewRenderer("public/thumbnails", "/public/thumbnails", bg)
			if err != nil {
				return err
			}
			path, err := r.Render(args[0])
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
	cmd.Flags().StringVar(&asset, "asset", "", "background image instead of the default gradient")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the folio version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}
