package analytics

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const sessionCookie = "folio_sid"

// Middleware counts successful GET page loads. Static assets, feeds, and the
// admin area are skipped. A random session cookie attributes distinct
// visitors without storing anything identifying.
func Middleware(store *Store, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				return err
			}
			req := c.Request()
			if req.Method != http.MethodGet || !countable(req.URL.Path) {
				return nil
			}
			if c.Response().Status >= 300 {
				return nil
			}
			sid := sessionID(c, secure)
			day := time.Now().UTC().Format("2006-01-02")
			if err := store.Record(day, req.URL.Path, sid); err != nil {
				c.Logger().Errorf("analytics record: %v", err)
			}
			return nil
		}
	}
}

func countable(path string) bool {
	switch {
	case strings.HasPrefix(path, "/public"),
		strings.HasPrefix(path, "/admin"),
		path == "/sitemap.xml",
		path == "/feed.xml",
		path == "/robots.txt",
		path == "/favicon.svg":
		return false
	}
	return true
}

func sessionID(c echo.Context, secure bool) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	sid := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		MaxAge:   60 * 60 * 24,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
	return sid
}
