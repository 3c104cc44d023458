// Package web serves the browser client: the login and dashboard pages and
// their embedded assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/healthtracker/backend/internal/middleware"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}

// RegisterRoutes serves the pages and static assets. Pages other than
// /login need a valid session.
func RegisterRoutes(router *gin.Engine, validator middleware.TokenValidator, cookieName string) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}
	router.StaticFS("/static", http.FS(static))

	router.GET("/", func(c *gin.Context) {
		if _, ok := middleware.SessionClaims(c, validator, cookieName); ok {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		c.Redirect(http.StatusFound, "/login")
	})

	router.GET("/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", nil)
	})

	router.GET("/dashboard", middleware.PageAuthMiddleware(validator, cookieName), func(c *gin.Context) {
		c.HTML(http.StatusOK, "dashboard.html", gin.H{
			"Username": c.GetString(middleware.ContextUsername),
		})
	})
	return nil
}
