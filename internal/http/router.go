// Package http contains the web boundary of the entry board: the gin
// router, form parsing, session/flash plumbing and CSRF protection. All
// domain validation happens in the sozluk package; this layer only maps
// outcomes and validation failures to redirects, flashes and status codes.
package http

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eren/sozluk/internal/sozluk"
	"github.com/eren/sozluk/internal/storage"
)

// Link prefixes used when rendering entry references into anchors.
const (
	topicLinkPrefix  = "/topic/"
	entryLinkPrefix  = "/entry/"
	authorLinkPrefix = "/author/"
)

// RouterConfig receives all router dependencies, keeping NewRouter testable.
type RouterConfig struct {
	Store          storage.Sozluk
	SessionManager *SessionManager
	CSRFSecret     []byte
	SecureCookies  bool
	TemplatesPath  string
	StaticPath     string
	Timezone       time.Duration
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CSRF must run before the session middleware so the session context is
	// layered on top of the CSRF request context.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	funcMap := template.FuncMap{
		"renderEntry": func(text sozluk.EntryText) template.HTML {
			return template.HTML(text.Render(topicLinkPrefix, entryLinkPrefix, authorLinkPrefix))
		},
		"localTime": func(e sozluk.Entry) string {
			return e.Time(cfg.Timezone).Format("02.01.2006 15:04")
		},
	}

	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)
	router.Static("/static", cfg.StaticPath)

	controller := NewController(cfg.Store, cfg.SessionManager, cfg.Timezone)

	router.GET("/", controller.Index)
	router.POST("/add_entry", controller.AddEntry)
	router.POST("/del_entry", controller.DelEntry)
	router.GET("/entry/:id", controller.Entry)
	router.GET("/topic/:name", controller.Topic)
	router.GET("/author/:name", controller.Author)
	router.GET("/search", controller.Search)
	router.POST("/theme", controller.SetTheme)
	router.NoRoute(controller.NotFound)

	return router
}
