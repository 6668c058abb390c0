// Package inkcms is a content listing and publishing engine built with
// Go, Echo, and templ. It provides filtered and paginated listings,
// full-text search, Atom feeds, a sitemap, and a grid-driven back
// office out of the box.
//
// Users provide their own templ components via the ViewFuncs struct;
// inkcms owns the handler logic, middleware, storage, and search index.
package inkcms

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds user-provided templ components that the engine calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Listing        func(ctx ListingContext, rc RequestContext) templ.Component
	Post           func(ctx PostContext, rc RequestContext) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(stats DashboardStats, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central inkcms application. It wires together the store,
// search index, listing engine, feeds, handlers, middleware, and
// user-provided templates.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Store     *Store
	Index     *Index
	Listing   *Listing
	Assembler *Assembler
	Feeds     *FeedSynthesizer
	Views     ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates an inkcms App with the given configuration and view functions.
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

// Start initializes the database, search index, middleware, and routes,
// then starts the server. The index is rebuilt from the store on every
// start so it always reflects current content.
func (a *App) Start() error {
	if err := a.Config.validate(); err != nil {
		return err
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("inkcms: init store: %w", err)
	}
	a.Store = store

	index, err := OpenIndex(a.Config.IndexPath)
	if err != nil {
		return fmt.Errorf("inkcms: init index: %w", err)
	}
	a.Index = index

	published, err := store.AllPublished()
	if err != nil {
		return fmt.Errorf("inkcms: load content: %w", err)
	}
	if err := index.Rebuild(published); err != nil {
		return fmt.Errorf("inkcms: rebuild index: %w", err)
	}

	a.Listing = NewListing(store, index)
	a.Assembler = NewAssembler(store)
	a.Feeds = NewFeedSynthesizer(a.Listing, store)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

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

func (a *App) setupRoutes() {
	e := a.Echo

	// Static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Machine-readable surfaces
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed", a.handleContentFeed)
	e.GET("/comments/feed", a.handleCommentsFeed)

	// Public listings and content
	e.GET("/", a.handleHome)
	e.GET("/page/:page", a.handleHome)
	e.GET("/search", a.handleSearch)
	e.GET("/tag/:ref", a.handleTag)
	e.GET("/tag/:ref/page/:page", a.handleTag)
	e.GET("/category/:ref", a.handleCategory)
	e.GET("/category/:ref/page/:page", a.handleCategory)
	e.GET("/post/:ref", a.handlePost)
	e.POST("/post/:ref/comments", a.handleAddComment)

	// Date archives. Registered last in source order for clarity; the
	// router still gives static segments priority, so /tag and friends
	// never land here.
	e.GET("/:year", a.handleArchive)
	e.GET("/:year/page/:page", a.handleArchive)
	e.GET("/:year/:month", a.handleArchive)
	e.GET("/:year/:month/page/:page", a.handleArchive)
	e.GET("/:year/:month/:day", a.handleArchive)
	e.GET("/:year/:month/:day/page/:page", a.handleArchive)

	// Back office
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)

	grid := e.Group("/admin/grid", adminOnly)
	grid.POST("/posts", a.handleContentGrid(KindPost))
	grid.POST("/pages", a.handleContentGrid(KindPage))
	grid.POST("/tags", a.handleTagGrid)
	grid.POST("/categories", a.handleCategoryGrid)
	grid.POST("/comments", a.handleCommentGrid)

	e.POST("/admin/content/save", a.handleContentSave, adminOnly)
	e.DELETE("/admin/content/:id", a.handleContentDelete, adminOnly)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Index != nil {
		a.Index.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("inkcms: required environment variable %s is not set", key)
	}
	return v
}
