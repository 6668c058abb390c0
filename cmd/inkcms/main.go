package main

import (
	"context"
	"fmt"
	"html"
	"io"
	"log"
	"os"

	"github.com/a-h/templ"
	"github.com/jessevdk/go-flags"

	"github.com/eringen/inkcms"
)

type options struct {
	Config       string `short:"c" long:"config" description:"Path to YAML config file"`
	Addr         string `short:"a" long:"addr" description:"Listen address"`
	DatabasePath string `short:"d" long:"database" description:"SQLite database path"`
	IndexPath    string `short:"i" long:"index" description:"Search index path (empty = in-memory)"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	var cfg inkcms.SiteConfig
	if opts.Config != "" {
		var err error
		if cfg, err = inkcms.LoadConfigFile(opts.Config); err != nil {
			log.Fatal(err)
		}
	}
	if opts.Addr != "" {
		cfg.Addr = opts.Addr
	}
	if opts.DatabasePath != "" {
		cfg.DatabasePath = opts.DatabasePath
	}
	if opts.IndexPath != "" {
		cfg.IndexPath = opts.IndexPath
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = inkcms.MustEnv("INKCMS_ADMIN_PASSWORD")
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = inkcms.MustEnv("INKCMS_SESSION_SECRET")
	}

	app := inkcms.New(cfg, defaultViews())
	defer app.Close()
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// defaultViews returns a plain HTML rendition of every page, so the
// binary works without user templates. Real sites pass their own templ
// components to inkcms.New.
func defaultViews() inkcms.ViewFuncs {
	return inkcms.ViewFuncs{
		Listing: func(ctx inkcms.ListingContext, rc inkcms.RequestContext) templ.Component {
			return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
				fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s</title></head><body>",
					html.EscapeString(ctx.Params[inkcms.ParamTitle]))
				fmt.Fprintf(w, "<h1>%s</h1><p>%s</p>",
					html.EscapeString(ctx.Params[inkcms.ParamTitle]),
					html.EscapeString(ctx.Params[inkcms.ParamSubtitle]))
				for _, item := range ctx.Posts.Items {
					fmt.Fprintf(w, `<article><h2><a href="%s">%s</a></h2></article>`,
						inkcms.ContentPath(item), html.EscapeString(item.Title))
				}
				if !ctx.Posts.IsFirst() {
					fmt.Fprintf(w, `<a href="%s">Newer</a> `, inkcms.NewerPagePath(ctx.URLPrefix, ctx.Posts, rc))
				}
				if !ctx.Posts.IsLast() {
					fmt.Fprintf(w, `<a href="%s">Older</a>`, inkcms.OlderPagePath(ctx.URLPrefix, ctx.Posts, rc))
				}
				_, err := fmt.Fprint(w, "</body></html>")
				return err
			})
		},
		Post: func(ctx inkcms.PostContext, _ inkcms.RequestContext) templ.Component {
			return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
				fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s</title></head><body>",
					html.EscapeString(ctx.Post.Title))
				fmt.Fprintf(w, "<article><h1>%s</h1><div>%s</div></article>",
					html.EscapeString(ctx.Post.Title), html.EscapeString(ctx.Post.Body))
				for _, cm := range ctx.Comments {
					fmt.Fprintf(w, `<div id="comment-%d"><strong>%s</strong><p>%s</p></div>`,
						cm.ID, html.EscapeString(cm.Name), html.EscapeString(cm.Body))
				}
				_, err := fmt.Fprint(w, "</body></html>")
				return err
			})
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
				fmt.Fprint(w, "<!DOCTYPE html><html><body>")
				if showError {
					fmt.Fprint(w, "<p>Login failed.</p>")
				}
				fmt.Fprintf(w, `<form method="post" action="/admin/login/">`+
					`<input type="hidden" name="_csrf" value="%s">`+
					`<input type="password" name="password">`+
					`<button type="submit">Log in</button></form></body></html>`, csrfToken)
				return nil
			})
		},
		AdminDashboard: func(stats inkcms.DashboardStats, csrfToken string) templ.Component {
			return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
				_, err := fmt.Fprintf(w, "<!DOCTYPE html><html><body><h1>Dashboard</h1>"+
					"<p>%d posts, %d pages, %d comments</p>"+
					`<form method="post" action="/admin/logout/">`+
					`<input type="hidden" name="_csrf" value="%s">`+
					`<button type="submit">Log out</button></form></body></html>`,
					stats.Posts, stats.Pages, stats.Comments, csrfToken)
				return err
			})
		},
		NotFound: func() templ.Component {
			return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
				_, err := fmt.Fprint(w, "<!DOCTYPE html><html><body><h1>Not Found</h1></body></html>")
				return err
			})
		},
		ServerError: func() templ.Component {
			return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
				_, err := fmt.Fprint(w, "<!DOCTYPE html><html><body><h1>Something went wrong</h1></body></html>")
				return err
			})
		},
	}
}
