package inkcms

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// pathPage reads the :page route parameter. Absent means page 1;
// anything non-numeric is rejected as an invalid page.
func pathPage(c echo.Context) (int, error) {
	raw := c.Param("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPage, raw)
	}
	return page, nil
}

// renderListing runs one listing request end to end: page size from the
// site parameters, dispatch, context assembly, render.
func (a *App) renderListing(c echo.Context, f Filter, urlPrefix string, page int) error {
	params, err := a.Store.Parameters()
	if err != nil {
		return err
	}
	result, err := a.Listing.List(f, page, intParameter(params, ParamPostsPerPage))
	if err != nil {
		return err
	}
	ctx, err := a.Assembler.Assemble(result, urlPrefix)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Listing(ctx, RequestContextFrom(c)))
}

func (a *App) handleHome(c echo.Context) error {
	page, err := pathPage(c)
	if err != nil {
		return err
	}
	return a.renderListing(c, Filter{Kind: FilterNone}, "/", page)
}

func (a *App) handleArchive(c echo.Context) error {
	// The year segment is a catch-all route parameter, so stray paths
	// like /favicon.ico land here. Non-numeric years are a 404, not a
	// malformed date.
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return echo.ErrNotFound
	}
	month, day := 0, 0
	if raw := c.Param("month"); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil {
			return fmt.Errorf("%w: month %q", ErrInvalidDateComponents, raw)
		}
	}
	if raw := c.Param("day"); raw != "" {
		if day, err = strconv.Atoi(raw); err != nil {
			return fmt.Errorf("%w: day %q", ErrInvalidDateComponents, raw)
		}
	}
	page, err := pathPage(c)
	if err != nil {
		return err
	}
	tr, err := ResolveTimeRange(year, month, day)
	if err != nil {
		return err
	}
	return a.renderListing(c, Filter{Kind: FilterDateRange, Range: tr}, tr.PathPrefix, page)
}

func (a *App) handleTag(c echo.Context) error {
	ref := c.Param("ref")
	page, err := pathPage(c)
	if err != nil {
		return err
	}
	tag, err := a.Listing.ResolveTag(ref)
	if err != nil {
		return err
	}
	return a.renderListing(c, Filter{Kind: FilterTag, Ref: ref}, TagPath(tag), page)
}

func (a *App) handleCategory(c echo.Context) error {
	ref := c.Param("ref")
	page, err := pathPage(c)
	if err != nil {
		return err
	}
	category, err := a.Listing.ResolveCategory(ref)
	if err != nil {
		return err
	}
	return a.renderListing(c, Filter{Kind: FilterCategory, Ref: ref}, CategoryPath(category), page)
}

func (a *App) handleSearch(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		var err error
		if page, err = strconv.Atoi(raw); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidPage, raw)
		}
	}
	params, err := a.Store.Parameters()
	if err != nil {
		return err
	}
	pageSize := intParameter(params, ParamPostsPerPage)

	var result PageResult
	if query == "" {
		result = newPageResult(nil, 1, pageSize, 0)
	} else {
		result, err = a.Listing.List(Filter{Kind: FilterQuery, Query: query}, page, pageSize)
		if err != nil {
			return err
		}
	}
	ctx, err := a.Assembler.Assemble(result, "/search")
	if err != nil {
		return err
	}
	return Render(c, a.Views.Listing(ctx, RequestContextFrom(c)))
}

func (a *App) handlePost(c echo.Context) error {
	item, err := a.Store.ContentByRef(c.Param("ref"))
	if err != nil {
		return err
	}
	comments, err := a.Store.CommentsFor(item.ID)
	if err != nil {
		return err
	}
	ctx, err := a.Assembler.AssemblePost(item, comments)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(ctx, RequestContextFrom(c)))
}

func (a *App) handleAddComment(c echo.Context) error {
	item, err := a.Store.ContentByRef(c.Param("ref"))
	if err != nil {
		return err
	}
	body := strings.TrimSpace(c.FormValue("body"))
	name := strings.TrimSpace(c.FormValue("name"))
	if body == "" || name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and body are required")
	}
	cm, err := a.Store.AddComment(item.ID, Comment{
		Body:  body,
		Name:  name,
		Email: strings.TrimSpace(c.FormValue("email")),
		Site:  strings.TrimSpace(c.FormValue("site")),
	})
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, CommentPath(cm))
}

func (a *App) handleSitemap(c echo.Context) error {
	items, err := a.Store.AllPublished()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, items)
}

func (a *App) handleContentFeed(c echo.Context) error {
	feed, err := a.Feeds.LatestContent()
	if err != nil {
		return err
	}
	return renderAtom(c, feed)
}

func (a *App) handleCommentsFeed(c echo.Context) error {
	feed, err := a.Feeds.LatestComments()
	if err != nil {
		return err
	}
	return renderAtom(c, feed)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	case errors.Is(err, ErrInvalidPage),
		errors.Is(err, ErrInvalidDateComponents),
		errors.Is(err, ErrInvalidFilterField):
		_ = c.String(http.StatusBadRequest, err.Error())
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
