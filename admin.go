package inkcms

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// Sortable-field allowlists per grid entity. The request names a JSON
// field; the value is the column the ORDER BY clause may use. Anything
// outside the map is rejected before it reaches SQL.
var (
	contentSortable = map[string]string{
		"id":          "id",
		"title":       "title",
		"status":      "status",
		"slug":        "slug",
		"author":      "author",
		"createdAt":   "created_at",
		"updatedAt":   "updated_at",
		"publishedAt": "published_at",
	}
	tagSortable = map[string]string{
		"id":   "id",
		"name": "name",
		"slug": "slug",
	}
	categorySortable = map[string]string{
		"id":   "id",
		"name": "name",
		"slug": "slug",
	}
	commentSortable = map[string]string{
		"id":        "c.id",
		"name":      "c.name",
		"email":     "c.email",
		"createdAt": "c.created_at",
		"updatedAt": "c.updated_at",
	}
)

// DashboardStats summarizes the back office landing page.
type DashboardStats struct {
	Posts    int
	Pages    int
	Comments int
}

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	stats, err := a.dashboardStats()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(stats, CsrfToken(c)))
}

func (a *App) dashboardStats() (DashboardStats, error) {
	posts, err := a.Store.ContentCount(KindPost)
	if err != nil {
		return DashboardStats{}, err
	}
	pages, err := a.Store.ContentCount(KindPage)
	if err != nil {
		return DashboardStats{}, err
	}
	comments, err := a.Store.CommentCount()
	if err != nil {
		return DashboardStats{}, err
	}
	return DashboardStats{Posts: posts, Pages: pages, Comments: comments}, nil
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// gridRequest binds and normalizes one grid request body against the
// entity's sortable allowlist.
func gridRequest(c echo.Context, sortable map[string]string) (GridRequest, GridPage, error) {
	var req GridRequest
	if err := c.Bind(&req); err != nil {
		return GridRequest{}, GridPage{}, echo.NewHTTPError(http.StatusBadRequest, "malformed grid request")
	}
	page, err := req.Normalize(sortable)
	if err != nil {
		return GridRequest{}, GridPage{}, err
	}
	return req, page, nil
}

func gridJSON(c echo.Context, draw, total int, data any) error {
	return c.JSON(http.StatusOK, GridResponse{
		Draw:            draw,
		RecordsTotal:    total,
		RecordsFiltered: total,
		Data:            data,
	})
}

func (a *App) handleContentGrid(kind ContentKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, page, err := gridRequest(c, contentSortable)
		if err != nil {
			return err
		}
		result, err := a.Listing.ListGrid(kind, page)
		if err != nil {
			return err
		}
		return gridJSON(c, req.Draw, result.TotalElements, result.Items)
	}
}

func (a *App) handleTagGrid(c echo.Context) error {
	req, page, err := gridRequest(c, tagSortable)
	if err != nil {
		return err
	}
	tags, total, err := a.Store.TagGridWindow(page.Offset(), page.Size, page.Order)
	if err != nil {
		return err
	}
	return gridJSON(c, req.Draw, total, tags)
}

func (a *App) handleCategoryGrid(c echo.Context) error {
	req, page, err := gridRequest(c, categorySortable)
	if err != nil {
		return err
	}
	categories, total, err := a.Store.CategoryGridWindow(page.Offset(), page.Size, page.Order)
	if err != nil {
		return err
	}
	return gridJSON(c, req.Draw, total, categories)
}

func (a *App) handleCommentGrid(c echo.Context) error {
	req, page, err := gridRequest(c, commentSortable)
	if err != nil {
		return err
	}
	comments, total, err := a.Store.CommentGridWindow(page.Offset(), page.Size, page.Order)
	if err != nil {
		return err
	}
	return gridJSON(c, req.Draw, total, comments)
}

func (a *App) handleContentSave(c echo.Context) error {
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	var id int64
	if raw := strings.TrimSpace(c.FormValue("id")); raw != "" {
		var err error
		if id, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "malformed id")
		}
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	kind := ContentKind(c.FormValue("kind"))
	if kind != KindPost && kind != KindPage {
		kind = KindPost
	}
	status := ContentStatus(c.FormValue("status"))
	if status != StatusDraft && status != StatusPublished {
		status = StatusDraft
	}

	tags, err := a.resolveTagRefs(FilterEmpty(strings.Split(c.FormValue("tags"), ",")))
	if err != nil {
		return err
	}
	categories, err := a.resolveCategoryRefs(FilterEmpty(strings.Split(c.FormValue("categories"), ",")))
	if err != nil {
		return err
	}

	saved, err := a.Store.SaveContent(ContentItem{
		ID:         id,
		Kind:       kind,
		Title:      title,
		Body:       c.FormValue("body"),
		Status:     status,
		Slug:       slug,
		Author:     strings.TrimSpace(c.FormValue("author")),
		Tags:       tags,
		Categories: categories,
	})
	if err != nil {
		return err
	}
	if err := a.Index.IndexContent(saved); err != nil {
		c.Logger().Errorf("index content %d: %v", saved.ID, err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) resolveTagRefs(refs []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(refs))
	for _, ref := range refs {
		tag, err := a.Listing.ResolveTag(ref)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (a *App) resolveCategoryRefs(refs []string) ([]Category, error) {
	categories := make([]Category, 0, len(refs))
	for _, ref := range refs {
		category, err := a.Listing.ResolveCategory(ref)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (a *App) handleContentDelete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed id")
	}
	if _, err := a.Store.AnyContentByID(id); err != nil {
		return err
	}
	if err := a.Store.DeleteContent(id); err != nil {
		return err
	}
	if err := a.Index.RemoveContent(id); err != nil {
		c.Logger().Errorf("deindex content %d: %v", id, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// adminOnly guards back-office routes behind the session.
func adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return c.Redirect(http.StatusSeeOther, "/admin/")
		}
		return next(c)
	}
}
