package inkcms

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequestContext carries the request attributes needed to build
// absolute URLs and to preserve query strings across pagination links.
// It is passed explicitly into whatever needs it instead of being read
// from ambient per-request state.
type RequestContext struct {
	Scheme      string
	Host        string
	QueryString string
}

// RequestContextFrom extracts a RequestContext from an echo request.
func RequestContextFrom(c echo.Context) RequestContext {
	return RequestContext{
		Scheme:      c.Scheme(),
		Host:        c.Request().Host,
		QueryString: c.Request().URL.RawQuery,
	}
}

// ContentPath returns the canonical path of a content item: the slug
// when present, the numeric id otherwise.
func ContentPath(item ContentItem) string {
	if item.Slug != "" {
		return "/post/" + item.Slug
	}
	return fmt.Sprintf("/post/%d", item.ID)
}

// TagPath returns the canonical listing path for a tag.
func TagPath(t Tag) string {
	if t.Slug != "" {
		return "/tag/" + t.Slug
	}
	return fmt.Sprintf("/tag/%d", t.ID)
}

// CategoryPath returns the canonical listing path for a category.
func CategoryPath(cat Category) string {
	if cat.Slug != "" {
		return "/category/" + cat.Slug
	}
	return fmt.Sprintf("/category/%d", cat.ID)
}

// CommentPath returns the path of a comment: its post's page anchored
// at the comment.
func CommentPath(cm Comment) string {
	if cm.ContentSlug != "" {
		return fmt.Sprintf("/post/%s#comment-%d", cm.ContentSlug, cm.ID)
	}
	return fmt.Sprintf("/post/%d#comment-%d", cm.ContentID, cm.ID)
}

// OlderPagePath returns the path of the next (older) listing page, or
// the prefix itself when already on the last page. The incoming query
// string is preserved so search pagination keeps its query.
func OlderPagePath(urlPrefix string, page PageResult, rc RequestContext) string {
	prefix := ensureTrailingSlash(urlPrefix)
	if page.IsLast() {
		return prefix
	}
	return withQuery(fmt.Sprintf("%spage/%d", prefix, page.PageNumber+1), rc)
}

// NewerPagePath returns the path of the previous (newer) listing page.
// Page 2 links back to the bare prefix rather than to /page/1.
func NewerPagePath(urlPrefix string, page PageResult, rc RequestContext) string {
	prefix := ensureTrailingSlash(urlPrefix)
	if page.IsFirst() || page.PageNumber == 2 {
		return withQuery(prefix, rc)
	}
	return withQuery(fmt.Sprintf("%spage/%d", prefix, page.PageNumber-1), rc)
}

// AbsoluteURL joins a path onto the configured site URL, falling back
// to the scheme and host of the current request when no site URL is
// configured.
func AbsoluteURL(siteURL string, rc RequestContext, path string) string {
	base := strings.TrimRight(siteURL, "/")
	if base == "" {
		base = rc.Scheme + "://" + rc.Host
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func ensureTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}

func withQuery(path string, rc RequestContext) string {
	if rc.QueryString == "" {
		return path
	}
	return path + "?" + rc.QueryString
}
