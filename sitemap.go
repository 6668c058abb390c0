package inkcms

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, items []ContentItem) error {
	rc := RequestContextFrom(c)
	params, err := a.Store.Parameters()
	if err != nil {
		return err
	}
	siteURL := params[ParamSiteURL]

	urls := []sitemapURL{
		{Loc: AbsoluteURL(siteURL, rc, "/")},
	}
	for _, item := range items {
		urls = append(urls, sitemapURL{
			Loc:     AbsoluteURL(siteURL, rc, ContentPath(item)),
			LastMod: item.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
