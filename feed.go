package inkcms

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Feed is a syndication feed ready for Atom rendering. Metadata comes
// from the site parameters, never from compiled-in strings.
type Feed struct {
	Title    string
	Subtitle string
	Link     string
	Entries  []FeedEntry
}

// FeedEntry is one syndicated item. Published is nil for comments,
// which have no publish step.
type FeedEntry struct {
	Title     string
	Link      string
	Summary   string
	Created   time.Time
	Updated   time.Time
	Published *time.Time
}

// FeedSource provides the data the synthesizer needs besides the
// listing engine itself.
type FeedSource interface {
	LatestComments(limit int) ([]Comment, error)
	Parameters() (map[string]string, error)
}

// FeedSynthesizer projects the newest published content and comments
// into syndication feeds. An empty result set yields a feed with zero
// entries, not an error.
type FeedSynthesizer struct {
	listing *Listing
	source  FeedSource
}

// NewFeedSynthesizer creates a FeedSynthesizer over the given
// collaborators.
func NewFeedSynthesizer(listing *Listing, source FeedSource) *FeedSynthesizer {
	return &FeedSynthesizer{listing: listing, source: source}
}

// LatestContent returns a feed with the newest published posts, newest
// first, at most one configured page worth of entries.
func (s *FeedSynthesizer) LatestContent() (Feed, error) {
	params, err := s.source.Parameters()
	if err != nil {
		return Feed{}, err
	}
	pageSize := intParameter(params, ParamPostsPerPage)
	page, err := s.listing.List(Filter{Kind: FilterNone}, 1, pageSize)
	if err != nil {
		return Feed{}, err
	}

	entries := make([]FeedEntry, 0, len(page.Items))
	for _, item := range page.Items {
		entries = append(entries, FeedEntry{
			Title:     item.Title,
			Link:      feedLink(params, ContentPath(item)),
			Summary:   item.Body,
			Created:   item.CreatedAt,
			Updated:   item.UpdatedAt,
			Published: item.PublishedAt,
		})
	}
	return s.newFeed(params, entries), nil
}

// LatestComments returns a feed with the newest comments on published
// posts.
func (s *FeedSynthesizer) LatestComments() (Feed, error) {
	params, err := s.source.Parameters()
	if err != nil {
		return Feed{}, err
	}
	comments, err := s.source.LatestComments(intParameter(params, ParamPostsPerPage))
	if err != nil {
		return Feed{}, err
	}

	entries := make([]FeedEntry, 0, len(comments))
	for _, cm := range comments {
		entries = append(entries, FeedEntry{
			Title:   "Comment",
			Link:    feedLink(params, CommentPath(cm)),
			Summary: cm.Body,
			Created: cm.CreatedAt,
			Updated: cm.UpdatedAt,
		})
	}
	return s.newFeed(params, entries), nil
}

func (s *FeedSynthesizer) newFeed(params map[string]string, entries []FeedEntry) Feed {
	return Feed{
		Title:    params[ParamTitle],
		Subtitle: params[ParamSubtitle],
		Link:     feedLink(params, "/"),
		Entries:  entries,
	}
}

// feedLink absolutizes a path against the configured site URL, or
// leaves it relative when none is configured.
func feedLink(params map[string]string, path string) string {
	if siteURL := params[ParamSiteURL]; siteURL != "" {
		return AbsoluteURL(siteURL, RequestContext{}, path)
	}
	return path
}

type atomFeed struct {
	XMLName  xml.Name    `xml:"feed"`
	XMLNS    string      `xml:"xmlns,attr"`
	Title    string      `xml:"title"`
	Subtitle *atomText   `xml:"subtitle,omitempty"`
	ID       string      `xml:"id"`
	Updated  string      `xml:"updated"`
	Links    []atomLink  `xml:"link"`
	Entries  []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	ID        string     `xml:"id"`
	Links     []atomLink `xml:"link"`
	Summary   *atomText  `xml:"summary,omitempty"`
	Published string     `xml:"published,omitempty"`
	Updated   string     `xml:"updated"`
}

type atomText struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr,omitempty"`
	Href string `xml:"href,attr"`
}

// renderAtom writes a Feed as an Atom 1.0 document.
func renderAtom(c echo.Context, feed Feed) error {
	updated := time.Now().UTC()
	if len(feed.Entries) > 0 {
		updated = feed.Entries[0].Updated.UTC()
	}

	doc := atomFeed{
		XMLNS:   "http://www.w3.org/2005/Atom",
		Title:   feed.Title,
		ID:      feed.Link,
		Updated: updated.Format(time.RFC3339),
		Links:   []atomLink{{Rel: "alternate", Href: feed.Link}},
	}
	if feed.Subtitle != "" {
		doc.Subtitle = &atomText{Type: "text", Value: feed.Subtitle}
	}
	for _, e := range feed.Entries {
		entry := atomEntry{
			Title:   e.Title,
			ID:      e.Link,
			Links:   []atomLink{{Rel: "alternate", Href: e.Link}},
			Updated: e.Updated.UTC().Format(time.RFC3339),
		}
		if e.Summary != "" {
			entry.Summary = &atomText{Type: "text", Value: e.Summary}
		}
		if e.Published != nil {
			entry.Published = e.Published.UTC().Format(time.RFC3339)
		}
		doc.Entries = append(doc.Entries, entry)
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/atom+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(doc)
}
