package inkcms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

func textComponent(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// setupTestApp wires a full App over a temp store and an in-memory
// index, with plain-text views so responses are easy to assert on.
func setupTestApp(t *testing.T) *App {
	t.Helper()
	store := setupTestStore(t)
	index := setupTestIndex(t)

	a := &App{
		Config:    SiteConfig{AdminPassword: "pw", SessionSecret: "secret"},
		Echo:      echo.New(),
		Store:     store,
		Index:     index,
		Listing:   NewListing(store, index),
		staticDir: "public",
		Views: ViewFuncs{
			Listing: func(ctx ListingContext, _ RequestContext) templ.Component {
				titles := make([]string, 0, len(ctx.Posts.Items))
				for _, item := range ctx.Posts.Items {
					titles = append(titles, item.Title)
				}
				return textComponent(fmt.Sprintf("listing %s [%s]", ctx.URLPrefix, strings.Join(titles, ",")))
			},
			Post: func(ctx PostContext, _ RequestContext) templ.Component {
				return textComponent("post " + ctx.Post.Title)
			},
			NotFound:    func() templ.Component { return textComponent("not found") },
			ServerError: func() templ.Component { return textComponent("server error") },
		},
	}
	a.Assembler = NewAssembler(store)
	a.Feeds = NewFeedSynthesizer(a.Listing, store)
	a.Echo.HTTPErrorHandler = a.httpErrorHandler
	return a
}

func doRequest(a *App, method, target string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestArchiveRoutes(t *testing.T) {
	a := setupTestApp(t)
	a.Echo.GET("/:year", a.handleArchive)
	a.Echo.GET("/:year/:month", a.handleArchive)
	a.Echo.GET("/:year/:month/:day", a.handleArchive)

	seedPost(t, a.Store, "march-post", day(10))

	rec := doRequest(a, http.MethodGet, "/2019/03", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "march-post") {
		t.Errorf("body = %q, want the march post listed", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "/2019/03") {
		t.Errorf("body = %q, want the zero-padded prefix", rec.Body.String())
	}

	rec = doRequest(a, http.MethodGet, "/2019/13", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("month 13 status = %d, want 400", rec.Code)
	}

	rec = doRequest(a, http.MethodGet, "/favicon.ico", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("non-numeric year status = %d, want 404", rec.Code)
	}
}

func TestPostRouteAndNotFound(t *testing.T) {
	a := setupTestApp(t)
	a.Echo.GET("/post/:ref", a.handlePost)

	seedPost(t, a.Store, "hello", day(1))

	rec := doRequest(a, http.MethodGet, "/post/hello", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "post Post hello") {
		t.Errorf("status = %d, body = %q", rec.Code, rec.Body.String())
	}

	rec = doRequest(a, http.MethodGet, "/post/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing post status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not found") {
		t.Errorf("body = %q, want the not-found view", rec.Body.String())
	}
}

func TestTagRouteResolvesSlugAndID(t *testing.T) {
	a := setupTestApp(t)
	a.Echo.GET("/tag/:ref", a.handleTag)

	tag, err := a.Store.SaveTag(Tag{Name: "Go", Slug: "go"})
	if err != nil {
		t.Fatal(err)
	}
	item := seedPost(t, a.Store, "tagged", day(1))
	item.Tags = []Tag{tag}
	if _, err := a.Store.SaveContent(item); err != nil {
		t.Fatal(err)
	}

	for _, ref := range []string{"go", fmt.Sprintf("%d", tag.ID)} {
		rec := doRequest(a, http.MethodGet, "/tag/"+ref, "")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "tagged") {
			t.Errorf("ref %q: status = %d, body = %q", ref, rec.Code, rec.Body.String())
		}
	}

	rec := doRequest(a, http.MethodGet, "/tag/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown tag status = %d, want 404", rec.Code)
	}
}

func TestContentGridEndpoint(t *testing.T) {
	a := setupTestApp(t)
	a.Echo.POST("/admin/grid/posts", a.handleContentGrid(KindPost))

	seedPost(t, a.Store, "one", day(1))
	seedPost(t, a.Store, "two", day(2))

	body := `{"draw":3,"start":0,"length":1,"columns":[{"data":"title","orderable":true}],"order":[{"column":0,"dir":"desc"}]}`
	rec := doRequest(a, http.MethodPost, "/admin/grid/posts", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}

	var resp struct {
		Draw            int               `json:"draw"`
		RecordsTotal    int               `json:"recordsTotal"`
		RecordsFiltered int               `json:"recordsFiltered"`
		Data            []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Draw != 3 {
		t.Errorf("draw = %d, want 3 echoed back", resp.Draw)
	}
	if resp.RecordsTotal != 2 || resp.RecordsFiltered != 2 {
		t.Errorf("records = %d/%d, want 2/2", resp.RecordsTotal, resp.RecordsFiltered)
	}
	if len(resp.Data) != 1 {
		t.Errorf("data = %d rows, want 1 (length caps the window)", len(resp.Data))
	}
}

func TestContentGridRejectsBadOrdering(t *testing.T) {
	a := setupTestApp(t)
	a.Echo.POST("/admin/grid/posts", a.handleContentGrid(KindPost))

	body := `{"draw":1,"start":0,"length":10,"columns":[{"data":"password"}],"order":[{"column":0,"dir":"asc"}]}`
	rec := doRequest(a, http.MethodPost, "/admin/grid/posts", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a non-sortable field", rec.Code)
	}

	body = `{"draw":1,"start":0,"length":-1}`
	rec = doRequest(a, http.MethodPost, "/admin/grid/posts", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for show-all length", rec.Code)
	}
}

func TestFeedEndpoint(t *testing.T) {
	a := setupTestApp(t)
	a.Echo.GET("/feed", a.handleContentFeed)

	seedPost(t, a.Store, "syndicated", day(1))

	rec := doRequest(a, http.MethodGet, "/feed", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.Contains(ct, "application/atom+xml") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<entry>") || !strings.Contains(rec.Body.String(), "Post syndicated") {
		t.Errorf("body = %q, want an atom entry for the post", rec.Body.String())
	}
}

func TestSearchEndpoint(t *testing.T) {
	a := setupTestApp(t)
	a.Echo.GET("/search", a.handleSearch)

	item := seedPost(t, a.Store, "findable", day(1))
	if err := a.Index.IndexContent(item); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(a, http.MethodGet, "/search?q=findable", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "findable") {
		t.Errorf("status = %d, body = %q", rec.Code, rec.Body.String())
	}

	rec = doRequest(a, http.MethodGet, "/search", "")
	if rec.Code != http.StatusOK {
		t.Errorf("empty query status = %d, want 200 with empty listing", rec.Code)
	}
}
