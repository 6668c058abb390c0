package inkcms

import (
	"testing"
	"time"
)

type fakeFeedSource struct {
	comments []Comment
	params   map[string]string
}

func (f *fakeFeedSource) LatestComments(limit int) ([]Comment, error) {
	if limit < len(f.comments) {
		return f.comments[:limit], nil
	}
	return f.comments, nil
}

func (f *fakeFeedSource) Parameters() (map[string]string, error) {
	params := make(map[string]string)
	for name, value := range defaultParameters {
		params[name] = value
	}
	for name, value := range f.params {
		params[name] = value
	}
	return params, nil
}

func TestLatestContentFeed(t *testing.T) {
	published := time.Date(2019, time.March, 1, 10, 0, 0, 0, time.UTC)
	src := &fakeSource{items: []ContentItem{
		{ID: 1, Kind: KindPost, Status: StatusPublished, Title: "Hello", Body: "Body text",
			Slug: "hello", CreatedAt: published, UpdatedAt: published, PublishedAt: &published},
	}}
	feeds := NewFeedSynthesizer(NewListing(src, &fakeIndex{}), &fakeFeedSource{
		params: map[string]string{ParamTitle: "My Site", ParamSubtitle: "Notes", ParamSiteURL: "https://example.com"},
	})

	feed, err := feeds.LatestContent()
	if err != nil {
		t.Fatalf("LatestContent failed: %v", err)
	}
	if feed.Title != "My Site" || feed.Subtitle != "Notes" {
		t.Errorf("feed metadata = %q/%q, want parameter values", feed.Title, feed.Subtitle)
	}
	if len(feed.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(feed.Entries))
	}
	entry := feed.Entries[0]
	if entry.Title != "Hello" {
		t.Errorf("Title = %q", entry.Title)
	}
	if entry.Link != "https://example.com/post/hello" {
		t.Errorf("Link = %q, want absolutized against SITE_URL", entry.Link)
	}
	if entry.Summary != "Body text" {
		t.Errorf("Summary = %q", entry.Summary)
	}
	if entry.Published == nil || !entry.Published.Equal(published) {
		t.Errorf("Published = %v, want %v", entry.Published, published)
	}
}

func TestLatestContentFeedCapsAtPageSize(t *testing.T) {
	src := &fakeSource{items: testItems(15)}
	feeds := NewFeedSynthesizer(NewListing(src, &fakeIndex{}), &fakeFeedSource{})

	feed, err := feeds.LatestContent()
	if err != nil {
		t.Fatalf("LatestContent failed: %v", err)
	}
	if len(feed.Entries) != 10 {
		t.Errorf("entries = %d, want 10 (the default page size)", len(feed.Entries))
	}
}

func TestLatestContentFeedEmpty(t *testing.T) {
	feeds := NewFeedSynthesizer(NewListing(&fakeSource{}, &fakeIndex{}), &fakeFeedSource{})

	feed, err := feeds.LatestContent()
	if err != nil {
		t.Fatalf("empty result set must not be an error: %v", err)
	}
	if len(feed.Entries) != 0 {
		t.Errorf("entries = %d, want 0", len(feed.Entries))
	}
}

func TestLatestCommentsFeed(t *testing.T) {
	now := time.Date(2019, time.March, 2, 9, 0, 0, 0, time.UTC)
	feeds := NewFeedSynthesizer(NewListing(&fakeSource{}, &fakeIndex{}), &fakeFeedSource{
		comments: []Comment{
			{ID: 4, ContentID: 1, ContentSlug: "hello", Body: "great post", Name: "Reader",
				CreatedAt: now, UpdatedAt: now},
		},
	})

	feed, err := feeds.LatestComments()
	if err != nil {
		t.Fatalf("LatestComments failed: %v", err)
	}
	if len(feed.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(feed.Entries))
	}
	entry := feed.Entries[0]
	if entry.Link != "/post/hello#comment-4" {
		t.Errorf("Link = %q, want the comment anchor (relative without SITE_URL)", entry.Link)
	}
	if entry.Summary != "great post" {
		t.Errorf("Summary = %q", entry.Summary)
	}
	if entry.Published != nil {
		t.Error("comments have no publish step; Published must stay nil")
	}
}
