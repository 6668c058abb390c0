package inkcms

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Trim Me  ", "trim-me"},
		{"Already-slugged", "already-slugged"},
		{"Symbols & Stuff!", "symbols-stuff"},
		{"123 numbers", "123-numbers"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"", "a", "  ", "b", "\t"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FilterEmpty = %v, want [a b]", got)
	}
}

func TestRelatedContent(t *testing.T) {
	goTag := Tag{ID: 1, Name: "go"}
	webTag := Tag{ID: 2, Name: "web"}
	current := ContentItem{ID: 1, Tags: []Tag{goTag}}
	items := []ContentItem{
		{ID: 1, Tags: []Tag{goTag}},
		{ID: 2, Tags: []Tag{goTag, webTag}},
		{ID: 3, Tags: []Tag{webTag}},
	}

	related := RelatedContent(current, items)
	if len(related) != 1 || related[0].ID != 2 {
		t.Errorf("RelatedContent = %v, want only item 2", related)
	}
}

func TestIntParameter(t *testing.T) {
	if got := intParameter(map[string]string{ParamPostsPerPage: "25"}, ParamPostsPerPage); got != 25 {
		t.Errorf("intParameter = %d, want 25", got)
	}
	if got := intParameter(map[string]string{ParamPostsPerPage: "bogus"}, ParamPostsPerPage); got != 10 {
		t.Errorf("intParameter with malformed value = %d, want default 10", got)
	}
	if got := intParameter(map[string]string{}, ParamPostsPerPage); got != 10 {
		t.Errorf("intParameter with missing value = %d, want default 10", got)
	}
}
