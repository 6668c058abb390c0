package inkcms

import (
	"net/url"
	"path"
	"strings"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RelatedContent finds published items that share at least one tag with
// current.
func RelatedContent(current ContentItem, items []ContentItem) []ContentItem {
	tagSet := make(map[int64]struct{}, len(current.Tags))
	for _, t := range current.Tags {
		tagSet[t.ID] = struct{}{}
	}
	var related []ContentItem
	for _, item := range items {
		if item.ID == current.ID {
			continue
		}
		for _, t := range item.Tags {
			if _, ok := tagSet[t.ID]; ok {
				related = append(related, item)
				break
			}
		}
	}
	return related
}

// JoinTagNames joins tag names with ", ".
func JoinTagNames(tags []Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}
