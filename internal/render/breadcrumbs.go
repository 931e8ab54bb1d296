package render

import (
	"path/filepath"
	"slices"
	"strings"
)

const (
	indexPage = "index.html"
	htmlExt   = ".html"
)

// Link is one labelled hyperlink. An empty Href marks the current page.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
}

// Breadcrumbs returns the outermost-first trail from the output root to the
// page at path. Ancestor links are relative to the page; the first entry is
// topLabel and the last entry, the page itself, carries no link. Index pages
// are represented by their directory.
func Breadcrumbs(root, path, topLabel string) []Link {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return []Link{{Label: topLabel}}
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	name := segments[len(segments)-1]
	dirs := segments[:len(segments)-1]
	isIndex := name == indexPage

	// Built innermost first, reversed at the end.
	trail := make([]Link, 0, len(segments)+1)
	if !isIndex {
		trail = append(trail, Link{Label: strings.TrimSuffix(name, htmlExt)})
	}
	for i := len(dirs) - 1; i >= 0; i-- {
		crumb := Link{Label: dirs[i]}
		if !isIndex || i != len(dirs)-1 {
			crumb.Href = strings.Repeat("../", len(dirs)-1-i) + indexPage
		}
		trail = append(trail, crumb)
	}
	top := Link{Label: topLabel}
	if len(trail) > 0 {
		top.Href = strings.Repeat("../", len(dirs)) + indexPage
	}
	trail = append(trail, top)
	slices.Reverse(trail)
	return trail
}
