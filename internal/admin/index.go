package admin

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Index is the parsed content of an admin index page.
type Index struct {
	// Links counts every anchor with an href, navigation included.
	Links int

	// Repositories holds the names of the directory entries, without trailing slash.
	Repositories []string
}

// Valid reports whether the page looks like an index at all.
func (i Index) Valid() bool {
	return i.Links > 0
}

// ParseIndex extracts the repository entries from an index page. Only
// relative single-segment directory links ("name/") and bare repositories
// ("name.git") count; sort links, parent links and absolute URLs are skipped.
func ParseIndex(page string) Index {
	var idx Index
	seen := make(map[string]bool)

	tokenizer := html.NewTokenizer(strings.NewReader(page))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		token := tokenizer.Token()
		if token.Data != "a" {
			continue
		}

		href, ok := attr(token, "href")
		if !ok {
			continue
		}
		idx.Links++

		if name, ok := repositoryName(href); ok && !seen[name] {
			seen[name] = true
			idx.Repositories = append(idx.Repositories, name)
		}
	}

	sort.Strings(idx.Repositories)
	return idx
}

func attr(token html.Token, key string) (string, bool) {
	for _, a := range token.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func repositoryName(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if !strings.HasSuffix(href, "/") && !strings.HasSuffix(href, ".git") {
		return "", false
	}
	if strings.HasPrefix(href, "/") || strings.HasPrefix(href, "?") || strings.Contains(href, "://") {
		return "", false
	}

	name := strings.TrimSuffix(href, "/")
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// Search returns the repositories whose name contains criteria, ignoring
// case, keeping index order and stopping at limit when limit > 0.
func (i Index) Search(criteria string, limit int) []string {
	criteria = strings.ToLower(strings.TrimSpace(criteria))

	var matches []string
	for _, name := range i.Repositories {
		if !strings.Contains(strings.ToLower(name), criteria) {
			continue
		}
		matches = append(matches, name)
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches
}
