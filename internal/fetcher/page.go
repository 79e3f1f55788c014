package fetcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NotFoundMarker appears on the page served for unknown words
const NotFoundMarker = "isn't in the dictionary"

// Page is one fetched dictionary page: the raw text plus its parsed tree.
// A Page lives for a single lookup iteration.
type Page struct {
	URL        string
	StatusCode int
	Raw        string
	Doc        *goquery.Document
}

// Contains reports whether the raw page text contains s
func (p *Page) Contains(s string) bool {
	return strings.Contains(p.Raw, s)
}

// NotFound reports whether the page is the dictionary's "unknown word" page
func (p *Page) NotFound() bool {
	return p.Contains(NotFoundMarker)
}
