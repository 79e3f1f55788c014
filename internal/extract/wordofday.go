package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrWordOfDayMissing is returned when the home page no longer has the
// expected word-of-the-day links
var ErrWordOfDayMissing = errors.New("word of the day not found")

// WordOfDayLocator finds the featured word on the dictionary home page
type WordOfDayLocator interface {
	Locate(doc *goquery.Document) (string, error)
}

// SkipLinkLocator reads the word of the day from the links pointing at Href.
// The home page carries several such links (navigation, image) before the
// one whose text is the word itself, so the first Skip matches are ignored.
// When the site layout changes this is the only place that needs updating.
type SkipLinkLocator struct {
	Href string
	Skip int
}

// DefaultWordOfDayLocator matches the current home page layout
func DefaultWordOfDayLocator() SkipLinkLocator {
	return SkipLinkLocator{Href: "/word-of-the-day", Skip: 2}
}

// Locate implements WordOfDayLocator
func (l SkipLinkLocator) Locate(doc *goquery.Document) (string, error) {
	links := doc.Find(fmt.Sprintf(`a[href=%q]`, l.Href))
	if links.Length() <= l.Skip {
		return "", fmt.Errorf("%w: %d link(s) to %s, need %d", ErrWordOfDayMissing, links.Length(), l.Href, l.Skip+1)
	}

	// Indentation inside the link is not part of the word
	word := strings.TrimSpace(links.Eq(l.Skip).Text())
	if word == "" {
		return "", fmt.Errorf("%w: link %d to %s has no text", ErrWordOfDayMissing, l.Skip+1, l.Href)
	}
	return word, nil
}
