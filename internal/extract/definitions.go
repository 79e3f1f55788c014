package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// DefinitionMarker is the class name of a definition span. Counting it in
// the raw page text gives the number of definitions the page claims to have.
const DefinitionMarker = "dtText"

var definitionSelector = cascadia.MustCompile("span." + DefinitionMarker)

// Kind tags a cursor Result
type Kind int

const (
	// KindEntry carries one definition
	KindEntry Kind = iota
	// KindNoMoreEntries ends the listing
	KindNoMoreEntries
)

func (k Kind) String() string {
	switch k {
	case KindEntry:
		return "entry"
	case KindNoMoreEntries:
		return "no-more-entries"
	default:
		return "unknown"
	}
}

// Result is one step of a DefinitionCursor
type Result struct {
	Kind    Kind
	Ordinal int    // 1-based position of the entry; for KindNoMoreEntries the position that was missing
	Text    string // definition text, empty for KindNoMoreEntries
	Want    int    // number of definitions announced by the page
}

// Early reports whether the listing ended before the announced count, or
// without yielding any entry at all
func (r Result) Early() bool {
	return r.Kind == KindNoMoreEntries && (r.Ordinal <= r.Want || r.Ordinal == 1)
}

// CountMarkers counts definition markers in the raw page text
func CountMarkers(raw string) int {
	return strings.Count(raw, DefinitionMarker)
}

// DefinitionCursor walks the definition spans of a page in document order
type DefinitionCursor struct {
	spans *goquery.Selection
	want  int
	next  int
}

// Definitions returns a cursor over the page's definitions
func Definitions(doc *goquery.Document, raw string) *DefinitionCursor {
	return &DefinitionCursor{
		spans: doc.FindMatcher(definitionSelector),
		want:  CountMarkers(raw),
	}
}

// Count is the number of definitions the page announces
func (c *DefinitionCursor) Count() int {
	return c.want
}

// Single reports whether the page announces exactly one definition
func (c *DefinitionCursor) Single() bool {
	return c.want == 1
}

// Next returns the next entry, or KindNoMoreEntries once the announced count
// is reached or no further span exists. It keeps returning KindNoMoreEntries
// after that.
func (c *DefinitionCursor) Next() Result {
	ordinal := c.next + 1
	if c.next >= c.want || c.next >= c.spans.Length() {
		return Result{Kind: KindNoMoreEntries, Ordinal: ordinal, Want: c.want}
	}

	text := c.spans.Eq(c.next).Text()
	c.next++
	return Result{Kind: KindEntry, Ordinal: ordinal, Text: text, Want: c.want}
}

// All drains the cursor. The final element is always a KindNoMoreEntries result.
func (c *DefinitionCursor) All() []Result {
	var results []Result
	for {
		r := c.Next()
		results = append(results, r)
		if r.Kind == KindNoMoreEntries {
			return results
		}
	}
}
