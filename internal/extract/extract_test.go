package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/mwlookup/internal/testutil"
)

func parse(t *testing.T, raw string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	require.NoError(t, err)
	return doc
}

func TestSkipLinkLocator_ThirdLink(t *testing.T) {
	doc := parse(t, testutil.HomePageHTML("petrichor"))

	word, err := DefaultWordOfDayLocator().Locate(doc)
	require.NoError(t, err)
	assert.Equal(t, "petrichor", word)
}

func TestSkipLinkLocator_TooFewLinks(t *testing.T) {
	doc := parse(t, testutil.HomePageWithoutWordOfDay())

	_, err := DefaultWordOfDayLocator().Locate(doc)
	require.ErrorIs(t, err, ErrWordOfDayMissing)
}

func TestSkipLinkLocator_CustomLayout(t *testing.T) {
	doc := parse(t, `<html><body><a href="/wotd">quixotic</a></body></html>`)

	word, err := SkipLinkLocator{Href: "/wotd", Skip: 0}.Locate(doc)
	require.NoError(t, err)
	assert.Equal(t, "quixotic", word)
}

func TestSkipLinkLocator_TrimsMarkupWhitespace(t *testing.T) {
	doc := parse(t, "<html><body><a href=\"/wotd\">\n    quixotic\n  </a></body></html>")

	word, err := SkipLinkLocator{Href: "/wotd"}.Locate(doc)
	require.NoError(t, err)
	assert.Equal(t, "quixotic", word)
}

func TestSkipLinkLocator_EmptyText(t *testing.T) {
	doc := parse(t, `<html><body><a href="/wotd"> </a></body></html>`)

	_, err := SkipLinkLocator{Href: "/wotd"}.Locate(doc)
	require.ErrorIs(t, err, ErrWordOfDayMissing)
}

func TestCountMarkers(t *testing.T) {
	page := testutil.WordPage{Word: "run", Definitions: []string{"a", "b", "c"}}
	assert.Equal(t, 3, CountMarkers(page.HTML()))

	page.StrayMarkers = 2
	assert.Equal(t, 5, CountMarkers(page.HTML()))

	assert.Equal(t, 0, CountMarkers("<html></html>"))
}

func TestDefinitions_SingleEntry(t *testing.T) {
	raw := testutil.WordPage{Word: "test", Definitions: []string{"a means of testing"}}.HTML()
	cur := Definitions(parse(t, raw), raw)

	assert.True(t, cur.Single())
	assert.Equal(t, 1, cur.Count())

	first := cur.Next()
	assert.Equal(t, KindEntry, first.Kind)
	assert.Equal(t, 1, first.Ordinal)
	assert.Equal(t, ": a means of testing", first.Text)

	last := cur.Next()
	assert.Equal(t, KindNoMoreEntries, last.Kind)
	assert.False(t, last.Early())
}

func TestDefinitions_MultipleEntries(t *testing.T) {
	defs := []string{"to go faster than a walk", "to flee", "to compete in a race"}
	raw := testutil.WordPage{Word: "run", Definitions: defs}.HTML()
	cur := Definitions(parse(t, raw), raw)

	assert.False(t, cur.Single())

	results := cur.All()
	require.Len(t, results, 4)
	for i, def := range defs {
		assert.Equal(t, KindEntry, results[i].Kind)
		assert.Equal(t, i+1, results[i].Ordinal)
		assert.Equal(t, ": "+def, results[i].Text)
	}
	assert.Equal(t, KindNoMoreEntries, results[3].Kind)
	assert.False(t, results[3].Early(), "listing reached the announced count")
}

func TestDefinitions_StopsEarly(t *testing.T) {
	raw := testutil.WordPage{
		Word:         "set",
		Definitions:  []string{"to put", "to fix"},
		StrayMarkers: 2,
	}.HTML()
	cur := Definitions(parse(t, raw), raw)

	assert.Equal(t, 4, cur.Count())

	results := cur.All()
	require.Len(t, results, 3)
	assert.Equal(t, KindNoMoreEntries, results[2].Kind)
	assert.Equal(t, 3, results[2].Ordinal)
	assert.True(t, results[2].Early())
}

func TestDefinitions_SingleMarkerWithoutSpan(t *testing.T) {
	raw := testutil.WordPage{Word: "odd", StrayMarkers: 1}.HTML()
	cur := Definitions(parse(t, raw), raw)

	require.True(t, cur.Single())
	r := cur.Next()
	assert.Equal(t, KindNoMoreEntries, r.Kind)
	assert.True(t, r.Early())
}

func TestDefinitions_NoMarkers(t *testing.T) {
	raw := testutil.WordPage{Word: "empty"}.HTML()
	cur := Definitions(parse(t, raw), raw)

	r := cur.Next()
	assert.Equal(t, KindNoMoreEntries, r.Kind)
	assert.True(t, r.Early(), "a page without any entry is reported")
}

func TestDefinitions_NextIsSticky(t *testing.T) {
	raw := testutil.WordPage{Word: "test", Definitions: []string{"x"}}.HTML()
	cur := Definitions(parse(t, raw), raw)

	cur.Next()
	for i := 0; i < 3; i++ {
		assert.Equal(t, KindNoMoreEntries, cur.Next().Kind)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "entry", KindEntry.String())
	assert.Equal(t, "no-more-entries", KindNoMoreEntries.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestPronunciationURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		mediaURL string
		want     string
		wantErr  bool
	}{
		{
			name: "fixture page",
			raw: testutil.WordPage{
				Word:              "test",
				PronunciationFile: "test0001",
				PronunciationDir:  "t",
			}.HTML(),
			want: DefaultMediaURL + "/t/test0001.mp3",
		},
		{
			name:     "custom media url",
			raw:      `<a data-lang="en_us" data-file="run00001" data-dir="r">`,
			mediaURL: "http://localhost:8080/mp3/",
			want:     "http://localhost:8080/mp3/r/run00001.mp3",
		},
		{
			name: "attribute order does not matter",
			raw:  `<a data-lang="en_us" data-dir="gg" data-file="gg000001">`,
			want: DefaultMediaURL + "/gg/gg000001.mp3",
		},
		{
			name:    "no marker",
			raw:     testutil.WordPage{Word: "test", Definitions: []string{"x"}}.HTML(),
			wantErr: true,
		},
		{
			name:    "marker without dir",
			raw:     `<a data-lang="en_us" data-file="test0001">`,
			wantErr: true,
		},
		{
			name:    "empty file",
			raw:     `<a data-lang="en_us" data-file="" data-dir="t">`,
			wantErr: true,
		},
		{
			name:    "fragments outside window",
			raw:     `<a data-lang="en_us"` + strings.Repeat(" ", 250) + `data-file="test0001" data-dir="t">`,
			wantErr: true,
		},
		{
			name:    "value cut by window",
			raw:     `<a data-lang="en_us" data-dir="t"` + strings.Repeat(" ", 150) + `data-file="` + strings.Repeat("x", 60) + `">`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PronunciationURL(tt.raw, tt.mediaURL)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoPronunciation)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
