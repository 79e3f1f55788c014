package testutil

import (
	"fmt"
	"html"
	"strings"
)

// WordPage describes a fixture entry page
type WordPage struct {
	Word        string
	Definitions []string

	// PronunciationFile and PronunciationDir fill the en_us play button.
	// Leave PronunciationFile empty for a page without pronunciation.
	PronunciationFile string
	PronunciationDir  string

	// StrayMarkers adds dtText occurrences that are not definition spans
	StrayMarkers int
}

// HomePageHTML renders a home page whose third word-of-the-day link holds word
func HomePageHTML(word string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>Dictionary by Merriam-Webster</title></head>
<body>
<header class="nav"><a href="/word-of-the-day">Word of the Day</a></header>
<div class="wotd-side-panel">
  <a href="/word-of-the-day"><img src="/wotd.png" alt=""></a>
  <h2 class="wotd-side-panel-word"><a href="/word-of-the-day">%s</a></h2>
</div>
<footer><a href="/word-of-the-day">More Words of the Day</a></footer>
</body></html>`, html.EscapeString(word))
}

// HomePageWithoutWordOfDay renders a home page with a single word-of-the-day link
func HomePageWithoutWordOfDay() string {
	return `<!DOCTYPE html>
<html><body><a href="/word-of-the-day">Word of the Day</a></body></html>`
}

// HTML renders the entry page
func (p WordPage) HTML() string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html><head><title>")
	b.WriteString(html.EscapeString(p.Word))
	b.WriteString(" Definition &amp; Meaning</title>\n")
	for i := 0; i < p.StrayMarkers; i++ {
		b.WriteString("<style>.dtText { display: inline; }</style>\n")
	}
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1 class=\"hword\">%s</h1>\n", html.EscapeString(p.Word))

	if p.PronunciationFile != "" {
		fmt.Fprintf(&b, `<a class="play-pron-v2" data-lang="en_us" data-file="%s" data-dir="%s" data-title="%s" href="#">`,
			p.PronunciationFile, p.PronunciationDir, html.EscapeString(p.Word))
		b.WriteString("<svg></svg></a>\n")
	}

	b.WriteString("<div class=\"vg\">\n")
	for _, def := range p.Definitions {
		fmt.Fprintf(&b, "<div class=\"sense\"><span class=\"dtText\"><strong class=\"mw_t_bc\">: </strong>%s</span></div>\n",
			html.EscapeString(def))
	}
	b.WriteString("</div>\n</body></html>")

	return b.String()
}

// NotFoundPageHTML renders the page served for unknown words
func NotFoundPageHTML(word string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><body>
<h1 class="mispelled-word">The word you've entered isn't in the dictionary. Click on a spelling suggestion below or try again using the search bar above.</h1>
<p class="spelling-suggestions">%s</p>
</body></html>`, html.EscapeString(word))
}
