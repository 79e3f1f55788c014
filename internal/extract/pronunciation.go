package extract

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// PronunciationMarker precedes the US English play button attributes
	PronunciationMarker = `data-lang="en_us"`

	// DefaultMediaURL is where the site publishes pronunciation MP3s
	DefaultMediaURL = "https://media.merriam-webster.com/audio/prons/en/us/mp3"

	pronunciationWindow = 200
)

// ErrNoPronunciation means the page has no pre-recorded pronunciation
var ErrNoPronunciation = errors.New("no pre-recorded pronunciation")

// PronunciationURL builds the MP3 URL from the raw page text. It scans a
// bounded window after the en_us marker and reads the quoted data-file and
// data-dir values.
func PronunciationURL(raw, mediaURL string) (string, error) {
	idx := strings.Index(raw, PronunciationMarker)
	if idx < 0 {
		return "", fmt.Errorf("%w: marker %s absent", ErrNoPronunciation, PronunciationMarker)
	}

	start := idx + len(PronunciationMarker)
	end := start + pronunciationWindow
	if end > len(raw) {
		end = len(raw)
	}
	fragments := strings.Split(raw[start:end], `"`)

	file := quotedValue(fragments, "data-file=")
	dir := quotedValue(fragments, "data-dir=")
	if file == "" || dir == "" {
		return "", fmt.Errorf("%w: data-file=%q data-dir=%q", ErrNoPronunciation, file, dir)
	}

	if mediaURL == "" {
		mediaURL = DefaultMediaURL
	}
	return strings.TrimRight(mediaURL, "/") + "/" + dir + "/" + file + ".mp3", nil
}

// quotedValue returns the fragment following the one ending in attr. After
// splitting on quotes, odd positions are quoted values and the even position
// before each one ends with its attribute name.
func quotedValue(fragments []string, attr string) string {
	for i := 0; i+1 < len(fragments); i += 2 {
		if strings.HasSuffix(strings.TrimSpace(fragments[i]), attr) {
			// The last fragment was cut by the window; its closing quote is missing
			if i+1 == len(fragments)-1 {
				return ""
			}
			return strings.TrimSpace(fragments[i+1])
		}
	}
	return ""
}
