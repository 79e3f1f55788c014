package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
)

// DictionaryServer fakes the dictionary site and its media host
type DictionaryServer struct {
	*httptest.Server

	WordOfDay string
	Pages     map[string]WordPage // keyed by word
	Audio     map[string][]byte   // keyed by request path
	Status    int                 // forces every response to this status when non-zero

	mu    sync.Mutex
	calls []string
}

// NewDictionaryServer starts a fake site that is closed with the test
func NewDictionaryServer(t *testing.T) *DictionaryServer {
	t.Helper()

	s := &DictionaryServer{
		WordOfDay: "serendipity",
		Pages:     map[string]WordPage{},
		Audio:     map[string][]byte{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)

	return s
}

// AddPage registers an entry page and, when it has a pronunciation, the
// matching MP3 under the media path.
func (s *DictionaryServer) AddPage(p WordPage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Pages[p.Word] = p
	if p.PronunciationFile != "" {
		s.Audio[s.AudioPath(p)] = MP3Data()
	}
}

// MediaURL is the base URL under which AddPage publishes audio
func (s *DictionaryServer) MediaURL() string {
	return s.URL + "/audio/prons/en/us/mp3"
}

// AudioPath is the request path of the page's pronunciation file
func (s *DictionaryServer) AudioPath(p WordPage) string {
	return fmt.Sprintf("/audio/prons/en/us/mp3/%s/%s.mp3", p.PronunciationDir, p.PronunciationFile)
}

// Calls returns the request paths seen so far
func (s *DictionaryServer) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many requests matched the path prefix
func (s *DictionaryServer) CallCount(prefix string) int {
	n := 0
	for _, c := range s.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (s *DictionaryServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.calls = append(s.calls, r.URL.Path)
	status := s.Status
	s.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}

	switch {
	case r.URL.Path == "/dictionary":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, HomePageHTML(s.WordOfDay))

	case strings.HasPrefix(r.URL.Path, "/dictionary/"):
		word, err := url.PathUnescape(strings.TrimPrefix(r.URL.EscapedPath(), "/dictionary/"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		page, ok := s.Pages[word]
		s.mu.Unlock()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, NotFoundPageHTML(word))
			return
		}
		fmt.Fprint(w, page.HTML())

	case strings.HasPrefix(r.URL.Path, "/audio/"):
		s.mu.Lock()
		data, ok := s.Audio[r.URL.Path]
		s.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(data)

	default:
		http.NotFound(w, r)
	}
}

// MockPlayer records playback requests and whether the file was on disk
// when each one was made
type MockPlayer struct {
	Plays   []string
	Existed []bool
	Err     error
}

// Play records the file and returns the configured error
func (m *MockPlayer) Play(ctx context.Context, file string) error {
	m.Plays = append(m.Plays, file)
	_, err := os.Stat(file)
	m.Existed = append(m.Existed, err == nil)
	return m.Err
}

// MockProvider mocks a text-to-speech provider
type MockProvider struct {
	ProviderName string
	Audio        []byte
	GenerateErr  error
	AvailableErr error
	Calls        []string
}

// GenerateAudio writes the configured audio bytes to outputFile
func (m *MockProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	m.Calls = append(m.Calls, fmt.Sprintf("TTS: %s -> %s", text, outputFile))
	if m.GenerateErr != nil {
		return m.GenerateErr
	}
	data := m.Audio
	if data == nil {
		data = MP3Data()
	}
	return writeFile(outputFile, data)
}

// Name returns the configured provider name
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// IsAvailable returns the configured availability error
func (m *MockProvider) IsAvailable() error {
	return m.AvailableErr
}
