package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sony/gobreaker"
	"golang.org/x/net/html"
)

const (
	// DefaultBaseURL is the dictionary site root
	DefaultBaseURL = "https://www.merriam-webster.com"

	// DefaultUserAgent mimics a desktop browser; the site rejects the Go default
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	defaultTimeout         = 30 * time.Second
	defaultBreakerFailures = 3
	breakerOpenTimeout     = 30 * time.Second
	maxPageBytes           = 8 * 1024 * 1024
)

// ErrUnavailable is returned while the circuit breaker is open
var ErrUnavailable = errors.New("dictionary site unavailable")

// StatusError reports an unexpected HTTP status
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Options configures a Fetcher
type Options struct {
	BaseURL         string        // Dictionary site root
	UserAgent       string        // User-Agent header sent with every request
	Timeout         time.Duration // Per-request timeout
	BreakerFailures uint32        // Consecutive transport failures before the breaker opens
	HTTPClient      *http.Client  // Optional client override (tests)
}

// DefaultOptions returns the production settings
func DefaultOptions() *Options {
	return &Options{
		BaseURL:         DefaultBaseURL,
		UserAgent:       DefaultUserAgent,
		Timeout:         defaultTimeout,
		BreakerFailures: defaultBreakerFailures,
	}
}

// Fetcher retrieves dictionary pages. It never retries and never caches.
type Fetcher struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *slog.Logger
}

// New creates a Fetcher. A nil options value means DefaultOptions.
func New(opts *Options, logger *slog.Logger) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	failures := opts.BreakerFailures
	if failures == 0 {
		failures = defaultBreakerFailures
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	log := logger.With("component", "fetcher")

	return &Fetcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  opts.UserAgent,
		httpClient: client,
		log:        log,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "dictionary",
			Timeout: breakerOpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			// Only transport failures count against the site
			IsSuccessful: func(err error) bool {
				var statusErr *StatusError
				return err == nil || errors.As(err, &statusErr)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

// HomeURL returns the dictionary home page URL
func (f *Fetcher) HomeURL() string {
	return f.baseURL + "/dictionary"
}

// WordURL returns the page URL for a word. The word is percent-encoded as a
// single path segment.
func (f *Fetcher) WordURL(word string) string {
	return f.baseURL + "/dictionary/" + url.PathEscape(word)
}

// HomePage fetches the dictionary home page (word of the day)
func (f *Fetcher) HomePage(ctx context.Context) (*Page, error) {
	return f.Fetch(ctx, f.HomeURL())
}

// WordPage fetches the entry page for a word
func (f *Fetcher) WordPage(ctx context.Context, word string) (*Page, error) {
	return f.Fetch(ctx, f.WordURL(word))
}

// Fetch performs a single GET and parses the response into a Page
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.get(ctx, pageURL)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return nil, err
	}
	return result.(*Page), nil
}

func (f *Fetcher) get(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	f.log.Debug("page fetched",
		"url", pageURL,
		"status", resp.StatusCode,
		"elapsed", time.Since(start))

	// The site serves its "not in the dictionary" page with a 404
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return nil, &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return NewPage(pageURL, resp.StatusCode, body)
}

// NewPage parses an HTML body into a Page
func NewPage(pageURL string, statusCode int, body []byte) (*Page, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}

	return &Page{
		URL:        pageURL,
		StatusCode: statusCode,
		Raw:        string(body),
		Doc:        goquery.NewDocumentFromNode(root),
	}, nil
}
