package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultAudioFile is the fixed local name of the pronunciation file
const DefaultAudioFile = "word_to_pronounce.mp3"

// DownloadOptions configures pronunciation downloads
type DownloadOptions struct {
	UserAgent    string        // User-Agent header for the media host
	Timeout      time.Duration // Whole-request timeout
	MaxSizeBytes int64         // Maximum file size to download (0 = no limit)
	HTTPClient   *http.Client  // Optional client override (tests)
}

// DefaultDownloadOptions returns sensible defaults for MP3 downloads
func DefaultDownloadOptions() *DownloadOptions {
	return &DownloadOptions{
		Timeout:      30 * time.Second,
		MaxSizeBytes: 10 * 1024 * 1024, // 10MB
	}
}

// Downloader fetches pronunciation MP3s to a local file
type Downloader struct {
	options    *DownloadOptions
	httpClient *http.Client
	log        *slog.Logger
}

// NewDownloader creates a new downloader
func NewDownloader(options *DownloadOptions, logger *slog.Logger) *Downloader {
	if options == nil {
		options = DefaultDownloadOptions()
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := options.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: options.Timeout}
	}

	return &Downloader{
		options:    options,
		httpClient: client,
		log:        logger.With("component", "downloader"),
	}
}

// Download writes the resource at url to outputPath, replacing any previous
// contents. A partial or invalid file is removed.
func (d *Downloader) Download(ctx context.Context, url, outputPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if d.options.UserAgent != "" {
		req.Header.Set("User-Agent", d.options.UserAgent)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download audio: GET %s: unexpected status %d", url, resp.StatusCode)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	written, err := d.copy(file, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(outputPath)
		return err
	}

	if err := ValidateMP3File(outputPath); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("downloaded audio rejected: %w", err)
	}

	d.log.Debug("downloaded pronunciation", "url", url, "file", outputPath, "bytes", written)
	return nil
}

// copy streams body into file, enforcing MaxSizeBytes
func (d *Downloader) copy(file io.Writer, body io.Reader) (int64, error) {
	if d.options.MaxSizeBytes <= 0 {
		written, err := io.Copy(file, body)
		if err != nil {
			return written, fmt.Errorf("failed to write file: %w", err)
		}
		return written, nil
	}

	written, err := io.CopyN(file, body, d.options.MaxSizeBytes)
	if err != nil && err != io.EOF {
		return written, fmt.Errorf("failed to write file: %w", err)
	}

	if written == d.options.MaxSizeBytes {
		// Try to read one more byte to see if the file is larger
		if n, _ := body.Read(make([]byte, 1)); n > 0 {
			return written, fmt.Errorf("audio exceeds maximum size of %d bytes", d.options.MaxSizeBytes)
		}
	}

	return written, nil
}
