package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/mwlookup/internal/audio"
	"codeberg.org/snonux/mwlookup/internal/extract"
	"codeberg.org/snonux/mwlookup/internal/fetcher"
	"codeberg.org/snonux/mwlookup/internal/session"
)

// Viper keys
const (
	KeyBaseURL         = "dictionary.base_url"
	KeyMediaURL        = "dictionary.media_url"
	KeyUserAgent       = "http.user_agent"
	KeyTimeout         = "http.timeout"
	KeyBreakerFailures = "http.breaker_failures"
	KeyAudioFile       = "audio.file"
	KeyPlayer          = "audio.player"
	KeyTTSFallback     = "audio.tts_fallback"
	KeyTTSProvider     = "audio.tts_provider"
	KeyOpenAIKey       = "audio.openai_key"
	KeyOpenAIModel     = "audio.openai_model"
	KeyOpenAIVoice     = "audio.openai_voice"
	KeyOpenAISpeed     = "audio.openai_speed"
	KeyPause           = "session.pause"
	KeyLogLevel        = "log.level"
)

// Config is the typed view of all settings
type Config struct {
	BaseURL         string
	MediaURL        string
	UserAgent       string
	Timeout         time.Duration
	BreakerFailures uint32

	AudioFile   string
	Player      string
	TTSFallback bool
	TTSProvider string
	OpenAIKey   string
	OpenAIModel string
	OpenAIVoice string
	OpenAISpeed float64

	Pause    time.Duration
	LogLevel string
}

// SetDefaults registers the default of every key on v
func SetDefaults(v *viper.Viper) {
	tts := audio.DefaultProviderConfig()

	v.SetDefault(KeyBaseURL, fetcher.DefaultBaseURL)
	v.SetDefault(KeyMediaURL, extract.DefaultMediaURL)
	v.SetDefault(KeyUserAgent, fetcher.DefaultUserAgent)
	v.SetDefault(KeyTimeout, fetcher.DefaultOptions().Timeout)
	v.SetDefault(KeyBreakerFailures, fetcher.DefaultOptions().BreakerFailures)
	v.SetDefault(KeyAudioFile, audio.DefaultAudioFile)
	v.SetDefault(KeyPlayer, "")
	v.SetDefault(KeyTTSFallback, false)
	v.SetDefault(KeyTTSProvider, tts.Provider)
	v.SetDefault(KeyOpenAIModel, tts.OpenAIModel)
	v.SetDefault(KeyOpenAIVoice, tts.OpenAIVoice)
	v.SetDefault(KeyOpenAISpeed, tts.OpenAISpeed)
	v.SetDefault(KeyPause, session.DefaultOptions().Pause)
	v.SetDefault(KeyLogLevel, "warn")
}

// Load reads and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		BaseURL:         v.GetString(KeyBaseURL),
		MediaURL:        v.GetString(KeyMediaURL),
		UserAgent:       v.GetString(KeyUserAgent),
		Timeout:         v.GetDuration(KeyTimeout),
		BreakerFailures: v.GetUint32(KeyBreakerFailures),
		AudioFile:       v.GetString(KeyAudioFile),
		Player:          v.GetString(KeyPlayer),
		TTSFallback:     v.GetBool(KeyTTSFallback),
		TTSProvider:     v.GetString(KeyTTSProvider),
		OpenAIKey:       v.GetString(KeyOpenAIKey),
		OpenAIModel:     v.GetString(KeyOpenAIModel),
		OpenAIVoice:     v.GetString(KeyOpenAIVoice),
		OpenAISpeed:     v.GetFloat64(KeyOpenAISpeed),
		Pause:           v.GetDuration(KeyPause),
		LogLevel:        v.GetString(KeyLogLevel),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and URL syntax
func (c *Config) Validate() error {
	for key, raw := range map[string]string{KeyBaseURL: c.BaseURL, KeyMediaURL: c.MediaURL} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s: invalid URL %q", key, raw)
		}
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%s must be positive, got %v", KeyTimeout, c.Timeout)
	}
	if c.BreakerFailures == 0 {
		return fmt.Errorf("%s must be at least 1", KeyBreakerFailures)
	}
	if strings.TrimSpace(c.AudioFile) == "" {
		return fmt.Errorf("%s must not be empty", KeyAudioFile)
	}
	if c.Pause < 0 {
		return fmt.Errorf("%s must not be negative, got %v", KeyPause, c.Pause)
	}
	if c.OpenAISpeed < 0.25 || c.OpenAISpeed > 4.0 {
		return fmt.Errorf("%s must be between 0.25 and 4.0, got %v", KeyOpenAISpeed, c.OpenAISpeed)
	}

	switch c.TTSProvider {
	case "auto", "openai", "espeak":
	default:
		return fmt.Errorf("%s: unknown provider %q (want auto, openai or espeak)", KeyTTSProvider, c.TTSProvider)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%s: unknown level %q", KeyLogLevel, c.LogLevel)
	}

	return nil
}

// FetcherOptions returns the page fetcher settings
func (c *Config) FetcherOptions() *fetcher.Options {
	return &fetcher.Options{
		BaseURL:         c.BaseURL,
		UserAgent:       c.UserAgent,
		Timeout:         c.Timeout,
		BreakerFailures: c.BreakerFailures,
	}
}

// DownloadOptions returns the pronunciation download settings
func (c *Config) DownloadOptions() *audio.DownloadOptions {
	opts := audio.DefaultDownloadOptions()
	opts.UserAgent = c.UserAgent
	opts.Timeout = c.Timeout
	return opts
}

// ProviderConfig returns the text-to-speech settings
func (c *Config) ProviderConfig() *audio.Config {
	pc := audio.DefaultProviderConfig()
	pc.Provider = c.TTSProvider
	pc.OpenAIKey = c.OpenAIKey
	pc.OpenAIModel = c.OpenAIModel
	pc.OpenAIVoice = c.OpenAIVoice
	pc.OpenAISpeed = c.OpenAISpeed
	return pc
}

// SessionOptions returns the interactive session settings
func (c *Config) SessionOptions() *session.Options {
	opts := session.DefaultOptions()
	opts.MediaURL = c.MediaURL
	opts.AudioFile = c.AudioFile
	opts.Pause = c.Pause
	return opts
}
