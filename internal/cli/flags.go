package cli

import (
	"time"

	"codeberg.org/snonux/mwlookup/internal/audio"
	"codeberg.org/snonux/mwlookup/internal/extract"
	"codeberg.org/snonux/mwlookup/internal/fetcher"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile  string
	LogLevel string

	// Dictionary site flags
	BaseURL         string
	MediaURL        string
	UserAgent       string
	Timeout         time.Duration
	BreakerFailures uint32

	// Audio flags
	AudioFile   string
	Player      string
	TTSFallback bool
	TTSProvider string

	// OpenAI flags
	OpenAIModel string
	OpenAIVoice string
	OpenAISpeed float64
	ListModels  bool

	// Session flags
	Pause time.Duration
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	tts := audio.DefaultProviderConfig()
	return &Flags{
		LogLevel:        "warn",
		BaseURL:         fetcher.DefaultBaseURL,
		MediaURL:        extract.DefaultMediaURL,
		UserAgent:       fetcher.DefaultUserAgent,
		Timeout:         30 * time.Second,
		BreakerFailures: 3,
		AudioFile:       audio.DefaultAudioFile,
		TTSProvider:     tts.Provider,
		OpenAIModel:     tts.OpenAIModel,
		OpenAIVoice:     tts.OpenAIVoice,
		OpenAISpeed:     tts.OpenAISpeed,
		Pause:           500 * time.Millisecond,
	}
}
