package audio

import (
	"context"
	"fmt"
	"log/slog"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// GenerateAudio generates audio from text and saves it to the specified file
	GenerateAudio(ctx context.Context, text string, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for text-to-speech providers
type Config struct {
	Provider string // Provider name: "auto", "openai" or "espeak"

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIBaseURL     string  // API root, empty for the public endpoint
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer"
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts model

	// espeak-ng settings
	ESpeakVoice string
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:          "auto",
		OpenAIModel:       "tts-1",
		OpenAIVoice:       "alloy",
		OpenAISpeed:       1.0,
		OpenAIInstruction: "Pronounce the English dictionary headword slowly and clearly, in a neutral American accent.",
		ESpeakVoice:       DefaultConfig().Voice,
	}
}

// NewProvider creates the appropriate audio provider based on configuration.
// "auto" prefers OpenAI when a key is set and falls back to espeak-ng.
func NewProvider(config *Config, logger *slog.Logger) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config, logger)

	case "espeak":
		return NewESpeakProvider(espeakConfig(config))

	case "auto", "":
		espeak := &ESpeakProvider{espeak: &ESpeak{config: espeakConfig(config)}}
		if config.OpenAIKey == "" {
			return espeak, nil
		}
		openai, err := NewOpenAIProvider(config, logger)
		if err != nil {
			return nil, err
		}
		return NewProviderWithFallback(openai, espeak, logger), nil

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}

func espeakConfig(config *Config) *ESpeakConfig {
	ec := DefaultConfig()
	if config.ESpeakVoice != "" {
		ec.Voice = config.ESpeakVoice
	}
	return ec
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
	log      *slog.Logger
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		log:      logger.With("component", "tts"),
	}
}

// GenerateAudio tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	err := p.primary.GenerateAudio(ctx, text, outputFile)
	if err != nil {
		p.log.Warn("primary provider failed, falling back",
			"primary", p.primary.Name(), "fallback", p.fallback.Name(), "err", err)
		return p.fallback.GenerateAudio(ctx, text, outputFile)
	}
	return nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
