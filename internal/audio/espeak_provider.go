package audio

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ESpeakProvider implements Provider interface for espeak-ng
type ESpeakProvider struct {
	espeak *ESpeak
}

// NewESpeakProvider creates a new espeak-ng provider
func NewESpeakProvider(config *ESpeakConfig) (Provider, error) {
	espeak, err := New(config)
	if err != nil {
		return nil, err
	}

	return &ESpeakProvider{espeak: espeak}, nil
}

// GenerateAudio generates audio using espeak-ng. The format follows the
// extension of outputFile, defaulting to MP3.
func (p *ESpeakProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateSpeechText(text); err != nil {
		return err
	}

	if strings.ToLower(filepath.Ext(outputFile)) == ".wav" {
		return p.espeak.GenerateWAV(ctx, text, outputFile)
	}
	return p.espeak.GenerateMP3(ctx, text, outputFile)
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng and ffmpeg are installed
func (p *ESpeakProvider) IsAvailable() error {
	if err := checkESpeakInstalled(); err != nil {
		return err
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}
	return nil
}
