package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ESpeakConfig holds configuration for espeak-ng audio generation
type ESpeakConfig struct {
	Voice     string // Voice variant (e.g., "en-us", "en-us+m3", "en-us+f2")
	Speed     int    // Speech speed in words per minute (default: 140)
	Pitch     int    // Pitch adjustment, 0 to 99 (default: 50)
	Amplitude int    // Volume/amplitude, 0 to 200 (default: 100)
	WordGap   int    // Gap between words in 10ms units (default: 0)
}

// DefaultConfig returns the default configuration for US English
func DefaultConfig() *ESpeakConfig {
	return &ESpeakConfig{
		Voice:     "en-us",
		Speed:     140,
		Pitch:     50,
		Amplitude: 100,
		WordGap:   0,
	}
}

// ESpeak provides an interface to the espeak-ng text-to-speech engine
type ESpeak struct {
	config *ESpeakConfig
}

// New creates a new ESpeak instance with the given configuration
func New(config *ESpeakConfig) (*ESpeak, error) {
	if err := checkESpeakInstalled(); err != nil {
		return nil, err
	}

	if config == nil {
		config = DefaultConfig()
	}

	return &ESpeak{config: config}, nil
}

// GenerateWAV writes a WAV file for the given text
func (e *ESpeak) GenerateWAV(ctx context.Context, text string, outputFile string) error {
	if text == "" {
		return fmt.Errorf("text cannot be empty")
	}

	dir := filepath.Dir(outputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	output, err := exec.CommandContext(ctx, "espeak-ng", e.args(text, outputFile)...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

// args builds the espeak-ng command line
func (e *ESpeak) args(text, outputFile string) []string {
	args := []string{
		"-v", e.config.Voice,
		"-s", fmt.Sprintf("%d", e.config.Speed),
		"-p", fmt.Sprintf("%d", e.config.Pitch),
		"-a", fmt.Sprintf("%d", e.config.Amplitude),
	}

	if e.config.WordGap > 0 {
		args = append(args, "-g", fmt.Sprintf("%d", e.config.WordGap))
	}

	return append(args, "-w", outputFile, text)
}

// GenerateMP3 generates an MP3 file via a temporary WAV and ffmpeg
func (e *ESpeak) GenerateMP3(ctx context.Context, text string, outputFile string) error {
	tempWAV := strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + "_temp.wav"

	if err := e.GenerateWAV(ctx, text, tempWAV); err != nil {
		return err
	}

	if err := ConvertWAVToMP3(ctx, tempWAV, outputFile); err != nil {
		os.Remove(tempWAV)
		return err
	}

	return os.Remove(tempWAV)
}

// SetVoice updates the voice variant
func (e *ESpeak) SetVoice(voice string) {
	e.config.Voice = voice
}

// SetSpeed updates the speech speed
func (e *ESpeak) SetSpeed(speed int) {
	if speed < 80 {
		speed = 80
	} else if speed > 450 {
		speed = 450
	}
	e.config.Speed = speed
}

// SetPitch updates the pitch (0-99, 50 is default)
func (e *ESpeak) SetPitch(pitch int) {
	if pitch < 0 {
		pitch = 0
	} else if pitch > 99 {
		pitch = 99
	}
	e.config.Pitch = pitch
}

// SetAmplitude updates the volume/amplitude (0-200, 100 is default)
func (e *ESpeak) SetAmplitude(amplitude int) {
	if amplitude < 0 {
		amplitude = 0
	} else if amplitude > 200 {
		amplitude = 200
	}
	e.config.Amplitude = amplitude
}

// checkESpeakInstalled verifies that espeak-ng is available on the system
func checkESpeakInstalled() error {
	if _, err := exec.LookPath("espeak-ng"); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// ListVoices returns the English voice variants worth offering
func ListVoices() []string {
	return []string{
		"en-us",    // US English
		"en-us+m3", // US English male
		"en-us+f2", // US English female
		"en-gb",    // British English
		"en",       // Generic English
	}
}

// ConvertWAVToMP3 converts a WAV file to MP3 using ffmpeg
func ConvertWAVToMP3(ctx context.Context, wavFile, mp3File string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}

	output, err := exec.CommandContext(ctx, "ffmpeg", "-i", wavFile, "-acodec", "mp3", "-y", mp3File).CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}
