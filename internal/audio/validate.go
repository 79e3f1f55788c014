package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// ErrNotMP3 means the data does not start like an MP3 stream
var ErrNotMP3 = errors.New("not an MP3 stream")

// ValidateSpeechText checks that text is worth sending to a TTS engine
func ValidateSpeechText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			return nil
		}
	}

	return fmt.Errorf("text must contain at least one letter")
}

// ValidateMP3 accepts data starting with an ID3v2 tag or an MPEG frame sync
func ValidateMP3(header []byte) error {
	if bytes.HasPrefix(header, []byte("ID3")) {
		return nil
	}
	if len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0 {
		return nil
	}
	return ErrNotMP3
}

// ValidateMP3File reads the first bytes of path and runs ValidateMP3
func ValidateMP3File(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, 3)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := ValidateMP3(header[:n]); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
