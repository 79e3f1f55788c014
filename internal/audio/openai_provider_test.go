package audio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/mwlookup/internal/logging"
	"codeberg.org/snonux/mwlookup/internal/testutil"
)

func TestNewOpenAIProvider(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "missing API key",
			config: &Config{
				OpenAIKey: "",
			},
			wantErr: true,
			errMsg:  "OpenAI API key is required",
		},
		{
			name: "valid config",
			config: &Config{
				OpenAIKey: "test-key",
			},
			wantErr: false,
		},
		{
			name: "custom base URL",
			config: &Config{
				OpenAIKey:     "test-key",
				OpenAIBaseURL: "http://localhost:1234/v1",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewOpenAIProvider(tt.config, logging.Discard())
			if (err != nil) != tt.wantErr {
				t.Errorf("NewOpenAIProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil && err.Error() != tt.errMsg {
				t.Errorf("NewOpenAIProvider() error = %v, want %v", err.Error(), tt.errMsg)
			}

			if !tt.wantErr && provider != nil {
				if provider.Name() != "openai" {
					t.Errorf("Name() = %v, want %v", provider.Name(), "openai")
				}
			}
		})
	}
}

func TestOpenAIProviderIsAvailable(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "with API key",
			config:  &Config{OpenAIKey: "test-key"},
			wantErr: false,
		},
		{
			name:    "without API key",
			config:  &Config{OpenAIKey: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &OpenAIProvider{config: tt.config}
			err := provider.IsAvailable()
			if (err != nil) != tt.wantErr {
				t.Errorf("IsAvailable() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPreprocessText(t *testing.T) {
	provider := &OpenAIProvider{config: &Config{}}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple word",
			input:    "serendipity",
			expected: "serendipity",
		},
		{
			name:     "word with punctuation",
			input:    "serendipity!",
			expected: "serendipity",
		},
		{
			name:     "quoted word",
			input:    "\"test?\"",
			expected: "test",
		},
		{
			name:     "word with spaces",
			input:    "  test  ",
			expected: "test",
		},
		{
			name:     "hyphen and apostrophe kept",
			input:    "o'clock mother-in-law",
			expected: "o'clock mother-in-law",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := provider.preprocessText(tt.input)
			if result != tt.expected {
				t.Errorf("preprocessText(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSupportsInstructions(t *testing.T) {
	provider := &OpenAIProvider{config: &Config{OpenAIModel: "tts-1", OpenAIInstruction: "slowly"}}
	if provider.supportsInstructions() {
		t.Error("tts-1 should not receive instructions")
	}

	provider.config.OpenAIModel = "gpt-4o-mini-tts"
	if !provider.supportsInstructions() {
		t.Error("gpt-4o-mini-tts should receive instructions")
	}

	provider.config.OpenAIInstruction = ""
	if provider.supportsInstructions() {
		t.Error("empty instruction should not be sent")
	}
}

func TestGenerateAudioValidation(t *testing.T) {
	provider := &OpenAIProvider{config: &Config{OpenAIKey: "test-key"}}

	ctx := context.Background()

	err := provider.GenerateAudio(ctx, "12345", "output.mp3")
	if err == nil {
		t.Fatal("Expected error for text without letters")
	}
	if !strings.Contains(err.Error(), "must contain at least one letter") {
		t.Errorf("Expected validation error, got: %v", err)
	}

	if err := provider.GenerateAudio(ctx, "", "output.mp3"); err == nil {
		t.Error("Expected error for empty text")
	}
}

func TestGenerateAudio_SpeechEndpoint(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			http.NotFound(w, r)
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(testutil.MP3Data())
	}))
	defer srv.Close()

	config := DefaultProviderConfig()
	config.OpenAIKey = "test-key"
	config.OpenAIBaseURL = srv.URL + "/v1"

	provider, err := NewOpenAIProvider(config, logging.Discard())
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}

	output := filepath.Join(t.TempDir(), "nested", "word.mp3")
	if err := provider.GenerateAudio(context.Background(), "serendipity.", output); err != nil {
		t.Fatalf("GenerateAudio() error = %v", err)
	}

	testutil.AssertFileContent(t, output, testutil.MP3Data())

	if got["input"] != "serendipity" {
		t.Errorf("input = %v, want serendipity", got["input"])
	}
	if got["model"] != "tts-1" {
		t.Errorf("model = %v, want tts-1", got["model"])
	}
	if got["voice"] != "alloy" {
		t.Errorf("voice = %v, want alloy", got["voice"])
	}
	if got["response_format"] != "mp3" {
		t.Errorf("response_format = %v, want mp3", got["response_format"])
	}
	if _, ok := got["instructions"]; ok {
		t.Error("tts-1 request should not carry instructions")
	}
}

func TestGenerateAudio_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	config := DefaultProviderConfig()
	config.OpenAIKey = "bad-key"
	config.OpenAIBaseURL = srv.URL + "/v1"

	provider, err := NewOpenAIProvider(config, logging.Discard())
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}

	output := filepath.Join(t.TempDir(), "word.mp3")
	err = provider.GenerateAudio(context.Background(), "test", output)
	if err == nil {
		t.Fatal("Expected API error")
	}
	if !strings.Contains(err.Error(), "OpenAI TTS API error") {
		t.Errorf("Expected wrapped API error, got %v", err)
	}
	testutil.AssertFileNotExists(t, output)
}
