package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// resetViper gives the test a clean global viper and restores it afterwards
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCreateRootCommand(t *testing.T) {
	resetViper(t)

	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "mwlookup" {
		t.Errorf("Expected Use to be 'mwlookup', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "Merriam-Webster") {
		t.Errorf("Expected Short description to mention Merriam-Webster")
	}

	if err := cmd.Args(cmd, []string{"test"}); err == nil {
		t.Error("Expected positional arguments to be rejected")
	}

	// Test that flags are set up
	flagTests := []struct {
		name       string
		persistent bool
	}{
		{"config", true},
		{"log-level", true},
		{"base-url", false},
		{"media-url", false},
		{"user-agent", false},
		{"timeout", false},
		{"breaker-failures", false},
		{"audio-file", false},
		{"player", false},
		{"tts-fallback", false},
		{"tts-provider", false},
		{"openai-model", false},
		{"openai-voice", false},
		{"openai-speed", false},
		{"list-models", false},
		{"pause", false},
	}

	for _, tt := range flagTests {
		t.Run("flag_"+tt.name, func(t *testing.T) {
			var flag *pflag.Flag
			if tt.persistent {
				flag = cmd.PersistentFlags().Lookup(tt.name)
			} else {
				flag = cmd.Flags().Lookup(tt.name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", tt.name)
			}
		})
	}
}

func TestSetupFlags(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	tests := []struct {
		name     string
		expected string
	}{
		{"audio-file", "word_to_pronounce.mp3"},
		{"timeout", "30s"},
		{"pause", "500ms"},
		{"breaker-failures", "3"},
		{"tts-fallback", "false"},
		{"player", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("%s flag not found", tt.name)
			}
			if flag.DefValue != tt.expected {
				t.Errorf("Expected default %s to be %q, got %q", tt.name, tt.expected, flag.DefValue)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
				content := `audio:
  openai_key: test-key
  file: from-config.mp3`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)

			cfgPath := tt.setupFunc(t)
			InitConfig(cfgPath)

			// Test environment variable prefix
			t.Setenv("MWLOOKUP_TEST_VAR", "test-value")
			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}

			// Nested keys map to underscored variables
			t.Setenv("MWLOOKUP_AUDIO_PLAYER", "mpg123 -q")
			if got := viper.GetString("audio.player"); got != "mpg123 -q" {
				t.Errorf("audio.player = %q, want from environment", got)
			}

			if cfgPath != "" {
				if got := viper.GetString("audio.file"); got != "from-config.mp3" {
					t.Errorf("audio.file = %q, want from-config.mp3", got)
				}
				if got := viper.GetString("audio.openai_key"); got != "test-key" {
					t.Errorf("audio.openai_key = %q, want test-key", got)
				}
			}
		})
	}
}

func TestGetOpenAIKey(t *testing.T) {
	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{
			name:      "from environment",
			envKey:    "env-test-key",
			configKey: "config-test-key",
			expected:  "env-test-key",
		},
		{
			name:      "from config when no env",
			envKey:    "",
			configKey: "config-test-key",
			expected:  "config-test-key",
		},
		{
			name:      "empty when neither set",
			envKey:    "",
			configKey: "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)

			// An empty value counts as unset
			t.Setenv("OPENAI_API_KEY", tt.envKey)

			if tt.configKey != "" {
				viper.Set("audio.openai_key", tt.configKey)
			}

			got := GetOpenAIKey()
			if got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBindFlagsToViper(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Set some flag values
	cmd.Flags().Set("audio-file", "/tmp/word.mp3")
	cmd.Flags().Set("timeout", "5s")
	cmd.Flags().Set("openai-model", "tts-1-hd")
	cmd.Flags().Set("tts-fallback", "true")
	cmd.PersistentFlags().Set("log-level", "debug")

	if got := viper.GetString("audio.file"); got != "/tmp/word.mp3" {
		t.Errorf("Expected audio.file to be /tmp/word.mp3, got %s", got)
	}

	if got := viper.GetDuration("http.timeout"); got != 5*time.Second {
		t.Errorf("Expected http.timeout to be 5s, got %v", got)
	}

	if got := viper.GetString("audio.openai_model"); got != "tts-1-hd" {
		t.Errorf("Expected audio.openai_model to be tts-1-hd, got %s", got)
	}

	if !viper.GetBool("audio.tts_fallback") {
		t.Error("Expected audio.tts_fallback to be true")
	}

	if got := viper.GetString("log.level"); got != "debug" {
		t.Errorf("Expected log.level to be debug, got %s", got)
	}
}

func TestLoadConfig(t *testing.T) {
	resetViper(t)
	t.Setenv("OPENAI_API_KEY", "env-key")

	cmd := &cobra.Command{}
	setupFlags(cmd, NewFlags())
	InitConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	cmd.Flags().Set("pause", "0s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.OpenAIKey != "env-key" {
		t.Errorf("OpenAIKey = %q, want env-key", cfg.OpenAIKey)
	}
	if cfg.Pause != 0 {
		t.Errorf("Pause = %v, want 0", cfg.Pause)
	}
	if cfg.AudioFile != "word_to_pronounce.mp3" {
		t.Errorf("AudioFile = %q", cfg.AudioFile)
	}

	cmd.Flags().Set("breaker-failures", "0")
	if _, err := LoadConfig(); err == nil {
		t.Error("Expected error for zero breaker failures")
	}
}
