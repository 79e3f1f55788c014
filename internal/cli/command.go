package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/mwlookup/internal"
	"codeberg.org/snonux/mwlookup/internal/config"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mwlookup",
		Short: "Interactive Merriam-Webster dictionary lookup",
		Long: `mwlookup looks up English words on the Merriam-Webster website.

It shows the word of the day, asks for a word, prints its definitions
and plays the recorded pronunciation on request.

Examples:
  mwlookup                         # Start an interactive lookup
  mwlookup --player "mpv --no-video"
  mwlookup --tts-fallback          # Synthesize words without a recording
  mwlookup --list-models           # Show text-to-speech models and voices`,
		Args:         cobra.NoArgs,
		Version:      internal.Version,
		SilenceUsage: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.mwlookup.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Dictionary site flags
	cmd.Flags().StringVar(&flags.BaseURL, "base-url", flags.BaseURL, "Dictionary site root")
	cmd.Flags().StringVar(&flags.MediaURL, "media-url", flags.MediaURL, "Root URL of the pronunciation MP3s")
	cmd.Flags().StringVar(&flags.UserAgent, "user-agent", flags.UserAgent, "User-Agent sent to the dictionary site")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "HTTP request timeout")
	cmd.Flags().Uint32Var(&flags.BreakerFailures, "breaker-failures", flags.BreakerFailures, "Consecutive network failures before requests fail fast")

	// Audio flags
	cmd.Flags().StringVar(&flags.AudioFile, "audio-file", flags.AudioFile, "Local file the pronunciation is saved to")
	cmd.Flags().StringVar(&flags.Player, "player", "", "Audio player command (default: auto-detect afplay, mpg123, ffplay, play, paplay, aplay)")
	cmd.Flags().BoolVar(&flags.TTSFallback, "tts-fallback", false, "Synthesize a pronunciation when the dictionary has no recording")
	cmd.Flags().StringVar(&flags.TTSProvider, "tts-provider", flags.TTSProvider, "Text-to-speech provider: auto, openai, espeak")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, fable, onyx, nova, sage, shimmer")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available text-to-speech models and voices")

	// Session flags
	cmd.Flags().DurationVar(&flags.Pause, "pause", flags.Pause, "Pause between output sections")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag(config.KeyLogLevel, cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag(config.KeyBaseURL, cmd.Flags().Lookup("base-url"))
	viper.BindPFlag(config.KeyMediaURL, cmd.Flags().Lookup("media-url"))
	viper.BindPFlag(config.KeyUserAgent, cmd.Flags().Lookup("user-agent"))
	viper.BindPFlag(config.KeyTimeout, cmd.Flags().Lookup("timeout"))
	viper.BindPFlag(config.KeyBreakerFailures, cmd.Flags().Lookup("breaker-failures"))
	viper.BindPFlag(config.KeyAudioFile, cmd.Flags().Lookup("audio-file"))
	viper.BindPFlag(config.KeyPlayer, cmd.Flags().Lookup("player"))
	viper.BindPFlag(config.KeyTTSFallback, cmd.Flags().Lookup("tts-fallback"))
	viper.BindPFlag(config.KeyTTSProvider, cmd.Flags().Lookup("tts-provider"))
	viper.BindPFlag(config.KeyOpenAIModel, cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag(config.KeyOpenAIVoice, cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag(config.KeyOpenAISpeed, cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag(config.KeyPause, cmd.Flags().Lookup("pause"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".mwlookup" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mwlookup")
	}

	// Environment variables, e.g. MWLOOKUP_AUDIO_PLAYER for audio.player
	viper.SetEnvPrefix("MWLOOKUP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString(config.KeyOpenAIKey)
}

// LoadConfig assembles the typed configuration from viper
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.OpenAIKey = GetOpenAIKey()
	return cfg, nil
}
