package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/mwlookup/internal/audio"
	"codeberg.org/snonux/mwlookup/internal/cli"
	"codeberg.org/snonux/mwlookup/internal/fetcher"
	"codeberg.org/snonux/mwlookup/internal/logging"
	"codeberg.org/snonux/mwlookup/internal/models"
	"codeberg.org/snonux/mwlookup/internal/session"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	// The first interrupt cancels the session, after that the default
	// handling applies again
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	context.AfterFunc(ctx, stop)

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cfg.ProviderConfig(), os.Stdout)
		return lister.ListAvailableModels(cmd.Context())
	}

	logger := logging.New(cfg.LogLevel)

	deps := session.Deps{
		Pages:      fetcher.New(cfg.FetcherOptions(), logger),
		Downloader: audio.NewDownloader(cfg.DownloadOptions(), logger),
		Player:     audio.NewPlayer(cfg.Player, logger),
	}

	// Handle --tts-fallback flag
	if cfg.TTSFallback {
		provider, err := audio.NewProvider(cfg.ProviderConfig(), logger)
		if err != nil {
			return fmt.Errorf("failed to set up text-to-speech: %w", err)
		}
		deps.TTS = provider
	}

	sess := session.New(deps, cfg.SessionOptions(), os.Stdin, os.Stdout, logger)
	return sess.Run(cmd.Context())
}
