package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoPlayer is returned when no audio player is installed
var ErrNoPlayer = errors.New("no audio player found")

// Player plays an audio file and returns once playback has finished
type Player interface {
	Play(ctx context.Context, file string) error
}

// playerCandidates lists the command lines tried on each platform, in order
// of preference. The audio file is appended as the last argument.
var playerCandidates = map[string][][]string{
	"darwin": {
		{"afplay"},
	},
	"linux": {
		{"mpg123", "-q"}, // handles MP3 files best
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
		{"play", "-q"}, // SoX
		{"paplay"},
		{"aplay", "-q"},
	},
	"windows": {
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
		{"mpg123", "-q"},
	},
}

// DetectPlayer returns the first player command found for goos
func DetectPlayer(goos string, lookPath func(string) (string, error)) ([]string, error) {
	candidates, ok := playerCandidates[goos]
	if !ok {
		candidates = playerCandidates["linux"]
	}

	for _, candidate := range candidates {
		if _, err := lookPath(candidate[0]); err == nil {
			return candidate, nil
		}
	}

	names := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		names = append(names, candidate[0])
	}
	return nil, fmt.Errorf("%w on %s. Install one of: %s", ErrNoPlayer, goos, strings.Join(names, ", "))
}

// ExecPlayer plays files through an external command and waits for it to exit
type ExecPlayer struct {
	command []string
	log     *slog.Logger
}

// NewExecPlayer creates a player. A non-empty command (e.g. "mpv --no-video")
// overrides platform detection.
func NewExecPlayer(command string, logger *slog.Logger) (*ExecPlayer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	args := strings.Fields(command)
	if len(args) == 0 {
		detected, err := DetectPlayer(runtime.GOOS, exec.LookPath)
		if err != nil {
			return nil, err
		}
		args = detected
	}

	return &ExecPlayer{
		command: args,
		log:     logger.With("component", "player", "command", args[0]),
	}, nil
}

// Command returns the command line used for playback, without the file
func (p *ExecPlayer) Command() []string {
	return append([]string(nil), p.command...)
}

// Play runs the player and blocks until it exits
func (p *ExecPlayer) Play(ctx context.Context, file string) error {
	args := append(p.Command()[1:], file)
	cmd := exec.CommandContext(ctx, p.command[0], args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	p.log.Debug("playing", "file", file)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("playback with %s failed: %w: %s", p.command[0], err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// NewPlayer is NewExecPlayer for callers that must start without a player.
// When none can be set up the returned Player fails every Play with the
// setup error.
func NewPlayer(command string, logger *slog.Logger) Player {
	player, err := NewExecPlayer(command, logger)
	if err != nil {
		if logger != nil {
			logger.Warn("audio playback disabled", "err", err)
		}
		return missingPlayer{err: err}
	}
	return player
}

type missingPlayer struct {
	err error
}

func (p missingPlayer) Play(context.Context, string) error {
	return p.err
}
