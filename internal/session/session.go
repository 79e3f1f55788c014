package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"codeberg.org/snonux/mwlookup/internal/audio"
	"codeberg.org/snonux/mwlookup/internal/extract"
	"codeberg.org/snonux/mwlookup/internal/fetcher"
	"codeberg.org/snonux/mwlookup/internal/prompt"
)

// Pages fetches the dictionary pages a session needs
type Pages interface {
	HomePage(ctx context.Context) (*fetcher.Page, error)
	WordPage(ctx context.Context, word string) (*fetcher.Page, error)
}

// Downloader saves a pronunciation to a local file
type Downloader interface {
	Download(ctx context.Context, url, path string) error
}

// Deps are the collaborators of a Session. TTS is optional; when set, words
// without a recorded pronunciation are synthesized instead.
type Deps struct {
	Pages      Pages
	Downloader Downloader
	Player     audio.Player
	TTS        audio.Provider
}

// Options tunes a Session
type Options struct {
	MediaURL  string        // Root URL of the pronunciation MP3s
	AudioFile string        // Fixed local file the pronunciation is written to
	Pause     time.Duration // Pause between output sections
	Locator   extract.WordOfDayLocator
}

// DefaultOptions returns the production settings
func DefaultOptions() *Options {
	return &Options{
		MediaURL:  extract.DefaultMediaURL,
		AudioFile: audio.DefaultAudioFile,
		Pause:     500 * time.Millisecond,
		Locator:   extract.DefaultWordOfDayLocator(),
	}
}

// Session runs one interactive lookup from welcome banner to farewell
type Session struct {
	deps   Deps
	opts   *Options
	prompt *prompt.Prompter
	out    io.Writer
	upper  cases.Caser
	log    *slog.Logger
	trace  []State
}

// New creates a session reading answers from in and printing to out
func New(deps Deps, opts *Options, in io.Reader, out io.Writer, logger *slog.Logger) *Session {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Locator == nil {
		opts.Locator = extract.DefaultWordOfDayLocator()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		deps:   deps,
		opts:   opts,
		prompt: prompt.New(in, out),
		out:    out,
		upper:  cases.Upper(language.Und),
		log:    logger.With("component", "session"),
	}
}

// Trace returns the states visited so far, in order
func (s *Session) Trace() []State {
	return append([]State(nil), s.trace...)
}

func (s *Session) enter(state State) {
	s.trace = append(s.trace, state)
	s.log.Debug("state", "state", state)
}

// Run executes the session. Errors other than the locally recovered ones
// (empty input, unknown word, missing pronunciation) end the session.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprint(s.out, LineBreak)
	fmt.Fprintln(s.out, msgWelcome)
	fmt.Fprint(s.out, LineBreak)

	if err := s.wordOfDay(ctx); err != nil {
		return err
	}
	fmt.Fprint(s.out, LineBreak)

	word, page, err := s.lookup(ctx)
	if err != nil {
		return err
	}

	fmt.Fprint(s.out, LineBreak)
	s.displayDefinitions(word, page)

	if err := s.pause(ctx); err != nil {
		return err
	}
	fmt.Fprint(s.out, LineBreak)

	if err := s.pronounce(ctx, word, page); err != nil {
		return err
	}

	if err := s.pause(ctx); err != nil {
		return err
	}
	fmt.Fprint(s.out, LineBreak)
	fmt.Fprintln(s.out, msgFarewell)
	fmt.Fprint(s.out, LineBreak)

	s.enter(StateEnd)
	return nil
}

func (s *Session) wordOfDay(ctx context.Context) error {
	home, err := s.deps.Pages.HomePage(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch home page: %w", err)
	}

	word, err := s.opts.Locator.Locate(home.Doc)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, msgWordOfDay, word)
	return nil
}

// lookup prompts until a word resolves to a dictionary entry
func (s *Session) lookup(ctx context.Context) (string, *fetcher.Page, error) {
	label := labelSearch
	for {
		s.enter(StateAwaitWord)
		word, err := s.prompt.Word(ctx, label)
		if err != nil {
			return "", nil, err
		}

		s.enter(StateFetching)
		page, err := s.deps.Pages.WordPage(ctx, word)
		if err != nil {
			return "", nil, fmt.Errorf("failed to look up %q: %w", word, err)
		}

		if !page.NotFound() {
			s.enter(StateValid)
			return word, page, nil
		}

		s.enter(StateInvalid)
		s.log.Info("word not in dictionary", "word", word, "status", page.StatusCode)
		fmt.Fprintf(s.out, msgNotFound, word)
		label = labelTryAgain
	}
}

func (s *Session) displayDefinitions(word string, page *fetcher.Page) {
	s.enter(StateDisplayDefinitions)
	fmt.Fprintf(s.out, msgDefinitionOf, s.upper.String(word))

	cursor := extract.Definitions(page.Doc, page.Raw)
	s.log.Debug("definitions announced", "word", word, "count", cursor.Count())

	for {
		r := cursor.Next()
		if r.Kind == extract.KindNoMoreEntries {
			if r.Early() {
				fmt.Fprintln(s.out, msgLastEntry)
			}
			return
		}

		if cursor.Single() {
			fmt.Fprintln(s.out, r.Text)
		} else {
			fmt.Fprintf(s.out, "Entry %d%s\n", r.Ordinal, r.Text)
		}
	}
}

// pronounce offers the recorded pronunciation, or a synthesized one when a
// TTS provider is configured and the page has none.
func (s *Session) pronounce(ctx context.Context, word string, page *fetcher.Page) error {
	url, err := extract.PronunciationURL(page.Raw, s.opts.MediaURL)
	if err != nil {
		if !errors.Is(err, extract.ErrNoPronunciation) {
			return err
		}
		fmt.Fprintf(s.out, msgNoPronunciation, word)

		if !s.synthesize(ctx, word) {
			s.enter(StateSkip)
			return nil
		}
		return s.offer(ctx, nil)
	}

	return s.offer(ctx, func() error {
		if err := s.deps.Downloader.Download(ctx, url, s.opts.AudioFile); err != nil {
			return fmt.Errorf("failed to download pronunciation of %q: %w", word, err)
		}
		return nil
	})
}

// offer asks whether to play the audio file and repeats while the answer is
// affirmative. fetch, when set, runs once after the first answer whatever
// that answer is.
func (s *Session) offer(ctx context.Context, fetch func() error) error {
	s.enter(StateAwaitPronounceChoice)
	play, err := s.prompt.Confirm(ctx, labelPronounce)
	if err != nil {
		return err
	}

	if fetch != nil {
		if err := fetch(); err != nil {
			return err
		}
	}

	if !play {
		s.enter(StateSkip)
		return nil
	}

	for play {
		s.enter(StatePlay)
		if err := s.deps.Player.Play(ctx, s.opts.AudioFile); err != nil {
			return fmt.Errorf("failed to play %s: %w", s.opts.AudioFile, err)
		}

		s.enter(StateAwaitRepeatChoice)
		if play, err = s.prompt.Confirm(ctx, labelRepeat); err != nil {
			return err
		}
	}
	return nil
}

// synthesize writes a TTS rendition of word to the audio file. Failures are
// logged and reported as false, the session then carries on without audio.
func (s *Session) synthesize(ctx context.Context, word string) bool {
	if s.deps.TTS == nil {
		return false
	}
	if err := s.deps.TTS.IsAvailable(); err != nil {
		s.log.Warn("text-to-speech unavailable", "provider", s.deps.TTS.Name(), "err", err)
		return false
	}
	if err := s.deps.TTS.GenerateAudio(ctx, word, s.opts.AudioFile); err != nil {
		s.log.Warn("text-to-speech failed", "provider", s.deps.TTS.Name(), "word", word, "err", err)
		return false
	}

	s.log.Info("synthesized pronunciation", "provider", s.deps.TTS.Name(), "word", word)
	return true
}

func (s *Session) pause(ctx context.Context) error {
	if s.opts.Pause <= 0 {
		return nil
	}

	timer := time.NewTimer(s.opts.Pause)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
