package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	// MsgEmptyWord is printed when a word prompt receives an empty line
	MsgEmptyWord = "Please Enter a non-empty word."
	// MsgBadCommand is printed when a yes/no prompt receives anything else
	MsgBadCommand = "Please Enter an appropriate command."
)

// Validator checks an answer. A non-empty return value is the message to
// print before asking again.
type Validator func(answer string) string

// Prompter reads answers line by line from an input stream
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// A single reader goroutine feeds lines so a read blocked on input
	// never holds up cancellation.
	start   sync.Once
	lines   chan string
	readErr error
}

// New creates a Prompter. Labels and validation messages go to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan string),
	}
}

// Ask prints label, reads one line and validates it, repeating until the
// answer is accepted. Only the line terminator is stripped from the answer.
// It returns an error wrapping io.EOF when input runs out, or ctx.Err()
// when ctx ends while waiting for input.
func (p *Prompter) Ask(ctx context.Context, label string, validate Validator) (string, error) {
	for {
		fmt.Fprint(p.out, label)

		answer, err := p.next(ctx)
		if err != nil {
			return "", fmt.Errorf("reading answer to %q: %w", strings.TrimSpace(label), err)
		}

		if validate == nil {
			return answer, nil
		}
		msg := validate(answer)
		if msg == "" {
			return answer, nil
		}
		fmt.Fprintf(p.out, "%s\n\n", msg)
	}
}

// next waits for the next line of input or the end of ctx
func (p *Prompter) next(ctx context.Context) (string, error) {
	p.start.Do(func() {
		go p.readLines()
	})

	if err := ctx.Err(); err != nil {
		return "", err
	}

	select {
	case line, ok := <-p.lines:
		if !ok {
			return "", p.readErr
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// readLines forwards lines until the first read error, which is kept in
// readErr before the channel is closed.
func (p *Prompter) readLines() {
	for {
		line, err := p.readLine()
		if err != nil {
			p.readErr = err
			close(p.lines)
			return
		}
		p.lines <- line
	}
}

// readLine returns the next line without its "\n" or "\r\n". A final line
// without terminator is still returned; io.EOF only comes with no data.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Word asks for a non-empty word
func (p *Prompter) Word(ctx context.Context, label string) (string, error) {
	return p.Ask(ctx, label, NonEmpty)
}

// Confirm asks a [Y/n] question and reports whether the answer is affirmative
func (p *Prompter) Confirm(ctx context.Context, label string) (bool, error) {
	answer, err := p.Ask(ctx, label, YesNo)
	if err != nil {
		return false, err
	}
	return Affirmative(answer), nil
}

// NonEmpty rejects the empty string
func NonEmpty(answer string) string {
	if answer == "" {
		return MsgEmptyWord
	}
	return ""
}

// OneOf accepts only the listed answers, compared exactly
func OneOf(accepted ...string) Validator {
	return func(answer string) string {
		for _, a := range accepted {
			if answer == a {
				return ""
			}
		}
		return MsgBadCommand
	}
}

// YesNo accepts Y, y, N, n and the empty answer
var YesNo = OneOf("Y", "y", "N", "n", "")

// Affirmative reports whether a YesNo answer means yes. The empty answer
// is the default and counts as yes.
func Affirmative(answer string) bool {
	return answer == "" || answer == "Y" || answer == "y"
}
