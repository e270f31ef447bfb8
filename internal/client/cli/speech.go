package cli

import (
	"context"
	"fmt"
	"io"
)

// consoleSpeaker stands in for a speech engine by printing what would be
// said.
type consoleSpeaker struct {
	out io.Writer
}

func (s *consoleSpeaker) Speak(_ context.Context, text string) error {
	_, err := fmt.Fprintf(s.out, "Saying: %q\n", text)
	return err
}

type consolePlayer struct {
	out io.Writer
}

func (p *consolePlayer) Play(_ context.Context, name, url string) error {
	_, err := fmt.Fprintf(p.out, "Playing %s: %s\n", name, url)
	return err
}
