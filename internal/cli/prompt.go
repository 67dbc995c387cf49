package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

type inputLine struct {
	text string
	err  error
}

// readLines pumps lines from r into a channel so a prompt can be
// abandoned when the context is cancelled instead of blocking on the
// read. The channel closes once the reader is exhausted.
func readLines(r io.Reader) <-chan inputLine {
	ch := make(chan inputLine)
	go func() {
		br := bufio.NewReader(r)
		for {
			text, err := br.ReadString('\n')
			ch <- inputLine{text: text, err: err}
			if err != nil {
				close(ch)
				return
			}
		}
	}()
	return ch
}

// prompt writes the prompt text and reads one trimmed line. io.EOF is
// returned when input is exhausted (e.g. piped stdin), which the menu
// loop treats as a normal exit. Context cancellation returns ctx.Err().
func (a *App) prompt(ctx context.Context, text string) (string, error) {
	fmt.Fprint(a.out, text)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-a.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil && l.text == "" {
			if l.err == io.EOF {
				return "", io.EOF
			}
			return "", fmt.Errorf("read input: %w", l.err)
		}
		return strings.TrimSpace(l.text), nil
	}
}

// confirm asks a yes/no question, defaulting to no.
func (a *App) confirm(ctx context.Context, text string) (bool, error) {
	answer, err := a.prompt(ctx, text)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
