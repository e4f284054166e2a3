package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// lineReader hands scanner lines over a channel so that a blocked read can
// be abandoned when the context is cancelled.
type lineReader struct {
	lines <-chan string
	// err is the scanner error, valid once lines is closed.
	err error
}

func newLineReader(ctx context.Context, scanner *bufio.Scanner) *lineReader {
	ch := make(chan string)
	r := &lineReader{lines: ch}
	go func() {
		defer close(ch)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		r.err = scanner.Err()
	}()
	return r
}

// ReadLine returns the next line. It returns io.EOF at the end of input and
// ctx.Err() once ctx is done.
func (r *lineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			if r.err != nil {
				return "", r.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// GetSimpleText prints prompt and returns the next trimmed line.
func GetSimpleText(ctx context.Context, r *lineReader, prompt string, println func(a ...any) (int, error)) (string, error) {
	if _, err := println(prompt); err != nil {
		return "", err
	}
	line, err := r.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question; only "y" or "yes" count as yes.
func Confirm(ctx context.Context, r *lineReader, prompt string, println func(a ...any) (int, error)) (bool, error) {
	answer, err := GetSimpleText(ctx, r, prompt, println)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
