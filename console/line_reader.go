package console

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// LineReader hands out input lines one at a time. Both seats of a
// hot-seat match share a single LineReader over stdin.
type LineReader struct {
	lines chan string
	err   error
}

func NewLineReader(in io.Reader) *LineReader {
	lr := &LineReader{lines: make(chan string)}

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lr.lines <- strings.TrimSpace(scanner.Text())
		}

		lr.err = scanner.Err()
		if lr.err == nil {
			lr.err = io.EOF
		}
		close(lr.lines)
	}()

	return lr
}

// ReadLine blocks until a line is available, the input ends or ctx is
// done.
func (lr *LineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if !ok {
			return "", lr.err
		}
		return line, nil
	}
}
