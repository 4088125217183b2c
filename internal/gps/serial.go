package gps

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// lineReader turns a deadline-capable byte stream into NMEA lines.
type lineReader struct {
	f       *os.File
	r       *bufio.Reader
	partial strings.Builder
}

func newLineReader(f *os.File) *lineReader {
	return &lineReader{f: f, r: bufio.NewReader(f)}
}

func (l *lineReader) ReadLine(ctx context.Context) (string, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	if err := l.f.SetReadDeadline(deadline); err != nil {
		return "", fmt.Errorf("set read deadline: %w", err)
	}

	stop := context.AfterFunc(ctx, func() {
		_ = l.f.SetReadDeadline(time.Now())
	})
	defer stop()

	chunk, err := l.r.ReadString('\n')
	l.partial.WriteString(chunk)
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", context.DeadlineExceeded
		}
		return "", err
	}
	line := strings.TrimRight(l.partial.String(), "\r\n")
	l.partial.Reset()
	return line, nil
}
