// Package console is the operator's line channel: commands in, records and
// replies out.
package console

import (
	"bufio"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Prompt is shown before input when a person is typing.
const Prompt = "->"

// lineBuffer bounds how far the reader may run ahead of the main loop.
const lineBuffer = 16

// Console reads lines on its own goroutine and hands them to the main loop,
// which drains them without blocking.
type Console struct {
	in          io.Reader
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	lines       chan string
	once        sync.Once
}

// New wraps in and out. interactive enables the prompt.
func New(in io.Reader, out io.Writer, interactive bool) *Console {
	return &Console{in: in, out: out, interactive: interactive, lines: make(chan string, lineBuffer)}
}

// Stdio returns a console on stdin/stdout, prompting only when stdin is a
// terminal.
func Stdio() *Console {
	return New(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}

// Start launches the reader goroutine. The line channel closes at EOF.
func (c *Console) Start() {
	c.once.Do(func() {
		go c.read()
	})
}

func (c *Console) read() {
	defer close(c.lines)
	sc := bufio.NewScanner(c.in)
	for sc.Scan() {
		c.lines <- sc.Text()
	}
}

// Poll returns the next pending line, if any, without blocking.
func (c *Console) Poll() (string, bool) {
	select {
	case line, ok := <-c.lines:
		return line, ok
	default:
		return "", false
	}
}

// ShowPrompt writes the prompt on interactive consoles.
func (c *Console) ShowPrompt() {
	if c.interactive {
		c.Write([]byte(Prompt + " "))
	}
}

// Write sends p to the operator.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out.Write(p)
}
