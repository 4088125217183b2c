//go:build linux

package gps

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DefaultBaud is the NMEA 0183 line rate.
const DefaultBaud = 9600

var baudRates = map[int]uint32{
	4800:   unix.B4800,
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
}

// SerialReceiver reads a tty configured raw 8N1.
type SerialReceiver struct {
	f     *os.File
	lines *lineReader
}

// NewSerialReceiver opens and configures the serial device at path.
func NewSerialReceiver(path string, baud int) (*SerialReceiver, error) {
	speed, ok := baudRates[baud]
	if !ok {
		return nil, fmt.Errorf("unsupported baud rate %d", baud)
	}
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := configure(fd, speed); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("configure %s: %w", path, err)
	}
	// a non-blocking fd lets the runtime poller honour read deadlines
	f := os.NewFile(uintptr(fd), path)
	return &SerialReceiver{f: f, lines: newLineReader(f)}, nil
}

func configure(fd int, speed uint32) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB | unix.CBAUD
	t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL | speed
	t.Ispeed = speed
	t.Ospeed = speed
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
	return unix.IoctlSetTermios(fd, unix.TCSETS, t)
}

// Available reports whether the tty still answers TIOCINQ. A detached USB
// receiver fails it.
func (s *SerialReceiver) Available() bool {
	raw, err := s.f.SyscallConn()
	if err != nil {
		return false
	}
	var ioErr error
	if err := raw.Control(func(fd uintptr) {
		_, ioErr = unix.IoctlGetInt(int(fd), unix.TIOCINQ)
	}); err != nil {
		return false
	}
	return ioErr == nil
}

// ReadLine returns the next sentence.
func (s *SerialReceiver) ReadLine(ctx context.Context) (string, error) {
	return s.lines.ReadLine(ctx)
}

// Close releases the device.
func (s *SerialReceiver) Close() error {
	return s.f.Close()
}
