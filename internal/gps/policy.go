package gps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sweeney/envlogger/internal/fault"
	"github.com/sweeney/envlogger/internal/logger"
)

// Policy reads one fix per scheduled pass. A single timeout yields
// NotAvailable; a second consecutive one is a GPS fault.
type Policy struct {
	rx     Receiver
	log    *logger.Logger
	struck bool
}

// NewPolicy wraps rx.
func NewPolicy(rx Receiver, log *logger.Logger) *Policy {
	return &Policy{rx: rx, log: log}
}

// Read waits up to timeout for a fix record and returns it, or NotAvailable
// after a first timeout. Faults are returned as *fault.Error.
func (p *Policy) Read(ctx context.Context, timeout time.Duration) (string, error) {
	if !p.rx.Available() {
		return "", fault.New(fault.KindGPS, ErrUnavailable)
	}

	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		line, err := p.rx.ReadLine(rctx)
		if err == nil {
			if IsFixRecord(line) {
				p.struck = false
				return strings.TrimSpace(line), nil
			}
			continue
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			return "", fault.New(fault.KindGPS, fmt.Errorf("read: %w", err))
		}
		if p.struck {
			return "", fault.New(fault.KindGPS, ErrTimeout)
		}
		p.struck = true
		p.log.Warnw("gps fix timed out", "timeout", timeout)
		return NotAvailable, nil
	}
}
