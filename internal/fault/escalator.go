package fault

import (
	"context"
	"time"

	"github.com/sweeney/envlogger/internal/led"
	"github.com/sweeney/envlogger/internal/logger"
)

// DefaultPeriod is one full blink cycle.
const DefaultPeriod = time.Second

// InputGate is the part of the input state escalation switches off.
type InputGate interface {
	SetEnabled(enabled bool)
}

// Escalator owns the fail-safe display.
type Escalator struct {
	indicator led.Indicator
	inputs    InputGate
	log       *logger.Logger
	period    time.Duration
}

// NewEscalator creates an escalator. A zero period means DefaultPeriod.
func NewEscalator(indicator led.Indicator, inputs InputGate, period time.Duration, log *logger.Logger) *Escalator {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Escalator{indicator: indicator, inputs: inputs, period: period, log: log}
}

// Halt disables mode-changing input and blinks the pattern for kind until
// ctx is done. On the device ctx is only cancelled by a shutdown signal;
// nothing resumes normal operation.
func (e *Escalator) Halt(ctx context.Context, kind Kind) error {
	e.inputs.SetEnabled(false)
	p := PatternFor(kind)
	first, second := p.Durations(e.period)
	e.log.Errorw("fault, halting", "kind", kind, "first", p.First, "second", p.Second, "ratio", p.Ratio)

	for {
		if err := e.show(ctx, p.First, first); err != nil {
			return err
		}
		if err := e.show(ctx, p.Second, second); err != nil {
			return err
		}
	}
}

func (e *Escalator) show(ctx context.Context, c led.Color, d time.Duration) error {
	if err := e.indicator.SetColor(c); err != nil {
		e.log.Debugw("indicator update failed", "err", err)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
