package gpio

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
)

type namedCloser struct {
	name string
	c    io.Closer
}

// closeAll closes every resource in order and combines the failures.
func closeAll(closers ...namedCloser) error {
	var err error
	for _, n := range closers {
		if cerr := n.c.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("close %s: %w", n.name, cerr))
		}
	}
	return err
}
