package led

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type stubCloser struct {
	err    error
	closed bool
}

func (s *stubCloser) Close() error {
	s.closed = true
	return s.err
}

func TestCloseAllKeepsEveryError(t *testing.T) {
	errA := errors.New("busy")
	errB := errors.New("gone")
	a := &stubCloser{err: errA}
	b := &stubCloser{}
	c := &stubCloser{err: errB}

	err := closeAll(namedCloser{"a", a}, namedCloser{"b", b}, namedCloser{"c", c})
	require.Error(t, err)
	assert.True(t, a.closed && b.closed && c.closed, "later closers run after a failure")
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), "close a: busy")
}

func TestCloseAllClean(t *testing.T) {
	assert.NoError(t, closeAll(namedCloser{"a", &stubCloser{}}))
	assert.NoError(t, closeAll())
}
