package gpio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/envlogger/internal/logic"
)

type edge struct {
	b       logic.Button
	pressed bool
}

func TestFakeButtonsEdges(t *testing.T) {
	f := NewFakeButtons()
	var got []edge
	f.Watch(func(b logic.Button, pressed bool) {
		got = append(got, edge{b, pressed})
	})

	f.Press(logic.ButtonGreen)
	f.Release(logic.ButtonGreen)
	f.Press(logic.ButtonRed)

	assert.Equal(t, []edge{
		{logic.ButtonGreen, true},
		{logic.ButtonGreen, false},
		{logic.ButtonRed, true},
	}, got)

	red, err := f.Pressed(logic.ButtonRed)
	require.NoError(t, err)
	assert.True(t, red)
}

func TestFakeButtonsNoHandler(t *testing.T) {
	f := NewFakeButtons()
	// must not panic without a handler
	f.Press(logic.ButtonGreen)

	green, _ := f.Pressed(logic.ButtonGreen)
	assert.True(t, green)
}

func TestFakeButtonsHoldHasNoEdge(t *testing.T) {
	f := NewFakeButtons()
	called := false
	f.Watch(func(logic.Button, bool) { called = true })

	f.Hold(logic.ButtonRed, true)
	assert.False(t, called, "Hold should not deliver an edge")
	red, _ := f.Pressed(logic.ButtonRed)
	assert.True(t, red)
}

func TestFakeButtonsError(t *testing.T) {
	f := NewFakeButtons()
	f.ReadError = errors.New("simulated error")

	_, err := f.Pressed(logic.ButtonGreen)
	assert.EqualError(t, err, "simulated error")
}

func TestFakeButtonsClose(t *testing.T) {
	f := NewFakeButtons()
	assert.False(t, f.Closed)
	require.NoError(t, f.Close())
	assert.True(t, f.Closed)

	_, err := f.Pressed(logic.ButtonGreen)
	assert.Error(t, err, "reads fail after Close")
}
