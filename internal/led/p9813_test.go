package led

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameFlagByte(t *testing.T) {
	tests := []struct {
		color Color
		want  [4]byte
	}{
		{Off, [4]byte{0xFF, 0, 0, 0}},
		{White, [4]byte{0xC0, 255, 255, 255}},
		{Red, [4]byte{0xFC, 0, 0, 255}},
		{Green, [4]byte{0xF3, 0, 255, 0}},
		{Blue, [4]byte{0xCF, 255, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.color.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, frame(tt.color))
		})
	}
}

func TestBitsFraming(t *testing.T) {
	b := bits(Red)
	assert.Len(t, b, 96)
	for i := 0; i < 32; i++ {
		assert.False(t, b[i], "start frame bit %d", i)
		assert.False(t, b[64+i], "end frame bit %d", i)
	}
	// flag byte 0xFC, MSB first
	assert.Equal(t, []bool{true, true, true, true, true, true, false, false}, b[32:40])
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "orange", Orange.String())
	assert.Equal(t, "#010203", Color{1, 2, 3}.String())
}

func TestFakeIndicator(t *testing.T) {
	f := NewFakeIndicator()
	assert.Equal(t, Off, f.Last())

	assert.NoError(t, f.SetColor(Green))
	assert.NoError(t, f.SetColor(Blue))
	assert.Equal(t, []Color{Green, Blue}, f.Colors())
	assert.Equal(t, Blue, f.Last())
}
