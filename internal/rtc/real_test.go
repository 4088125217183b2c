//go:build linux

package rtc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRTCConversionRoundTrip(t *testing.T) {
	in := time.Date(2031, 12, 31, 23, 59, 58, 0, time.UTC)
	rt := toRTC(in)
	assert.Equal(t, int32(131), rt.Year)
	assert.Equal(t, int32(11), rt.Mon)
	assert.Equal(t, int32(in.Weekday()), rt.Wday)
	assert.Equal(t, in, fromRTC(rt))
}
