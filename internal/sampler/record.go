package sampler

import (
	"strconv"
	"strings"
	"time"

	"github.com/sweeney/envlogger/internal/sensor"
)

// TimestampLayout is how the clock reading opens each record.
const TimestampLayout = "15:04:05-01/02/2006"

// fieldSep follows every present field.
const fieldSep = " ; "

// Record is one sample. Empty or nil fields were not taken and are left out
// of the line.
type Record struct {
	Timestamp   time.Time
	GPS         string
	Light       sensor.Level
	Temperature *float64
	Humidity    *float64
	Pressure    *float64
}

// Line renders the record in field order, newline terminated.
func (r Record) Line() string {
	var b strings.Builder
	field := func(s string) {
		b.WriteString(s)
		b.WriteString(fieldSep)
	}
	field(r.Timestamp.Format(TimestampLayout))
	if r.GPS != "" {
		field(r.GPS)
	}
	if r.Light != "" {
		field(string(r.Light))
	}
	for _, v := range []*float64{r.Temperature, r.Humidity, r.Pressure} {
		if v != nil {
			field(strconv.FormatFloat(*v, 'f', 2, 64))
		}
	}
	b.WriteByte('\n')
	return b.String()
}
