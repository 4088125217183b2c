package sensor

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// adcMax is the top of the 10-bit light scale.
const adcMax = 1023

// ADCLight reads one ADC channel and scales it to 10 bits.
type ADCLight struct {
	fs   afero.Fs
	path string
	bits int
}

// NewADCLight reads in_voltage<channel>_raw of device. bits is the ADC
// resolution; wider samples are shifted down to 10 bits.
func NewADCLight(fs afero.Fs, device string, channel, bits int) *ADCLight {
	return &ADCLight{
		fs:   fs,
		path: filepath.Join(IIORoot, device, fmt.Sprintf("in_voltage%d_raw", channel)),
		bits: bits,
	}
}

// Read returns the scaled light level.
func (l *ADCLight) Read() (int, error) {
	v, err := readValue(l.fs, l.path)
	if err != nil {
		return 0, err
	}
	raw := int(v)
	if l.bits > 10 {
		raw >>= l.bits - 10
	}
	if raw < 0 || raw > adcMax {
		return 0, fmt.Errorf("light value %d out of scale", raw)
	}
	return raw, nil
}

// BME280 reads a Bosch BME280 bound to the bmp280 IIO driver.
type BME280 struct {
	fs  afero.Fs
	dir string
}

// NewBME280 reads the channels of device.
func NewBME280(fs afero.Fs, device string) *BME280 {
	return &BME280{fs: fs, dir: filepath.Join(IIORoot, device)}
}

// Read samples all three channels. The driver reports milli-degrees,
// milli-percent and kPa.
func (b *BME280) Read() (Reading, error) {
	temp, err := readValue(b.fs, filepath.Join(b.dir, "in_temp_input"))
	if err != nil {
		return Reading{}, err
	}
	hum, err := readValue(b.fs, filepath.Join(b.dir, "in_humidityrelative_input"))
	if err != nil {
		return Reading{}, err
	}
	press, err := readValue(b.fs, filepath.Join(b.dir, "in_pressure_input"))
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		Temperature: temp / 1000,
		Humidity:    hum / 1000,
		Pressure:    press * 10,
	}, nil
}
