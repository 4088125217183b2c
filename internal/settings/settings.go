// Package settings loads the daemon's device wiring from flags, ENVLOGGER_*
// environment variables and an optional YAML file. The measurement
// configuration is not here; it lives in non-volatile memory.
package settings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sweeney/envlogger/internal/gpio"
	"github.com/sweeney/envlogger/internal/logger"
	"github.com/sweeney/envlogger/internal/logic"
	"github.com/sweeney/envlogger/internal/sampler"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ENVLOGGER"

// Settings is the resolved daemon wiring.
type Settings struct {
	Chip          string
	PinGreen      int
	PinRed        int
	LEDClock      int
	LEDData       int
	Debounce      time.Duration
	Poll          time.Duration
	Hold          time.Duration
	ConfigTimeout time.Duration
	BlinkPeriod   time.Duration

	GPSDevice string
	GPSBaud   int
	RTCDevice string

	ADCDevice     string
	ADCChannel    int
	ADCBits       int
	ClimateDevice string

	StorageDir string
	NVMPath    string

	LogLevel       string
	MaintenanceGPS sampler.GPSPolicy
	PrintState     bool
}

// option binds one flag to its viper key.
type option struct {
	key  string
	flag string
}

var options = []option{
	{"gpio.chip", "chip"},
	{"gpio.green", "pin-green"},
	{"gpio.red", "pin-red"},
	{"gpio.led_clock", "pin-led-clock"},
	{"gpio.led_data", "pin-led-data"},
	{"gpio.debounce", "debounce"},
	{"loop.poll", "poll"},
	{"loop.hold", "hold"},
	{"loop.config_timeout", "config-timeout"},
	{"loop.blink_period", "blink-period"},
	{"gps.device", "gps-device"},
	{"gps.baud", "gps-baud"},
	{"gps.maintenance", "maintenance-gps"},
	{"rtc.device", "rtc-device"},
	{"adc.device", "adc-device"},
	{"adc.channel", "adc-channel"},
	{"adc.bits", "adc-bits"},
	{"climate.device", "climate-device"},
	{"storage.dir", "storage-dir"},
	{"nvm.path", "nvm-path"},
	{"log_level", "log-level"},
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("envlogger", pflag.ContinueOnError)
	fs.String("config", "", "YAML settings file (default: search /etc/envlogger and .)")
	fs.Bool("print-state", false, "Print button levels and exit")

	fs.String("chip", "gpiochip0", "GPIO character device")
	fs.Int("pin-green", gpio.DefaultPinGreen, "BCM pin of the green button")
	fs.Int("pin-red", gpio.DefaultPinRed, "BCM pin of the red button")
	fs.Int("pin-led-clock", 5, "BCM pin of the LED clock line")
	fs.Int("pin-led-data", 6, "BCM pin of the LED data line")
	fs.Duration("debounce", 20*time.Millisecond, "Kernel debounce period for buttons")
	fs.Duration("poll", 100*time.Millisecond, "Main loop interval")
	fs.Duration("hold", logic.DefaultHoldThreshold, "Hold time for a mode change")
	fs.Duration("config-timeout", logic.DefaultConfigTimeout, "ConfigEntry inactivity timeout")
	fs.Duration("blink-period", time.Second, "Fault blink period")
	fs.String("gps-device", "/dev/serial0", "GPS serial device")
	fs.Int("gps-baud", 9600, "GPS line rate")
	fs.String("maintenance-gps", string(sampler.GPSEvery), "GPS reads in Maintenance: every, alternate or off")
	fs.String("rtc-device", "/dev/rtc0", "RTC device (empty uses the system clock)")
	fs.String("adc-device", "iio:device0", "IIO device of the light ADC")
	fs.Int("adc-channel", 0, "ADC channel of the light sensor")
	fs.Int("adc-bits", 12, "ADC resolution in bits")
	fs.String("climate-device", "iio:device1", "IIO device of the BME280")
	fs.String("storage-dir", "/var/lib/envlogger/log", "Directory for log files")
	fs.String("nvm-path", "/var/lib/envlogger/eeprom.bin", "Configuration memory image")
	fs.String("log-level", logger.InfoLevel, "Log level: debug, info, warn or error")
	return fs
}

// Load resolves settings from args (without the program name), environment
// and settings file, in that order of precedence.
func Load(args []string) (Settings, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return Settings{}, err
	}

	v := viper.New()
	for _, o := range options {
		if err := v.BindPFlag(o.key, fs.Lookup(o.flag)); err != nil {
			return Settings{}, fmt.Errorf("bind %s: %w", o.flag, err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, _ := fs.GetString("config")
	if err := readConfig(v, path); err != nil {
		return Settings{}, err
	}

	printState, _ := fs.GetBool("print-state")
	s := Settings{
		Chip:           v.GetString("gpio.chip"),
		PinGreen:       v.GetInt("gpio.green"),
		PinRed:         v.GetInt("gpio.red"),
		LEDClock:       v.GetInt("gpio.led_clock"),
		LEDData:        v.GetInt("gpio.led_data"),
		Debounce:       v.GetDuration("gpio.debounce"),
		Poll:           v.GetDuration("loop.poll"),
		Hold:           v.GetDuration("loop.hold"),
		ConfigTimeout:  v.GetDuration("loop.config_timeout"),
		BlinkPeriod:    v.GetDuration("loop.blink_period"),
		GPSDevice:      v.GetString("gps.device"),
		GPSBaud:        v.GetInt("gps.baud"),
		MaintenanceGPS: sampler.GPSPolicy(strings.ToLower(v.GetString("gps.maintenance"))),
		RTCDevice:      v.GetString("rtc.device"),
		ADCDevice:      v.GetString("adc.device"),
		ADCChannel:     v.GetInt("adc.channel"),
		ADCBits:        v.GetInt("adc.bits"),
		ClimateDevice:  v.GetString("climate.device"),
		StorageDir:     v.GetString("storage.dir"),
		NVMPath:        v.GetString("nvm.path"),
		LogLevel:       strings.ToLower(v.GetString("log_level")),
		PrintState:     printState,
	}
	return s, s.Validate()
}

func readConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read settings %s: %w", path, err)
		}
		return nil
	}
	v.SetConfigName("envlogger")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/envlogger")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read settings: %w", err)
	}
	return nil
}

// Validate rejects settings the daemon cannot run with.
func (s Settings) Validate() error {
	switch {
	case s.Poll <= 0:
		return fmt.Errorf("poll must be positive, got %v", s.Poll)
	case s.Hold <= 0:
		return fmt.Errorf("hold must be positive, got %v", s.Hold)
	case s.ConfigTimeout <= 0:
		return fmt.Errorf("config timeout must be positive, got %v", s.ConfigTimeout)
	case s.PinGreen == s.PinRed:
		return fmt.Errorf("green and red buttons share pin %d", s.PinGreen)
	case !s.MaintenanceGPS.Valid():
		return fmt.Errorf("unknown maintenance gps policy %q", s.MaintenanceGPS)
	case !logger.ValidLevel(s.LogLevel):
		return fmt.Errorf("unknown log level %q", s.LogLevel)
	case s.StorageDir == "":
		return errors.New("storage dir is required")
	case s.NVMPath == "":
		return errors.New("nvm path is required")
	}
	return nil
}
