package soil

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Calibration holds the device-specific raw capacitance readings
// corresponding to 0% and 100% moisture.
type Calibration struct {
	MinMoist int `yaml:"min_moist"`
	MaxMoist int `yaml:"max_moist"`
}

// Config is the yaml representation of the sensor settings used by the
// CLI. Calibration is optional; without it percent conversion is
// unavailable.
type Config struct {
	Address     int          `yaml:"address"`
	Moisture    bool         `yaml:"moisture"`
	Temperature bool         `yaml:"temperature"`
	Light       bool         `yaml:"light"`
	Scale       Scale        `yaml:"scale"`
	TempOffset  float64      `yaml:"temp_offset"`
	BusySleepMs int          `yaml:"busy_sleep_ms"`
	Calibration *Calibration `yaml:"calibration"`
}

func DefaultConfig() Config {
	return Config{
		Address:     DefaultAddress,
		Moisture:    true,
		Temperature: true,
		Light:       true,
		Scale:       Celsius,
		BusySleepMs: 10,
	}
}

// LoadConfig reads a yaml config file; fields the file omits keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return config, fmt.Errorf("could not parse config file: %w", err)
	}
	return config, nil
}

// Options translates the config into driver options.
func (c Config) Options() []Opt {
	opts := []Opt{
		WithAddress(byte(c.Address)),
		WithScale(c.Scale),
		WithTempOffset(c.TempOffset),
	}
	if c.BusySleepMs > 0 {
		opts = append(opts, WithBusySleep(time.Duration(c.BusySleepMs)*time.Millisecond))
	}
	if c.Calibration != nil {
		opts = append(opts, WithCalibration(c.Calibration.MinMoist, c.Calibration.MaxMoist))
	}
	if !c.Moisture {
		opts = append(opts, WithoutMoisture())
	}
	if !c.Temperature {
		opts = append(opts, WithoutTemperature())
	}
	if !c.Light {
		opts = append(opts, WithoutLight())
	}
	return opts
}
