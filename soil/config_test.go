package soil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chirp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
address: 0x21
light: false
scale: fahrenheit
temp_offset: -0.5
busy_sleep_ms: 25
calibration:
  min_moist: 240
  max_moist: 750
`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0x21, config.Address)
	assert.False(t, config.Light)
	assert.Equal(t, Fahrenheit, config.Scale)
	assert.Equal(t, -0.5, config.TempOffset)
	assert.Equal(t, 25, config.BusySleepMs)
	require.NotNil(t, config.Calibration)
	assert.Equal(t, 240, config.Calibration.MinMoist)
	assert.Equal(t, 750, config.Calibration.MaxMoist)

	sensor := NewChirp(nil, config.Options()...)
	assert.True(t, sensor.Calibrated())
	assert.Equal(t, byte(0x21), sensor.addr)
	assert.Equal(t, Fahrenheit, sensor.config.Scale)
	assert.Equal(t, 25*time.Millisecond, sensor.config.BusySleep)
	assert.False(t, sensor.config.ReadLight)
	assert.True(t, sensor.config.ReadMoisture)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chirp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	sensor := NewChirp(nil, config.Options()...)
	assert.False(t, sensor.Calibrated())
	assert.Equal(t, byte(DefaultAddress), sensor.addr)
	assert.True(t, sensor.config.ReadMoisture)
	assert.True(t, sensor.config.ReadTemperature)
	assert.True(t, sensor.config.ReadLight)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chirp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("address: [not a number\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
