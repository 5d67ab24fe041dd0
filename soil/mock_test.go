package soil

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSoilSensor(t *testing.T) {
	calls := 0
	sensor := NewMockSoilSensor(
		func(ctx context.Context) (uint16, error) {
			calls++
			return uint16(400 + calls), nil
		},
		func(ctx context.Context) (float64, error) {
			return 22.0, nil
		},
		func(ctx context.Context) (uint16, error) {
			return 0, fmt.Errorf("sensor malfunction")
		},
	)
	ctx := context.Background()

	moist, err := sensor.ReadCapacitance(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint16(401), moist)

	moist, err = sensor.ReadCapacitance(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint16(402), moist)

	temp, err := sensor.ReadTemperature(ctx)
	require.NoError(t, err)
	assert.Equal(t, 22.0, temp)

	_, err = sensor.ReadLight(ctx)
	assert.EqualError(t, err, "sensor malfunction")
}
