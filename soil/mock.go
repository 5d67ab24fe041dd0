package soil

import (
	"context"
)

// MoistureBehaviorFunc defines the function signature for moisture behavior.
// It returns the raw capacitance value or an error.
type MoistureBehaviorFunc func(ctx context.Context) (uint16, error)

// TemperatureBehaviorFunc defines the function signature for temperature
// behavior. It returns the converted temperature or an error.
type TemperatureBehaviorFunc func(ctx context.Context) (float64, error)

// LightBehaviorFunc defines the function signature for light behavior.
// It returns the raw light value (0 bright, 65535 dark) or an error.
type LightBehaviorFunc func(ctx context.Context) (uint16, error)

// MockSoilSensor is a mock implementation of a soil sensor that uses
// behavior functions to produce results without requiring any hardware.
type MockSoilSensor struct {
	moistBehavior MoistureBehaviorFunc
	tempBehavior  TemperatureBehaviorFunc
	lightBehavior LightBehaviorFunc
}

// NewMockSoilSensor creates a new mock soil sensor with the given
// behavior functions. Each behavior is called whenever the matching
// read method is invoked.
//
// Example usage:
//
//	// Static values
//	sensor := NewMockSoilSensor(
//		func(ctx context.Context) (uint16, error) { return 495, nil },
//		func(ctx context.Context) (float64, error) { return 22.0, nil },
//		func(ctx context.Context) (uint16, error) { return 30000, nil },
//	)
//
//	// Error simulation
//	sensor := NewMockSoilSensor(
//		func(ctx context.Context) (uint16, error) { return 0, fmt.Errorf("sensor malfunction") },
//		nil, nil,
//	)
func NewMockSoilSensor(moist MoistureBehaviorFunc, temp TemperatureBehaviorFunc, light LightBehaviorFunc) *MockSoilSensor {
	return &MockSoilSensor{
		moistBehavior: moist,
		tempBehavior:  temp,
		lightBehavior: light,
	}
}

// ReadCapacitance returns the raw moisture value by calling the moisture behavior.
func (m *MockSoilSensor) ReadCapacitance(ctx context.Context) (uint16, error) {
	return m.moistBehavior(ctx)
}

// ReadTemperature returns the temperature by calling the temperature behavior.
func (m *MockSoilSensor) ReadTemperature(ctx context.Context) (float64, error) {
	return m.tempBehavior(ctx)
}

// ReadLight returns the raw light value by calling the light behavior.
func (m *MockSoilSensor) ReadLight(ctx context.Context) (uint16, error) {
	return m.lightBehavior(ctx)
}
