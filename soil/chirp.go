package soil

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	chirp "github.com/ageir/chirp-rpi"
)

// Chirp default 7-bit I2C address. Changeable with SetAddress.
const DefaultAddress = 0x20

// Register map (per sensor firmware)
//
//	reads return the previous conversion and start a new one
const (
	regGetCapacitance byte = 0x00 // (r) 2 bytes
	regSetAddress     byte = 0x01 // (w) 1 byte
	regGetAddress     byte = 0x02 // (r) 1 byte
	regMeasureLight   byte = 0x03 // (w) 0 bytes
	regGetLight       byte = 0x04 // (r) 2 bytes
	regGetTemperature byte = 0x05 // (r) 2 bytes
	regReset          byte = 0x06 // (w) 0 bytes
	regGetVersion     byte = 0x07 // (r) 1 byte
	regSleep          byte = 0x08 // (w) 0 bytes
	regGetBusy        byte = 0x09 // (r) 1 byte
)

// Valid range for a changed sensor address.
const (
	minAddress = 0x03
	maxAddress = 0x77
)

var ErrInvalidAddress = fmt.Errorf("chirp: I2C address must be between 0x03 and 0x77")
var ErrInvalidScale = fmt.Errorf("chirp: invalid temperature scale")
var ErrMissingCalibration = fmt.Errorf("chirp: moisture calibration bounds not configured")
var ErrNoMeasurement = fmt.Errorf("chirp: no measurement taken yet")

// Scale selects the unit temperature readings are returned in.
type Scale string

const (
	Celsius    Scale = "celsius"
	Fahrenheit Scale = "fahrenheit"
	Kelvin     Scale = "kelvin"
)

// Sign returns the display sign for the scale (°C, °F or K).
func (s Scale) Sign() string {
	switch s {
	case Fahrenheit:
		return "°F"
	case Kelvin:
		return "K"
	default:
		return "°C"
	}
}

type Opts struct {
	Address    byte
	BusySleep  time.Duration
	WakeDelay  time.Duration
	Scale      Scale
	TempOffset float64

	ReadMoisture    bool
	ReadTemperature bool
	ReadLight       bool

	// Calibrated raw capacitance readings for 0% and 100% moisture.
	// Both must be set for percent conversion.
	MinMoist *int
	MaxMoist *int
}

type Opt func(*Opts)

func WithAddress(address byte) Opt {
	return func(o *Opts) {
		o.Address = address
	}
}

func WithBusySleep(d time.Duration) Opt {
	return func(o *Opts) {
		o.BusySleep = d
	}
}

// WithWakeDelay sets how long WakeUp waits after its probe read. Values
// below one second are unreliable on real hardware: the first
// measurements after wake tend to fail.
func WithWakeDelay(d time.Duration) Opt {
	return func(o *Opts) {
		o.WakeDelay = d
	}
}

func WithScale(s Scale) Opt {
	return func(o *Opts) {
		o.Scale = s
	}
}

func WithTempOffset(offset float64) Opt {
	return func(o *Opts) {
		o.TempOffset = offset
	}
}

func WithCalibration(minMoist, maxMoist int) Opt {
	return func(o *Opts) {
		o.MinMoist = &minMoist
		o.MaxMoist = &maxMoist
	}
}

func WithoutMoisture() Opt {
	return func(o *Opts) {
		o.ReadMoisture = false
	}
}

func WithoutTemperature() Opt {
	return func(o *Opts) {
		o.ReadTemperature = false
	}
}

func WithoutLight() Opt {
	return func(o *Opts) {
		o.ReadLight = false
	}
}

// Reading is a raw 16-bit measurement with its completion time.
type Reading struct {
	Raw       uint16
	Timestamp time.Time
}

// Temperature is a converted temperature measurement.
type Temperature struct {
	Value     float64
	Scale     Scale
	Timestamp time.Time
}

// Chirp represents the Catnip Electronics capacitive soil moisture
// sensor (with temperature and light channels).
// Typical usage:
//
//	s := soil.NewChirp(bus, soil.WithCalibration(240, 750))
//	err := s.Trigger(ctx)
//	m, ok := s.Moisture()
//
// The driver keeps no internal locks: a Chirp instance is meant to be
// owned and driven by a single goroutine. Measurement calls block while
// busy-polling the device; cancellation goes through the context.
type Chirp struct {
	transport chirp.RegisterBus
	addr      byte
	config    Opts

	moist *Reading
	light *Reading
	temp  *Temperature
}

func NewChirp(transport chirp.RegisterBus, opts ...Opt) *Chirp {
	config := Opts{
		Address:         DefaultAddress,
		BusySleep:       10 * time.Millisecond,
		WakeDelay:       time.Second,
		Scale:           Celsius,
		ReadMoisture:    true,
		ReadTemperature: true,
		ReadLight:       true,
	}
	for _, opt := range opts {
		opt(&config)
	}
	return &Chirp{
		transport: transport,
		addr:      config.Address,
		config:    config,
	}
}

// Trigger runs a measurement on every enabled channel and stores the
// results. Moisture and temperature go first; light runs last because
// its conversion time grows in the dark and would delay the other reads.
func (s *Chirp) Trigger(ctx context.Context) error {
	if s.config.ReadMoisture {
		if _, err := s.ReadCapacitance(ctx); err != nil {
			return err
		}
	}
	if s.config.ReadTemperature {
		if _, err := s.ReadTemperature(ctx); err != nil {
			return err
		}
	}
	if s.config.ReadLight {
		if _, err := s.ReadLight(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ReadCapacitance measures soil moisture (raw capacitance). The first
// register read returns the previous conversion and starts a new one as
// a firmware side effect, so its value is discarded; the fresh value is
// fetched once the busy flag clears.
func (s *Chirp) ReadCapacitance(ctx context.Context) (uint16, error) {
	if _, err := s.readWord(ctx, regGetCapacitance); err != nil {
		return 0, fmt.Errorf("chirp: capacitance trigger read failed: %w", err)
	}
	if err := s.waitReady(ctx); err != nil {
		return 0, err
	}
	taken := time.Now()
	raw, err := s.readWord(ctx, regGetCapacitance)
	if err != nil {
		return 0, fmt.Errorf("chirp: capacitance read failed: %w", err)
	}
	s.moist = &Reading{Raw: raw, Timestamp: taken}
	return raw, nil
}

// ReadTemperature measures temperature using the same
// read-discard-wait-read sequence as ReadCapacitance and converts the
// raw value to the configured scale.
func (s *Chirp) ReadTemperature(ctx context.Context) (float64, error) {
	if _, err := s.readWord(ctx, regGetTemperature); err != nil {
		return 0, fmt.Errorf("chirp: temperature trigger read failed: %w", err)
	}
	if err := s.waitReady(ctx); err != nil {
		return 0, err
	}
	taken := time.Now()
	raw, err := s.readWord(ctx, regGetTemperature)
	if err != nil {
		return 0, fmt.Errorf("chirp: temperature read failed: %w", err)
	}
	value, err := s.convertTemperature(raw)
	if err != nil {
		return 0, err
	}
	s.temp = &Temperature{Value: value, Scale: s.config.Scale, Timestamp: taken}
	return value, nil
}

// ReadLight measures ambient light. The result is inverted: 0 is full
// brightness, 65535 is complete darkness. Conversion time is unbounded
// in low light, so pass a context with a timeout if a bound is needed.
func (s *Chirp) ReadLight(ctx context.Context) (uint16, error) {
	if err := s.transport.WriteByte(ctx, s.addr, regMeasureLight); err != nil {
		return 0, fmt.Errorf("chirp: light trigger failed: %w", err)
	}
	if err := s.waitReady(ctx); err != nil {
		return 0, err
	}
	taken := time.Now()
	raw, err := s.readWord(ctx, regGetLight)
	if err != nil {
		return 0, fmt.Errorf("chirp: light read failed: %w", err)
	}
	s.light = &Reading{Raw: raw, Timestamp: taken}
	return raw, nil
}

// Busy reports whether the sensor has an analog conversion in progress.
func (s *Chirp) Busy(ctx context.Context) (bool, error) {
	busy, err := s.transport.ReadByteData(ctx, s.addr, regGetBusy)
	if err != nil {
		return false, fmt.Errorf("chirp: busy read failed: %w", err)
	}
	return busy == 1, nil
}

// Version reads the sensor firmware version.
func (s *Chirp) Version(ctx context.Context) (byte, error) {
	version, err := s.transport.ReadByteData(ctx, s.addr, regGetVersion)
	if err != nil {
		return 0, fmt.Errorf("chirp: version read failed: %w", err)
	}
	return version, nil
}

// Reset restarts the measurement subsystem. The device gives no
// confirmation and needs an unspecified time to re-initialize; the
// caller must not issue commands until it has.
func (s *Chirp) Reset(ctx context.Context) error {
	if err := s.transport.WriteByte(ctx, s.addr, regReset); err != nil {
		return fmt.Errorf("chirp: reset failed: %w", err)
	}
	return nil
}

// Sleep puts the sensor into deep sleep. All register access fails
// until WakeUp is called.
func (s *Chirp) Sleep(ctx context.Context) error {
	if err := s.transport.WriteByte(ctx, s.addr, regSleep); err != nil {
		return fmt.Errorf("chirp: sleep failed: %w", err)
	}
	return nil
}

// WakeUp brings the sensor out of deep sleep. The probe read is
// expected to fail with a bus error while the device transitions; the
// failed transaction itself is the wake trigger, so the error is
// discarded. WakeUp then waits the configured wake delay.
func (s *Chirp) WakeUp(ctx context.Context) error {
	if _, err := s.transport.ReadByteData(ctx, s.addr, regGetVersion); err != nil {
		slog.Debug("chirp wake-up probe read failed", "error", err)
	}
	timer := time.NewTimer(s.config.WakeDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Address reads the I2C address stored in the sensor.
func (s *Chirp) Address(ctx context.Context) (byte, error) {
	addr, err := s.transport.ReadByteData(ctx, s.addr, regGetAddress)
	if err != nil {
		return 0, fmt.Errorf("chirp: address read failed: %w", err)
	}
	return addr, nil
}

// SetAddress assigns a new I2C address (0x03-0x77) to the sensor and
// resets it; after a successful change the driver targets the new
// address. Older firmware only latches the address on the second write,
// so the register is written twice. There is no rollback: if the reset
// fails after the writes the device may be left inconsistent.
func (s *Chirp) SetAddress(ctx context.Context, newAddr byte) error {
	if newAddr < minAddress || newAddr > maxAddress {
		return ErrInvalidAddress
	}
	if err := s.transport.WriteByteData(ctx, s.addr, regSetAddress, newAddr); err != nil {
		return fmt.Errorf("chirp: address write failed: %w", err)
	}
	if err := s.transport.WriteByteData(ctx, s.addr, regSetAddress, newAddr); err != nil {
		return fmt.Errorf("chirp: address write failed: %w", err)
	}
	if err := s.Reset(ctx); err != nil {
		return err
	}
	s.addr = newAddr
	return nil
}

// Moisture returns the last moisture reading, if any.
func (s *Chirp) Moisture() (Reading, bool) {
	if s.moist == nil {
		return Reading{}, false
	}
	return *s.moist, true
}

// Light returns the last light reading, if any.
func (s *Chirp) Light() (Reading, bool) {
	if s.light == nil {
		return Reading{}, false
	}
	return *s.light, true
}

// Temperature returns the last temperature measurement, if any.
func (s *Chirp) Temperature() (Temperature, bool) {
	if s.temp == nil {
		return Temperature{}, false
	}
	return *s.temp, true
}

// MoistureToPercent converts a raw capacitance value to percent using
// the calibrated bounds. The result is deliberately not clamped to
// [0,100]: out-of-range percentages surface a miscalibrated sensor
// instead of hiding it.
func (s *Chirp) MoistureToPercent(raw uint16) (float64, error) {
	if s.config.MinMoist == nil || s.config.MaxMoist == nil {
		return 0, ErrMissingCalibration
	}
	minMoist := float64(*s.config.MinMoist)
	maxMoist := float64(*s.config.MaxMoist)
	return round1((float64(raw) - minMoist) / (maxMoist - minMoist) * 100), nil
}

// Percent converts the last moisture reading to percent.
func (s *Chirp) Percent() (float64, error) {
	if s.moist == nil {
		return 0, ErrNoMeasurement
	}
	return s.MoistureToPercent(s.moist.Raw)
}

// Calibrated reports whether both moisture calibration bounds are set.
func (s *Chirp) Calibrated() bool {
	return s.config.MinMoist != nil && s.config.MaxMoist != nil
}

// waitReady polls the busy register until the current conversion
// completes, sleeping BusySleep between polls. No overall timeout is
// applied; a light measurement in the dark can take a long time.
func (s *Chirp) waitReady(ctx context.Context) error {
	for {
		busy, err := s.Busy(ctx)
		if err != nil {
			return err
		}
		if !busy {
			return nil
		}
		timer := time.NewTimer(s.config.BusySleep)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

func (s *Chirp) readWord(ctx context.Context, reg byte) (uint16, error) {
	raw, err := s.transport.ReadWordData(ctx, s.addr, reg)
	if err != nil {
		return 0, err
	}
	// the bus delivers the device word byte-swapped
	return swapWord(raw), nil
}

func (s *Chirp) convertTemperature(raw uint16) (float64, error) {
	// the device reports tenths of a degree celsius as an integer
	celsius := round1(float64(raw)/10 + s.config.TempOffset)
	switch s.config.Scale {
	case Celsius:
		return celsius, nil
	case Fahrenheit:
		return celsius*9/5 + 32, nil
	case Kelvin:
		return celsius + 273.15, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidScale, s.config.Scale)
	}
}

func swapWord(v uint16) uint16 {
	return v>>8 | v<<8
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
