package i2c

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"

	chirp "github.com/ageir/chirp-rpi"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

var _ chirp.BusCloser = &GenericBus{}

// GenericBus is a register-addressed bus on top of a Linux I2C device
// (periph.io host drivers).
type GenericBus struct {
	bus i2c.BusCloser
}

func NewGenericBus(dev string) (*GenericBus, error) {
	state, err := host.Init()
	if err != nil {
		return nil, fmt.Errorf("could not init host: %w", err)
	}
	for _, driver := range state.Loaded {
		slog.Debug("host driver loaded", "driver", driver.String())
	}
	bus, err := i2creg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("could not open i2c bus: %w", err)
	}
	return &GenericBus{
		bus: bus,
	}, nil
}

func (b *GenericBus) ReadByteData(ctx context.Context, address, reg byte) (byte, error) {
	var buf [1]byte
	err := b.bus.Tx(uint16(address), []byte{reg}, buf[:])
	if err != nil {
		return 0, fmt.Errorf("could not read register %x from %x: %w", reg, address, err)
	}
	return buf[0], nil
}

// ReadWordData returns the register word low byte first, matching SMBus
// word semantics.
func (b *GenericBus) ReadWordData(ctx context.Context, address, reg byte) (uint16, error) {
	var buf [2]byte
	err := b.bus.Tx(uint16(address), []byte{reg}, buf[:])
	if err != nil {
		return 0, fmt.Errorf("could not read register %x from %x: %w", reg, address, err)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func (b *GenericBus) WriteByte(ctx context.Context, address, reg byte) error {
	err := b.bus.Tx(uint16(address), []byte{reg}, nil)
	if err != nil {
		return fmt.Errorf("could not write to i2c bus %x: %w", address, err)
	}
	return nil
}

func (b *GenericBus) WriteByteData(ctx context.Context, address, reg, value byte) error {
	err := b.bus.Tx(uint16(address), []byte{reg, value}, nil)
	if err != nil {
		return fmt.Errorf("could not write to i2c bus %x: %w", address, err)
	}
	return nil
}

func (b *GenericBus) SetSpeed(f physic.Frequency) error {
	return b.bus.SetSpeed(f)
}

func (b *GenericBus) Close() error {
	return b.bus.Close()
}
