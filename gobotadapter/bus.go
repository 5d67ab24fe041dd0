// Package gobotadapter exposes gobot board adaptors (Raspberry Pi,
// NanoPi and friends) as a chirp register bus. The adaptor must be
// connected before use and finalized by the caller.
package gobotadapter

import (
	"context"
	"fmt"

	chirp "github.com/ageir/chirp-rpi"
	"gobot.io/x/gobot/v2/drivers/i2c"
)

var _ chirp.BusCloser = &Bus{}

type Bus struct {
	adaptor i2c.Connector
	busNum  int
	conns   map[byte]i2c.Connection
}

func New(adaptor i2c.Connector, busNum int) *Bus {
	return &Bus{
		adaptor: adaptor,
		busNum:  busNum,
		conns:   make(map[byte]i2c.Connection),
	}
}

func (b *Bus) connection(address byte) (i2c.Connection, error) {
	if conn, ok := b.conns[address]; ok {
		return conn, nil
	}
	conn, err := b.adaptor.GetI2cConnection(int(address), b.busNum)
	if err != nil {
		return nil, fmt.Errorf("could not get i2c connection to %x: %w", address, err)
	}
	b.conns[address] = conn
	return conn, nil
}

func (b *Bus) ReadByteData(ctx context.Context, address, reg byte) (byte, error) {
	conn, err := b.connection(address)
	if err != nil {
		return 0, err
	}
	value, err := conn.ReadByteData(reg)
	if err != nil {
		return 0, fmt.Errorf("could not read register %x from %x: %w", reg, address, err)
	}
	return value, nil
}

// ReadWordData relies on gobot's SMBus word semantics: low byte first.
func (b *Bus) ReadWordData(ctx context.Context, address, reg byte) (uint16, error) {
	conn, err := b.connection(address)
	if err != nil {
		return 0, err
	}
	value, err := conn.ReadWordData(reg)
	if err != nil {
		return 0, fmt.Errorf("could not read register %x from %x: %w", reg, address, err)
	}
	return value, nil
}

func (b *Bus) WriteByte(ctx context.Context, address, reg byte) error {
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	if err := conn.WriteByte(reg); err != nil {
		return fmt.Errorf("could not write to %x: %w", address, err)
	}
	return nil
}

func (b *Bus) WriteByteData(ctx context.Context, address, reg, value byte) error {
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	if err := conn.WriteByteData(reg, value); err != nil {
		return fmt.Errorf("could not write to %x: %w", address, err)
	}
	return nil
}

func (b *Bus) Close() error {
	var firstErr error
	for addr, conn := range b.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("could not close connection to %x: %w", addr, err)
		}
		delete(b.conns, addr)
	}
	return firstErr
}
