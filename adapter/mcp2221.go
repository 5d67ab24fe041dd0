package adapter

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	chirp "github.com/ageir/chirp-rpi"

	"github.com/karalabe/hid"
)

const VendorID = 0x04D8
const ProductID = 0x00DD

var ErrDeviceNotFound = errors.New("MCP2221 device not found")

var _ chirp.RegisterBus = &MCP2221{}

// MCP2221 drives the Microchip MCP2221 USB-to-I2C bridge over USB HID
// and exposes it as a register-addressed bus. Commands go out as 64-byte
// HID reports; each register operation is one or two raw I2C transfers.
type MCP2221 struct {
	mx           sync.Mutex
	request      []byte
	response     []byte
	responseWait time.Duration
}

type Status struct {
	I2CDataBufferCounter   int
	I2CSpeedDivider        int
	I2CTimeout             int
	CurrentAddress         string
	LastWriteRequestedSize uint16
	LastWriteSentSize      uint16
	ReadPending            int
}

func NewMCP2221() *MCP2221 {
	return &MCP2221{
		request:      make([]byte, 64),
		response:     make([]byte, 64),
		responseWait: 50 * time.Millisecond,
	}
}

// Init checks that an MCP2221 is attached.
func (d *MCP2221) Init() error {
	if len(hid.Enumerate(VendorID, ProductID)) == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

func (d *MCP2221) ReadByteData(ctx context.Context, address, reg byte) (byte, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	if err := d.writeToAddr(ctx, address, []byte{reg}); err != nil {
		return 0, err
	}
	var buf [1]byte
	if err := d.readFromAddr(ctx, address, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadWordData returns the register word low byte first, matching SMBus
// word semantics.
func (d *MCP2221) ReadWordData(ctx context.Context, address, reg byte) (uint16, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	if err := d.writeToAddr(ctx, address, []byte{reg}); err != nil {
		return 0, err
	}
	var buf [2]byte
	if err := d.readFromAddr(ctx, address, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func (d *MCP2221) WriteByte(ctx context.Context, address, reg byte) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	return d.writeToAddr(ctx, address, []byte{reg})
}

func (d *MCP2221) WriteByteData(ctx context.Context, address, reg, value byte) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	return d.writeToAddr(ctx, address, []byte{reg, value})
}

func (d *MCP2221) writeToAddr(ctx context.Context, address byte, buffer []byte) error {
	d.resetBuffers()
	d.request[0] = 0x90
	binary.LittleEndian.PutUint16(d.request[1:3], uint16(len(buffer)))
	d.request[3] = address << 1
	if len(buffer) > 0 {
		copy(d.request[4:], buffer)
	}
	err := d.send(ctx, true)
	if err != nil {
		return fmt.Errorf("write to %x failed: %w", address, err)
	}
	// write could not be performed
	if d.response[1] == 0x01 {
		slog.Debug("adapter busy")
		return chirp.ErrBusBusy
	}
	return nil
}

func (d *MCP2221) readFromAddr(ctx context.Context, address byte, buffer []byte) error {
	d.resetBuffers()
	d.request[0] = 0x91
	binary.LittleEndian.PutUint16(d.request[1:3], uint16(len(buffer)))
	d.request[3] = address<<1 + 1
	err := d.send(ctx, true)
	if err != nil {
		return fmt.Errorf("bus read from %x failed: %w", address, err)
	}
	d.request[0] = 0x40
	resetBuffer(d.response)
	err = d.send(ctx, true)
	if err != nil {
		return fmt.Errorf("error getting read data from adapter: %w", err)
	}
	if d.response[1] == 0x41 {
		return fmt.Errorf("error reading the I2C slave data from the I2C engine")
	}
	if d.response[3] == 127 || int(d.response[3]) != len(buffer) {
		return fmt.Errorf("invalid data size byte; expected %d, got %d", len(buffer), d.response[3])
	}

	copy(buffer, d.response[4:])
	return nil
}

func (d *MCP2221) Status(ctx context.Context) (*Status, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = 0x10
	err := d.send(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	return bufferToStatus(d.response), nil
}

func bufferToStatus(buffer []byte) *Status {
	/*
		9: Lower byte (16-bit value) of the requested I2C transfer length
		10: Higher byte (16-bit value) of the requested I2C transfer length
		11:	Lower byte (16-bit value) of the already transferred (through I2C) number of bytes
		12:	Higher byte (16-bit value) of the already transferred (through I2C) number of bytes
		13:	Internal I2C data buffer counter
		14: Current I2C communication speed divider value
		15: Current I2C timeout value
		16:	Lower byte (16-bit value) of the I2C address being used
		17:	Higher byte (16-bit value) of the I2C address being used
	*/
	status := &Status{
		I2CDataBufferCounter: int(buffer[13]),
		I2CSpeedDivider:      int(buffer[14]),
		I2CTimeout:           int(buffer[15]),
		ReadPending:          int(buffer[25]),
		CurrentAddress:       hex.EncodeToString(buffer[16:18]),
	}
	status.LastWriteRequestedSize = binary.LittleEndian.Uint16(buffer[9:11])
	status.LastWriteSentSize = binary.LittleEndian.Uint16(buffer[11:13])
	return status
}

// ReleaseBus cancels the current transfer and frees the I2C engine,
// which can stay locked after an aborted transaction.
func (d *MCP2221) ReleaseBus(ctx context.Context) (*Status, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = 0x10
	d.request[2] = 0x10
	err := d.send(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	return bufferToStatus(d.response), nil
}

func (d *MCP2221) send(ctx context.Context, response bool) error {
	devs := hid.Enumerate(VendorID, ProductID)
	if len(devs) > 1 {
		return fmt.Errorf("ambiguous device identification")
	}
	if len(devs) == 0 {
		return ErrDeviceNotFound
	}
	dev, err := devs[0].Open()
	if err != nil {
		return fmt.Errorf("error opening device: %w", err)
	}
	defer func() {
		_ = dev.Close()
	}()
	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		slog.Debug("sending message to adapter", "request", hex.Dump(d.request))
	}
	n, err := dev.Write(d.request)
	if err != nil {
		return fmt.Errorf("could not write request: %w", err)
	}
	if n != 64 {
		return fmt.Errorf("short write: %d", n)
	}
	if !response {
		return nil
	}
	time.Sleep(d.responseWait)
	n, err = dev.Read(d.response)
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}
	if n != 64 {
		return fmt.Errorf("short read: %d", n)
	}
	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		slog.Debug("read message from adapter", "response", hex.Dump(d.response))
	}
	return nil
}

func (d *MCP2221) resetBuffers() {
	resetBuffer(d.request)
	resetBuffer(d.response)
}

func resetBuffer(buf []byte) {
	for i := 0; i < len(buf)-1; i++ {
		buf[i] = 0x00
	}
}
