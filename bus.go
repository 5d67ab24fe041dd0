package chirp

import (
	"context"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

// RegisterBus is a register-addressed (SMBus style) transport. Word reads
// deliver the device word low byte first, the way the Linux SMBus layer
// does; byte-order correction is the driver's job.
type RegisterBus interface {
	ReadByteData(ctx context.Context, address, reg byte) (byte, error)
	ReadWordData(ctx context.Context, address, reg byte) (uint16, error)
	WriteByte(ctx context.Context, address, reg byte) error
	WriteByteData(ctx context.Context, address, reg, value byte) error
}

// BusCloser is a RegisterBus owning an underlying handle that the caller
// must release once the drivers using it are done.
type BusCloser interface {
	RegisterBus
	Close() error
}
