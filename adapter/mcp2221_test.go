package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferToStatus(t *testing.T) {
	buffer := make([]byte, 64)
	// requested transfer length 0x0102, transferred 0x0002
	buffer[9], buffer[10] = 0x02, 0x01
	buffer[11], buffer[12] = 0x02, 0x00
	buffer[13] = 7    // data buffer counter
	buffer[14] = 0x26 // speed divider
	buffer[15] = 0x4B // timeout
	buffer[16], buffer[17] = 0x40, 0x00
	buffer[25] = 1 // read pending

	status := bufferToStatus(buffer)

	assert.Equal(t, uint16(0x0102), status.LastWriteRequestedSize)
	assert.Equal(t, uint16(0x0002), status.LastWriteSentSize)
	assert.Equal(t, 7, status.I2CDataBufferCounter)
	assert.Equal(t, 0x26, status.I2CSpeedDivider)
	assert.Equal(t, 0x4B, status.I2CTimeout)
	assert.Equal(t, "4000", status.CurrentAddress)
	assert.Equal(t, 1, status.ReadPending)
}

func TestResetBuffers(t *testing.T) {
	d := NewMCP2221()
	for i := range d.request {
		d.request[i] = 0xFF
		d.response[i] = 0xFF
	}
	d.resetBuffers()
	for i := 0; i < len(d.request)-1; i++ {
		assert.Equal(t, byte(0x00), d.request[i])
		assert.Equal(t, byte(0x00), d.response[i])
	}
}
