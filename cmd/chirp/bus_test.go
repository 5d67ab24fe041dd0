package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr, err := parseAddress("0x20")
	require.NoError(t, err)
	assert.Equal(t, byte(0x20), addr)

	addr, err = parseAddress("33")
	require.NoError(t, err)
	assert.Equal(t, byte(33), addr)

	_, err = parseAddress("0x100")
	assert.Error(t, err)

	_, err = parseAddress("garbage")
	assert.Error(t, err)
}
