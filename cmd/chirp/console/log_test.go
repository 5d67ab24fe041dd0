package console

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogOutputRouting(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(os.Stdout, os.Stderr)

	Print("plain")
	Printf("formatted %d\n", 42)
	Infof("info %s", "message")
	PInfof(PictoSeedling, "picto %s", "message")

	Error("boom")
	Errorf("boom %d", 2)
	Warnf("careful")

	assert.Contains(t, out.String(), "plain")
	assert.Contains(t, out.String(), "formatted 42")
	assert.Contains(t, out.String(), "info message")
	assert.Contains(t, out.String(), PictoSeedling+" picto message")
	assert.NotContains(t, out.String(), "boom")

	assert.Contains(t, errOut.String(), "boom")
	assert.Contains(t, errOut.String(), "boom 2")
	assert.Contains(t, errOut.String(), "careful")
	assert.NotContains(t, errOut.String(), "plain")
}
