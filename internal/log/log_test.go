package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestRawLoggerFormatsDirectionAndHex(t *testing.T) {
	var buf bytes.Buffer
	rl := NewRaw(&buf)

	rl.Log(true, []byte{0x01, 0x02, 0xFF})

	out := buf.String()
	assert.Contains(t, out, "HOST->CTRL")
	assert.Contains(t, out, "01 02 ff")
	assert.Contains(t, out, "3 bytes")
}

func TestRawLoggerControllerToHostDirection(t *testing.T) {
	var buf bytes.Buffer
	rl := NewRaw(&buf)

	rl.Log(false, []byte{0xAA})

	assert.True(t, strings.Contains(buf.String(), "CTRL->HOST"))
}

func TestRawLoggerSkipsEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	rl := NewRaw(&buf)

	rl.Log(true, nil)

	assert.Empty(t, buf.String())
}

func TestRawLoggerNilWriterIsNoop(t *testing.T) {
	rl := NewRaw(nil)
	assert.NotPanics(t, func() { rl.Log(true, []byte{0x01}) })
}

func TestWithPortAnnotatesPortAndSystem(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	log := WithPort(base, 2, "n64")
	log.Info("encoded")

	out := buf.String()
	assert.Contains(t, out, "port=2")
	assert.Contains(t, out, "system=n64")
}

func TestWithDeviceAnnotatesSlotAndAddr(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	log := WithDevice(base, 1, "AA:BB:CC:DD:EE:FF")
	log.Info("decoded")

	out := buf.String()
	assert.Contains(t, out, "slot=1")
	assert.Contains(t, out, "addr=AA:BB:CC:DD:EE:FF")
}
