package wii

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/btwired/bridge/internal/generic"
)

func TestDecodeCoreButtons(t *testing.T) {
	d := &Decoder{Subtype: ExtNone}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping

	report := []byte{0x01, 0x00} // dpad left
	require.NoError(t, d.Decode(report, ctrl, &m))
	assert.NotZero(t, ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[generic.PadLDLeft])
}

func TestNunchukExtensionAxes(t *testing.T) {
	d := &Decoder{Subtype: ExtNunchuk}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping

	report := []byte{0x00, 0x00, 128, 128, 0, 0, 0, 0xFF}
	require.NoError(t, d.Decode(report, ctrl, &m))
	assert.Equal(t, int32(0), ctrl.Axes[generic.AxisLX].Value, "first report calibrates")
}

func TestNunchukShortExtensionTriggersRestart(t *testing.T) {
	d := &Decoder{Subtype: ExtNunchuk}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping

	report := []byte{0x00, 0x00, 1}
	require.NoError(t, d.Decode(report, ctrl, &m))
	assert.Equal(t, ExtNone, d.Subtype, "short extension payload re-identifies")
}

func TestClassicControllerActiveLowButtons(t *testing.T) {
	d := &Decoder{Subtype: ExtClassic}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping

	report := make([]byte, 8)
	allReleased := uint16(0xFFFF)
	report[6] = byte(allReleased)
	report[7] = byte(allReleased >> 8)
	require.NoError(t, d.Decode(report, ctrl, &m))
	assert.Zero(t, ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[generic.PadMQ])
}
