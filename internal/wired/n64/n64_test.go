package n64

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
)

func TestInitBufferPadNeutral(t *testing.T) {
	e := Encoder{}
	port := &wired.PortState{}
	e.InitBuffer(config.DevPad, port)
	require.Len(t, port.Output, padBufLen)
	assert.Equal(t, byte(0), port.Output[2])
	assert.Equal(t, byte(0), port.Output[3])
	for _, b := range port.OutputMask {
		assert.Equal(t, byte(0xFF), b)
	}
}

func TestPadFromGenericSetsButton(t *testing.T) {
	e := Encoder{}
	port := &wired.PortState{}
	e.InitBuffer(config.DevPad, port)

	ctrl := &generic.Ctrl{}
	e.MetaInit(config.DevPad, ctrl)
	ctrl.Btns[generic.PlanePad].Value = generic.GenericBtnsMask[generic.PadRM] // Z
	ctrl.MapMask[generic.PlanePad] = generic.GenericBtnsMask[generic.PadRM]

	e.padFromGeneric(ctrl, port, nil)
	buttons := binary.BigEndian.Uint16(port.Output[0:2])
	assert.NotZero(t, buttons&(1<<btnZ))
}

func TestPadFromGenericAxisClamping(t *testing.T) {
	e := Encoder{}
	port := &wired.PortState{}
	e.InitBuffer(config.DevPad, port)

	ctrl := &generic.Ctrl{}
	e.MetaInit(config.DevPad, ctrl)
	ctrl.Axes[generic.AxisLX].Value = 999 // beyond size_max
	ctrl.MapMask[generic.PlanePad] = generic.AxisToBtnMask(generic.AxisLX)

	e.padFromGeneric(ctrl, port, nil)
	assert.Equal(t, int8(127), int8(port.Output[2]))
}

func TestSpecialActionTogglesAccModeOnRelease(t *testing.T) {
	port := &wired.PortState{}
	cfg := config.Default()
	ctrl := &generic.Ctrl{}
	ctrl.MapMask[generic.PlanePad] = generic.GenericBtnsMask[generic.PadMT]
	ctrl.Btns[generic.PlanePad].Value = generic.GenericBtnsMask[generic.PadMT]

	specialAction(ctrl, port, cfg)
	assert.True(t, port.WaitingForRelease)
	assert.Equal(t, config.AccMem, cfg.Out[0].AccMode)

	ctrl.Btns[generic.PlanePad].Value = 0
	specialAction(ctrl, port, cfg)
	assert.False(t, port.WaitingForRelease)
	assert.Equal(t, config.AccRumble, cfg.Out[0].AccMode)
}

func TestPadFromGenericButtonsAreBigEndianOnWire(t *testing.T) {
	e := Encoder{}
	port := &wired.PortState{}
	e.InitBuffer(config.DevPad, port)

	ctrl := &generic.Ctrl{}
	e.MetaInit(config.DevPad, ctrl)
	// PadRXRight maps to btnCRight (bit 8), which falls in the buttons
	// field's high byte. A big-endian encode puts it in port.Output[0];
	// a little-endian encode would put it in port.Output[1] instead.
	ctrl.Btns[generic.PlanePad].Value = generic.GenericBtnsMask[generic.PadRXRight]
	ctrl.MapMask[generic.PlanePad] = generic.GenericBtnsMask[generic.PadRXRight]

	e.padFromGeneric(ctrl, port, nil)
	assert.NotZero(t, port.Output[0]&(1<<(btnCRight-8)))
	assert.Zero(t, port.Output[1]&(1<<(btnCRight-8)))
}

func TestGenTurboMaskClearsTurboBits(t *testing.T) {
	e := Encoder{}
	port := &wired.PortState{}
	e.InitBuffer(config.DevPad, port)
	port.CntMask[16] = 0x04 // B button turbo enabled

	e.GenTurboMask(port)
	mask := binary.BigEndian.Uint16(port.OutputMask[0:2])
	assert.Zero(t, mask&(1<<btnB))
}
