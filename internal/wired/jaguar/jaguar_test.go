package jaguar

import (
	"encoding/binary"
	"testing"

	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
	"github.com/stretchr/testify/assert"
)

func TestInitBufferNeutral(t *testing.T) {
	var port wired.PortState
	enc := Encoder{}
	enc.InitBuffer(config.DevPad, &port)
	assert.Len(t, port.Output, 4)
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(port.Output[0:2]))
}

func TestFromGenericSetsButton(t *testing.T) {
	var port wired.PortState
	enc := Encoder{}
	enc.InitBuffer(config.DevPad, &port)

	var ctrl generic.Ctrl
	enc.MetaInit(config.DevPad, &ctrl)
	ctrl.MapMask[generic.PlanePad] = generic.GenericBtnsMask[18]
	ctrl.Btns[generic.PlanePad].Value = generic.GenericBtnsMask[18]

	enc.FromGeneric(config.DevPad, &ctrl, &port, &config.Config{})

	buttons := binary.LittleEndian.Uint16(port.Output[0:2])
	assert.NotZero(t, buttons&(1<<btnA))
}

func TestFromGenericNumpadOnKBExtraPlane(t *testing.T) {
	var port wired.PortState
	enc := Encoder{}
	enc.InitBuffer(config.DevPad, &port)

	var ctrl generic.Ctrl
	enc.MetaInit(config.DevPad, &ctrl)
	ctrl.MapMask[generic.PlaneKBExtra] = 1 << 3
	ctrl.Btns[generic.PlaneKBExtra].Value = 1 << 3

	enc.FromGeneric(config.DevPad, &ctrl, &port, &config.Config{})

	numpad := binary.LittleEndian.Uint16(port.Output[2:4])
	assert.Equal(t, uint16(1<<3), numpad)
}

func TestGenTurboMaskClearsTurboBits(t *testing.T) {
	var port wired.PortState
	enc := Encoder{}
	enc.InitBuffer(config.DevPad, &port)
	port.CntMask[18] = 0x04

	enc.GenTurboMask(&port)

	mask := binary.LittleEndian.Uint16(port.OutputMask[0:2])
	assert.Zero(t, mask&(1<<btnA))
}

func TestFBToGenericAlwaysZero(t *testing.T) {
	enc := Encoder{}
	rumble, led := enc.FBToGeneric([]byte{0xFF})
	assert.Zero(t, rumble)
	assert.Zero(t, led)
}
