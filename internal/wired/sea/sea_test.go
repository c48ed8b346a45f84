package sea

import (
	"encoding/binary"
	"testing"

	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
	"github.com/stretchr/testify/assert"
)

func TestInitBufferIdleState(t *testing.T) {
	var port wired.PortState
	enc := Encoder{}
	enc.InitBuffer(config.DevPad, &port)
	assert.Len(t, port.Output, bufLen)
	assert.Equal(t, uint16(gbahdState), binary.LittleEndian.Uint16(port.Output[10:12]))
}

func TestFromGenericClearsButtonBitOnPress(t *testing.T) {
	var port wired.PortState
	enc := Encoder{}
	enc.InitBuffer(config.DevPad, &port)

	var ctrl generic.Ctrl
	enc.MetaInit(config.DevPad, &ctrl)
	ctrl.MapMask[generic.PlanePad] = generic.GenericBtnsMask[16]
	ctrl.Btns[generic.PlanePad].Value = generic.GenericBtnsMask[16]

	enc.FromGeneric(config.DevPad, &ctrl, &port, &config.Config{})

	buttons := binary.LittleEndian.Uint32(port.Output[0:4])
	assert.Zero(t, buttons&seaBtnsMask[16])
}

func TestGbahdHomeButtonEntersOSDOnRelease(t *testing.T) {
	var port wired.PortState
	enc := Encoder{}
	enc.InitBuffer(config.DevPad, &port)

	var ctrl generic.Ctrl
	enc.MetaInit(config.DevPad, &ctrl)
	ctrl.Index = 0
	ctrl.Btns[generic.PlanePad].Value = generic.GenericBtnsMask[generic.PadMT]
	enc.FromGeneric(config.DevPad, &ctrl, &port, &config.Config{})
	assert.True(t, stateFor(0).waitingForRelease)

	ctrl.Btns[generic.PlanePad].Value = 0
	enc.FromGeneric(config.DevPad, &ctrl, &port, &config.Config{})

	gbahdStateWord := binary.LittleEndian.Uint16(port.Output[10:12])
	assert.Equal(t, uint16(gbahdLineMin), gbahdStateWord)
	assert.False(t, stateFor(0).waitingForRelease)
}

func TestSecondIndexPortIgnored(t *testing.T) {
	var port wired.PortState
	enc := Encoder{}
	enc.InitBuffer(config.DevPad, &port)
	before := append([]byte(nil), port.Output...)

	var ctrl generic.Ctrl
	ctrl.Index = 1
	ctrl.Btns[generic.PlanePad].Value = generic.GenericBtnsMask[16]
	enc.FromGeneric(config.DevPad, &ctrl, &port, &config.Config{})

	assert.Equal(t, before, port.Output)
}
