package psx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
)

func TestMetaInitDescribesStickAndPressureAxesAsAxisBacked(t *testing.T) {
	ctrl := &generic.Ctrl{}
	Encoder{}.MetaInit(config.DevPad, ctrl)

	assert.NotZero(t, ctrl.Desc[generic.PlanePad]&generic.GenericBtnsMask[generic.PadLXLeft])
	assert.NotZero(t, ctrl.Desc[generic.PlanePad]&generic.GenericBtnsMask[generic.PadLDLeft])
	assert.NotZero(t, ctrl.Desc[generic.PlanePad]&generic.GenericBtnsMask[generic.PadRBLeft])
	require.NotNil(t, ctrl.Axes[generic.AxisBtnL].Meta)
	assert.Equal(t, int32(0xFF), ctrl.Axes[generic.AxisBtnL].Meta.SizeMax)
}

// TestFromGenericWritesBtnLPressureByte is the encode side of spec §8
// scenario B: a mapped BTN_L axis value of 0xFF must land in the wire
// buffer's square pressure byte.
func TestFromGenericWritesBtnLPressureByte(t *testing.T) {
	e := Encoder{}
	port := &wired.PortState{}
	e.InitBuffer(config.DevPad, port)

	ctrl := &generic.Ctrl{}
	e.MetaInit(config.DevPad, ctrl)
	ctrl.Axes[generic.AxisBtnL].Value = 0xFF
	ctrl.MapMask[generic.PlanePad] = generic.AxisToBtnMask(generic.AxisBtnL)

	e.FromGeneric(config.DevPad, ctrl, port, nil)
	assert.Equal(t, byte(0xFF), port.Output[2+axesIdx[generic.AxisBtnL]])
}

func TestFromGenericClampsPressureAxisToByteRange(t *testing.T) {
	e := Encoder{}
	port := &wired.PortState{}
	e.InitBuffer(config.DevPad, port)

	ctrl := &generic.Ctrl{}
	e.MetaInit(config.DevPad, ctrl)
	ctrl.Axes[generic.AxisBtnL].Value = 500
	ctrl.MapMask[generic.PlanePad] = generic.AxisToBtnMask(generic.AxisBtnL)

	e.FromGeneric(config.DevPad, ctrl, port, nil)
	assert.Equal(t, byte(0xFF), port.Output[2+axesIdx[generic.AxisBtnL]])
}

func TestFromGenericSkipsUnmappedPressureAxis(t *testing.T) {
	e := Encoder{}
	port := &wired.PortState{}
	e.InitBuffer(config.DevPad, port)

	ctrl := &generic.Ctrl{}
	e.MetaInit(config.DevPad, ctrl)
	ctrl.Axes[generic.AxisBtnL].Value = 0xFF // set but never marked touched

	e.FromGeneric(config.DevPad, ctrl, port, nil)
	assert.Zero(t, port.Output[2+axesIdx[generic.AxisBtnL]])
}

func TestFromGenericEncodesStickAxis(t *testing.T) {
	e := Encoder{}
	port := &wired.PortState{}
	e.InitBuffer(config.DevPad, port)

	ctrl := &generic.Ctrl{}
	e.MetaInit(config.DevPad, ctrl)
	ctrl.Axes[generic.AxisLX].Value = -128
	ctrl.MapMask[generic.PlanePad] = generic.AxisToBtnMask(generic.AxisLX)

	e.FromGeneric(config.DevPad, ctrl, port, nil)
	assert.Equal(t, int8(-128), int8(port.Output[2+axesIdx[generic.AxisLX]]))
}
