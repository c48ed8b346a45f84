package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/btwired/bridge/internal/generic"
)

func TestApplyAxisCapturesNeutralOnFirstReport(t *testing.T) {
	ctrl := &generic.Ctrl{}
	meta := &generic.Meta{}
	ApplyAxis(ctrl, generic.AxisLX, 130, meta, true)
	assert.Equal(t, int32(130), meta.Neutral)
	assert.Equal(t, int32(0), ctrl.Axes[generic.AxisLX].Value)

	ApplyAxis(ctrl, generic.AxisLX, 140, meta, false)
	assert.Equal(t, int32(10), ctrl.Axes[generic.AxisLX].Value)
}

func TestApplyAxisDeadzone(t *testing.T) {
	ctrl := &generic.Ctrl{}
	meta := &generic.Meta{Deadzone: 5}
	ApplyAxis(ctrl, generic.AxisLX, 100, meta, true)
	ApplyAxis(ctrl, generic.AxisLX, 103, meta, false)
	assert.Equal(t, int32(0), ctrl.Axes[generic.AxisLX].Value, "within deadzone clamps to zero")
}

func TestSetButtonsFromMask(t *testing.T) {
	ctrl := &generic.Ctrl{}
	lut := []uint32{
		0: generic.GenericBtnsMask[generic.PadLM],
		1: generic.GenericBtnsMask[generic.PadRM],
	}
	SetButtonsFromMask(ctrl, generic.PlanePad, 0b11, lut)
	assert.NotZero(t, ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[generic.PadLM])
	assert.NotZero(t, ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[generic.PadRM])
}

func TestHatTableCardinalDirections(t *testing.T) {
	assert.Equal(t, generic.GenericBtnsMask[generic.PadLDUp], HatTable[0])
	assert.Equal(t, generic.GenericBtnsMask[generic.PadLDDown], HatTable[4])
	assert.Equal(t, uint32(0), HatTable[8], "8 is the centered/released sentinel")
}
