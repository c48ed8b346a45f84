package ps3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/btwired/bridge/internal/generic"
)

func TestDecodeButtonsAndSticks(t *testing.T) {
	d := Decoder{}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping

	report := make([]byte, 10)
	report[2] = 0x01 // dpad left
	report[6], report[7], report[8], report[9] = 128, 128, 128, 128

	require.NoError(t, d.Decode(report, ctrl, &m))
	assert.NotZero(t, ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[generic.PadLDLeft])
	assert.True(t, m.Valid)
}

func TestDecodeTooShortIsNoop(t *testing.T) {
	d := Decoder{}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping
	require.NoError(t, d.Decode([]byte{1, 2}, ctrl, &m))
	assert.False(t, m.Valid)
}

func TestDecodeNormalModeSetsStickMaskAndDesc(t *testing.T) {
	t.Cleanup(func() { SetPressureMode(false) })
	SetPressureMode(false)

	d := Decoder{}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping
	report := make([]byte, 10)

	require.NoError(t, d.Decode(report, ctrl, &m))
	assert.Equal(t, uint32(padMask), ctrl.Mask[generic.PlanePad])
	assert.Equal(t, uint32(padDesc), ctrl.Desc[generic.PlanePad])
}

// TestDecodePressureModeReportsBtnLPressure is the spec §8 scenario B
// fixture: a raw square (BTN_L) pressure byte of 0xFF must surface as
// canonical axes[BTN_L].value == 0xFF, with the descriptor marking it
// (and the rest of the D-pad/face buttons) axis-backed rather than a
// plain press/release bit.
func TestDecodePressureModeReportsBtnLPressure(t *testing.T) {
	t.Cleanup(func() { SetPressureMode(false) })
	SetPressureMode(true)

	d := Decoder{}
	ctrl := &generic.Ctrl{}
	// m.Valid starts true: this exercises a steady-state report, not the
	// connection's calibrating first report, where every axis reads 0
	// by construction (raw - neutral + cal, cal := -(raw - neutral)).
	m := generic.RawSrcMapping{Valid: true}
	report := make([]byte, 26)
	report[25] = 0xFF // square / BTN_L pressure byte

	require.NoError(t, d.Decode(report, ctrl, &m))
	assert.Equal(t, int32(0xFF), ctrl.Axes[generic.AxisBtnL].Value)
	assert.Equal(t, uint32(padPressureDesc), ctrl.Desc[generic.PlanePad])
	assert.NotZero(t, ctrl.Desc[generic.PlanePad]&generic.GenericBtnsMask[generic.PadRBLeft])
}

func TestDecodePressureModeSuppressesDpadAndFaceBooleans(t *testing.T) {
	t.Cleanup(func() { SetPressureMode(false) })
	SetPressureMode(true)

	d := Decoder{}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping
	report := make([]byte, 26)
	report[2] = 0x01 // dpad left, ignored in pressure mode
	report[3] = 0x80 // square (face button high nibble), ignored in pressure mode

	require.NoError(t, d.Decode(report, ctrl, &m))
	assert.Zero(t, ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[generic.PadLDLeft])
	assert.Zero(t, ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[generic.PadRDLeft])
}

func TestDecodePressureModeTooShortSkipsPressureAxesOnly(t *testing.T) {
	t.Cleanup(func() { SetPressureMode(false) })
	SetPressureMode(true)

	d := Decoder{}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping
	report := make([]byte, 10) // long enough for sticks, too short for pressure bytes

	require.NoError(t, d.Decode(report, ctrl, &m))
	assert.True(t, m.Valid)
}
