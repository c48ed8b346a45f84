package ps4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/btwired/bridge/internal/generic"
)

func TestDecodeNeutralSticksAndCross(t *testing.T) {
	d := Decoder{}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping

	report := make([]byte, 9)
	report[offLX], report[offLY], report[offRX], report[offRY] = 128, 128, 128, 128
	report[offButtons1] = 0x08 | (1 << 4) // hat centered (8), cross pressed
	require := assert.New(t)

	err := d.Decode(report, ctrl, &m)
	require.NoError(err)
	require.True(m.Valid)
	require.NotZero(ctrl.Btns[generic.PlanePad].Value & generic.GenericBtnsMask[generic.PadRDDown])
	require.Equal(int32(0), ctrl.Axes[generic.AxisLX].Value, "first report calibrates neutral to zero delta")
}

func TestDecodeShortReportIsNoop(t *testing.T) {
	d := Decoder{}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping
	err := d.Decode([]byte{1, 2, 3}, ctrl, &m)
	assert.NoError(t, err)
	assert.False(t, m.Valid)
}
