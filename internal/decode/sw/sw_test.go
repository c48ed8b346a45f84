package sw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/btwired/bridge/internal/generic"
)

func TestDecodeProControllerButtons(t *testing.T) {
	d := &Decoder{Table: TablePro}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping

	report := make([]byte, 9)
	report[0] = 0x01 // B button (bit 0 in proLUT -> PadRDDown)
	report[2] = 0x08 // hat centered

	err := d.Decode(report, ctrl, &m)
	require.NoError(t, err)
	assert.NotZero(t, ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[generic.PadRDDown])
}

func TestDecodeStickPacking(t *testing.T) {
	d := &Decoder{Table: TablePro}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping

	report := make([]byte, 9)
	report[3], report[4] = 0x00, 0x08 // lx = 0x800 (center of 12-bit range)

	require.NoError(t, d.Decode(report, ctrl, &m))
	assert.Equal(t, int32(0), ctrl.Axes[generic.AxisLX].Value, "first report calibrates to zero")
}

func TestAdmiralTableDiffersFromPro(t *testing.T) {
	assert.NotEqual(t, proLUT[0], admiralLUT[0])
}
