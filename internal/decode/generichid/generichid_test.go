package generichid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/btwired/bridge/internal/generic"
)

func TestDecodeButtonHatAndAxisFields(t *testing.T) {
	d := &Decoder{Desc: Descriptor{Fields: []Field{
		{Kind: FieldButton, BitOffset: 0, BitWidth: 1, ButtonSlot: generic.PadRM},
		{Kind: FieldHat, BitOffset: 4, BitWidth: 4},
		{Kind: FieldAxis, BitOffset: 8, BitWidth: 8, AxisSlot: generic.AxisLX, LogicalMin: 0, LogicalMax: 255},
	}}}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping

	report := []byte{0b0001_0001, 130}
	require.NoError(t, d.Decode(report, ctrl, &m))
	assert.NotZero(t, ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[generic.PadRM])
	assert.True(t, m.Valid)
}

func TestSignedAxisField(t *testing.T) {
	d := &Decoder{Desc: Descriptor{Fields: []Field{
		{Kind: FieldAxis, BitOffset: 0, BitWidth: 8, Signed: true, AxisSlot: generic.AxisRX},
	}}}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping

	require.NoError(t, d.Decode([]byte{0xFF}, ctrl, &m)) // -1, becomes neutral on first report
	assert.Equal(t, int32(0), ctrl.Axes[generic.AxisRX].Value)
}
