package xbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/btwired/bridge/internal/generic"
)

func TestDecodeButtonsAndTriggers(t *testing.T) {
	d := Decoder{}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping

	report := make([]byte, 14)
	report[13] = 0x01 // A button

	require.NoError(t, d.Decode(report, ctrl, &m))
	assert.NotZero(t, ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[generic.PadRDDown])
	assert.True(t, m.Valid)
}

func TestDecodeShortReportIsNoop(t *testing.T) {
	d := Decoder{}
	ctrl := &generic.Ctrl{}
	var m generic.RawSrcMapping
	require.NoError(t, d.Decode([]byte{1, 2, 3}, ctrl, &m))
	assert.False(t, m.Valid)
}
