// Package ps4 decodes DualShock4/DualSense input reports (spec §4.5,
// §4.7). Both controllers share the same 0x11 wireless report layout;
// DualSense additionally needs the CRC-32 feedback footer handled in
// hidprofile/ps4.
package ps4

import (
	"github.com/btwired/bridge/internal/decode"
	"github.com/btwired/bridge/internal/generic"
)

// Byte offsets within the report body (after the vendor/report-id bytes
// hidprofile strips before calling Decode), matching the well-known
// DS4/DualSense 0x11 BT report layout.
const (
	offLX     = 0
	offLY     = 1
	offRX     = 2
	offRY     = 3
	offButtons1 = 4 // hat in low nibble, triangle/circle/cross/square in high nibble
	offButtons2 = 5
	offButtons3 = 6
	offL2      = 7
	offR2      = 8
)

var button1LUT = []uint32{ // bits 4-7 of byte 4
	4: generic.GenericBtnsMask[generic.PadRDDown],  // cross
	5: generic.GenericBtnsMask[generic.PadRDLeft],  // square
	6: generic.GenericBtnsMask[generic.PadRDUp],    // triangle
	7: generic.GenericBtnsMask[generic.PadRDRight], // circle
}

var button2LUT = []uint32{
	0: generic.GenericBtnsMask[generic.PadLM],
	1: generic.GenericBtnsMask[generic.PadRM],
	2: generic.GenericBtnsMask[generic.PadLT],
	3: generic.GenericBtnsMask[generic.PadRT],
	4: generic.GenericBtnsMask[generic.PadLS],
	5: generic.GenericBtnsMask[generic.PadRS],
	6: generic.GenericBtnsMask[generic.PadLJ],
	7: generic.GenericBtnsMask[generic.PadRJ],
}

var button3LUT = []uint32{
	0: generic.GenericBtnsMask[generic.PadMS],
	1: generic.GenericBtnsMask[generic.PadMM],
}

// Decoder implements decode.Decoder for DS4/DualSense 0x11 reports.
type Decoder struct{}

var _ decode.Decoder = Decoder{}

func (Decoder) Decode(report []byte, ctrl *generic.Ctrl, m *generic.RawSrcMapping) error {
	if len(report) <= offR2 {
		return nil
	}
	firstReport := !m.Valid

	axes := [4]struct {
		slot int
		off  int
	}{
		{generic.AxisLX, offLX}, {generic.AxisLY, offLY},
		{generic.AxisRX, offRX}, {generic.AxisRY, offRY},
	}
	for _, a := range axes {
		meta := ctrl.Axes[a.slot].Meta
		if meta == nil {
			meta = &generic.Meta{LogicalMin: 0, LogicalMax: 255, Neutral: 128}
		}
		decode.ApplyAxis(ctrl, a.slot, int32(report[a.off]), meta, firstReport)
	}

	hat := report[offButtons1] & 0x0F
	if int(hat) < len(decode.HatTable) {
		ctrl.Btns[generic.PlanePad].Value |= decode.HatTable[hat]
	}
	decode.SetButtonsFromMask(ctrl, generic.PlanePad, uint32(report[offButtons1]>>4), button1LUT[4:])
	decode.SetButtonsFromMask(ctrl, generic.PlanePad, uint32(report[offButtons2]), button2LUT)
	decode.SetButtonsFromMask(ctrl, generic.PlanePad, uint32(report[offButtons3]), button3LUT)

	l2Meta := ctrl.Axes[generic.AxisTrigL].Meta
	if l2Meta == nil {
		l2Meta = &generic.Meta{LogicalMin: 0, LogicalMax: 255}
	}
	decode.ApplyAxis(ctrl, generic.AxisTrigL, int32(report[offL2]), l2Meta, false)

	r2Meta := ctrl.Axes[generic.AxisTrigR].Meta
	if r2Meta == nil {
		r2Meta = &generic.Meta{LogicalMin: 0, LogicalMax: 255}
	}
	decode.ApplyAxis(ctrl, generic.AxisTrigR, int32(report[offR2]), r2Meta, false)

	m.Valid = true
	return nil
}
