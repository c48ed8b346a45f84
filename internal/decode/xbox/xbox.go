// Package xbox decodes Xbox Wireless Controller (Bluetooth LE HID) input
// reports (spec §4.5, §4.7).
package xbox

import (
	"encoding/binary"

	"github.com/btwired/bridge/internal/decode"
	"github.com/btwired/bridge/internal/generic"
)

var buttonLUT = []uint32{
	0: generic.GenericBtnsMask[generic.PadRDDown],
	1: generic.GenericBtnsMask[generic.PadRDRight],
	2: generic.GenericBtnsMask[generic.PadRDLeft],
	3: generic.GenericBtnsMask[generic.PadRDUp],
	4: generic.GenericBtnsMask[generic.PadLS],
	5: generic.GenericBtnsMask[generic.PadRS],
	6: generic.GenericBtnsMask[generic.PadLJ],
	7: generic.GenericBtnsMask[generic.PadRJ],
	8: generic.GenericBtnsMask[generic.PadMM],
	9: generic.GenericBtnsMask[generic.PadMQ],
}

// Decoder decodes the 16-bit-axis BLE HID report layout.
type Decoder struct{}

var _ decode.Decoder = Decoder{}

func (Decoder) Decode(report []byte, ctrl *generic.Ctrl, m *generic.RawSrcMapping) error {
	if len(report) < 14 {
		return nil
	}
	firstReport := !m.Valid

	lx := int32(int16(binary.LittleEndian.Uint16(report[0:2])))
	ly := int32(int16(binary.LittleEndian.Uint16(report[2:4])))
	rx := int32(int16(binary.LittleEndian.Uint16(report[4:6])))
	ry := int32(int16(binary.LittleEndian.Uint16(report[6:8])))
	l2 := int32(binary.LittleEndian.Uint16(report[8:10]))
	r2 := int32(binary.LittleEndian.Uint16(report[10:12]))

	applyAxis16(ctrl, generic.AxisLX, lx, firstReport)
	applyAxis16(ctrl, generic.AxisLY, ly, firstReport)
	applyAxis16(ctrl, generic.AxisRX, rx, firstReport)
	applyAxis16(ctrl, generic.AxisRY, ry, firstReport)
	applyTrigger(ctrl, generic.AxisTrigL, l2)
	applyTrigger(ctrl, generic.AxisTrigR, r2)

	hat := report[12] & 0x0F
	if int(hat) < len(decode.HatTable) {
		ctrl.Btns[generic.PlanePad].Value |= decode.HatTable[hat]
	}
	decode.SetButtonsFromMask(ctrl, generic.PlanePad, uint32(report[13]), buttonLUT)

	m.Valid = true
	return nil
}

func applyAxis16(ctrl *generic.Ctrl, axis int, raw int32, firstReport bool) {
	meta := ctrl.Axes[axis].Meta
	if meta == nil {
		meta = &generic.Meta{LogicalMin: -32768, LogicalMax: 32767, Deadzone: 1024}
	}
	decode.ApplyAxis(ctrl, axis, raw, meta, firstReport)
}

func applyTrigger(ctrl *generic.Ctrl, axis int, raw int32) {
	meta := ctrl.Axes[axis].Meta
	if meta == nil {
		meta = &generic.Meta{LogicalMin: 0, LogicalMax: 1023}
	}
	decode.ApplyAxis(ctrl, axis, raw, meta, false)
}
