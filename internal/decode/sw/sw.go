// Package sw decodes Nintendo Switch controller reports. A Table value
// selects one of five button-mask slots (Pro Controller, left Joy-Con,
// right Joy-Con, and the "admiral"/RF Brawler64 third-party clones);
// three distinct LUTs back them, since right Joy-Con and RF Brawler64
// reuse the Pro Controller table (spec §4.5, "Switch 5-table button-mask
// selection").
package sw

import (
	"github.com/btwired/bridge/internal/decode"
	"github.com/btwired/bridge/internal/generic"
)

// Table selects which of the five button-mask LUTs a report uses.
type Table int

const (
	TablePro Table = iota
	TableJoyConL
	TableJoyConR
	TableAdmiral
	TableRFBrawler64
)

var proLUT = []uint32{
	0: generic.GenericBtnsMask[generic.PadRDDown],
	1: generic.GenericBtnsMask[generic.PadRDRight],
	2: generic.GenericBtnsMask[generic.PadRDLeft],
	3: generic.GenericBtnsMask[generic.PadRDUp],
	6: generic.GenericBtnsMask[generic.PadRM],
	7: generic.GenericBtnsMask[generic.PadRT],
}

var joyConLLUT = []uint32{
	0: generic.GenericBtnsMask[generic.PadLDDown],
	1: generic.GenericBtnsMask[generic.PadLDUp],
	2: generic.GenericBtnsMask[generic.PadLDRight],
	3: generic.GenericBtnsMask[generic.PadLDLeft],
	6: generic.GenericBtnsMask[generic.PadLM],
	7: generic.GenericBtnsMask[generic.PadLT],
}

var joyConRLUT = proLUT

// admiralLUT is the same physical layout as proLUT but with A/B and X/Y
// swapped, matching the "admiral" clone's non-standard HID mapping; kept
// as a distinct table rather than patched in place so a future clone with
// yet another ordering doesn't have to fight this one.
var admiralLUT = []uint32{
	0: generic.GenericBtnsMask[generic.PadRDRight],
	1: generic.GenericBtnsMask[generic.PadRDDown],
	2: generic.GenericBtnsMask[generic.PadRDUp],
	3: generic.GenericBtnsMask[generic.PadRDLeft],
	6: generic.GenericBtnsMask[generic.PadRM],
	7: generic.GenericBtnsMask[generic.PadRT],
}

var rfBrawler64LUT = proLUT

func lutFor(t Table) []uint32 {
	switch t {
	case TableJoyConL:
		return joyConLLUT
	case TableJoyConR:
		return joyConRLUT
	case TableAdmiral:
		return admiralLUT
	case TableRFBrawler64:
		return rfBrawler64LUT
	default:
		return proLUT
	}
}

// Decoder decodes a single Switch input report selecting its button LUT
// from Table, set once at connect time from the identified subtype.
type Decoder struct {
	Table Table
}

var _ decode.Decoder = (*Decoder)(nil)

// Decode expects the standard full-mode report: byte 0 buttons low, byte
// 1 buttons high, byte 2 hat/dpad nibble, bytes 3-8 packed 12-bit stick
// pairs (left X/Y, right X/Y).
func (d *Decoder) Decode(report []byte, ctrl *generic.Ctrl, m *generic.RawSrcMapping) error {
	if len(report) < 9 {
		return nil
	}
	firstReport := !m.Valid
	lut := lutFor(d.Table)

	buttons := uint32(report[0]) | uint32(report[1])<<8
	decode.SetButtonsFromMask(ctrl, generic.PlanePad, buttons, lut)

	hat := report[2] & 0x0F
	if int(hat) < len(decode.HatTable) {
		ctrl.Btns[generic.PlanePad].Value |= decode.HatTable[hat]
	}

	lx := int32(report[3]) | int32(report[4]&0x0F)<<8
	ly := int32(report[4]>>4) | int32(report[5])<<4
	rx := int32(report[6]) | int32(report[7]&0x0F)<<8
	ry := int32(report[7]>>4) | int32(report[8])<<4

	applyStick(ctrl, generic.AxisLX, lx, firstReport)
	applyStick(ctrl, generic.AxisLY, ly, firstReport)
	applyStick(ctrl, generic.AxisRX, rx, firstReport)
	applyStick(ctrl, generic.AxisRY, ry, firstReport)

	m.Valid = true
	return nil
}

func applyStick(ctrl *generic.Ctrl, axis int, raw int32, firstReport bool) {
	meta := ctrl.Axes[axis].Meta
	if meta == nil {
		meta = &generic.Meta{LogicalMin: 0, LogicalMax: 4095, Deadzone: 80}
	}
	decode.ApplyAxis(ctrl, axis, raw, meta, firstReport)
}
