// Package ps3 decodes Sixaxis/DualShock3 wireless input reports (spec
// §4.5, §4.7).
package ps3

import (
	"github.com/btwired/bridge/internal/decode"
	"github.com/btwired/bridge/internal/generic"
)

// dpadLUT and faceLUT decode the D-pad and the four face buttons as
// plain press/release bits. In pressure mode these are skipped: the
// same physical buttons are reported as analog force via pressureAxes
// instead, mirroring the source's i=20 skip of this bit range.
var dpadLUT = []uint32{
	0: generic.GenericBtnsMask[generic.PadLDLeft],
	1: generic.GenericBtnsMask[generic.PadLDDown],
	2: generic.GenericBtnsMask[generic.PadLDRight],
	3: generic.GenericBtnsMask[generic.PadLDUp],
}

var shoulderLUT = []uint32{
	0: generic.GenericBtnsMask[generic.PadLT],
	1: generic.GenericBtnsMask[generic.PadRT],
	2: generic.GenericBtnsMask[generic.PadLM],
	3: generic.GenericBtnsMask[generic.PadRM],
}

var selectStickLUT = []uint32{
	0: generic.GenericBtnsMask[generic.PadMQ],
	1: generic.GenericBtnsMask[generic.PadLJ],
	2: generic.GenericBtnsMask[generic.PadRJ],
	3: generic.GenericBtnsMask[generic.PadMS],
}

var faceLUT = []uint32{
	0: generic.GenericBtnsMask[generic.PadRDUp],
	1: generic.GenericBtnsMask[generic.PadRDRight],
	2: generic.GenericBtnsMask[generic.PadRDDown],
	3: generic.GenericBtnsMask[generic.PadRDLeft],
}

// Normal-mode mask/desc: padDesc marks bits 0-7 of the pad plane (the
// analog stick direction pairs) and bits 24 and 28 (PadLM/PadRM) as
// axis-backed; in this mode Decode fills only the four stick axes.
const (
	padMask = 0xBB7F0FFF
	padDesc = 0x110000FF
	// padPressureDesc additionally describes the D-pad and face-button
	// bits (8-11, 16-19) and bits 25 and 29 (PadLS/PadRS) as
	// axis-backed, used when the bridge targets a
	// PSX/PS2 wired port that wants DualShock2 "full analog" pressure
	// values instead of plain digital presses for those buttons.
	padPressureDesc = 0x330F0FFF
)

// pressureMode is toggled once at startup by SetPressureMode when the
// bridge's wired target is PSX/PS2 (spec §8 scenario B); a PS3 pad feeds
// a single wired port for the lifetime of the process, so this mirrors
// the source's single global wired_adapter.system_id check without
// needing a per-report target parameter on the Decoder interface.
var pressureMode = false

// SetPressureMode selects whether Decode additionally reports the twelve
// pressure axes (DPAD_L/R/D/U, BTN_L/R/D/U, L1/R1/L2/R2) and describes
// the D-pad/face-button bits as axis-backed; with it off, only the four
// stick axes are decoded.
func SetPressureMode(enabled bool) {
	pressureMode = enabled
}

// pressureAxes lists the twelve additional axes decoded only in pressure
// mode, alongside the byte offset (after the report-id byte the
// hidprofile handler strips) carrying that button's analog force —
// report bytes 14-25 of the real DS3/Sixaxis HID report, in the
// device's fixed up/right/down/left/L2/R2/L1/R1/triangle/circle/
// cross/square order.
var pressureAxes = []struct {
	slot int
	off  int
}{
	{generic.AxisDPadU, 14}, {generic.AxisDPadR, 15},
	{generic.AxisDPadD, 16}, {generic.AxisDPadL, 17},
	{generic.AxisTrigL, 18}, {generic.AxisTrigR, 19},
	{generic.AxisTrigLS, 20}, {generic.AxisTrigRS, 21},
	{generic.AxisBtnU, 22}, {generic.AxisBtnR, 23},
	{generic.AxisBtnD, 24}, {generic.AxisBtnL, 25},
}

// stickAxes are decoded unconditionally: the two analog sticks, always
// at this fixed report offset regardless of pressure mode.
var stickAxes = []struct {
	slot int
	off  int
}{
	{generic.AxisLX, 6}, {generic.AxisLY, 7},
	{generic.AxisRX, 8}, {generic.AxisRY, 9},
}

func defaultStickMeta() *generic.Meta {
	return &generic.Meta{LogicalMin: 0, LogicalMax: 255, Neutral: 128}
}

func defaultPressureMeta() *generic.Meta {
	return &generic.Meta{LogicalMin: 0, LogicalMax: 255, Neutral: 0}
}

// Decoder decodes the 48-byte Sixaxis/DS3 0x01 report.
type Decoder struct{}

var _ decode.Decoder = Decoder{}

func (Decoder) Decode(report []byte, ctrl *generic.Ctrl, m *generic.RawSrcMapping) error {
	if len(report) < 10 {
		return nil
	}
	firstReport := !m.Valid

	ctrl.Mask[generic.PlanePad] = padMask
	if pressureMode {
		ctrl.Desc[generic.PlanePad] = padPressureDesc
	} else {
		ctrl.Desc[generic.PlanePad] = padDesc
	}

	decode.SetButtonsFromMask(ctrl, generic.PlanePad, uint32(report[2])>>4, shoulderLUT)
	decode.SetButtonsFromMask(ctrl, generic.PlanePad, uint32(report[3]), selectStickLUT)
	if !pressureMode {
		decode.SetButtonsFromMask(ctrl, generic.PlanePad, uint32(report[2]), dpadLUT)
		decode.SetButtonsFromMask(ctrl, generic.PlanePad, uint32(report[3])>>4, faceLUT)
	}

	for _, a := range stickAxes {
		meta := ctrl.Axes[a.slot].Meta
		if meta == nil {
			meta = defaultStickMeta()
		}
		decode.ApplyAxis(ctrl, a.slot, int32(report[a.off]), meta, firstReport)
	}

	if pressureMode && len(report) > pressureAxes[len(pressureAxes)-1].off {
		for _, a := range pressureAxes {
			meta := ctrl.Axes[a.slot].Meta
			if meta == nil {
				meta = defaultPressureMeta()
			}
			decode.ApplyAxis(ctrl, a.slot, int32(report[a.off]), meta, firstReport)
		}
	}

	m.Valid = true
	return nil
}
