// Package decode turns vendor-specific wireless HID reports into the
// canonical generic.Ctrl representation (spec §4.5). Each vendor
// subpackage implements the Decoder interface; hidprofile handlers call
// into the matching decoder after stripping their own report-ID framing.
package decode

import "github.com/btwired/bridge/internal/generic"

// Decoder turns one raw HID report into generic controller state (spec
// §4.5 steps 1-7): first-report calibration capture, clearing ctrl_data,
// button-mask iteration, hat decode, axis sign-extension/neutral/cal
// offset application.
type Decoder interface {
	// Decode consumes report and writes the result into ctrl, using map
	// to remember calibration captured on a prior call. map.Valid is
	// false exactly once per reconnect, on the very first report.
	Decode(report []byte, ctrl *generic.Ctrl, m *generic.RawSrcMapping) error
}

// HatTable is the standard 8-direction (+center+invalid) D-pad hat
// encoding shared by PS4/PS5/Switch/generic HID gamepads: index 0-7 are
// the compass directions clockwise from up, 8-15 map to "centered" (spec
// §4.5 step 4, "16-entry hat lookup").
var HatTable = [16]uint32{
	0: generic.GenericBtnsMask[generic.PadLDUp],
	1: generic.GenericBtnsMask[generic.PadLDUp] | generic.GenericBtnsMask[generic.PadLDRight],
	2: generic.GenericBtnsMask[generic.PadLDRight],
	3: generic.GenericBtnsMask[generic.PadLDRight] | generic.GenericBtnsMask[generic.PadLDDown],
	4: generic.GenericBtnsMask[generic.PadLDDown],
	5: generic.GenericBtnsMask[generic.PadLDDown] | generic.GenericBtnsMask[generic.PadLDLeft],
	6: generic.GenericBtnsMask[generic.PadLDLeft],
	7: generic.GenericBtnsMask[generic.PadLDLeft] | generic.GenericBtnsMask[generic.PadLDUp],
	8: 0, 9: 0, 10: 0, 11: 0, 12: 0, 13: 0, 14: 0, 15: 0,
}

// ApplyAxis writes a raw logical sample into ctrl.Axes[axisIdx], capturing
// the neutral point into meta on the first call for this slot (m.Valid ==
// false) and thereafter subtracting the captured neutral, exactly as spec
// §4.5 step 6 describes ("first report calibrates, later reports offset
// against it").
func ApplyAxis(ctrl *generic.Ctrl, axisIdx int, raw int32, meta *generic.Meta, firstReport bool) {
	if firstReport {
		meta.Neutral = raw
	}
	v := raw - meta.Neutral
	if meta.Deadzone != 0 && v > -meta.Deadzone && v < meta.Deadzone {
		v = 0
	}
	ctrl.Axes[axisIdx] = generic.Axis{Value: v, Meta: meta}
}

// SetButtonsFromMask ORs srcMask's set bits into ctrl.Btns[plane], mapping
// each physical bit position through lut (the device's btns_mask table,
// spec §4.5 step 3).
func SetButtonsFromMask(ctrl *generic.Ctrl, plane int, srcMask uint32, lut []uint32) {
	for i, bit := range lut {
		if srcMask&(1<<uint(i)) != 0 {
			ctrl.Btns[plane].Value |= bit
		}
	}
}
