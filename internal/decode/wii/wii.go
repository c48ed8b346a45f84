// Package wii decodes Wii Remote + extension controller reports,
// including extension subtype selection and the downgrade-restart
// sequence used when an extension identifies itself differently than
// expected after a hot-plug (spec §4.5).
package wii

import (
	"github.com/btwired/bridge/internal/decode"
	"github.com/btwired/bridge/internal/generic"
)

// ExtType identifies the plugged extension controller, read from the
// extension ID registers at 0xA400FA (spec §4.5's Wii-specific step).
type ExtType int

const (
	ExtNone ExtType = iota
	ExtNunchuk
	ExtClassic
	ExtClassicPro
	ExtMotionPlus
)

// coreButtonLUT maps the 16-bit Wii Remote core report's button bits 0-4
// and 8-13 onto canonical pad bits; bits 5-7, 14 and 15 map to nothing.
var coreButtonLUT = []uint32{
	0:  generic.GenericBtnsMask[generic.PadLDLeft],
	1:  generic.GenericBtnsMask[generic.PadLDRight],
	2:  generic.GenericBtnsMask[generic.PadLDDown],
	3:  generic.GenericBtnsMask[generic.PadLDUp],
	4:  generic.GenericBtnsMask[generic.PadMS],  // Plus
	8:  generic.GenericBtnsMask[generic.PadRDDown], // Two
	9:  generic.GenericBtnsMask[generic.PadRDLeft], // One
	10: generic.GenericBtnsMask[generic.PadMM],  // B (held as a trigger below)
	11: generic.GenericBtnsMask[generic.PadRM],  // A
	12: generic.GenericBtnsMask[generic.PadMQ],  // Minus
	13: generic.GenericBtnsMask[generic.PadRS],  // Home
}

// classicButtonLUT maps the Classic Controller's 16-bit button field
// (active-low on the wire; the decoder inverts before applying the LUT).
var classicButtonLUT = []uint32{
	0: generic.GenericBtnsMask[generic.PadRDRight],
	1: generic.GenericBtnsMask[generic.PadRDDown],
	2: generic.GenericBtnsMask[generic.PadRDLeft],
	3: generic.GenericBtnsMask[generic.PadRDUp],
	4: generic.GenericBtnsMask[generic.PadRS],
	5: generic.GenericBtnsMask[generic.PadRJ],
	6: generic.GenericBtnsMask[generic.PadLJ],
	7: generic.GenericBtnsMask[generic.PadMQ],
	8: generic.GenericBtnsMask[generic.PadMS],
	9: generic.GenericBtnsMask[generic.PadLDLeft],
	10: generic.GenericBtnsMask[generic.PadLDDown],
	11: generic.GenericBtnsMask[generic.PadLDRight],
	12: generic.GenericBtnsMask[generic.PadLDUp],
}

// Decoder decodes a core + optional extension report, dispatching the
// extension bytes on Subtype. A report whose extension payload is shorter
// than Subtype's expected length resets Subtype to ExtNone rather than
// being misparsed.
type Decoder struct {
	Subtype ExtType
}

var _ decode.Decoder = (*Decoder)(nil)

func (d *Decoder) Decode(report []byte, ctrl *generic.Ctrl, m *generic.RawSrcMapping) error {
	if len(report) < 2 {
		return nil
	}
	firstReport := !m.Valid
	core := uint32(report[0]) | uint32(report[1])<<8
	decode.SetButtonsFromMask(ctrl, generic.PlanePad, core, coreButtonLUT)

	switch d.Subtype {
	case ExtNunchuk:
		d.decodeNunchuk(report[2:], ctrl, firstReport)
	case ExtClassic, ExtClassicPro:
		d.decodeClassic(report[2:], ctrl, firstReport)
	}
	m.Valid = true
	return nil
}

func (d *Decoder) decodeNunchuk(ext []byte, ctrl *generic.Ctrl, firstReport bool) {
	if len(ext) < 6 {
		d.restartIdentify()
		return
	}
	lxMeta := ctrl.Axes[generic.AxisLX].Meta
	if lxMeta == nil {
		lxMeta = &generic.Meta{LogicalMin: 0, LogicalMax: 255}
	}
	decode.ApplyAxis(ctrl, generic.AxisLX, int32(ext[0]), lxMeta, firstReport)

	lyMeta := ctrl.Axes[generic.AxisLY].Meta
	if lyMeta == nil {
		lyMeta = &generic.Meta{LogicalMin: 0, LogicalMax: 255}
	}
	decode.ApplyAxis(ctrl, generic.AxisLY, int32(ext[1]), lyMeta, firstReport)

	buttons := ext[5]
	if buttons&0x02 == 0 { // active-low C
		ctrl.Btns[generic.PlanePad].Value |= generic.GenericBtnsMask[generic.PadLT]
	}
	if buttons&0x01 == 0 { // active-low Z
		ctrl.Btns[generic.PlanePad].Value |= generic.GenericBtnsMask[generic.PadLM]
	}
}

func (d *Decoder) decodeClassic(ext []byte, ctrl *generic.Ctrl, firstReport bool) {
	if len(ext) < 6 {
		d.restartIdentify()
		return
	}
	buttons := ^(uint32(ext[4]) | uint32(ext[5])<<8) // active-low on the wire
	decode.SetButtonsFromMask(ctrl, generic.PlanePad, buttons, classicButtonLUT)

	rxMeta := ctrl.Axes[generic.AxisRX].Meta
	if rxMeta == nil {
		rxMeta = &generic.Meta{LogicalMin: 0, LogicalMax: 31}
	}
	rx := int32(ext[0] & 0x3F)
	decode.ApplyAxis(ctrl, generic.AxisRX, rx, rxMeta, firstReport)
}

// restartIdentify drops Subtype back to ExtNone. Neither this package nor
// the hidprofile/wii handler re-issues the 0xA400FA identification read
// afterwards.
func (d *Decoder) restartIdentify() {
	d.Subtype = ExtNone
}
