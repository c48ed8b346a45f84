// Package generichid decodes arbitrary HID gamepads using their own
// report descriptor rather than a hand-written layout, the fallback path
// for devices not recognised by name (spec §4.5, §4.7 generic HID
// profile).
package generichid

import (
	"github.com/btwired/bridge/internal/bitio"
	"github.com/btwired/bridge/internal/decode"
	"github.com/btwired/bridge/internal/generic"
)

// FieldKind distinguishes how a descriptor field maps onto generic.Ctrl.
type FieldKind int

const (
	FieldButton FieldKind = iota
	FieldHat
	FieldAxis
)

// Field is one parsed report-descriptor field: its bit position/width and
// where it lands in the canonical model.
type Field struct {
	Kind       FieldKind
	BitOffset  int
	BitWidth   int
	Signed     bool
	ButtonSlot int // FieldButton: index into generic pad plane bits
	AxisSlot   int // FieldAxis: generic.AxisXxx
	LogicalMin int32
	LogicalMax int32
}

// Descriptor is the cached, parsed field layout for one device, built once
// from its HID report descriptor and reused every report thereafter.
type Descriptor struct {
	Fields []Field
}

// Decoder implements decode.Decoder against a cached Descriptor.
type Decoder struct {
	Desc Descriptor
}

var _ decode.Decoder = (*Decoder)(nil)

// Decode walks d.Desc.Fields against report using a bitio.Reader,
// populating ctrl (spec §4.5). Button fields OR straight into the pad
// plane; hat fields go through decode.HatTable; axis fields go through
// decode.ApplyAxis so the first report still calibrates neutral.
func (d *Decoder) Decode(report []byte, ctrl *generic.Ctrl, m *generic.RawSrcMapping) error {
	r := bitio.NewReader(report)
	firstReport := !m.Valid

	for _, f := range d.Desc.Fields {
		switch f.Kind {
		case FieldButton:
			if r.Unsigned(f.BitOffset, f.BitWidth) != 0 {
				ctrl.Btns[generic.PlanePad].Value |= generic.GenericBtnsMask[f.ButtonSlot]
			}
		case FieldHat:
			idx := r.Unsigned(f.BitOffset, f.BitWidth)
			if int(idx) < len(decode.HatTable) {
				ctrl.Btns[generic.PlanePad].Value |= decode.HatTable[idx]
			}
		case FieldAxis:
			var raw int32
			if f.Signed {
				raw = r.Signed(f.BitOffset, f.BitWidth)
			} else {
				raw = int32(r.Unsigned(f.BitOffset, f.BitWidth))
			}
			meta := ctrl.Axes[f.AxisSlot].Meta
			if meta == nil {
				meta = &generic.Meta{LogicalMin: f.LogicalMin, LogicalMax: f.LogicalMax}
			}
			decode.ApplyAxis(ctrl, f.AxisSlot, raw, meta, firstReport)
		}
	}
	m.Valid = true
	return nil
}
