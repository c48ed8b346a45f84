// Package generichid implements the hidprofile.Handler fallback used when
// a connecting peer's name matches none of the known vendor prefixes
// (spec §4.7): it decodes reports with a per-slot
// decode/generichid.Descriptor installed through SetDescriptor rather
// than assuming any fixed layout. This package does not fetch or parse
// HID report descriptors itself.
package generichid

import (
	"github.com/btwired/bridge/internal/btdev"
	"github.com/btwired/bridge/internal/decode/generichid"
	"github.com/btwired/bridge/internal/hidprofile"
)

func init() {
	hidprofile.Register(btdev.BtTypeHID, &Handler{})
}

// Handler has no fixed handshake. Until SetDescriptor has installed a
// descriptor for a slot, Handle decodes with an empty field list and
// reports no buttons or axes.
type Handler struct{}

var _ hidprofile.Handler = &Handler{}

func (*Handler) Init(d *btdev.Device) [][]byte { return nil }

func (*Handler) Handle(d *btdev.Device, report []byte) error {
	dec := decoderFor(d)
	return dec.Decode(report, &d.Ctrl, &d.RawMaps[0])
}

var decoders = make(map[int]*generichid.Decoder)

func decoderFor(d *btdev.Device) *generichid.Decoder {
	dec, ok := decoders[d.Slot]
	if !ok {
		dec = &generichid.Decoder{}
		decoders[d.Slot] = dec
	}
	return dec
}

// SetDescriptor installs the field layout Handle decodes d's reports
// with. The layout arrives out of band from input reports, so Handle
// never sets it.
func SetDescriptor(d *btdev.Device, desc generichid.Descriptor) {
	decoderFor(d).Desc = desc
}

// Feedback is unsupported for unrecognised devices: this bridge has no
// generic way to discover an arbitrary HID device's output report
// layout without a much larger descriptor-parsing investment than the
// button/axis path needs.
func (*Handler) Feedback(d *btdev.Device, rumble uint8, led uint8) []byte {
	return nil
}
