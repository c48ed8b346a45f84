// Package wii implements the hidprofile.Handler for Wii Remote and
// WiiU Pro peers (spec §4.7, §4.5). Init issues the extension ID register
// read at 0xA400FA, but Handle does not parse its reply: the decoder's
// Subtype starts at ExtNone and only ever changes when the decoder drops
// it back to ExtNone, and nothing here re-issues the read afterwards.
package wii

import (
	"github.com/btwired/bridge/internal/btdev"
	"github.com/btwired/bridge/internal/decode/wii"
	"github.com/btwired/bridge/internal/hidprofile"
)

func init() {
	hidprofile.Register(btdev.BtTypeWii, &Handler{})
	hidprofile.Register(btdev.BtTypeWiiU, &Handler{})
}

// Output reports this profile issues during Init, in order: rumble off,
// request report mode 0x37 (core + accel + extension 16 bytes), enable
// the extension encryption-free read path, then read the extension ID
// registers.
var (
	initRumbleOff    = []byte{0x11, 0x00}
	initDataReporting = []byte{0x12, 0x00, 0x37}
	initExtEncryption = []byte{0x16, 0x04, 0xA4, 0x00, 0xF0, 0x01, 0x55}
	initExtIDRead     = []byte{0x17, 0x04, 0xA4, 0x00, 0xFA, 0x02}
)

// Handler tracks the decoder instance per device so its Subtype
// survives across Handle calls on the same connection.
type Handler struct{}

var _ hidprofile.Handler = &Handler{}

func (*Handler) Init(d *btdev.Device) [][]byte {
	return [][]byte{initRumbleOff, initDataReporting, initExtEncryption, initExtIDRead}
}

func (*Handler) Handle(d *btdev.Device, report []byte) error {
	if len(report) == 0 {
		return nil
	}
	dec := decoderFor(d)
	err := dec.Decode(report[1:], &d.Ctrl, &d.RawMaps[0])
	if dec.Subtype == wii.ExtNone {
		d.RawMaps[0].Valid = false // while Subtype is ExtNone, every report recalibrates
	}
	return err
}

// decoderFor retrieves or lazily creates the per-device wii.Decoder; the
// device record itself only stores generic state, so the vendor-specific
// decoder is keyed by device slot in decoders.
func decoderFor(d *btdev.Device) *wii.Decoder {
	dec, ok := decoders[d.Slot]
	if !ok {
		dec = &wii.Decoder{Subtype: wii.ExtNone}
		decoders[d.Slot] = dec
	}
	return dec
}

var decoders = make(map[int]*wii.Decoder)

// Feedback packs rumble into the single bit Wii Remotes support and LED
// into the four player-LED bits of the 0x11/0x15 output reports.
func (*Handler) Feedback(d *btdev.Device, rumble uint8, led uint8) []byte {
	rumbleBit := uint8(0)
	if rumble > 0 {
		rumbleBit = 1
	}
	return []byte{0x11, rumbleBit | (led&0x0F)<<4}
}
