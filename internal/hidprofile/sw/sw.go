// Package sw implements the hidprofile.Handler for Nintendo Switch
// controllers: a handshake that requests full input reporting, then
// ongoing decode via decode/sw's five button tables (spec §4.7, §4.5).
// Init sends no player-LED subcommand, and no calibration data is loaded.
package sw

import (
	"github.com/btwired/bridge/internal/btdev"
	"github.com/btwired/bridge/internal/decode/sw"
	"github.com/btwired/bridge/internal/hidprofile"
)

func init() {
	hidprofile.Register(btdev.BtTypeSwitch, &Handler{})
}

var (
	handshake        = []byte{0x80, 0x02}
	forceUSBTimeout  = []byte{0x80, 0x04}
	enableFullReport = []byte{0x01, 0x00, 0x01, 0x40, 0x40, 0x00, 0x01, 0x03}
)

// Handler classifies the table once per device from the exact device
// name supplied at connect time (see tableForName) and caches it by slot.
type Handler struct{}

var _ hidprofile.Handler = &Handler{}

func (*Handler) Init(d *btdev.Device) [][]byte {
	return [][]byte{handshake, forceUSBTimeout, enableFullReport}
}

func (*Handler) Handle(d *btdev.Device, report []byte) error {
	if len(report) == 0 {
		return nil
	}
	dec := decoderFor(d)
	return dec.Decode(report[1:], &d.Ctrl, &d.RawMaps[0])
}

var decoders = make(map[int]*sw.Decoder)

func decoderFor(d *btdev.Device) *sw.Decoder {
	dec, ok := decoders[d.Slot]
	if !ok {
		dec = &sw.Decoder{Table: tableForName(d.Name)}
		decoders[d.Slot] = dec
	}
	return dec
}

// tableForName picks the button-mask table by device name, supplementing
// the spec's subtype concept with the actual product strings Joy-Cons and
// their third-party clones report.
func tableForName(name string) sw.Table {
	switch name {
	case "Joy-Con (L)":
		return sw.TableJoyConL
	case "Joy-Con (R)":
		return sw.TableJoyConR
	case "Admiral":
		return sw.TableAdmiral
	case "RF Brawler64":
		return sw.TableRFBrawler64
	default:
		return sw.TablePro
	}
}

// Feedback sets the player LED pattern; Switch controllers have no
// rumble-by-byte control in the reduced HID mode this bridge uses, so
// rumble is accepted but not encoded (spec Non-goal: no haptics beyond
// simple rumble/LED, and simple-mode Switch reports don't carry it).
func (*Handler) Feedback(d *btdev.Device, rumble uint8, led uint8) []byte {
	return []byte{0x01, 0x00, 0x30, led & 0x0F}
}
