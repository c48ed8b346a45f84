// Package ps3 implements the hidprofile.Handler for Sixaxis/DualShock3
// peers, which refuse to stream reports until a vendor HID_SET_REPORT
// enables "operational mode" (spec §4.7).
package ps3

import (
	"github.com/btwired/bridge/internal/btdev"
	"github.com/btwired/bridge/internal/decode/ps3"
	"github.com/btwired/bridge/internal/hidprofile"
)

func init() {
	hidprofile.Register(btdev.BtTypePS3, Handler{})
}

// enableReport is the canned feature report (0xF4) that switches a
// Sixaxis/DS3 from HID-idle to streaming input reports over the
// interrupt channel once paired.
var enableReport = []byte{0x53, 0xF4, 0x42, 0x03, 0x00, 0x00}

// initDelayMS is the 20 ms pause between the enable report and the first
// expected input report; no measured minimum is claimed. Init does not
// emit it: it returns only the enable report, with no {0xFF, delay_ms}
// marker.
const initDelayMS = 20

type Handler struct{}

var _ hidprofile.Handler = Handler{}

func (Handler) Init(d *btdev.Device) [][]byte {
	return [][]byte{enableReport}
}

func (Handler) Handle(d *btdev.Device, report []byte) error {
	if len(report) == 0 {
		return nil
	}
	dec := ps3.Decoder{}
	return dec.Decode(report[1:], &d.Ctrl, &d.RawMaps[0])
}

// Feedback builds the combined rumble/LED output report; DS3's layout
// packs four LED bits and two motor bytes into one fixed report.
func (Handler) Feedback(d *btdev.Device, rumble uint8, led uint8) []byte {
	buf := make([]byte, 7)
	buf[0] = 0x01
	buf[3] = rumble // right (weak) motor duration
	buf[4] = rumble
	buf[5] = led & 0x0F
	return buf
}
