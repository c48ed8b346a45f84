// Package xbox implements the hidprofile.Handler for Xbox Wireless
// Controller BLE peers: no handshake is required beyond the standard
// ATT/GATT HID report-mode notification enable the bthost layer performs
// for every BLE HID peer (spec §4.7).
package xbox

import (
	"github.com/btwired/bridge/internal/btdev"
	"github.com/btwired/bridge/internal/decode/xbox"
	"github.com/btwired/bridge/internal/hidprofile"
)

func init() {
	hidprofile.Register(btdev.BtTypeXbox, Handler{})
}

type Handler struct{}

var _ hidprofile.Handler = Handler{}

func (Handler) Init(d *btdev.Device) [][]byte { return nil }

func (Handler) Handle(d *btdev.Device, report []byte) error {
	dec := xbox.Decoder{}
	return dec.Decode(report, &d.Ctrl, &d.RawMaps[0])
}

// Feedback is a no-op: the BLE HID profile this controller exposes has no
// writable rumble/LED characteristic, only the gamepad's own vibration
// motors driven by a separate, unsupported vendor service.
func (Handler) Feedback(d *btdev.Device, rumble uint8, led uint8) []byte {
	return nil
}
