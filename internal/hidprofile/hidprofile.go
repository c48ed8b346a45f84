// Package hidprofile is the closed per-vendor HID profile registry (spec
// §4.7): one Handler per BtType, selected by the host's name-prefix
// classification and never switched at runtime.
package hidprofile

import "github.com/btwired/bridge/internal/btdev"

// Handler implements one vendor's HID handshake, report handling and
// feedback (rumble/LED) byte layout, grounded on the teacher's per-device
// report-builder/feedback-callback structs (device/dualshock4,
// device/xbox360) repurposed from "USB report out" to "BT report in/out".
type Handler interface {
	// Init runs once per connection, pushing whatever handshake reports
	// the vendor requires before steady-state input reports begin.
	Init(d *btdev.Device) [][]byte

	// Handle consumes one inbound HID report and updates d.Ctrl in place.
	Handle(d *btdev.Device, report []byte) error

	// Feedback encodes a rumble/LED state change into an outbound report,
	// or nil if this vendor's devices don't support it.
	Feedback(d *btdev.Device, rumble uint8, led uint8) []byte
}

// Registry is the closed map[BtType]Handler; entries are added once at
// program start by each vendor subpackage's init-time registration.
var Registry = map[btdev.BtType]Handler{}

// Register installs h for t, called from each vendor subpackage's init().
func Register(t btdev.BtType, h Handler) {
	Registry[t] = h
}

// For returns the handler for a device's classified type, or the generic
// HID fallback if the type has no dedicated handler registered.
func For(t btdev.BtType) Handler {
	if h, ok := Registry[t]; ok {
		return h
	}
	return Registry[btdev.BtTypeHID]
}
