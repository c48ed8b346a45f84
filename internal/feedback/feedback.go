// Package feedback normalizes a wired port's rumble/LED feedback into the
// canonical form (generic_fb) and routes it to the Bluetooth device
// occupying that port, mirroring adapter/wireless/wireless.c's
// wireless_fb_from_generic dispatch and the wired encoders' raw_fb->
// generic_fb step (e.g. n64_fb_to_generic).
package feedback

import (
	"github.com/btwired/bridge/internal/btdev"
	"github.com/btwired/bridge/internal/hidprofile"
	"github.com/btwired/bridge/internal/wired"
)

// Type identifies the kind of feedback a generic.FB carries.
type Type uint8

const (
	TypeRumble Type = iota
	TypeLED
)

// Generic is the canonical feedback sample routed to a Bluetooth device,
// mirroring struct generic_fb: which wired port it came from, what kind
// of effect, and the effect's parameters.
type Generic struct {
	WiredPort  int
	Type       Type
	Cycles     uint8
	Start      uint8
	State      uint8
	LeftMotor  uint16
	RightMotor uint16
}

// FromWire builds a Generic sample from a wired encoder's FBToGeneric
// decode of a raw feedback report, mirroring n64_fb_to_generic: cycles and
// start are always reset, only the rumble/LED state byte carries over.
func FromWire(port int, rumble, led uint8) Generic {
	fb := Generic{WiredPort: port, State: rumble}
	if rumble != 0 {
		fb.Type = TypeRumble
	} else {
		fb.Type = TypeLED
		fb.State = led
	}
	return fb
}

// Router dispatches normalized feedback to whichever Bluetooth device
// currently occupies a wired port, via that device's vendor Handler.
type Router struct {
	Pool *btdev.Pool
}

// NewRouter builds a Router over pool.
func NewRouter(pool *btdev.Pool) *Router {
	return &Router{Pool: pool}
}

// Route looks up the device bound to fb.WiredPort and asks its vendor
// Handler to encode fb into an outbound HID report. It returns nil if no
// device occupies the port or the device's profile has no feedback
// encoding (e.g. xbox BLE, which has no writable rumble characteristic).
func (r *Router) Route(fb Generic) []byte {
	dev := r.Pool.ByWiredPort(fb.WiredPort)
	if dev == nil {
		return nil
	}
	h := hidprofile.For(dev.Type)
	if h == nil {
		return nil
	}
	var rumble, led uint8
	switch fb.Type {
	case TypeRumble:
		rumble = fb.State
	case TypeLED:
		led = fb.State
	}
	return h.Feedback(dev, rumble, led)
}

// Pump drains port's pending wire-side feedback report (if any) through
// enc.FBToGeneric and routes the result, returning the encoded outbound
// HID report to send over the air, or nil if there was nothing to send.
func Pump(enc wired.Encoder, port int, raw []byte, router *Router) []byte {
	if enc == nil || raw == nil {
		return nil
	}
	rumble, led := enc.FBToGeneric(raw)
	if rumble == 0 && led == 0 {
		return nil
	}
	return router.Route(FromWire(port, rumble, led))
}
