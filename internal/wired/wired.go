// Package wired is the closed per-console wire-encoder registry (spec
// §4.8/§9): one Encoder per System, translating a mapped generic.Ctrl
// into the exact byte layout each console's controller port expects.
package wired

import (
	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
)

// System identifies a wired console target.
type System int

const (
	SystemNone System = iota
	SystemN64
	SystemDreamcast
	SystemPSX
	SystemPS2
	SystemSaturn
	SystemGameCube
	SystemNES
	SystemSNES
	SystemPCE
	System3DO
	SystemJaguar
	SystemSea
	SystemOgx360
)

// PortState is one wired port's encode-side bookkeeping: the packed
// output buffer, a parallel turbo cadence mask, and the two
// "waiting-for-release" latches the N64 special actions need (spec
// §4.8, wired_data in the original source).
type PortState struct {
	Output     []byte
	OutputMask []byte
	CntMask    [128]uint32

	WaitingForRelease  bool
	WaitingForRelease2 bool
}

// Encoder implements one console's generic-to-wire translation (spec
// §9's per-system function-pointer table, adapted to an interface).
type Encoder interface {
	// InitBuffer resets a port's output buffer to its idle/neutral state
	// for the given device mode (pad/kb/mouse).
	InitBuffer(devMode config.DevMode, port *PortState)

	// MetaInit installs each output Ctrl's mask/desc/axis-meta pointers
	// for the given device mode, run once per mode change rather than
	// every cycle.
	MetaInit(devMode config.DevMode, ctrl *generic.Ctrl)

	// FromGeneric encodes ctrl's mapped state into port's output buffer.
	// Every encoder except ogx360 consumes only the bits ctrl.MapMask
	// marks as touched this cycle; ogx360 re-encodes every button and
	// axis on each call.
	FromGeneric(devMode config.DevMode, ctrl *generic.Ctrl, port *PortState, cfg *config.Config)

	// GenTurboMask rebuilds port.OutputMask from each button's cnt_mask.
	// It does not depend on the frame counter, and the tick loop in
	// internal/cli does not call it.
	GenTurboMask(port *PortState)

	// FBToGeneric decodes a raw feedback report into rumble/LED state.
	FBToGeneric(raw []byte) (rumble uint8, led uint8)
}

// Registry is the closed map[System]Encoder, populated by each console
// subpackage's init().
var Registry = map[System]Encoder{}

// Register installs enc for sys.
func Register(sys System, enc Encoder) {
	Registry[sys] = enc
}

// For returns the encoder for sys, or nil if none is registered.
func For(sys System) Encoder {
	return Registry[sys]
}
