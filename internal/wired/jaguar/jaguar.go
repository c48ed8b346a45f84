// Package jaguar implements the wired.Encoder for the Atari Jaguar
// controller port (spec §4.8): d-pad, three face buttons, pause/option,
// and the 0-9/*/# numpad row this bridge maps from keyboard input
// (spec §4.12 supplemented feature — the numpad has no generic.Ctrl
// pad-plane analogue so it lives on the kb-extra plane instead).
package jaguar

import (
	"encoding/binary"

	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
)

func init() {
	wired.Register(wired.SystemJaguar, Encoder{})
}

const (
	btnUp = iota
	btnDown
	btnLeft
	btnRight
	btnA
	btnB
	btnC
	btnPause
	btnOption
)

var padMask = [4]uint32{0x030F0FFF, 0, 0, 0x0000FFFF}

var btnsMask = [32]uint16{
	8: 1 << btnLeft, 9: 1 << btnRight, 10: 1 << btnDown, 11: 1 << btnUp,
	16: 1 << btnB, 18: 1 << btnA, 19: 1 << btnC,
	20: 1 << btnPause, 21: 1 << btnOption,
}

// numpad occupies the low 16 bits of a second word, sourced from the
// kb-extra plane rather than the pad plane.
type Encoder struct{}

var _ wired.Encoder = Encoder{}

func (Encoder) InitBuffer(devMode config.DevMode, port *wired.PortState) {
	port.Output = make([]byte, 4)
	port.OutputMask = []byte{0xFF, 0xFF, 0xFF, 0xFF}
}

func (Encoder) MetaInit(devMode config.DevMode, ctrl *generic.Ctrl) {
	ctrl.Mask[generic.PlanePad] = padMask[0]
	ctrl.Mask[generic.PlaneKBExtra] = padMask[3]
}

func (Encoder) FromGeneric(devMode config.DevMode, ctrl *generic.Ctrl, port *wired.PortState, cfg *config.Config) {
	if len(port.Output) < 4 {
		return
	}
	buttons := binary.LittleEndian.Uint16(port.Output[0:2])
	for i := 0; i < 32; i++ {
		bit := generic.GenericBtnsMask[i]
		if ctrl.MapMask[generic.PlanePad]&bit == 0 {
			continue
		}
		if ctrl.Btns[generic.PlanePad].Value&bit != 0 {
			buttons |= btnsMask[i]
			port.CntMask[i] = ctrl.Btns[generic.PlanePad].CntMask[i]
		} else {
			buttons &^= btnsMask[i]
			port.CntMask[i] = 0
		}
	}
	binary.LittleEndian.PutUint16(port.Output[0:2], buttons)

	numpad := binary.LittleEndian.Uint16(port.Output[2:4])
	for i := 0; i < 16; i++ {
		bit := uint32(1) << uint(i)
		if ctrl.MapMask[generic.PlaneKBExtra]&bit == 0 {
			continue
		}
		if ctrl.Btns[generic.PlaneKBExtra].Value&bit != 0 {
			numpad |= 1 << uint(i)
		} else {
			numpad &^= 1 << uint(i)
		}
	}
	binary.LittleEndian.PutUint16(port.Output[2:4], numpad)
}

func (Encoder) GenTurboMask(port *wired.PortState) {
	var buttons uint16 = 0xFFFF
	for i := 0; i < 32; i++ {
		if port.CntMask[i] != 0 {
			buttons &^= btnsMask[i]
		}
	}
	binary.LittleEndian.PutUint16(port.OutputMask[0:2], buttons)
}

func (Encoder) FBToGeneric(raw []byte) (rumble uint8, led uint8) {
	return 0, 0
}
