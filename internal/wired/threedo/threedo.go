// Package threedo implements the wired.Encoder for the 3DO controller
// port (spec §4.8): digital d-pad, four face buttons and two shoulder
// triggers, bit-packed the way the 3DO's serial controller chain
// expects.
package threedo

import (
	"encoding/binary"

	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
)

func init() {
	wired.Register(wired.System3DO, Encoder{})
}

const (
	btnUp = iota
	btnDown
	btnLeft
	btnRight
	btnA
	btnB
	btnC
	btnP
	btnL
	btnR
	btnX
)

var padMask = [4]uint32{0x330F0FFF, 0, 0, 0}

var btnsMask = [32]uint16{
	8: 1 << btnLeft, 9: 1 << btnRight, 10: 1 << btnDown, 11: 1 << btnUp,
	16: 1 << btnB, 18: 1 << btnA, 19: 1 << btnC,
	20: 1 << btnP,
	24: 1 << btnL, 28: 1 << btnR,
	17: 1 << btnX,
}

type Encoder struct{}

var _ wired.Encoder = Encoder{}

func (Encoder) InitBuffer(devMode config.DevMode, port *wired.PortState) {
	port.Output = make([]byte, 2)
	port.OutputMask = []byte{0xFF, 0xFF}
}

func (Encoder) MetaInit(devMode config.DevMode, ctrl *generic.Ctrl) {
	ctrl.Mask[generic.PlanePad] = padMask[0]
}

func (Encoder) FromGeneric(devMode config.DevMode, ctrl *generic.Ctrl, port *wired.PortState, cfg *config.Config) {
	if len(port.Output) < 2 {
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
