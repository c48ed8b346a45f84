// Package nes implements the wired.Encoder for the NES/Famicom
// controller port (spec §4.8): a single 8-bit shift register of digital
// buttons, no analog axes at all.
package nes

import (
	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
)

func init() {
	wired.Register(wired.SystemNES, Encoder{})
}

const (
	btnA = iota
	btnB
	btnSelect
	btnStart
	btnUp
	btnDown
	btnLeft
	btnRight
)

var padMask = [4]uint32{0x000F0FFF, 0, 0, 0}

var btnsMask = [32]uint8{
	8: 1 << btnLeft, 9: 1 << btnRight, 10: 1 << btnDown, 11: 1 << btnUp,
	16: 1 << btnB, 18: 1 << btnA,
	20: 1 << btnStart, 21: 1 << btnSelect,
}

type Encoder struct{}

var _ wired.Encoder = Encoder{}

func (Encoder) InitBuffer(devMode config.DevMode, port *wired.PortState) {
	port.Output = []byte{0x00}
	port.OutputMask = []byte{0xFF}
}

func (Encoder) MetaInit(devMode config.DevMode, ctrl *generic.Ctrl) {
	ctrl.Mask[generic.PlanePad] = padMask[0]
}

func (Encoder) FromGeneric(devMode config.DevMode, ctrl *generic.Ctrl, port *wired.PortState, cfg *config.Config) {
	if len(port.Output) < 1 {
		return
	}
	buttons := port.Output[0]
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
	port.Output[0] = buttons
}

func (Encoder) GenTurboMask(port *wired.PortState) {
	var buttons uint8 = 0xFF
	for i := 0; i < 32; i++ {
		if port.CntMask[i] != 0 {
			buttons &^= btnsMask[i]
		}
	}
	port.OutputMask[0] = buttons
}

func (Encoder) FBToGeneric(raw []byte) (rumble uint8, led uint8) {
	return 0, 0
}
