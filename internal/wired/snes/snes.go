// Package snes implements the wired.Encoder for the Super Nintendo
// controller port (spec §4.8): a 12-bit digital shift register, the NES
// layout plus two face buttons (X, Y) and two shoulder buttons (L, R).
package snes

import (
	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
)

func init() {
	wired.Register(wired.SystemSNES, Encoder{})
}

const (
	btnB = iota
	btnY
	btnSelect
	btnStart
	btnUp
	btnDown
	btnLeft
	btnRight
	btnA
	btnX
	btnL
	btnR
)

var padMask = [4]uint32{0x330F0FFF, 0, 0, 0}

var btnsMask = [32]uint16{
	8: 1 << btnLeft, 9: 1 << btnRight, 10: 1 << btnDown, 11: 1 << btnUp,
	16: 1 << btnB, 18: 1 << btnA, 19: 1 << btnX,
	20: 1 << btnStart, 21: 1 << btnSelect,
	24: 1 << btnL, 28: 1 << btnR,
	17: 1 << btnY,
}

type Encoder struct{}

var _ wired.Encoder = Encoder{}

func (Encoder) InitBuffer(devMode config.DevMode, port *wired.PortState) {
	port.Output = []byte{0x00, 0x00}
	port.OutputMask = []byte{0xFF, 0xFF}
}

func (Encoder) MetaInit(devMode config.DevMode, ctrl *generic.Ctrl) {
	ctrl.Mask[generic.PlanePad] = padMask[0]
}

func (Encoder) FromGeneric(devMode config.DevMode, ctrl *generic.Ctrl, port *wired.PortState, cfg *config.Config) {
	if len(port.Output) < 2 {
		return
	}
	buttons := uint16(port.Output[0]) | uint16(port.Output[1])<<8
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
	port.Output[0] = byte(buttons)
	port.Output[1] = byte(buttons >> 8)
}

func (Encoder) GenTurboMask(port *wired.PortState) {
	var buttons uint16 = 0xFFFF
	for i := 0; i < 32; i++ {
		if port.CntMask[i] != 0 {
			buttons &^= btnsMask[i]
		}
	}
	port.OutputMask[0] = byte(buttons)
	port.OutputMask[1] = byte(buttons >> 8)
}

func (Encoder) FBToGeneric(raw []byte) (rumble uint8, led uint8) {
	return 0, 0
}
