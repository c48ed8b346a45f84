// Package saturn implements the wired.Encoder for the Sega Saturn
// controller port (spec §4.8): an 8-direction digital pad, six face
// buttons, Start and the L/R shoulder buttons, all as digital bits in one
// 16-bit word. No analog trigger values are encoded.
package saturn

import (
	"encoding/binary"

	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
)

func init() {
	wired.Register(wired.SystemSaturn, Encoder{})
}

const (
	btnUp = iota
	btnDown
	btnLeft
	btnRight
	btnB
	btnC
	btnA
	btnStart
	btnZ
	btnY
	btnX
	btnL
	btnR
)

var padMask = [4]uint32{0x330F0FFF, 0, 0, 0}

var btnsMask = [32]uint16{
	8: 1 << btnLeft, 9: 1 << btnRight, 10: 1 << btnDown, 11: 1 << btnUp,
	16: 1 << btnB, 18: 1 << btnA, 19: 1 << btnC,
	20: 1 << btnStart,
	24: 1 << btnZ, 25: 1 << btnL,
	28: 1 << btnY, 29: 1 << btnR,
	17: 1 << btnX,
}

const bufLen = 2

type Encoder struct{}

var _ wired.Encoder = Encoder{}

func (Encoder) InitBuffer(devMode config.DevMode, port *wired.PortState) {
	port.Output = make([]byte, bufLen)
	port.OutputMask = []byte{0xFF, 0xFF}
}

func (Encoder) MetaInit(devMode config.DevMode, ctrl *generic.Ctrl) {
	ctrl.Mask[generic.PlanePad] = padMask[0]
}

func (Encoder) FromGeneric(devMode config.DevMode, ctrl *generic.Ctrl, port *wired.PortState, cfg *config.Config) {
	if len(port.Output) < bufLen {
		return
	}
	buttons := binary.LittleEndian.Uint16(port.Output[0:2])
	if buttons == 0 {
		buttons = 0xFFFF
	}
	for i := 0; i < 32; i++ {
		bit := generic.GenericBtnsMask[i]
		if ctrl.MapMask[generic.PlanePad]&bit == 0 {
			continue
		}
		if ctrl.Btns[generic.PlanePad].Value&bit != 0 {
			buttons &^= btnsMask[i]
			port.CntMask[i] = ctrl.Btns[generic.PlanePad].CntMask[i]
		} else {
			buttons |= btnsMask[i]
			port.CntMask[i] = 0
		}
	}
	binary.LittleEndian.PutUint16(port.Output[0:2], buttons)
}

func (Encoder) GenTurboMask(port *wired.PortState) {
	var buttons uint16
	for i := 0; i < 32; i++ {
		if port.CntMask[i] != 0 {
			buttons |= btnsMask[i]
		}
	}
	binary.LittleEndian.PutUint16(port.OutputMask[0:2], ^buttons)
}

func (Encoder) FBToGeneric(raw []byte) (rumble uint8, led uint8) {
	return 0, 0
}
