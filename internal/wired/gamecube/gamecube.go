// Package gamecube implements the wired.Encoder for the GameCube
// controller port (spec §4.8): digital buttons, two analog sticks and
// two analog triggers, matching the console's own 8-byte polling
// response layout.
package gamecube

import (
	"encoding/binary"

	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
)

func init() {
	wired.Register(wired.SystemGameCube, Encoder{})
}

const (
	btnA = iota
	btnB
	btnX
	btnY
	btnStart
	btnDLeft
	btnDRight
	btnDDown
	btnDUp
	btnZ
	btnR
	btnL
)

const axesMax = 4

var axesIdx = [generic.AxisMax]int{
	generic.AxisLX: 0, generic.AxisLY: 1, generic.AxisRX: 2, generic.AxisRY: 3,
}
var axesMeta = [axesMax]generic.Meta{
	{SizeMin: -128, SizeMax: 127, Neutral: 0, AbsMax: 0x80},
	{SizeMin: -128, SizeMax: 127, Neutral: 0, AbsMax: 0x80},
	{SizeMin: -128, SizeMax: 127, Neutral: 0, AbsMax: 0x80},
	{SizeMin: -128, SizeMax: 127, Neutral: 0, AbsMax: 0x80},
}

var padMask = [4]uint32{0xC30F0FFF, 0, 0, 0}
var padDesc = [4]uint32{0x0000000F, 0, 0, 0}

var btnsMask = [32]uint16{
	8: 1 << btnDLeft, 9: 1 << btnDRight, 10: 1 << btnDDown, 11: 1 << btnDUp,
	16: 1 << btnB, 18: 1 << btnA, 19: 1 << btnX,
	20: 1 << btnStart,
	24: 1 << btnZ, 25: 1 << btnL,
	28: 1 << btnR, 17: 1 << btnY,
}

const bufLen = 2 + axesMax + 2 // buttons, 4 sticks, 2 analog triggers

type Encoder struct{}

var _ wired.Encoder = Encoder{}

func (Encoder) InitBuffer(devMode config.DevMode, port *wired.PortState) {
	buf := make([]byte, bufLen)
	buf[2], buf[3], buf[4], buf[5] = 0x80, 0x80, 0x80, 0x80
	port.Output = buf
	port.OutputMask = make([]byte, bufLen)
	for i := range port.OutputMask {
		port.OutputMask[i] = 0xFF
	}
}

func (Encoder) MetaInit(devMode config.DevMode, ctrl *generic.Ctrl) {
	ctrl.Mask[generic.PlanePad] = padMask[0]
	ctrl.Desc[generic.PlanePad] = padDesc[0]
	ctrl.Axes[generic.AxisLX].Meta = &axesMeta[0]
	ctrl.Axes[generic.AxisLY].Meta = &axesMeta[1]
	ctrl.Axes[generic.AxisRX].Meta = &axesMeta[2]
	ctrl.Axes[generic.AxisRY].Meta = &axesMeta[3]
}

func (Encoder) FromGeneric(devMode config.DevMode, ctrl *generic.Ctrl, port *wired.PortState, cfg *config.Config) {
	if len(port.Output) < bufLen {
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

	for axis, slot := range axesIdx {
		btnMask := generic.AxisToBtnMask(axis) & padDesc[0]
		if ctrl.MapMask[generic.PlanePad]&btnMask == 0 {
			continue
		}
		meta := ctrl.Axes[axis].Meta
		v := ctrl.Axes[axis].Value
		var out uint8
		switch {
		case v > meta.SizeMax:
			out = 255
		case v < meta.SizeMin:
			out = 0
		default:
			out = uint8(v + 128)
		}
		port.Output[2+slot] = out
	}

	if ctrl.MapMask[generic.PlanePad]&generic.AxisToBtnMask(generic.AxisTrigL) != 0 {
		port.Output[6] = clampTrigger(ctrl.Axes[generic.AxisTrigL].Value)
	}
	if ctrl.MapMask[generic.PlanePad]&generic.AxisToBtnMask(generic.AxisTrigR) != 0 {
		port.Output[7] = clampTrigger(ctrl.Axes[generic.AxisTrigR].Value)
	}
}

func clampTrigger(v int32) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
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
	if len(raw) == 0 {
		return 0, 0
	}
	return raw[0], 0
}
