// Package dreamcast implements the wired.Encoder for the Sega Dreamcast
// Maple controller port (spec §4.8): digital buttons, two analog
// triggers and one analog stick, following the same generic-to-wire
// shape as the N64 encoder but with Dreamcast's own button layout and
// no accessory special actions.
package dreamcast

import (
	"encoding/binary"

	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
)

func init() {
	wired.Register(wired.SystemDreamcast, Encoder{})
}

const (
	btnDUp = iota
	btnDDown
	btnDLeft
	btnDRight
	btnA
	btnB
	btnX
	btnY
	btnStart
)

const axesMax = 2 // stick X/Y; triggers are separate analog bytes

var axesIdx = [generic.AxisMax]int{generic.AxisLX: 0, generic.AxisLY: 1}

var axesMeta = [axesMax]generic.Meta{
	{SizeMin: -128, SizeMax: 127, Neutral: 0, AbsMax: 0x80},
	{SizeMin: -128, SizeMax: 127, Neutral: 0, AbsMax: 0x80},
}

var padMask = [4]uint32{0xC30F0FFF, 0, 0, 0}
var padDesc = [4]uint32{0x0000000F, 0, 0, 0}

var btnsMask = [32]uint16{
	8: 1 << btnDLeft, 9: 1 << btnDRight, 10: 1 << btnDDown, 11: 1 << btnDUp,
	16: 1 << btnB, 18: 1 << btnA, 19: 1 << btnX,
	20: 1 << btnStart,
	17: 1 << btnY,
}

// bufLen: 16-bit buttons, 2 triggers, 2 stick axes.
const bufLen = 2 + 2 + axesMax

type Encoder struct{}

var _ wired.Encoder = Encoder{}

func (Encoder) InitBuffer(devMode config.DevMode, port *wired.PortState) {
	buf := make([]byte, bufLen)
	buf[4], buf[5] = 0, 0 // stick neutral at zero offset representation
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

	if ctrl.MapMask[generic.PlanePad]&generic.AxisToBtnMask(generic.AxisTrigL) != 0 {
		port.Output[2] = clampTrigger(ctrl.Axes[generic.AxisTrigL].Value)
	}
	if ctrl.MapMask[generic.PlanePad]&generic.AxisToBtnMask(generic.AxisTrigR) != 0 {
		port.Output[3] = clampTrigger(ctrl.Axes[generic.AxisTrigR].Value)
	}

	for axis, slot := range axesIdx {
		btnMask := generic.AxisToBtnMask(axis) & padDesc[0]
		if ctrl.MapMask[generic.PlanePad]&btnMask == 0 {
			continue
		}
		meta := ctrl.Axes[axis].Meta
		v := ctrl.Axes[axis].Value
		var out int8
		switch {
		case v > meta.SizeMax:
			out = 127
		case v < meta.SizeMin:
			out = -128
		default:
			out = int8(v)
		}
		port.Output[4+slot] = byte(out)
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
	if len(port.OutputMask) < 2 {
		return
	}
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
