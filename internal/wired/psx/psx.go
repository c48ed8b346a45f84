// Package psx implements the wired.Encoder for the PlayStation/PS2
// controller port (spec §4.8): digital face/shoulder buttons, two
// analog sticks, and the DualShock2 "full analog" pressure-sensitive
// D-pad/face-button bytes (spec §8 scenario B).
package psx

import (
	"encoding/binary"

	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
)

func init() {
	wired.Register(wired.SystemPSX, Encoder{})
	wired.Register(wired.SystemPS2, Encoder{})

	var desc uint32
	for axis := range axesIdx {
		desc |= generic.AxisToBtnMask(axis)
	}
	padDesc[0] = desc
}

const (
	btnSelect = iota
	btnL3
	btnR3
	btnStart
	btnDUp
	btnDRight
	btnDDown
	btnDLeft
	btnL2
	btnR2
	btnL1
	btnR1
	btnTriangle
	btnCircle
	btnCross
	btnSquare
)

// axesMax is the wire buffer's analog byte count: four stick axes plus
// twelve pressure bytes (Right, Left, Up, Down, Triangle, Circle,
// Cross, Square, L1, R1, L2, R2), the DualShock2 full-analog layout.
const axesMax = 16

var axesIdx = [generic.AxisMax]int{
	generic.AxisRX: 0, generic.AxisRY: 1, generic.AxisLX: 2, generic.AxisLY: 3,
	generic.AxisDPadR: 4, generic.AxisDPadL: 5, generic.AxisDPadU: 6, generic.AxisDPadD: 7,
	generic.AxisBtnU: 8, generic.AxisBtnR: 9, generic.AxisBtnD: 10, generic.AxisBtnL: 11,
	generic.AxisTrigLS: 12, generic.AxisTrigRS: 13, generic.AxisTrigL: 14, generic.AxisTrigR: 15,
}

var stickAxesMeta = generic.Meta{SizeMin: -128, SizeMax: 127, Neutral: 0, AbsMax: 0x80}
var pressureAxesMeta = generic.Meta{SizeMin: 0, SizeMax: 0xFF, Neutral: 0, AbsMax: 0xFF}

var axesMeta = [axesMax]generic.Meta{
	0: stickAxesMeta, 1: stickAxesMeta, 2: stickAxesMeta, 3: stickAxesMeta,
	4: pressureAxesMeta, 5: pressureAxesMeta, 6: pressureAxesMeta, 7: pressureAxesMeta,
	8: pressureAxesMeta, 9: pressureAxesMeta, 10: pressureAxesMeta, 11: pressureAxesMeta,
	12: pressureAxesMeta, 13: pressureAxesMeta, 14: pressureAxesMeta, 15: pressureAxesMeta,
}

var padMask = [4]uint32{0xFFFF0FFF, 0, 0, 0}

// padDesc[0] is built in init() from axesIdx: every bit AxisToBtnMask
// reports for an axis this port carries (the four sticks plus the
// twelve DualShock2 pressure bytes) is axis-backed rather than a plain
// button.
var padDesc [4]uint32

var btnsMask = [32]uint16{
	4: 1 << btnL1, 5: 1 << btnR1, 6: 1 << btnCircle, 7: 1 << btnCross,
	8: 1 << btnDLeft, 9: 1 << btnDRight, 10: 1 << btnDDown, 11: 1 << btnDUp,
	16: 1 << btnCross, 17: 1 << btnCircle, 18: 1 << btnCross, 19: 1 << btnSquare,
	20: 1 << btnStart,
	21: 1 << btnL3, 22: 1 << btnR3, 23: 1 << btnTriangle,
	24: 1 << btnL2, 26: 1 << btnL1,
	28: 1 << btnR2, 30: 1 << btnR1,
}

const bufLen = 2 + axesMax

type Encoder struct{}

var _ wired.Encoder = Encoder{}

func (Encoder) InitBuffer(devMode config.DevMode, port *wired.PortState) {
	buf := make([]byte, bufLen)
	port.Output = buf
	port.OutputMask = make([]byte, bufLen)
	for i := range port.OutputMask {
		port.OutputMask[i] = 0xFF
	}
}

func (Encoder) MetaInit(devMode config.DevMode, ctrl *generic.Ctrl) {
	ctrl.Mask[generic.PlanePad] = padMask[0]
	ctrl.Desc[generic.PlanePad] = padDesc[0]
	for axis, slot := range axesIdx {
		ctrl.Axes[axis].Meta = &axesMeta[slot]
	}
}

func (Encoder) FromGeneric(devMode config.DevMode, ctrl *generic.Ctrl, port *wired.PortState, cfg *config.Config) {
	if len(port.Output) < bufLen {
		return
	}
	// Buttons are active-low on the wire; buttons field starts all-1.
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

	for axis, slot := range axesIdx {
		btnMask := generic.AxisToBtnMask(axis) & padDesc[0]
		if ctrl.MapMask[generic.PlanePad]&btnMask == 0 {
			continue
		}
		meta := ctrl.Axes[axis].Meta
		v := ctrl.Axes[axis].Value
		switch {
		case v > meta.SizeMax:
			v = meta.SizeMax
		case v < meta.SizeMin:
			v = meta.SizeMin
		}
		port.Output[2+slot] = byte(v)
	}
}

func (Encoder) GenTurboMask(port *wired.PortState) {
	if len(port.OutputMask) < 2 {
		return
	}
	var buttons uint16
	for i := 0; i < 32; i++ {
		if port.CntMask[i] != 0 {
			buttons |= btnsMask[i]
		}
	}
	binary.LittleEndian.PutUint16(port.OutputMask[0:2], ^buttons)
}

func (Encoder) FBToGeneric(raw []byte) (rumble uint8, led uint8) {
	if len(raw) == 0 {
		return 0, 0
	}
	return raw[0], 0
}
