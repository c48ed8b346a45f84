// Package n64 implements the wired.Encoder for the Nintendo 64 controller
// port, transliterated directly from the original n64.c: pad/mouse/
// keyboard byte layouts, the rumble-pak/controller-pak accessory toggle,
// and the control-pak bank rotation special actions (spec §4.8).
package n64

import (
	"encoding/binary"

	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
)

func init() {
	wired.Register(wired.SystemN64, Encoder{})
}

const axesMax = 2

// Canonical N64 button bit positions within the 16-bit buttons field.
const (
	btnDRight = iota
	btnDLeft
	btnDDown
	btnDUp
	btnStart
	btnZ
	btnB
	btnA
	btnCRight
	btnCLeft
	btnCDown
	btnCUp
	btnR
	btnL
)

// axesIdx maps generic axis slot -> N64 pad struct axis index (X then Y).
var axesIdx = [generic.AxisMax]int{generic.AxisLX: 0, generic.AxisLY: 1}

var axesMeta = [axesMax]generic.Meta{
	{SizeMin: -128, SizeMax: 127, Neutral: 0, AbsMax: 0x54},
	{SizeMin: -128, SizeMax: 127, Neutral: 0, AbsMax: 0x54},
}

var mouseAxesMeta = [axesMax]generic.Meta{
	{SizeMin: -128, SizeMax: 127, Neutral: 0, AbsMax: 0x80},
	{SizeMin: -128, SizeMax: 127, Neutral: 0, AbsMax: 0x80},
}

// padMask/padDesc describe which of the 32 pad-plane bits this port reads
// and which of those are axis-backed (spec §4.8's per-system mask/desc).
var (
	padMask = [4]uint32{0x33DF0FFF, 0, 0, 0}
	padDesc = [4]uint32{0x0000000F, 0, 0, 0}

	mouseMask = [4]uint32{0x110000F0, 0, 0, 0}
	mouseDesc = [4]uint32{0x000000F0, 0, 0, 0}

	kbMask = [4]uint32{0xE6FF0F0F, 0xFFFFFFFF, 0x2D7FFFFF, 0x0007C000}
)

// btnsMask maps each of the 32 canonical pad-plane bit positions onto the
// N64 buttons bitfield, index-for-index with generic_btns_mask in the
// source.
var btnsMask = [32]uint16{
	0, 0, 0, 0,
	1 << btnCLeft, 1 << btnCRight, 1 << btnCDown, 1 << btnCUp,
	1 << btnDLeft, 1 << btnDRight, 1 << btnDDown, 1 << btnDUp,
	0, 0, 0, 0,
	1 << btnB, 1 << btnCDown, 1 << btnA, 1 << btnCLeft,
	1 << btnStart, 0, 0, 0,
	1 << btnZ, 1 << btnL, 0, 0,
	1 << btnZ, 1 << btnR, 0, 0,
}

var mouseBtnsMask = [32]uint16{
	24: 1 << btnB,
	28: 1 << btnA,
}

// Encoder implements wired.Encoder for the N64 port.
type Encoder struct{}

var _ wired.Encoder = Encoder{}

// padBufLen/mouseBufLen/kbBufLen are the fixed output buffer sizes: a
// 16-bit buttons field plus two signed axis bytes (pad), or buttons plus
// relative flags plus two raw accumulators (mouse), or three key codes
// plus a bitfield byte (keyboard).
const (
	padBufLen   = 2 + axesMax
	mouseBufLen = 2 + axesMax + axesMax*4
	kbBufLen    = 2*3 + 1
)

func (Encoder) InitBuffer(devMode config.DevMode, port *wired.PortState) {
	switch devMode {
	case config.DevKB:
		port.Output = make([]byte, kbBufLen)
	case config.DevMouse:
		buf := make([]byte, mouseBufLen)
		buf[2], buf[3] = 1, 1 // relative flags default on
		port.Output = buf
	default:
		buf := make([]byte, padBufLen)
		buf[2] = byte(axesMeta[0].Neutral)
		buf[3] = byte(axesMeta[1].Neutral)
		port.Output = buf
		port.OutputMask = make([]byte, padBufLen)
		for i := range port.OutputMask {
			port.OutputMask[i] = 0xFF
		}
	}
}

func (Encoder) MetaInit(devMode config.DevMode, ctrl *generic.Ctrl) {
	switch devMode {
	case config.DevKB:
		ctrl.Mask[generic.PlanePad] = kbMask[0]
		ctrl.Mask[generic.PlaneKBMod] = kbMask[1]
		ctrl.Mask[generic.PlaneKBMain] = kbMask[2]
		ctrl.Mask[generic.PlaneKBExtra] = kbMask[3]
	case config.DevMouse:
		ctrl.Mask[generic.PlanePad] = mouseMask[0]
		ctrl.Desc[generic.PlanePad] = mouseDesc[0]
		ctrl.Axes[generic.AxisRX].Meta = &mouseAxesMeta[0]
		ctrl.Axes[generic.AxisRY].Meta = &mouseAxesMeta[1]
	default:
		ctrl.Mask[generic.PlanePad] = padMask[0]
		ctrl.Desc[generic.PlanePad] = padDesc[0]
		ctrl.Axes[generic.AxisLX].Meta = &axesMeta[0]
		ctrl.Axes[generic.AxisLY].Meta = &axesMeta[1]
	}
}

func (e Encoder) FromGeneric(devMode config.DevMode, ctrl *generic.Ctrl, port *wired.PortState, cfg *config.Config) {
	switch devMode {
	case config.DevKB:
		e.kbFromGeneric(ctrl, port)
	case config.DevMouse:
		e.mouseFromGeneric(ctrl, port)
	default:
		e.padFromGeneric(ctrl, port, cfg)
	}
}

func (Encoder) padFromGeneric(ctrl *generic.Ctrl, port *wired.PortState, cfg *config.Config) {
	if len(port.Output) < padBufLen {
		return
	}
	// N64's buttons field is big-endian on the wire, unlike every other
	// multi-byte field this port writes.
	buttons := binary.BigEndian.Uint16(port.Output[0:2])
	mapMask := uint16(0xFFFF)

	for i := 0; i < 32; i++ {
		bit := generic.GenericBtnsMask[i]
		if ctrl.MapMask[generic.PlanePad]&bit == 0 {
			continue
		}
		if ctrl.Btns[generic.PlanePad].Value&bit != 0 {
			buttons |= btnsMask[i]
			mapMask &^= btnsMask[i]
			port.CntMask[i] = ctrl.Btns[generic.PlanePad].CntMask[i]
		} else if mapMask&btnsMask[i] != 0 {
			buttons &^= btnsMask[i]
			port.CntMask[i] = 0
		}
	}

	specialAction(ctrl, port, cfg)

	for i := 0; i < axesMax; i++ {
		axis := axisForIdx(i)
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
			out = int8(v + meta.Neutral)
		}
		port.Output[2+axesIdx[axis]] = byte(out)
	}

	binary.BigEndian.PutUint16(port.Output[0:2], buttons)
}

// axisForIdx maps the N64 struct's axis slot index back to a generic axis
// id, the inverse of axesIdx (only X/Y are populated for N64).
func axisForIdx(i int) int {
	for axis, slot := range axesIdx {
		if slot == i {
			return axis
		}
	}
	return generic.AxisNone
}

// specialAction implements the PAD_MT accessory toggle (memory pak <->
// rumble pak) and PAD_MQ bank rotation, gated on release so holding the
// button doesn't retrigger every cycle (spec §4.8).
func specialAction(ctrl *generic.Ctrl, port *wired.PortState, cfg *config.Config) {
	if ctrl.MapMask[generic.PlanePad]&generic.GenericBtnsMask[generic.PadMT] != 0 {
		pressed := ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[generic.PadMT] != 0
		if pressed {
			port.WaitingForRelease = true
		} else if port.WaitingForRelease {
			port.WaitingForRelease = false
			if cfg != nil {
				out := &cfg.Out[ctrl.Index]
				if out.AccMode == config.AccMem {
					cfg.SetAccMode(ctrl.Index, config.AccRumble)
				} else {
					cfg.SetAccMode(ctrl.Index, config.AccMem)
				}
			}
		}
	}

	if ctrl.MapMask[generic.PlanePad]&generic.GenericBtnsMask[generic.PadMQ] != 0 {
		pressed := ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[generic.PadMQ] != 0
		if pressed {
			port.WaitingForRelease2 = true
		} else if port.WaitingForRelease2 {
			port.WaitingForRelease2 = false
			if cfg != nil {
				cfg.RotateBankSel()
			}
		}
	}
}

func (Encoder) mouseFromGeneric(ctrl *generic.Ctrl, port *wired.PortState) {
	if len(port.Output) < mouseBufLen {
		return
	}
	buttons := binary.BigEndian.Uint16(port.Output[0:2])
	for i := 0; i < 32; i++ {
		if ctrl.MapMask[generic.PlanePad]&(1<<uint(i)) == 0 {
			continue
		}
		if ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[i] != 0 {
			buttons |= mouseBtnsMask[i]
		} else {
			buttons &^= mouseBtnsMask[i]
		}
	}
	binary.BigEndian.PutUint16(port.Output[0:2], buttons)

	for _, axis := range []int{generic.AxisRX, generic.AxisRY} {
		btnMask := generic.AxisToBtnMask(axis) & mouseDesc[0]
		if ctrl.MapMask[generic.PlanePad]&btnMask == 0 {
			continue
		}
		slot := axesIdx[axis]
		off := 4 + slot*4
		if ctrl.Axes[axis].Meta != nil && ctrl.Axes[axis].Meta.Relative {
			port.Output[2+slot] = 1
			acc := int32(binary.LittleEndian.Uint32(port.Output[off:]))
			acc += ctrl.Axes[axis].Value
			binary.LittleEndian.PutUint32(port.Output[off:], uint32(acc))
		} else {
			port.Output[2+slot] = 0
			binary.LittleEndian.PutUint32(port.Output[off:], uint32(ctrl.Axes[axis].Value))
		}
	}
}

func (Encoder) kbFromGeneric(ctrl *generic.Ctrl, port *wired.PortState) {
	if len(port.Output) < kbBufLen {
		return
	}
	for i := range port.Output {
		port.Output[i] = 0
	}
	codeIdx := 0
	for i := 0; i < len(kbScancode) && codeIdx < 3; i++ {
		plane := i / 32
		bit := uint32(1) << uint(i&0x1F)
		if ctrl.MapMask[plane]&bit == 0 {
			continue
		}
		if ctrl.Btns[plane].Value&bit != 0 && kbScancode[i] != 0 {
			binary.BigEndian.PutUint16(port.Output[codeIdx*2:], kbScancode[i])
			codeIdx++
		}
	}
	if ctrl.MapMask[generic.PlaneKBMain]&(1<<uint(kbHomeBit&0x1F)) != 0 {
		if ctrl.Btns[generic.PlaneKBMain].Value&(1<<uint(kbHomeBit&0x1F)) != 0 {
			port.Output[6] = 0x01
		}
	}
}

// kbHomeBit is KB_HOME's bit position within the kb-main plane, the one
// key this port surfaces outside the three rolling key-code slots.
const kbHomeBit = 36

func (Encoder) GenTurboMask(port *wired.PortState) {
	if len(port.OutputMask) < padBufLen {
		return
	}
	for i := range port.OutputMask {
		port.OutputMask[i] = 0xFF
	}
	var buttons uint16 = 0xFFFF
	for i := 0; i < 32; i++ {
		if port.CntMask[i] != 0 {
			buttons &^= btnsMask[i]
		}
	}
	binary.BigEndian.PutUint16(port.OutputMask[0:2], buttons)
}

func (Encoder) FBToGeneric(raw []byte) (rumble uint8, led uint8) {
	if len(raw) == 0 {
		return 0, 0
	}
	return raw[0], 0
}

// kbScancode mirrors n64_kb_scancode: one USB HID-ish scancode per
// canonical keyboard bit, 0 meaning "no key on this port".
var kbScancode = [128]uint16{
	0x070D, 0x0705, 0x070C, 0x0105, 0x0000, 0x0000, 0x0000, 0x0000,
	0x0502, 0x0504, 0x0503, 0x0402, 0x0000, 0x0000, 0x0000, 0x0000,
	0x010C, 0x0107, 0x0106, 0x0706, 0x080A, 0x040D, 0x070F, 0x050D,
	0x0000, 0x080D, 0x0711, 0x0000, 0x0000, 0x080C, 0x010E, 0x0206,
	0x0807, 0x0805, 0x0707, 0x0708, 0x0408, 0x0709, 0x0309, 0x0308,
	0x0809, 0x0808, 0x0407, 0x0406, 0x0108, 0x0409, 0x0806, 0x0109,
	0x050C, 0x0505, 0x0506, 0x0507, 0x0508, 0x0509, 0x0609, 0x0608,
	0x0607, 0x0606, 0x060D, 0x010D, 0x0605, 0x060C, 0x040C, 0x0604,
	0x0410, 0x0307, 0x0306, 0x0405, 0x0209, 0x0208, 0x0207, 0x050F,
	0x010B, 0x010A, 0x080B, 0x070A, 0x070B, 0x020A, 0x020B, 0x030A,
	0x030B, 0x040A, 0x0302, 0x060B, 0x050B, 0x0802, 0x0702, 0x0000,
	0x0000, 0x0000, 0x0511, 0x0602, 0x0000, 0x050A, 0x0000, 0x0000,
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000,
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0810, 0x0610,
	0x060E, 0x020E, 0x0210,
}
