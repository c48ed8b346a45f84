// Package sea implements the wired.Encoder for the Sega Genesis/Mega
// Drive controller port wired to a GBAHD line-doubler's comm header
// (spec §4.8 supplemented feature, "SEA"): the raw digital pad lines
// plus the GBAHD on-screen-display overlay protocol described in
// github.com/zwenergy/gbaHD's commTransceiver/padOverlay HDL.
package sea

import (
	"encoding/binary"
	"math/bits"

	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
)

func init() {
	wired.Register(wired.SystemSea, Encoder{})
}

const (
	gbahdOverlay = 0x8000
	gbahdConfig  = 0x4000
	gbahdState   = 0x2000

	gbahdLineMin = 0x2007
	gbahdLineMax = 0x2011

	gbahdCfgSmoothMask = 0x0003
	gbahdCfgGridMask   = 0x000C

	gbahdStateOSD = 0
)

const (
	gbahdLDUp = iota
	gbahdLDDown
	gbahdLDLeft
	gbahdLDRight
	gbahdA
	gbahdB
	gbahdL
	gbahdR
	gbahdStart
	gbahdSelect
)

const (
	p1LDUp = iota + 16
	p1LDDown
	p1LDLeft
	p1LDRight
)

const (
	p1RBDown = iota + 20
	p1RBRight
	p1RBLeft
	p1RBUp
)

const (
	p1MM = 24
	p1MS = 25
	p1MT = 26
	p1LM = 28
	p1RM = 30
)

const gbahdOSDBtns = 0x00150F00

// seaMask is the per-plane button mask; seaBtnsMask and seaGbahdBtnsMask
// are indexed by canonical pad-button id.
var seaMask = [4]uint32{0x337F0F00, 0, 0, 0}

var seaBtnsMask = [32]uint32{
	8: 1 << p1LDLeft, 9: 1 << p1LDRight, 10: 1 << p1LDDown, 11: 1 << p1LDUp,
	16: 1 << p1RBLeft, 17: 1 << p1RBRight, 18: 1 << p1RBDown, 19: 1 << p1RBUp,
	20: 1 << p1MM, 21: 1 << p1MS, 22: 1<<(p1MT-16) | 0xF0000000,
	24: 1 << p1LM, 25: 1 << p1LM,
	28: 1 << p1RM, 29: 1 << p1RM,
}

var seaGbahdBtnsMask = [32]uint32{
	8: 1 << gbahdLDLeft, 9: 1 << gbahdLDRight, 10: 1 << gbahdLDDown, 11: 1 << gbahdLDUp,
	16: 1 << gbahdB, 18: 1 << gbahdA,
	20: 1 << gbahdStart, 21: 1 << gbahdSelect,
	24: 1 << gbahdL, 25: 1 << gbahdL,
	28: 1 << gbahdR, 29: 1 << gbahdR,
}

// state is the GBAHD OSD overlay state machine bookkeeping kept per
// output port, indexed outside of PortState since it has no analogue on
// any other console.
type state struct {
	waitingForRelease bool
	osdBtn            uint32
}

var states = map[int]*state{}

func stateFor(port int) *state {
	s, ok := states[port]
	if !ok {
		s = &state{}
		states[port] = s
	}
	return s
}

const bufLen = 4 + 4 + 2 + 2 + 2 // buttons, buttons_high, buttons_osd, gbahd_state, gbahd_config

type Encoder struct{}

var _ wired.Encoder = Encoder{}

func (Encoder) InitBuffer(devMode config.DevMode, port *wired.PortState) {
	buf := make([]byte, bufLen)
	binary.LittleEndian.PutUint32(buf[0:4], 0xFFFDFFFF)
	binary.LittleEndian.PutUint32(buf[4:8], 0xFFFFFFFF)
	binary.LittleEndian.PutUint16(buf[8:10], gbahdOverlay)
	binary.LittleEndian.PutUint16(buf[10:12], gbahdState)
	binary.LittleEndian.PutUint16(buf[12:14], gbahdConfig)
	port.Output = buf
	port.OutputMask = make([]byte, bufLen)
}

func (Encoder) MetaInit(devMode config.DevMode, ctrl *generic.Ctrl) {
	ctrl.Mask[generic.PlanePad] = seaMask[0]
}

func (Encoder) FromGeneric(devMode config.DevMode, ctrl *generic.Ctrl, port *wired.PortState, cfg *config.Config) {
	if ctrl.Index >= 1 || len(port.Output) < bufLen {
		return
	}

	buttons := binary.LittleEndian.Uint32(port.Output[0:4])
	buttonsHigh := binary.LittleEndian.Uint32(port.Output[4:8])
	buttonsOSD := binary.LittleEndian.Uint16(port.Output[8:10])

	mapMask := uint32(0xFFFFFFFF)
	mapMaskHigh := uint32(0xFFFFFFFF)

	for i := 0; i < 32; i++ {
		if ctrl.MapMask[generic.PlanePad]&(1<<uint(i)) == 0 {
			continue
		}
		m := seaBtnsMask[i]
		if ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[i] != 0 {
			if m&0xF0000000 == 0xF0000000 {
				buttonsHigh &^= m & 0xFF
				mapMaskHigh &^= m & 0xFF
			} else {
				buttons &^= m
				mapMask &^= m
			}
			buttonsOSD |= uint16(seaGbahdBtnsMask[i])
			port.CntMask[i] = ctrl.Btns[generic.PlanePad].CntMask[i]
		} else {
			if m&0xF0000000 == 0xF0000000 {
				if mapMaskHigh&(m&0xFF) != 0 {
					buttonsHigh |= m & 0xFF
				}
			} else {
				if mapMask&m != 0 {
					buttons |= m
				}
			}
			buttonsOSD &^= uint16(seaGbahdBtnsMask[i])
			port.CntMask[i] = 0
		}
	}

	binary.LittleEndian.PutUint32(port.Output[0:4], buttons)
	binary.LittleEndian.PutUint32(port.Output[4:8], buttonsHigh)
	binary.LittleEndian.PutUint16(port.Output[8:10], buttonsOSD)

	gbahdOSD(ctrl, port)
}

// gbahdOSD drives the IDLE -> OSD_ACTIVE -> menu-control transitions: the
// home button (PAD_MT) opens the overlay, then a single latched button
// per release edge steps through grid/smoothing/line config.
func gbahdOSD(ctrl *generic.Ctrl, port *wired.PortState) {
	st := stateFor(ctrl.Index)
	gbahdStateWord := binary.LittleEndian.Uint16(port.Output[10:12])
	gbahdCfg := binary.LittleEndian.Uint16(port.Output[12:14])

	if gbahdStateWord&(1<<gbahdStateOSD) == 0 {
		if ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[generic.PadMT] != 0 {
			st.waitingForRelease = true
		} else if st.waitingForRelease {
			st.waitingForRelease = false
			gbahdStateWord = gbahdLineMin
		}
	} else {
		if ctrl.Btns[generic.PlanePad].Value&gbahdOSDBtns != 0 {
			if !st.waitingForRelease {
				st.waitingForRelease = true
				st.osdBtn = uint32(bits.TrailingZeros32(ctrl.Btns[generic.PlanePad].Value))
			}
		} else if st.waitingForRelease {
			st.waitingForRelease = false
			curLine := int32((gbahdStateWord&0xFF)>>1) - 3
			dir := int32(1)

			switch st.osdBtn {
			case generic.PadLDLeft:
				dir = -1
				fallthrough
			case generic.PadLDRight, generic.PadRBDown: // "A"
				switch curLine {
				case 0:
					for {
						gbahdCfg = (gbahdCfg &^ gbahdCfgGridMask) | uint16(int32(gbahdCfg)+4*dir)&gbahdCfgGridMask
						if gbahdCfg&gbahdCfgGridMask != 0x8 {
							break
						}
					}
				case 2:
					for {
						gbahdCfg = (gbahdCfg &^ gbahdCfgSmoothMask) | uint16(int32(gbahdCfg)+dir)&gbahdCfgSmoothMask
						if gbahdCfg&gbahdCfgSmoothMask != 0x3 {
							break
						}
					}
				case 1:
					curLine++
					fallthrough
				default:
					gbahdCfg ^= 1 << uint(curLine+2)
				}
			case generic.PadLDDown:
				if gbahdStateWord < gbahdLineMax {
					gbahdStateWord += 2
				}
			case generic.PadLDUp:
				if gbahdStateWord > gbahdLineMin {
					gbahdStateWord -= 2
				}
			case generic.PadRBLeft: // "B"
				gbahdCfg = gbahdConfig
				gbahdStateWord = gbahdState
			case generic.PadMM: // Start
				gbahdStateWord = gbahdState
			}
		}
	}

	binary.LittleEndian.PutUint16(port.Output[10:12], gbahdStateWord)
	binary.LittleEndian.PutUint16(port.Output[12:14], gbahdCfg)
}

func (Encoder) GenTurboMask(port *wired.PortState) {
	buttons := uint32(0xFFFFFFFF)
	buttonsHigh := uint32(0xFFFFFFFF)
	for i := 0; i < 32; i++ {
		if port.CntMask[i] == 0 {
			continue
		}
		m := seaBtnsMask[i]
		if m&0xF0000000 == 0xF0000000 {
			buttonsHigh &^= m & 0xFF
		} else {
			buttons &^= m
		}
	}
	binary.LittleEndian.PutUint32(port.OutputMask[0:4], buttons)
	binary.LittleEndian.PutUint32(port.OutputMask[4:8], buttonsHigh)
}

func (Encoder) FBToGeneric(raw []byte) (rumble uint8, led uint8) {
	return 0, 0
}
