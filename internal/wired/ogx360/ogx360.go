// Package ogx360 implements the wired.Encoder for the ogx360 daughterboard
// (spec §4.8 supplemented feature): a USB-Xbox-over-I2C bridge that speaks
// the original Xbox ("Duke") controller wire format and fans the encoded
// frame out to one physical I2C channel per output port.
package ogx360

import (
	"encoding/binary"

	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
)

func init() {
	wired.Register(wired.SystemOgx360, Encoder{})
}

const (
	btnDUp = iota
	btnDDown
	btnDLeft
	btnDRight
	btnStart
	btnBack
	btnLStick
	btnRStick
)

const (
	btnX = iota
	btnB
	btnA
	btnY
	btnBlack
	btnWhite
)

const noButton = -1

var digitalBtnsIdx = [32]int{
	0: noButton, 1: noButton, 2: noButton, 3: noButton,
	4: noButton, 5: noButton, 6: noButton, 7: noButton,
	8: btnDLeft, 9: btnDRight, 10: btnDDown, 11: btnDUp,
	12: noButton, 13: noButton, 14: noButton, 15: noButton,
	16: noButton, 17: noButton, 18: noButton, 19: noButton,
	20: btnStart, 21: btnBack, 22: noButton, 23: noButton,
	24: noButton, 25: noButton, 26: noButton, 27: btnLStick,
	28: noButton, 29: noButton, 30: noButton, 31: btnRStick,
}

var analogBtnsIdx = [32]int{
	0: noButton, 1: noButton, 2: noButton, 3: noButton,
	4: noButton, 5: noButton, 6: noButton, 7: noButton,
	8: noButton, 9: noButton, 10: noButton, 11: noButton,
	12: noButton, 13: noButton, 14: noButton, 15: noButton,
	16: btnX, 17: btnB, 18: btnA, 19: btnY,
	20: noButton, 21: noButton, 22: noButton, 23: noButton,
	24: noButton, 25: btnBlack, 26: noButton, 27: noButton,
	28: noButton, 29: btnWhite, 30: noButton, 31: noButton,
}

const numAnalogButtons = 6
const num8BitAxis = 2
const num16BitAxis = 4

var axesMeta = [6]generic.Meta{
	{SizeMin: -32768, SizeMax: 32767, Neutral: 0, AbsMax: 32767},
	{SizeMin: -32768, SizeMax: 32767, Neutral: 0, AbsMax: 32767},
	{SizeMin: -32768, SizeMax: 32767, Neutral: 0, AbsMax: 32767},
	{SizeMin: -32768, SizeMax: 32767, Neutral: 0, AbsMax: 32767},
	{SizeMin: 0, SizeMax: 255, Neutral: 0, AbsMax: 255},
	{SizeMin: 0, SizeMax: 255, Neutral: 0, AbsMax: 255},
}

var padMask = [4]uint32{0xBBFF0FFF, 0, 0, 0}
var padDesc = [4]uint32{0x110000FF, 0, 0, 0}

// duke output frame: controllerType, startByte, bLength, wButtons(2),
// analogButtons(6), axis16(4*2), axis8(2) = 3+2+6+8+2 = 21 bytes, matching
// the 21-byte write the I2C transport expects.
const dukeOutLen = 3 + 2 + numAnalogButtons + num8BitAxis + num16BitAxis*2

// duke input frame (rumble feedback read back over the same channel):
// startByte, bLength, lValue(2), hValue(2) = 6 bytes.
const dukeInLen = 2 + 2 + 2

type Encoder struct{}

var _ wired.Encoder = Encoder{}

func (Encoder) InitBuffer(devMode config.DevMode, port *wired.PortState) {
	buf := make([]byte, dukeOutLen)
	buf[0] = 0xF1
	buf[2] = byte((dukeOutLen + 3) / 4)
	port.Output = buf
	port.OutputMask = make([]byte, dukeOutLen)
	for i := range port.OutputMask {
		port.OutputMask[i] = 0xFF
	}
}

func (Encoder) MetaInit(devMode config.DevMode, ctrl *generic.Ctrl) {
	ctrl.Mask[generic.PlanePad] = padMask[0]
	ctrl.Desc[generic.PlanePad] = padDesc[0]
	for i := range axesMeta {
		if i < len(ctrl.Axes) {
			ctrl.Axes[i].Meta = &axesMeta[i]
		}
	}
}

func (Encoder) FromGeneric(devMode config.DevMode, ctrl *generic.Ctrl, port *wired.PortState, cfg *config.Config) {
	if len(port.Output) < dukeOutLen {
		return
	}
	buf := port.Output
	buf[0] = 0xF1
	buf[1] = 0
	buf[2] = byte((dukeOutLen + 3) / 4)

	var wButtons uint16
	for i := 0; i < 32; i++ {
		if digitalBtnsIdx[i] == noButton {
			continue
		}
		if ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[i] != 0 {
			wButtons |= 1 << uint(digitalBtnsIdx[i])
		}
	}
	binary.LittleEndian.PutUint16(buf[3:5], wButtons)

	for i := 0; i < 32; i++ {
		if analogBtnsIdx[i] == noButton {
			continue
		}
		slot := analogBtnsIdx[i]
		if ctrl.Btns[generic.PlanePad].Value&generic.GenericBtnsMask[i] != 0 {
			buf[5+slot] = 0xFF
		} else {
			buf[5+slot] = 0x00
		}
	}

	axis16Off := 5 + numAnalogButtons
	for i := 0; i < num16BitAxis; i++ {
		v := clampAxis(ctrl.Axes[i].Value, ctrl.Axes[i].Meta)
		binary.LittleEndian.PutUint16(buf[axis16Off+i*2:axis16Off+i*2+2], uint16(int16(v)))
	}

	axis8Off := axis16Off + num16BitAxis*2
	for i := 0; i < num8BitAxis; i++ {
		idx := num16BitAxis + i
		v := clampAxis(ctrl.Axes[idx].Value, ctrl.Axes[idx].Meta)
		buf[axis8Off+i] = byte(v)
	}
}

func clampAxis(v int32, meta *generic.Meta) int32 {
	if meta == nil {
		return v
	}
	if v > meta.SizeMax {
		return meta.SizeMax
	}
	if v < meta.SizeMin {
		return meta.SizeMin
	}
	return v
}

func (Encoder) GenTurboMask(port *wired.PortState) {
	for i := range port.OutputMask {
		port.OutputMask[i] = 0xFF
	}
}

func (Encoder) FBToGeneric(raw []byte) (rumble uint8, led uint8) {
	if len(raw) < dukeInLen || raw[0] != 0x00 || raw[1] != 0x06 {
		return 0, 0
	}
	left := binary.LittleEndian.Uint16(raw[2:4])
	right := binary.LittleEndian.Uint16(raw[4:6])
	if left != 0 || right != 0 {
		return 0xFF, 0
	}
	return 0, 0
}

// Channel is one output port's I2C link to a physical ogx360 daughterboard.
// Write sends the encoded duke-out frame and Read retrieves any pending
// duke-in rumble frame; Connected reports whether the board answered the
// last presence ping.
type Channel struct {
	Addr      uint8
	Connected bool
	Write     func(addr uint8, data []byte) error
	Read      func(addr uint8, buf []byte) error
}

// Fanout drives one Channel per output port, marking a channel's port
// absent after a write failure so subsequent frames skip it rather than
// retry a dead bus address every cycle (spec §7).
type Fanout struct {
	Channels []Channel
}

// NewFanout builds a Fanout with n channels addressed 1..n, matching the
// original's per-player I2C slave address scheme.
func NewFanout(n int) *Fanout {
	ch := make([]Channel, n)
	for i := range ch {
		ch[i].Addr = uint8(i + 1)
	}
	return &Fanout{Channels: ch}
}

// Send writes port's encoded frame to its channel. A write error marks the
// channel disconnected and is returned to the caller for logging; it is
// not retried until the caller explicitly re-probes with Probe.
func (f *Fanout) Send(port int, data []byte) error {
	if port < 0 || port >= len(f.Channels) {
		return nil
	}
	ch := &f.Channels[port]
	if !ch.Connected || ch.Write == nil {
		return nil
	}
	if err := ch.Write(ch.Addr, data); err != nil {
		ch.Connected = false
		return err
	}
	return nil
}

// Probe pings every channel's address and records which ones answer.
func (f *Fanout) Probe(ping func(addr uint8) error) {
	for i := range f.Channels {
		f.Channels[i].Connected = ping(f.Channels[i].Addr) == nil
	}
}
