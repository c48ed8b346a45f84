package ogx360

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
	"github.com/btwired/bridge/internal/wired"
	"github.com/stretchr/testify/assert"
)

func TestInitBufferHeader(t *testing.T) {
	var port wired.PortState
	enc := Encoder{}
	enc.InitBuffer(config.DevPad, &port)
	assert.Equal(t, byte(0xF1), port.Output[0])
	assert.Len(t, port.Output, dukeOutLen)
}

func TestFromGenericSetsDigitalButton(t *testing.T) {
	var port wired.PortState
	enc := Encoder{}
	enc.InitBuffer(config.DevPad, &port)

	var ctrl generic.Ctrl
	enc.MetaInit(config.DevPad, &ctrl)
	ctrl.Btns[generic.PlanePad].Value = generic.GenericBtnsMask[20]

	enc.FromGeneric(config.DevPad, &ctrl, &port, &config.Config{})

	wButtons := binary.LittleEndian.Uint16(port.Output[3:5])
	assert.NotZero(t, wButtons&(1<<btnStart))
}

func TestFromGenericSetsAnalogButtonFull(t *testing.T) {
	var port wired.PortState
	enc := Encoder{}
	enc.InitBuffer(config.DevPad, &port)

	var ctrl generic.Ctrl
	enc.MetaInit(config.DevPad, &ctrl)
	ctrl.Btns[generic.PlanePad].Value = generic.GenericBtnsMask[18]

	enc.FromGeneric(config.DevPad, &ctrl, &port, &config.Config{})

	assert.Equal(t, byte(0xFF), port.Output[5+btnA])
}

func TestFromGenericClampsAxis(t *testing.T) {
	var port wired.PortState
	enc := Encoder{}
	enc.InitBuffer(config.DevPad, &port)

	var ctrl generic.Ctrl
	enc.MetaInit(config.DevPad, &ctrl)
	ctrl.Axes[generic.AxisLX].Value = 40000

	enc.FromGeneric(config.DevPad, &ctrl, &port, &config.Config{})

	axis16Off := 5 + numAnalogButtons
	v := int16(binary.LittleEndian.Uint16(port.Output[axis16Off : axis16Off+2]))
	assert.Equal(t, int16(32767), v)
}

func TestFBToGenericDetectsRumble(t *testing.T) {
	enc := Encoder{}
	raw := make([]byte, dukeInLen)
	raw[0], raw[1] = 0x00, 0x06
	binary.LittleEndian.PutUint16(raw[2:4], 500)
	rumble, _ := enc.FBToGeneric(raw)
	assert.Equal(t, uint8(0xFF), rumble)
}

func TestFanoutMarksChannelDisconnectedOnWriteError(t *testing.T) {
	f := NewFanout(2)
	f.Channels[0].Connected = true
	f.Channels[0].Write = func(addr uint8, data []byte) error {
		return errors.New("i2c nack")
	}

	err := f.Send(0, []byte{1, 2, 3})
	assert.Error(t, err)
	assert.False(t, f.Channels[0].Connected)
}

func TestFanoutSkipsDisconnectedChannel(t *testing.T) {
	f := NewFanout(1)
	called := false
	f.Channels[0].Write = func(addr uint8, data []byte) error {
		called = true
		return nil
	}

	err := f.Send(0, []byte{1})
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestProbeSetsConnected(t *testing.T) {
	f := NewFanout(2)
	f.Probe(func(addr uint8) error {
		if addr == 1 {
			return nil
		}
		return errors.New("no ack")
	})
	assert.True(t, f.Channels[0].Connected)
	assert.False(t, f.Channels[1].Connected)
}
