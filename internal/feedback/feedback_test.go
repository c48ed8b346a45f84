package feedback

import (
	"testing"

	"github.com/btwired/bridge/internal/btdev"
	"github.com/btwired/bridge/internal/hidprofile"
	"github.com/stretchr/testify/assert"
)

type stubHandler struct {
	lastRumble, lastLED uint8
	reply               []byte
}

func (s *stubHandler) Init(d *btdev.Device) [][]byte { return nil }
func (s *stubHandler) Handle(d *btdev.Device, report []byte) error {
	return nil
}
func (s *stubHandler) Feedback(d *btdev.Device, rumble, led uint8) []byte {
	s.lastRumble, s.lastLED = rumble, led
	return s.reply
}

func TestFromWireRumbleTakesPriorityOverLED(t *testing.T) {
	fb := FromWire(2, 0xFF, 0x03)
	assert.Equal(t, TypeRumble, fb.Type)
	assert.Equal(t, uint8(0xFF), fb.State)
}

func TestFromWireFallsBackToLED(t *testing.T) {
	fb := FromWire(2, 0, 0x03)
	assert.Equal(t, TypeLED, fb.Type)
	assert.Equal(t, uint8(0x03), fb.State)
}

func TestRouteReturnsNilForUnoccupiedPort(t *testing.T) {
	pool := btdev.NewPool()
	r := NewRouter(pool)
	out := r.Route(Generic{WiredPort: 3, Type: TypeRumble, State: 1})
	assert.Nil(t, out)
}

func TestRouteDispatchesToOccupyingDeviceHandler(t *testing.T) {
	pool := btdev.NewPool()
	dev, err := pool.Alloc([6]byte{1, 2, 3, 4, 5, 6})
	assert.NoError(t, err)
	dev.Type = btdev.BtTypePS4
	dev.WiredPort = 0

	stub := &stubHandler{reply: []byte{0xAA}}
	prev := hidprofile.Registry[btdev.BtTypePS4]
	hidprofile.Register(btdev.BtTypePS4, stub)
	t.Cleanup(func() { hidprofile.Register(btdev.BtTypePS4, prev) })

	r := NewRouter(pool)
	out := r.Route(Generic{WiredPort: 0, Type: TypeRumble, State: 0x80})

	assert.Equal(t, []byte{0xAA}, out)
	assert.Equal(t, uint8(0x80), stub.lastRumble)
}

func TestPumpReturnsNilWithoutEncoder(t *testing.T) {
	pool := btdev.NewPool()
	r := NewRouter(pool)
	out := Pump(nil, 0, []byte{1}, r)
	assert.Nil(t, out)
}
