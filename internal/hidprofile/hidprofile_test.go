package hidprofile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/btwired/bridge/internal/btdev"
)

type stubHandler struct{}

func (stubHandler) Init(d *btdev.Device) [][]byte                      { return nil }
func (stubHandler) Handle(d *btdev.Device, report []byte) error         { return nil }
func (stubHandler) Feedback(d *btdev.Device, rumble, led uint8) []byte  { return nil }

func TestForFallsBackToGenericHID(t *testing.T) {
	saved := Registry
	defer func() { Registry = saved }()
	Registry = map[btdev.BtType]Handler{}

	fallback := stubHandler{}
	Register(btdev.BtTypeHID, fallback)

	assert.Equal(t, fallback, For(btdev.BtTypeWii))
}

func TestForReturnsRegisteredHandler(t *testing.T) {
	saved := Registry
	defer func() { Registry = saved }()
	Registry = map[btdev.BtType]Handler{}

	h := stubHandler{}
	Register(btdev.BtTypePS3, h)
	assert.Equal(t, h, For(btdev.BtTypePS3))
}
