package bthost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyNameKnownPrefixes(t *testing.T) {
	assert.Equal(t, btTypeWii, ClassifyName("Nintendo RVL-CNT-01"))
	assert.Equal(t, btTypePS4, ClassifyName("Wireless Controller"))
	assert.Equal(t, btTypeHID, ClassifyName("Unknown Gadget"))
}

func TestPINPolicyWiiVsOthers(t *testing.T) {
	local := [6]byte{1, 2, 3, 4, 5, 6}
	peer := [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}

	wiiPin := PIN(btTypeWii, local, peer)
	assert.Equal(t, reversed(local), wiiPin)

	ps3Pin := PIN(btTypePS3, local, peer)
	assert.Equal(t, reversed(peer), ps3Pin)
}

func TestLinkKeyStoreRoundRobinEviction(t *testing.T) {
	var s LinkKeyStore
	for i := 0; i < LinkKeyStoreSize; i++ {
		addr := [6]byte{byte(i)}
		s.Store(addr, [16]byte{byte(i)})
	}
	_, ok := s.Lookup([6]byte{0})
	assert.True(t, ok)

	s.Store([6]byte{200}, [16]byte{200})
	_, ok = s.Lookup([6]byte{0})
	assert.False(t, ok, "oldest entry should be evicted once the ring wraps")
}

func TestLinkKeyStoreUpdateInPlace(t *testing.T) {
	var s LinkKeyStore
	addr := [6]byte{9}
	s.Store(addr, [16]byte{1})
	s.Store(addr, [16]byte{2})
	key, ok := s.Lookup(addr)
	require.True(t, ok)
	assert.Equal(t, [16]byte{2}, key)
}

func TestHostBringUpSequenceAndCtrlReady(t *testing.T) {
	h := NewHost([6]byte{1, 2, 3, 4, 5, 6})
	assert.False(t, h.Ready())

	for i := 0; i < len(bringUpSteps); i++ {
		h.Tick(time.Time{})
		assert.Equal(t, i+1, h.Ring.Len())
		frame, ok := h.Ring.Pop()
		assert.False(t, ok, "ring must stay gated until CTRL_READY")
		_ = frame

		h.OnCommandComplete(bringUpSteps[i].opcode)
	}
	assert.True(t, h.Ready())

	h.Ring.Push([]byte{0x01})
	_, ok := h.Ring.Pop()
	assert.True(t, ok, "ring should drain once ready")
}

func TestHostConnectAllocatesAndClassifies(t *testing.T) {
	h := NewHost([6]byte{1, 2, 3, 4, 5, 6})
	d, pin, err := h.Connect([6]byte{0xAA}, "Nintendo RVL-CNT-01")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Slot)
	assert.Equal(t, reversed(h.LocalAddr), pin)
}

func TestHostDisconnectFreesSlot(t *testing.T) {
	h := NewHost([6]byte{1})
	d, _, err := h.Connect([6]byte{0xAA}, "Wireless Controller")
	require.NoError(t, err)
	slot := d.Slot
	h.Disconnect(slot)
	assert.Nil(t, h.Pool.Get(slot))
}
