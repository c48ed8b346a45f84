package l2cap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelLifecycleToOpen(t *testing.T) {
	c := NewChannel(PSMHIDInterrupt, 0x41)
	require.NoError(t, c.ConnectReqSent(0x70))
	assert.Equal(t, StateConnReqSent, c.State())

	require.NoError(t, c.ConnectionComplete())
	assert.Equal(t, StateConnected, c.State())

	require.NoError(t, c.SendConfigRequest())
	assert.Equal(t, StateConfigSent, c.State())
	assert.False(t, c.IsOpen())

	c.RemoteConfigured(0x0030)
	assert.Equal(t, StateConfigSent, c.State(), "needs both directions before OPEN")

	c.LocalConfigured()
	assert.Equal(t, StateOpen, c.State())
	assert.True(t, c.IsOpen())
}

func TestChannelInvalidTransition(t *testing.T) {
	c := NewChannel(PSMHIDControl, 0x40)
	err := c.ConnectionComplete()
	assert.Error(t, err)
}

func TestRemoteMTUClamped(t *testing.T) {
	c := NewChannel(PSMHIDInterrupt, 0x41)
	require.NoError(t, c.ConnectReqSent(0x70))
	require.NoError(t, c.ConnectionComplete())
	require.NoError(t, c.SendConfigRequest())

	c.RemoteConfigured(0xFFFF)
	assert.Equal(t, uint16(MaxAcceptedMTU), c.RemoteMTU)
}

func TestCloseAndReset(t *testing.T) {
	c := NewChannel(PSMHIDInterrupt, 0x41)
	require.NoError(t, c.ConnectReqSent(0x70))
	require.NoError(t, c.ConnectionComplete())
	c.Close()
	assert.Equal(t, StateClosing, c.State())

	c.Reset()
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, uint16(0), c.RemoteCID)
}

func TestIdentWrapsSkippingZero(t *testing.T) {
	c := NewChannel(PSMSDP, 0x40)
	c.ident = 254
	assert.Equal(t, uint8(255), c.NextIdent())
	assert.Equal(t, uint8(1), c.NextIdent())
}
