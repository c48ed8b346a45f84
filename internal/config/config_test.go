package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := Default()
	for _, o := range c.Out {
		assert.Equal(t, DevPad, o.DevMode)
		assert.Equal(t, AccMem, o.AccMode)
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	c := Default()
	c.Global.BankSel = 2
	c.Global.Multitap = true
	c.Out[0].AccMode = AccRumble
	c.In[0].Rules = []MapRule{
		{SrcBtn: 5, DstBtn: 6, DstID: 0, Turbo: true, PercMax: 100, PercThreshold: 50},
	}

	data, err := c.MarshalBinary()
	require.NoError(t, err)

	var got Config
	require.NoError(t, got.UnmarshalBinary(data))

	assert.Equal(t, c.Global, got.Global)
	assert.Equal(t, c.Out, got.Out)
	assert.Equal(t, c.In[0].Rules, got.In[0].Rules)
}

func TestUnmarshalBadMagic(t *testing.T) {
	var c Config
	err := c.UnmarshalBinary([]byte{0, 0, 0, 0, 0, 0})
	assert.Error(t, err)
}

func TestSetAccModeNotifiesSubscribers(t *testing.T) {
	c := Default()
	ch := c.Subscribe()

	require.NoError(t, c.SetAccMode(0, AccRumble))
	select {
	case <-ch:
	default:
		t.Fatal("expected notification after SetAccMode")
	}
	assert.Equal(t, AccRumble, c.Out[0].AccMode)
}

func TestSetAccModeOutOfRange(t *testing.T) {
	c := Default()
	err := c.SetAccMode(len(c.Out), AccRumble)
	assert.Error(t, err)
}

func TestRotateBankSelWraps(t *testing.T) {
	c := Default()
	for i := 0; i < 3; i++ {
		c.RotateBankSel()
	}
	assert.Equal(t, uint8(3), c.Global.BankSel)
	assert.Equal(t, uint8(0), c.RotateBankSel())
}
