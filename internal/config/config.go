// Package config models the in-memory input/output/global configuration
// described in spec §3 and §6. File persistence is explicitly out of
// scope; Marshal/Unmarshal here only produce the wire-compatible byte
// layout so it stays testable (spec §8 property 7) without ever touching
// a filesystem.
package config

import (
	"encoding/binary"
	"fmt"
)

// Magic is the u32 sentinel prefixing the config blob (spec §6). A mismatch
// on load means "initialise defaults in-place", never a fatal error.
const Magic uint32 = 0x42525447 // "BRTG"

const (
	MaxMappingRules = 256
	MaxInCfg        = 7 // one per possible source device slot
	MaxOutCfg       = 4 // one per wired port this bridge drives concurrently
)

// AccMode is the N64 accessory emulation mode, toggled by the PAD_MT
// special action (spec §4.8).
type AccMode uint8

const (
	AccMem AccMode = iota
	AccRumble
)

// DevMode selects which wired device class a port emulates (pad / keyboard
// / mouse), matching spec's DEV_PAD/DEV_KB/DEV_MOUSE.
type DevMode uint8

const (
	DevPad DevMode = iota
	DevKB
	DevMouse
)

// GlobalCfg holds options shared across all ports (spec §3).
type GlobalCfg struct {
	BankSel   uint8
	Multitap  bool
}

// OutCfg is one wired port's configuration.
type OutCfg struct {
	DevMode DevMode
	AccMode AccMode
}

// MapRule is one mapping-engine rule (spec §3).
type MapRule struct {
	SrcBtn        uint8
	DstBtn        uint8
	DstID         uint8
	Turbo         bool
	Algo          uint8
	PercMax       uint8
	PercThreshold uint8
	PercDeadzone  uint8
}

// InCfg is one source device's ordered list of mapping rules.
type InCfg struct {
	Rules []MapRule
}

// Config is the full in-memory configuration tree (spec §3/§6). It has no
// internal locking; SetAccMode and RotateBankSel mutate it in place and
// then fan out change notifications to any registered listeners.
type Config struct {
	Global GlobalCfg
	Out    [MaxOutCfg]OutCfg
	In     [MaxInCfg]InCfg

	listeners []chan struct{}
}

// Default returns a Config with every port defaulted to DEV_PAD/ACC_MEM and
// no mapping rules, the state a magic mismatch rewrites in-place to.
func Default() *Config {
	c := &Config{}
	for i := range c.Out {
		c.Out[i] = OutCfg{DevMode: DevPad, AccMode: AccMem}
	}
	return c
}

// Subscribe registers a channel that receives a notification (non-blocking,
// best-effort) whenever Notify is called after a config mutation.
func (c *Config) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	c.listeners = append(c.listeners, ch)
	return ch
}

// Notify pushes an update notification to every subscriber without
// blocking on a full channel (spec §3, "update notifications").
func (c *Config) Notify() {
	for _, ch := range c.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// SetAccMode updates a port's accessory mode and notifies listeners; used
// directly by the N64 encoder's special action without a config file
// rewrite (spec §4.8: "Change config directly but do not update file").
func (c *Config) SetAccMode(port int, mode AccMode) error {
	if port < 0 || port >= len(c.Out) {
		return fmt.Errorf("config: port %d out of range", port)
	}
	c.Out[port].AccMode = mode
	c.Notify()
	return nil
}

// RotateBankSel advances the global bank-select 0..3 and notifies
// listeners (spec §4.8, PAD_MQ special action).
func (c *Config) RotateBankSel() uint8 {
	c.Global.BankSel = (c.Global.BankSel + 1) & 0x3
	c.Notify()
	return c.Global.BankSel
}

// MarshalBinary encodes the config into the spec §6 wire layout: u32
// magic, global config, one out-cfg per wired port, one in-cfg per source
// slot with up to MaxMappingRules rules each.
func (c *Config) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 4+2+len(c.Out)*2+len(c.In)*(2+MaxMappingRules*8))
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], Magic)
	buf = append(buf, hdr[:]...)

	buf = append(buf, c.Global.BankSel, b2u8(c.Global.Multitap))

	for _, o := range c.Out {
		buf = append(buf, uint8(o.DevMode), uint8(o.AccMode))
	}

	for _, in := range c.In {
		n := len(in.Rules)
		if n > MaxMappingRules {
			return nil, fmt.Errorf("config: in-cfg has %d rules, max %d", n, MaxMappingRules)
		}
		var cnt [2]byte
		binary.LittleEndian.PutUint16(cnt[:], uint16(n))
		buf = append(buf, cnt[:]...)
		for _, r := range in.Rules {
			buf = append(buf, r.SrcBtn, r.DstBtn, r.DstID, b2u8(r.Turbo),
				r.Algo, r.PercMax, r.PercThreshold, r.PercDeadzone)
		}
	}
	return buf, nil
}

// UnmarshalBinary decodes a config blob produced by MarshalBinary. A bad
// magic is reported as an error so the caller can fall back to Default()
// and rewrite, matching spec §7's "config magic mismatch" handling.
func (c *Config) UnmarshalBinary(data []byte) error {
	if len(data) < 6 {
		return fmt.Errorf("config: short buffer")
	}
	if binary.LittleEndian.Uint32(data[0:4]) != Magic {
		return fmt.Errorf("config: bad magic")
	}
	off := 4
	c.Global.BankSel = data[off]
	c.Global.Multitap = data[off+1] != 0
	off += 2

	for i := range c.Out {
		if off+2 > len(data) {
			return fmt.Errorf("config: truncated out-cfg")
		}
		c.Out[i] = OutCfg{DevMode: DevMode(data[off]), AccMode: AccMode(data[off+1])}
		off += 2
	}

	for i := range c.In {
		if off+2 > len(data) {
			return fmt.Errorf("config: truncated in-cfg count")
		}
		n := int(binary.LittleEndian.Uint16(data[off : off+2]))
		off += 2
		if n > MaxMappingRules {
			return fmt.Errorf("config: in-cfg rule count %d exceeds max", n)
		}
		rules := make([]MapRule, 0, n)
		for j := 0; j < n; j++ {
			if off+8 > len(data) {
				return fmt.Errorf("config: truncated mapping rule")
			}
			rules = append(rules, MapRule{
				SrcBtn:        data[off],
				DstBtn:        data[off+1],
				DstID:         data[off+2],
				Turbo:         data[off+3] != 0,
				Algo:          data[off+4],
				PercMax:       data[off+5],
				PercThreshold: data[off+6],
				PercDeadzone:  data[off+7],
			})
			off += 8
		}
		c.In[i].Rules = rules
	}
	return nil
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
