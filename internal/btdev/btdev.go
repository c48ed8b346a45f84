// Package btdev implements the fixed-size connected-device record pool
// (spec §3/§4.6, bt_dev), grounded on the teacher's VirtualBus free-slot
// scan but adapted to a fixed array: this bridge never has more wireless
// peers than wired ports plus spares.
package btdev

import (
	"fmt"

	"github.com/btwired/bridge/internal/flags"
	"github.com/btwired/bridge/internal/generic"
)

// MaxDevices is the fixed pool size (spec §3): enough slots for every
// wired port plus a few pending-pair spares.
const MaxDevices = 7

// BtType identifies the vendor HID profile a device speaks.
type BtType int

const (
	BtTypeUnknown BtType = iota
	BtTypeHID
	BtTypeWii
	BtTypeWiiU
	BtTypePS3
	BtTypePS4
	BtTypePS5
	BtTypeSwitch
	BtTypeXbox
)

// Device-scope edge-triggered flags (spec §4.6).
const (
	FlagConnected = 1 << iota
	FlagPaired
	FlagHIDDescReady
	FlagReportInit
	FlagPendingFeedback
)

// Device is one connected-or-pairing peer's full record: identity,
// connection state, calibration cache and generic controller state.
type Device struct {
	Slot int // pool index; also the low nibble of every CID this device owns

	Addr   [6]byte
	Name   string
	Type   BtType
	Flags  flags.Set
	WiredPort int // -1 if not yet assigned to an output port

	Ctrl     generic.Ctrl
	RawMaps  [generic.ReportTypeMax]generic.RawSrcMapping

	inUse bool
}

// Pool is the fixed array of device slots, linearly scanned for
// allocation exactly as the source's bt_dev table is (spec §3).
type Pool struct {
	devices [MaxDevices]Device
}

// NewPool returns a pool with every slot free and WiredPort unassigned.
func NewPool() *Pool {
	p := &Pool{}
	for i := range p.devices {
		p.devices[i].Slot = i
		p.devices[i].WiredPort = -1
	}
	return p
}

// Alloc finds the first free slot, zeroes it (preserving only Slot) and
// marks it in use. Returns an error if the pool is full — the source's
// equivalent simply fails the connection attempt.
func (p *Pool) Alloc(addr [6]byte) (*Device, error) {
	for i := range p.devices {
		if !p.devices[i].inUse {
			slot := i
			p.devices[i] = Device{Slot: slot, Addr: addr, WiredPort: -1, inUse: true}
			return &p.devices[i], nil
		}
	}
	return nil, fmt.Errorf("btdev: pool exhausted (%d slots)", MaxDevices)
}

// Free zeroes the slot (the "zero-on-destroy" invariant, spec §4.6) and
// returns it to the free list.
func (p *Pool) Free(slot int) {
	if slot < 0 || slot >= MaxDevices {
		return
	}
	p.devices[slot] = Device{Slot: slot, WiredPort: -1}
}

// Get returns the device at slot, or nil if that slot is free.
func (p *Pool) Get(slot int) *Device {
	if slot < 0 || slot >= MaxDevices || !p.devices[slot].inUse {
		return nil
	}
	return &p.devices[slot]
}

// ByAddr linearly scans for a device with the given address, the way the
// source looks up devices by bdaddr rather than by a hash index.
func (p *Pool) ByAddr(addr [6]byte) *Device {
	for i := range p.devices {
		if p.devices[i].inUse && p.devices[i].Addr == addr {
			return &p.devices[i]
		}
	}
	return nil
}

// ByWiredPort linearly scans for the device currently driving port,
// grounding the feedback path's reverse lookup (spec §4.9).
func (p *Pool) ByWiredPort(port int) *Device {
	for i := range p.devices {
		if p.devices[i].inUse && p.devices[i].WiredPort == port {
			return &p.devices[i]
		}
	}
	return nil
}

// CID encodes the slot into the low nibble of a locally-generated L2CAP
// channel id, so the connection a frame belongs to can be recovered from
// the CID alone without a side table (spec §4.6).
func CID(slot int, base uint16) uint16 {
	return (base &^ 0xF) | uint16(slot&0xF)
}

// SlotFromCID is the inverse of CID.
func SlotFromCID(cid uint16) int {
	return int(cid & 0xF)
}
