// Package bthost is the Bluetooth host orchestrator: controller- and
// device-scope state machines, bring-up sequencing, pairing policy and the
// link-key cache (spec §4.6).
package bthost

import (
	"fmt"
	"time"

	"github.com/btwired/bridge/internal/btdev"
	"github.com/btwired/bridge/internal/flags"
	"github.com/btwired/bridge/internal/hci"
)

// Controller-scope flags, set/cleared by the bring-up sequence and by
// ongoing discovery (spec §4.6).
const (
	FlagControllerReset = iota
	FlagLocalNameSet
	FlagCODSet
	FlagLocalVersionRead
	FlagEventFiltersSet
	FlagScanEnabled
	FlagInquiryRunning
	FlagCtrlReady
)

// bringUpSteps is the ordered global bring-up sequence (spec §4.6): reset,
// write local name, write class of device, read local version, set event
// filters, write scan enable, start inquiry. Each step is a command pushed
// to the ring; the corresponding flag is set from the command-complete
// handler, not optimistically here.
var bringUpSteps = []struct {
	name   string
	opcode hci.Opcode
	params []byte
}{
	{"reset", hci.MakeOpcode(hci.OGFControllerBB, 0x0003), nil},
	{"write_local_name", hci.MakeOpcode(hci.OGFControllerBB, 0x0013), nil},
	{"write_cod", hci.MakeOpcode(hci.OGFControllerBB, 0x0024), nil},
	{"read_local_version", hci.MakeOpcode(hci.OGFInfoParams, 0x0001), nil},
	{"set_event_filter", hci.MakeOpcode(hci.OGFControllerBB, 0x0005), nil},
	{"write_scan_enable", hci.MakeOpcode(hci.OGFControllerBB, 0x001A), nil},
	{"inquiry", hci.MakeOpcode(hci.OGFLinkControl, 0x0001), nil},
}

// Host ties together the device pool, transmit ring, link-key store and
// pairing policy into the single object the tick loop drives.
type Host struct {
	LocalAddr [6]byte

	Pool     *btdev.Pool
	Ring     *hci.Ring
	LinkKeys LinkKeyStore

	ctrlFlags  flags.Set
	bringUpIdx int
	stepSent   bool
}

// NewHost constructs a Host with a fresh 7-slot device pool and a closed
// transmit ring, ready for Tick to begin bring-up.
func NewHost(localAddr [6]byte) *Host {
	return &Host{
		LocalAddr: localAddr,
		Pool:      btdev.NewPool(),
		Ring:      hci.NewRing(),
	}
}

// Tick advances bring-up by one step if the previous step's command has
// completed, and is otherwise a no-op; callers drive this from the 10ms
// poll loop (spec §4.6). now is accepted for parity with the real poll
// loop's signature even though bring-up itself is event-driven, not timed.
func (h *Host) Tick(now time.Time) {
	_ = now
	if h.bringUpIdx >= len(bringUpSteps) || h.stepSent {
		return
	}
	step := bringUpSteps[h.bringUpIdx]
	h.Ring.PushCommand(hci.Command{Opcode: step.opcode, Params: step.params})
	h.stepSent = true
}

// OnCommandComplete advances the bring-up sequence and sets the matching
// controller flag once the controller acknowledges step h.bringUpIdx's
// opcode (spec §4.6: flags are driven by actual completions, not assumed).
func (h *Host) OnCommandComplete(opcode hci.Opcode) {
	if h.bringUpIdx >= len(bringUpSteps) {
		return
	}
	if bringUpSteps[h.bringUpIdx].opcode != opcode {
		return
	}
	switch h.bringUpIdx {
	case 0:
		h.ctrlFlags.Set(FlagControllerReset)
	case 1:
		h.ctrlFlags.Set(FlagLocalNameSet)
	case 2:
		h.ctrlFlags.Set(FlagCODSet)
	case 3:
		h.ctrlFlags.Set(FlagLocalVersionRead)
	case 4:
		h.ctrlFlags.Set(FlagEventFiltersSet)
	case 5:
		h.ctrlFlags.Set(FlagScanEnabled)
	case 6:
		h.ctrlFlags.Set(FlagInquiryRunning)
	}
	h.bringUpIdx++
	h.stepSent = false
	if h.bringUpIdx == len(bringUpSteps) {
		if h.ctrlFlags.Set(FlagCtrlReady) {
			h.Ring.SetReady()
		}
	}
}

// Ready reports whether the controller bring-up sequence has completed.
func (h *Host) Ready() bool {
	return h.ctrlFlags.Test(FlagCtrlReady)
}

// BringUpStepName exposes the current step's name for logging.
func (h *Host) BringUpStepName() string {
	if h.bringUpIdx >= len(bringUpSteps) {
		return "done"
	}
	return bringUpSteps[h.bringUpIdx].name
}

// Connect allocates a device slot for addr/name, classifies its type from
// the name prefix table and seeds the pairing PIN the caller should send
// in response to a PIN_CODE_REQUEST (spec §4.6).
func (h *Host) Connect(addr [6]byte, name string) (*btdev.Device, [6]byte, error) {
	d, err := h.Pool.Alloc(addr)
	if err != nil {
		return nil, [6]byte{}, fmt.Errorf("bthost: connect %x: %w", addr, err)
	}
	d.Name = name
	d.Type = btdev.BtType(ClassifyName(name))
	d.Flags.Set(btdev.FlagConnected)

	pin := PIN(btType(d.Type), h.LocalAddr, addr)
	if key, ok := h.LinkKeys.Lookup(addr); ok {
		_ = key // cache hit: caller skips PIN entry and authenticates directly
		d.Flags.Set(btdev.FlagPaired)
	}
	return d, pin, nil
}

// Disconnect frees a device's slot and zeroes its record (spec §4.6's
// zero-on-destroy invariant, enforced by btdev.Pool.Free).
func (h *Host) Disconnect(slot int) {
	h.Pool.Free(slot)
}
