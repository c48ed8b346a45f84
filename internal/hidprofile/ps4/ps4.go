// Package ps4 implements the hidprofile.Handler for DualShock4/DualSense
// peers: an empty handshake (both report pad data from connection), the
// decode.ps4 input decoder, and rumble/LED feedback with DualSense's
// CRC-32 footer (spec §4.7, §4.9, §4.12 supplemented feature).
package ps4

import (
	"hash/crc32"

	"github.com/btwired/bridge/internal/btdev"
	"github.com/btwired/bridge/internal/decode/ps4"
	"github.com/btwired/bridge/internal/hidprofile"
)

func init() {
	hidprofile.Register(btdev.BtTypePS4, Handler{})
	hidprofile.Register(btdev.BtTypePS5, Handler{crc: true})
}

// Handler implements hidprofile.Handler for both DS4 (crc=false) and
// DualSense (crc=true, needs the feedback CRC-32 footer).
type Handler struct {
	crc bool
}

var _ hidprofile.Handler = Handler{}

// Init needs no handshake reports: both controllers stream 0x11 reports
// unprompted once the HID interrupt channel opens.
func (Handler) Init(d *btdev.Device) [][]byte { return nil }

func (h Handler) Handle(d *btdev.Device, report []byte) error {
	if len(report) == 0 {
		return nil
	}
	dec := ps4.Decoder{}
	return dec.Decode(report[1:], &d.Ctrl, &d.RawMaps[0])
}

// outputReportLen is the fixed 0x11-style feedback report size; short
// reports are zero-padded so the CRC footer lands at a stable offset.
const outputReportLen = 78

func (h Handler) Feedback(d *btdev.Device, rumble uint8, led uint8) []byte {
	buf := make([]byte, outputReportLen)
	buf[0] = 0x11
	buf[1] = 0xC0 // HID BT output report id + flags
	buf[2] = 0x20
	buf[4] = rumble // weak motor
	buf[5] = rumble // strong motor
	buf[6] = led    // LED red channel; green/blue left at zero, spec has no color concept

	if !h.crc {
		return buf[:outputReportLen-4]
	}
	sum := crc32.ChecksumIEEE(buf[:outputReportLen-4])
	end := outputReportLen - 4
	buf[end] = byte(sum)
	buf[end+1] = byte(sum >> 8)
	buf[end+2] = byte(sum >> 16)
	buf[end+3] = byte(sum >> 24)
	return buf
}
