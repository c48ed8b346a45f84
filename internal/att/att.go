// Package att implements the minimal Attribute Protocol responder used for
// BLE-class HID peers: a fixed handle map and READ_BLOB continuation (spec
// §4.4).
package att

import (
	"encoding/binary"
	"fmt"
)

// Opcodes this responder understands.
const (
	OpErrorResponse    = 0x01
	OpReadByTypeReq    = 0x08
	OpReadByTypeRsp    = 0x09
	OpReadReq          = 0x0A
	OpReadRsp          = 0x0B
	OpReadBlobReq      = 0x0C
	OpReadBlobRsp      = 0x0D
)

// Handle ranges reserved for each fixed service (spec §4.4).
const (
	HandleGATTStart    = 0x0001
	HandleGATTEnd      = 0x0003
	HandleGAPStart     = 0x0014
	HandleGAPEnd       = 0x001B
	HandleBatteryStart = 0x0028
	HandleBatteryEnd   = 0x002C
	HandleVendorStart  = 0x0040
	HandleVendorEnd    = 0x004B
)

// VendorServiceUUID is the 128-bit UUID of the bridge's vendor service,
// exposed at HandleVendorStart..HandleVendorEnd.
var VendorServiceUUID = [16]byte{
	0x56, 0x83, 0x0F, 0x56, 0x51, 0x80, 0xFA, 0xB0,
	0x31, 0x4B, 0x2F, 0xA1, 0x76, 0x79, 0x9A, 0x00,
}

// MaxBlobChunk bounds a single READ_BLOB_RSP payload (spec §4.4).
const MaxBlobChunk = 512

// attr is one fixed-value attribute in the handle table.
type attr struct {
	handle uint16
	value  []byte
}

// Server answers READ_REQ/READ_BLOB_REQ against a fixed handle table built
// once at construction; there is no attribute database to mutate at
// runtime.
type Server struct {
	byHandle map[uint16]attr
}

// NewServer builds the fixed handle table (spec §4.4's four ranges). Only
// four handles carry a value: the GATT service declaration, the GAP
// device name, the battery level and the vendor service UUID. Every other
// handle, inside the four ranges or not, is absent and reads as an
// unknown-handle error.
func NewServer(deviceName string) *Server {
	s := &Server{byHandle: make(map[uint16]attr)}

	s.set(0x0001, []byte{0x00, 0x18}) // GATT primary service decl
	s.set(0x0014, []byte(deviceName))
	s.set(0x0028, []byte{100}) // battery level, reported full

	vendor := make([]byte, 16)
	copy(vendor, VendorServiceUUID[:])
	s.set(HandleVendorStart, vendor)

	return s
}

func (s *Server) set(handle uint16, value []byte) {
	s.byHandle[handle] = attr{handle: handle, value: value}
}

// ReadReq answers a READ_REQ for handle: the full value if it fits in one
// PDU, otherwise ATT_ERROR_RESPONSE is never returned here — a long
// attribute always succeeds, the caller then issues READ_BLOB_REQ for the
// remainder, per spec §4.4.
func (s *Server) ReadReq(handle uint16) ([]byte, error) {
	a, ok := s.byHandle[handle]
	if !ok {
		return nil, fmt.Errorf("att: unknown handle 0x%04X", handle)
	}
	return a.value, nil
}

// ReadBlobReq answers a READ_BLOB_REQ for handle starting at offset,
// returning up to MaxBlobChunk bytes (spec §4.4).
func (s *Server) ReadBlobReq(handle uint16, offset uint16) ([]byte, error) {
	a, ok := s.byHandle[handle]
	if !ok {
		return nil, fmt.Errorf("att: unknown handle 0x%04X", handle)
	}
	if int(offset) > len(a.value) {
		return nil, fmt.Errorf("att: offset %d beyond value length %d", offset, len(a.value))
	}
	end := len(a.value)
	if end-int(offset) > MaxBlobChunk {
		end = int(offset) + MaxBlobChunk
	}
	return a.value[offset:end], nil
}

// EncodeReadRsp wraps a value in an ATT_READ_RSP PDU.
func EncodeReadRsp(value []byte) []byte {
	buf := make([]byte, 1+len(value))
	buf[0] = OpReadRsp
	copy(buf[1:], value)
	return buf
}

// EncodeReadBlobRsp wraps a chunk in an ATT_READ_BLOB_RSP PDU.
func EncodeReadBlobRsp(chunk []byte) []byte {
	buf := make([]byte, 1+len(chunk))
	buf[0] = OpReadBlobRsp
	copy(buf[1:], chunk)
	return buf
}

// EncodeErrorRsp builds an ATT_ERROR_RESPONSE for opcode/handle/errCode.
func EncodeErrorRsp(opcode uint8, handle uint16, errCode uint8) []byte {
	buf := make([]byte, 5)
	buf[0] = OpErrorResponse
	buf[1] = opcode
	binary.LittleEndian.PutUint16(buf[2:4], handle)
	buf[4] = errCode
	return buf
}
