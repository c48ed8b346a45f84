package sdp

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHeader(t *testing.T) {
	buf := []byte{PDUServiceSearchReq, 0x00, 0x2A, 0x00, 0x03, 0xAA, 0xBB, 0xCC}
	h, rest, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, uint8(PDUServiceSearchReq), h.PDUID)
	assert.Equal(t, uint16(0x2A), h.TransactionID)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, rest)
}

func TestResponderServiceSearch(t *testing.T) {
	r := Responder{}
	req := []byte{PDUServiceSearchReq, 0x00, 0x01, 0x00, 0x00}
	resp, err := r.Handle(req)
	require.NoError(t, err)
	assert.Equal(t, uint8(PDUServiceSearchRsp), resp[0])
	assert.Equal(t, uint16(0x01), binary.BigEndian.Uint16(resp[1:3]))
}

func TestResponderServiceAttrReturnsDeviceIDRecord(t *testing.T) {
	r := Responder{}
	req := []byte{PDUServiceAttrReq, 0x01, 0x00, 0x00, 0x00}
	resp, err := r.Handle(req)
	require.NoError(t, err)
	assert.Equal(t, uint8(PDUServiceAttrRsp), resp[0])
	assert.NotEmpty(t, resp[5:])
}

func TestResponderUnknownPDUIsError(t *testing.T) {
	r := Responder{}
	req := []byte{0x7F, 0x00, 0x01, 0x00, 0x00}
	resp, err := r.Handle(req)
	require.NoError(t, err)
	assert.Equal(t, uint8(PDUErrorResponse), resp[0])
}
