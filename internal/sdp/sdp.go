// Package sdp implements the minimal Service Discovery Protocol responder
// the bridge needs (spec §4.3): service searches get an empty result, and
// every attribute request gets the same canned record, whatever the peer
// or the requested service class.
package sdp

import "encoding/binary"

// PDU ids this responder understands; any other request PDU id is
// answered with an error response.
const (
	PDUErrorResponse        = 0x01
	PDUServiceSearchReq      = 0x02
	PDUServiceSearchRsp      = 0x03
	PDUServiceAttrReq        = 0x04
	PDUServiceAttrRsp        = 0x05
	PDUServiceSearchAttrReq  = 0x06
	PDUServiceSearchAttrRsp  = 0x07
)

// deviceIDRecord is a canned, minimal service record returned verbatim to
// every SVC_ATTR/SVC_SEARCH_ATTR request; the request's service class and
// attribute list are not examined.
var deviceIDRecord = []byte{
	0x09, 0x02, 0x01, // ServiceRecordHandle
	0x00, 0x00, 0x00, 0x01,
}

// Header is the common SDP PDU header: PDU id, transaction id (big-endian,
// per spec §4.3), parameter length.
type Header struct {
	PDUID         uint8
	TransactionID uint16
	ParamLength   uint16
}

// DecodeHeader parses the 5-byte SDP header prefix.
func DecodeHeader(buf []byte) (Header, []byte, error) {
	if len(buf) < 5 {
		return Header{}, nil, errShort
	}
	h := Header{
		PDUID:         buf[0],
		TransactionID: binary.BigEndian.Uint16(buf[1:3]),
		ParamLength:   binary.BigEndian.Uint16(buf[3:5]),
	}
	return h, buf[5:], nil
}

var errShort = sdpErr("sdp: header too short")

type sdpErr string

func (e sdpErr) Error() string { return string(e) }

// Responder answers SVC_SEARCH/SVC_ATTR/SVC_SEARCH_ATTR requests.
type Responder struct{}

// Handle builds the response PDU for one request, mirroring its
// transaction id as required by the core spec.
func (r Responder) Handle(req []byte) ([]byte, error) {
	h, _, err := DecodeHeader(req)
	if err != nil {
		return nil, err
	}
	switch h.PDUID {
	case PDUServiceSearchReq:
		return encodeHeader(PDUServiceSearchRsp, h.TransactionID, []byte{0x00, 0x00, 0x00, 0x00}), nil
	case PDUServiceAttrReq, PDUServiceSearchAttrReq:
		pduID := uint8(PDUServiceAttrRsp)
		if h.PDUID == PDUServiceSearchAttrReq {
			pduID = PDUServiceSearchAttrRsp
		}
		params := make([]byte, 2, 2+len(deviceIDRecord))
		binary.BigEndian.PutUint16(params, uint16(len(deviceIDRecord)))
		params = append(params, deviceIDRecord...)
		return encodeHeader(pduID, h.TransactionID, params), nil
	default:
		return encodeHeader(PDUErrorResponse, h.TransactionID, []byte{0x00, 0x01}), nil
	}
}

func encodeHeader(pduID uint8, txID uint16, params []byte) []byte {
	buf := make([]byte, 5+len(params))
	buf[0] = pduID
	binary.BigEndian.PutUint16(buf[1:3], txID)
	binary.BigEndian.PutUint16(buf[3:5], uint16(len(params)))
	copy(buf[5:], params)
	return buf
}
