package att

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerVendorServiceHandle(t *testing.T) {
	s := NewServer("btbridge")
	val, err := s.ReadReq(HandleVendorStart)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(val, VendorServiceUUID[:]))
}

func TestReadReqUnknownHandle(t *testing.T) {
	s := NewServer("btbridge")
	_, err := s.ReadReq(0x9999)
	assert.Error(t, err)
}

func TestReadBlobChunking(t *testing.T) {
	s := NewServer("btbridge")
	long := bytes.Repeat([]byte{0x42}, MaxBlobChunk+100)
	s.set(0x0099, long)

	chunk, err := s.ReadBlobReq(0x0099, 0)
	require.NoError(t, err)
	assert.Len(t, chunk, MaxBlobChunk)

	rest, err := s.ReadBlobReq(0x0099, MaxBlobChunk)
	require.NoError(t, err)
	assert.Len(t, rest, 100)
}

func TestReadBlobOffsetBeyondValue(t *testing.T) {
	s := NewServer("btbridge")
	_, err := s.ReadBlobReq(HandleVendorStart, 9999)
	assert.Error(t, err)
}

func TestEncodeReadRsp(t *testing.T) {
	buf := EncodeReadRsp([]byte{0x01, 0x02})
	assert.Equal(t, []byte{OpReadRsp, 0x01, 0x02}, buf)
}
