package ps4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/btwired/bridge/internal/btdev"
)

func TestDS4FeedbackHasNoCRC(t *testing.T) {
	h := Handler{crc: false}
	buf := h.Feedback(&btdev.Device{}, 200, 0x0F)
	assert.Len(t, buf, outputReportLen-4)
	assert.Equal(t, uint8(200), buf[4])
}

func TestDualSenseFeedbackAppendsCRC(t *testing.T) {
	h := Handler{crc: true}
	buf := h.Feedback(&btdev.Device{}, 200, 0x0F)
	assert.Len(t, buf, outputReportLen)
}

func TestHandleShortReportIsNoop(t *testing.T) {
	h := Handler{}
	d := &btdev.Device{}
	err := h.Handle(d, nil)
	assert.NoError(t, err)
}
