// Package l2cap implements the minimal per-channel state machine and MTU
// negotiation the bridge needs to reach the HID profile's interrupt/control
// channels (spec §4.2).
package l2cap

import "fmt"

// PSM identifies a well-known protocol/service multiplexer.
type PSM uint16

const (
	PSMSDP  PSM = 0x0001
	PSMHIDControl PSM = 0x0011
	PSMHIDInterrupt PSM = 0x0013
)

// State is a channel's position in the connection state machine (spec
// §4.2): IDLE -> CONN_REQ_SENT -> CONNECTED -> LCONF_SENT ->
// (LCONF_DONE && RCONF_DONE) -> OPEN -> CLOSING -> IDLE.
type State int

const (
	StateIdle State = iota
	StateConnReqSent
	StateConnected
	StateConfigSent
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateConnReqSent:
		return "CONN_REQ_SENT"
	case StateConnected:
		return "CONNECTED"
	case StateConfigSent:
		return "LCONF_SENT"
	case StateOpen:
		return "OPEN"
	case StateClosing:
		return "CLOSING"
	default:
		return "UNKNOWN"
	}
}

// ProposedMTU is offered to peers in our config request (spec §4.2).
const ProposedMTU = 0xFFFF

// MaxAcceptedMTU is the largest remote MTU this bridge will honour; larger
// requests are clamped, never rejected.
const MaxAcceptedMTU = 0x02A0

// Channel tracks one L2CAP channel's local/remote CIDs, negotiated MTU and
// state. One Channel exists per (device, PSM) pair.
type Channel struct {
	PSM       PSM
	LocalCID  uint16
	RemoteCID uint16

	state      State
	localDone  bool // LCONF_DONE
	remoteDone bool // RCONF_DONE

	LocalMTU  uint16
	RemoteMTU uint16

	ident uint8 // this channel's own monotonic signalling identifier; not shared across a device's channels
}

// NewChannel starts a channel IDLE with a caller-assigned local CID.
func NewChannel(psm PSM, localCID uint16) *Channel {
	return &Channel{PSM: psm, LocalCID: localCID, state: StateIdle, LocalMTU: ProposedMTU}
}

// State returns the channel's current state.
func (c *Channel) State() State { return c.state }

// NextIdent returns the next signalling identifier from this channel's
// own counter, wrapping 1..255 (0 is reserved, per the core spec).
func (c *Channel) NextIdent() uint8 {
	c.ident++
	if c.ident == 0 {
		c.ident = 1
	}
	return c.ident
}

// ConnectReqSent moves IDLE -> CONN_REQ_SENT after we send (or receive and
// accept) a Connection Request.
func (c *Channel) ConnectReqSent(remoteCID uint16) error {
	if c.state != StateIdle {
		return fmt.Errorf("l2cap: ConnectReqSent from %s", c.state)
	}
	c.RemoteCID = remoteCID
	c.state = StateConnReqSent
	return nil
}

// ConnectionComplete moves CONN_REQ_SENT -> CONNECTED on a successful
// Connection Response.
func (c *Channel) ConnectionComplete() error {
	if c.state != StateConnReqSent {
		return fmt.Errorf("l2cap: ConnectionComplete from %s", c.state)
	}
	c.state = StateConnected
	return nil
}

// SendConfigRequest moves CONNECTED -> LCONF_SENT, proposing our MTU.
func (c *Channel) SendConfigRequest() error {
	if c.state != StateConnected {
		return fmt.Errorf("l2cap: SendConfigRequest from %s", c.state)
	}
	c.state = StateConfigSent
	return nil
}

// clampMTU applies MaxAcceptedMTU without failing the negotiation.
func clampMTU(mtu uint16) uint16 {
	if mtu > MaxAcceptedMTU || mtu == 0 {
		return MaxAcceptedMTU
	}
	return mtu
}

// RemoteConfigured records the peer's Config Request (their proposed MTU
// for the flow our local side sends) and marks RCONF_DONE.
func (c *Channel) RemoteConfigured(remoteProposedMTU uint16) {
	c.RemoteMTU = clampMTU(remoteProposedMTU)
	c.remoteDone = true
	c.maybeOpen()
}

// LocalConfigured marks LCONF_DONE once our Config Response has gone out
// (always accepted, spec §4.2's "accept up to 0x02A0").
func (c *Channel) LocalConfigured() {
	c.localDone = true
	c.maybeOpen()
}

func (c *Channel) maybeOpen() {
	if c.state == StateConfigSent && c.localDone && c.remoteDone {
		c.state = StateOpen
	}
}

// Close moves any non-IDLE state to CLOSING; a subsequent Disconnection
// Complete event (driven by the caller) resets to IDLE via Reset.
func (c *Channel) Close() {
	if c.state != StateIdle {
		c.state = StateClosing
	}
}

// Reset returns the channel to IDLE so its CID slot can be reused.
func (c *Channel) Reset() {
	*c = Channel{PSM: c.PSM, LocalCID: c.LocalCID, state: StateIdle, LocalMTU: ProposedMTU}
}

// IsOpen reports whether data may flow on this channel.
func (c *Channel) IsOpen() bool { return c.state == StateOpen }
