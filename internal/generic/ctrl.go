// Package generic defines the canonical controller state every wireless
// decoder produces and every wired encoder consumes (spec §3, generic_ctrl).
package generic

// Axis identifiers shared by decoders, the mapping engine and encoders.
// The first six cover every controller this bridge speaks; the
// remaining ten exist for PS3/PSX/PS2 pressure-sensitive buttons
// (DualShock2 "full analog" mode), which report D-pad and face-button
// force as an analog sample rather than a plain press/release bit.
const (
	AxisLX = iota
	AxisLY
	AxisRX
	AxisRY
	AxisTrigL
	AxisTrigR
	AxisTrigLS // L1 pressure
	AxisTrigRS // R1 pressure
	AxisDPadL
	AxisDPadR
	AxisDPadD
	AxisDPadU
	AxisBtnL // face button west (square)
	AxisBtnR // face button east (circle)
	AxisBtnD // face button south (cross)
	AxisBtnU // face button north (triangle)
	AxisMax
	AxisNone = 0xFF
)

// Canonical button ids, one per bit of btns[0] (the "pad" plane). These are
// the positions generic_btns_mask indexes in the source.
const (
	PadLXLeft = iota
	PadLXRight
	PadLYDown
	PadLYUp
	PadRXLeft
	PadRXRight
	PadRYDown
	PadRYUp
	PadLDLeft
	PadLDRight
	PadLDDown
	PadLDUp
	PadRDLeft
	PadRDRight
	PadRDDown
	PadRDUp
	PadRBLeft
	PadRBRight
	PadRBDown
	PadRBUp
	PadMM
	PadMS
	PadMT
	PadMQ
	PadLM
	PadLS
	PadLT
	PadLJ
	PadRM
	PadRS
	PadRT
	PadRJ
)

// Plane indexes into btns/mask/desc/map_mask: pad, keyboard modifiers,
// keyboard main, keyboard extra (spec §3).
const (
	PlanePad = iota
	PlaneKBMod
	PlaneKBMain
	PlaneKBExtra
	PlaneCount
)

// GenericBtnsMask mirrors the source's generic_btns_mask[32] table: bit i
// of btns[0] corresponds to canonical button PadXxx == i.
var GenericBtnsMask [32]uint32

func init() {
	for i := range GenericBtnsMask {
		GenericBtnsMask[i] = 1 << uint(i)
	}
}

// Meta describes one axis's calibration: neutral point, absolute and
// logical bounds, deadzone, polarity and whether the axis reports relative
// deltas (e.g. a mouse) rather than absolute position.
type Meta struct {
	Neutral    int32
	AbsMax     int32
	SizeMin    int32
	SizeMax    int32
	LogicalMin int32
	LogicalMax int32
	Deadzone   int32
	Polarity   uint32
	Relative   bool
}

// Axis is one entry of ctrl.Axes: a signed sample plus a pointer to the
// shared calibration metadata for its slot.
type Axis struct {
	Value   int32
	Meta    *Meta
	CntMask uint32 // turbo cadence counter for axis-as-button rules
}

// Btn holds the 32-bit plane value plus its per-button turbo cadence
// counters, populated by the mapping engine for encoders to consume.
type Btn struct {
	Value   uint32
	CntMask [32]uint32
}

// Ctrl is the canonical controller state (generic_ctrl). One instance
// represents a single source device's current sample (ctrl_input) or a
// single wired port's pending output (ctrl_output[port]).
type Ctrl struct {
	Index int // output port / device slot this instance belongs to

	Btns [PlaneCount]Btn
	Mask [PlaneCount]uint32 // which bits of each plane are meaningful
	Desc [PlaneCount]uint32 // which meaningful bits denote axes, not buttons

	Axes [AxisMax]Axis

	MapMask [PlaneCount]uint32 // which destination bits were written this cycle
}

// Clear zeroes button planes and turn-cycle bookkeeping without touching
// Mask/Desc/Axes[*].Meta, mirroring the source's per-report "clear
// ctrl_data" step (spec §4.5 step 2) which never clears calibration.
func (c *Ctrl) Clear() {
	for i := range c.Btns {
		c.Btns[i] = Btn{}
	}
	c.MapMask = [PlaneCount]uint32{}
}

// BtnIDToAxis maps a canonical pad-button id to the axis it shares a
// direction with (e.g. PadLXLeft/PadLXRight both drive AxisLX), mirroring
// adapter.c's btn_id_to_axis.
func BtnIDToAxis(btnID int) int {
	switch btnID {
	case PadLXLeft, PadLXRight:
		return AxisLX
	case PadLYDown, PadLYUp:
		return AxisLY
	case PadRXLeft, PadRXRight:
		return AxisRX
	case PadRYDown, PadRYUp:
		return AxisRY
	case PadLM:
		return AxisTrigL
	case PadRM:
		return AxisTrigR
	case PadLT:
		return AxisTrigLS
	case PadRT:
		return AxisTrigRS
	case PadLDLeft:
		return AxisDPadL
	case PadLDRight:
		return AxisDPadR
	case PadLDDown:
		return AxisDPadD
	case PadLDUp:
		return AxisDPadU
	case PadRBLeft:
		return AxisBtnL
	case PadRBRight:
		return AxisBtnR
	case PadRBDown:
		return AxisBtnD
	case PadRBUp:
		return AxisBtnU
	}
	return AxisNone
}

// AxisToBtnMask is the inverse of BtnIDToAxis: the pair of pad-button bits
// an axis id corresponds to (adapter.c's axis_to_btn_mask).
func AxisToBtnMask(axis int) uint32 {
	switch axis {
	case AxisLX:
		return GenericBtnsMask[PadLXLeft] | GenericBtnsMask[PadLXRight]
	case AxisLY:
		return GenericBtnsMask[PadLYDown] | GenericBtnsMask[PadLYUp]
	case AxisRX:
		return GenericBtnsMask[PadRXLeft] | GenericBtnsMask[PadRXRight]
	case AxisRY:
		return GenericBtnsMask[PadRYDown] | GenericBtnsMask[PadRYUp]
	case AxisTrigL:
		return GenericBtnsMask[PadLM]
	case AxisTrigR:
		return GenericBtnsMask[PadRM]
	case AxisTrigLS:
		return GenericBtnsMask[PadLT]
	case AxisTrigRS:
		return GenericBtnsMask[PadRT]
	case AxisDPadL:
		return GenericBtnsMask[PadLDLeft]
	case AxisDPadR:
		return GenericBtnsMask[PadLDRight]
	case AxisDPadD:
		return GenericBtnsMask[PadLDDown]
	case AxisDPadU:
		return GenericBtnsMask[PadLDUp]
	case AxisBtnL:
		return GenericBtnsMask[PadRBLeft]
	case AxisBtnR:
		return GenericBtnsMask[PadRBRight]
	case AxisBtnD:
		return GenericBtnsMask[PadRBDown]
	case AxisBtnU:
		return GenericBtnsMask[PadRBUp]
	}
	return 0
}

// BtnSign reports the direction (+1/-1) a given pad-button id contributes
// to its axis, inverted by polarity (adapter.c's btn_sign).
func BtnSign(polarity uint32, btnID int) int32 {
	switch btnID {
	case PadLXRight, PadLYUp, PadRXRight, PadRYUp, PadLM, PadRM:
		if polarity != 0 {
			return -1
		}
		return 1
	case PadLXLeft, PadLYDown, PadRYDown, PadRXLeft:
		if polarity != 0 {
			return 1
		}
		return -1
	}
	return 1
}
