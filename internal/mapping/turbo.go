package mapping

import "github.com/btwired/bridge/internal/generic"

// TurboAsserted reports whether a turbo-enabled button should read as
// pressed this frame. The button is asserted on every frame whose
// counter, ANDed with its cadence mask (cntMask), comes out to zero, so
// 1 in 2^popcount(cntMask) frames is asserted (spec §8 property 5 /
// scenario D: cntMask=0x04 -> frames 0-3 of every 8 asserted, 4 of 8).
func TurboAsserted(frameCounter uint32, cntMask uint32) bool {
	if cntMask == 0 {
		return true
	}
	return frameCounter&cntMask == 0
}

// ApplyTurbo clears a pressed turbo button's bit in plane.Value on frames
// where TurboAsserted is false for its per-bit cntMask entry; it never
// sets a bit. Nothing outside this package's tests calls it.
func ApplyTurbo(plane *generic.Btn, frameCounter uint32, turboMask uint32) {
	for bitIdx := 0; bitIdx < 32; bitIdx++ {
		b := uint32(1) << uint(bitIdx)
		if turboMask&b == 0 {
			continue
		}
		if plane.Value&b == 0 {
			continue
		}
		if !TurboAsserted(frameCounter, plane.CntMask[bitIdx]) {
			plane.Value &^= b
		}
	}
}
