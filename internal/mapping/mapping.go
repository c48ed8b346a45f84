// Package mapping implements the source-to-destination button/axis
// mapping engine (spec §4.5/§9, adapter_mapping/adapter_map_from_btn in
// the original source). One input device's generic.Ctrl plus its ordered
// rule list produces a per-output-port bitmask of which ports were
// touched this cycle, consumed by the encoder dispatch loop.
package mapping

import (
	"github.com/btwired/bridge/internal/config"
	"github.com/btwired/bridge/internal/generic"
)

// Engine runs one device's mapping rules against its Ctrl sample and a
// set of output port Ctrls, exactly mirroring adapter_mapping's plane
// classification (0..31 pad, 32..63 kb-mod, 64..95 kb-main, 96+ kb-extra).
type Engine struct {
	Outputs []*generic.Ctrl // indexed by dst_id (wired port)
}

// Run applies in.Rules against src, writing into e.Outputs, and returns
// the bitmask of output ports touched this cycle (the source's out_mask).
func (e *Engine) Run(src *generic.Ctrl, in *config.InCfg) uint32 {
	var outMask uint32
	for i := range in.Rules {
		rule := &in.Rules[i]
		plane, ok := planeForSrc(src, rule.SrcBtn)
		if !ok {
			continue
		}
		if plane == generic.PlanePad && src.Desc[generic.PlanePad]&bit(rule.SrcBtn) != 0 {
			outMask |= e.mapFromAxis(rule)
		} else {
			outMask |= e.mapFromBtn(src, rule, plane)
		}
	}
	return outMask
}

// planeForSrc classifies rule.SrcBtn into one of the four bit planes the
// same way adapter_mapping's cascading if/else does, consulting src.Mask
// so an axis-only device (no keyboard planes populated) never matches a
// higher plane by accident.
func planeForSrc(src *generic.Ctrl, srcBtn uint8) (int, bool) {
	switch {
	case src.Mask[generic.PlanePad] != 0 && srcBtn < 32 && src.Mask[generic.PlanePad]&bit(srcBtn) != 0:
		return generic.PlanePad, true
	case src.Mask[generic.PlaneKBMod] != 0 && srcBtn >= 32 && srcBtn < 64 && src.Mask[generic.PlaneKBMod]&bit(srcBtn) != 0:
		return generic.PlaneKBMod, true
	case src.Mask[generic.PlaneKBMain] != 0 && srcBtn >= 64 && srcBtn < 96 && src.Mask[generic.PlaneKBMain]&bit(srcBtn) != 0:
		return generic.PlaneKBMain, true
	case src.Mask[generic.PlaneKBExtra] != 0 && srcBtn >= 96 && src.Mask[generic.PlaneKBExtra]&bit(srcBtn) != 0:
		return generic.PlaneKBExtra, true
	}
	return 0, false
}

func bit(b uint8) uint32 { return 1 << uint(b&0x1F) }

// mapFromAxis is the engine's hook for axis-sourced rules; the original
// source's adapter_map_from_axis is itself an empty stub (no axis-to-*
// mapping rule type ships), so this mirrors that: axis sources currently
// contribute no output mask.
func (e *Engine) mapFromAxis(rule *config.MapRule) uint32 {
	return 0
}

// mapFromBtn applies one button-sourced rule to the destination port's
// Ctrl, following adapter_map_from_btn's four-plane destination
// classification and its button-to-axis synthesis when the destination
// bit is described as an axis.
func (e *Engine) mapFromBtn(src *generic.Ctrl, rule *config.MapRule, srcPlane int) uint32 {
	if int(rule.DstID) >= len(e.Outputs) {
		return 0
	}
	out := e.Outputs[rule.DstID]
	dst := rule.DstBtn
	pressed := src.Btns[srcPlane].Value&bit(rule.SrcBtn) != 0

	switch {
	case out.Mask[generic.PlanePad] != 0 && dst < 32 && out.Mask[generic.PlanePad]&bit(dst) != 0:
		if pressed {
			if out.Desc[generic.PlanePad]&bit(dst) != 0 {
				axisID := generic.BtnIDToAxis(int(dst))
				meta := out.Axes[axisID].Meta
				sign := generic.BtnSign(meta.Polarity, int(dst))
				value := float64(meta.AbsMax) * float64(sign) * (float64(rule.PercMax) / 100)
				out.Axes[axisID].Value = int32(value)
			} else {
				out.Btns[generic.PlanePad].Value |= bit(dst)
			}
		}
		out.MapMask[generic.PlanePad] |= bit(dst)
	case out.Mask[generic.PlaneKBMod] != 0 && dst >= 32 && dst < 64 && out.Mask[generic.PlaneKBMod]&bit(dst) != 0:
		if pressed {
			out.Btns[generic.PlaneKBMod].Value |= bit(dst)
		}
		out.MapMask[generic.PlaneKBMod] |= bit(dst)
	case out.Mask[generic.PlaneKBMain] != 0 && dst >= 64 && dst < 96 && out.Mask[generic.PlaneKBMain]&bit(dst) != 0:
		if pressed {
			out.Btns[generic.PlaneKBMain].Value |= bit(dst)
		}
		out.MapMask[generic.PlaneKBMain] |= bit(dst)
	case out.Mask[generic.PlaneKBExtra] != 0 && dst >= 96 && out.Mask[generic.PlaneKBExtra]&bit(dst) != 0:
		if pressed {
			out.Btns[generic.PlaneKBExtra].Value |= bit(dst)
		}
		out.MapMask[generic.PlaneKBExtra] |= bit(dst)
	default:
		return 0
	}
	return 1 << uint(rule.DstID)
}
