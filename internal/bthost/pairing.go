package bthost

// wiiNamePrefixes identifies Wii/WiiU remotes, which use the reversed
// local bdaddr as their PIN rather than the peer's own address (spec
// §4.6 pairing policy).
var wiiNamePrefixes = []string{"Nintendo RVL-CNT", "Nintendo RVL-WBC"}

// NamePrefixType maps a reported device name prefix to a BtType, the way
// the source's connecting-device classifier keys off the name before the
// HID descriptor is even available.
type NamePrefixType struct {
	Prefix string
	Type   btType
}

// btType is this file's own copy of btdev.BtType's numbering (same order,
// same values); Connect in bthost.go converts between the two.
type btType int

// NamePrefixTable is the closed, ordered list of name prefixes this bridge
// recognises (spec §4.6). First match wins; no match falls back to the
// generic HID profile.
var NamePrefixTable = []NamePrefixType{
	{"Nintendo RVL-CNT", btTypeWii},
	{"Nintendo RVL-WBC", btTypeWiiU},
	{"PLAYSTATION(R)3", btTypePS3},
	{"Wireless Controller", btTypePS4},
	{"DualSense", btTypePS5},
	{"Pro Controller", btTypeSwitch},
	{"Joy-Con", btTypeSwitch},
	{"Xbox Wireless Controller", btTypeXbox},
}

const (
	btTypeUnknown btType = iota
	btTypeHID
	btTypeWii
	btTypeWiiU
	btTypePS3
	btTypePS4
	btTypePS5
	btTypeSwitch
	btTypeXbox
)

// ClassifyName returns the BtType implied by a reported device name,
// or btTypeHID if nothing in NamePrefixTable matches (generic fallback).
func ClassifyName(name string) btType {
	for _, e := range NamePrefixTable {
		if len(name) >= len(e.Prefix) && name[:len(e.Prefix)] == e.Prefix {
			return e.Type
		}
	}
	return btTypeHID
}

// isWiiClass reports whether t uses the reversed-bdaddr PIN policy.
func isWiiClass(t btType) bool {
	return t == btTypeWii || t == btTypeWiiU
}

// PIN computes the legacy pairing PIN for a peer of the given type (spec
// §4.6): Wii-class peers expect the reversed local bdaddr, everything else
// expects its own address reversed back at it (the common "PIN == bdaddr"
// simple-pairing fallback this bridge uses when SSP is unavailable).
func PIN(t btType, localAddr, peerAddr [6]byte) [6]byte {
	if isWiiClass(t) {
		return reversed(localAddr)
	}
	return reversed(peerAddr)
}

func reversed(addr [6]byte) [6]byte {
	var out [6]byte
	for i := range addr {
		out[i] = addr[len(addr)-1-i]
	}
	return out
}
