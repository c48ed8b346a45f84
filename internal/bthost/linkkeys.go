package bthost

// LinkKeyStoreSize is the fixed round-robin capacity (spec §4.6): once
// full, the oldest entry is evicted regardless of use recency.
const LinkKeyStoreSize = 16

// LinkKey is one cached pairing key.
type LinkKey struct {
	Addr [6]byte
	Key  [16]byte
	used bool
}

// LinkKeyStore is a fixed 16-slot round-robin cache, grounded on the pool
// allocation idiom in btdev but with overwrite-oldest semantics instead of
// alloc/free: link keys have no explicit lifetime, they just age out.
type LinkKeyStore struct {
	entries [LinkKeyStoreSize]LinkKey
	next    int // next slot to overwrite when full
}

// Lookup returns the cached key for addr, or ok=false on a cache miss.
func (s *LinkKeyStore) Lookup(addr [6]byte) (key [16]byte, ok bool) {
	for _, e := range s.entries {
		if e.used && e.Addr == addr {
			return e.Key, true
		}
	}
	return [16]byte{}, false
}

// Store saves or updates addr's key. If addr is already cached the
// existing slot is overwritten in place; otherwise the next round-robin
// slot is used, evicting whatever was there.
func (s *LinkKeyStore) Store(addr [6]byte, key [16]byte) {
	for i := range s.entries {
		if s.entries[i].used && s.entries[i].Addr == addr {
			s.entries[i].Key = key
			return
		}
	}
	s.entries[s.next] = LinkKey{Addr: addr, Key: key, used: true}
	s.next = (s.next + 1) % LinkKeyStoreSize
}

// Forget removes addr's cached key, if any, e.g. on an unpair request.
func (s *LinkKeyStore) Forget(addr [6]byte) {
	for i := range s.entries {
		if s.entries[i].used && s.entries[i].Addr == addr {
			s.entries[i] = LinkKey{}
		}
	}
}
