package keyboard

// ResolveAt returns the topmost key whose horizontal span contains x.
// When several tiers overlap the point (they do by design), the key with
// the highest paint rank wins: Chromatic over Scale over Pentatonic over
// Triad. A miss returns nil; misses near key boundaries are a normal
// outcome of interaction, not an error.
//
// ResolveAt is a pure function of the snapshot and never mutates it.
func ResolveAt(set *KeySet, x float64) *Key {
	return resolve(set, func(k *Key) bool { return k.Contains(x) })
}

// ResolveAtXY is ResolveAt restricted to keys whose vertical span
// [0, height] also contains y.
func ResolveAtXY(set *KeySet, x, y float64) *Key {
	return resolve(set, func(k *Key) bool { return k.ContainsXY(x, y) })
}

func resolve(set *KeySet, hit func(*Key) bool) *Key {
	if set == nil {
		return nil
	}
	var best *Key
	for _, k := range set.Keys {
		if !hit(k) {
			continue
		}
		if best == nil || k.Tier.PaintRank() > best.Tier.PaintRank() {
			best = k
		}
	}
	return best
}
