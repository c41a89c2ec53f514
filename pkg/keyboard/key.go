package keyboard

import (
	"github.com/google/uuid"

	"github.com/stratakeys/stratakeys/pkg/pitch"
	"github.com/stratakeys/stratakeys/pkg/theory"
)

// Key is the positioned, renderable unit: one pitch, its tier, its role
// in the sounding chord, and its rectangle. Position is the left edge in
// px; keys are anchored to the top of the container, so the vertical span
// is [0, Height].
//
// Keys inside a published KeySet must be treated as immutable. The
// attribute-refresh pass replaces changed keys wholesale and keeps the
// same pointer for unchanged ones, so consumers can use identity to skip
// re-render work.
type Key struct {
	Pitch       pitch.Pitch
	Tier        theory.Tier
	Role        theory.ChordRole
	Highlighted bool

	Width    float64
	Height   float64
	Position float64
}

// Right returns the key's right edge, Position + Width.
func (k *Key) Right() float64 { return k.Position + k.Width }

// CenterX returns the key's horizontal center point.
func (k *Key) CenterX() float64 { return k.Position + k.Width/2 }

// Contains reports whether x falls within the key's horizontal span.
func (k *Key) Contains(x float64) bool {
	return x >= k.Position && x < k.Right()
}

// ContainsXY reports whether the point falls within the key's rectangle.
func (k *Key) ContainsXY(x, y float64) bool {
	return k.Contains(x) && y >= 0 && y <= k.Height
}

// clone returns a copy of the key for attribute patching.
func (k *Key) clone() *Key {
	c := *k
	return &c
}

// KeySet is one immutable layout snapshot: the ordered keys of a single
// generation pass plus the container dimensions they were laid out for.
// Keys are ordered by absolute chromatic time (octave, then chromatic
// index). Revision changes on every publish so consumers can detect
// republication without comparing contents.
type KeySet struct {
	Revision uuid.UUID
	Keys     []*Key

	Width  float64
	Height float64
}

// Len returns the number of keys in the set.
func (s *KeySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Keys)
}

// KeyFor returns the key for the given pitch, or nil if the pitch is
// outside the set's octave range.
func (s *KeySet) KeyFor(p pitch.Pitch) *Key {
	if s == nil {
		return nil
	}
	want := p.ChromaticTime()
	for _, k := range s.Keys {
		if k.Pitch.ChromaticTime() == want {
			return k
		}
	}
	return nil
}

// Tiered returns the keys of one tier, preserving chromatic-time order.
func (s *KeySet) Tiered(tier theory.Tier) []*Key {
	if s == nil {
		return nil
	}
	var keys []*Key
	for _, k := range s.Keys {
		if k.Tier == tier {
			keys = append(keys, k)
		}
	}
	return keys
}
