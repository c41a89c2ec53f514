// Package theory classifies pitch classes against an ambient song key and
// the currently sounding chord.
//
// The package defines two closed enums. Tier describes how structurally
// important a pitch class is within the song key: triad tones are the most
// important, then pentatonic tones, then the remaining scale tones, and
// finally the chromatic leftovers. ChordRole describes the function a pitch
// class plays in the chord that is sounding right now, which is independent
// of its Tier.
//
// Consumers classify pitches through the Classifier interface. Context is
// the built-in implementation backed by a song key and an active chord.
package theory

// Tier is a pitch class's structural importance within the song key,
// ordered by harmonic specificity: Triad is the most important and
// Chromatic the least.
type Tier int

const (
	TierTriad Tier = iota
	TierPentatonic
	TierScale
	TierChromatic
)

var tierNames = [...]string{"triad", "pentatonic", "scale", "chromatic"}

// String returns the lowercase tier name.
func (t Tier) String() string {
	if t < TierTriad || t > TierChromatic {
		return "unknown"
	}
	return tierNames[t]
}

// Valid reports whether t is one of the four defined tiers.
func (t Tier) Valid() bool {
	return t >= TierTriad && t <= TierChromatic
}

// PaintRank returns the stacking rank used for paint order and hit
// resolution. It is the inverse of harmonic specificity: Chromatic paints
// topmost (highest rank) and Triad at the bottom, generalizing a piano's
// black-on-white convention to four tiers.
func (t Tier) PaintRank() int {
	return int(t)
}

// anchorPriority orders tiers for the recursive intra-group placement:
// the coarsest tier present anchors first, then finer tiers recurse on
// each side of it. Triad never participates (triads are the boundaries).
var anchorPriority = [...]Tier{TierPentatonic, TierScale, TierChromatic}

// AnchorOrder returns the non-triad tiers in the order the layout engine
// anchors them: Pentatonic, then Scale, then Chromatic.
func AnchorOrder() []Tier {
	order := make([]Tier, len(anchorPriority))
	copy(order, anchorPriority[:])
	return order
}

// ChordRole is a pitch class's function within the currently sounding
// chord. The zero value RoleNone means the pitch class is not a chord
// member.
type ChordRole int

const (
	RoleNone ChordRole = iota
	RoleRoot
	RoleThird
	RoleFifth
	RoleSeventh
	RoleExtension
)

var roleNames = [...]string{"none", "root", "third", "fifth", "seventh", "extension"}

// String returns the lowercase role name.
func (r ChordRole) String() string {
	if r < RoleNone || r > RoleExtension {
		return "unknown"
	}
	return roleNames[r]
}

// Valid reports whether r is one of the defined roles (including RoleNone).
func (r ChordRole) Valid() bool {
	return r >= RoleNone && r <= RoleExtension
}
