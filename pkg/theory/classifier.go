package theory

import "github.com/stratakeys/stratakeys/pkg/pitch"

// Classifier supplies the harmonic context the layout engine consumes.
// TierOf reflects the ambient song key; ChordRoleOf and IsSounding reflect
// the transient chord. Implementations must be cheap: the layout engine
// calls them once per pitch during generation and again on every
// highlight refresh.
type Classifier interface {
	// TierOf returns the tier of a pitch class relative to the song key.
	TierOf(pc pitch.Class) Tier

	// ChordRoleOf returns the role of the pitch class in the currently
	// sounding chord. ok is false when the pitch class is not a chord
	// member, in which case the role is RoleNone.
	ChordRoleOf(pc pitch.Class) (role ChordRole, ok bool)

	// IsSounding reports whether the pitch class is a member of the
	// currently sounding chord, consistent with ChordRoleOf.
	IsSounding(pc pitch.Class) bool
}

// ClassifyTier wraps a classifier lookup with the conservative fallback:
// an out-of-range answer (a misbehaving external classifier) degrades to
// TierChromatic, the least visually prominent tier, instead of propagating
// a fault into the layout pass. A nil classifier classifies everything
// Chromatic.
func ClassifyTier(c Classifier, pc pitch.Class) Tier {
	if c == nil {
		return TierChromatic
	}
	t := c.TierOf(pc)
	if !t.Valid() {
		return TierChromatic
	}
	return t
}

// ClassifyRole wraps a chord role lookup the same way ClassifyTier wraps
// tier lookups: invalid answers and nil classifiers degrade to RoleNone.
func ClassifyRole(c Classifier, pc pitch.Class) (ChordRole, bool) {
	if c == nil {
		return RoleNone, false
	}
	role, ok := c.ChordRoleOf(pc)
	if !ok || !role.Valid() || role == RoleNone {
		return RoleNone, false
	}
	return role, true
}
