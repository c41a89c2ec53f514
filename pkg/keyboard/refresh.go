package keyboard

import (
	"github.com/google/uuid"

	"github.com/stratakeys/stratakeys/pkg/theory"
)

// Refresh runs the attribute-only pass: it reclassifies every key against
// the classifier and returns a snapshot in which only the keys whose
// Tier, Role, or Highlighted actually changed are replaced. Geometry is
// never touched: positions, widths, and heights are carried over
// unchanged, and unchanged keys keep their exact pointer so downstream
// renderers can skip them by identity.
//
// changed is false when every key classified identically, in which case
// the returned set is the input set itself and nothing should be
// published.
func Refresh(set *KeySet, cls theory.Classifier) (out *KeySet, changed bool) {
	if set == nil || len(set.Keys) == 0 {
		return set, false
	}

	keys := make([]*Key, len(set.Keys))
	for i, k := range set.Keys {
		tier := theory.ClassifyTier(cls, k.Pitch.Class)
		role, sounding := theory.ClassifyRole(cls, k.Pitch.Class)
		if tier == k.Tier && role == k.Role && sounding == k.Highlighted {
			keys[i] = k
			continue
		}
		patched := k.clone()
		patched.Tier = tier
		patched.Role = role
		patched.Highlighted = sounding
		keys[i] = patched
		changed = true
	}

	if !changed {
		return set, false
	}
	return &KeySet{
		Revision: uuid.New(),
		Keys:     keys,
		Width:    set.Width,
		Height:   set.Height,
	}, true
}
