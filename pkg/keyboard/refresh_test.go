package keyboard

import (
	"testing"

	"github.com/stratakeys/stratakeys/pkg/pitch"
	"github.com/stratakeys/stratakeys/pkg/theory"
)

// TestRefreshChordChange moves the sounding chord from C to G within the
// key of C major. Geometry stays identical, and only the keys whose
// chord role changed are replaced; every other key keeps its pointer.
func TestRefreshChordChange(t *testing.T) {
	ctx := cMajorContext(t)
	set := Build(Options{
		StartOctave: 4,
		EndOctave:   4,
		Width:       1200,
		Height:      300,
		Root:        pitch.C,
		Classifier:  ctx,
	})

	out, changed := Refresh(set, ctx.WithChord(mustChord(t, "G")))
	if !changed {
		t.Fatal("chord change reported no difference")
	}
	if out == set {
		t.Fatal("changed refresh returned the input set")
	}
	if out.Revision == set.Revision {
		t.Error("changed refresh kept the old revision")
	}
	if out.Len() != set.Len() {
		t.Fatalf("key count changed: %d vs %d", out.Len(), set.Len())
	}

	// C and E lose their roles, G turns fifth into root, B and D gain
	// roles. All other pitch classes are untouched.
	changedClasses := map[pitch.Class]bool{
		pitch.C: true, pitch.D: true, pitch.E: true, pitch.G: true, pitch.B: true,
	}
	for i := range set.Keys {
		old, cur := set.Keys[i], out.Keys[i]
		if cur.Position != old.Position || cur.Width != old.Width || cur.Height != old.Height {
			t.Errorf("%v geometry moved during refresh", old.Pitch)
		}
		if cur.Tier != old.Tier {
			t.Errorf("%v tier changed on a chord-only change", old.Pitch)
		}
		if changedClasses[old.Pitch.Class] {
			if cur == old {
				t.Errorf("%v should have been replaced", old.Pitch)
			}
		} else if cur != old {
			t.Errorf("%v replaced although its attributes are unchanged", old.Pitch)
		}
	}

	// Spot-check the new roles.
	if k := out.KeyFor(pitch.New(pitch.G, 4)); k.Role != theory.RoleRoot || !k.Highlighted {
		t.Errorf("G4 role = %v highlighted = %v, want root highlighted", k.Role, k.Highlighted)
	}
	if k := out.KeyFor(pitch.New(pitch.C, 4)); k.Role != theory.RoleNone || k.Highlighted {
		t.Errorf("C4 role = %v highlighted = %v, want none unhighlighted", k.Role, k.Highlighted)
	}
	if k := out.KeyFor(pitch.New(pitch.B, 4)); k.Role != theory.RoleThird || !k.Highlighted {
		t.Errorf("B4 role = %v highlighted = %v, want third highlighted", k.Role, k.Highlighted)
	}
}

// TestRefreshNoChange feeds the snapshot's own classifier back in: the
// input set comes back unchanged with changed == false.
func TestRefreshNoChange(t *testing.T) {
	ctx := cMajorContext(t)
	set := Build(Options{
		StartOctave: 4,
		EndOctave:   4,
		Width:       1200,
		Height:      300,
		Root:        pitch.C,
		Classifier:  ctx,
	})

	out, changed := Refresh(set, ctx)
	if changed {
		t.Error("identical classifier reported a change")
	}
	if out != set {
		t.Error("unchanged refresh returned a new set")
	}
}

// TestRefreshKeyChange swaps the whole song key. Tiers change but
// geometry still must not: a key change is an attribute pass, and only
// the next structural rebuild re-derives sizes from the new tiers.
func TestRefreshKeyChange(t *testing.T) {
	ctx := cMajorContext(t)
	set := Build(Options{
		StartOctave: 4,
		EndOctave:   4,
		Width:       1200,
		Height:      300,
		Root:        pitch.C,
		Classifier:  ctx,
	})

	out, changed := Refresh(set, ctx.WithKey(pitch.G, theory.ModeMajor))
	if !changed {
		t.Fatal("key change reported no difference")
	}
	// F is in C major but not G major; F# is the reverse.
	if k := out.KeyFor(pitch.New(pitch.F, 4)); k.Tier != theory.TierChromatic {
		t.Errorf("F4 tier = %v, want chromatic in G major", k.Tier)
	}
	if k := out.KeyFor(pitch.New(pitch.FSharp, 4)); k.Tier != theory.TierScale {
		t.Errorf("F#4 tier = %v, want scale in G major", k.Tier)
	}
	for i := range set.Keys {
		if out.Keys[i].Position != set.Keys[i].Position || out.Keys[i].Width != set.Keys[i].Width {
			t.Errorf("%v geometry moved during refresh", set.Keys[i].Pitch)
		}
	}
}

func TestRefreshNilSet(t *testing.T) {
	out, changed := Refresh(nil, cMajorContext(t))
	if out != nil || changed {
		t.Errorf("Refresh(nil) = (%v, %v), want (nil, false)", out, changed)
	}
}
