package keyboard

import (
	"testing"

	"github.com/stratakeys/stratakeys/pkg/pitch"
	"github.com/stratakeys/stratakeys/pkg/theory"
)

func referenceSet(t *testing.T) *KeySet {
	t.Helper()
	return Build(Options{
		StartOctave: 4,
		EndOctave:   4,
		Width:       1200,
		Height:      300,
		Root:        pitch.C,
		Classifier:  cMajorContext(t),
	})
}

func TestResolveAtPrefersFinerTier(t *testing.T) {
	set := referenceSet(t)

	// x = 200 lies inside both the C4 triad key (spanning 0..297) and
	// the C#4 chromatic sliver layered on top of it.
	k := ResolveAt(set, 200)
	if k == nil {
		t.Fatal("no hit at 200")
	}
	if k.Pitch.Class != pitch.CSharp {
		t.Errorf("hit = %v, want C# (finer tier wins)", k.Pitch)
	}
}

func TestResolveAtTriadOnly(t *testing.T) {
	set := referenceSet(t)

	k := ResolveAt(set, 50)
	if k == nil {
		t.Fatal("no hit at 50")
	}
	if k.Pitch.Class != pitch.C || k.Tier != theory.TierTriad {
		t.Errorf("hit = %v (%v), want triad C", k.Pitch, k.Tier)
	}
}

func TestResolveAtMiss(t *testing.T) {
	set := referenceSet(t)

	for _, x := range []float64{-1, 1200.5, 5000} {
		if k := ResolveAt(set, x); k != nil {
			t.Errorf("ResolveAt(%v) = %v, want nil", x, k.Pitch)
		}
	}
}

func TestResolveAtXYRespectsHeight(t *testing.T) {
	set := referenceSet(t)

	// At x = 200 the chromatic C# only reaches down to 40% of the
	// container height; below that the triad underneath takes the hit.
	if k := ResolveAtXY(set, 200, 60); k == nil || k.Pitch.Class != pitch.CSharp {
		t.Errorf("hit at (200, 60) = %v, want C#", k)
	}
	if k := ResolveAtXY(set, 200, 200); k == nil || k.Pitch.Class != pitch.C {
		t.Errorf("hit at (200, 200) = %v, want C", k)
	}
	if k := ResolveAtXY(set, 200, 400); k != nil {
		t.Errorf("hit below the container = %v, want nil", k.Pitch)
	}
}

func TestResolveAtNilSet(t *testing.T) {
	if k := ResolveAt(nil, 10); k != nil {
		t.Errorf("ResolveAt(nil) = %v, want nil", k.Pitch)
	}
	if k := ResolveAtXY(nil, 10, 10); k != nil {
		t.Errorf("ResolveAtXY(nil) = %v, want nil", k.Pitch)
	}
}

// TestResolveAtLeftEdgeInclusive pins the half-open hit span: a key's
// left edge hits, its right edge belongs to the next key.
func TestResolveAtLeftEdgeInclusive(t *testing.T) {
	set := referenceSet(t)
	c := set.KeyFor(pitch.New(pitch.C, 4))
	last := set.KeyFor(pitch.New(pitch.C, 5))

	if k := ResolveAt(set, c.Position); k == nil || k.Pitch.Class != pitch.C {
		t.Errorf("hit at left edge = %v, want C", k)
	}
	// The trailing root ends exactly at the container edge; its right
	// edge is exclusive, so x = 1200 misses.
	if k := ResolveAt(set, last.Right()); k != nil {
		t.Errorf("hit at right edge = %v, want nil", k.Pitch)
	}
}
