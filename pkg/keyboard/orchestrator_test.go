package keyboard

import (
	"sync"
	"testing"
	"time"

	"github.com/stratakeys/stratakeys/pkg/observability"
	"github.com/stratakeys/stratakeys/pkg/pitch"
	"github.com/stratakeys/stratakeys/pkg/theory"
)

type countingHooks struct {
	observability.NoopLayoutHooks

	mu         sync.Mutex
	publishes  int
	structural int
}

func (h *countingHooks) OnPublish(_ string, structural bool, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.publishes++
	if structural {
		h.structural++
	}
}

func (h *countingHooks) counts() (publishes, structural int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.publishes, h.structural
}

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		StartOctave: 4,
		EndOctave:   4,
		Width:       1200,
		Height:      300,
		Root:        pitch.C,
		Classifier:  cMajorContext(t),
	}
}

func waitForRevision(t *testing.T, o *Orchestrator, old *KeySet) *KeySet {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cur := o.Snapshot(); cur.Revision != old.Revision {
			return cur
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no new snapshot published before deadline")
	return nil
}

func TestOrchestratorInitialSnapshot(t *testing.T) {
	o := NewOrchestrator(testOptions(t))
	defer o.Close()

	set := o.Snapshot()
	if set == nil {
		t.Fatal("no initial snapshot")
	}
	if set.Len() != 13 {
		t.Errorf("Len = %d, want 13", set.Len())
	}
	if set.Width != 1200 || set.Height != 300 {
		t.Errorf("dimensions = (%v, %v), want (1200, 300)", set.Width, set.Height)
	}
}

// TestOrchestratorResizeDebounce fires a burst of resize events well
// inside the debounce window and expects exactly one rebuild, at the
// final dimensions.
func TestOrchestratorResizeDebounce(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetLayoutHooks(hooks)
	t.Cleanup(observability.Reset)

	o := NewOrchestrator(testOptions(t), WithDebounceWindow(40*time.Millisecond))
	defer o.Close()
	initial := o.Snapshot()

	o.OnResize(800, 300)
	o.OnResize(700, 300)
	o.OnResize(600, 300)

	// Nothing may publish until the window elapses.
	if cur := o.Snapshot(); cur.Revision != initial.Revision {
		t.Error("rebuild published before the debounce window elapsed")
	}

	cur := waitForRevision(t, o, initial)
	if cur.Width != 600 {
		t.Errorf("rebuilt width = %v, want 600 (last event wins)", cur.Width)
	}
	if publishes, structural := hooks.counts(); publishes != 2 || structural != 2 {
		t.Errorf("publishes = %d (structural %d), want 2 total: initial + one coalesced rebuild",
			publishes, structural)
	}
}

func TestOrchestratorResizeIdempotent(t *testing.T) {
	o := NewOrchestrator(testOptions(t), WithDebounceWindow(10*time.Millisecond))
	defer o.Close()
	initial := o.Snapshot()

	o.OnResize(1200, 300) // already in effect
	time.Sleep(60 * time.Millisecond)
	if cur := o.Snapshot(); cur.Revision != initial.Revision {
		t.Error("resize to the current dimensions published a snapshot")
	}
}

func TestOrchestratorOctaveCountChange(t *testing.T) {
	o := NewOrchestrator(testOptions(t))
	defer o.Close()

	o.OnOctaveCountChange(2)
	set := o.Snapshot()
	if set.Len() != 25 {
		t.Errorf("Len = %d, want 25 after growing to two octaves", set.Len())
	}
	first := set.Keys[0]
	if first.Pitch.Octave != 4 {
		t.Errorf("start octave = %d, want 4 (octave change keeps the start)", first.Pitch.Octave)
	}

	// Out-of-range counts clamp instead of failing.
	o.OnOctaveCountChange(9)
	if got := o.Snapshot().Len(); got != 12*MaxOctaves+1 {
		t.Errorf("Len = %d, want %d after clamping to %d octaves", got, 12*MaxOctaves+1, MaxOctaves)
	}
	o.OnOctaveCountChange(0)
	if got := o.Snapshot().Len(); got != 13 {
		t.Errorf("Len = %d, want 13 after clamping to %d octave", got, MinOctaves)
	}
}

func TestOrchestratorOctaveCountNoOp(t *testing.T) {
	o := NewOrchestrator(testOptions(t))
	defer o.Close()
	initial := o.Snapshot()

	o.OnOctaveCountChange(1)
	if cur := o.Snapshot(); cur.Revision != initial.Revision {
		t.Error("octave change to the current count published a snapshot")
	}
}

func TestOrchestratorKeyWidthChange(t *testing.T) {
	o := NewOrchestrator(testOptions(t))
	defer o.Close()

	o.OnKeyWidthChange(50)
	for _, k := range o.Snapshot().Tiered(theory.TierTriad) {
		if k.Width != 50 {
			t.Errorf("%v width = %v, want 50", k.Pitch, k.Width)
		}
	}

	// Zero restores the container-derived width.
	o.OnKeyWidthChange(0)
	for _, k := range o.Snapshot().Tiered(theory.TierTriad) {
		if k.Width != 297 {
			t.Errorf("%v width = %v, want 297", k.Pitch, k.Width)
		}
	}
}

// TestOrchestratorSetClassifier verifies the attribute path: a chord
// change publishes a patched snapshot without moving geometry, and a
// no-op classifier swap publishes nothing.
func TestOrchestratorSetClassifier(t *testing.T) {
	ctx := cMajorContext(t)
	opts := testOptions(t)
	opts.Classifier = ctx

	o := NewOrchestrator(opts)
	defer o.Close()
	initial := o.Snapshot()

	o.SetClassifier(ctx.WithChord(mustChord(t, "G")))
	cur := o.Snapshot()
	if cur.Revision == initial.Revision {
		t.Fatal("chord change published nothing")
	}
	for i := range initial.Keys {
		if cur.Keys[i].Position != initial.Keys[i].Position {
			t.Errorf("%v moved on a chord change", initial.Keys[i].Pitch)
		}
	}
	if k := cur.KeyFor(pitch.New(pitch.G, 4)); k.Role != theory.RoleRoot {
		t.Errorf("G4 role = %v, want root", k.Role)
	}

	// Re-applying the same classifier changes nothing.
	o.SetClassifier(ctx.WithChord(mustChord(t, "G")))
	if o.Snapshot().Revision != cur.Revision {
		t.Error("identical classifier published a snapshot")
	}

	// The next structural rebuild uses the new classifier too.
	o.OnKeyWidthChange(50)
	if k := o.Snapshot().KeyFor(pitch.New(pitch.G, 4)); k.Role != theory.RoleRoot {
		t.Errorf("rebuild lost the classifier: G4 role = %v, want root", k.Role)
	}
}

func TestOrchestratorClose(t *testing.T) {
	o := NewOrchestrator(testOptions(t), WithDebounceWindow(10*time.Millisecond))
	last := o.Snapshot()

	o.OnResize(600, 300)
	o.Close()
	time.Sleep(60 * time.Millisecond)

	if cur := o.Snapshot(); cur.Revision != last.Revision {
		t.Error("pending rebuild published after Close")
	}
	o.OnOctaveCountChange(2)
	o.Rebuild()
	if cur := o.Snapshot(); cur.Revision != last.Revision {
		t.Error("entry point published after Close")
	}
}
