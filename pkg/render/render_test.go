package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stratakeys/stratakeys/pkg/keyboard"
	"github.com/stratakeys/stratakeys/pkg/pitch"
	"github.com/stratakeys/stratakeys/pkg/theory"
)

func testSet(t *testing.T) *keyboard.KeySet {
	t.Helper()
	chord, err := theory.ParseChord("C")
	if err != nil {
		t.Fatalf("ParseChord: %v", err)
	}
	return keyboard.Build(keyboard.Options{
		StartOctave: 4,
		EndOctave:   4,
		Width:       1200,
		Height:      300,
		Root:        pitch.C,
		Classifier:  theory.NewContext(pitch.C, theory.ModeMajor, chord),
	})
}

func TestPaintOrdered(t *testing.T) {
	set := testSet(t)
	keys := PaintOrdered(set)

	if len(keys) != set.Len() {
		t.Fatalf("len = %d, want %d", len(keys), set.Len())
	}
	for i := 1; i < len(keys); i++ {
		prev, cur := keys[i-1], keys[i]
		if cur.Tier.PaintRank() < prev.Tier.PaintRank() {
			t.Errorf("paint order violated at %d: %v before %v", i, prev.Tier, cur.Tier)
		}
		if cur.Tier == prev.Tier && cur.Position < prev.Position {
			t.Errorf("position tie-break violated at %d: %v before %v", i, prev.Pitch, cur.Pitch)
		}
	}
	if keys[0].Tier != theory.TierTriad {
		t.Errorf("first painted tier = %v, want triad", keys[0].Tier)
	}
	if keys[len(keys)-1].Tier != theory.TierChromatic {
		t.Errorf("last painted tier = %v, want chromatic", keys[len(keys)-1].Tier)
	}

	// The snapshot's own order is untouched.
	if set.Keys[0].Pitch.Class != pitch.C {
		t.Error("PaintOrdered mutated the snapshot")
	}
}

func TestSVGStructure(t *testing.T) {
	set := testSet(t)
	out := string(SVG(set))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("missing svg root element")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("missing closing tag")
	}
	if got := strings.Count(out, "<rect"); got != set.Len() {
		t.Errorf("rect count = %d, want %d", got, set.Len())
	}
	if strings.Contains(out, "<text") {
		t.Error("labels rendered without WithLabels")
	}
	// Chromatic rects come after triad rects so they paint on top.
	if triad, chrom := strings.Index(out, "tier-triad"), strings.Index(out, "tier-chromatic"); triad > chrom {
		t.Error("chromatic keys painted before triad keys")
	}
	// Highlighted chord tones carry the highlight class.
	if !strings.Contains(out, `class="key tier-triad highlight"`) {
		t.Error("no highlighted triad rect for the sounding chord")
	}
}

func TestSVGWithLabels(t *testing.T) {
	set := testSet(t)
	out := string(SVG(set, WithLabels()))

	if got := strings.Count(out, "<text"); got != set.Len() {
		t.Errorf("label count = %d, want %d", got, set.Len())
	}
	if !strings.Contains(out, ">C#4</text>") {
		t.Error("missing pitch label")
	}
}

func TestJSONSchema(t *testing.T) {
	set := testSet(t)
	raw, err := JSON(set)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out struct {
		Revision string  `json:"revision"`
		Width    float64 `json:"width"`
		Keys     []struct {
			Pitch       string  `json:"pitch"`
			MIDI        int     `json:"midi"`
			Tier        string  `json:"tier"`
			Role        string  `json:"role"`
			Highlighted bool    `json:"highlighted"`
			X           float64 `json:"x"`
			Z           int     `json:"z"`
		} `json:"keys"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if out.Revision != set.Revision.String() {
		t.Errorf("revision = %q, want %q", out.Revision, set.Revision)
	}
	if out.Width != 1200 {
		t.Errorf("width = %v, want 1200", out.Width)
	}
	if len(out.Keys) != set.Len() {
		t.Fatalf("key count = %d, want %d", len(out.Keys), set.Len())
	}

	// Keys stay in chromatic-time order: first C4, last the trailing root.
	if out.Keys[0].Pitch != "C4" || out.Keys[0].MIDI != 60 {
		t.Errorf("first key = %+v, want C4 / 60", out.Keys[0])
	}
	if last := out.Keys[len(out.Keys)-1]; last.Pitch != "C5" {
		t.Errorf("last key = %q, want C5", last.Pitch)
	}

	for _, k := range out.Keys {
		switch k.Tier {
		case "triad":
			if k.Z != 0 {
				t.Errorf("%s z = %d, want 0", k.Pitch, k.Z)
			}
		case "chromatic":
			if k.Z != 3 {
				t.Errorf("%s z = %d, want 3", k.Pitch, k.Z)
			}
		}
		if k.Highlighted && k.Role == "" {
			t.Errorf("%s highlighted without a role", k.Pitch)
		}
		if !k.Highlighted && k.Role != "" {
			t.Errorf("%s carries role %q without sounding", k.Pitch, k.Role)
		}
	}
}
