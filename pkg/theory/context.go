package theory

import (
	"fmt"
	"strings"

	"github.com/stratakeys/stratakeys/pkg/pitch"
)

// Mode selects the scale family of a song key.
type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
)

// String returns "major" or "minor".
func (m Mode) String() string {
	if m == ModeMinor {
		return "minor"
	}
	return "major"
}

// Scale interval templates, in semitones above the tonic.
var (
	majorTriad      = []int{0, 4, 7}
	majorPentatonic = []int{0, 2, 4, 7, 9}
	majorScale      = []int{0, 2, 4, 5, 7, 9, 11}

	minorTriad      = []int{0, 3, 7}
	minorPentatonic = []int{0, 3, 5, 7, 10}
	minorScale      = []int{0, 2, 3, 5, 7, 8, 10}
)

// Quality is the chord quality of the currently sounding chord.
type Quality int

const (
	QualityMajor Quality = iota
	QualityMinor
	QualityDominant7
	QualityMajor7
	QualityMinor7
)

var qualityNames = [...]string{"major", "minor", "dominant7", "major7", "minor7"}

// String returns the lowercase quality name.
func (q Quality) String() string {
	if q < QualityMajor || q > QualityMinor7 {
		return "unknown"
	}
	return qualityNames[q]
}

// chordIntervals maps each quality to its member intervals and their roles.
var chordIntervals = map[Quality]map[int]ChordRole{
	QualityMajor:     {0: RoleRoot, 4: RoleThird, 7: RoleFifth},
	QualityMinor:     {0: RoleRoot, 3: RoleThird, 7: RoleFifth},
	QualityDominant7: {0: RoleRoot, 4: RoleThird, 7: RoleFifth, 10: RoleSeventh},
	QualityMajor7:    {0: RoleRoot, 4: RoleThird, 7: RoleFifth, 11: RoleSeventh},
	QualityMinor7:    {0: RoleRoot, 3: RoleThird, 7: RoleFifth, 10: RoleSeventh},
}

// Chord is the currently sounding chord: a root pitch class, a quality,
// and optional extension pitch classes beyond the core chord tones.
type Chord struct {
	Root       pitch.Class
	Quality    Quality
	Extensions []pitch.Class
}

// ParseChord parses names like "C", "Gm", "F#7", "Bbmaj7", "Dm7".
func ParseChord(s string) (Chord, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return Chord{}, fmt.Errorf("empty chord name")
	}

	classLen := 1
	if len(name) > 1 && (name[1] == '#' || name[1] == 'b') {
		classLen = 2
	}
	root, err := pitch.ParseClass(name[:classLen])
	if err != nil {
		return Chord{}, fmt.Errorf("chord %q: %w", s, err)
	}

	var quality Quality
	switch suffix := strings.ToLower(name[classLen:]); suffix {
	case "", "maj":
		quality = QualityMajor
	case "m", "min":
		quality = QualityMinor
	case "7", "dom7":
		quality = QualityDominant7
	case "maj7":
		quality = QualityMajor7
	case "m7", "min7":
		quality = QualityMinor7
	default:
		return Chord{}, fmt.Errorf("chord %q: unknown quality %q", s, suffix)
	}
	return Chord{Root: root, Quality: quality}, nil
}

// String returns a compact chord name, e.g. "Gm7".
func (c Chord) String() string {
	var suffix string
	switch c.Quality {
	case QualityMinor:
		suffix = "m"
	case QualityDominant7:
		suffix = "7"
	case QualityMajor7:
		suffix = "maj7"
	case QualityMinor7:
		suffix = "m7"
	}
	return c.Root.String() + suffix
}

// RoleOf returns the role a pitch class plays in the chord.
func (c Chord) RoleOf(pc pitch.Class) (ChordRole, bool) {
	if role, ok := chordIntervals[c.Quality][pc.Interval(c.Root)]; ok {
		return role, true
	}
	for _, ext := range c.Extensions {
		if ext == pc {
			return RoleExtension, true
		}
	}
	return RoleNone, false
}

// Context is the built-in Classifier: a song key (tonic plus mode) for
// tier classification and an active chord for role classification.
// A Context is immutable; WithChord and WithKey return derived contexts.
type Context struct {
	tonic pitch.Class
	mode  Mode
	chord Chord

	tiers [pitch.NumClasses]Tier
}

// NewContext builds a context for the given song key and initial chord.
func NewContext(tonic pitch.Class, mode Mode, chord Chord) Context {
	ctx := Context{tonic: tonic, mode: mode, chord: chord}

	triad, penta, scale := majorTriad, majorPentatonic, majorScale
	if mode == ModeMinor {
		triad, penta, scale = minorTriad, minorPentatonic, minorScale
	}

	for i := range ctx.tiers {
		ctx.tiers[i] = TierChromatic
	}
	for _, iv := range scale {
		ctx.tiers[tonic.Transpose(iv)] = TierScale
	}
	for _, iv := range penta {
		ctx.tiers[tonic.Transpose(iv)] = TierPentatonic
	}
	for _, iv := range triad {
		ctx.tiers[tonic.Transpose(iv)] = TierTriad
	}
	return ctx
}

// Tonic returns the song key's tonic pitch class.
func (c Context) Tonic() pitch.Class { return c.tonic }

// Mode returns the song key's mode.
func (c Context) Mode() Mode { return c.mode }

// Chord returns the active chord.
func (c Context) Chord() Chord { return c.chord }

// WithChord returns a context with the same song key and a new active chord.
func (c Context) WithChord(chord Chord) Context {
	c.chord = chord
	return c
}

// WithKey returns a context with a new song key and the same active chord.
func (c Context) WithKey(tonic pitch.Class, mode Mode) Context {
	return NewContext(tonic, mode, c.chord)
}

// TierOf implements Classifier.
func (c Context) TierOf(pc pitch.Class) Tier {
	if !pc.Valid() {
		return TierChromatic
	}
	return c.tiers[pc]
}

// ChordRoleOf implements Classifier.
func (c Context) ChordRoleOf(pc pitch.Class) (ChordRole, bool) {
	if !pc.Valid() {
		return RoleNone, false
	}
	return c.chord.RoleOf(pc)
}

// IsSounding implements Classifier.
func (c Context) IsSounding(pc pitch.Class) bool {
	_, ok := c.ChordRoleOf(pc)
	return ok
}

var _ Classifier = Context{}
