package keyboard

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/stratakeys/stratakeys/pkg/pitch"
	"github.com/stratakeys/stratakeys/pkg/theory"
)

// Octave count bounds supported by the instrument.
const (
	MinOctaves = 1
	MaxOctaves = 3
)

// DefaultStartOctave is the octave the range begins at when callers only
// specify a count. Octave 4 holds middle C.
const DefaultStartOctave = 4

// Options configures one structural layout pass. Invalid values are
// clamped, never rejected: the UI feeds these straight from transient
// control states (a drag on an octave slider, a mid-resize width) and
// must not observe a crash.
type Options struct {
	// StartOctave and EndOctave bound the pitch range, both inclusive.
	StartOctave int
	EndOctave   int

	// Width and Height are the container dimensions in px.
	Width  float64
	Height float64

	// BaseKeyWidth overrides the triad key width normally derived from
	// the container width. Zero means derive.
	BaseKeyWidth float64

	// Root is the pitch class of the trailing root key appended one
	// octave above the range to close it visually.
	Root pitch.Class

	// Classifier supplies tier and chord-role lookups. A nil classifier
	// classifies every pitch Chromatic with no role.
	Classifier theory.Classifier

	// Geometry holds the visual tuning values; the zero value means
	// DefaultGeometry.
	Geometry Geometry

	// Logger receives debug output. Nil discards.
	Logger *log.Logger
}

// normalize clamps the options into the supported envelope and fills
// defaults. It is idempotent.
func (o *Options) normalize() {
	if o.StartOctave > o.EndOctave {
		o.StartOctave, o.EndOctave = o.EndOctave, o.StartOctave
	}
	if n := o.EndOctave - o.StartOctave + 1; n > MaxOctaves {
		o.EndOctave = o.StartOctave + MaxOctaves - 1
	}
	if o.Width < 0 {
		o.Width = 0
	}
	if o.Height < 0 {
		o.Height = 0
	}
	if o.BaseKeyWidth < 0 {
		o.BaseKeyWidth = 0
	}
	if o.Geometry.isZero() {
		o.Geometry = DefaultGeometry()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Octaves returns the number of octaves the options span.
func (o Options) Octaves() int {
	return o.EndOctave - o.StartOctave + 1
}

// triadSlots is the number of triad-width slots the container is divided
// into: three triad-tier pitches per octave plus the trailing root.
func (o Options) triadSlots() int {
	return 3*o.Octaves() + 1
}

// baseKeySize returns the triad key dimensions for the options: either
// the explicit BaseKeyWidth or the container width divided evenly among
// the triad slots, gaps included. Degenerate containers yield zero-size
// keys but still a structurally valid set.
func (o Options) baseKeySize() (w, h float64) {
	h = o.Height
	if o.BaseKeyWidth > 0 {
		return o.BaseKeyWidth, h
	}
	slots := o.triadSlots()
	w = (o.Width - o.Geometry.TriadGap*float64(slots-1)) / float64(slots)
	if w < 0 {
		w = 0
	}
	return w, h
}

// buildKeys enumerates every pitch across the octave range plus the
// trailing root, classifies each one, and sizes it for its tier. The
// returned keys are in chromatic-time order and unpositioned.
func buildKeys(o Options) []*Key {
	baseW, baseH := o.baseKeySize()

	keys := make([]*Key, 0, pitch.NumClasses*o.Octaves()+1)
	for oct := o.StartOctave; oct <= o.EndOctave; oct++ {
		for pc := pitch.C; pc < pitch.NumClasses; pc++ {
			keys = append(keys, newKey(pitch.New(pc, oct), o, baseW, baseH))
		}
	}
	// One extra root an octave above the range closes it visually.
	keys = append(keys, newKey(pitch.New(o.Root, o.EndOctave+1), o, baseW, baseH))
	return keys
}

func newKey(p pitch.Pitch, o Options, baseW, baseH float64) *Key {
	tier := theory.ClassifyTier(o.Classifier, p.Class)
	role, sounding := theory.ClassifyRole(o.Classifier, p.Class)
	w, h := o.Geometry.sizeFor(tier, baseW, baseH)
	return &Key{
		Pitch:       p,
		Tier:        tier,
		Role:        role,
		Highlighted: sounding,
		Width:       w,
		Height:      h,
	}
}
