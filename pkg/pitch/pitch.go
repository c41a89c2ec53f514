// Package pitch models individual sounding pitches in equal temperament.
//
// A pitch is identified by its pitch class (one of the twelve chromatic
// names) and its octave. From those two values the MIDI note number and
// frequency are derived deterministically, so a Pitch can always be
// reconstructed from its class and octave alone.
package pitch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Class is one of the twelve chromatic pitch classes, C through B.
type Class int

// The twelve chromatic pitch classes in ascending order.
const (
	C Class = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

// NumClasses is the number of chromatic pitch classes per octave.
const NumClasses = 12

var classNames = [NumClasses]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// flat spellings accepted by ParseClass in addition to the sharp names.
var flatNames = map[string]Class{
	"Db": CSharp,
	"Eb": DSharp,
	"Gb": FSharp,
	"Ab": GSharp,
	"Bb": ASharp,
}

// String returns the sharp spelling of the pitch class (e.g. "C#").
func (c Class) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

// Valid reports whether c is one of the twelve chromatic classes.
func (c Class) Valid() bool {
	return c >= C && c < NumClasses
}

// Index returns the chromatic index of the class (C=0 ... B=11).
func (c Class) Index() int { return int(c) }

// Transpose returns the class offset by the given number of semitones,
// wrapping around the octave in both directions.
func (c Class) Transpose(semitones int) Class {
	return Class(((int(c)+semitones)%NumClasses + NumClasses) % NumClasses)
}

// Interval returns the number of semitones from root up to c, in [0, 12).
func (c Class) Interval(root Class) int {
	return (int(c) - int(root) + NumClasses) % NumClasses
}

// ParseClass parses a pitch class name. Both sharp ("C#") and flat ("Db")
// spellings are accepted; case matters for the accidental but not the letter.
func ParseClass(s string) (Class, error) {
	name := strings.TrimSpace(s)
	if len(name) > 0 {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	for i, n := range classNames {
		if n == name {
			return Class(i), nil
		}
	}
	if c, ok := flatNames[name]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("unknown pitch class %q", s)
}

// Tuning reference: A4 sounds at 440 Hz and carries MIDI number 69.
const (
	A4Frequency = 440.0
	a4MIDI      = 69
)

// Pitch is an immutable description of a single sounding pitch.
type Pitch struct {
	Class       Class
	Octave      int
	FrequencyHz float64
	MIDINumber  int
}

// New derives a Pitch from its class and octave using equal-tempered
// tuning. The MIDI number follows the convention midi = 12*(octave+1) + index,
// which places middle C (C4) at MIDI 60.
func New(class Class, octave int) Pitch {
	midi := MIDINumber(class, octave)
	return Pitch{
		Class:       class,
		Octave:      octave,
		FrequencyHz: Frequency(midi),
		MIDINumber:  midi,
	}
}

// FromMIDI reconstructs the Pitch for a MIDI note number.
func FromMIDI(midi int) Pitch {
	octave := int(math.Floor(float64(midi)/NumClasses)) - 1
	class := Class(((midi % NumClasses) + NumClasses) % NumClasses)
	return New(class, octave)
}

// MIDINumber computes the MIDI note number for a class and octave.
func MIDINumber(class Class, octave int) int {
	return NumClasses*(octave+1) + class.Index()
}

// Frequency computes the equal-tempered frequency in Hz for a MIDI number.
func Frequency(midi int) float64 {
	return A4Frequency * math.Pow(2, float64(midi-a4MIDI)/NumClasses)
}

// ChromaticTime returns the absolute chromatic-time index of the pitch,
// octave*12 + chromatic index. It orders pitches independent of any
// visual position and is used to bound non-triad keys between triads.
func (p Pitch) ChromaticTime() int {
	return p.Octave*NumClasses + p.Class.Index()
}

// String returns scientific pitch notation, e.g. "C#4".
func (p Pitch) String() string {
	return p.Class.String() + strconv.Itoa(p.Octave)
}
