// Package midiout translates keyboard interactions into MIDI messages.
//
// The layout engine knows nothing about sound; a consumer that wants a
// pressed key to make noise converts it here and hands the message to
// whatever gomidi driver or file writer it uses. Only message
// construction happens in this package, so it carries no driver
// dependency.
package midiout

import (
	"gitlab.com/gomidi/midi/v2"

	"github.com/stratakeys/stratakeys/pkg/keyboard"
)

// DefaultVelocity is used when a press carries no velocity of its own.
// Touch layouts have no aftertouch, so every press sounds the same.
const DefaultVelocity uint8 = 96

// clampMIDI folds out-of-range MIDI numbers into the valid 0..127 range.
// Extreme octave configurations can push the trailing root past the MIDI
// ceiling; clamping beats dropping the note.
func clampMIDI(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return uint8(n)
}

// PressOn returns the NoteOn message for a pressed key.
func PressOn(k *keyboard.Key, channel, velocity uint8) midi.Message {
	if velocity == 0 {
		velocity = DefaultVelocity
	}
	return midi.NoteOn(channel, clampMIDI(k.Pitch.MIDINumber), velocity)
}

// PressOff returns the NoteOff message for a released key.
func PressOff(k *keyboard.Key, channel uint8) midi.Message {
	return midi.NoteOff(channel, clampMIDI(k.Pitch.MIDINumber))
}

// ChordOn returns NoteOn messages for every highlighted key in the
// snapshot, lowest pitch first: the sounding chord across all octaves.
func ChordOn(set *keyboard.KeySet, channel, velocity uint8) []midi.Message {
	var msgs []midi.Message
	for _, k := range set.Keys {
		if k.Highlighted {
			msgs = append(msgs, PressOn(k, channel, velocity))
		}
	}
	return msgs
}

// ChordOff returns the matching NoteOff messages for ChordOn.
func ChordOff(set *keyboard.KeySet, channel uint8) []midi.Message {
	var msgs []midi.Message
	for _, k := range set.Keys {
		if k.Highlighted {
			msgs = append(msgs, PressOff(k, channel))
		}
	}
	return msgs
}

// KeyNumbers returns the MIDI note numbers of every key in the snapshot,
// in chromatic-time order.
func KeyNumbers(set *keyboard.KeySet) []uint8 {
	nums := make([]uint8, 0, set.Len())
	for _, k := range set.Keys {
		nums = append(nums, clampMIDI(k.Pitch.MIDINumber))
	}
	return nums
}
