package render

import (
	"encoding/json"

	"github.com/stratakeys/stratakeys/pkg/keyboard"
)

type jsonOutput struct {
	Revision string    `json:"revision"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Keys     []jsonKey `json:"keys"`
}

type jsonKey struct {
	Pitch       string  `json:"pitch"`
	PitchClass  string  `json:"pitch_class"`
	Octave      int     `json:"octave"`
	MIDI        int     `json:"midi"`
	FrequencyHz float64 `json:"frequency_hz"`
	Tier        string  `json:"tier"`
	Role        string  `json:"role,omitempty"`
	Highlighted bool    `json:"highlighted,omitempty"`
	X           float64 `json:"x"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Z           int     `json:"z"`
}

// JSON renders the snapshot as pretty-printed JSON. Keys stay in
// chromatic-time order; each carries its paint rank as z so consumers can
// stack without re-deriving tier semantics.
func JSON(set *keyboard.KeySet) ([]byte, error) {
	out := jsonOutput{
		Revision: set.Revision.String(),
		Width:    set.Width,
		Height:   set.Height,
		Keys:     make([]jsonKey, 0, len(set.Keys)),
	}
	for _, k := range set.Keys {
		jk := jsonKey{
			Pitch:       k.Pitch.String(),
			PitchClass:  k.Pitch.Class.String(),
			Octave:      k.Pitch.Octave,
			MIDI:        k.Pitch.MIDINumber,
			FrequencyHz: k.Pitch.FrequencyHz,
			Tier:        k.Tier.String(),
			Highlighted: k.Highlighted,
			X:           k.Position,
			Width:       k.Width,
			Height:      k.Height,
			Z:           tierZ(k.Tier),
		}
		if k.Highlighted {
			jk.Role = k.Role.String()
		}
		out.Keys = append(out.Keys, jk)
	}
	return json.MarshalIndent(out, "", "  ")
}
