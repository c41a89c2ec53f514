package render

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/stratakeys/stratakeys/pkg/keyboard"
	"github.com/stratakeys/stratakeys/pkg/theory"
)

const keyboardCSS = `
    .key { stroke: #2d2a26; stroke-width: 1; }
    .key.highlight { stroke-width: 3; }
    .tier-triad { fill: #f4efe8; }
    .tier-pentatonic { fill: #c9d8c5; }
    .tier-scale { fill: #a3b9c9; }
    .tier-chromatic { fill: #4a4640; }
    .key-label { font: 11px sans-serif; text-anchor: middle; fill: #2d2a26; }
    .tier-chromatic + .key-label { fill: #f4efe8; }`

// SVGOption configures SVG rendering via [SVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels bool
}

// WithLabels draws each key's pitch name under the key.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// SVG renders the snapshot as a standalone SVG document. Keys are emitted
// in paint order, bottom tier first, so later elements overlay earlier
// ones exactly as the hit resolver resolves them.
func SVG(set *keyboard.KeySet, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		set.Width, set.Height, set.Width, set.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", keyboardCSS)

	for _, k := range PaintOrdered(set) {
		class := "key tier-" + k.Tier.String()
		if k.Highlighted {
			class += " highlight"
		}
		fmt.Fprintf(&buf,
			`  <rect id="key-%d" class="%s" x="%.2f" y="0" width="%.2f" height="%.2f"><title>%s</title></rect>`+"\n",
			k.Pitch.MIDINumber, class, k.Position, k.Width, k.Height, k.Pitch)
		if r.labels {
			fmt.Fprintf(&buf, `  <text class="key-label" x="%.2f" y="%.2f">%s</text>`+"\n",
				k.CenterX(), k.Height-6, k.Pitch)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// PaintOrdered returns the snapshot's keys sorted for painting: ascending
// paint rank, position as the tie-break so output is deterministic.
func PaintOrdered(set *keyboard.KeySet) []*keyboard.Key {
	keys := make([]*keyboard.Key, len(set.Keys))
	copy(keys, set.Keys)
	slices.SortStableFunc(keys, func(a, b *keyboard.Key) int {
		if c := cmp.Compare(a.Tier.PaintRank(), b.Tier.PaintRank()); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})
	return keys
}

// tierZ maps a tier to its z index in rendered output, matching PaintRank.
func tierZ(t theory.Tier) int { return t.PaintRank() }
