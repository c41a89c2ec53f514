package keyboard

import "github.com/stratakeys/stratakeys/pkg/theory"

// Geometry holds the visual tuning values of the layout engine. The
// defaults are empirically chosen; they are exposed as named fields so
// callers can override them without the engine inferring a formula.
type Geometry struct {
	// TriadGap is the fixed gap between adjacent triad keys, in px.
	TriadGap float64

	// ChromaticTuck is the asymmetric offset that tucks a chromatic key
	// beside its anchor instead of centering it, in px. Chromatic keys
	// are thin slivers meant to sit snugly against a neighbor.
	ChromaticTuck float64

	// SiblingGap is the minimum spacing enforced between two keys of the
	// same tier placed within one group, in px.
	SiblingGap float64

	// Per-tier key dimensions as fractions of the base triad key size.
	PentatonicWidthFrac  float64
	PentatonicHeightFrac float64
	ScaleWidthFrac       float64
	ScaleHeightFrac      float64
	ChromaticWidthFrac   float64
	ChromaticHeightFrac  float64
}

// DefaultGeometry returns the stock tuning values.
func DefaultGeometry() Geometry {
	return Geometry{
		TriadGap:             4,
		ChromaticTuck:        3,
		SiblingGap:           6,
		PentatonicWidthFrac:  0.6,
		PentatonicHeightFrac: 0.8,
		ScaleWidthFrac:       0.5,
		ScaleHeightFrac:      0.6,
		ChromaticWidthFrac:   0.4,
		ChromaticHeightFrac:  0.4,
	}
}

// sizeFor scales the base triad dimensions down to the given tier.
func (g Geometry) sizeFor(tier theory.Tier, baseW, baseH float64) (w, h float64) {
	switch tier {
	case theory.TierPentatonic:
		return baseW * g.PentatonicWidthFrac, baseH * g.PentatonicHeightFrac
	case theory.TierScale:
		return baseW * g.ScaleWidthFrac, baseH * g.ScaleHeightFrac
	case theory.TierChromatic:
		return baseW * g.ChromaticWidthFrac, baseH * g.ChromaticHeightFrac
	default:
		return baseW, baseH
	}
}

// isZero reports whether the geometry is entirely unset, so option
// plumbing can substitute the defaults.
func (g Geometry) isZero() bool {
	return g == Geometry{}
}
