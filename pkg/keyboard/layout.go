package keyboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/stratakeys/stratakeys/pkg/observability"
	"github.com/stratakeys/stratakeys/pkg/theory"
)

// Build runs one full structural pass: enumerate and classify the pitch
// range, then lay every key out. The result is a fresh immutable
// snapshot; calling Build twice with identical options and classifier
// answers yields identical geometry (only the Revision differs).
func Build(opts Options) *KeySet {
	opts.normalize()

	start := time.Now()
	observability.Layout().OnBuildStart(opts.Octaves(), opts.Width, opts.Height)

	keys := buildKeys(opts)
	layoutKeys(keys, opts.Geometry)

	set := &KeySet{
		Revision: uuid.New(),
		Keys:     keys,
		Width:    opts.Width,
		Height:   opts.Height,
	}

	observability.Layout().OnBuildComplete(len(keys), time.Since(start))
	opts.Logger.Debug("built key set",
		"keys", len(keys),
		"octaves", opts.Octaves(),
		"width", opts.Width,
		"duration", time.Since(start))
	return set
}

// layoutKeys assigns a position to every key. Triad keys tile left to
// right with a fixed gap; the rest are grouped between their flanking
// triads and placed recursively, coarsest tier first.
func layoutKeys(keys []*Key, geo Geometry) {
	tileTriads(keys, geo)
	for _, g := range partition(keys) {
		g.place(geo)
	}
	sweepTierRuns(keys)
}

// sweepTierRuns restores same-tier non-overlap across group boundaries.
// Each group clamps its own siblings but then shifts as a whole when
// centered, so the trailing key of one group can end up overlapping the
// leading same-tier key of the next. One ordered pass per tier nudges
// such a key right to the previous sibling's edge.
func sweepTierRuns(keys []*Key) {
	prev := make(map[theory.Tier]*Key, 3)
	for _, k := range keys {
		if k.Tier == theory.TierTriad {
			continue
		}
		if p := prev[k.Tier]; p != nil && k.Position < p.Right() {
			k.Position = p.Right()
		}
		prev[k.Tier] = k
	}
}

// tileTriads lays the triad row edge to edge starting at 0.
func tileTriads(keys []*Key, geo Geometry) {
	pos := 0.0
	for _, k := range keys {
		if k.Tier != theory.TierTriad {
			continue
		}
		k.Position = pos
		pos += k.Width + geo.TriadGap
	}
}

// group is a run of non-triad keys bounded by zero, one, or two triad
// keys adjacent in chromatic time. members stays in chromatic-time order.
type group struct {
	left    *Key // bounding triad, nil if the run precedes the first triad
	right   *Key // bounding triad, nil if the run follows the last triad
	members []*Key
}

// partition assigns every non-triad key to exactly one group: the run
// before the first triad, a run strictly between two chromatic-time
// adjacent triads, or the run after the last triad. Empty runs produce
// no group.
func partition(keys []*Key) []*group {
	var groups []*group
	var left *Key
	var run []*Key

	flush := func(right *Key) {
		if len(run) > 0 {
			groups = append(groups, &group{left: left, right: right, members: run})
			run = nil
		}
	}

	for _, k := range keys {
		if k.Tier == theory.TierTriad {
			flush(k)
			left = k
			continue
		}
		run = append(run, k)
	}
	flush(nil)
	return groups
}

// placer tracks the per-group placement state: which keys are placed and,
// per tier, the chromatic-order index of each key so the same-tier
// sibling clamp is a map lookup instead of a slice scan.
type placer struct {
	geo    Geometry
	placed map[*Key]bool

	siblings map[theory.Tier][]*Key // per tier, chromatic order
	tierIdx  map[*Key]int           // index within its tier slice
}

func newPlacer(g *group, geo Geometry) *placer {
	p := &placer{
		geo:      geo,
		placed:   make(map[*Key]bool, len(g.members)),
		siblings: make(map[theory.Tier][]*Key),
		tierIdx:  make(map[*Key]int, len(g.members)),
	}
	for _, k := range g.members {
		p.tierIdx[k] = len(p.siblings[k.Tier])
		p.siblings[k.Tier] = append(p.siblings[k.Tier], k)
	}
	return p
}

// place positions every member of the group, then shifts the whole group
// so it is centered relative to its left boundary. The two-pass approach
// keeps the recursive anchoring boundary-agnostic while producing a
// balanced result.
func (g *group) place(geo Geometry) {
	p := newPlacer(g, geo)

	if g.left == nil && g.right == nil {
		x := 0.0
		for _, k := range g.members {
			p.placeAt(k, x)
			x += k.Width + geo.TriadGap
		}
		return
	}

	p.descend(g.members, g.left, g.right)
	g.center()
}

// descend implements the recursive intra-group placement: anchor the
// coarsest tier present once per available boundary, then recurse into
// the sub-runs on each side with the freshly placed keys as boundaries.
// The right anchor is scanned only among the keys after the left anchor,
// so the two never cross; a run whose coarsest key sits at its right end
// (a chromatic key before the group's only scale key, as minor keys
// produce) anchors left only and hands the preceding keys to the left
// sub-run.
func (p *placer) descend(keys []*Key, left, right *Key) {
	if len(keys) == 0 {
		return
	}

	var leftAnchor, rightAnchor *Key
	leftIdx, rightIdx := -1, len(keys)

	if left != nil {
		if i := p.firstUnplaced(keys); i >= 0 {
			leftAnchor, leftIdx = keys[i], i
			p.placeAt(leftAnchor, p.anchorAfter(left, leftAnchor))
		}
	}
	if right != nil {
		if i := p.lastUnplaced(keys[leftIdx+1:]); i >= 0 {
			rightIdx = leftIdx + 1 + i
			rightAnchor = keys[rightIdx]
			p.placeAt(rightAnchor, p.anchorBefore(right, rightAnchor))
		}
	}
	if leftAnchor == nil && rightAnchor == nil {
		return
	}

	if leftIdx > 0 {
		p.descend(keys[:leftIdx], left, leftAnchor)
	}
	mid := keys[leftIdx+1 : rightIdx]
	midLeft, midRight := leftAnchor, rightAnchor
	if midLeft == nil {
		midLeft = left
	}
	if midRight == nil {
		midRight = right
	}
	p.descend(mid, midLeft, midRight)
	if rightIdx < len(keys)-1 {
		p.descend(keys[rightIdx+1:], rightAnchor, right)
	}
}

// firstUnplaced returns the index of the first unplaced key whose tier is
// the coarsest unplaced tier present, scanning in anchor priority order.
func (p *placer) firstUnplaced(keys []*Key) int {
	for _, tier := range theory.AnchorOrder() {
		for i, k := range keys {
			if k.Tier == tier && !p.placed[k] {
				return i
			}
		}
	}
	return -1
}

// lastUnplaced mirrors firstUnplaced from the right end.
func (p *placer) lastUnplaced(keys []*Key) int {
	for _, tier := range theory.AnchorOrder() {
		for i := len(keys) - 1; i >= 0; i-- {
			if keys[i].Tier == tier && !p.placed[keys[i]] {
				return i
			}
		}
	}
	return -1
}

// anchorAfter computes the position anchoring k immediately after the
// left boundary b: non-chromatic keys center on b's trailing edge;
// chromatic keys tuck just right of b's center.
func (p *placer) anchorAfter(b, k *Key) float64 {
	if k.Tier == theory.TierChromatic {
		return b.Position + b.Width/2 + p.geo.ChromaticTuck
	}
	return b.Position + b.Width - k.Width/2
}

// anchorBefore mirrors anchorAfter against the right boundary b:
// non-chromatic keys center on b's leading edge; chromatic keys tuck
// just left of b's center.
func (p *placer) anchorBefore(b, k *Key) float64 {
	if k.Tier == theory.TierChromatic {
		return b.Position + b.Width/2 - k.Width - p.geo.ChromaticTuck
	}
	return b.Position - k.Width/2
}

// placeAt records k's position, clamped so it never starts before the end
// of the previous same-tier sibling already placed in this group.
func (p *placer) placeAt(k *Key, pos float64) {
	if idx := p.tierIdx[k]; idx > 0 {
		prev := p.siblings[k.Tier][idx-1]
		if p.placed[prev] {
			if floor := prev.Right() + p.geo.SiblingGap; pos < floor {
				pos = floor
			}
		}
	}
	k.Position = pos
	p.placed[k] = true
}

// center translates the whole group by a single delta so its span is
// centered on the trailing edge of the left boundary (or the leading edge
// of the right boundary when the run precedes the first triad).
func (g *group) center() {
	first, last := g.members[0], g.members[len(g.members)-1]
	width := last.Right() - first.Position

	var target float64
	switch {
	case g.left != nil:
		target = g.left.Right() - width/2
	case g.right != nil:
		target = g.right.Position - width/2
	default:
		return
	}

	delta := target - first.Position
	for _, k := range g.members {
		k.Position += delta
	}
}
