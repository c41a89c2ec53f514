package keyboard

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"

	"github.com/stratakeys/stratakeys/pkg/observability"
	"github.com/stratakeys/stratakeys/pkg/theory"
)

// DefaultDebounceWindow is how long the orchestrator waits for a resize
// burst to settle before rebuilding. Resize notifications arrive in rapid
// bursts; only the last one in a burst should trigger a rebuild.
const DefaultDebounceWindow = 100 * time.Millisecond

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithDebounceWindow overrides the resize debounce window.
func WithDebounceWindow(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if d > 0 {
			o.window = d
		}
	}
}

// WithLogger sets the orchestrator's logger. Nil discards.
func WithLogger(l *log.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// Orchestrator owns the single mutable reference to the current KeySet
// and decides when to recompute it. Structural changes (resize, octave
// count, base key width) rebuild the set in full; attribute-only changes
// (chord or key) patch highlights without moving anything. Resize events
// are coalesced: at most one rebuild is pending at a time, and a new
// event inside the window reschedules rather than queues.
//
// Readers obtain immutable snapshots through Snapshot and never observe a
// partially built set. Entry points are idempotent: calling them with the
// inputs already in effect publishes nothing.
type Orchestrator struct {
	logger *log.Logger
	window time.Duration

	mu        sync.Mutex
	opts      Options
	closed    bool
	debounced func(func())

	cur atomic.Pointer[KeySet]
}

// NewOrchestrator builds the initial snapshot synchronously and returns
// the orchestrator managing it.
func NewOrchestrator(opts Options, options ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		window: DefaultDebounceWindow,
	}
	for _, opt := range options {
		opt(o)
	}
	o.debounced = debounce.New(o.window)

	opts.normalize()
	o.opts = opts
	o.publish(Build(o.opts), true)
	return o
}

// Snapshot returns the currently published KeySet. The returned set must
// not be mutated.
func (o *Orchestrator) Snapshot() *KeySet {
	return o.cur.Load()
}

// OnResize records new container dimensions and schedules a debounced
// structural rebuild. Fire-and-forget: the rebuild happens after the
// debounce window elapses with no further resize events.
func (o *Orchestrator) OnResize(width, height float64) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || (o.opts.Width == width && o.opts.Height == height) {
		return
	}
	o.opts.Width = width
	o.opts.Height = height
	o.logger.Debug("resize scheduled", "width", width, "height", height)
	o.debounced(o.rebuild)
}

// OnOctaveCountChange sets the number of octaves, clamped to the
// supported bound, keeping the start octave fixed. Rebuilds immediately.
func (o *Orchestrator) OnOctaveCountChange(n int) {
	if n < MinOctaves {
		n = MinOctaves
	}
	if n > MaxOctaves {
		n = MaxOctaves
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	end := o.opts.StartOctave + n - 1
	if o.closed || o.opts.EndOctave == end {
		return
	}
	o.opts.EndOctave = end
	o.rebuildLocked()
}

// OnKeyWidthChange overrides the base triad key width. Zero restores the
// width derived from the container. Rebuilds immediately.
func (o *Orchestrator) OnKeyWidthChange(px float64) {
	if px < 0 {
		px = 0
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || o.opts.BaseKeyWidth == px {
		return
	}
	o.opts.BaseKeyWidth = px
	o.rebuildLocked()
}

// SetClassifier swaps the harmonic context and runs the cheap
// attribute-only pass over the current snapshot: no key moves, and a new
// snapshot is published only if at least one key's attributes changed.
// The next structural rebuild also uses the new classifier.
func (o *Orchestrator) SetClassifier(cls theory.Classifier) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.opts.Classifier = cls

	set, changed := Refresh(o.cur.Load(), cls)
	if !changed {
		return
	}
	o.publish(set, false)
}

// Rebuild forces a full structural pass with the inputs currently in
// effect, bypassing the debounce window.
func (o *Orchestrator) Rebuild() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.rebuildLocked()
}

// Close discards any pending debounced rebuild and makes all further
// entry points no-ops. The last published snapshot stays readable.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
}

// rebuild is the debounce callback; it re-checks closed because the timer
// may fire after Close.
func (o *Orchestrator) rebuild() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.rebuildLocked()
}

func (o *Orchestrator) rebuildLocked() {
	o.publish(Build(o.opts), true)
}

func (o *Orchestrator) publish(set *KeySet, structural bool) {
	o.cur.Store(set)
	observability.Layout().OnPublish(set.Revision.String(), structural, set.Len())
	o.logger.Debug("published snapshot",
		"revision", set.Revision,
		"structural", structural,
		"keys", set.Len())
}
