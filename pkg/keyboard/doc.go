// Package keyboard lays out a four-tier keyboard instrument.
//
// Unlike a piano's two-tier white/black arrangement, keys here belong to
// one of four tiers (triad, pentatonic, scale, chromatic) reflecting each
// pitch's importance in the song key. Triad keys tile the container edge
// to edge; every other key is nested into the gap between the two triad
// keys that flank it in chromatic-time order, recursively, coarsest tier
// first.
//
// # Pipeline
//
// The package is a straight-line pipeline over immutable snapshots:
//
//  1. Build enumerates pitches across the octave range, classifies each
//     one, and sizes it for its tier.
//  2. The layout engine assigns every key a horizontal position.
//  3. ResolveAt hit-tests points against the published KeySet, breaking
//     ties by paint order.
//
// An Orchestrator owns the single mutable reference to the current
// KeySet. It rebuilds on structural changes (resize, octave count, key
// width), coalescing resize bursts behind a debounce window, and patches
// attributes in place (chord/key changes) without moving any key.
//
// Every operation is synchronous and runs to completion on the calling
// goroutine; published KeySets are never mutated afterwards.
package keyboard
