// Package pkg provides the core libraries for Stratakeys hierarchical
// keyboard layouts.
//
// # Overview
//
// Stratakeys arranges the twelve pitch classes into four stacked tiers
// (triad, pentatonic, scale, chromatic) whose key sizes and positions
// reflect the current song key and chord. The pkg directory is organized
// into these areas:
//
//  1. [pitch], [theory] - Domain logic (pitch classes, keys, chords, tiers)
//  2. [keyboard] - Layout engine, hit-testing, and the live orchestrator
//  3. [render] - SVG and JSON serialization of layout snapshots
//  4. [midiout] - MIDI message construction for pressed keys
//  5. [cache], [config], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through Stratakeys:
//
//	theory.Context (key + chord)
//	         ↓
//	keyboard.Build → *keyboard.KeySet (immutable snapshot)
//	         ↓
//	render.SVG / render.JSON / keyboard.ResolveAt
//
// Interactive surfaces (the TUI, the HTTP server) hold a
// [keyboard.Orchestrator], which owns the current snapshot and rebuilds
// it in response to resize and reconfiguration events.
package pkg
