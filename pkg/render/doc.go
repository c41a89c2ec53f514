// Package render serializes layout snapshots into output formats.
//
// Two sinks are provided: SVG for visual inspection and embedding, and
// JSON for programmatic consumers (the HTTP API and downstream
// renderers). Both honor paint order: chromatic keys are emitted last so
// they stack on top of scale, pentatonic, and triad keys, mirroring how
// the hit resolver breaks ties.
package render
