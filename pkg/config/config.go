// Package config loads the instrument's tuning file.
//
// Everything the CLI and server need beyond flags lives in one TOML file:
// the song key and chord the instrument starts in, the visual geometry
// tuning values, the orchestrator's debounce window, and the server's
// cache backend. All values are optional; the zero config is the stock
// instrument.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/stratakeys/stratakeys/pkg/errors"
	"github.com/stratakeys/stratakeys/pkg/keyboard"
	"github.com/stratakeys/stratakeys/pkg/pitch"
	"github.com/stratakeys/stratakeys/pkg/theory"
)

// Config is the root of the tuning file.
type Config struct {
	Layout       Layout       `toml:"layout"`
	Geometry     Geometry     `toml:"geometry"`
	Orchestrator Orchestrator `toml:"orchestrator"`
	Server       Server       `toml:"server"`
}

// Layout configures the initial instrument state.
type Layout struct {
	StartOctave int     `toml:"start_octave"`
	Octaves     int     `toml:"octaves"`
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	Key         string  `toml:"key"`   // tonic pitch class, e.g. "C", "F#"
	Mode        string  `toml:"mode"`  // "major" or "minor"
	Chord       string  `toml:"chord"` // e.g. "C", "Gm7"; empty means the tonic chord
}

// Geometry mirrors keyboard.Geometry field by field; zero values fall
// back to the stock tuning.
type Geometry struct {
	TriadGap             float64 `toml:"triad_gap"`
	ChromaticTuck        float64 `toml:"chromatic_tuck"`
	SiblingGap           float64 `toml:"sibling_gap"`
	PentatonicWidthFrac  float64 `toml:"pentatonic_width_frac"`
	PentatonicHeightFrac float64 `toml:"pentatonic_height_frac"`
	ScaleWidthFrac       float64 `toml:"scale_width_frac"`
	ScaleHeightFrac      float64 `toml:"scale_height_frac"`
	ChromaticWidthFrac   float64 `toml:"chromatic_width_frac"`
	ChromaticHeightFrac  float64 `toml:"chromatic_height_frac"`
}

// Orchestrator tunes the rebuild coordinator.
type Orchestrator struct {
	DebounceMS int `toml:"debounce_ms"`
}

// Server configures the HTTP layout service.
type Server struct {
	Addr      string `toml:"addr"`
	Cache     string `toml:"cache"` // "none", "file", or "redis"
	CacheDir  string `toml:"cache_dir"`
	RedisAddr string `toml:"redis_addr"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Layout: Layout{
			StartOctave: keyboard.DefaultStartOctave,
			Octaves:     2,
			Width:       1200,
			Height:      300,
			Key:         "C",
			Mode:        "major",
		},
		Orchestrator: Orchestrator{
			DebounceMS: int(keyboard.DefaultDebounceWindow / time.Millisecond),
		},
		Server: Server{
			Addr:  ":8630",
			Cache: "none",
		},
	}
}

// Load reads a TOML tuning file, layering it over the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeConfig, err, "read %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeConfig, err, "parse %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := pitch.ParseClass(c.Layout.Key); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidKey, err, "layout.key")
	}
	if m := c.Layout.Mode; m != "major" && m != "minor" {
		return errors.New(errors.ErrCodeInvalidKey, "layout.mode must be major or minor, got %q", m)
	}
	if c.Layout.Chord != "" {
		if _, err := theory.ParseChord(c.Layout.Chord); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidChord, err, "layout.chord")
		}
	}
	switch c.Server.Cache {
	case "", "none", "file", "redis":
	default:
		return errors.New(errors.ErrCodeConfig, "server.cache must be none, file, or redis, got %q", c.Server.Cache)
	}
	return nil
}

// Context builds the theory context the config describes.
func (c Config) Context() (theory.Context, error) {
	tonic, err := pitch.ParseClass(c.Layout.Key)
	if err != nil {
		return theory.Context{}, errors.Wrap(errors.ErrCodeInvalidKey, err, "layout.key")
	}
	mode := theory.ModeMajor
	if c.Layout.Mode == "minor" {
		mode = theory.ModeMinor
	}
	name := c.Layout.Chord
	if name == "" {
		name = tonic.String()
		if mode == theory.ModeMinor {
			name += "m"
		}
	}
	chord, err := theory.ParseChord(name)
	if err != nil {
		return theory.Context{}, errors.Wrap(errors.ErrCodeInvalidChord, err, "layout.chord")
	}
	return theory.NewContext(tonic, mode, chord), nil
}

// KeyboardGeometry converts the TOML section into engine geometry,
// filling unset fields from the stock tuning.
func (c Config) KeyboardGeometry() keyboard.Geometry {
	geo := keyboard.DefaultGeometry()
	g := c.Geometry
	if g.TriadGap > 0 {
		geo.TriadGap = g.TriadGap
	}
	if g.ChromaticTuck > 0 {
		geo.ChromaticTuck = g.ChromaticTuck
	}
	if g.SiblingGap > 0 {
		geo.SiblingGap = g.SiblingGap
	}
	if g.PentatonicWidthFrac > 0 {
		geo.PentatonicWidthFrac = g.PentatonicWidthFrac
	}
	if g.PentatonicHeightFrac > 0 {
		geo.PentatonicHeightFrac = g.PentatonicHeightFrac
	}
	if g.ScaleWidthFrac > 0 {
		geo.ScaleWidthFrac = g.ScaleWidthFrac
	}
	if g.ScaleHeightFrac > 0 {
		geo.ScaleHeightFrac = g.ScaleHeightFrac
	}
	if g.ChromaticWidthFrac > 0 {
		geo.ChromaticWidthFrac = g.ChromaticWidthFrac
	}
	if g.ChromaticHeightFrac > 0 {
		geo.ChromaticHeightFrac = g.ChromaticHeightFrac
	}
	return geo
}

// DebounceWindow returns the orchestrator debounce window.
func (c Config) DebounceWindow() time.Duration {
	if c.Orchestrator.DebounceMS <= 0 {
		return keyboard.DefaultDebounceWindow
	}
	return time.Duration(c.Orchestrator.DebounceMS) * time.Millisecond
}
