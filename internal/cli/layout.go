package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/stratakeys/stratakeys/pkg/config"
	"github.com/stratakeys/stratakeys/pkg/keyboard"
	"github.com/stratakeys/stratakeys/pkg/render"
)

const (
	formatSVG  = "svg"
	formatJSON = "json"
)

// layoutOpts holds the command-line flags shared by every command that
// computes a layout. Flag values override the tuning file; the tuning
// file overrides the stock defaults.
type layoutOpts struct {
	configPath string
	start      int
	octaves    int
	width      float64
	height     float64
	keyWidth   float64
	key        string
	mode       string
	chord      string
}

// addLayoutFlags registers the shared layout flags on cmd.
func addLayoutFlags(cmd *cobra.Command, o *layoutOpts) {
	cmd.Flags().StringVar(&o.configPath, "config", "", "path to a TOML tuning file")
	cmd.Flags().IntVar(&o.start, "start", keyboard.DefaultStartOctave, "first octave of the range")
	cmd.Flags().IntVar(&o.octaves, "octaves", 2, "number of octaves (1-3)")
	cmd.Flags().Float64Var(&o.width, "width", 1200, "container width in px")
	cmd.Flags().Float64Var(&o.height, "height", 300, "container height in px")
	cmd.Flags().Float64Var(&o.keyWidth, "key-width", 0, "explicit triad key width (0 derives from width)")
	cmd.Flags().StringVar(&o.key, "key", "C", "song key tonic (e.g. C, F#, Bb)")
	cmd.Flags().StringVar(&o.mode, "mode", "major", "song key mode: major or minor")
	cmd.Flags().StringVar(&o.chord, "chord", "", "sounding chord (e.g. C, Gm, D7); defaults to the tonic chord")
}

// build resolves the layered configuration into engine options. Flags the
// user set explicitly win over the tuning file.
func (o *layoutOpts) build(cmd *cobra.Command) (keyboard.Options, config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return keyboard.Options{}, cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("start") {
		cfg.Layout.StartOctave = o.start
	}
	if changed("octaves") {
		cfg.Layout.Octaves = o.octaves
	}
	if changed("width") {
		cfg.Layout.Width = o.width
	}
	if changed("height") {
		cfg.Layout.Height = o.height
	}
	if changed("key") {
		cfg.Layout.Key = o.key
	}
	if changed("mode") {
		cfg.Layout.Mode = o.mode
	}
	if changed("chord") {
		cfg.Layout.Chord = o.chord
	}

	ctx, err := cfg.Context()
	if err != nil {
		return keyboard.Options{}, cfg, err
	}

	opts := keyboard.Options{
		StartOctave:  cfg.Layout.StartOctave,
		EndOctave:    cfg.Layout.StartOctave + cfg.Layout.Octaves - 1,
		Width:        cfg.Layout.Width,
		Height:       cfg.Layout.Height,
		BaseKeyWidth: o.keyWidth,
		Root:         ctx.Tonic(),
		Classifier:   ctx,
		Geometry:     cfg.KeyboardGeometry(),
	}
	return opts, cfg, nil
}

// newLayoutCmd creates the layout command: compute a key set and write it
// as SVG or JSON.
func newLayoutCmd() *cobra.Command {
	var opts layoutOpts
	var format, output string
	var labels bool

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a keyboard layout and write it as SVG or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatSVG && format != formatJSON {
				return fmt.Errorf("invalid format: %s (must be 'svg' or 'json')", format)
			}
			return runLayout(cmd, &opts, format, output, labels)
		},
	}

	addLayoutFlags(cmd, &opts)
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&labels, "labels", false, "draw pitch names on the keys (svg only)")

	return cmd
}

func runLayout(cmd *cobra.Command, opts *layoutOpts, format, output string, labels bool) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	kbOpts, _, err := opts.build(cmd)
	if err != nil {
		return err
	}
	kbOpts.Logger = logger
	set := keyboard.Build(kbOpts)
	prog.done(fmt.Sprintf("Laid out %d keys", set.Len()))

	var data []byte
	switch format {
	case formatSVG:
		var svgOpts []render.SVGOption
		if labels {
			svgOpts = append(svgOpts, render.WithLabels())
		}
		data = render.SVG(set, svgOpts...)
	case formatJSON:
		if data, err = render.JSON(set); err != nil {
			return err
		}
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}
	if output != "" {
		printSuccess("Wrote %s layout", format)
		printFile(output)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
