package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stratakeys/stratakeys/pkg/keyboard"
)

// newResolveCmd creates the resolve command: compute a layout and report
// which key a point lands on.
func newResolveCmd() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "resolve <x> [y]",
		Short: "Hit-test a point against a computed layout",
		Long: `Resolve computes the layout for the given parameters and reports the
key under the point. When several keys overlap the point, the finest
tier wins: chromatic over scale over pentatonic over triad. A miss is
reported, not treated as an error.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid x coordinate: %q", args[0])
			}
			hasY := len(args) == 2
			var y float64
			if hasY {
				if y, err = strconv.ParseFloat(args[1], 64); err != nil {
					return fmt.Errorf("invalid y coordinate: %q", args[1])
				}
			}
			return runResolve(cmd, &opts, x, y, hasY)
		},
	}

	addLayoutFlags(cmd, &opts)
	return cmd
}

func runResolve(cmd *cobra.Command, opts *layoutOpts, x, y float64, hasY bool) error {
	logger := loggerFromContext(cmd.Context())

	kbOpts, _, err := opts.build(cmd)
	if err != nil {
		return err
	}
	kbOpts.Logger = logger
	set := keyboard.Build(kbOpts)

	var hit *keyboard.Key
	if hasY {
		hit = keyboard.ResolveAtXY(set, x, y)
	} else {
		hit = keyboard.ResolveAt(set, x)
	}

	if hit == nil {
		printWarning("No key at that point")
		return nil
	}

	printSuccess("Hit %s", hit.Pitch)
	printKeyValue("pitch", hit.Pitch.String())
	printKeyValue("midi", strconv.Itoa(hit.Pitch.MIDINumber))
	printKeyValue("frequency", fmt.Sprintf("%.2f Hz", hit.Pitch.FrequencyHz))
	printKeyValue("tier", hit.Tier.String())
	if hit.Highlighted {
		printKeyValue("chord role", hit.Role.String())
	}
	printKeyValue("rect", fmt.Sprintf("x=%.1f w=%.1f h=%.1f", hit.Position, hit.Width, hit.Height))
	return nil
}
