package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/stratakeys/stratakeys/pkg/theory"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

// Tier styles for terminal rendering, mirroring the SVG palette: the
// more important the tier, the brighter the key.
var (
	styleTriad        = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))
	styleTriadHi      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Bold(true).Underline(true)
	stylePentatonic   = lipgloss.NewStyle().Foreground(lipgloss.Color("108"))
	stylePentatonicHi = lipgloss.NewStyle().Foreground(lipgloss.Color("108")).Bold(true).Underline(true)
	styleScale        = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	styleScaleHi      = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true).Underline(true)
	styleChromatic    = lipgloss.NewStyle().Foreground(colorDim)
	styleChromaticHi  = lipgloss.NewStyle().Foreground(colorDim).Bold(true).Underline(true)
)

// tierStyle returns the terminal style for a tier, highlight variant
// included.
func tierStyle(t theory.Tier, highlighted bool) lipgloss.Style {
	switch t {
	case theory.TierTriad:
		if highlighted {
			return styleTriadHi
		}
		return styleTriad
	case theory.TierPentatonic:
		if highlighted {
			return stylePentatonicHi
		}
		return stylePentatonic
	case theory.TierScale:
		if highlighted {
			return styleScaleHi
		}
		return styleScale
	default:
		if highlighted {
			return styleChromaticHi
		}
		return styleChromatic
	}
}

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}
