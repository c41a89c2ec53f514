package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/stratakeys/stratakeys/pkg/keyboard"
	"github.com/stratakeys/stratakeys/pkg/midiout"
	"github.com/stratakeys/stratakeys/pkg/pitch"
	"github.com/stratakeys/stratakeys/pkg/theory"
)

// newTUICmd creates the tui command: an interactive terminal keyboard.
func newTUICmd() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Play the keyboard interactively in the terminal",
		Long: `Tui renders the layout as rows of terminal cells, one row per tier,
and lets you move a cursor across it. Pressing a key resolves the
cursor position against the layout exactly like a pointer event would.

  ←/→  move cursor     ⏎/space  press or release
  c    next chord      C        previous chord
  k    next song key   m        toggle major/minor
  +/-  octaves         q        quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kbOpts, cfg, err := opts.build(cmd)
			if err != nil {
				return err
			}
			ctx, err := cfg.Context()
			if err != nil {
				return err
			}
			m := newKeyboardModel(kbOpts, ctx, cfg.DebounceWindow())
			defer m.orch.Close()
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}

	addLayoutFlags(cmd, &opts)
	return cmd
}

// pollMsg asks the model to re-read the orchestrator snapshot after a
// debounced rebuild had time to land.
type pollMsg struct{}

// keyboardModel is the bubbletea model for the interactive keyboard.
// The orchestrator owns the snapshot; the model only reads it and
// forwards control events.
type keyboardModel struct {
	orch   *keyboard.Orchestrator
	ctx    theory.Context
	window time.Duration

	chords   []theory.Chord
	chordIdx int

	cursorX float64
	pressed *keyboard.Key
	lastMsg string

	termWidth  int
	termHeight int
}

func newKeyboardModel(opts keyboard.Options, ctx theory.Context, window time.Duration) *keyboardModel {
	chords := diatonicChords(ctx.Tonic(), ctx.Mode())
	m := &keyboardModel{
		orch:   keyboard.NewOrchestrator(opts, keyboard.WithDebounceWindow(window)),
		ctx:    ctx.WithChord(chords[0]),
		window: window,
		chords: chords,
	}
	m.orch.SetClassifier(m.ctx)
	return m
}

// diatonicChords builds the chords reachable with the chord-cycling
// keys: one triad per scale degree of the song key.
func diatonicChords(tonic pitch.Class, mode theory.Mode) []theory.Chord {
	type degree struct {
		interval int
		quality  theory.Quality
	}
	degrees := []degree{
		{0, theory.QualityMajor},
		{2, theory.QualityMinor},
		{4, theory.QualityMinor},
		{5, theory.QualityMajor},
		{7, theory.QualityDominant7},
		{9, theory.QualityMinor},
	}
	if mode == theory.ModeMinor {
		degrees = []degree{
			{0, theory.QualityMinor},
			{3, theory.QualityMajor},
			{5, theory.QualityMinor},
			{7, theory.QualityMinor},
			{8, theory.QualityMajor},
			{10, theory.QualityMajor},
		}
	}
	chords := make([]theory.Chord, len(degrees))
	for i, d := range degrees {
		chords[i] = theory.Chord{Root: tonic.Transpose(d.interval), Quality: d.quality}
	}
	return chords
}

func (m *keyboardModel) Init() tea.Cmd {
	return nil
}

// poll schedules a snapshot re-read just after the debounce window, so a
// coalesced rebuild shows up without continuous polling.
func (m *keyboardModel) poll() tea.Cmd {
	return tea.Tick(m.window+10*time.Millisecond, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

func (m *keyboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.orch.OnResize(float64(msg.Width-2), 4)
		return m, m.poll()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "left":
			m.moveCursor(-1)
		case "right":
			m.moveCursor(1)
		case "shift+left":
			m.moveCursor(-8)
		case "shift+right":
			m.moveCursor(8)

		case "enter", " ":
			m.togglePress()

		case "c":
			m.cycleChord(1)
		case "C":
			m.cycleChord(-1)

		case "k":
			m.cycleKey()
		case "m":
			m.toggleMode()

		case "+", "=":
			m.changeOctaves(1)
		case "-":
			m.changeOctaves(-1)
		}
	}
	return m, nil
}

func (m *keyboardModel) moveCursor(dx float64) {
	set := m.orch.Snapshot()
	m.cursorX += dx
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if set != nil && m.cursorX > set.Width-1 {
		m.cursorX = set.Width - 1
	}
}

// togglePress presses the key under the cursor, or releases the held
// key. The resolved hit and the MIDI message it would produce are shown
// in the status line.
func (m *keyboardModel) togglePress() {
	if m.pressed != nil {
		off := midiout.PressOff(m.pressed, 0)
		m.lastMsg = fmt.Sprintf("release %s  %v", m.pressed.Pitch, off)
		m.pressed = nil
		return
	}

	hit := keyboard.ResolveAt(m.orch.Snapshot(), m.cursorX)
	if hit == nil {
		m.lastMsg = "no key under cursor"
		return
	}
	on := midiout.PressOn(hit, 0, 0)
	m.pressed = hit
	m.lastMsg = fmt.Sprintf("press %s (%s)  %v", hit.Pitch, hit.Tier, on)
}

func (m *keyboardModel) cycleChord(step int) {
	m.chordIdx = ((m.chordIdx+step)%len(m.chords) + len(m.chords)) % len(m.chords)
	m.ctx = m.ctx.WithChord(m.chords[m.chordIdx])
	m.orch.SetClassifier(m.ctx)
	m.pressed = nil
}

func (m *keyboardModel) cycleKey() {
	m.setKey(m.ctx.Tonic().Transpose(7), m.ctx.Mode()) // walk the circle of fifths
}

func (m *keyboardModel) toggleMode() {
	mode := theory.ModeMajor
	if m.ctx.Mode() == theory.ModeMajor {
		mode = theory.ModeMinor
	}
	m.setKey(m.ctx.Tonic(), mode)
}

// setKey swaps the song key: new diatonic chord set, new classifier, and
// a structural rebuild so tier sizes follow the new classification.
func (m *keyboardModel) setKey(tonic pitch.Class, mode theory.Mode) {
	m.chords = diatonicChords(tonic, mode)
	m.chordIdx = 0
	m.ctx = theory.NewContext(tonic, mode, m.chords[0])
	m.orch.SetClassifier(m.ctx)
	m.orch.Rebuild()
	m.pressed = nil
}

func (m *keyboardModel) changeOctaves(delta int) {
	set := m.orch.Snapshot()
	if set == nil {
		return
	}
	octaves := (set.Len() - 1) / pitch.NumClasses
	m.orch.OnOctaveCountChange(octaves + delta)
	m.pressed = nil
}

func (m *keyboardModel) View() string {
	set := m.orch.Snapshot()
	if set == nil || m.termWidth == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("stratakeys"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  key %s %s  chord %s",
		m.ctx.Tonic(), m.ctx.Mode(), m.chords[m.chordIdx])))
	b.WriteString("\n\n")

	for tier := theory.TierTriad; tier <= theory.TierChromatic; tier++ {
		b.WriteString(m.renderTierRow(set, tier))
		b.WriteString("\n")
	}

	cursor := int(m.cursorX)
	if cursor > m.termWidth-1 {
		cursor = m.termWidth - 1
	}
	b.WriteString(strings.Repeat(" ", cursor))
	b.WriteString(StyleValue.Render("▴"))
	b.WriteString("\n\n")

	if m.lastMsg != "" {
		b.WriteString("  " + m.lastMsg + "\n")
	}
	b.WriteString(StyleDim.Render("  ←/→ move  ⏎ press  c chord  k key  m mode  +/- octaves  q quit"))
	return b.String()
}

// renderTierRow draws one tier as a row of terminal cells. One px maps
// to one cell; the orchestrator keeps the layout width in step with the
// terminal width, so the mapping stays direct.
func (m *keyboardModel) renderTierRow(set *keyboard.KeySet, tier theory.Tier) string {
	var b strings.Builder
	col := 0
	for _, k := range set.Tiered(tier) {
		start, end := int(k.Position), int(k.Right())
		if end > m.termWidth {
			end = m.termWidth
		}
		if start >= end {
			continue
		}
		if start > col {
			b.WriteString(strings.Repeat(" ", start-col))
		}
		b.WriteString(tierStyle(tier, k.Highlighted).Render(keyCells(k, end-start)))
		col = end
	}
	return b.String()
}

// keyCells renders a key's block of cells with its pitch name embedded
// when there is room.
func keyCells(k *keyboard.Key, width int) string {
	label := k.Pitch.String()
	if width < len(label)+2 {
		return strings.Repeat("▆", width)
	}
	pad := width - len(label)
	left := pad / 2
	return strings.Repeat("▆", left) + label + strings.Repeat("▆", pad-left)
}
