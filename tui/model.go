package tui

import (
	"fmt"
	"reflect"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"note-quiz/debug"
	"note-quiz/midi"
	"note-quiz/quiz"
	"note-quiz/theme"
	"note-quiz/widgets"
)

const (
	staffWidth = 33
	newNoteKey = "new"
)

// layoutBounds holds cached layout info
type layoutBounds struct {
	buttonsTop int
}

// ledState remembers what the Launchpads last showed
type ledState struct {
	prev []midi.LEDUpdate
}

type Model struct {
	Engine    *quiz.Engine
	Notifier  *Notifier
	DeviceMgr *midi.DeviceManager // nil when MIDI input is off
	Theme     *theme.Theme

	staff       *widgets.Staff
	buttons     *widgets.ButtonRow
	state       quiz.State
	controllers map[string]midi.Controller
	leds        *ledState
	showHelp    bool
	quitting    bool
	bounds      *layoutBounds
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

// PadMsg is a pad press on a grid controller
type PadMsg struct {
	ID  string
	Pad midi.PadEvent
}

// NoteMsg is a key played on a MIDI keyboard
type NoteMsg struct {
	ID   string
	Note midi.NoteEvent
}

func NewModel(engine *quiz.Engine, notifier *Notifier, deviceMgr *midi.DeviceManager, th *theme.Theme) Model {
	buttons := widgets.PitchButtons(quiz.PitchNames)
	buttons = append(buttons, widgets.Button{Key: newNoteKey, Label: "new note"})

	m := Model{
		Engine:      engine,
		Notifier:    notifier,
		DeviceMgr:   deviceMgr,
		Theme:       th,
		staff:       widgets.NewStaff(staffWidth),
		buttons:     widgets.NewButtonRow(buttons),
		controllers: make(map[string]midi.Controller),
		leds:        &ledState{},
		bounds:      &layoutBounds{},
	}
	m.sync()
	return m
}

func ListenForUpdates(n *Notifier) tea.Cmd {
	return func() tea.Msg {
		<-n.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func listenPads(c midi.Controller) tea.Cmd {
	return func() tea.Msg {
		pad, ok := <-c.PadEvents()
		if !ok {
			return nil
		}
		return PadMsg{ID: c.ID(), Pad: pad}
	}
}

func listenNotes(c midi.Controller) tea.Cmd {
	return func() tea.Msg {
		note, ok := <-c.NoteEvents()
		if !ok {
			return nil
		}
		return NoteMsg{ID: c.ID(), Note: note}
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Notifier)}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			m.Engine.Close()
			return m, tea.Quit

		case "?":
			m.showHelp = !m.showHelp

		case "n", " ", "enter":
			m.Engine.ForceNewRound()
			m.sync()

		default:
			if pitch := strings.ToUpper(key); quiz.IsPitchName(pitch) {
				m.guess(pitch)
			}
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			break
		}
		if msg.Y != m.bounds.buttonsTop {
			break
		}
		if b, ok := m.buttons.HitTest(msg.X); ok {
			if b.Key == newNoteKey {
				m.Engine.ForceNewRound()
				m.sync()
			} else {
				m.guess(b.Key)
			}
		}

	case UpdateMsg:
		m.sync()
		return m, ListenForUpdates(m.Notifier)

	case DeviceEventMsg:
		cmd := m.handleDevice(midi.DeviceEvent(msg))
		if m.DeviceMgr == nil {
			return m, cmd
		}
		return m, tea.Batch(cmd, ListenForDevices(m.DeviceMgr))

	case PadMsg:
		if action, ok := padToAction(msg.Pad); ok {
			if action.newNote {
				m.Engine.ForceNewRound()
				m.sync()
			} else {
				m.guess(action.pitch)
			}
		}
		if c, ok := m.controllers[msg.ID]; ok {
			return m, listenPads(c)
		}

	case NoteMsg:
		// black keys come through as sharps and count as wrong answers
		m.guess(midi.PitchName(msg.Note.Note))
		if c, ok := m.controllers[msg.ID]; ok {
			return m, listenNotes(c)
		}
	}

	return m, nil
}

func (m *Model) handleDevice(event midi.DeviceEvent) tea.Cmd {
	switch event.Type {
	case midi.DeviceConnected:
		c := event.Controller
		m.controllers[event.ID] = c
		debug.Log("tui", "controller %s connected (%s)", event.ID, c.Type())
		if c.Type() == midi.ControllerLaunchpad {
			m.leds.prev = nil
			m.pushLEDs()
			return listenPads(c)
		}
		return listenNotes(c)

	case midi.DeviceDisconnected:
		delete(m.controllers, event.ID)
		debug.Log("tui", "controller %s disconnected", event.ID)
	}
	return nil
}

func (m *Model) guess(pitch string) {
	m.Engine.SubmitGuess(pitch)
	m.sync()
}

// sync redraws everything from the engine state
func (m *Model) sync() {
	m.state = m.Engine.State()

	if cur := m.state.Current; cur != nil {
		m.staff.SetNote(quiz.Position(cur.Steps), quiz.NeedsLedgerLine(cur.Steps))
	} else {
		m.staff.Clear()
	}

	if m.state.Feedback == quiz.FeedbackPrompt {
		m.buttons.ClearHighlight()
	} else {
		m.buttons.Highlight(m.state.Guess, m.state.Feedback == quiz.FeedbackCorrect)
	}

	m.pushLEDs()
}

func (m *Model) launchpads() []midi.Controller {
	var lps []midi.Controller
	for _, c := range m.controllers {
		if c.Type() == midi.ControllerLaunchpad {
			lps = append(lps, c)
		}
	}
	return lps
}

func (m *Model) pushLEDs() {
	lps := m.launchpads()
	if len(lps) == 0 {
		return
	}
	layout := padLayout(m.Theme, m.state.Guess, m.state.Feedback)
	if reflect.DeepEqual(layout, m.leds.prev) {
		return
	}
	for _, c := range lps {
		if err := c.SetLEDBatch(layout); err != nil {
			debug.Log("tui", "led update on %s: %v", c.ID(), err)
		}
	}
	m.leds.prev = layout
}

func (m Model) deviceStatus() string {
	var kb, lp int
	for _, c := range m.controllers {
		switch c.Type() {
		case midi.ControllerKeyboard:
			kb++
		case midi.ControllerLaunchpad:
			lp++
		}
	}
	var parts []string
	if kb > 0 {
		parts = append(parts, fmt.Sprintf("KB:%d", kb))
	}
	if lp > 0 {
		parts = append(parts, fmt.Sprintf("LP:%d", lp))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, " ")
}

var keyHelp = []widgets.KeySection{
	{
		Title: "Quiz",
		Keys: []widgets.KeyBinding{
			{Key: "c d e f g a b", Desc: "name the note"},
			{Key: "n / space", Desc: "new note"},
			{Key: "click", Desc: "press a button"},
		},
	},
	{
		Title: "MIDI",
		Keys: []widgets.KeyBinding{
			{Key: "keyboard", Desc: "play the note in any octave"},
			{Key: "launchpad", Desc: "bottom row C..B, last pad new note"},
		},
	},
	{
		Title: "App",
		Keys: []widgets.KeyBinding{
			{Key: "?", Desc: "toggle help"},
			{Key: "q", Desc: "quit"},
		},
	},
}

var keyLine = []widgets.KeyBinding{
	{Key: "c-b", Desc: "guess"},
	{Key: "n", Desc: "new note"},
	{Key: "?", Desc: "help"},
	{Key: "q", Desc: "quit"},
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	promptStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	correctStyle := lipgloss.NewStyle().Foreground(m.Theme.Success()).Bold(true)
	incorrectStyle := lipgloss.NewStyle().Foreground(m.Theme.Active()).Bold(true)

	header := headerStyle.Render(fmt.Sprintf("note-quiz  score %d/%d%s",
		m.state.Score, m.state.Attempts, m.deviceStatus()))

	staff := m.staff.Render(m.Theme)

	var feedback string
	switch m.state.Feedback {
	case quiz.FeedbackCorrect:
		feedback = correctStyle.Render(fmt.Sprintf("%c %s", m.Theme.Symbols.Correct, m.state.Text))
	case quiz.FeedbackIncorrect:
		feedback = incorrectStyle.Render(fmt.Sprintf("%c %s", m.Theme.Symbols.Incorrect, m.state.Text))
	default:
		feedback = promptStyle.Render(m.state.Text)
	}

	buttons := m.buttons.Render(m.Theme)

	help := dimStyle.Render(widgets.RenderKeyLine(keyLine))
	if m.showHelp {
		help = dimStyle.Render(widgets.RenderKeyHelp(keyHelp))
	}

	// Compute layout bounds
	m.bounds.buttonsTop = 1 + lipgloss.Height(header) + 1 + lipgloss.Height(staff) + 1 + lipgloss.Height(feedback) + 1

	// Build output
	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(staff)
	out.WriteString("\n\n")
	out.WriteString(feedback)
	out.WriteString("\n\n")
	out.WriteString(buttons)

	if m.leds.prev != nil && len(m.launchpads()) > 0 {
		out.WriteString("\n")
		out.WriteString(dimStyle.Render("pads "))
		out.WriteString(widgets.RenderPadRow(padPreview(m.leds.prev)))
	}

	out.WriteString("\n\n")
	out.WriteString(help)

	return out.String()
}
